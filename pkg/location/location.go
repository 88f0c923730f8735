// Package location provides the observer position used by the elevation
// scheme.
package location

import (
	"errors"
	"strings"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/charlie0129/shade/pkg/types"
)

// ErrProviderUnavailable is returned by providers this build cannot reach.
var ErrProviderUnavailable = errors.New("location provider is not available")

type Kind string

const (
	KindManual   Kind = "manual"
	KindGeoclue2 Kind = "geoclue2"
)

// Provider is a location source. Only Manual carries a location.
type Provider struct {
	Kind     Kind
	Location types.Location
}

func Manual(loc types.Location) Provider {
	return Provider{Kind: KindManual, Location: loc}
}

// ParseProvider accepts "geoclue2" or a manual "lat:lon".
func ParseProvider(s string) (Provider, error) {
	if strings.EqualFold(strings.TrimSpace(s), string(KindGeoclue2)) {
		return Provider{Kind: KindGeoclue2}, nil
	}
	loc, err := types.ParseLocation(s)
	if err != nil {
		return Provider{}, pkgerrors.Wrap(err, "location must be geoclue2 or latitude:longitude")
	}
	return Manual(loc), nil
}

// Get returns the current location.
func (p Provider) Get() (types.Location, error) {
	switch p.Kind {
	case KindManual, "":
		return p.Location, nil
	case KindGeoclue2:
		return types.Location{}, pkgerrors.Wrap(ErrProviderUnavailable, "geoclue2")
	default:
		return types.Location{}, pkgerrors.Wrapf(ErrProviderUnavailable, "unknown provider %q", p.Kind)
	}
}

// WarnIfDefault warns when an elevation scheme would run on the (0, 0)
// fallback location. Call it once at startup.
func WarnIfDefault(scheme types.TransitionScheme, p Provider) bool {
	if scheme.Kind != types.SchemeElevation {
		return false
	}
	if p.Kind != KindManual && p.Kind != "" {
		return false
	}
	if !p.Location.IsDefault() {
		return false
	}
	logrus.Warn("no location configured, solar elevation is computed for (0, 0); set one with --location lat:lon")
	return true
}

func (p Provider) String() string {
	switch p.Kind {
	case KindGeoclue2:
		return string(KindGeoclue2)
	default:
		return p.Location.String()
	}
}
