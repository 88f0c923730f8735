// Package adjuster applies color settings to the display.
package adjuster

import (
	"errors"
	"strings"
	"sync"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/charlie0129/shade/pkg/types"
)

var (
	// ErrMethodUnsupported is returned for gamma backends this build cannot
	// drive.
	ErrMethodUnsupported = errors.New("adjustment method is not supported")
	ErrUnknownMethod     = errors.New("unknown adjustment method")
)

type Kind string

const (
	KindDummy    Kind = "dummy"
	KindRandr    Kind = "randr"
	KindDrm      Kind = "drm"
	KindVidmode  Kind = "vidmode"
	KindWin32GDI Kind = "win32gdi"
)

var kinds = []Kind{KindDummy, KindRandr, KindDrm, KindVidmode, KindWin32GDI}

// Kinds lists every recognised method name.
func Kinds() []Kind {
	return append([]Kind(nil), kinds...)
}

// Method selects a backend. The zero value is the dummy backend.
type Method struct {
	Kind Kind
}

func (m Method) String() string {
	if m.Kind == "" {
		return string(KindDummy)
	}
	return string(m.Kind)
}

// ParseMethod accepts one of the names in Kinds, case insensitively.
func ParseMethod(s string) (Method, error) {
	name := Kind(strings.ToLower(strings.TrimSpace(s)))
	if name == "" {
		return Method{Kind: KindDummy}, nil
	}
	for _, k := range kinds {
		if k == name {
			return Method{Kind: k}, nil
		}
	}
	return Method{}, pkgerrors.Wrapf(ErrUnknownMethod, "%q, expected one of %v", s, kinds)
}

// Adjuster is a constructed backend.
type Adjuster struct {
	kind Kind

	mu sync.Mutex
	// last is what the dummy backend pretends the display shows
	last    types.ColorSettings
	applied bool
}

// New builds the backend selected by m.
func New(m Method) (*Adjuster, error) {
	switch m.Kind {
	case KindDummy, "":
		logrus.Warn("Using the dummy adjustment method, the display will not change")
		return &Adjuster{kind: KindDummy}, nil
	case KindRandr, KindDrm, KindVidmode, KindWin32GDI:
		return nil, pkgerrors.Wrapf(ErrMethodUnsupported, "method %s", m.Kind)
	default:
		return nil, pkgerrors.Wrapf(ErrUnknownMethod, "method %q", m.Kind)
	}
}

func (a *Adjuster) Kind() Kind {
	return a.kind
}

// Set applies cs. Setting the same value twice is a no-op.
func (a *Adjuster) Set(resetRamps bool, cs types.ColorSettings) error {
	switch a.kind {
	case KindDummy:
		a.mu.Lock()
		defer a.mu.Unlock()

		if a.applied && a.last.Equal(cs) {
			logrus.WithFields(logrus.Fields{
				"settings": cs.String(),
			}).Trace("Settings already applied")
			return nil
		}

		logrus.WithFields(logrus.Fields{
			"method":      a.kind,
			"temperature": cs.Temperature.Kelvin(),
			"brightness":  cs.Brightness.Value(),
			"gamma":       cs.Gamma.String(),
			"resetRamps":  resetRamps,
		}).Debug("Setting color")

		a.last = cs
		a.applied = true
		return nil
	default:
		return pkgerrors.Wrapf(ErrMethodUnsupported, "set with method %s", a.kind)
	}
}

// Restore returns the display to its state before the first Set.
func (a *Adjuster) Restore() error {
	switch a.kind {
	case KindDummy:
		a.mu.Lock()
		defer a.mu.Unlock()

		logrus.WithField("method", a.kind).Debug("Restoring color")
		a.last = types.DefaultColorSettings()
		a.applied = false
		return nil
	default:
		return pkgerrors.Wrapf(ErrMethodUnsupported, "restore with method %s", a.kind)
	}
}

// Current returns the last applied settings, and false if nothing has been
// applied since construction or the last Restore.
func (a *Adjuster) Current() (types.ColorSettings, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.last, a.applied
}
