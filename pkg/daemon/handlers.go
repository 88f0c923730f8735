package daemon

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/charlie0129/shade/pkg/config"
	"github.com/charlie0129/shade/pkg/events"
	"github.com/charlie0129/shade/pkg/version"
)

// ErrNoTickYet is reported by /status before the loop has ticked once.
var ErrNoTickYet = errors.New("daemon has not ticked yet")

func getStatus(c *gin.Context) {
	ev, ok := hub.Latest(events.DaemonTick)
	if !ok {
		c.IndentedJSON(http.StatusServiceUnavailable, ErrNoTickYet.Error())
		_ = c.AbortWithError(http.StatusServiceUnavailable, ErrNoTickYet)
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", ev.Data)
}

func getConfig(c *gin.Context) {
	fc, err := config.NewRawFileConfigFromConfig(conf)
	if err != nil {
		_ = c.AbortWithError(http.StatusInternalServerError, err)
		return
	}
	c.IndentedJSON(http.StatusOK, fc)
}

func getVersion(c *gin.Context) {
	c.IndentedJSON(http.StatusOK, version.Version)
}

// streamEvents sends every published event as SSE until the client goes
// away.
func streamEvents(c *gin.Context) {
	ch := hub.Subscribe()
	defer hub.Unsubscribe(ch)

	logrus.Debug("event subscriber connected")

	c.Stream(func(_ io.Writer) bool {
		select {
		case ev, ok := <-ch:
			if !ok {
				return false
			}
			c.SSEvent(ev.Name, ev.Data)
			return true
		case <-c.Request.Context().Done():
			logrus.Debug("event subscriber disconnected")
			return false
		}
	})
}
