package daemon

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/charlie0129/shade/pkg/adjuster"
	"github.com/charlie0129/shade/pkg/config"
	"github.com/charlie0129/shade/pkg/events"
	"github.com/charlie0129/shade/pkg/location"
)

var (
	conf config.Config
	hub  *events.EventHub
)

func setupRoutes() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(ginLogger(logrus.StandardLogger()))
	router.GET("/status", getStatus)
	router.GET("/config", getConfig)
	router.GET("/version", getVersion)
	router.GET("/events", streamEvents)

	return router
}

// OptionsFromConfig builds loop options from c.
func OptionsFromConfig(c config.Config) Options {
	return Options{
		Colors:             c.ColorSettings(),
		Scheme:             c.Scheme(),
		ResetRamps:         c.ResetRamps(),
		DisableFade:        c.DisableFade(),
		FadeSteps:          c.FadeSteps(),
		SleepDuration:      c.SleepDuration(),
		SleepDurationShort: c.SleepDurationShort(),
	}
}

// Run runs the loop on the calling goroutine until it exits, serving the
// status API on unixSocketPath meanwhile. overrides, usually from command
// line flags, are applied on top of the config file.
func Run(configPath string, unixSocketPath string, overrides *config.RawFileConfig) error {
	f, err := config.NewFile(configPath)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to parse config during startup")
	}
	if err := f.Merge(overrides); err != nil {
		return pkgerrors.Wrapf(err, "invalid command line options")
	}
	conf = f
	logrus.WithFields(conf.LogrusFields()).Infof("config loaded")

	adj, err := adjuster.New(conf.Method())
	if err != nil {
		return err
	}

	hub = events.NewEventHub()
	router := setupRoutes()
	srv := &http.Server{
		Handler: router,
	}

	// A previous daemon that crashed leaves its socket behind.
	if err := os.Remove(unixSocketPath); err != nil && !os.IsNotExist(err) {
		return pkgerrors.Wrapf(err, "failed to remove stale socket %s", unixSocketPath)
	}

	// Create the socket to listen on:
	l, err := net.Listen("unix", unixSocketPath)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to listen on %s", unixSocketPath)
	}

	// Serve HTTP on unix socket
	go func() {
		logrus.Infof("http server listening on %s", l.Addr().String())
		if err := srv.Serve(l); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Errorf("http server failed: %v", err)
		}
	}()

	// Turn SIGINT and SIGTERM into loop cancellation events. The loop
	// handles the first one gracefully and exits on the second.
	sigc := make(chan os.Signal, 2)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	cancel := make(chan struct{}, 2)
	done := make(chan struct{})
	go func() {
		for {
			select {
			case sig := <-sigc:
				logrus.Infof("caught signal \"%s\"", sig)
				select {
				case cancel <- struct{}{}:
				default:
				}
			case <-done:
				return
			}
		}
	}()

	opts := OptionsFromConfig(conf)
	opts.Hub = hub
	location.WarnIfDefault(opts.Scheme, conf.Location())

	logrus.Debugln("main loop starts")
	loopErr := NewLoop(opts, conf.Location(), adj, cancel).Run()
	if loopErr != nil {
		logrus.Errorf("main loop exited: %v", loopErr)
	}

	signal.Stop(sigc)
	close(done)

	logrus.Info("shutting down http server")
	// Ends open event streams, otherwise Shutdown waits for them.
	hub.Close()
	ctx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	err = srv.Shutdown(ctx)
	if err != nil {
		logrus.Errorf("failed to shutdown http server: %v", err)
	}
	cancelShutdown()

	logrus.Info("exiting")
	return loopErr
}
