package app

import (
	"context"
	"errors"
	"net/http"

	"github.com/WeaveITMeta/Quantum-Operating-System/internal/config"
	"github.com/WeaveITMeta/Quantum-Operating-System/internal/obslog"
	"github.com/WeaveITMeta/Quantum-Operating-System/internal/server/router"
	"github.com/WeaveITMeta/Quantum-Operating-System/qc/engine"
	"github.com/WeaveITMeta/Quantum-Operating-System/qc/scheduler"
	"github.com/WeaveITMeta/Quantum-Operating-System/qc/stream"
	"github.com/gin-gonic/gin"

	"github.com/WeaveITMeta/Quantum-Operating-System/internal/server"
)

type (
	ServerOptions struct {
		C       *config.Config
		Version string
	}

	appServer struct {
		logger  *obslog.Logger
		router  *router.Router
		engine  *engine.Engine
		sched   *scheduler.Scheduler
		fabric  *stream.Fabric
		jobs    *jobStore
		devices *deviceRegistry
		version string
	}

	appServerOptions struct {
		logger  *obslog.Logger
		router  *router.Router
		engine  *engine.Engine
		sched   *scheduler.Scheduler
		fabric  *stream.Fabric
		version string
	}
)

// newAppServer creates a new appServer.
func newAppServer(options appServerOptions) *appServer {
	a := &appServer{
		logger:  options.logger,
		router:  options.router,
		engine:  options.engine,
		sched:   options.sched,
		fabric:  options.fabric,
		jobs:    newJobStore(),
		devices: newDeviceRegistry(),
		version: options.version,
	}
	a.router.SetRoutes(a.routes())
	return a
}

// Listen implements server.Server.
func (a *appServer) Listen(port int, localOnly bool) error {
	a.logger.Debug().Str("version", a.version).Msg("debug quantum playground server")
	a.logger.Info().
		Int("port", port).
		Bool("localOnly", localOnly).
		Msg("Starting quantum playground service")
	return a.router.Start(port, localOnly)
}

// Shutdown implements server.Server: HTTP first so no new submissions
// arrive, then the scheduler pool so in-flight jobs drain.
func (a *appServer) Shutdown(ctx context.Context) error {
	err := a.router.Shutdown(ctx)
	a.sched.Shutdown()
	return err
}

func NewServer(options ServerOptions) (server.Server, error) {
	l, r := server.NewLoggerAndRouter(server.EngineOptions{
		Debug: options.C.GetBool("debug"),
	})
	eng := engine.New(options.C, l)
	sched := scheduler.New(options.C, l)
	sched.Start()
	fabric := stream.New(stream.Config{
		ReplayCapacity:         options.C.GetInt("stream.replay_capacity"),
		BackpressureThreshold:  options.C.GetInt("stream.backpressure_threshold"),
		MailboxCapacity:        options.C.GetInt("stream.mailbox_capacity"),
		StatsEmitIntervalShots: options.C.GetInt("stream.stats_emit_interval_shots"),
	})
	app := newAppServer(appServerOptions{
		logger:  l,
		router:  r,
		engine:  eng,
		sched:   sched,
		fabric:  fabric,
		version: options.Version,
	})

	return app, nil
}

func (a *appServer) getLoggerFromContext(c *gin.Context) (*obslog.Logger, error) {
	if loggerInstance, ok := c.Get("logger"); ok {
		if loggerInstance, ok := loggerInstance.(*obslog.Logger); ok {
			return loggerInstance, nil
		}
	}
	err := errors.New("logger not found in context")
	a.logger.Error().Err(err).Send()
	c.String(http.StatusInternalServerError, internalServerErrorMsg)
	return nil, err
}
