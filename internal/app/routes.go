package app

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/WeaveITMeta/Quantum-Operating-System/internal/server/router"
)

func (a *appServer) routes() []*router.Route {
	return []*router.Route{
		{
			Name:        "root",
			Method:      http.MethodGet,
			Pattern:     "/",
			HandlerFunc: a.RootHandler,
		},
		{
			Name:        "health",
			Method:      http.MethodGet,
			Pattern:     "/health",
			HandlerFunc: a.HealthHandler,
		},
		{
			Name:        "api.execute",
			Method:      http.MethodPost,
			Pattern:     "/api/execute",
			HandlerFunc: a.ExecuteCircuit,
		},
		{
			Name:        "api.v1.circuits.submit",
			Method:      http.MethodPost,
			Pattern:     "/api/v1/circuits",
			HandlerFunc: a.SubmitCircuit,
		},
		{
			Name:        "api.v1.jobs.status",
			Method:      http.MethodGet,
			Pattern:     "/api/v1/jobs/:id",
			HandlerFunc: a.JobStatus,
		},
		{
			Name:        "api.v1.jobs.cancel",
			Method:      http.MethodDelete,
			Pattern:     "/api/v1/jobs/:id",
			HandlerFunc: a.CancelJob,
		},
		{
			Name:        "api.v1.jobs.stream",
			Method:      http.MethodGet,
			Pattern:     "/api/v1/jobs/:id/stream",
			HandlerFunc: a.StreamJob,
		},
		{
			Name:        "api.v1.devices.list",
			Method:      http.MethodGet,
			Pattern:     "/api/v1/devices",
			HandlerFunc: a.ListDevices,
		},
		{
			Name:        "api.v1.devices.put",
			Method:      http.MethodPut,
			Pattern:     "/api/v1/devices/:name",
			HandlerFunc: a.PutDevice,
		},
		{
			Name:        "api.v1.devices.delete",
			Method:      http.MethodDelete,
			Pattern:     "/api/v1/devices/:name",
			HandlerFunc: a.DeleteDevice,
		},
		{
			Name:        "metrics",
			Method:      http.MethodGet,
			Pattern:     "/metrics",
			HandlerFunc: gin.WrapH(promhttp.Handler()),
		},
	}
}
