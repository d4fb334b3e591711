package app

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
)

// deviceRegistry is the in-memory map of device name to the backend kind
// serving it. No persistence; the three built-in backends are seeded at
// startup.
type deviceRegistry struct {
	mu sync.RWMutex
	m  map[string]string
}

func newDeviceRegistry() *deviceRegistry {
	return &deviceRegistry{m: map[string]string{
		"simulator-dense": "dense",
		"simulator-mps":   "mps",
		"simulator-itsu":  "itsu",
	}}
}

// ListDevices is the handler for GET /api/v1/devices.
func (a *appServer) ListDevices(c *gin.Context) {
	a.devices.mu.RLock()
	out := make(map[string]string, len(a.devices.m))
	for k, v := range a.devices.m {
		out[k] = v
	}
	a.devices.mu.RUnlock()
	c.JSON(http.StatusOK, gin.H{"devices": out})
}

// PutDevice is the handler for PUT /api/v1/devices/:name.
func (a *appServer) PutDevice(c *gin.Context) {
	var body struct {
		Backend string `json:"backend" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "backend field is required"})
		return
	}
	name := c.Param("name")
	a.devices.mu.Lock()
	a.devices.m[name] = body.Backend
	a.devices.mu.Unlock()
	c.JSON(http.StatusOK, gin.H{"name": name, "backend": body.Backend})
}

// DeleteDevice is the handler for DELETE /api/v1/devices/:name.
func (a *appServer) DeleteDevice(c *gin.Context) {
	name := c.Param("name")
	a.devices.mu.Lock()
	_, ok := a.devices.m[name]
	delete(a.devices.m, name)
	a.devices.mu.Unlock()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "device not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"name": name})
}
