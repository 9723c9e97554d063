package api

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthHandler handles health check endpoints
type HealthHandler struct {
	state     *State
	dataFile  string
	startTime time.Time
	version   string
}

func NewHealthHandler(state *State, dataFile, version string) *HealthHandler {
	return &HealthHandler{
		state:     state,
		dataFile:  dataFile,
		startTime: time.Now(),
		version:   version,
	}
}

// HealthResponse represents health check response
type HealthResponse struct {
	Status    string            `json:"status"`
	Version   string            `json:"version,omitempty"`
	Uptime    string            `json:"uptime,omitempty"`
	Timestamp string            `json:"timestamp"`
	Checks    map[string]string `json:"checks,omitempty"`
}

// Liveness returns simple alive status
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Readiness reports whether the data file can be written and how much is in memory.
func (h *HealthHandler) Readiness(c *gin.Context) {
	checks := make(map[string]string)
	healthy := true

	dir := filepath.Dir(h.dataFile)
	if fi, err := os.Stat(dir); err != nil {
		// Save creates the directory on first write, so only a parent that
		// exists but is not a directory is fatal.
		if !os.IsNotExist(err) {
			checks["data_dir"] = "unhealthy: " + err.Error()
			healthy = false
		} else {
			checks["data_dir"] = "not created yet"
		}
	} else if !fi.IsDir() {
		checks["data_dir"] = "unhealthy: " + dir + " is not a directory"
		healthy = false
	} else {
		checks["data_dir"] = "healthy"
	}

	checks["items"] = strconv.Itoa(h.state.Len())

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	checks["memory_alloc_mb"] = formatMB(m.Alloc)

	status, code := "healthy", http.StatusOK
	if !healthy {
		status, code = "unhealthy", http.StatusServiceUnavailable
	}
	c.JSON(code, HealthResponse{
		Status:    status,
		Version:   h.version,
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    checks,
	})
}

func formatMB(bytes uint64) string {
	return fmt.Sprintf("%.2f", float64(bytes)/1024/1024)
}
