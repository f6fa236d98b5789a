// device.go captures process and host state at event time.

package core

import (
	"os"
	"runtime"
	"time"

	"github.com/getsentry/sentry-go"
)

// DeviceContext snapshots the runtime at the current moment.
// The startTime parameter is used to calculate process uptime.
func DeviceContext(startTime time.Time) sentry.Context {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	hostname, _ := os.Hostname() // empty hostname is acceptable

	uptimeMs := time.Since(startTime).Milliseconds()
	if uptimeMs < 0 {
		uptimeMs = 0
	}

	return sentry.Context{
		"name":            hostname,
		"arch":            runtime.GOARCH,
		"os":              runtime.GOOS,
		"memory_size":     memStats.Sys,
		"usable_memory":   memStats.Alloc,
		"goroutine_count": runtime.NumGoroutine(),
		"uptime_ms":       uptimeMs,
	}
}
