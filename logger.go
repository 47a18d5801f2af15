package willow3d

import (
	"sync/atomic"

	"go.uber.org/zap"
)

// loggerPtr stores the active logger.
var loggerPtr atomic.Pointer[zap.Logger]

func init() {
	loggerPtr.Store(zap.NewNop())
}

// SetLogger configures the logger used by willow3d and its sub-packages.
// By default willow3d produces no log output. Pass nil to restore the silent
// default.
//
// Log levels used:
//   - Debug: per-frame update timings (debug mode only), scene file reloads
//   - Info: viewer lifecycle
//   - Warn: suspicious tree shapes such as very deep hierarchies, failed reloads
//
// Example:
//
//	logger, _ := zap.NewDevelopment()
//	willow3d.SetLogger(logger)
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	loggerPtr.Store(l)
}

// Logger returns the current logger.
func Logger() *zap.Logger {
	return loggerPtr.Load()
}
