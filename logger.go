// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package ocean

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/gogpu/ocean/compute"
)

// nopHandler is a slog.Handler that silently discards all log records.
// The Enabled method returns false so the caller skips message formatting
// entirely, making disabled logging effectively zero-cost.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

// newNopLogger creates a logger that silently discards all output.
func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr stores the active logger. Accessed atomically so that
// SetLogger can be called concurrently with logging from any goroutine.
var loggerPtr atomic.Pointer[slog.Logger]

// liveDevices are the devices of open simulations. SetLogger forwards
// the logger to them.
var (
	liveMu      sync.Mutex
	liveDevices = make(map[compute.Device]int)
)

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger for ocean and the devices it opens.
// By default, ocean produces no log output. Call SetLogger to enable
// logging.
//
// SetLogger is safe for concurrent use: it stores the new logger atomically.
// Pass nil to disable logging (restore default silent behavior).
//
// Log levels used by ocean:
//   - [slog.LevelDebug]: texture allocation, per-frame stage timing
//   - [slog.LevelInfo]: simulation initialized, GPU adapter selected
//   - [slog.LevelWarn]: CPU fallback
//
// Example:
//
//	ocean.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)

	liveMu.Lock()
	devs := make([]compute.Device, 0, len(liveDevices))
	for d := range liveDevices {
		devs = append(devs, d)
	}
	liveMu.Unlock()
	for _, d := range devs {
		propagateLogger(d, l)
	}
}

// Logger returns the current logger used by ocean.
//
// Logger is safe for concurrent use.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}

// slogger is the package-internal shorthand for Logger.
func slogger() *slog.Logger { return loggerPtr.Load() }

// loggerSetter is implemented by devices that accept a logger.
type loggerSetter interface {
	SetLogger(*slog.Logger)
}

// propagateLogger passes the logger to a device if it implements the
// loggerSetter interface.
func propagateLogger(d compute.Device, l *slog.Logger) {
	if ls, ok := d.(loggerSetter); ok {
		ls.SetLogger(l)
	}
}

// trackDevice registers d for logger propagation and hands it the
// current logger.
func trackDevice(d compute.Device) {
	liveMu.Lock()
	liveDevices[d]++
	liveMu.Unlock()
	propagateLogger(d, Logger())
}

func untrackDevice(d compute.Device) {
	liveMu.Lock()
	defer liveMu.Unlock()
	if liveDevices[d] <= 1 {
		delete(liveDevices, d)
		return
	}
	liveDevices[d]--
}
