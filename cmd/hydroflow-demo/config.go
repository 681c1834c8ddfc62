package main

import (
	"os"
	"time"

	"github.com/joeycumines/go-catrate"

	"github.com/hydro-project/hydro-sub005/dlog"
)

// loggerLevel reads HYDROFLOW_DEMO_LOG_LEVEL ("debug", "info", "warn",
// "error"), defaulting to info so a plain run isn't silent but isn't
// noisy either.
func loggerLevel() dlog.Level {
	switch os.Getenv("HYDROFLOW_DEMO_LOG_LEVEL") {
	case "debug":
		return dlog.LevelDebug
	case "warn":
		return dlog.LevelWarn
	case "error":
		return dlog.LevelError
	default:
		return dlog.LevelInfo
	}
}

// catrateLimiter caps the demo's ingest subgraph at 10 events per
// 100ms, so the rate-limited source visibly holds items back at least
// once over the 20-event run this command drives.
func catrateLimiter() *catrate.Limiter {
	return catrate.NewLimiter(map[time.Duration]int{
		100 * time.Millisecond: 10,
	})
}
