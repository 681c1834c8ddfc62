// Package logadapter bridges the runtime's dlog.Logger interface to a
// logiface.Logger[*stumpy.Event], the structured-JSON backend the
// teacher's logiface-stumpy package provides (SPEC_FULL.md A.1). Use
// this in place of dlog.WriterLogger whenever the runtime should emit
// machine-parseable log lines rather than the plain-text test format.
package logadapter

import (
	"io"
	"os"

	"github.com/joeycumines/logiface"
	"github.com/joeycumines/stumpy"

	"github.com/hydro-project/hydro-sub005/dlog"
)

// Stumpy adapts a logiface.Logger[*stumpy.Event] to dlog.Logger, mapping
// dlog.Entry's scheduler-specific fields onto structured log fields
// (tick, stratum, subgraph, handoff, duration) the way the teacher's own
// components attach request-scoped fields via Builder.Int/Str/Err.
type Stumpy struct {
	logger *logiface.Logger[*stumpy.Event]
}

// NewStumpy builds a Stumpy logger writing JSON lines to out at minLevel
// and above.
func NewStumpy(out io.Writer, minLevel dlog.Level) *Stumpy {
	if out == nil {
		out = os.Stderr
	}
	l := stumpy.L.New(
		stumpy.L.WithStumpy(stumpy.WithWriter(out)),
		stumpy.L.WithLevel(toLogifaceLevel(minLevel)),
	)
	return &Stumpy{logger: l}
}

// IsEnabled implements dlog.Logger.
func (s *Stumpy) IsEnabled(level dlog.Level) bool {
	threshold := s.logger.Level()
	return threshold.Enabled() && toLogifaceLevel(level) <= threshold
}

// Log implements dlog.Logger.
func (s *Stumpy) Log(e dlog.Entry) {
	b := s.logger.Build(toLogifaceLevel(e.Level))
	if b == nil {
		return
	}
	b = b.Str("category", e.Category)
	if e.Tick != 0 {
		b = b.Uint64("tick", e.Tick)
	}
	if e.Stratum >= 0 {
		b = b.Int64("stratum", e.Stratum)
	}
	if e.Subgraph >= 0 {
		b = b.Int64("subgraph", e.Subgraph)
	}
	if e.Handoff >= 0 {
		b = b.Int64("handoff", e.Handoff)
	}
	if e.Duration != 0 {
		b = b.Dur("duration", e.Duration)
	}
	if e.Err != nil {
		b = b.Err(e.Err)
	}
	b.Log(e.Message)
}

func toLogifaceLevel(l dlog.Level) logiface.Level {
	switch l {
	case dlog.LevelDebug:
		return logiface.LevelDebug
	case dlog.LevelInfo:
		return logiface.LevelInformational
	case dlog.LevelWarn:
		return logiface.LevelWarning
	case dlog.LevelError:
		return logiface.LevelError
	default:
		return logiface.LevelInformational
	}
}
