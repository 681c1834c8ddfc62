// Command hydroflow-demo wires the dataflow runtime to a real external
// producer: a background goroutine writes newline-delimited integers
// into a pipe, reactor.FDSource turns that byte stream into a
// pull.Channel[int], reactor.RateLimitedSource throttles it through a
// catrate.Limiter, and a single subgraph drains the result with the pull
// and sink combinator libraries, logging tick boundaries as structured
// JSON via logadapter.Stumpy.
package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/hydro-project/hydro-sub005/graph"
	"github.com/hydro-project/hydro-sub005/logadapter"
	"github.com/hydro-project/hydro-sub005/pivot"
	"github.com/hydro-project/hydro-sub005/pull"
	"github.com/hydro-project/hydro-sub005/reactor"
	"github.com/hydro-project/hydro-sub005/sink"
	"github.com/hydro-project/hydro-sub005/wake"
)

// decodeLines turns a byte chunk into zero or more ints, one per
// newline-terminated line, carrying an incomplete trailing line forward
// to the next call via the closure's carry buffer.
func decodeLines(carry *string) func([]byte) ([]int, error) {
	return func(b []byte) ([]int, error) {
		*carry += string(b)
		var out []int
		for {
			idx := strings.IndexByte(*carry, '\n')
			if idx < 0 {
				break
			}
			line := (*carry)[:idx]
			*carry = (*carry)[idx+1:]
			if line == "" {
				continue
			}
			v, err := strconv.Atoi(line)
			if err != nil {
				return nil, fmt.Errorf("hydroflow-demo: bad line %q: %w", line, err)
			}
			out = append(out, v)
		}
		return out, nil
	}
}

func main() {
	const totalEvents = 20

	r, w, err := os.Pipe()
	if err != nil {
		log.Fatal(err)
	}
	defer r.Close()

	go func() {
		defer w.Close()
		bw := bufio.NewWriter(w)
		for i := 1; i <= totalEvents; i++ {
			fmt.Fprintln(bw, i)
			bw.Flush()
			time.Sleep(5 * time.Millisecond)
		}
	}()

	// The FDSource's background reader and the rate limiter's held-item
	// state must outlive any single tick, so both are built once here —
	// not inside BuildFn, which graph.AddSubgraph's RunFunc contract
	// reconstructs fresh every run (the same persistent-external-source
	// idiom graph/dfir_test.go uses for its fakeChannel). The demo drives
	// via a fixed-interval Tick loop below rather than wiring a real
	// cross-goroutine waker, so wake.Noop is enough here.
	var carry string
	src, err := reactor.NewFDSource[int](int(r.Fd()), decodeLines(&carry), wake.Noop)
	if err != nil {
		log.Fatal(err)
	}
	limited := &reactor.RateLimitedSource[int]{
		Inner:    src,
		Limiter:  catrateLimiter(),
		Category: "demo",
		Waker:    wake.Noop,
	}

	b := graph.NewBuilder()

	var total int
	var seen int

	sg := graph.AddSubgraph(b, "ingest", 0, nil, nil, func(ctx *graph.OpContext) graph.RunFunc {
		seq := pull.Map[int, int](pull.FromChannel[int](limited), func(v int) int { return v * 2 })
		s := &sink.ForEach[int]{F: func(v int) {
			seen++
			total += v
		}}
		var pending int
		var hasPending bool

		return func() error {
			pctx := &pull.Context{Waker: ctx.Waker}
			sctx := &sink.Context{Waker: ctx.Waker}
			_, err := pivot.Drive(pctx, seq, sctx, s, &pending, &hasPending)
			return err
		}
	})

	logger := logadapter.NewStumpy(os.Stdout, loggerLevel())
	g, err := graph.Build(b, graph.WithLogger(logger), graph.WithMetrics(true))
	if err != nil {
		log.Fatal(err)
	}

	// "ingest" has no handoff inputs, so nothing ever schedules it via
	// the normal downstream-wakeup path; as a root external-source
	// subgraph it's rescheduled by the poll loop itself each iteration,
	// the same role a real waker-driven reschedule would play.
	deadline := time.Now().Add(2 * time.Second)
	for seen < totalEvents && time.Now().Before(deadline) {
		g.ScheduleInitial(sg)
		if err := g.Tick(); err != nil {
			log.Fatal(err)
		}
		if seen < totalEvents {
			time.Sleep(2 * time.Millisecond)
		}
	}

	fmt.Printf("processed %d events, sum of doubled values = %d\n", seen, total)
}
