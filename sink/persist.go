package sink

// Persist accumulates every item it accepts into Buf (a state-cell
// vector) and forwards it to Next, replaying Buf's unreplayed suffix
// (from *ReplayIdx onward) before accepting anything new — spec.md
// §4.2's `Persist(vec, replay_idx, next)`: "on re-run, before accepting
// new items, re-sends the buffer's suffix to next to restore downstream
// state." Buf/ReplayIdx are caller-owned so a fresh Persist value per
// tick (ReplayIdx left at whatever the previous tick advanced it to, or
// reset to 0 by a LifespanTick cell) reproduces the replay-on-rerun
// contract without this operator tracking tick boundaries itself.
type Persist[Item any] struct {
	Buf       *[]Item
	ReplayIdx *int
	Next      Sink[Item]
	replayed  bool
}

// drainReplay sends Buf[*ReplayIdx:] to Next, pausing exactly where it
// left off if Next stops being ready — mirroring FlatMap's drain.
func (s *Persist[Item]) drainReplay(ctx *Context) (bool, error) {
	if s.replayed {
		return true, nil
	}
	for *s.ReplayIdx < len(*s.Buf) {
		ready, err := s.Next.PollReady(ctx)
		if err != nil {
			return false, err
		}
		if !ready {
			return false, nil
		}
		if err := s.Next.StartSend((*s.Buf)[*s.ReplayIdx]); err != nil {
			return false, err
		}
		*s.ReplayIdx++
	}
	s.replayed = true
	return true, nil
}

func (s *Persist[Item]) PollReady(ctx *Context) (bool, error) {
	if ready, err := s.drainReplay(ctx); err != nil || !ready {
		return ready, err
	}
	return s.Next.PollReady(ctx)
}

func (s *Persist[Item]) StartSend(item Item) error {
	*s.Buf = append(*s.Buf, item)
	*s.ReplayIdx++
	return s.Next.StartSend(item)
}

func (s *Persist[Item]) PollFlush(ctx *Context) (bool, error) {
	if ready, err := s.drainReplay(ctx); err != nil || !ready {
		return ready, err
	}
	return s.Next.PollFlush(ctx)
}

func (s *Persist[Item]) PollClose(ctx *Context) (bool, error) {
	if ready, err := s.drainReplay(ctx); err != nil || !ready {
		return ready, err
	}
	return s.Next.PollClose(ctx)
}
