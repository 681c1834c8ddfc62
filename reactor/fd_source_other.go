//go:build !linux

package reactor

import "os"

// start spawns a dedicated goroutine blocking on Read, since this
// platform has no epoll bridge wired (reactor_other.go's fallbackPoller
// is reserved for pure readiness/wakeup fds, not byte-stream sources —
// consuming bytes there to detect readiness would race with the actual
// decode done here).
func (s *FDSource[T]) start(fd int) error {
	f := os.NewFile(uintptr(fd), "reactor-fd-source")
	go func() {
		buf := make([]byte, 4096)
		for {
			n, err := f.Read(buf)
			if n > 0 {
				if items, decErr := s.Decode(buf[:n]); decErr == nil {
					s.push(items)
				}
			}
			if err != nil {
				s.finish()
				return
			}
		}
	}()
	return nil
}
