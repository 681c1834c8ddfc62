//go:build linux

package reactor

import "golang.org/x/sys/unix"

// start registers fd with a dedicated epollPoller. Reads only happen
// once epoll reports the fd readable, so there's no race with the
// readiness notification itself consuming data (epoll never touches fd's
// buffer, matching eventloop/poller_linux.go's division of labor).
func (s *FDSource[T]) start(fd int) error {
	if err := unix.SetNonblock(fd, true); err != nil {
		return err
	}
	poller, err := NewPoller()
	if err != nil {
		return err
	}
	return poller.RegisterFD(fd, EventRead, func(ev IOEvents) {
		if ev&(EventHangup|EventError) != 0 {
			s.finish()
			return
		}
		buf := make([]byte, 4096)
		for {
			n, rerr := unix.Read(fd, buf)
			if n > 0 {
				if items, decErr := s.Decode(buf[:n]); decErr == nil {
					s.push(items)
				}
			}
			if n == 0 {
				s.finish()
				return
			}
			if rerr == unix.EAGAIN {
				return
			}
			if rerr != nil {
				s.finish()
				return
			}
		}
	})
}
