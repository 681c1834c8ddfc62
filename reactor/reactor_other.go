//go:build !linux

package reactor

import (
	"io"
	"os"
	"sync"
)

// fallbackPoller backs Poller on platforms without an epoll bridge: one
// goroutine per registered fd blocks on Read and reports EventRead
// whenever data arrives, trading the efficiency of a real readiness
// multiplexer for portability (no platform-specific syscalls at all).
// EventWrite is never reported: a writer can only be told "try now",
// which this package has no portable way to arrange without epoll/kqueue.
type fallbackPoller struct {
	mu      sync.Mutex
	entries map[int]*fallbackEntry
	closed  bool
}

type fallbackEntry struct {
	file *os.File
	stop chan struct{}
}

func newPoller() (Poller, error) {
	return &fallbackPoller{entries: make(map[int]*fallbackEntry)}, nil
}

func (p *fallbackPoller) RegisterFD(fd int, events IOEvents, cb IOCallback) error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return ErrPollerClosed
	}
	if _, ok := p.entries[fd]; ok {
		p.mu.Unlock()
		return ErrFDAlreadyRegistered
	}
	entry := &fallbackEntry{file: os.NewFile(uintptr(fd), "reactor-fd"), stop: make(chan struct{})}
	p.entries[fd] = entry
	p.mu.Unlock()

	if events&EventRead != 0 {
		go entry.readLoop(cb)
	}
	return nil
}

func (e *fallbackEntry) readLoop(cb IOCallback) {
	buf := make([]byte, 1)
	for {
		select {
		case <-e.stop:
			return
		default:
		}
		n, err := e.file.Read(buf)
		if n > 0 && cb != nil {
			cb(EventRead)
		}
		if err != nil {
			if err == io.EOF && cb != nil {
				cb(EventHangup)
			} else if cb != nil {
				cb(EventError)
			}
			return
		}
	}
}

func (p *fallbackPoller) UnregisterFD(fd int) error {
	p.mu.Lock()
	entry, ok := p.entries[fd]
	if !ok {
		p.mu.Unlock()
		return ErrFDNotRegistered
	}
	delete(p.entries, fd)
	p.mu.Unlock()
	close(entry.stop)
	return nil
}

func (p *fallbackPoller) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true
	for fd, entry := range p.entries {
		close(entry.stop)
		delete(p.entries, fd)
	}
	return nil
}
