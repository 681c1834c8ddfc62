//go:build linux

package reactor

import (
	"sync"

	"golang.org/x/sys/unix"
)

// epollPoller runs epoll on its own dedicated goroutine, dispatching
// callbacks as events arrive, grounded on the teacher's FastPoller
// (eventloop/poller_linux.go) but driven internally rather than by an
// external single-threaded Loop, since a reactor is explicitly the
// bridge from outside the scheduler's goroutine (SPEC_FULL.md §B).
type epollPoller struct {
	epfd   int
	mu     sync.RWMutex
	fds    map[int]fdInfo
	closed chan struct{}
	once   sync.Once
}

type fdInfo struct {
	events IOEvents
	cb     IOCallback
}

func newPoller() (Poller, error) {
	epfd, err := unix.EpollCreate1(unix.EPOLL_CLOEXEC)
	if err != nil {
		return nil, err
	}
	p := &epollPoller{
		epfd:   epfd,
		fds:    make(map[int]fdInfo),
		closed: make(chan struct{}),
	}
	go p.loop()
	return p, nil
}

func (p *epollPoller) RegisterFD(fd int, events IOEvents, cb IOCallback) error {
	p.mu.Lock()
	if _, ok := p.fds[fd]; ok {
		p.mu.Unlock()
		return ErrFDAlreadyRegistered
	}
	p.fds[fd] = fdInfo{events: events, cb: cb}
	p.mu.Unlock()

	ev := &unix.EpollEvent{Events: eventsToEpoll(events), Fd: int32(fd)}
	if err := unix.EpollCtl(p.epfd, unix.EPOLL_CTL_ADD, fd, ev); err != nil {
		p.mu.Lock()
		delete(p.fds, fd)
		p.mu.Unlock()
		return err
	}
	return nil
}

func (p *epollPoller) UnregisterFD(fd int) error {
	p.mu.Lock()
	if _, ok := p.fds[fd]; !ok {
		p.mu.Unlock()
		return ErrFDNotRegistered
	}
	delete(p.fds, fd)
	p.mu.Unlock()
	return unix.EpollCtl(p.epfd, unix.EPOLL_CTL_DEL, fd, nil)
}

func (p *epollPoller) Close() error {
	p.once.Do(func() { close(p.closed) })
	return unix.Close(p.epfd)
}

func (p *epollPoller) loop() {
	var events [256]unix.EpollEvent
	for {
		select {
		case <-p.closed:
			return
		default:
		}

		n, err := unix.EpollWait(p.epfd, events[:], 100)
		if err != nil {
			if err == unix.EINTR {
				continue
			}
			return
		}
		for i := 0; i < n; i++ {
			fd := int(events[i].Fd)
			p.mu.RLock()
			info, ok := p.fds[fd]
			p.mu.RUnlock()
			if ok && info.cb != nil {
				info.cb(epollToEvents(events[i].Events))
			}
		}
	}
}

func eventsToEpoll(events IOEvents) uint32 {
	var e uint32
	if events&EventRead != 0 {
		e |= unix.EPOLLIN
	}
	if events&EventWrite != 0 {
		e |= unix.EPOLLOUT
	}
	return e
}

func epollToEvents(e uint32) IOEvents {
	var events IOEvents
	if e&unix.EPOLLIN != 0 {
		events |= EventRead
	}
	if e&unix.EPOLLOUT != 0 {
		events |= EventWrite
	}
	if e&unix.EPOLLERR != 0 {
		events |= EventError
	}
	if e&unix.EPOLLHUP != 0 {
		events |= EventHangup
	}
	return events
}
