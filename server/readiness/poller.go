// Package readiness wraps Linux epoll as the minimal readiness-
// notification collaborator the connection task suspends against: it
// is deliberately out of core scope (spec §1) and exposes only
// Add/Modify/Remove/Wait/Close.
package readiness

import (
	"golang.org/x/sys/unix"
)

// Event kinds a caller registers interest in.
const (
	EventRead  = unix.EPOLLIN
	EventWrite = unix.EPOLLOUT
)

// Ready is one fired registration: the file descriptor and which of
// its registered events became ready.
type Ready struct {
	Fd     int
	Events uint32
}

// Poller is a thin epoll wrapper; one instance per event loop.
type Poller struct {
	epfd int
}

// New creates the underlying epoll instance.
func New() (*Poller, error) {
	fd, err := unix.EpollCreate1(unix.EPOLL_CLOEXEC)
	if err != nil {
		return nil, err
	}
	return &Poller{epfd: fd}, nil
}

// Add registers fd for events (a bitwise-or of EventRead/EventWrite).
func (p *Poller) Add(fd int, events uint32) error {
	ev := unix.EpollEvent{Events: events, Fd: int32(fd)}
	return unix.EpollCtl(p.epfd, unix.EPOLL_CTL_ADD, fd, &ev)
}

// Modify changes the event mask for an already-registered fd.
func (p *Poller) Modify(fd int, events uint32) error {
	ev := unix.EpollEvent{Events: events, Fd: int32(fd)}
	return unix.EpollCtl(p.epfd, unix.EPOLL_CTL_MOD, fd, &ev)
}

// Remove deregisters fd; safe to call after the fd has already been
// closed (ENOENT/EBADF are swallowed).
func (p *Poller) Remove(fd int) error {
	err := unix.EpollCtl(p.epfd, unix.EPOLL_CTL_DEL, fd, nil)
	if err == unix.ENOENT || err == unix.EBADF {
		return nil
	}
	return err
}

// Wait blocks up to timeoutMs (-1 = forever) for ready fds, writing
// at most len(out) of them and returning the count. maxEvents (§6) is
// the caller's chosen capacity for out.
func (p *Poller) Wait(out []Ready, timeoutMs int) (int, error) {
	raw := make([]unix.EpollEvent, len(out))
	n, err := unix.EpollWait(p.epfd, raw, timeoutMs)
	if err != nil {
		if err == unix.EINTR {
			return 0, nil
		}
		return 0, err
	}
	for i := 0; i < n; i++ {
		out[i] = Ready{Fd: int(raw[i].Fd), Events: raw[i].Events}
	}
	return n, nil
}

// Close releases the epoll fd.
func (p *Poller) Close() error {
	return unix.Close(p.epfd)
}
