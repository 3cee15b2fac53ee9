// Package server wires the connection, request, and command tasks
// (§4.5-4.7) onto a listening socket, driven by an epoll readiness
// loop (§5-6).
package server

import (
	"fmt"
	"net"

	"github.com/inconshreveable/log15"
	"golang.org/x/sys/unix"

	"github.com/radixkv/radixkv/server/readiness"
	"github.com/radixkv/radixkv/task"
	"github.com/radixkv/radixkv/trie"
)

// Config carries the listen parameters of §6.
type Config struct {
	Addr    string
	Port    int
	Backlog int
}

// DefaultConfig mirrors §6's defaults.
func DefaultConfig() Config {
	return Config{Addr: "0.0.0.0", Port: 5210, Backlog: 50}
}

// Server is the single-threaded event loop: one trie, one scheduler,
// one epoll registration, per §5.
type Server struct {
	cfg Config
	log log15.Logger

	trie  *trie.Trie[[]byte]
	sched *task.Scheduler
	poll  *readiness.Poller

	listenFd int
	conns    map[int]*Connection

	shutdown bool
}

// New constructs a Server bound to cfg; call Run to accept and serve.
func New(cfg Config, log log15.Logger) (*Server, error) {
	poll, err := readiness.New()
	if err != nil {
		return nil, err
	}
	return &Server{
		cfg:   cfg,
		log:   log,
		trie:  trie.New[[]byte](),
		sched: task.New(),
		poll:  poll,
		conns: make(map[int]*Connection),
	}, nil
}

// Listen opens the listening socket and registers it with the
// poller.
func (s *Server) Listen() error {
	fd, err := unix.Socket(unix.AF_INET, unix.SOCK_STREAM|unix.SOCK_NONBLOCK, 0)
	if err != nil {
		return err
	}
	if err := unix.SetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_REUSEADDR, 1); err != nil {
		return err
	}

	addr := unix.SockaddrInet4{Port: s.cfg.Port}
	if s.cfg.Addr != "" {
		ip := net.ParseIP(s.cfg.Addr).To4()
		if ip == nil {
			return fmt.Errorf("invalid IPv4 listen address %q", s.cfg.Addr)
		}
		copy(addr.Addr[:], ip)
	}
	if err := unix.Bind(fd, &addr); err != nil {
		return err
	}
	if err := unix.Listen(fd, s.cfg.Backlog); err != nil {
		return err
	}

	s.listenFd = fd
	s.log.Info("listening", "port", s.cfg.Port, "backlog", s.cfg.Backlog)
	return s.poll.Add(fd, readiness.EventRead)
}

// Shutdown requests an orderly stop: the next Run iteration closes
// every live task via closeVM.
func (s *Server) Shutdown() { s.shutdown = true }

// Run drives the accept/readiness loop until Shutdown is called. It
// blocks the calling goroutine.
func (s *Server) Run() error {
	events := make([]readiness.Ready, 10)

	for !s.shutdown {
		n, err := s.poll.Wait(events, 1000)
		if err != nil {
			return err
		}

		for i := 0; i < n; i++ {
			ev := events[i]
			if ev.Fd == s.listenFd {
				s.accept()
				continue
			}
			conn, ok := s.conns[ev.Fd]
			if !ok {
				continue
			}
			if ev.Events&(readiness.EventRead|readiness.EventWrite) != 0 {
				s.sched.Resume(conn.selfInst, nil)
			}
		}

		s.sched.Run(4096)
	}

	s.sched.CloseVM()
	s.sched.Run(4096)
	return unix.Close(s.listenFd)
}

func (s *Server) accept() {
	for {
		fd, _, err := unix.Accept4(s.listenFd, unix.SOCK_NONBLOCK)
		if err == unix.EAGAIN || err == unix.EWOULDBLOCK {
			return
		}
		if err != nil {
			s.log.Warn("accept failed", "err", err)
			return
		}

		// Registered for both directions up front: the connection task
		// only ever suspends waiting on whichever of READ/SEND it was
		// in, so a spurious wakeup on the other direction just falls
		// straight back into a suspend with no effect.
		if err := s.poll.Add(fd, readiness.EventRead|readiness.EventWrite); err != nil {
			s.log.Warn("poller add failed", "err", err)
			unix.Close(fd)
			continue
		}

		conn := NewConnection(fd, s.trie, s.sched, s.poll, s.log)
		conn.Spawn()
		s.conns[fd] = conn
	}
}
