package server

import (
	"encoding/binary"

	"github.com/inconshreveable/log15"
	"golang.org/x/sys/unix"

	"github.com/radixkv/radixkv/fetcher"
	"github.com/radixkv/radixkv/internal/chunklist"
	"github.com/radixkv/radixkv/internal/wire"
	"github.com/radixkv/radixkv/task"
	"github.com/radixkv/radixkv/trie"
)

const (
	labelRead task.Label = "READ"
	labelResp task.Label = "RESP"
	labelSend task.Label = "SEND"
	labelFill task.Label = "FILL"
	labelQuit task.Label = "QUIT"
)

// Connection owns one accepted socket: its inbound and outbound chunk
// lists, a Request subtask instance, and the Fetcher subtask instance
// the Request drives. Both subtask instances are persistent for the
// connection's whole lifetime, reused across every wire request.
type Connection struct {
	fd   int
	log  log15.Logger
	sched *task.Scheduler
	poller epoller

	inbound  *chunklist.List
	outbound *chunklist.List

	fetcherInst *task.Instance
	requestInst *task.Instance
	selfInst    *task.Instance

	// set by FILL when a CONTINUE bubbled up from the fetcher; the
	// next successful READ resumes the fetcher directly instead of
	// re-entering the request task, which is parked mid sub-call and
	// would otherwise be redispatched from the wrong label. See
	// DESIGN.md for why this sidesteps the literal "loop back to READ
	// then SUB(request_task) again" wording.
	awaitingFetch bool

	readBuf [wire.ReadBufSize]byte
}

// epoller is the subset of *readiness.Poller the connection needs,
// kept as an interface so tests can fake it.
type epoller interface {
	Modify(fd int, events uint32) error
	Remove(fd int) error
}

// NewConnection wires a freshly accepted fd into a persistent
// Request/Fetcher subtask pair and returns the not-yet-spawned
// Connection; call Spawn to register it with sched.
func NewConnection(fd int, t *trie.Trie[[]byte], sched *task.Scheduler, p epoller, log log15.Logger) *Connection {
	in := chunklist.New()
	out := chunklist.New()

	c := &Connection{
		fd:       fd,
		log:      log.New("fd", fd),
		sched:    sched,
		poller:   p,
		inbound:  in,
		outbound: out,
	}

	f := fetcher.New(in)
	c.fetcherInst = sched.Spawn(f, nil)

	req := newRequest(c.fetcherInst, t)
	c.requestInst = sched.Spawn(req, nil)

	return c
}

// Spawn registers the connection's own task with the scheduler,
// kicking off the READ/RESP/SEND cycle.
func (c *Connection) Spawn() *task.Instance {
	c.selfInst = c.sched.Spawn(c, nil)
	return c.selfInst
}

func (c *Connection) Step(label task.Label, in task.Args) task.Yield {
	switch label {
	case task.INIT:
		return task.YieldTo(labelRead)

	case labelRead:
		return c.doRead()

	case labelResp:
		return c.doResp(in)

	case labelSend:
		return c.doSend()

	case labelFill:
		c.awaitingFetch = true
		return task.YieldTo(labelRead)

	case labelQuit:
		c.log.Info("client requested quit")
		return task.Term()

	case task.TERM:
		return c.doTerm()
	}
	panic("connection: unreachable label " + label)
}

func (c *Connection) doRead() task.Yield {
	n, err := unix.Read(c.fd, c.readBuf[:])
	if err == unix.EAGAIN || err == unix.EWOULDBLOCK {
		return task.Suspend(labelRead)
	}
	if err != nil {
		c.log.Error("read failed", "err", err)
		return task.AbortErr("io error", nil)
	}
	if n == 0 {
		c.log.Debug("peer closed connection")
		return task.Term()
	}
	c.inbound.Append(c.readBuf[:n])

	if c.awaitingFetch {
		c.awaitingFetch = false
		c.sched.Resume(c.fetcherInst, nil)
		return task.Suspend(labelRead)
	}
	return task.SubCatch(c.requestInst, nil, labelResp, labelFill)
}

// doResp receives the Request subtask's reply tuple Args{quit bool,
// kind int, payload []byte}, frames it, and falls through to SEND.
func (c *Connection) doResp(in task.Args) task.Yield {
	quit := in.Bool(0)
	if quit {
		return task.YieldTo(labelQuit)
	}
	kind := uint8(in.Int(1))
	payload := in.Bytes(2)

	frame := make([]byte, 0, 5+len(payload))
	frame = append(frame, kind)
	var lenBuf [4]byte
	binary.BigEndian.PutUint32(lenBuf[:], uint32(len(payload)))
	frame = append(frame, lenBuf[:]...)
	frame = append(frame, payload...)
	c.outbound.Append(frame)

	return c.doSend()
}

func (c *Connection) doSend() task.Yield {
	for !c.outbound.Empty() {
		chunk := c.outbound.Peek(min(c.outbound.HeadChunk(), wire.WriteBufSize))
		n, err := unix.Write(c.fd, chunk)
		if err == unix.EAGAIN || err == unix.EWOULDBLOCK {
			return task.Suspend(labelSend)
		}
		if err != nil {
			c.log.Error("write failed", "err", err)
			return task.AbortErr("io error", nil)
		}
		c.outbound.Advance(n)
		if n < len(chunk) {
			return task.Suspend(labelSend)
		}
	}
	return task.YieldTo(labelRead)
}

func (c *Connection) doTerm() task.Yield {
	c.poller.Remove(c.fd)
	unix.Close(c.fd)
	c.inbound.Reset()
	c.outbound.Reset()
	return task.Term()
}
