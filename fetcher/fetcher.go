// Package fetcher implements the byte-fetching iterator subtask: a
// persistent task.Machine, driven by the request task, that pulls
// fixed-width integers and length-prefixed byte strings out of an
// accumulating chunklist.List, suspending with a soft CONTINUE
// exception whenever the list is starved.
package fetcher

import (
	"encoding/binary"

	"github.com/radixkv/radixkv/internal/chunklist"
	"github.com/radixkv/radixkv/task"
)

// Mode selects the field shape a FETCH call decodes.
type Mode uint8

const (
	Int8   Mode = iota // one byte
	Int16              // two bytes, network (big-endian) order
	Int16N             // two bytes, host order
	Int32              // four bytes, network (big-endian) order
	Str                // length-prefixed by the caller; size is explicit
)

const (
	labelFetch      task.Label = "FETCH"
	labelRead       task.Label = "READ"
	labelReturnInt  task.Label = "RETURN_INT"
	labelReturnPtr  task.Label = "RETURN_PTR"
)

// Fetcher decodes typed fields from buf on behalf of the request task
// that owns it. It never retains the *chunklist.List's bytes beyond a
// single field: each STR result is an owned clone.
type Fetcher struct {
	buf *chunklist.List

	mode      Mode
	needed    int
	extracted int
	data      []byte
}

// New returns a fetcher reading from buf, the connection's inbound
// chunk list.
func New(buf *chunklist.List) *Fetcher {
	return &Fetcher{buf: buf}
}

// Step implements task.Machine.
func (f *Fetcher) Step(label task.Label, in task.Args) task.Yield {
	switch label {
	case task.INIT:
		return task.Suspend(labelFetch)

	case labelFetch:
		f.mode = Mode(in.Int(0))
		switch f.mode {
		case Int8:
			f.needed = 1
		case Int16, Int16N:
			f.needed = 2
		case Int32:
			f.needed = 4
		case Str:
			f.needed = in.Int(1)
		}
		f.extracted = 0
		f.data = make([]byte, f.needed)
		return task.YieldTo(labelRead)

	case labelRead:
		got := f.buf.Read(f.data[f.extracted:f.needed])
		if got == 0 && f.extracted > 0 {
			// Re-invoked mid-field with nothing new to read: a CONTINUE
			// retry resumes here at READ with the bytes already extracted
			// kept, so a caller that retries without supplying more input
			// gets a hard failure, not another CONTINUE.
			return task.AbortErr("starved mid-field", nil)
		}
		f.extracted += got
		if f.extracted < f.needed {
			return task.ContinueErr("need more data", nil, labelRead)
		}
		if f.mode == Str {
			return task.YieldTo(labelReturnPtr)
		}
		return task.YieldTo(labelReturnInt)

	case labelReturnInt:
		var v uint32
		switch f.mode {
		case Int8:
			v = uint32(f.data[0])
		case Int16:
			v = uint32(binary.BigEndian.Uint16(f.data))
		case Int16N:
			v = uint32(binary.NativeEndian.Uint16(f.data))
		case Int32:
			v = binary.BigEndian.Uint32(f.data)
		}
		f.data = nil
		return task.Caller(task.Args{v}, labelFetch)

	case labelReturnPtr:
		out := f.data
		f.data = nil
		return task.Caller(task.Args{out}, labelFetch)

	case task.TERM:
		f.data = nil
		return task.Term()
	}
	panic("fetcher: unreachable label " + label)
}
