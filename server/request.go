package server

import (
	"github.com/radixkv/radixkv/fetcher"
	"github.com/radixkv/radixkv/internal/wire"
	"github.com/radixkv/radixkv/task"
	"github.com/radixkv/radixkv/trie"
)

const (
	labelReq task.Label = "REQ"
	labelVer task.Label = "VER"
	labelCmd task.Label = "CMD"
	labelRes task.Label = "RES"
)

// request is the persistent per-connection subtask of §4.6: it reads
// a header, dispatches to a fresh command subtask, and loops.
// Starvation on the shared fetcher is never caught here — it climbs
// straight past this instance to the connection's own CATCH, since
// only the connection can supply more bytes.
type request struct {
	fetcherInst *task.Instance
	trie        *trie.Trie[[]byte]

	cmd uint8
}

func newRequest(fetcherInst *task.Instance, t *trie.Trie[[]byte]) *request {
	return &request{fetcherInst: fetcherInst, trie: t}
}

func (r *request) Step(label task.Label, in task.Args) task.Yield {
	switch label {
	case task.INIT:
		return task.Suspend(labelReq)

	case labelReq:
		return task.Sub(r.fetcherInst, task.Args{int(fetcher.Int32)}, labelVer)

	case labelVer:
		version := in[0].(uint32)
		if version != wire.Version {
			return task.AbortErr(wire.MsgBadVer, nil)
		}
		return task.Sub(r.fetcherInst, task.Args{int(fetcher.Int8)}, labelCmd)

	case labelCmd:
		r.cmd = uint8(in[0].(uint32))
		switch r.cmd {
		case wire.CmdSET:
			return task.Su(newSetCmd(r.fetcherInst, r.trie), nil, labelRes)
		case wire.CmdGET:
			return task.Su(newGetCmd(r.fetcherInst, r.trie), nil, labelRes)
		case wire.CmdLEV:
			return task.Su(newLevCmd(r.fetcherInst, r.trie), nil, labelRes)
		default:
			return task.AbortErr(wire.MsgBadCmd, nil)
		}

	case labelRes:
		kind := in.Int(0)
		payload := in.Bytes(1)
		return task.Caller(task.Args{false, kind, payload}, labelReq)

	case task.TERM:
		return task.Term()
	}
	panic("request: unreachable label " + label)
}
