package server

import (
	"encoding/binary"

	"github.com/radixkv/radixkv/fetcher"
	"github.com/radixkv/radixkv/internal/wire"
	"github.com/radixkv/radixkv/task"
	"github.com/radixkv/radixkv/trie"
)

const (
	labelKeyLen    task.Label = "KEYLEN"
	labelKeyLenGot task.Label = "KEYLEN_GOT"
	labelKeyStrGot task.Label = "KEYSTR_GOT"
)

// fetchKeyLen issues the fetcher call common to every command's first
// step: the INT32 key length.
func fetchKeyLen(fetcherInst *task.Instance, next task.Label) task.Yield {
	return task.Sub(fetcherInst, task.Args{int(fetcher.Int32)}, next)
}

// validateKeyLen checks §6's key-length bound, returning the decoded
// length or an abort yield.
func validateKeyLen(in task.Args) (int, *task.Yield) {
	l := int(in[0].(uint32))
	if l < wire.MinKeyLen || l > wire.MaxKeyLen {
		y := task.AbortErr(wire.MsgBadLen, nil)
		return 0, &y
	}
	return l, nil
}

func fetchKeyStr(fetcherInst *task.Instance, keyLen int, next task.Label) task.Yield {
	return task.Sub(fetcherInst, task.Args{int(fetcher.Str), keyLen}, next)
}

func scalarReply(msg string) task.Yield {
	return task.Caller(task.Args{int(wire.RespScalar), []byte(msg)}, task.TERM)
}

// getCmd implements §4.7 GET.
type getCmd struct {
	fetcherInst *task.Instance
	trie        *trie.Trie[[]byte]
}

func newGetCmd(fetcherInst *task.Instance, t *trie.Trie[[]byte]) *getCmd {
	return &getCmd{fetcherInst: fetcherInst, trie: t}
}

func (c *getCmd) Step(label task.Label, in task.Args) task.Yield {
	switch label {
	case task.INIT:
		return fetchKeyLen(c.fetcherInst, labelKeyLen)
	case labelKeyLen:
		l, abort := validateKeyLen(in)
		if abort != nil {
			return *abort
		}
		return fetchKeyStr(c.fetcherInst, l, labelKeyStrGot)
	case labelKeyStrGot:
		key := in.Bytes(0)
		v, ok := c.trie.Get(key)
		if !ok {
			return scalarReply(wire.MsgNotFound)
		}
		payload := append([]byte{wire.ScalarGETPrefix}, v...)
		return task.Caller(task.Args{int(wire.RespScalar), payload}, task.TERM)
	case task.TERM:
		return task.Term()
	}
	panic("getCmd: unreachable label " + label)
}

// setCmd implements §4.7 SET.
type setCmd struct {
	fetcherInst *task.Instance
	trie        *trie.Trie[[]byte]

	key []byte
}

func newSetCmd(fetcherInst *task.Instance, t *trie.Trie[[]byte]) *setCmd {
	return &setCmd{fetcherInst: fetcherInst, trie: t}
}

const (
	labelValLen    task.Label = "VALLEN"
	labelValLenGot task.Label = "VALLEN_GOT"
	labelValStrGot task.Label = "VALSTR_GOT"
)

func (c *setCmd) Step(label task.Label, in task.Args) task.Yield {
	switch label {
	case task.INIT:
		return fetchKeyLen(c.fetcherInst, labelKeyLen)
	case labelKeyLen:
		l, abort := validateKeyLen(in)
		if abort != nil {
			return *abort
		}
		return fetchKeyStr(c.fetcherInst, l, labelKeyStrGot)
	case labelKeyStrGot:
		c.key = in.Bytes(0)
		return task.Sub(c.fetcherInst, task.Args{int(fetcher.Int32)}, labelValLenGot)
	case labelValLenGot:
		vlen := int(in[0].(uint32))
		if vlen <= 0 {
			return task.AbortErr(wire.MsgBadLen, nil)
		}
		return task.Sub(c.fetcherInst, task.Args{int(fetcher.Str), vlen}, labelValStrGot)
	case labelValStrGot:
		val := in.Bytes(0)
		c.trie.Insert(c.key, val)
		return scalarReply(wire.MsgOK)
	case task.TERM:
		return task.Term()
	}
	panic("setCmd: unreachable label " + label)
}

// levCmd implements §4.7 LEV.
type levCmd struct {
	fetcherInst *task.Instance
	trie        *trie.Trie[[]byte]

	key []byte
}

func newLevCmd(fetcherInst *task.Instance, t *trie.Trie[[]byte]) *levCmd {
	return &levCmd{fetcherInst: fetcherInst, trie: t}
}

const labelParamsGot task.Label = "PARAMS_GOT"

func (c *levCmd) Step(label task.Label, in task.Args) task.Yield {
	switch label {
	case task.INIT:
		return fetchKeyLen(c.fetcherInst, labelKeyLen)
	case labelKeyLen:
		l, abort := validateKeyLen(in)
		if abort != nil {
			return *abort
		}
		return fetchKeyStr(c.fetcherInst, l, labelKeyStrGot)
	case labelKeyStrGot:
		c.key = in.Bytes(0)
		return task.Sub(c.fetcherInst, task.Args{int(fetcher.Int16N)}, labelParamsGot)
	case labelParamsGot:
		params := in[0].(uint32)
		maxLev := int(params & 0xff)
		maxSuf := int((params >> 8) & 0xff)

		results := c.trie.Approx(c.key, maxLev, maxSuf)
		payload := encodeLevResults(results)
		return task.Caller(task.Args{int(wire.RespList), payload}, task.TERM)
	case task.TERM:
		return task.Term()
	}
	panic("levCmd: unreachable label " + label)
}

// encodeLevResults writes §4.7's LEV result wire format: a 4-byte
// count, then per result a distance byte, a suffix-flag byte, the
// length-prefixed key, and the length-prefixed value.
func encodeLevResults(results []trie.ApproxResult[[]byte]) []byte {
	out := make([]byte, 4)
	binary.BigEndian.PutUint32(out, uint32(len(results)))

	var lenBuf [4]byte
	for _, r := range results {
		out = append(out, byte(r.Dist))
		if r.Suffix {
			out = append(out, 1)
		} else {
			out = append(out, 0)
		}

		binary.BigEndian.PutUint32(lenBuf[:], uint32(len(r.Key)))
		out = append(out, lenBuf[:]...)
		out = append(out, r.Key...)

		binary.BigEndian.PutUint32(lenBuf[:], uint32(len(r.Val)))
		out = append(out, lenBuf[:]...)
		out = append(out, r.Val...)
	}
	return out
}
