// Package wire defines the binary, big-endian TCP protocol: request
// command kinds, response frame kinds, and the size limits the
// connection and request tasks enforce.
package wire

// Version is the only request header version this server accepts.
const Version uint32 = 0

// Command kinds, the second request header field.
const (
	CmdSET uint8 = 1
	CmdGET uint8 = 2
	CmdLEV uint8 = 3
)

// Response frame kinds, the first byte of every reply frame.
const (
	RespScalar uint8 = 0 // textual/scalar payload
	RespList   uint8 = 1 // LEV result list
)

// ScalarGETPrefix marks a successful GET's payload.
const ScalarGETPrefix = '@'

const (
	MsgOK        = "OK"
	MsgNotFound  = "!key not found"
	MsgBadLen    = "!invalid length"
	MsgBadVer    = "!unsupported version"
	MsgBadCmd    = "!unknown command"
)

// Limits from §6: default listen port, backlog, buffer sizes, and the
// key-length bound enforced by the KeyStr helper.
const (
	DefaultPort    = 5210
	DefaultBacklog = 50
	ReadBufSize    = 1024
	WriteBufSize   = 1024
	MaxEvents      = 10

	MinKeyLen = 1
	MaxKeyLen = 1024
)
