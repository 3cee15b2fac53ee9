package main

import (
	"github.com/inconshreveable/log15"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/radixkv/radixkv/internal/wire"
)

var (
	addrFlag = cli.StringFlag{
		Name:  "addr",
		Value: "0.0.0.0",
		Usage: "listen address",
	}
	portFlag = cli.IntFlag{
		Name:  "port",
		Value: wire.DefaultPort,
		Usage: "listen port",
	}
	backlogFlag = cli.IntFlag{
		Name:  "backlog",
		Value: wire.DefaultBacklog,
		Usage: "listen socket backlog",
	}
	verbosityFlag = cli.IntFlag{
		Name:  "verbosity",
		Value: int(log15.LvlInfo),
		Usage: "log verbosity (0-9)",
	}
)
