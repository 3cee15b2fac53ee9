package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/inconshreveable/log15"
	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/radixkv/radixkv/server"
)

var (
	version   string
	gitCommit string
	release   = "dev"
	log       = log15.New()
)

func newApp() *cli.App {
	app := cli.NewApp()
	app.Version = fmt.Sprintf("%s-%s-commit%s", release, version, gitCommit)
	app.Name = "radixkvd"
	app.Usage = "compressed radix-trie key/value daemon"
	app.Copyright = "2026 radixkv authors"
	app.Flags = []cli.Flag{
		addrFlag,
		portFlag,
		backlogFlag,
		verbosityFlag,
	}
	app.Action = runServer
	return app
}

func runServer(ctx *cli.Context) error {
	initLog(log15.Lvl(ctx.Int(verbosityFlag.Name)))

	cfg := server.Config{
		Addr:    ctx.String(addrFlag.Name),
		Port:    ctx.Int(portFlag.Name),
		Backlog: ctx.Int(backlogFlag.Name),
	}

	srv, err := server.New(cfg, log)
	if err != nil {
		return errors.Wrap(err, "creating server")
	}
	if err := srv.Listen(); err != nil {
		return errors.Wrap(err, "listening")
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-quit
		log.Info("shutting down")
		srv.Shutdown()
	}()

	return srv.Run()
}

func initLog(lvl log15.Lvl) {
	log15.Root().SetHandler(log15.LvlFilterHandler(lvl, log15.StderrHandler))
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
