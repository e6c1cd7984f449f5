package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"

	"github.com/navionguy/linebasic/cli"
	"github.com/navionguy/linebasic/fileserv"
	"github.com/navionguy/linebasic/library"
	"github.com/navionguy/linebasic/localfiles"
	"github.com/navionguy/linebasic/object"
	"github.com/navionguy/linebasic/settings"
	"github.com/navionguy/linebasic/terminal"
)

func main() {
	cfg, args, err := settings.Parse(os.Args[0], os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.Level()})))

	if len(cfg.Listen) > 0 {
		srv, closer, err := newServer(cfg)
		if err != nil {
			log.Fatal(err)
		}
		defer closer()
		slog.Info("listening", "addr", cfg.Listen)
		log.Fatal(http.ListenAndServe(cfg.Listen, srv))
	}

	os.Exit(run(cfg, args, os.Stdin, os.Stdout))
}

// newServer wires the session server to the program library
func newServer(cfg settings.Config) (*fileserv.Server, func(), error) {
	lib, err := library.Open(cfg.Library)
	if err != nil {
		return nil, nil, err
	}

	srv := fileserv.NewServer(fileserv.Options{
		Storage: lib,
		Catalog: lib,
		Files:   cfg.StorageDir,
		Limits:  cfg.Limits(),
		Trace:   cfg.Trace,
		Logger:  slog.Default(),
	})

	closer := func() {
		srv.Shutdown()
		lib.Close()
	}
	return srv, closer, nil
}

// run is the local interpreter, a program named in args runs and
// exits, otherwise the user gets the command line
func run(cfg settings.Config, args []string, in io.Reader, out io.Writer) int {
	dir, err := localfiles.NewDir(cfg.StorageDir)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	term := terminal.New(in, out, terminal.Options{Charset: cfg.Charset, Editing: true})
	defer term.Close()

	env := object.NewEnvironment(term, cfg.Limits())
	env.SetStorage(dir)
	env.SetFileOpener(dir)
	env.SetTrace(cfg.Trace)
	defer env.CloseAllFiles()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt)
	defer func() {
		signal.Stop(sigs)
		close(sigs)
	}()
	go func() {
		for range sigs {
			term.SignalBreak()
		}
	}()

	if len(args) > 0 {
		if err := cli.RunFile(env, args[0]); err != nil {
			return 1
		}
		return 0
	}

	cli.Start(env)
	return 0
}
