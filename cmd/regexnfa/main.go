package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"regexnfa/internal/compiler"
	"regexnfa/internal/config"
	"regexnfa/internal/server"
)

const usage = `usage:
  regexnfa serve [-config file] [-env file]
  regexnfa compile [-format json|dot|go] [-pkg name] [-name ident] <regex>`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "serve":
		err = serve(os.Args[2:])
	case "compile":
		err = compile(os.Args[2:], os.Stdout)
	default:
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}

	os.Exit(exitCode(err, os.Stderr))
}

// exitCode reports err and returns the process status for it. A rejected
// pattern is the user's mistake and gets a plain message; anything else is
// logged.
func exitCode(err error, stderr io.Writer) int {
	var inErr *compiler.InputError
	switch {
	case err == nil, errors.Is(err, flag.ErrHelp):
		return 0
	case errors.As(err, &inErr):
		fmt.Fprintln(stderr, "error:", inErr)
		return 1
	default:
		log := logrus.New()
		log.SetOutput(stderr)
		log.Error(err)
		return 1
	}
}

func serve(args []string) error {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	cfgPath := fs.String("config", "", "YAML config file")
	envFile := fs.String("env", ".env", "dotenv file (ignored if absent)")
	_ = fs.Parse(args)

	cfg, err := config.Load(*cfgPath, *envFile)
	if err != nil {
		return err
	}
	log, err := cfg.NewLogger(os.Stderr)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return server.New(cfg, log).Run(ctx)
}

func compile(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("compile", flag.ContinueOnError)
	format := fs.String("format", "json", "output format: json, dot or go")
	pkg := fs.String("pkg", "automata", "package name for -format go")
	name := fs.String("name", "NFA", "identifier prefix for -format go")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.Errorf("expected exactly one regex, got %d arguments", fs.NArg())
	}
	pattern := fs.Arg(0)

	automaton, err := compiler.Compile(pattern)
	if err != nil {
		return err
	}
	switch *format {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return errors.Wrap(enc.Encode(automaton), "writing json")
	case "dot":
		return errors.Wrap(automaton.WriteDOT(out), "writing dot")
	case "go":
		return errors.Wrap(automaton.WriteGo(out, *pkg, *name, pattern), "writing go source")
	default:
		return errors.Errorf("unknown format %q", *format)
	}
}
