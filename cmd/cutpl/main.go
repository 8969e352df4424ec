package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"golang.org/x/crypto/ssh/terminal"

	"github.com/cutprolog/prolog/engine"
)

// Version is a version of this build.
var Version = "cutpl/0.1"

func main() {
	var (
		verbose bool
		path    string
		mode    string
		version bool
	)
	pflag.BoolVarP(&verbose, "verbose", "v", false, `debug logging and port tracing`)
	pflag.StringVarP(&path, "config", "c", "", `YAML config file`)
	pflag.StringVar(&mode, "color", "", `colored output: auto, always, or never`)
	pflag.BoolVar(&version, "version", false, `print version and exit`)
	pflag.Parse()

	if version {
		fmt.Println(Version)
		return
	}

	cfg, err := loadConfig(path)
	if err != nil {
		logrus.WithError(err).Fatal("failed to load config")
	}
	if pflag.CommandLine.Changed("verbose") {
		cfg.Verbose = verbose
	}
	if pflag.CommandLine.Changed("color") {
		cfg.Color = mode
	}
	if err := cfg.validate(); err != nil {
		logrus.WithError(err).Fatal("invalid flags")
	}

	if cfg.Verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if !isatty.IsTerminal(os.Stdin.Fd()) {
		s := newSession(os.Stdout, cfg, newPalette(cfg.colorize(os.Stdout)))
		load(ctx, s, cfg)
		if err := s.batch(ctx, os.Stdin); err != nil {
			s.report(err)
			os.Exit(1)
		}
		return
	}

	oldState, err := terminal.MakeRaw(0)
	if err != nil {
		logrus.WithError(err).Fatal("failed to enter raw mode")
	}
	restore := func() {
		_ = terminal.Restore(0, oldState)
	}
	defer restore()

	t := terminal.NewTerminal(os.Stdin, cfg.Prompt)
	defer fmt.Printf("\r\n")

	logrus.SetOutput(t)

	s := newSession(t, cfg, newPalette(cfg.colorize(os.Stdout)))
	load(ctx, s, cfg)

	var buf strings.Builder
	keys := bufio.NewReader(os.Stdin)
	for {
		switch err := s.handleLine(ctx, &buf, t, keys); err {
		case nil:
			continue
		case io.EOF, errHalt:
			return
		default:
			logrus.WithError(err).Error("failed to handle line")
			return
		}
	}
}

// load consults the files in the config and then the files in the arguments.
func load(ctx context.Context, s *session, cfg Config) {
	if cfg.Verbose {
		trace(&s.i.VM)
	}

	for _, a := range append(cfg.Consult, pflag.Args()...) {
		if err := consultFile(ctx, s, a); err != nil {
			s.report(err)
		}
	}
}

func consultFile(ctx context.Context, s *session, name string) error {
	f, err := os.Open(name)
	if err != nil {
		return err
	}
	defer f.Close()
	return s.consult(ctx, name, f)
}

// trace logs the ports of user-defined predicates.
func trace(vm *engine.VM) {
	port := func(name string) func(engine.Term, *engine.Env) {
		return func(goal engine.Term, env *engine.Env) {
			logrus.WithField("port", name).Debug(env.Simplify(goal))
		}
	}
	vm.OnCall = port("CALL")
	vm.OnExit = port("EXIT")
	vm.OnRedo = port("REDO")
	vm.OnFail = port("FAIL")
}
