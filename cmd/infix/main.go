package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/rs/zerolog"
	errgo "gopkg.in/errgo.v1"

	"github.com/zephyrtronium/infix"
	"github.com/zephyrtronium/infix/keypad"
)

type cli struct {
	Config    string `short:"c" type:"existingfile" help:"YAML configuration file."`
	LogLevel  string `help:"Log level (debug, info, warn, error). Overrides the configuration."`
	Strict    *bool  `help:"Reject expressions containing malformed tokens. Overrides the configuration."`
	MaxTokens *int   `help:"Maximum tokens per expression, 0 for no limit. Overrides the configuration."`
	Fmt       string `help:"Result formatting verb. Overrides the configuration."`

	Eval  evalCmd  `cmd:"" default:"withargs" help:"Evaluate expressions (default)."`
	Keys  keysCmd  `cmd:"" help:"Press calculator keys and print the display."`
	Serve serveCmd `cmd:"" help:"Evaluate expressions over HTTP."`
}

// override applies flags that were given over the configuration.
func (c *cli) override(cfg config) config {
	if c.LogLevel != "" {
		cfg.LogLevel = c.LogLevel
	}
	if c.Strict != nil {
		cfg.Strict = *c.Strict
	}
	if c.MaxTokens != nil {
		cfg.MaxTokens = *c.MaxTokens
	}
	if c.Fmt != "" {
		cfg.Format = c.Fmt
	}
	return cfg
}

// env is what every command runs with.
type env struct {
	cfg config
	log zerolog.Logger
	in  io.Reader
	out io.Writer
}

func main() {
	var c cli
	kctx := kong.Parse(&c,
		kong.Name("infix"),
		kong.Description("Evaluate space-separated infix arithmetic expressions."),
		kong.UsageOnError(),
	)
	cfg, err := loadConfig(c.Config)
	kctx.FatalIfErrorf(err)
	cfg = c.override(cfg)
	kctx.FatalIfErrorf(cfg.validate())
	log, err := newLogger(os.Stderr, cfg.LogLevel)
	kctx.FatalIfErrorf(err)
	e := &env{cfg: cfg, log: log, in: os.Stdin, out: os.Stdout}
	kctx.FatalIfErrorf(kctx.Run(e))
}

type evalCmd struct {
	Exprs []string `arg:"" optional:"" help:"Expressions to evaluate. With none, expressions are read one per line."`
	In    string   `short:"i" help:"Read expressions from this file, one per line (- for stdin)."`
	Echo  bool     `help:"Print the tokens of each expression before its result."`
}

func (c *evalCmd) Run(e *env) error {
	srcs := c.Exprs
	if len(srcs) == 0 || c.In != "" {
		lines, err := c.readLines(e.in)
		if err != nil {
			return errgo.Mask(err)
		}
		srcs = append(srcs, lines...)
	}
	ev := infix.NewEvaluator(e.cfg.options(e.log)...)
	verb := e.cfg.Format + "\n"
	failed := 0
	for _, src := range srcs {
		if c.Echo {
			toks, err := infix.Tokens(src)
			if err != nil {
				e.log.Warn().Err(err).Str("expr", src).Msg("malformed token")
			}
			fmt.Fprintf(e.out, "%q : ", toks)
		}
		r, err := ev.Eval(src)
		if err != nil {
			fmt.Fprintln(e.out, err)
			failed++
			continue
		}
		fmt.Fprintf(e.out, verb, r)
	}
	if failed > 0 {
		return errgo.Newf("%d of %d expressions rejected", failed, len(srcs))
	}
	return nil
}

// readLines reads the nonblank lines of the input file, or of stdin.
func (c *evalCmd) readLines(stdin io.Reader) ([]string, error) {
	r := stdin
	if c.In != "" && c.In != "-" {
		f, err := os.Open(c.In)
		if err != nil {
			return nil, errgo.Notef(err, "cannot open input")
		}
		defer f.Close()
		r = f
	}
	var lines []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, errgo.Notef(err, "cannot read input")
	}
	return lines, nil
}

type keysCmd struct {
	Keys []string `arg:"" help:"Keys to press: digits, '.', operators, parentheses, neg, sqrt, del, ce, ac, =."`
}

func (c *keysCmd) Run(e *env) error {
	k := keypad.New(e.cfg.options(e.log)...)
	for _, key := range c.Keys {
		if key != "=" {
			if err := k.Press(key); err != nil {
				e.log.Warn().Str("key", key).Err(err).Msg("key rejected")
			}
			continue
		}
		r, _, err := k.Equals()
		if err != nil {
			e.log.Warn().Str("key", key).Err(err).Msg("key rejected")
			continue
		}
		fmt.Fprintf(e.out, e.cfg.Format+"\n", r)
	}
	if _, shown := k.Result(); !shown || k.Entry() != "" {
		fmt.Fprintln(e.out, strings.TrimSpace(k.Display()+k.Entry()))
	}
	return nil
}

// shutdownSignals stop the server gracefully.
var shutdownSignals = []os.Signal{os.Interrupt, syscall.SIGTERM}

type serveCmd struct {
	Listen string `short:"l" help:"Address to listen on. Overrides the configuration."`
}

func (c *serveCmd) Run(e *env) error {
	addr := e.cfg.Listen
	if c.Listen != "" {
		addr = c.Listen
	}
	s := newServer(e.cfg, e.log)
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	ctx, stop := signal.NotifyContext(context.Background(), shutdownSignals...)
	defer stop()
	errc := make(chan error, 1)
	go func() {
		e.log.Info().Str("addr", addr).Msg("listening")
		errc <- srv.ListenAndServe()
	}()
	select {
	case err := <-errc:
		return errgo.Notef(err, "server failed")
	case <-ctx.Done():
	}
	e.log.Info().Msg("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return errgo.Mask(srv.Shutdown(sctx))
}
