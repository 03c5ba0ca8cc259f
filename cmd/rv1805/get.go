package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/peterbourgon/ff/v3/ffcli"
)

const (
	formatText    = "text"
	formatRFC3339 = "rfc3339"
	formatUnix    = "unix"
)

type getConfig struct {
	rootConfig *rootConfig
	out        io.Writer
	err        io.Writer
	format     string
}

func (c *getConfig) Exec(ctx context.Context, _ []string) error {
	if c.rootConfig.verbose {
		fmt.Fprintln(c.err, "get")
	}

	switch c.format {
	case formatText, formatRFC3339, formatUnix:
	default:
		return fmt.Errorf("get: unknown format %q", c.format)
	}

	d, closer, err := openRTC(ctx, c.rootConfig)
	if err != nil {
		return err
	}
	defer closer.Close()

	if err := d.UpdateTime(ctx); err != nil {
		return err
	}

	switch c.format {
	case formatRFC3339:
		fmt.Fprintln(c.out, d.Time().Format(time.RFC3339))
	case formatUnix:
		fmt.Fprintln(c.out, d.Time().Unix())
	default:
		fmt.Fprintln(c.out, d.StringDate(), d.StringTime())
	}
	return nil
}

func newGetCmd(rootConfig *rootConfig, out io.Writer, err io.Writer) *ffcli.Command {
	cfg := getConfig{
		rootConfig: rootConfig,
		out:        out,
		err:        err,
	}

	fs := flag.NewFlagSet("rv1805 get", flag.ExitOnError)
	fs.StringVar(&cfg.format, "format", formatText, "output format, text, rfc3339 or unix")
	rootConfig.registerFlags(fs)

	return &ffcli.Command{
		Name:       "get",
		ShortUsage: "get [-format text|rfc3339|unix]",
		ShortHelp:  "Reads the clock and prints yy/mm/dd hh:mm:ss.",
		FlagSet:    fs,
		Options:    ffOptions(),
		Exec:       cfg.Exec,
	}
}
