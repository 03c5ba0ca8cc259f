package main

import (
	"context"
	"flag"
	"fmt"
	"io"

	"github.com/northvolt/go-rv1805/rv1805"
	"github.com/peterbourgon/ff/v3/ffcli"
)

type initConfig struct {
	rootConfig *rootConfig
	out        io.Writer
	err        io.Writer
}

func (c *initConfig) Exec(ctx context.Context, _ []string) error {
	if c.rootConfig.verbose {
		fmt.Fprintln(c.err, "init")
	}

	// opening the device runs the initialization sequence
	d, closer, err := openRTC(ctx, c.rootConfig)
	if err != nil {
		return err
	}
	defer closer.Close()

	id := d.PartsNumber()
	fmt.Fprintf(c.out, "Device Part:\n    %s (ID0 %02X)\n\n", rv1805.PartName(id), id)
	fmt.Fprintln(c.out, "Trickle charge enabled, low power mode set, 24 hour mode")
	return nil
}

func newInitCmd(rootConfig *rootConfig, out io.Writer, err io.Writer) *ffcli.Command {
	cfg := initConfig{
		rootConfig: rootConfig,
		out:        out,
		err:        err,
	}

	fs := flag.NewFlagSet("rv1805 init", flag.ExitOnError)
	rootConfig.registerFlags(fs)

	return addLongHelp(&ffcli.Command{
		Name:       "init",
		ShortUsage: "init",
		ShortHelp:  "Configures charging and power management and selects 24 hour mode.",
		FlagSet:    fs,
		Options:    ffOptions(),
		Exec:       cfg.Exec,
	})
}
