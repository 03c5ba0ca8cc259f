package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/peterbourgon/ff/v3/ffcli"
)

type setConfig struct {
	rootConfig *rootConfig
	out        io.Writer
	err        io.Writer
	time       string
	date       string
	now        bool

	// clock returns the host time for -now.
	clock func() time.Time
}

func (c *setConfig) Exec(ctx context.Context, _ []string) error {
	if c.rootConfig.verbose {
		fmt.Fprintln(c.err, "set")
	}

	if c.now && (c.time != "" || c.date != "") {
		return errors.New("set: -now can not be combined with -time or -date")
	} else if !c.now && c.time == "" && c.date == "" {
		return errors.New("set: one of -now, -time or -date is required")
	}

	// parse before connecting so bad input never reaches the device
	var hms, ymd [3]int
	var err error
	if c.time != "" {
		if hms, err = parseClock(c.time, ":"); err != nil {
			return err
		}
	}
	if c.date != "" {
		if ymd, err = parseClock(c.date, "/"); err != nil {
			return err
		}
	}

	d, closer, err := openRTC(ctx, c.rootConfig)
	if err != nil {
		return err
	}
	defer closer.Close()

	if c.now {
		if err := d.SetClock(ctx, c.clock()); err != nil {
			return err
		}
	}
	if c.time != "" {
		if err := d.SetTime(ctx, hms[2], hms[1], hms[0]); err != nil {
			return err
		}
	}
	if c.date != "" {
		if err := d.SetDate(ctx, ymd[2], ymd[1], ymd[0]); err != nil {
			return err
		}
	}

	if err := d.UpdateTime(ctx); err != nil {
		return err
	}
	fmt.Fprintln(c.out, d.StringDate(), d.StringTime())
	return nil
}

func newSetCmd(rootConfig *rootConfig, out io.Writer, err io.Writer) *ffcli.Command {
	cfg := setConfig{
		rootConfig: rootConfig,
		out:        out,
		err:        err,
		clock:      time.Now,
	}

	fs := flag.NewFlagSet("rv1805 set", flag.ExitOnError)
	fs.StringVar(&cfg.time, "time", "", "time to set as hh:mm:ss, 24 hour format")
	fs.StringVar(&cfg.date, "date", "", "date to set as yy/mm/dd")
	fs.BoolVar(&cfg.now, "now", false, "set time and date from the host clock in UTC")
	rootConfig.registerFlags(fs)

	return addLongHelp(&ffcli.Command{
		Name:       "set",
		ShortUsage: "set [-time hh:mm:ss] [-date yy/mm/dd] [-now]",
		ShortHelp:  "Writes time and date to the clock.",
		FlagSet:    fs,
		Options:    ffOptions(),
		Exec:       cfg.Exec,
	})
}
