package main

import (
	"context"
	"flag"
	"fmt"
	"io"

	"github.com/peterbourgon/ff/v3/ffcli"
	"github.com/robfig/cron/v3"
)

type watchConfig struct {
	rootConfig *rootConfig
	out        io.Writer
	err        io.Writer
	schedule   string
	count      int
}

func (c *watchConfig) Exec(ctx context.Context, _ []string) error {
	if c.rootConfig.verbose {
		fmt.Fprintln(c.err, "watch", c.schedule)
	}

	parent := ctx
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	d, closer, err := openRTC(ctx, c.rootConfig)
	if err != nil {
		return err
	}
	defer closer.Close()

	var (
		errc = make(chan error, 1)
		n    int
	)
	sched := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	_, err = sched.AddFunc(c.schedule, func() {
		if err := d.UpdateTime(ctx); err != nil {
			select {
			case errc <- err:
			default:
			}
			cancel()
			return
		}
		fmt.Fprintln(c.out, d.StringDate(), d.StringTime())

		n++
		if c.count > 0 && n >= c.count {
			cancel()
		}
	})
	if err != nil {
		return fmt.Errorf("watch: invalid schedule %q: %w", c.schedule, err)
	}

	sched.Start()
	<-ctx.Done()
	<-sched.Stop().Done()

	select {
	case err := <-errc:
		return err
	default:
		return parent.Err()
	}
}

func newWatchCmd(rootConfig *rootConfig, out io.Writer, err io.Writer) *ffcli.Command {
	cfg := watchConfig{
		rootConfig: rootConfig,
		out:        out,
		err:        err,
	}

	fs := flag.NewFlagSet("rv1805 watch", flag.ExitOnError)
	fs.StringVar(&cfg.schedule, "schedule", "@every 1s", "cron schedule for reading the clock")
	fs.IntVar(&cfg.count, "count", 0, "stop after this many reads, 0 runs until interrupted")
	rootConfig.registerFlags(fs)

	return addLongHelp(&ffcli.Command{
		Name:       "watch",
		ShortUsage: "watch [-schedule expr] [-count n]",
		ShortHelp:  "Reads and prints the clock on a schedule.",
		FlagSet:    fs,
		Options:    ffOptions(),
		Exec:       cfg.Exec,
	})
}
