package main

import (
	"context"
	"flag"

	"github.com/peterbourgon/ff/v3"
	"github.com/peterbourgon/ff/v3/ffcli"
)

// envVarPrefix lets every flag be set from the environment, eg RV1805_BUS.
const envVarPrefix = "RV1805"

type rootConfig struct {
	verbose  bool
	iface    string
	bus      string
	addr     string
	devIndex int
}

func (c *rootConfig) registerFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.verbose, "v", false, "increase log verbosity")
	fs.StringVar(&c.iface, "i", "i2c", "interface type, hid or i2c")
	fs.StringVar(&c.bus, "bus", "", "i2c bus name or number, empty for the first bus")
	fs.StringVar(&c.addr, "addr", "", "i2c address in hex")
	fs.IntVar(&c.devIndex, "dev-index", 0, "bridge index when enumerating hid devices")
}

func (c *rootConfig) Exec(context.Context, []string) error {
	return flag.ErrHelp
}

func newRootCmd() (*ffcli.Command, *rootConfig) {
	var cfg rootConfig

	fs := flag.NewFlagSet("rv1805", flag.ExitOnError)
	cfg.registerFlags(fs)

	return addLongHelp(&ffcli.Command{
		Name:       "rv1805",
		ShortUsage: "rv1805 [flags] <subcommand>",
		ShortHelp:  "Utilities to set up and use your RV-1805 real-time clock.",
		FlagSet:    fs,
		Options:    ffOptions(),
		Exec:       cfg.Exec,
	}), &cfg
}

func ffOptions() []ff.Option {
	return []ff.Option{ff.WithEnvVarPrefix(envVarPrefix)}
}

var rv1805LongHelp = `

GENERAL
The clock is reached on a Linux I²C bus by default. Use -i hid to talk to it
through a Microchip MCP2221A USB-to-I²C bridge instead.

Every flag can also be given as an environment variable prefixed with
RV1805_, eg RV1805_BUS=1 or RV1805_ADDR=0x69.

Set always writes the time in 24 hour format. Run init once after the clock
lost its backup supply.`
