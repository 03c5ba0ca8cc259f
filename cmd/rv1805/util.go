package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/northvolt/go-rv1805/rv1805"
	"github.com/peterbourgon/ff/v3/ffcli"
	"go.uber.org/zap"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"
)

// openRTC connects to and initializes the clock. Tests replace it.
var openRTC = newRTC

func newRTC(ctx context.Context, c *rootConfig) (*rv1805.Dev, io.Closer, error) {
	switch c.iface {
	case "i2c":
		return newRTC_I2C(ctx, c)
	case "hid":
		return newRTC_HID(ctx, c)
	default:
		return nil, nil, errors.New("rv1805: unknown interface")
	}
}

func newRTC_I2C(ctx context.Context, c *rootConfig) (*rv1805.Dev, io.Closer, error) {
	addr, err := getI2CAddress(c.addr)
	if err != nil {
		return nil, nil, err
	}

	if _, err = host.Init(); err != nil {
		return nil, nil, err
	}
	bus, err := i2creg.Open(c.bus)
	if err != nil {
		return nil, nil, fmt.Errorf("rv1805: failed to connect to bus: %w", err)
	}

	cfg := rv1805.ConfigRV1805_I2CDefault(bus)
	cfg.Debug = newLogger(c.verbose)
	cfg.I2C.Address = addr
	d, err := rv1805.NewI2CDev(ctx, cfg)
	if err != nil {
		_ = bus.Close()
		return nil, nil, err
	}
	return d, bus, nil
}

func newRTC_HID(ctx context.Context, c *rootConfig) (*rv1805.Dev, io.Closer, error) {
	addr, err := getI2CAddress(c.addr)
	if err != nil {
		return nil, nil, err
	}

	cfg := rv1805.ConfigRV1805_MCP2221Default()
	cfg.Debug = newLogger(c.verbose)
	cfg.I2C.Address = addr
	cfg.HID.DevIndex = c.devIndex

	return rv1805.NewHIDDev(ctx, cfg)
}

func getI2CAddress(addrStr string) (uint16, error) {
	if addrStr == "" {
		return rv1805.DefaultAddress, nil
	}
	addr, err := strconv.ParseUint(strings.TrimPrefix(addrStr, "0x"), 16, 7)
	if err != nil {
		return 0, fmt.Errorf("rv1805: invalid i2c address %q", addrStr)
	}
	return uint16(addr), nil
}

// parseClock parses three numbers separated by sep, eg 09:30:05.
func parseClock(s string, sep string) ([3]int, error) {
	var v [3]int
	parts := strings.Split(s, sep)
	if len(parts) != len(v) {
		return v, fmt.Errorf("rv1805: %q is not in the form nn%snn%snn", s, sep, sep)
	}
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return v, fmt.Errorf("rv1805: %q is not in the form nn%snn%snn", s, sep, sep)
		}
		v[i] = n
	}
	return v, nil
}

func addLongHelp(cmd *ffcli.Command) *ffcli.Command {
	if cmd.LongHelp == "" {
		cmd.LongHelp = cmd.ShortHelp
	}

	cmd.LongHelp += rv1805LongHelp

	return cmd
}

func newLogger(verbose bool) rv1805.Logger {
	if !verbose {
		return nil
	}
	l, err := zap.NewDevelopment()
	if err != nil {
		return log.New(os.Stderr, "", 0)
	}
	return zap.NewStdLog(l)
}
