package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"text/template"
	"time"

	"github.com/northvolt/go-rv1805/rv1805"
	"github.com/peterbourgon/ff/v3/ffcli"
)

type infoConfig struct {
	rootConfig *rootConfig
	out        io.Writer
	err        io.Writer
	json       bool
}

func (c *infoConfig) Exec(ctx context.Context, _ []string) error {
	if c.rootConfig.verbose {
		fmt.Fprintf(c.err, "info\n")
	}

	d, closer, err := openRTC(ctx, c.rootConfig)
	if err != nil {
		return err
	}
	defer closer.Close()

	di, err := getDeviceInfo(ctx, d)
	if err != nil {
		return err
	}

	if c.json {
		return writeJSON(c.out, di)
	} else {
		return writeText(c.out, di)
	}
}

const deviceInfoTemplate = `
Device Part:
    {{ .Name }} (ID0 {{ printf "%02X" .PartsNumber }})

Hour Mode:
    {{ mode .Is12Hour }}

Clock:
    {{ .Date }} {{ .Time }}
    {{ .RFC3339 }}
`

func writeText(w io.Writer, di *deviceInfo) error {
	funcs := template.FuncMap{
		"mode": func(is12 bool) string {
			if is12 {
				return "12 hour"
			} else {
				return "24 hour"
			}
		},
	}
	t, err := template.New("info").Funcs(funcs).Parse(deviceInfoTemplate)
	if err != nil {
		return err
	}

	return t.Execute(w, di)
}

func writeJSON(w io.Writer, data any) error {
	j, err := json.MarshalIndent(data, "", " ")
	if err != nil {
		return err
	}
	_, err = w.Write(j)
	return err
}

func newInfoCmd(
	rootConfig *rootConfig, out io.Writer, err io.Writer,
) *ffcli.Command {
	cfg := infoConfig{
		rootConfig: rootConfig,
		out:        out,
		err:        err,
	}

	fs := flag.NewFlagSet("rv1805 info", flag.ExitOnError)
	fs.BoolVar(&cfg.json, "json", false, "output in json mode")
	rootConfig.registerFlags(fs)

	return addLongHelp(&ffcli.Command{
		Name:       "info",
		ShortUsage: "info",
		ShortHelp:  "Returns information about the real-time clock.",
		FlagSet:    fs,
		Options:    ffOptions(),
		Exec:       cfg.Exec,
	})
}

type deviceInfo struct {
	Name        string `json:"name"`
	PartsNumber byte   `json:"parts_number"`
	Is12Hour    bool   `json:"is_12_hour"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	RFC3339     string `json:"rfc3339"`
}

func getDeviceInfo(ctx context.Context, d *rv1805.Dev) (*deviceInfo, error) {
	var di = &deviceInfo{}

	di.PartsNumber = d.PartsNumber()
	di.Name = rv1805.PartName(di.PartsNumber)

	var err error
	di.Is12Hour, err = d.Is12Hour(ctx)
	if err != nil {
		return di, err
	}

	if err = d.UpdateTime(ctx); err != nil {
		return di, err
	}
	di.Date = d.StringDate()
	di.Time = d.StringTime()
	di.RFC3339 = d.Time().Format(time.RFC3339)

	return di, nil
}
