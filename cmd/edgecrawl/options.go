package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/lixenwraith/edge-crawler/config"
)

type cliFlags struct {
	configPath string
	envPath    string
	debug      bool
	listen     string
	mute       bool
	seed       uint64
	dump       bool
	set        map[string]bool
}

func parseFlags(args []string, errOut io.Writer) (cliFlags, error) {
	var f cliFlags
	fs := flag.NewFlagSet("edgecrawl", flag.ContinueOnError)
	fs.SetOutput(errOut)
	fs.StringVar(&f.configPath, "config", "", "TOML options file")
	fs.StringVar(&f.envPath, "env", ".env", "dotenv file with EDGECRAWL_* overrides")
	fs.BoolVar(&f.debug, "debug", false, "write logs/edgecrawl.log")
	fs.StringVar(&f.listen, "listen", "", "serve the frame stream on this address, e.g. :8080")
	fs.BoolVar(&f.mute, "mute", false, "disable sound")
	fs.Uint64Var(&f.seed, "seed", 0, "random seed, 0 for time-based")
	fs.BoolVar(&f.dump, "dump-config", false, "print the resolved options as TOML and exit")
	if err := fs.Parse(args); err != nil {
		return f, err
	}

	f.set = make(map[string]bool)
	fs.Visit(func(fl *flag.Flag) { f.set[fl.Name] = true })
	return f, nil
}

// resolveOptions applies defaults, file, environment and explicitly set flags in that order
func resolveOptions(f cliFlags) (config.Options, error) {
	opts, err := config.Resolve(f.configPath, f.envPath)
	if err != nil {
		return opts, fmt.Errorf("load options: %w", err)
	}
	if f.set["debug"] {
		opts.Host.Debug = f.debug
	}
	if f.set["listen"] {
		opts.Host.Listen = f.listen
	}
	if f.set["mute"] {
		opts.Host.Mute = f.mute
	}
	if f.set["seed"] {
		opts.Seed = f.seed
	}
	opts.Normalize()
	return opts, nil
}
