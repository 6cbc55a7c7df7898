package board

import (
	"errors"
	"flag"
	"fmt"
	"io"

	"tarediiran-industries.com/tfl-status/internal/common"
	"tarediiran-industries.com/tfl-status/internal/config"
)

type Config struct {
	Version        bool
	TomlConfigPath string
	ListenAddress  string
	PollSeconds    int

	Settings config.Config
}

func ParseArgs(programName string, args []string, errOut io.Writer) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errOut)

	fs.Usage = func() {
		fmt.Fprintf(errOut, "Usage: %s [options]\n\n", programName)
		fmt.Fprintln(errOut, "Options")
		fs.PrintDefaults()
	}

	fs.BoolVar(&cfg.Version, "version", false, "Prints version")
	fs.StringVar(&cfg.TomlConfigPath, "toml", "", "Configuration file (default "+config.DefaultPath()+")")
	fs.StringVar(&cfg.ListenAddress, "listen", ":8080", "Address to serve the board on")
	fs.IntVar(&cfg.PollSeconds, "poll", 60, "Seconds between panel refreshes in the browser")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if cfg.Version {
		fmt.Fprintf(errOut, "%s: version %s (%s)\n", programName, common.Version, common.GitCommit)
		return cfg, flag.ErrHelp
	}

	path, required := cfg.TomlConfigPath, true
	if path == "" {
		path, required = config.DefaultPath(), false
	}
	settings, err := config.Load(path, required)
	if err != nil {
		return Config{}, err
	}
	cfg.Settings = settings

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (cfg Config) Validate() error {
	if cfg.ListenAddress == "" {
		return fmt.Errorf("Missing required argument: listen")
	}
	if cfg.PollSeconds <= 0 {
		return fmt.Errorf("poll must be positive, got %d", cfg.PollSeconds)
	}
	return nil
}

func Main(programName string, args []string, stdOut, errOut io.Writer) int {
	cfg, err := ParseArgs(programName, args, errOut)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintln(errOut, "Error:", err)
		return 1
	}

	return Run(cfg, errOut)
}
