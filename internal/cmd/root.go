package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"tarediiran-industries.com/tfl-status/internal/common"
	"tarediiran-industries.com/tfl-status/internal/config"
	"tarediiran-industries.com/tfl-status/internal/display"
	"tarediiran-industries.com/tfl-status/internal/lines"
	"tarediiran-industries.com/tfl-status/internal/prompt"
	"tarediiran-industries.com/tfl-status/internal/tfl"
)

type TflStatusApp struct {
	ConfigPath string
	LogLevel   string
	Telemetry  string
	NoColor    bool

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	config    config.Config
	logger    *logrus.Logger
	registry  *lines.Registry
	client    *tfl.Client
	board     *display.Board
	terminal  *display.Terminal
	chooser   prompt.Chooser
	telemetry *common.TelemetryServer
}

func NewApp(stdin io.Reader, stdout, stderr io.Writer) *TflStatusApp {
	return &TflStatusApp{stdin: stdin, stdout: stdout, stderr: stderr}
}

func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := NewApp(os.Stdin, os.Stdout, os.Stderr)
	err := app.Run(ctx, os.Args[1:])
	if err != nil && !errors.Is(err, ErrReported) {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	return err
}

// Run executes the command line in args. Resources opened during setup are
// released on every path, including a failing RunE.
func (app *TflStatusApp) Run(ctx context.Context, args []string) error {
	defer func() {
		if err := app.close(); err != nil && app.logger != nil {
			app.logger.WithError(err).Warn("telemetry shutdown")
		}
	}()

	root := NewRootCmd(app)
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

func NewRootCmd(app *TflStatusApp) *cobra.Command {
	var once bool

	cmd := &cobra.Command{
		Use:           "tfl-status",
		Short:         "Show the live status of a London transport line",
		Version:       fmt.Sprintf("%s (%s)", common.Version, common.GitCommit),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.setup()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.interactive(cmd.Context(), once)
		},
	}

	cmd.SetIn(app.stdin)
	cmd.SetOut(app.stdout)
	cmd.SetErr(app.stderr)

	cmd.PersistentFlags().StringVar(
		&app.ConfigPath,
		"toml",
		"",
		"Path to configuration file (default "+config.DefaultPath()+")",
	)
	cmd.PersistentFlags().StringVar(&app.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(&app.Telemetry, "telemetry", "", "Serve /metrics on this address, e.g. :9102")
	cmd.PersistentFlags().BoolVar(&app.NoColor, "no-color", false, "Disable colored output")
	cmd.Flags().BoolVar(&once, "once", false, "Exit after showing one line")

	cmd.AddCommand(NewStatusCmd(app))
	cmd.AddCommand(NewLinesCmd(app))
	cmd.AddCommand(NewWatchCmd(app))

	return cmd
}

func (app *TflStatusApp) setup() error {
	path, required := app.ConfigPath, true
	if path == "" {
		path, required = config.DefaultPath(), false
	}

	cfg, err := config.Load(path, required)
	if err != nil {
		return err
	}
	app.config = cfg

	app.logger = logrus.New()
	app.logger.SetOutput(app.stderr)
	app.logger.SetLevel(cfg.LogLevel)
	if app.LogLevel != "" {
		level, err := logrus.ParseLevel(app.LogLevel)
		if err != nil {
			return fmt.Errorf("--log-level: %w", err)
		}
		app.logger.SetLevel(level)
	}

	app.registry, err = cfg.Registry()
	if err != nil {
		return err
	}

	var metrics *common.Metrics
	telemetryAddr := app.Telemetry
	if telemetryAddr == "" {
		telemetryAddr = cfg.Telemetry
	}
	if telemetryAddr != "" {
		app.telemetry = common.NewTelemetryServer(telemetryAddr, app.logger)
		metrics = common.NewMetrics(app.telemetry.GetRegistry())
		if err := app.telemetry.Start(); err != nil {
			return fmt.Errorf("telemetry: %w", err)
		}
	}

	app.client = tfl.NewClient(tfl.ClientConfig{
		BaseURL: cfg.BaseURL,
		Timeout: cfg.Timeout,
		Logger:  app.logger,
		Metrics: metrics,
	})

	app.board = display.NewBoard()
	app.terminal = &display.Terminal{
		Out:     app.stdout,
		ErrOut:  app.stderr,
		Palette: cfg.Palette,
		NoColor: app.NoColor || !isColorTerminal(app.stdout),
	}

	if app.chooser == nil {
		app.chooser = newChooser(app.stdin, app.stdout)
	}

	app.logger.WithFields(logrus.Fields{
		"base_url": cfg.BaseURL,
		"lines":    app.registry.Len(),
	}).Debug("tfl-status ready")

	return nil
}

func (app *TflStatusApp) close() error {
	if app.telemetry == nil {
		return nil
	}
	telemetry := app.telemetry
	app.telemetry = nil
	return telemetry.Stop()
}

func isColorTerminal(out io.Writer) bool {
	file, ok := out.(*os.File)
	return ok && file == os.Stdout && !color.NoColor
}

func newChooser(in io.Reader, out io.Writer) prompt.Chooser {
	inFile, inOK := in.(*os.File)
	outFile, outOK := out.(*os.File)
	if inOK && outOK {
		return prompt.New(inFile, outFile)
	}
	return prompt.NewMenu(in, out)
}
