package board

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"tarediiran-industries.com/tfl-status/internal/common"
	"tarediiran-industries.com/tfl-status/internal/tfl"
)

func Run(cfg Config, errOut io.Writer) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := logrus.New()
	logger.SetOutput(errOut)
	logger.SetLevel(cfg.Settings.LogLevel)

	registry, err := cfg.Settings.Registry()
	if err != nil {
		fmt.Fprintln(errOut, "Error:", err)
		return 1
	}

	metricsRegistry := common.NewRuntimeRegistry()
	client := tfl.NewClient(tfl.ClientConfig{
		BaseURL: cfg.Settings.BaseURL,
		Timeout: cfg.Settings.Timeout,
		Logger:  logger,
		Metrics: common.NewMetrics(metricsRegistry),
	})

	server, err := NewBoardServer(ServerConfig{
		ListenAddress: cfg.ListenAddress,
		PollSeconds:   cfg.PollSeconds,
		SurfaceName:   cfg.Settings.Surface,
		Client:        client,
		Registry:      registry,
		Palette:       cfg.Settings.Palette,
		Logger:        logger,
		Gatherer:      metricsRegistry,
	})
	if err != nil {
		fmt.Fprintln(errOut, "Error:", err)
		return 1
	}

	server.Serve(ctx)
	return 0
}
