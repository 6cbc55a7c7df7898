package cmd

import (
	"context"
	"errors"
	"fmt"

	"tarediiran-industries.com/tfl-status/internal/prompt"
	"tarediiran-industries.com/tfl-status/internal/status"
	"tarediiran-industries.com/tfl-status/internal/tfl"
)

// ErrReported marks failures that have already been reported to the user.
var ErrReported = errors.New("already reported")

// showLine resolves name and starts a query for it without waiting. On success
// the configured surface is replaced and repainted; on failure a notice is
// printed and the surface keeps its previous contents. The returned channel
// receives exactly one value once the query settles.
func (app *TflStatusApp) showLine(ctx context.Context, name string) (<-chan error, error) {
	id, err := app.registry.Lookup(name)
	if err != nil {
		return nil, err
	}

	surface := app.board.Surface(app.config.Surface)
	result := make(chan error, 1)

	app.client.Query(ctx, id,
		func(payload status.Payload) {
			lineName := payload.LineName
			if lineName == "" {
				lineName = name
			}
			surface.Replace(status.Render(lineName, payload))
			app.terminal.Paint(surface)
			result <- nil
		},
		func(err error) {
			if ctx.Err() == nil {
				app.terminal.Notify("tfl-status: %s: %s", name, tfl.Describe(err))
			}
			result <- fmt.Errorf("%w: %s: %w", ErrReported, name, err)
		},
	)

	return result, nil
}

// interactive prompts for a line, shows it, and repeats until the prompt is
// closed or ctx is cancelled. Each query settles before the next prompt so output does not
// interleave with the selector.
func (app *TflStatusApp) interactive(ctx context.Context, once bool) error {
	for ctx.Err() == nil {
		name, err := app.chooser.Choose(ctx, "Line", app.registry.Names())
		if errors.Is(err, prompt.ErrAborted) {
			return nil
		}
		if err != nil {
			return err
		}

		result, err := app.showLine(ctx, name)
		if err != nil {
			app.terminal.Notify("tfl-status: %v", err)
			err = fmt.Errorf("%w: %w", ErrReported, err)
		} else {
			select {
			case err = <-result:
			case <-ctx.Done():
				return nil
			}
		}

		if once {
			return err
		}
	}
	return nil
}
