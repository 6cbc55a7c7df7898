package display

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/fatih/color"
)

// Terminal paints surfaces to Out and notices to ErrOut.
type Terminal struct {
	Out     io.Writer
	ErrOut  io.Writer
	Palette Palette

	// NoColor forces plain output, e.g. when Out is not a terminal.
	NoColor bool

	mu sync.Mutex
}

func (terminal *Terminal) Paint(surface *Surface) {
	terminal.mu.Lock()
	defer terminal.mu.Unlock()

	var builder strings.Builder
	title := "-- " + surface.Name() + " --"
	builder.WriteString(title + "\n")

	for _, span := range surface.Content().Spans {
		if span.Marker && !terminal.NoColor {
			marker := color.New(terminal.Palette.For(span.Category).Attr)
			marker.EnableColor()
			builder.WriteString(marker.Sprint(span.Text))
			continue
		}
		builder.WriteString(span.Text)
	}
	builder.WriteString(strings.Repeat("-", len([]rune(title))) + "\n")

	fmt.Fprint(terminal.Out, builder.String())
}

// Notify reports a message without touching any surface.
func (terminal *Terminal) Notify(format string, args ...any) {
	terminal.mu.Lock()
	defer terminal.mu.Unlock()

	out := terminal.ErrOut
	if out == nil {
		out = terminal.Out
	}
	fmt.Fprintf(out, format+"\n", args...)
}
