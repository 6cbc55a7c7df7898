package board

import (
	"fmt"
	"time"

	"tarediiran-industries.com/tfl-status/internal/display"
	"tarediiran-industries.com/tfl-status/internal/status"
)

func BuildStatusPageVM(lines []string, selected string, pollSeconds int) StatusPageVM {
	if selected == "" && len(lines) > 0 {
		selected = lines[0]
	}
	if pollSeconds <= 0 {
		pollSeconds = 60
	}

	return StatusPageVM{
		Lines:        lines,
		SelectedLine: selected,
		PollSeconds:  pollSeconds,
	}
}

func BuildStatusPanelVM(lineName string, payload status.Payload, text status.Text, palette display.Palette, now time.Time) StatusPanelVM {
	spans := make([]SpanVM, 0, len(text.Spans))
	for _, span := range text.Spans {
		vm := SpanVM{Text: span.Text}
		if span.Marker {
			vm.Color = palette.For(span.Category).CSS
		}
		spans = append(spans, vm)
	}

	panel := StatusPanelVM{
		LineName:  lineName,
		Category:  payload.Category().String(),
		Spans:     spans,
		UpdatedAt: now.Format("15:04:05"),
	}
	if payload.LastModified != nil {
		panel.Modified = formatAge(now, *payload.LastModified)
	}
	return panel
}

func formatAge(now, then time.Time) string {
	d := now.Sub(then)
	if d < 0 {
		d = 0
	}
	if d < 10*time.Second {
		return fmt.Sprintf("%.1fs ago", d.Seconds())
	}
	if d < time.Minute {
		return fmt.Sprintf("%ds ago", int(d.Seconds()))
	}
	if d < time.Hour {
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	}
	return fmt.Sprintf("%dh ago", int(d.Hours()))
}
