package status

import (
	"strings"
	"time"
)

const (
	Marker = "●"
	indent = "    "
)

// Payload is the single status entry selected from an API response.
type Payload struct {
	LineName     string
	LastModified *time.Time
	Severity     int
	Description  string
	Reason       string
}

func (payload Payload) Category() Category {
	return Classify(payload.Severity)
}

// Span is a run of text. Marker spans carry the category that decides their color.
type Span struct {
	Text     string
	Marker   bool
	Category Category
}

type Text struct {
	Spans []Span
}

func (text Text) String() string {
	var builder strings.Builder
	for _, span := range text.Spans {
		builder.WriteString(span.Text)
	}
	return builder.String()
}

func (text Text) IsEmpty() bool {
	return len(text.Spans) == 0
}

// MarkerCategory reports the category of the first marker span.
func (text Text) MarkerCategory() (Category, bool) {
	for _, span := range text.Spans {
		if span.Marker {
			return span.Category, true
		}
	}
	return 0, false
}

// Render lays out a status block:
//
//	<line>
//
//	Status:
//	    ● <description>
//
//	Details:
//	    <reason>
//
// The Details section is left out when the reason is blank.
func Render(lineName string, payload Payload) Text {
	category := Classify(payload.Severity)

	text := Text{Spans: []Span{
		{Text: lineName + "\n\nStatus:\n" + indent},
		{Text: Marker, Marker: true, Category: category},
		{Text: " " + payload.Description + "\n"},
	}}

	if strings.TrimSpace(payload.Reason) != "" {
		text.Spans = append(text.Spans, Span{Text: "\nDetails:\n" + indentLines(payload.Reason) + "\n"})
	}

	return text
}

// indentLines prefixes every non-empty line of s and otherwise leaves it as is.
func indentLines(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = indent + line
		}
	}
	return strings.Join(lines, "\n")
}
