package board

type StatusPageVM struct {
	Lines        []string
	SelectedLine string
	PollSeconds  int
}

type StatusPanelVM struct {
	LineName  string
	Category  string
	Spans     []SpanVM
	UpdatedAt string
	Modified  string
}

// SpanVM is one run of the rendered status text. Color is empty for plain text.
type SpanVM struct {
	Text  string
	Color string
}
