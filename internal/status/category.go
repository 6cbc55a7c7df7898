package status

import "fmt"

type Category int

const (
	GoodService Category = iota
	MinorDelay
	MajorDelay
	LineClosed
	SpecialService
)

var Categories = []Category{GoodService, MinorDelay, MajorDelay, LineClosed, SpecialService}

var categoryNames = map[Category]string{
	GoodService:    "good_service",
	MinorDelay:     "minor_delay",
	MajorDelay:     "major_delay",
	LineClosed:     "line_closed",
	SpecialService: "special_service",
}

func (category Category) String() string {
	if name, ok := categoryNames[category]; ok {
		return name
	}
	return fmt.Sprintf("category(%d)", int(category))
}

type rule struct {
	matches  func(code int) bool
	category Category
}

// Rules are evaluated in order and the first match wins. 0 must be tested
// before the delay rules since it would otherwise land in MajorDelay. The
// MinorDelay band stops below 10; everything past it other than 20 is MajorDelay.
var rules = []rule{
	{func(code int) bool { return code == 10 }, GoodService},
	{func(code int) bool { return code == 20 }, LineClosed},
	{func(code int) bool { return code == 0 }, SpecialService},
	{func(code int) bool { return code >= 8 && code < 10 }, MinorDelay},
	{func(code int) bool { return true }, MajorDelay},
}

// Classify buckets a TfL severity code into one of the display categories.
func Classify(code int) Category {
	for _, r := range rules {
		if r.matches(code) {
			return r.category
		}
	}
	return MajorDelay
}
