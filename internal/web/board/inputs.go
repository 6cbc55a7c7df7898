package board

import (
	"net/url"
	"strings"
)

type StatusQuery struct {
	Line string // display name, matched case-sensitively against the registry
}

func ParseStatusQuery(values url.Values) StatusQuery {
	return StatusQuery{Line: strings.TrimSpace(values.Get("line"))}
}
