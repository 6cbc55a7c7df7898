package tfl

import (
	"encoding/json"
	"errors"
	"time"

	"tarediiran-industries.com/tfl-status/internal/status"
)

var (
	errEmptyLines    = errors.New("response contains no lines")
	errEmptyStatuses = errors.New("line has no lineStatuses")
	errNoSeverity    = errors.New("lineStatuses[0] has no statusSeverity")
	errNoDescription = errors.New("lineStatuses[0] has no statusSeverityDescription")
)

// lineResponse is one element of the GET /line/{id}/status array.
// lineStatuses is kept raw so only the first entry has to be well formed.
type lineResponse struct {
	Name         string            `json:"name"`
	Modified     string            `json:"modified"`
	LineStatuses []json.RawMessage `json:"lineStatuses"`
}

type lineStatusResponse struct {
	StatusSeverity            *int    `json:"statusSeverity"`
	StatusSeverityDescription *string `json:"statusSeverityDescription"`
	Reason                    *string `json:"reason"`
}

// decodePayload picks the first line and the first status of that line.
// Any further elements are never decoded.
func decodePayload(body []byte) (status.Payload, error) {
	var lines []json.RawMessage
	if err := json.Unmarshal(body, &lines); err != nil {
		return status.Payload{}, err
	}
	if len(lines) == 0 {
		return status.Payload{}, errEmptyLines
	}

	var line lineResponse
	if err := json.Unmarshal(lines[0], &line); err != nil {
		return status.Payload{}, err
	}
	if len(line.LineStatuses) == 0 {
		return status.Payload{}, errEmptyStatuses
	}

	var lineStatus lineStatusResponse
	if err := json.Unmarshal(line.LineStatuses[0], &lineStatus); err != nil {
		return status.Payload{}, err
	}
	// A null entry decodes into the zero value, so both checks cover it too.
	if lineStatus.StatusSeverity == nil {
		return status.Payload{}, errNoSeverity
	}
	if lineStatus.StatusSeverityDescription == nil {
		return status.Payload{}, errNoDescription
	}

	payload := status.Payload{
		LineName:     line.Name,
		LastModified: parseModified(line.Modified),
		Severity:     *lineStatus.StatusSeverity,
		Description:  *lineStatus.StatusSeverityDescription,
	}
	if lineStatus.Reason != nil {
		payload.Reason = *lineStatus.Reason
	}

	return payload, nil
}

func parseModified(value string) *time.Time {
	if value == "" {
		return nil
	}
	modified, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return nil
	}
	modified = modified.UTC()
	return &modified
}
