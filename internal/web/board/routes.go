package board

import (
	"errors"
	"net/http"
	"time"

	"tarediiran-industries.com/tfl-status/internal/common"
	"tarediiran-industries.com/tfl-status/internal/lines"
	"tarediiran-industries.com/tfl-status/internal/status"
	"tarediiran-industries.com/tfl-status/internal/tfl"
)

func (server *BoardServer) handleStatusPage(writer http.ResponseWriter, request *http.Request) {
	query := ParseStatusQuery(request.URL.Query())
	viewmodel := BuildStatusPageVM(server.registry.Names(), query.Line, server.pollSeconds)

	writer.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := server.renderer.Render(writer, "layout.html", viewmodel); err != nil {
		http.Error(writer, err.Error(), http.StatusInternalServerError)
		return
	}
}

// handleStatusPartial answers with an error status on failure so htmx keeps
// the panel it swapped in last.
func (server *BoardServer) handleStatusPartial(writer http.ResponseWriter, request *http.Request) {
	query := ParseStatusQuery(request.URL.Query())

	id, err := server.registry.Lookup(query.Line)
	if errors.Is(err, lines.ErrNotFound) {
		http.Error(writer, err.Error(), http.StatusNotFound)
		return
	}

	logger := server.logger.WithField("line", query.Line)
	payload, err := common.RuntimeBenchmark(logger, "board-partial", func() (status.Payload, error) {
		return server.client.Fetch(request.Context(), id)
	})
	if err != nil {
		http.Error(writer, query.Line+": "+tfl.Describe(err), http.StatusBadGateway)
		return
	}

	lineName := payload.LineName
	if lineName == "" {
		lineName = query.Line
	}
	text := status.Render(lineName, payload)
	server.surface.Replace(text)

	viewmodel := BuildStatusPanelVM(lineName, payload, text, server.palette, time.Now())

	writer.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := server.renderer.Render(writer, "status_panel.html", viewmodel); err != nil {
		http.Error(writer, err.Error(), http.StatusInternalServerError)
		return
	}
}

// handleSurface returns the last successful render as plain text.
func (server *BoardServer) handleSurface(writer http.ResponseWriter, request *http.Request) {
	content := server.surface.Content()
	if content.IsEmpty() {
		writer.WriteHeader(http.StatusNoContent)
		return
	}

	writer.Header().Set("Content-Type", "text/plain; charset=utf-8")
	writer.Header().Set("X-Surface", server.surface.Name())
	writer.Write([]byte(content.String()))
}
