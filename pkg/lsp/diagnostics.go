package lsp

import (
	"errors"
	"fmt"

	"github.com/dodlang/dod/pkg/dod"
)

// DiagnosticSeverity represents the severity of a diagnostic.
type DiagnosticSeverity int

const (
	// DiagnosticSeverityError reports an error.
	DiagnosticSeverityError DiagnosticSeverity = 1
	// DiagnosticSeverityInformation reports an information.
	DiagnosticSeverityInformation DiagnosticSeverity = 3
)

// Diagnostic represents a diagnostic, such as a parse error.
type Diagnostic struct {
	Range    Range              `json:"range"`
	Severity DiagnosticSeverity `json:"severity"`
	Source   string             `json:"source,omitempty"`
	Message  string             `json:"message"`
}

// PublishDiagnosticsParams represents the parameters for publishDiagnostics.
type PublishDiagnosticsParams struct {
	URI         string       `json:"uri"`
	Version     int          `json:"version"`
	Diagnostics []Diagnostic `json:"diagnostics"`
}

// bannerRange covers the first character of a document.
var bannerRange = Range{
	Start: Position{Line: 0, Character: 0},
	End:   Position{Line: 0, Character: 1},
}

// DiagnosticsFromError maps a parse result to the diagnostics to publish.
// A nil error yields an empty, non-nil slice so the client's list is cleared.
func DiagnosticsFromError(err error) []Diagnostic {
	diags := []Diagnostic{}
	if err == nil {
		return diags
	}

	var perr *dod.Error
	if errors.As(err, &perr) {
		return append(diags, Diagnostic{
			Range:    DodRange(perr.Pos, perr.End),
			Severity: DiagnosticSeverityError,
			Message:  perr.Message,
		})
	}

	// Errors without a location are pinned to the start of the document.
	return append(diags, Diagnostic{
		Range:    bannerRange,
		Severity: DiagnosticSeverityError,
		Message:  err.Error(),
	})
}

// BannerDiagnostic returns the informational diagnostic published when a
// document is opened.
func BannerDiagnostic(message string) Diagnostic {
	return Diagnostic{
		Range:    bannerRange,
		Severity: DiagnosticSeverityInformation,
		Message:  message,
	}
}

// publishDiagnostics sends diagnostics for a document. Each notification
// replaces the client's previous list for the URI. A write failure is
// returned and ends the server.
func (s *Server) publishDiagnostics(uri string, version int, diags []Diagnostic) error {
	if diags == nil {
		diags = []Diagnostic{}
	}
	if s.config.Source != "" {
		for i := range diags {
			diags[i].Source = s.config.Source
		}
	}

	params := PublishDiagnosticsParams{
		URI:         uri,
		Version:     version,
		Diagnostics: diags,
	}

	if err := s.sendNotification("textDocument/publishDiagnostics", params); err != nil {
		s.log.Server("Error publishing diagnostics: %v", err)
		return fmt.Errorf("publishing diagnostics for %s: %w", uri, err)
	}
	return nil
}
