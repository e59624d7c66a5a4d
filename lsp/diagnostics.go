package lsp

import (
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	uidl "bennypowers.dev/uidl"
	"bennypowers.dev/uidl/internal/log"
)

const diagnosticSource = "uidl"

// publishDiagnostics analyzes the tracked document and pushes its findings
// to the client.
func (s *Server) publishDiagnostics(context *glsp.Context, uri string) {
	text, ok := s.document(uri)
	if !ok {
		return
	}

	findings := uidl.Validate(text)
	diagnostics := make([]protocol.Diagnostic, 0, len(findings))
	for _, d := range findings {
		diagnostics = append(diagnostics, toProtocol(d))
	}

	log.Debug("Publishing %d diagnostics for %s", len(diagnostics), uri)
	context.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})
}

// toProtocol converts an analyzer finding into an LSP diagnostic. Findings
// carry a single location, so the range is a point anchored there.
func toProtocol(d uidl.Diagnostic) protocol.Diagnostic {
	severity := protocol.DiagnosticSeverityError
	if d.Severity == uidl.SeverityWarning {
		severity = protocol.DiagnosticSeverityWarning
	}

	line := uint32(0)
	if d.Loc.Line > 0 {
		line = uint32(d.Loc.Line - 1)
	}
	pos := protocol.Position{Line: line, Character: uint32(d.Loc.Column)}

	source := diagnosticSource
	return protocol.Diagnostic{
		Range:    protocol.Range{Start: pos, End: pos},
		Severity: &severity,
		Code:     &protocol.IntegerOrString{Value: d.Code},
		Source:   &source,
		Message:  d.Message,
	}
}
