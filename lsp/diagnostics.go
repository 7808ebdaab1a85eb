package lsp

import (
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/dhamidi/pdfc/pdf/syntax"
)

const diagnosticSource = "pdfc"

// Diagnostics converts the errors of p into LSP diagnostics. The result
// is never nil so that an empty list clears the client's markers.
func Diagnostics(p syntax.Parse, idx *syntax.LineIndex) []protocol.Diagnostic {
	severity := protocol.DiagnosticSeverityError
	source := diagnosticSource

	diags := make([]protocol.Diagnostic, 0, len(p.Errors()))
	for _, e := range p.Errors() {
		diags = append(diags, protocol.Diagnostic{
			Range:    toRange(idx, e.Range),
			Severity: &severity,
			Source:   &source,
			Message:  e.Msg,
		})
	}
	return diags
}
