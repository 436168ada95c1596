package main

import (
	"bytes"

	"github.com/webtools-dev/tsdiag/internal/protocol"
)

// demoLinter is a stand-in for the external lint-rule loader collaborator:
// it flags a single rule, "no-debugger", so internal/lint's fan-out can be
// exercised without a real rule engine wired in.
type demoLinter struct{}

func (demoLinter) Lint(specifier string, parsed any) ([]protocol.Diagnostic, error) {
	content, ok := parsed.([]byte)
	if !ok {
		return nil, nil
	}

	var diagnostics []protocol.Diagnostic
	for _, line := range bytes.Split(content, []byte("\n")) {
		if bytes.Contains(line, []byte("debugger")) {
			diagnostics = append(diagnostics, protocol.Diagnostic{
				Severity: protocol.SeverityWarning,
				Code:     "no-debugger",
				Source:   "deno-lint",
				Message:  "`debugger` statements should not be used",
			})
			break
		}
	}
	return diagnostics, nil
}
