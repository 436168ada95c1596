package diag

import (
	"github.com/webtools-dev/tsdiag/internal/protocol"
)

// Category is the external type-checker's severity classification for a
// single diagnostic, prior to translation into an LSP severity.
type Category int

const (
	CategoryError Category = iota
	CategoryWarning
	CategorySuggestion
	CategoryMessage
)

func (c Category) severity() protocol.DiagnosticSeverity {
	switch c {
	case CategoryError:
		return protocol.SeverityError
	case CategoryWarning:
		return protocol.SeverityWarning
	case CategorySuggestion:
		return protocol.SeverityHint
	case CategoryMessage:
		return protocol.SeverityInformation
	default:
		return protocol.SeverityError
	}
}

// TypeCheckPosition is a line/character position as reported by the
// external type-checker (already UTF-16, matching the LSP wire form).
type TypeCheckPosition struct {
	Line      uint32 `json:"line"`
	Character uint32 `json:"character"`
}

// TypeCheckDiagnostic is one entry of the external type-checker's batch
// response, prior to translation.
type TypeCheckDiagnostic struct {
	Start              *TypeCheckPosition     `json:"start"`
	End                *TypeCheckPosition     `json:"end"`
	Category           Category               `json:"category"`
	Code               int                    `json:"code"`
	MessageText        string                 `json:"messageText"`
	FileName           string                 `json:"fileName"`
	RelatedInformation []TypeCheckDiagnostic  `json:"relatedInformation"`
}

func (d TypeCheckDiagnostic) message() string {
	if d.MessageText != "" {
		return d.MessageText
	}
	return "[missing message]"
}

// unnecessaryCodes and deprecatedCodes are the fixed tag-code sets the
// type-checker's own diagnostic codes are matched against; every other
// code carries no tag.
var unnecessaryCodes = map[int]bool{
	2695: true, 6133: true, 6138: true, 6192: true, 6196: true,
	6198: true, 6199: true, 6205: true, 7027: true, 7028: true,
}

var deprecatedCodes = map[int]bool{
	2789: true, 6385: true, 6387: true,
}

func tagsForCode(code int) []protocol.DiagnosticTag {
	switch {
	case unnecessaryCodes[code]:
		return []protocol.DiagnosticTag{protocol.Unnecessary}
	case deprecatedCodes[code]:
		return []protocol.DiagnosticTag{protocol.Deprecated}
	default:
		return nil
	}
}

func toRelatedInformation(related []TypeCheckDiagnostic) []protocol.DiagnosticRelatedInformation {
	if related == nil {
		return nil
	}
	var out []protocol.DiagnosticRelatedInformation
	for _, r := range related {
		if r.Start == nil || r.End == nil || r.FileName == "" {
			continue
		}
		out = append(out, protocol.DiagnosticRelatedInformation{
			Location: protocol.Location{
				URI: protocol.DocumentURI(r.FileName),
				Range: protocol.Range{
					Start: protocol.Position{Line: r.Start.Line, Character: r.Start.Character},
					End:   protocol.Position{Line: r.End.Line, Character: r.End.Character},
				},
			},
			Message: r.message(),
		})
	}
	return out
}

// TypeCheckDiagnosticsToLSP translates a batch of raw type-checker
// diagnostics into LSP diagnostics. Entries with no start or end position
// are dropped, since they can't be attached to any range.
func TypeCheckDiagnosticsToLSP(diagnostics []TypeCheckDiagnostic) []protocol.Diagnostic {
	out := make([]protocol.Diagnostic, 0, len(diagnostics))
	for _, d := range diagnostics {
		if d.Start == nil || d.End == nil {
			continue
		}
		out = append(out, protocol.Diagnostic{
			Range: protocol.Range{
				Start: protocol.Position{Line: d.Start.Line, Character: d.Start.Character},
				End:   protocol.Position{Line: d.End.Line, Character: d.End.Character},
			},
			Severity:           d.Category.severity(),
			Code:               d.Code,
			Source:             SourceTypeCheck.Label(),
			Message:            d.message(),
			RelatedInformation: toRelatedInformation(d.RelatedInformation),
			Tags:               tagsForCode(d.Code),
		})
	}
	return out
}
