// Package errors provides the structured diagnostic type shared by the
// registrar and the emitter: a schema-versioned Report that survives an
// errors.As unwrap, plus a phase-prefixed error-code taxonomy so tooling
// can group diagnostics by the pass that raised them.
package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"

	"github.com/rivet-lang/rivetcore/internal/ast"
)

// Schema is the fixed schema tag stamped on every Report.
const Schema = "rivetcore.diag/v1"

// Registrar error codes (REG###) — all non-fatal: reported, then the
// walk continues.
const (
	RegDuplicateSymbol     = "REG001"
	RegDuplicateField      = "REG002"
	RegDuplicateEnumValue  = "REG003"
	RegInvalidExtendTarget = "REG004"
)

// Emitter error codes (GEN###) — programmer errors; raising one aborts
// compilation.
const (
	GenUnknownInstruction = "GEN001"
	GenMalformedIR        = "GEN002"
)

// Fix is a suggested remediation attached to a Report. Neither the
// registrar nor the emitter currently produce one; the field exists so a
// future diagnostic can carry one without changing Report's shape.
type Fix struct {
	Suggestion string  `json:"suggestion"`
	Confidence float64 `json:"confidence"`
}

// Report is the canonical structured diagnostic. Data keys are sorted by
// the JSON encoder so output is byte-stable across runs.
type Report struct {
	Schema  string         `json:"schema"`
	Code    string         `json:"code"`
	Phase   string         `json:"phase"`
	Message string         `json:"message"`
	Span    *ast.Pos       `json:"span,omitempty"`
	Data    map[string]any `json:"data,omitempty"`
	Fix     *Fix           `json:"fix,omitempty"`
}

// ToJSON encodes r deterministically (map keys sorted by encoding/json).
func (r *Report) ToJSON(compact bool) (string, error) {
	if compact {
		data, err := json.Marshal(r)
		return string(data), err
	}
	data, err := json.MarshalIndent(r, "", "  ")
	return string(data), err
}

// ReportError wraps a Report as an error so it survives errors.As.
type ReportError struct {
	Rep *Report
}

func (e *ReportError) Error() string {
	if e.Rep == nil {
		return "unknown diagnostic"
	}
	return fmt.Sprintf("%s: %s", e.Rep.Code, e.Rep.Message)
}

// AsReport extracts a *Report from an error chain.
func AsReport(err error) (*Report, bool) {
	var re *ReportError
	if stderrors.As(err, &re) {
		return re.Rep, true
	}
	return nil, false
}

// WrapReport wraps r as an error, or returns nil for a nil Report.
func WrapReport(r *Report) error {
	if r == nil {
		return nil
	}
	return &ReportError{Rep: r}
}

// New builds a Report at pos with the given code/phase/message.
func New(phase, code, message string, pos ast.Pos) *Report {
	p := pos
	return &Report{Schema: Schema, Code: code, Phase: phase, Message: message, Span: &p}
}

// Reporter is the external collaborator both the registrar and emitter
// report diagnostics through.
type Reporter interface {
	Report(r *Report)
}

// CollectingReporter accumulates reports in arrival order. Tests use it
// to assert on exactly which diagnostics a walk produced.
type CollectingReporter struct {
	Reports []*Report
}

func (c *CollectingReporter) Report(r *Report) {
	c.Reports = append(c.Reports, r)
}

// ByCode filters accumulated reports to a single code, preserving order.
func (c *CollectingReporter) ByCode(code string) []*Report {
	var out []*Report
	for _, r := range c.Reports {
		if r.Code == code {
			out = append(out, r)
		}
	}
	return out
}
