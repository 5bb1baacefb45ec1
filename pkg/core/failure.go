package core

import (
	"fmt"
	"slices"
	"strings"
)

// =============================================================================
// Validation failures
// =============================================================================

// ValidationFailure is one non-fatal finding raised after a build.
// Type holds the logical or canonical type name. Member is zero for
// type-level failures. Related names the other types or members involved.
type ValidationFailure struct {
	RuleID   string     `json:"rule_id" yaml:"rule_id"`
	Severity Severity   `json:"severity" yaml:"severity"`
	Type     string     `json:"type" yaml:"type"`
	Member   Identifier `json:"-" yaml:"-"`
	Message  string     `json:"message" yaml:"message"`
	Related  []string   `json:"related,omitempty" yaml:"related,omitempty"`
}

// String renders "RULE type: message".
func (f ValidationFailure) String() string {
	if f.Member.MemberName != "" {
		return fmt.Sprintf("%s %s: %s", f.RuleID, f.Member, f.Message)
	}
	return fmt.Sprintf("%s %s: %s", f.RuleID, f.Type, f.Message)
}

// Report is the ordered list of failures surfaced at the end of a build.
// An empty report signals a clean build.
type Report struct {
	Failures []ValidationFailure `json:"failures" yaml:"failures"`
}

// Add appends failures in order.
func (r *Report) Add(failures ...ValidationFailure) {
	r.Failures = append(r.Failures, failures...)
}

// Empty reports whether the build was clean.
func (r *Report) Empty() bool {
	return r == nil || len(r.Failures) == 0
}

// Len returns the number of failures.
func (r *Report) Len() int {
	if r == nil {
		return 0
	}
	return len(r.Failures)
}

// ByRule returns the failures raised by one rule, in report order.
func (r *Report) ByRule(ruleID string) []ValidationFailure {
	if r == nil {
		return nil
	}
	var out []ValidationFailure
	for _, f := range r.Failures {
		if f.RuleID == ruleID {
			out = append(out, f)
		}
	}
	return out
}

// ForType returns the failures raised against one type, in report order.
func (r *Report) ForType(typeName string) []ValidationFailure {
	if r == nil {
		return nil
	}
	var out []ValidationFailure
	for _, f := range r.Failures {
		if f.Type == typeName {
			out = append(out, f)
		}
	}
	return out
}

// HasErrors reports whether any failure has error severity.
func (r *Report) HasErrors() bool {
	if r == nil {
		return false
	}
	return slices.ContainsFunc(r.Failures, func(f ValidationFailure) bool {
		return f.Severity == SeverityError
	})
}

// String renders one failure per line.
func (r *Report) String() string {
	if r.Empty() {
		return "no validation failures"
	}
	lines := make([]string, len(r.Failures))
	for i, f := range r.Failures {
		lines[i] = f.String()
	}
	return strings.Join(lines, "\n")
}
