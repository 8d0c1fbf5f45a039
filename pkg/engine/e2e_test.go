package engine

import (
	"os"
	"strings"
	"testing"
)

// TestE2ELinesExample exercises the full pipeline: script source → engine →
// builtins → report. This is the same path the console Eval takes, but
// without the prompt loop.
func TestE2ELinesExample(t *testing.T) {
	source, err := os.ReadFile("../../examples/lines.implicit")
	if err != nil {
		t.Fatalf("failed to read lines.implicit: %v", err)
	}

	eng := NewEngine()
	res, evalErrs, fatal := eng.Evaluate(string(source))
	if fatal != nil {
		t.Fatalf("fatal error: %v", fatal)
	}
	if len(evalErrs) > 0 {
		for _, e := range evalErrs {
			t.Errorf("eval error (line %d): %s", e.Line, e.Message)
		}
		t.FailNow()
	}

	// The script ends with (owned); three entities were added.
	if res.Value != "3" {
		t.Errorf("final value = %q, want 3", res.Value)
	}
	// diag, scaled, vertical, h, and the three demo clones.
	if res.Created != 7 {
		t.Errorf("created = %d, want 7", res.Created)
	}

	joined := strings.Join(res.Output, "\n")
	wants := []string{
		"contains=true",    // check-point over the 2-d entities
		"skipped",          // the hyperplane during the 2-d sweep
		"cloned as",        // demo
		"samples",          // sample-field
		"valid line",       // demo validation messages
		"valid hyperplane", // demo validation messages
	}
	for _, want := range wants {
		if !strings.Contains(joined, want) {
			t.Errorf("report missing %q:\n%s", want, joined)
		}
	}
	// Nothing in the script warns.
	if strings.Contains(joined, "warning") {
		t.Errorf("unexpected warning:\n%s", joined)
	}
}
