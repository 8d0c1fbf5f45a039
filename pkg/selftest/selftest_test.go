package selftest

import "testing"

func TestRunPassesCleanly(t *testing.T) {
	r := Run()
	if r.Failed() {
		t.Fatalf("%d checks failed: %v", r.Fail, r.Failures)
	}
	if r.Pass == 0 {
		t.Fatal("expected at least one passing check")
	}
}

func TestReportTally(t *testing.T) {
	r := &Report{}
	r.check("a", true)
	r.check("b", false)
	if r.Pass != 1 || r.Fail != 1 {
		t.Errorf("pass=%d fail=%d, want 1/1", r.Pass, r.Fail)
	}
	if !r.Failed() {
		t.Error("Failed() should be true")
	}
	if len(r.Failures) != 1 || r.Failures[0] != "b" {
		t.Errorf("failures = %v", r.Failures)
	}
}
