package format

import (
	"strings"
	"testing"
)

func TestDiff(t *testing.T) {
	diff := Diff("line1\nline2\nline3", "line1\nmodified\nline3")
	if !diff.Changed {
		t.Errorf("expected diff to detect changes")
	}
	out := diff.String()
	if !strings.Contains(out, "line2") || !strings.Contains(out, "modified") {
		t.Errorf("expected diff to mention both removed and added lines, got:\n%s", out)
	}
}

func TestDiffNoChanges(t *testing.T) {
	diff := Diff("line1\nline2", "line1\nline2")
	if diff.Changed {
		t.Errorf("expected no changes")
	}
	if !strings.Contains(diff.String(), "No changes") {
		t.Errorf("expected the no-changes message")
	}
}

func TestDiffUnifiedDiff(t *testing.T) {
	diff := Diff("line1\nline2", "line1\nmodified")
	unified := diff.UnifiedDiff("app.csl")
	if !strings.Contains(unified, "--- a/app.csl") || !strings.Contains(unified, "+++ b/app.csl") {
		t.Errorf("expected unified diff headers, got:\n%s", unified)
	}
	if !strings.Contains(unified, "-line2") || !strings.Contains(unified, "+modified") {
		t.Errorf("expected hunk lines, got:\n%s", unified)
	}
}

func TestDiffUnifiedDiffNoChanges(t *testing.T) {
	diff := Diff("line1\nline2", "line1\nline2")
	if diff.UnifiedDiff("app.csl") != "" {
		t.Errorf("expected an empty unified diff when nothing changed")
	}
}

func TestDiffStats(t *testing.T) {
	diff := Diff("line1\nline2\nline3", "line1\nmodified\nline3\nline4")
	stats := diff.Stats()
	if !strings.Contains(stats, "changed") || !strings.Contains(stats, "added") {
		t.Errorf("expected stats to mention changed and added lines, got: %s", stats)
	}
}

func TestDiffStatsNoChanges(t *testing.T) {
	diff := Diff("line1\nline2", "line1\nline2")
	if diff.Stats() != "No changes" {
		t.Errorf("expected 'No changes', got: %s", diff.Stats())
	}
}
