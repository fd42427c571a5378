package ioadapt

import "testing"

func TestParseUnifiedHunks(t *testing.T) {
	diff := []byte(`diff --git a/f.txt b/f.txt
index 1111111..2222222 100644
--- a/f.txt
+++ b/f.txt
@@ -2,0 +3,2 @@ foo
+added one
+added two
@@ -10,1 +11,0 @@ bar
-removed line
`)
	hunks := ParseUnifiedHunks(diff)
	if len(hunks) != 2 {
		t.Fatalf("expected 2 hunks, got %d", len(hunks))
	}
	if hunks[0].To != 3 || hunks[0].ToCount != 2 || hunks[0].FromCount != 0 {
		t.Fatalf("hunk 0 = %+v", hunks[0])
	}
	if hunks[1].From != 10 || hunks[1].ToCount != 0 {
		t.Fatalf("hunk 1 = %+v", hunks[1])
	}
}

func TestAnnotateRevStatus(t *testing.T) {
	hunks := []Hunk{
		{From: 2, FromCount: 0, To: 3, ToCount: 2},
		{From: 10, FromCount: 1, To: 11, ToCount: 0},
	}
	out := AnnotateRevStatus(hunks, 12)
	if out[3] != Added || out[4] != Added {
		t.Fatalf("expected added lines 3-4, got %v %v", out[3], out[4])
	}
	if out[11] != DeletedAbove {
		t.Fatalf("expected deletion bar at line 11, got %v", out[11])
	}
}

func TestAnnotateRevStatusCombinedMarker(t *testing.T) {
	hunks := []Hunk{
		{From: 5, FromCount: 1, To: 5, ToCount: 1},
		{From: 5, FromCount: 1, To: 5, ToCount: 0},
	}
	out := AnnotateRevStatus(hunks, 6)
	if out[5] != ModifiedAndDeletedAbove {
		t.Fatalf("expected combined marker, got %v", out[5])
	}
}
