package csvfeed

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "smoker_temps.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write temp csv: %v", err)
	}
	return path
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestFeedReadsTemperatures(t *testing.T) {
	path := writeTemp(t, "temperature\n225.0\n226.5\n")
	f, err := Open(path, discard())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer f.Close()

	r1, err := f.Next()
	if err != nil || r1.Temperature != 225.0 {
		t.Fatalf("first row = %+v, err %v", r1, err)
	}
	r2, err := f.Next()
	if err != nil || r2.Temperature != 226.5 {
		t.Fatalf("second row = %+v, err %v", r2, err)
	}
}

func TestFeedWrapsAround(t *testing.T) {
	path := writeTemp(t, "temperature\n100\n")
	f, err := Open(path, discard())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer f.Close()

	for i := 0; i < 3; i++ {
		r, err := f.Next()
		if err != nil {
			t.Fatalf("Next after %d reads: %v", i, err)
		}
		if r.Temperature != 100 {
			t.Fatalf("read %d: temperature = %g", i, r.Temperature)
		}
	}
}

func TestFeedFindsColumnByName(t *testing.T) {
	path := writeTemp(t, "timestamp,Temperature,notes\nt1,203.4,ok\n")
	f, err := Open(path, discard())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer f.Close()

	r, err := f.Next()
	if err != nil || r.Temperature != 203.4 {
		t.Fatalf("row = %+v, err %v", r, err)
	}
}

func TestFeedSkipsBadRows(t *testing.T) {
	path := writeTemp(t, "temperature\nnot-a-number\n210\n")
	f, err := Open(path, discard())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer f.Close()

	r, err := f.Next()
	if err != nil || r.Temperature != 210 {
		t.Fatalf("expected the bad row to be skipped, got %+v err %v", r, err)
	}
}

func TestFeedErrorsOnHeaderOnlyFile(t *testing.T) {
	path := writeTemp(t, "temperature\n")
	f, err := Open(path, discard())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer f.Close()

	if _, err := f.Next(); err == nil {
		t.Fatalf("expected error for a file with no data rows")
	}
}

func TestFeedErrorsWhenEveryRowIsBad(t *testing.T) {
	path := writeTemp(t, "temperature\nnope\nstill-nope\n")
	f, err := Open(path, discard())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer f.Close()

	if _, err := f.Next(); err == nil {
		t.Fatalf("expected error when no row in a full pass parses")
	}
}

func TestFeedRejectsMissingColumn(t *testing.T) {
	path := writeTemp(t, "timestamp,humidity\nt1,40\n")
	if _, err := Open(path, discard()); err == nil {
		t.Fatalf("expected error for missing temperature column")
	}
}

func TestFeedRejectsMissingFile(t *testing.T) {
	if _, err := Open(filepath.Join(t.TempDir(), "nope.csv"), discard()); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestRandomFactNonEmpty(t *testing.T) {
	for i := 0; i < 20; i++ {
		if RandomFact() == "" {
			t.Fatalf("empty fact")
		}
	}
}
