package history

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/doeshing/clicra-go/internal/domain"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSaveAndRecords(t *testing.T) {
	store := newTestStore(t)

	rec := domain.HistoryRecord{
		Timestamp: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		Task:      "list files",
		Command:   "ls -la",
		Model:     "llama3",
		Mode:      domain.ModeRun,
		Executed:  true,
		ExitCode:  0,
	}
	if err := store.Save(rec); err != nil {
		t.Fatalf("save: %v", err)
	}

	records, err := store.Records(10, "")
	if err != nil {
		t.Fatalf("records: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	got := records[0]
	if got.Task != rec.Task || got.Command != rec.Command || got.Mode != rec.Mode {
		t.Fatalf("got %+v", got)
	}
	if !got.Executed || got.ExitCode != 0 {
		t.Fatalf("execution fields lost: %+v", got)
	}
	if !got.Timestamp.Equal(rec.Timestamp) {
		t.Fatalf("timestamp = %v, want %v", got.Timestamp, rec.Timestamp)
	}
}

func TestRecordsNewestFirstAndLimited(t *testing.T) {
	store := newTestStore(t)

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		err := store.Save(domain.HistoryRecord{
			Timestamp: base.Add(time.Duration(i) * time.Hour),
			Task:      "task",
			Command:   "cmd",
			Mode:      domain.ModeCopy,
		})
		if err != nil {
			t.Fatalf("save: %v", err)
		}
	}

	records, err := store.Records(3, "")
	if err != nil {
		t.Fatalf("records: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("got %d records, want 3", len(records))
	}
	if !records[0].Timestamp.After(records[1].Timestamp) {
		t.Fatalf("not newest first: %v then %v", records[0].Timestamp, records[1].Timestamp)
	}
}

func TestRecordsSearchMatchesTaskAndCommand(t *testing.T) {
	store := newTestStore(t)

	saves := []domain.HistoryRecord{
		{Task: "list pods", Command: "kubectl get pods", Mode: domain.ModeCopy},
		{Task: "disk usage", Command: "du -sh .", Mode: domain.ModeCopy},
	}
	for _, rec := range saves {
		if err := store.Save(rec); err != nil {
			t.Fatalf("save: %v", err)
		}
	}

	byTask, err := store.Records(0, "pods")
	if err != nil {
		t.Fatalf("records: %v", err)
	}
	if len(byTask) != 1 || byTask[0].Task != "list pods" {
		t.Fatalf("search by task: %+v", byTask)
	}

	byCommand, err := store.Records(0, "du -sh")
	if err != nil {
		t.Fatalf("records: %v", err)
	}
	if len(byCommand) != 1 || byCommand[0].Command != "du -sh ." {
		t.Fatalf("search by command: %+v", byCommand)
	}
}

func TestClear(t *testing.T) {
	store := newTestStore(t)

	if err := store.Save(domain.HistoryRecord{Task: "t", Mode: domain.ModeCopy}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	records, err := store.Records(0, "")
	if err != nil {
		t.Fatalf("records: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("got %d records after clear", len(records))
	}
}

func TestSaveFillsZeroTimestamp(t *testing.T) {
	store := newTestStore(t)

	if err := store.Save(domain.HistoryRecord{Task: "t", Mode: domain.ModeCopy}); err != nil {
		t.Fatalf("save: %v", err)
	}
	records, err := store.Records(0, "")
	if err != nil {
		t.Fatalf("records: %v", err)
	}
	if len(records) != 1 || records[0].Timestamp.IsZero() {
		t.Fatalf("timestamp not filled: %+v", records)
	}
}
