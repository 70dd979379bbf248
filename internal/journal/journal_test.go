package journal_test

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/dannyob/mcp-servers/internal/journal"
)

func openTestDB(t *testing.T) *journal.DB {
	t.Helper()
	db, err := journal.Open(filepath.Join(t.TempDir(), "journal.db"))
	if err != nil {
		t.Fatalf("failed to open test journal: %v", err)
	}
	return db
}

func closeTestDB(t *testing.T, db *journal.DB) {
	t.Helper()
	if err := db.Close(); err != nil {
		t.Errorf("failed to close test journal: %v", err)
	}
}

// TestRecordAssignsID verifies an id is generated when the caller leaves it
// empty, and that the record round-trips through Get.
func TestRecordAssignsID(t *testing.T) {
	db := openTestDB(t)
	defer closeTestDB(t, db)

	id, err := db.Record(journal.Invocation{
		Tool:     "emacs_get_region",
		Args:     `{"buffer":"todo.org","start":"# Tasks","end":"# Done"}`,
		OK:       true,
		Duration: 42 * time.Millisecond,
	})
	if err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	if id == "" {
		t.Fatal("expected generated id")
	}

	inv, err := db.Get(id)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if inv.Tool != "emacs_get_region" {
		t.Errorf("tool = %q", inv.Tool)
	}
	if !inv.OK {
		t.Error("expected ok invocation")
	}
	if inv.Duration != 42*time.Millisecond {
		t.Errorf("duration = %v", inv.Duration)
	}
	if inv.Started == 0 {
		t.Error("expected started timestamp to be filled in")
	}
}

func TestRecordDuplicateID(t *testing.T) {
	db := openTestDB(t)
	defer closeTestDB(t, db)

	if _, err := db.Record(journal.Invocation{ID: "fixed", Tool: "run_command"}); err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	if _, err := db.Record(journal.Invocation{ID: "fixed", Tool: "run_command"}); err == nil {
		t.Fatal("expected error for duplicate id")
	}
}

func TestGetNotFound(t *testing.T) {
	db := openTestDB(t)
	defer closeTestDB(t, db)

	if _, err := db.Get("missing"); !errors.Is(err, journal.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRecentOrderAndLimit(t *testing.T) {
	db := openTestDB(t)
	defer closeTestDB(t, db)

	base := time.Now().Unix()
	for i := 0; i < 5; i++ {
		_, err := db.Record(journal.Invocation{
			Tool:    "run_command",
			Error:   "command failed with exit code 1",
			Started: base + int64(i),
		})
		if err != nil {
			t.Fatalf("Record %d failed: %v", i, err)
		}
	}

	invs, err := db.Recent(3)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(invs) != 3 {
		t.Fatalf("expected 3 invocations, got %d", len(invs))
	}
	for i := 1; i < len(invs); i++ {
		if invs[i-1].Started < invs[i].Started {
			t.Errorf("invocations not newest first: %d before %d", invs[i-1].Started, invs[i].Started)
		}
	}
}
