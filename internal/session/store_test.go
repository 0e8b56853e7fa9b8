package session

import (
	"errors"
	"testing"

	"github.com/ashugangtok/dietiq/internal/domain/models"
)

func TestReplaceRecordsGeneratesUploadID(t *testing.T) {
	store := NewStore()

	first := store.ReplaceRecords(DefaultID, []models.FeedingRecord{{IngredientName: "Apple"}})
	second := store.ReplaceRecords(DefaultID, nil)

	if first == "" || second == "" {
		t.Fatal("upload ids must not be empty")
	}
	if first == second {
		t.Errorf("upload ids should change per upload, got %q twice", first)
	}
	if got := store.Records(DefaultID); len(got) != 0 {
		t.Errorf("records after empty replace = %d, want 0", len(got))
	}
}

func TestReconcilePackingLifecycle(t *testing.T) {
	store := NewStore()

	items := store.ReconcilePacking(DefaultID, []string{"b", "a"})
	if len(items) != 2 {
		t.Fatalf("got %d items, want 2", len(items))
	}
	if items[0].ID != "a" || items[0].Status != models.PackingPending {
		t.Errorf("items not sorted/pending: %+v", items)
	}

	if err := store.SetPackingStatus(DefaultID, "a", models.PackingPacked); err != nil {
		t.Fatalf("SetPackingStatus: %v", err)
	}

	// "a" survives with its status, "b" is stale, "c" is new.
	items = store.ReconcilePacking(DefaultID, []string{"a", "c"})
	if len(items) != 2 {
		t.Fatalf("got %d items after reconcile, want 2", len(items))
	}
	if items[0].ID != "a" || items[0].Status != models.PackingPacked {
		t.Errorf("item a = %+v, want packed status preserved", items[0])
	}
	if items[1].ID != "c" || items[1].Status != models.PackingPending {
		t.Errorf("item c = %+v, want new pending item", items[1])
	}
}

func TestSetPackingStatusUnknownID(t *testing.T) {
	store := NewStore()
	store.ReconcilePacking(DefaultID, []string{"a"})

	err := store.SetPackingStatus(DefaultID, "missing", models.PackingPacked)
	if !errors.Is(err, ErrUnknownPackingItem) {
		t.Errorf("err = %v, want ErrUnknownPackingItem", err)
	}
}

func TestJournal(t *testing.T) {
	store := NewStore()

	entry := store.AddJournalEntry(DefaultID, "switched browsers to frozen mix")
	if entry.ID == "" || entry.Text == "" {
		t.Fatalf("incomplete entry %+v", entry)
	}

	entries := store.JournalEntries(DefaultID)
	if len(entries) != 1 || entries[0].Text != "switched browsers to frozen mix" {
		t.Errorf("journal = %+v", entries)
	}

	store.Reset(DefaultID)
	if got := store.JournalEntries(DefaultID); len(got) != 0 {
		t.Errorf("journal after reset = %d entries, want 0", len(got))
	}
}

func TestSessionsAreIsolated(t *testing.T) {
	store := NewStore()
	store.ReplaceRecords("s1", []models.FeedingRecord{{IngredientName: "Apple"}})

	if got := store.Records("s2"); len(got) != 0 {
		t.Errorf("session s2 sees %d records from s1, want 0", len(got))
	}
}
