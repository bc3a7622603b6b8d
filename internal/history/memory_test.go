package history

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"resumeforge/internal/types"
)

func TestMemoryStoreSaveAssignsIDs(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	first := &Entry{CandidateName: "Ada", ATSScore: 80}
	second := &Entry{CandidateName: "Grace", ATSScore: 65}

	if err := store.Save(ctx, first); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := store.Save(ctx, second); err != nil {
		t.Fatalf("Save: %v", err)
	}

	if first.ID == 0 || second.ID == 0 {
		t.Error("Save must assign entry IDs")
	}
	if first.ID == second.ID {
		t.Error("entry IDs must be unique")
	}
	if first.CreatedAt.IsZero() || second.CreatedAt.IsZero() {
		t.Error("Save must assign CreatedAt")
	}
}

func TestMemoryStoreRecentNewestFirst(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	for i := 1; i <= 5; i++ {
		entry := &Entry{
			CandidateName: fmt.Sprintf("candidate-%d", i),
			ATSScore:      i * 10,
			Breakdown:     types.ScoreBreakdown{Skills: i},
		}
		if err := store.Save(ctx, entry); err != nil {
			t.Fatalf("Save: %v", err)
		}
	}

	entries, err := store.Recent(ctx, 3)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("Recent returned %d entries, want 3", len(entries))
	}
	if entries[0].CandidateName != "candidate-5" {
		t.Errorf("newest entry first: got %q", entries[0].CandidateName)
	}
	if entries[2].CandidateName != "candidate-3" {
		t.Errorf("expected candidate-3 last in page, got %q", entries[2].CandidateName)
	}
}

func TestMemoryStoreRecentLimitLargerThanSize(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	if err := store.Save(ctx, &Entry{ATSScore: 50}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	entries, err := store.Recent(ctx, 100)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("Recent returned %d entries, want 1", len(entries))
	}
}

func TestMemoryStoreCapacityEviction(t *testing.T) {
	store := NewMemoryStore()
	store.capacity = 3
	ctx := context.Background()

	for i := 1; i <= 5; i++ {
		if err := store.Save(ctx, &Entry{ATSScore: i}); err != nil {
			t.Fatalf("Save: %v", err)
		}
	}

	entries, err := store.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("store kept %d entries, want 3", len(entries))
	}
	// Oldest two were evicted
	if entries[len(entries)-1].ATSScore != 3 {
		t.Errorf("oldest surviving score = %d, want 3", entries[len(entries)-1].ATSScore)
	}
}

func TestMemoryStoreConcurrentAccess(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 25; j++ {
				_ = store.Save(ctx, &Entry{ATSScore: n})
				_, _ = store.Recent(ctx, 10)
			}
		}(i)
	}
	wg.Wait()

	entries, err := store.Recent(ctx, 0)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(entries) != 200 {
		t.Errorf("store holds %d entries, want 200", len(entries))
	}
}
