package audit

import (
	"context"
	"testing"
	"time"
)

func TestJournalNoopWhenMongoURIEmpty(t *testing.T) {
	j := NewJournal("", "")
	if j.Enabled() {
		t.Fatalf("journal without URI should be disabled")
	}
	rec := &GenerationRecord{ID: "r1", MinutesID: "m1", Outcome: "ok", StartedAt: time.Now(), FinishedAt: time.Now()}
	// should be noop and not error when mongo URI empty
	if err := j.Save(context.Background(), rec); err != nil {
		t.Fatalf("expected no error for empty mongo URI, got %v", err)
	}
	if got, err := j.LastFor(context.Background(), "m1"); err != nil || got != nil {
		t.Fatalf("expected nil result for empty mongo URI, got %v err=%v", got, err)
	}
}
