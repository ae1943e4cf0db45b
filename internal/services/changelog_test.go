package services

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/skillforge-io/skillforge-backend/internal/audit"
	"github.com/skillforge-io/skillforge-backend/internal/types"
)

type fakeBus struct {
	entries []audit.Entry
	fail    bool
}

func (b *fakeBus) Publish(ctx context.Context, entry audit.Entry) error {
	if b.fail {
		return fmt.Errorf("broker unavailable")
	}
	b.entries = append(b.entries, entry)
	return nil
}

type failingChangeLogRepo struct{}

func (failingChangeLogRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.ChangeLog) ([]*types.ChangeLog, error) {
	return nil, fmt.Errorf("connection reset")
}

func TestRecord_PersistsRowAndPublishes(t *testing.T) {
	st := newFakeStore()
	bus := &fakeBus{}
	at := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	svc := &changeLogService{
		log:           testLogger(),
		changeLogRepo: fakeChangeLogRepo{st: st},
		bus:           bus,
		now:           func() time.Time { return at },
	}

	subject := uuid.New()
	actor := uuid.New()
	reason := "option retired"
	details := map[string]any{"event": "option_deleted", "option_text": "4"}
	svc.Record(context.Background(), nil, ChangeTypeQuizOption, subject, actor, &reason, details)

	if len(st.changeLogs) != 1 {
		t.Fatalf("expected 1 row, got %d", len(st.changeLogs))
	}
	row := st.changeLogs[0]
	if row.ChangeType != ChangeTypeQuizOption || row.ChangeTypeID != subject || row.UserID != actor {
		t.Fatalf("row mismatch: %+v", row)
	}
	if row.Reason == nil || *row.Reason != reason {
		t.Fatalf("expected reason %q, got %v", reason, row.Reason)
	}
	var persisted map[string]any
	if err := json.Unmarshal(row.Details, &persisted); err != nil {
		t.Fatalf("details column is not valid json: %v", err)
	}
	if persisted["event"] != "option_deleted" || persisted["option_text"] != "4" {
		t.Fatalf("details payload mismatch: %v", persisted)
	}
	if len(bus.entries) != 1 {
		t.Fatalf("expected 1 published entry, got %d", len(bus.entries))
	}
	entry := bus.entries[0]
	if entry.ChangeType != ChangeTypeQuizOption || entry.Reason != reason || !entry.OccurredAt.Equal(at) {
		t.Fatalf("published entry mismatch: %+v", entry)
	}
	if entry.Details["event"] != "option_deleted" {
		t.Fatalf("published entry must carry the details payload, got %v", entry.Details)
	}
}

func TestRecord_SwallowsSinkFailures(t *testing.T) {
	svc := &changeLogService{
		log:           testLogger(),
		changeLogRepo: failingChangeLogRepo{},
		now:           time.Now,
	}
	// Must not panic or surface anything to the caller.
	svc.Record(context.Background(), nil, ChangeTypeModule, uuid.New(), uuid.New(), nil, nil)
}

func TestRecord_SwallowsPublishFailures(t *testing.T) {
	st := newFakeStore()
	svc := &changeLogService{
		log:           testLogger(),
		changeLogRepo: fakeChangeLogRepo{st: st},
		bus:           &fakeBus{fail: true},
		now:           time.Now,
	}
	svc.Record(context.Background(), nil, ChangeTypeModule, uuid.New(), uuid.New(), nil, nil)
	if len(st.changeLogs) != 1 {
		t.Fatalf("row insert must still land when the publish fails, got %d rows", len(st.changeLogs))
	}
}
