package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/skillforge-io/skillforge-backend/internal/logger"
)

// Entry is the wire shape fanned out to audit consumers. It mirrors the
// change_logs row, not any HTTP payload.
type Entry struct {
	ChangeType   string         `json:"change_type"`
	ChangeTypeID uuid.UUID      `json:"change_type_id"`
	UserID       uuid.UUID      `json:"user_id"`
	Reason       string         `json:"reason,omitempty"`
	Details      map[string]any `json:"details,omitempty"`
	OccurredAt   time.Time      `json:"occurred_at"`
}

type Bus interface {
	Publish(ctx context.Context, entry Entry) error
}

type redisBus struct {
	log     *logger.Logger
	rdb     *goredis.Client
	channel string
}

func NewRedisBus(log *logger.Logger, addr, channel string) (Bus, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}

	addr = strings.TrimSpace(addr)
	if addr == "" {
		return nil, fmt.Errorf("missing redis addr")
	}
	if strings.TrimSpace(channel) == "" {
		channel = "changelog"
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &redisBus{
		log:     log.With("service", "AuditRedisBus"),
		rdb:     rdb,
		channel: channel,
	}, nil
}

func (b *redisBus) Publish(ctx context.Context, entry Entry) error {
	if b == nil || b.rdb == nil {
		return fmt.Errorf("audit bus not initialized")
	}
	raw, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	return b.rdb.Publish(ctx, b.channel, raw).Err()
}
