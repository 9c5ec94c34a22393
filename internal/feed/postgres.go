package feed

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"device-tracker/internal/logger"

	"github.com/goccy/go-json"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// maxNotifyPayload is the postgres NOTIFY payload limit.
const maxNotifyPayload = 8000

var ErrPayloadTooLarge = errors.New("change payload exceeds NOTIFY limit")

// PostgresBroker shares one feed between service instances. Publish issues
// pg_notify on the configured channel; a dedicated pgx connection LISTENs on
// it and relays every notification into a local MemoryBroker.
type PostgresBroker struct {
	db      *gorm.DB
	connURL string
	channel string
	local   *MemoryBroker

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func NewPostgresBroker(db *gorm.DB, connURL, channel string, buffer int, opts ...MemoryOption) *PostgresBroker {
	return &PostgresBroker{
		db:      db,
		connURL: connURL,
		channel: channel,
		local:   NewMemoryBroker(buffer, opts...),
	}
}

// Start opens the listener connection and begins relaying notifications.
func (b *PostgresBroker) Start(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.cancel != nil {
		return nil
	}

	conn, err := b.listen(ctx)
	if err != nil {
		return err
	}

	runCtx, cancel := context.WithCancel(context.Background())
	b.cancel = cancel
	b.done = make(chan struct{})

	go b.relay(runCtx, conn)

	logger.Info("Feed listener started", zap.String("channel", b.channel))
	return nil
}

func (b *PostgresBroker) listen(ctx context.Context) (*pgx.Conn, error) {
	conn, err := pgx.Connect(ctx, b.connURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect feed listener: %w", err)
	}
	if _, err := conn.Exec(ctx, "LISTEN "+pgx.Identifier{b.channel}.Sanitize()); err != nil {
		_ = conn.Close(ctx)
		return nil, fmt.Errorf("failed to listen on %s: %w", b.channel, err)
	}
	return conn, nil
}

func (b *PostgresBroker) relay(ctx context.Context, conn *pgx.Conn) {
	defer close(b.done)

	for {
		notification, err := conn.WaitForNotification(ctx)
		if err != nil {
			_ = conn.Close(context.Background())
			if ctx.Err() != nil {
				return
			}
			logger.Error("Feed listener lost connection", zap.Error(err))

			if conn = b.reconnect(ctx); conn == nil {
				return
			}
			continue
		}

		var change Change
		if err := json.Unmarshal([]byte(notification.Payload), &change); err != nil {
			logger.Warn("Dropping malformed feed notification", zap.Error(err))
			continue
		}
		if err := b.local.Publish(ctx, change); err != nil && ctx.Err() == nil {
			logger.Warn("Failed to relay feed notification", zap.Error(err))
		}
	}
}

// reconnect retries with exponential backoff until it succeeds or ctx ends.
func (b *PostgresBroker) reconnect(ctx context.Context) *pgx.Conn {
	backoff := time.Second
	for {
		select {
		case <-time.After(backoff):
		case <-ctx.Done():
			return nil
		}

		conn, err := b.listen(ctx)
		if err == nil {
			logger.Info("Feed listener reconnected", zap.String("channel", b.channel))
			return conn
		}
		logger.Error("Feed listener reconnect failed", zap.Error(err), zap.Duration("backoff", backoff))
		if backoff < 30*time.Second {
			backoff *= 2
		}
	}
}

func (b *PostgresBroker) Publish(ctx context.Context, change Change) error {
	payload, err := json.Marshal(change)
	if err != nil {
		return fmt.Errorf("failed to encode change: %w", err)
	}
	if len(payload) > maxNotifyPayload {
		return ErrPayloadTooLarge
	}

	if err := b.db.WithContext(ctx).Exec("SELECT pg_notify(?, ?)", b.channel, string(payload)).Error; err != nil {
		return fmt.Errorf("failed to notify: %w", err)
	}
	return nil
}

func (b *PostgresBroker) Subscribe(filter Filter) *Subscription {
	return b.local.Subscribe(filter)
}

// Close stops the listener and detaches all local subscriptions.
func (b *PostgresBroker) Close() {
	b.mu.Lock()
	cancel, done := b.cancel, b.done
	b.cancel = nil
	b.mu.Unlock()

	if cancel != nil {
		cancel()
		<-done
	}
	b.local.Close()
}
