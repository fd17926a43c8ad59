package security

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// StoredEvent is a security event as it is written to the security_events table.
// Email is already masked.
type StoredEvent struct {
	Event       EventType
	Severity    Severity
	Service     string
	Environment string
	Email       string
	IP          string
	UserAgent   string
	RequestID   string
	Details     map[string]interface{}
	Timestamp   time.Time
}

// PersistFunc stores one event.
type PersistFunc func(ctx context.Context, event StoredEvent) error

// SecurityEventRepository handles persistence of security events to database
type SecurityEventRepository struct {
	db *pgxpool.Pool
}

// NewSecurityEventRepository creates a new repository for security events
func NewSecurityEventRepository(db *pgxpool.Pool) *SecurityEventRepository {
	return &SecurityEventRepository{db: db}
}

// PersistEvent inserts a security event into the database
func (r *SecurityEventRepository) PersistEvent(ctx context.Context, event StoredEvent) error {
	query := `
		INSERT INTO security_events (
			event_type, severity, service, environment,
			email_masked, ip_address, user_agent, request_id,
			details, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	var detailsJSON []byte
	if len(event.Details) > 0 {
		detailsJSON, _ = json.Marshal(event.Details)
	} else {
		detailsJSON = []byte("null") // Valid JSON null for empty details
	}

	_, err := r.db.Exec(ctx, query,
		string(event.Event),
		string(event.Severity),
		event.Service,
		event.Environment,
		nullIfEmpty(event.Email),
		nullIfEmpty(event.IP),
		event.UserAgent,
		event.RequestID,
		detailsJSON,
		event.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("failed to persist security event: %w", err)
	}

	return nil
}

// CreatePersistFunc creates a persist function for the SecurityLogger
func (r *SecurityEventRepository) CreatePersistFunc() PersistFunc {
	return r.PersistEvent
}

func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
