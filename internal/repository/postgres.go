package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"concierge/internal/model"
)

// LeadRepository persists captured leads and conversation history.
type LeadRepository struct {
	db *sqlx.DB
}

// NewLeadRepository connects to PostgreSQL and prepares the schema.
func NewLeadRepository(dsn string, maxConn, maxIdleConn int) (*LeadRepository, error) {
	// Disable prepared statement caching to avoid "unnamed prepared statement does not exist" errors
	if !strings.Contains(dsn, "?") {
		dsn += "?prefer_simple_protocol=true"
	} else {
		dsn += "&prefer_simple_protocol=true"
	}

	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(maxConn)
	db.SetMaxIdleConns(maxIdleConn)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(2 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	r := &LeadRepository{db: db}
	if err := r.ensureSchema(); err != nil {
		return nil, err
	}
	return r, nil
}

// Close closes the database connection
func (r *LeadRepository) Close() error {
	return r.db.Close()
}

func (r *LeadRepository) ensureSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS leads (
		id            TEXT PRIMARY KEY,
		profile       JSONB NOT NULL,
		quality_score INT NOT NULL DEFAULT 0,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);
	CREATE TABLE IF NOT EXISTS conversation_turns (
		id         BIGSERIAL PRIMARY KEY,
		session_id TEXT NOT NULL,
		role       TEXT NOT NULL,
		message    TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);
	CREATE INDEX IF NOT EXISTS idx_turns_session ON conversation_turns (session_id);
	CREATE TABLE IF NOT EXISTS listing_feedback (
		id         BIGSERIAL PRIMARY KEY,
		session_id TEXT NOT NULL,
		listing_id BIGINT NOT NULL,
		action     TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);
	`
	if _, err := r.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to prepare schema: %w", err)
	}
	return nil
}

// UpsertLead stores the full profile snapshot. The whole profile goes
// into one JSONB column so new fields never need a migration; the
// quality score is lifted out for querying and triage.
func (r *LeadRepository) UpsertLead(ctx context.Context, lead *model.LeadProfile) error {
	snapshot, err := json.Marshal(lead)
	if err != nil {
		return fmt.Errorf("failed to encode lead %s: %w", lead.ID, err)
	}

	query := `
		INSERT INTO leads (id, profile, quality_score, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE
		SET profile = EXCLUDED.profile,
		    quality_score = EXCLUDED.quality_score,
		    updated_at = EXCLUDED.updated_at
	`
	_, err = r.db.ExecContext(ctx, query, lead.ID, snapshot, lead.QualityScore, lead.StartedAt, lead.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert lead %s: %w", lead.ID, err)
	}
	return nil
}

// LogTurn appends one conversation turn to the session transcript.
func (r *LeadRepository) LogTurn(ctx context.Context, sessionID string, turn model.Turn) error {
	query := `
		INSERT INTO conversation_turns (session_id, role, message, created_at)
		VALUES ($1, $2, $3, $4)
	`
	_, err := r.db.ExecContext(ctx, query, sessionID, string(turn.Role), turn.Text, turn.At)
	if err != nil {
		return fmt.Errorf("failed to log turn for session %s: %w", sessionID, err)
	}
	return nil
}

// LogFeedback records a visitor action on a shown listing.
func (r *LeadRepository) LogFeedback(ctx context.Context, sessionID string, listingID int64, action string) error {
	query := `
		INSERT INTO listing_feedback (session_id, listing_id, action)
		VALUES ($1, $2, $3)
	`
	_, err := r.db.ExecContext(ctx, query, sessionID, listingID, action)
	if err != nil {
		return fmt.Errorf("failed to log feedback: %w", err)
	}
	return nil
}
