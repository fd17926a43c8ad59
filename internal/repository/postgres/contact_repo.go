package postgres

import (
	"alvant-portal/internal/domain"
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

type contactRepo struct {
	db *pgxpool.Pool
}

// NewContactRepository accepts a nil pool; every call then reports the store as unavailable.
func NewContactRepository(db *pgxpool.Pool) domain.ContactRepository {
	return &contactRepo{db: db}
}

func (r *contactRepo) Create(ctx context.Context, m *domain.ContactMessage) error {
	if r.db == nil {
		return domain.ErrStoreUnavailable
	}
	query := `
		INSERT INTO contact_messages (id, name, email, phone, message, categories, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	categories := m.Categories
	if categories == nil {
		categories = []string{}
	}
	_, err := r.db.Exec(ctx, query, m.ID, m.Name, m.Email, m.Phone, m.Message, pq.Array(categories), m.CreatedAt)
	return mapError(err)
}

func (r *contactRepo) List(ctx context.Context) ([]domain.ContactMessage, error) {
	if r.db == nil {
		return nil, domain.ErrStoreUnavailable
	}
	query := `
		SELECT id, name, email, phone, message, categories, created_at
		FROM contact_messages
		ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	out := []domain.ContactMessage{}
	for rows.Next() {
		var m domain.ContactMessage
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Phone, &m.Message, pq.Array(&m.Categories), &m.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, mapError(rows.Err())
}
