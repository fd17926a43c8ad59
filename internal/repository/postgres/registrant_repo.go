package postgres

import (
	"alvant-portal/internal/domain"
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

type registrantRepo struct {
	db *pgxpool.Pool
}

// NewRegistrantRepository accepts a nil pool; every call then reports the store as unavailable.
func NewRegistrantRepository(db *pgxpool.Pool) domain.RegistrantRepository {
	return &registrantRepo{db: db}
}

func (r *registrantRepo) Create(ctx context.Context, reg *domain.Registrant) error {
	if r.db == nil {
		return domain.ErrStoreUnavailable
	}
	query := `
		INSERT INTO registrants (id, company_name, first_name, last_name, job_title, phone, email,
		                         has_uae, multi_country, line_of_business, product_interest, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.db.Exec(ctx, query,
		reg.ID, reg.CompanyName, reg.FirstName, reg.LastName, reg.JobTitle, reg.Phone, reg.Email,
		reg.HasUAE, reg.MultiCountry, pq.Array(reg.LineOfBusiness), pq.Array(reg.ProductInterest), reg.CreatedAt,
	)
	return mapError(err)
}

func (r *registrantRepo) List(ctx context.Context) ([]domain.Registrant, error) {
	if r.db == nil {
		return nil, domain.ErrStoreUnavailable
	}
	query := `
		SELECT id, company_name, first_name, last_name, job_title, phone, email,
		       has_uae, multi_country, line_of_business, product_interest, created_at
		FROM registrants
		ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	out := []domain.Registrant{}
	for rows.Next() {
		var reg domain.Registrant
		if err := rows.Scan(
			&reg.ID, &reg.CompanyName, &reg.FirstName, &reg.LastName, &reg.JobTitle, &reg.Phone, &reg.Email,
			&reg.HasUAE, &reg.MultiCountry, pq.Array(&reg.LineOfBusiness), pq.Array(&reg.ProductInterest), &reg.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, reg)
	}
	return out, mapError(rows.Err())
}
