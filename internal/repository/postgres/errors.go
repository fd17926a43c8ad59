package postgres

import (
	"alvant-portal/internal/domain"
	"context"
	"errors"
	"net"

	"github.com/jackc/pgx/v5/pgconn"
)

// mapError turns connectivity failures into domain.ErrStoreUnavailable so the API
// answers 503 instead of a generic 500.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	var connErr *pgconn.ConnectError
	var netErr net.Error
	switch {
	case errors.As(err, &connErr),
		errors.As(err, &netErr),
		errors.Is(err, context.DeadlineExceeded),
		pgconn.Timeout(err):
		return errors.Join(domain.ErrStoreUnavailable, err)
	}
	return err
}
