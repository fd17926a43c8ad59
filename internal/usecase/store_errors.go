package usecase

import (
	"alvant-portal/internal/domain"
	"alvant-portal/pkg/apperror"
	"errors"
	"strings"
)

// storeError translates repository failures; unavailability gets the 503 marker the clients look for.
func storeError(err error) error {
	if errors.Is(err, domain.ErrStoreUnavailable) {
		return apperror.ServiceUnavailable(domain.StoreUnavailableMessage, err)
	}
	return apperror.Internal(err)
}

// dedupe trims members and drops blanks and repeats, keeping first-seen order.
func dedupe(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

const validationFailedMessage = "Please correct the errors below"
