package admin

import (
	"alvant-portal/internal/domain"
	"fmt"
	"math"
	"strings"
	"time"
)

// DateRange buckets contact messages by age.
type DateRange string

const (
	RangeToday DateRange = "today"
	RangeWeek  DateRange = "week"
	RangeMonth DateRange = "month"
	RangeAll   DateRange = "all"
)

// ParseDateRange accepts today, week, month and all, case-insensitively.
func ParseDateRange(s string) (DateRange, error) {
	switch r := DateRange(strings.ToLower(strings.TrimSpace(s))); r {
	case RangeToday, RangeWeek, RangeMonth, RangeAll:
		return r, nil
	case "":
		return RangeAll, nil
	}
	return "", fmt.Errorf("unknown date range %q (want today, week, month or all)", s)
}

// FilterRegistrants returns the records whose company name, first name, last name
// or email contains term, ignoring case. An empty term returns records unchanged.
func FilterRegistrants(records []domain.Registrant, term string) []domain.Registrant {
	if term == "" {
		return records
	}
	needle := strings.ToLower(term)

	out := make([]domain.Registrant, 0, len(records))
	for _, r := range records {
		if containsFold(r.CompanyName, needle) ||
			containsFold(r.FirstName, needle) ||
			containsFold(r.LastName, needle) ||
			containsFold(r.Email, needle) {
			out = append(out, r)
		}
	}
	return out
}

// FilterContacts keeps the messages inside rng relative to now.
// Age is whole elapsed 24h periods since createdAt, in absolute time; near
// midnight a message from "yesterday" on the calendar can still count as today.
func FilterContacts(records []domain.ContactMessage, rng DateRange, now time.Time) []domain.ContactMessage {
	if rng == RangeAll || rng == "" {
		return records
	}

	out := make([]domain.ContactMessage, 0, len(records))
	for _, c := range records {
		age := ageInDays(now, c.CreatedAt)
		keep := false
		switch rng {
		case RangeToday:
			keep = age == 0
		case RangeWeek:
			keep = age <= 7
		case RangeMonth:
			keep = age <= 30
		default:
			keep = true
		}
		if keep {
			out = append(out, c)
		}
	}
	return out
}

func ageInDays(now, createdAt time.Time) int {
	return int(math.Floor(now.Sub(createdAt).Hours() / 24))
}

func containsFold(s, lowerNeedle string) bool {
	return strings.Contains(strings.ToLower(s), lowerNeedle)
}
