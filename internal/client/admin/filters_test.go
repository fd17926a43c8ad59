package admin_test

import (
	"alvant-portal/internal/client/admin"
	"alvant-portal/internal/domain"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterRegistrants(t *testing.T) {
	records := []domain.Registrant{
		{ID: "1", CompanyName: "Acme Foods", FirstName: "Jane", LastName: "Doe", Email: "jane@acme.example"},
		{ID: "2", CompanyName: "Globex", FirstName: "Hank", LastName: "Scorpio", Email: "hank@globex.example"},
	}

	got := admin.FilterRegistrants(records, "acme")
	require.Len(t, got, 1)
	assert.Equal(t, "1", got[0].ID)

	assert.Equal(t, records, admin.FilterRegistrants(records, ""))
	assert.Len(t, admin.FilterRegistrants(records, "SCORP"), 1)
	assert.Len(t, admin.FilterRegistrants(records, ".example"), 2)
	assert.Empty(t, admin.FilterRegistrants(records, "initech"))

	// the input is never modified
	assert.Len(t, records, 2)
}

func TestFilterContacts(t *testing.T) {
	now := time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)
	at := func(y int, m time.Month, d, h int) time.Time { return time.Date(y, m, d, h, 0, 0, 0, time.UTC) }

	records := []domain.ContactMessage{
		{ID: "hours", CreatedAt: at(2024, 1, 10, 3)},
		{ID: "5d", CreatedAt: at(2024, 1, 5, 12)},
		{ID: "21d", CreatedAt: at(2023, 12, 20, 12)},
		{ID: "45d", CreatedAt: at(2023, 11, 26, 12)},
	}

	ids := func(cs []domain.ContactMessage) []string {
		out := []string{}
		for _, c := range cs {
			out = append(out, c.ID)
		}
		return out
	}

	assert.Equal(t, []string{"hours"}, ids(admin.FilterContacts(records, admin.RangeToday, now)))
	assert.Equal(t, []string{"hours", "5d"}, ids(admin.FilterContacts(records, admin.RangeWeek, now)))
	assert.Equal(t, []string{"hours", "5d", "21d"}, ids(admin.FilterContacts(records, admin.RangeMonth, now)))
	assert.Equal(t, []string{"hours", "5d", "21d", "45d"}, ids(admin.FilterContacts(records, admin.RangeAll, now)))

	t.Run("age counts whole elapsed days", func(t *testing.T) {
		// 7 days 23 hours is still 7
		edge := []domain.ContactMessage{{ID: "e", CreatedAt: now.Add(-(7*24 + 23) * time.Hour)}}
		assert.Len(t, admin.FilterContacts(edge, admin.RangeWeek, now), 1)
		edge[0].CreatedAt = now.Add(-8 * 24 * time.Hour)
		assert.Empty(t, admin.FilterContacts(edge, admin.RangeWeek, now))
	})
}

func TestParseDateRange(t *testing.T) {
	for in, want := range map[string]admin.DateRange{
		"today": admin.RangeToday,
		"Week":  admin.RangeWeek,
		"month": admin.RangeMonth,
		"all":   admin.RangeAll,
		"":      admin.RangeAll,
	} {
		got, err := admin.ParseDateRange(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}

	_, err := admin.ParseDateRange("year")
	assert.Error(t, err)
}
