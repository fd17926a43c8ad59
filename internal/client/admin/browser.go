package admin

import (
	"alvant-portal/internal/domain"
	"alvant-portal/pkg/logger"
	"context"
	"slices"
	"sync"
	"time"
)

const (
	MsgFetchRegistrantsFailed = "Failed to fetch registered users"
	MsgFetchContactsFailed    = "Failed to fetch contacted users"
)

// RecordSource lists stored submissions; *api.Client implements it.
// An empty token sends no Authorization header.
type RecordSource interface {
	ListRegistrants(ctx context.Context, token string) ([]domain.Registrant, error)
	ListContacts(ctx context.Context, token string) ([]domain.ContactMessage, error)
}

// Browser holds the two collections loaded for review. A failed refresh leaves
// the previously loaded collection untouched.
type Browser struct {
	mu  sync.Mutex
	src RecordSource

	registrants []domain.Registrant
	contacts    []domain.ContactMessage
	banner      string
	loading     int
	gen         uint64
	now         func() time.Time
}

func NewBrowser(src RecordSource) *Browser {
	return &Browser{src: src, now: time.Now}
}

// WithClock overrides the time source used by FilteredContacts, for tests.
func (b *Browser) WithClock(now func() time.Time) *Browser {
	b.now = now
	return b
}

func (b *Browser) RefreshRegistrants(ctx context.Context, token string) error {
	gen := b.begin()
	records, err := b.src.ListRegistrants(ctx, token)

	b.mu.Lock()
	defer b.mu.Unlock()
	b.loading--
	if b.gen != gen {
		return ErrSessionEnded
	}
	if err != nil {
		b.banner = MsgFetchRegistrantsFailed
		logger.Log.Error("fetch registrants failed", "error", err)
		return err
	}
	b.registrants = records
	return nil
}

func (b *Browser) RefreshContacts(ctx context.Context, token string) error {
	gen := b.begin()
	records, err := b.src.ListContacts(ctx, token)

	b.mu.Lock()
	defer b.mu.Unlock()
	b.loading--
	if b.gen != gen {
		return ErrSessionEnded
	}
	if err != nil {
		b.banner = MsgFetchContactsFailed
		logger.Log.Error("fetch contacts failed", "error", err)
		return err
	}
	b.contacts = records
	return nil
}

func (b *Browser) begin() uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.loading++
	b.banner = ""
	return b.gen
}

// Clear drops both collections, as on logout. Refreshes still in flight are discarded.
func (b *Browser) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.gen++
	b.registrants = nil
	b.contacts = nil
	b.banner = ""
}

func (b *Browser) Registrants() []domain.Registrant {
	b.mu.Lock()
	defer b.mu.Unlock()
	return slices.Clone(b.registrants)
}

func (b *Browser) Contacts() []domain.ContactMessage {
	b.mu.Lock()
	defer b.mu.Unlock()
	return slices.Clone(b.contacts)
}

// FilteredRegistrants applies FilterRegistrants to the loaded collection.
func (b *Browser) FilteredRegistrants(term string) []domain.Registrant {
	return FilterRegistrants(b.Registrants(), term)
}

// FilteredContacts applies FilterContacts with the current time.
func (b *Browser) FilteredContacts(rng DateRange) []domain.ContactMessage {
	return FilterContacts(b.Contacts(), rng, b.now())
}

func (b *Browser) Banner() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.banner
}

// Loading reports whether a refresh is pending.
func (b *Browser) Loading() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.loading > 0
}
