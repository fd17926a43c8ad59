package admin

import (
	"context"
	"fmt"
)

// Section is the collection the dashboard is showing.
type Section string

const (
	SectionRegistered Section = "registered"
	SectionContacted  Section = "contacted"
)

// Dashboard ties the login to the data browser: signing in loads the current
// section, signing out drops everything that was loaded.
type Dashboard struct {
	Auth    *Auth
	Browser *Browser
	section Section
}

func NewDashboard(auth *Auth, browser *Browser) *Dashboard {
	return &Dashboard{Auth: auth, Browser: browser, section: SectionRegistered}
}

// Start restores a persisted session and, when it is still valid, loads the current section.
func (d *Dashboard) Start(ctx context.Context) (bool, error) {
	ok, err := d.Auth.Bootstrap(ctx)
	if !ok {
		return false, err
	}
	return true, d.Refresh(ctx)
}

// Login verifies the code and loads the current section.
func (d *Dashboard) Login(ctx context.Context, email, code string, remember bool) error {
	if err := d.Auth.VerifyOTP(ctx, email, code, remember); err != nil {
		return err
	}
	return d.Refresh(ctx)
}

func (d *Dashboard) Logout(ctx context.Context) error {
	err := d.Auth.Logout(ctx)
	d.Browser.Clear()
	return err
}

// Section returns the collection currently shown.
func (d *Dashboard) Section() Section {
	return d.section
}

// Show switches section and loads it.
func (d *Dashboard) Show(ctx context.Context, s Section) error {
	switch s {
	case SectionRegistered, SectionContacted:
	default:
		return fmt.Errorf("unknown section %q", s)
	}
	d.section = s
	return d.Refresh(ctx)
}

// Refresh reloads the current section with the session's token.
func (d *Dashboard) Refresh(ctx context.Context) error {
	if d.Auth.State() != Authenticated {
		return ErrNotAuthenticated
	}
	token := d.Auth.Token()
	if d.section == SectionContacted {
		return d.Browser.RefreshContacts(ctx, token)
	}
	return d.Browser.RefreshRegistrants(ctx, token)
}

// Banner is the error to show: a failed fetch first, then the login error.
func (d *Dashboard) Banner() string {
	if msg := d.Browser.Banner(); msg != "" {
		return msg
	}
	return d.Auth.Banner()
}
