package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"alvant-portal/internal/client/admin"

	"github.com/spf13/cobra"
)

var (
	rememberMe  bool
	searchTerm  string
	contactSpan string
)

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Sign in to the admin dashboard and browse records",
	Long: `Sign in with a one-time code sent to an admin address, then list what the
website collected.

  portalctl admin request-otp you@example.com
  portalctl admin login you@example.com 123456 --remember
  portalctl admin registrants --search acme
  portalctl admin contacts --range week`,
}

var requestOTPCmd = &cobra.Command{
	Use:   "request-otp <email>",
	Short: "Email a one-time login code",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := newDashboard()
		if err != nil {
			return err
		}
		if err := d.Auth.RequestOTP(cmd.Context(), args[0]); err != nil {
			return bannerError(d.Banner(), err)
		}
		fmt.Println(d.Auth.Notice())
		return nil
	},
}

var loginCmd = &cobra.Command{
	Use:   "login <email> <otp>",
	Short: "Exchange a one-time code for a session",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := newDashboard()
		if err != nil {
			return err
		}
		if err := d.Auth.VerifyOTP(cmd.Context(), args[0], args[1], rememberMe); err != nil {
			return bannerError(d.Banner(), err)
		}
		if rememberMe {
			fmt.Println("Signed in. This device will stay signed in.")
		} else {
			fmt.Println("Signed in for this session.")
		}
		return nil
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check whether the saved session is still valid",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := newDashboard()
		if err != nil {
			return err
		}
		ok, err := d.Auth.Bootstrap(cmd.Context())
		if ok {
			fmt.Println("Signed in.")
			return nil
		}
		if err != nil {
			logError("session check failed", err)
		}
		fmt.Println("Not signed in.")
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the saved session and revoke it on the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := newDashboard()
		if err != nil {
			return err
		}
		// a token that no longer verifies is purged by Bootstrap already
		if _, err := d.Auth.Bootstrap(cmd.Context()); err != nil {
			logError("session check failed", err)
		}
		if err := d.Logout(cmd.Context()); err != nil {
			return err
		}
		fmt.Println("Signed out.")
		return nil
	},
}

var registrantsCmd = &cobra.Command{
	Use:   "registrants",
	Short: "List registrations, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := startDashboard(cmd)
		if err != nil {
			return err
		}

		rows := d.Browser.FilteredRegistrants(searchTerm)
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "DATE\tCOMPANY\tNAME\tJOB TITLE\tEMAIL\tPHONE\tUAE\tMULTI-COUNTRY\tBUSINESS\tINTEREST")
		for _, r := range rows {
			fmt.Fprintf(w, "%s\t%s\t%s %s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
				formatDate(r.CreatedAt), r.CompanyName, r.FirstName, r.LastName, r.JobTitle,
				r.Email, r.Phone, r.HasUAE, r.MultiCountry,
				strings.Join(r.LineOfBusiness, ", "), strings.Join(r.ProductInterest, ", "))
		}
		if err := w.Flush(); err != nil {
			return err
		}
		fmt.Printf("%d of %d registrations\n", len(rows), len(d.Browser.Registrants()))
		return nil
	},
}

var contactsCmd = &cobra.Command{
	Use:   "contacts",
	Short: "List contact messages, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		rng, err := admin.ParseDateRange(contactSpan)
		if err != nil {
			return err
		}
		d, err := newDashboard()
		if err != nil {
			return err
		}
		if err := restore(cmd, d); err != nil {
			return err
		}
		if err := d.Show(cmd.Context(), admin.SectionContacted); err != nil {
			return bannerError(d.Banner(), err)
		}

		rows := d.Browser.FilteredContacts(rng)
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "DATE\tNAME\tEMAIL\tPHONE\tCATEGORIES\tMESSAGE")
		for _, m := range rows {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
				formatDate(m.CreatedAt), m.Name, m.Email, orDash(m.Phone),
				orDash(strings.Join(m.Categories, ", ")), orDash(oneLine(m.Message)))
		}
		if err := w.Flush(); err != nil {
			return err
		}
		fmt.Printf("%d of %d messages\n", len(rows), len(d.Browser.Contacts()))
		return nil
	},
}

func initAdminCommands() {
	rootCmd.AddCommand(adminCmd)

	adminCmd.AddCommand(requestOTPCmd)
	adminCmd.AddCommand(loginCmd)
	adminCmd.AddCommand(statusCmd)
	adminCmd.AddCommand(logoutCmd)
	adminCmd.AddCommand(registrantsCmd)
	adminCmd.AddCommand(contactsCmd)

	loginCmd.Flags().BoolVar(&rememberMe, "remember", false, "stay signed in on this device")
	registrantsCmd.Flags().StringVar(&searchTerm, "search", "", "match company, first name, last name or email")
	contactsCmd.Flags().StringVar(&contactSpan, "range", "all", "today, week, month or all")
}

// startDashboard restores the saved session and loads registrations.
func startDashboard(cmd *cobra.Command) (*admin.Dashboard, error) {
	d, err := newDashboard()
	if err != nil {
		return nil, err
	}
	if err := restore(cmd, d); err != nil {
		return nil, err
	}
	if err := d.Refresh(cmd.Context()); err != nil {
		return nil, bannerError(d.Banner(), err)
	}
	return d, nil
}

func restore(cmd *cobra.Command, d *admin.Dashboard) error {
	ok, err := d.Auth.Bootstrap(cmd.Context())
	if ok {
		return nil
	}
	if err != nil {
		logError("session check failed", err)
	}
	return errors.New("not signed in; run 'portalctl admin request-otp' then 'portalctl admin login'")
}

// bannerError prefers the message the dashboard would show over the raw cause.
func bannerError(banner string, err error) error {
	if banner != "" {
		return errors.New(banner)
	}
	return err
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02 15:04")
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

func oneLine(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if r := []rune(s); len(r) > 60 {
		return string(r[:57]) + "..."
	}
	return s
}
