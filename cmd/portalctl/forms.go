package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"alvant-portal/internal/client/form"
	"alvant-portal/internal/domain"

	"github.com/spf13/cobra"
)

var (
	contactName       string
	contactEmail      string
	contactPhone      string
	contactMessage    string
	contactCategories []string

	regCompany         string
	regFirstName       string
	regLastName        string
	regJobTitle        string
	regPhone           string
	regEmail           string
	regHasUAE          string
	regMultiCountry    string
	regLineOfBusiness  []string
	regProductInterest []string
)

var contactCmd = &cobra.Command{
	Use:   "contact",
	Short: "Send a message through the contact form",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		session := form.NewContactForm(client)
		return fillAndSubmit(cmd.Context(), session,
			map[string]string{
				"name":    contactName,
				"email":   contactEmail,
				"phone":   contactPhone,
				"message": contactMessage,
			},
			map[string][]string{
				"categories": contactCategories,
			},
		)
	},
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Register interest through the registration form",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		session := form.NewRegistrationForm(client)
		return fillAndSubmit(cmd.Context(), session,
			map[string]string{
				"companyName":  regCompany,
				"firstName":    regFirstName,
				"lastName":     regLastName,
				"jobTitle":     regJobTitle,
				"phone":        regPhone,
				"email":        regEmail,
				"hasUAE":       regHasUAE,
				"multiCountry": regMultiCountry,
			},
			map[string][]string{
				"lineOfBusiness":  regLineOfBusiness,
				"productInterest": regProductInterest,
			},
		)
	},
}

func initFormCommands() {
	rootCmd.AddCommand(contactCmd)
	rootCmd.AddCommand(registerCmd)

	f := contactCmd.Flags()
	f.StringVar(&contactName, "name", "", "your name")
	f.StringVar(&contactEmail, "email", "", "reply address")
	f.StringVar(&contactPhone, "phone", "", "phone number (optional)")
	f.StringVar(&contactMessage, "message", "", "message text")
	f.StringSliceVar(&contactCategories, "category", nil, "topic, repeatable: "+strings.Join(domain.ContactCategoryOptions, ", "))

	f = registerCmd.Flags()
	f.StringVar(&regCompany, "company", "", "company name")
	f.StringVar(&regFirstName, "first-name", "", "first name")
	f.StringVar(&regLastName, "last-name", "", "last name")
	f.StringVar(&regJobTitle, "job-title", "", "job title")
	f.StringVar(&regPhone, "phone", "", "phone number")
	f.StringVar(&regEmail, "email", "", "email address")
	f.StringVar(&regHasUAE, "has-uae", "", "operates in the UAE (Yes or No)")
	f.StringVar(&regMultiCountry, "multi-country", "", "operates in several countries (Yes or No)")
	f.StringSliceVar(&regLineOfBusiness, "line-of-business", nil, "repeatable: "+strings.Join(domain.LineOfBusinessOptions, ", "))
	f.StringSliceVar(&regProductInterest, "product-interest", nil, "repeatable: "+strings.Join(domain.ProductInterestOptions, ", "))
}

// fillAndSubmit drives a form session the way a visitor would: type every
// field, tick every option, press submit once.
func fillAndSubmit[D any](ctx context.Context, s *form.Session[D], text map[string]string, sets map[string][]string) error {
	for name, value := range text {
		if err := s.UpdateField(name, value); err != nil {
			return err
		}
	}
	for name, values := range sets {
		seen := map[string]bool{}
		for _, v := range values {
			v = strings.TrimSpace(v)
			if v == "" || seen[v] {
				continue
			}
			seen[v] = true
			if err := s.ToggleSetMember(name, v); err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
		}
	}

	if err := s.Submit(ctx); err != nil && s.Status() != form.Failed {
		return err
	}
	if s.Status() == form.Failed {
		printFieldErrors(s.Fields(), s.Errors())
		return errors.New(s.Banner())
	}
	fmt.Println(s.Notice())
	return nil
}
