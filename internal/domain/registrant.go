package domain

import (
	"context"
	"time"
)

// Choice values for the Yes/No questions of the registration form.
const (
	ChoiceYes = "Yes"
	ChoiceNo  = "No"
)

// LineOfBusinessOptions is the fixed list a registrant picks their line of business from.
var LineOfBusinessOptions = []string{
	"Manufacturer",
	"Wholesaler/Retailer",
	"Food Export/Import",
	"Distributor",
	"HORECA/Restaurant/Cafe",
	"Service Provider",
	"Cloud Kitchen",
	"Others",
}

// ProductInterestOptions is the fixed list of products a registrant can be interested in.
var ProductInterestOptions = []string{
	"Grains",
	"Frozen Dried Fruits",
	"Frozen Dried Fruits(Green peas, Sweet Corns)",
	"Tea/Coffee",
	"Herbs",
	"Spices",
	"Dry Fruits",
	"Moringa Infused Products",
	"Handicraft",
	"Other Food Products(Honey, Bilona method Ghee)",
}

// Registrant is a register-your-interest submission. Read-only once stored.
type Registrant struct {
	ID              string    `json:"id,omitempty"`
	CompanyName     string    `json:"companyName" validate:"required_text"`
	FirstName       string    `json:"firstName" validate:"required_text"`
	LastName        string    `json:"lastName" validate:"required_text"`
	JobTitle        string    `json:"jobTitle" validate:"required_text"`
	Phone           string    `json:"phone" validate:"portal_phone"`
	Email           string    `json:"email" validate:"portal_email"`
	HasUAE          string    `json:"hasUAE" validate:"yes_no"`
	MultiCountry    string    `json:"multiCountry" validate:"yes_no"`
	LineOfBusiness  []string  `json:"lineOfBusiness" validate:"min=1,dive,line_of_business"`
	ProductInterest []string  `json:"productInterest" validate:"min=1,dive,product_interest"`
	CreatedAt       time.Time `json:"createdAt,omitempty"`
}

// RegistrantRepository persists registrants.
type RegistrantRepository interface {
	Create(ctx context.Context, r *Registrant) error
	List(ctx context.Context) ([]Registrant, error)
}

// RegistrationUsecase defines the register-your-interest operations
type RegistrationUsecase interface {
	// Register validates and stores a submission, filling ID and CreatedAt.
	Register(ctx context.Context, r *Registrant) error
	// ListRegistrants returns every submission, newest first.
	ListRegistrants(ctx context.Context) ([]Registrant, error)
}
