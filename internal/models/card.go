package models

import (
	"time"
)

// Category classifies a card by the kind of organization it belongs to
type Category string

const (
	CategoryCompany     Category = "COMPANY"
	CategorySchool      Category = "SCHOOL"
	CategoryAssociation Category = "ASSOCIATION"
	CategoryGovernment  Category = "GOVERNMENT"
)

// ValidCategories defines allowed card categories
var ValidCategories = map[Category]bool{
	CategoryCompany:     true,
	CategorySchool:      true,
	CategoryAssociation: true,
	CategoryGovernment:  true,
}

// MaxNameLength is the maximum allowed length of a card name
const MaxNameLength = 50

// Card represents one contact record. Every card belongs to exactly one
// owner; the owner is set at creation and never changes.
type Card struct {
	ID          string    `json:"id" db:"id"`
	OwnerID     string    `json:"-" db:"owner_id"`
	Name        string    `json:"name" db:"name"`
	Company     string    `json:"company,omitempty" db:"company"`
	Department  string    `json:"department,omitempty" db:"department"`
	Position    string    `json:"position,omitempty" db:"position"`
	Address     string    `json:"address,omitempty" db:"address"`
	OfficePhone string    `json:"office_phone,omitempty" db:"office_phone"`
	OfficeFax   string    `json:"office_fax,omitempty" db:"office_fax"`
	MobilePhone string    `json:"mobile_phone,omitempty" db:"mobile_phone"`
	Email       string    `json:"email,omitempty" db:"email"`
	Website     string    `json:"website,omitempty" db:"website"`
	Category    Category  `json:"category" db:"category"`
	Notes       string    `json:"notes,omitempty" db:"notes"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// CardInput carries the writable card fields for create/update requests
type CardInput struct {
	Name        string   `json:"name"`
	Company     string   `json:"company"`
	Department  string   `json:"department"`
	Position    string   `json:"position"`
	Address     string   `json:"address"`
	OfficePhone string   `json:"office_phone"`
	OfficeFax   string   `json:"office_fax"`
	MobilePhone string   `json:"mobile_phone"`
	Email       string   `json:"email"`
	Website     string   `json:"website"`
	Category    Category `json:"category"`
	Notes       string   `json:"notes"`
}

// DuplicateGroup is a transient grouping of cards sharing a derived
// identity key. Computed on demand, never persisted.
type DuplicateGroup struct {
	Key   string `json:"key"`
	Cards []Card `json:"cards"`
}
