package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/cardbook-api/internal/models"
)

var emailRegex = regexp.MustCompile(`[\w._%+-]+@[\w.-]+\.[A-Za-z]{2,6}`)

// NormalizeRow trims every field of an imported row. Fields that are blank
// after trimming become empty strings (absent). The email field is
// re-extracted: the last substring matching a standard email pattern wins,
// lower-cased; a value with no match becomes absent.
func NormalizeRow(row *models.CardRow) {
	row.Name = strings.TrimSpace(row.Name)
	row.Company = strings.TrimSpace(row.Company)
	row.Department = strings.TrimSpace(row.Department)
	row.Position = strings.TrimSpace(row.Position)
	row.Address = strings.TrimSpace(row.Address)
	row.OfficePhone = strings.TrimSpace(row.OfficePhone)
	row.OfficeFax = strings.TrimSpace(row.OfficeFax)
	row.MobilePhone = strings.TrimSpace(row.MobilePhone)
	row.Email = ExtractEmail(row.Email)
	row.Website = strings.TrimSpace(row.Website)
	row.Notes = strings.TrimSpace(row.Notes)
}

// ExtractEmail scans a raw value and returns the last embedded email
// address, lower-cased, or "" when none is found. Raw cell values often
// carry labels or multiple addresses; the last one is the usable one.
func ExtractEmail(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	found := emailRegex.FindAllString(raw, -1)
	if len(found) == 0 {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(found[len(found)-1]))
}

// ValidateCardInput checks the fields of a direct create/update request
func ValidateCardInput(in *models.CardInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if len([]rune(in.Name)) > models.MaxNameLength {
		return fmt.Errorf("name must be at most %d characters", models.MaxNameLength)
	}
	if !models.ValidCategories[in.Category] {
		return fmt.Errorf("invalid category: %s", in.Category)
	}
	return nil
}

// ValidateRegister checks a registration request
func ValidateRegister(req *models.RegisterRequest) error {
	if strings.TrimSpace(req.Email) == "" {
		return fmt.Errorf("email is required")
	}
	if !emailRegex.MatchString(req.Email) {
		return fmt.Errorf("invalid email format")
	}
	if req.Password == "" {
		return fmt.Errorf("password is required")
	}
	if req.Password != req.ConfirmPassword {
		return fmt.Errorf("password confirmation does not match")
	}
	if strings.TrimSpace(req.Name) == "" {
		return fmt.Errorf("name is required")
	}
	return nil
}
