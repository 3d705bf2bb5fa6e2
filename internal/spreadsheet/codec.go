// Package spreadsheet converts between card records and the CSV sheet
// format used for bulk upload/download, plus the plain-text email list
// export.
package spreadsheet

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/cardbook-api/internal/models"
)

// Header is the fixed column layout of an exported sheet. An upload sheet
// carries the first ten columns plus notes; category is chosen at upload
// time for the whole batch, so exports insert it before notes.
var Header = []string{
	"name", "company", "department", "position", "address",
	"office_phone", "office_fax", "mobile_phone", "email",
	"website", "category", "notes",
}

// Parse reads a CSV sheet into positional row records. The first row is
// the header and is discarded. Rows are returned as-is, untrimmed; blank
// names are kept so the import can report them per row. Re-imported
// exports (12 columns, category before notes) are accepted: the category
// column is ignored.
func Parse(r io.Reader) ([]models.CardRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse sheet: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	rows := make([]models.CardRow, 0, len(records)-1)
	for _, record := range records[1:] {
		row := models.CardRow{
			Name:        field(record, 0),
			Company:     field(record, 1),
			Department:  field(record, 2),
			Position:    field(record, 3),
			Address:     field(record, 4),
			OfficePhone: field(record, 5),
			OfficeFax:   field(record, 6),
			MobilePhone: field(record, 7),
			Email:       field(record, 8),
			Website:     field(record, 9),
			Notes:       field(record, 10),
		}
		if len(record) >= 12 {
			row.Notes = field(record, 11)
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// Render writes cards as a CSV sheet with the full 12-column header, one
// row per card, blank cells for absent fields.
func Render(cards []models.Card) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(Header); err != nil {
		return nil, err
	}
	for _, c := range cards {
		record := []string{
			c.Name, c.Company, c.Department, c.Position, c.Address,
			c.OfficePhone, c.OfficeFax, c.MobilePhone, c.Email,
			c.Website, string(c.Category), c.Notes,
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to render sheet: %w", err)
	}
	return buf.Bytes(), nil
}

// RenderEmailList produces a plain-text mailing list from cards.
// Emails are deduplicated in first-seen order; cards whose company matches
// an excluded name (case-insensitive) are skipped. Output wraps at ten
// addresses per line; each entry optionally carries a trailing semicolon
// and, except for the last entry on a line, a separating space.
func RenderEmailList(cards []models.Card, excludeCompanies string, semicolon bool) []byte {
	exclude := make(map[string]bool)
	for _, name := range strings.Split(excludeCompanies, ",") {
		name = strings.ToLower(strings.TrimSpace(name))
		if name != "" {
			exclude[name] = true
		}
	}

	seen := make(map[string]bool)
	var unique []string
	for _, c := range cards {
		if c.Company != "" && exclude[strings.ToLower(strings.TrimSpace(c.Company))] {
			continue
		}
		email := strings.TrimSpace(c.Email)
		if email == "" || seen[email] {
			continue
		}
		seen[email] = true
		unique = append(unique, email)
	}

	var content strings.Builder
	for i, email := range unique {
		if i > 0 && i%10 == 0 {
			content.WriteString("\n")
		}
		content.WriteString(email)
		if semicolon {
			content.WriteString(";")
		}
		if i%10 != 9 {
			content.WriteString(" ")
		}
	}

	return []byte(content.String())
}

func field(record []string, i int) string {
	if i < len(record) {
		return record[i]
	}
	return ""
}
