package core

// validation.go provides field-level validation for sponsor data.
//
// Validation happens at two levels:
//  1. Header validation: Ensures every required import column is present
//  2. Row validation: Checks each required cell is non-blank and the category
//     belongs to the caller's category set
//
// Row validation always collects every problem in a row so the import preview
// can show them all at once.

import (
	"fmt"
	"strings"
)

// ValidationError represents a single validation error for a field.
type ValidationError struct {
	Field   string `json:"field"`   // Field/column name
	Message string `json:"message"` // Human-readable error message
}

func (e ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

// ImportField describes one required column of the sponsor import file.
type ImportField struct {
	Header  string // Column header as written in the template
	Message string // Error shown when the cell is blank
}

// Import column headers.
const (
	ColName           = "name"
	ColIndustry       = "industry"
	ColCategory       = "category"
	ColAccountManager = "accountManager"
	ColEmail          = "email"
	ColRole           = "role"
	ColStreet         = "street"
	ColNumber         = "number"
	ColZip            = "zip"
	ColCity           = "city"
	ColCountry        = "country"
)

// ImportFields lists the required columns in template order.
var ImportFields = []ImportField{
	{Header: ColName, Message: "Name is required"},
	{Header: ColIndustry, Message: "Industry is required"},
	{Header: ColCategory, Message: "Category is required"},
	{Header: ColAccountManager, Message: "Account Manager is required"},
	{Header: ColEmail, Message: "Email is required"},
	{Header: ColRole, Message: "Role is required"},
	{Header: ColStreet, Message: "Street is required"},
	{Header: ColNumber, Message: "Street number is required"},
	{Header: ColZip, Message: "ZIP code is required"},
	{Header: ColCity, Message: "City is required"},
	{Header: ColCountry, Message: "Country is required"},
}

// ImportHeaders returns the required header names in template order.
func ImportHeaders() []string {
	headers := make([]string, len(ImportFields))
	for i, f := range ImportFields {
		headers[i] = f.Header
	}
	return headers
}

// HeaderError reports required columns missing from an import file.
type HeaderError struct {
	Missing []string
}

func (e *HeaderError) Error() string {
	return fmt.Sprintf("missing required columns: %s", strings.Join(e.Missing, ", "))
}

// ValidateHeaders checks that all required columns exist in the CSV headers.
// Extra columns are ignored. Returns the header index or a *HeaderError
// naming exactly the missing columns.
func ValidateHeaders(headers []string) (HeaderIndex, error) {
	idx := MakeHeaderIndex(headers)

	var missing []string
	for _, f := range ImportFields {
		if _, ok := idx[strings.ToLower(f.Header)]; !ok {
			missing = append(missing, f.Header)
		}
	}
	if len(missing) > 0 {
		return nil, &HeaderError{Missing: missing}
	}

	return idx, nil
}

// categoryMessage is the membership violation text for a category set.
func categoryMessage(categories []string) string {
	return fmt.Sprintf("Category must be one of: %s", strings.Join(categories, ", "))
}

// containsCategory reports whether label is in categories (exact match).
func containsCategory(categories []string, label string) bool {
	for _, c := range categories {
		if c == label {
			return true
		}
	}
	return false
}

// ValidateImportRow returns every rule row violates, in column order.
// A blank category produces both the required and the membership message.
func ValidateImportRow(row []string, idx HeaderIndex, categories []string) []string {
	var errs []string
	for _, f := range ImportFields {
		value := idx.Lookup(row, f.Header)
		if value == "" {
			errs = append(errs, f.Message)
		}
		if f.Header == ColCategory && !containsCategory(categories, value) {
			errs = append(errs, categoryMessage(categories))
		}
	}
	return errs
}

// ValidateSponsor checks a directly submitted sponsor the way the sponsor
// form does: a name is required and the category must be a known one.
func ValidateSponsor(s Sponsor, categories []string) []ValidationError {
	var errs []ValidationError
	if strings.TrimSpace(s.Name) == "" {
		errs = append(errs, ValidationError{Field: "name", Message: "Please enter a company name"})
	}
	switch {
	case strings.TrimSpace(s.Category) == "":
		errs = append(errs, ValidationError{Field: "category", Message: "Please select a category"})
	case !containsCategory(categories, s.Category):
		errs = append(errs, ValidationError{Field: "category", Message: categoryMessage(categories)})
	}
	return errs
}
