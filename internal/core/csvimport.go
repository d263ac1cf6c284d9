package core

// csvimport.go turns an uploaded sponsor CSV into sponsor records.
//
// The pipeline is all-or-nothing at the file level:
//  1. Blank lines are dropped and the header row is checked for every required column
//  2. Every data row is validated and all of its problems are collected
//  3. If any row has problems, only the row errors are returned
//  4. Otherwise every row becomes a Sponsor with a fresh ID

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
)

// ImportMaxFileSize is the documented size guidance for import files (10MB).
const ImportMaxFileSize = 10 * 1024 * 1024

// TemplateFileName is the suggested download name for the import template.
const TemplateFileName = "sponsor-template.csv"

// templateExample is the example row shipped with the import template.
var templateExample = []string{
	"Acme Corp", "Technology", "Gold", "John Smith", "contact@acme.com", "CEO",
	"Main Street", "123", "12345", "New York", "USA",
}

// NewID generates identifiers for locally created records.
var NewID = func() string { return uuid.NewString() }

// ImportRow is one parsed data row of an import file.
type ImportRow struct {
	Name           string `json:"name"`
	Industry       string `json:"industry"`
	Category       string `json:"category"`
	AccountManager string `json:"accountManager"`
	Email          string `json:"email"`
	Role           string `json:"role"`
	Street         string `json:"street"`
	Number         string `json:"number"`
	Zip            string `json:"zip"`
	City           string `json:"city"`
	Country        string `json:"country"`
}

// RowError lists every problem found in one data row.
// Row is 1-based and counts data rows only (header and blank lines excluded).
type RowError struct {
	Row    int      `json:"row"`
	Errors []string `json:"errors"`
}

// ImportResult is the outcome of parsing an import file.
// Sponsors is populated only when Errors is empty.
type ImportResult struct {
	Rows     []ImportRow `json:"rows"`
	Errors   []RowError  `json:"errors,omitempty"`
	Sponsors []Sponsor   `json:"sponsors,omitempty"`
}

// OK reports whether the file passed validation.
func (r *ImportResult) OK() bool {
	return len(r.Errors) == 0
}

// Import file errors.
var (
	ErrEmptyFile  = errors.New("empty file: no header row found")
	ErrInvalidCSV = errors.New("invalid csv")
)

// ParseSponsorCSV reads an import file and validates it against categories.
// A missing header yields a *HeaderError and no result. Row problems are
// reported in the result, never as an error.
func ParseSponsorCSV(r io.Reader, categories []string) (*ImportResult, error) {
	reader := csv.NewReader(WrapForImport(r))
	reader.FieldsPerRecord = -1

	records, err := readNonBlank(reader)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrEmptyFile
	}

	idx, err := ValidateHeaders(records[0])
	if err != nil {
		return nil, err
	}

	data := records[1:]
	result := &ImportResult{Rows: make([]ImportRow, 0, len(data))}

	for i, row := range data {
		result.Rows = append(result.Rows, toImportRow(row, idx))
		if errs := ValidateImportRow(row, idx, categories); len(errs) > 0 {
			result.Errors = append(result.Errors, RowError{Row: i + 1, Errors: errs})
		}
	}

	if !result.OK() {
		return result, nil
	}

	result.Sponsors = make([]Sponsor, len(result.Rows))
	for i, row := range result.Rows {
		result.Sponsors[i] = row.Sponsor(NewID())
	}
	return result, nil
}

// readNonBlank reads every record, dropping lines that hold nothing but
// whitespace. A row of empty cells has delimiters and is kept so that it is
// reported like any other incomplete row.
func readNonBlank(reader *csv.Reader) ([][]string, error) {
	var records [][]string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			return records, nil
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidCSV, err)
		}
		if len(row) == 1 && strings.TrimSpace(row[0]) == "" {
			continue
		}
		records = append(records, row)
	}
}

func toImportRow(row []string, idx HeaderIndex) ImportRow {
	return ImportRow{
		Name:           idx.Lookup(row, ColName),
		Industry:       idx.Lookup(row, ColIndustry),
		Category:       idx.Lookup(row, ColCategory),
		AccountManager: idx.Lookup(row, ColAccountManager),
		Email:          idx.Lookup(row, ColEmail),
		Role:           idx.Lookup(row, ColRole),
		Street:         idx.Lookup(row, ColStreet),
		Number:         idx.Lookup(row, ColNumber),
		Zip:            idx.Lookup(row, ColZip),
		City:           idx.Lookup(row, ColCity),
		Country:        idx.Lookup(row, ColCountry),
	}
}

// Sponsor converts a validated row into a sponsor record.
// The contact name is left blank and no billing address is set.
func (r ImportRow) Sponsor(id string) Sponsor {
	return Sponsor{
		ID:             id,
		Name:           r.Name,
		Logo:           PlaceholderLogo,
		Industry:       r.Industry,
		Category:       r.Category,
		AccountManager: r.AccountManager,
		Contact: Contact{
			Role:  r.Role,
			Email: r.Email,
		},
		Address: Address{
			Street:  r.Street,
			Number:  r.Number,
			Zip:     r.Zip,
			City:    r.City,
			Country: r.Country,
		},
	}
}

// SponsorTemplateCSV returns the downloadable import template: the header
// line followed by one example row.
func SponsorTemplateCSV() string {
	return strings.Join(ImportHeaders(), ",") + "\n" + strings.Join(templateExample, ",")
}
