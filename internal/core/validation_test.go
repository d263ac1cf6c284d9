package core

import (
	"testing"
)

func TestValidateHeaders(t *testing.T) {
	tests := []struct {
		name        string
		headers     []string
		wantMissing []string
	}{
		{
			name:        "all present",
			headers:     ImportHeaders(),
			wantMissing: nil,
		},
		{
			name:        "case insensitive",
			headers:     []string{"NAME", "Industry", "Category", "ACCOUNTMANAGER", "Email", "Role", "Street", "Number", "Zip", "City", "Country"},
			wantMissing: nil,
		},
		{
			name:        "missing several",
			headers:     []string{"name", "category", "email"},
			wantMissing: []string{"industry", "accountManager", "role", "street", "number", "zip", "city", "country"},
		},
		{
			name:        "empty header row",
			headers:     []string{},
			wantMissing: ImportHeaders(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx, err := ValidateHeaders(tt.headers)
			if tt.wantMissing == nil {
				if err != nil {
					t.Fatalf("ValidateHeaders() error = %v, want nil", err)
				}
				if len(idx) != len(tt.headers) {
					t.Errorf("index size = %d, want %d", len(idx), len(tt.headers))
				}
				return
			}

			headerErr, ok := err.(*HeaderError)
			if !ok {
				t.Fatalf("ValidateHeaders() error = %v, want *HeaderError", err)
			}
			if len(headerErr.Missing) != len(tt.wantMissing) {
				t.Fatalf("Missing = %v, want %v", headerErr.Missing, tt.wantMissing)
			}
			for i := range tt.wantMissing {
				if headerErr.Missing[i] != tt.wantMissing[i] {
					t.Errorf("Missing[%d] = %q, want %q", i, headerErr.Missing[i], tt.wantMissing[i])
				}
			}
		})
	}
}

func TestValidateSponsor(t *testing.T) {
	categories := []string{"Gold", "Silver"}

	tests := []struct {
		name    string
		sponsor Sponsor
		want    []ValidationError
	}{
		{
			name:    "valid",
			sponsor: Sponsor{Name: "Acme", Category: "Gold"},
			want:    nil,
		},
		{
			name:    "blank name",
			sponsor: Sponsor{Name: "  ", Category: "Silver"},
			want:    []ValidationError{{Field: "name", Message: "Please enter a company name"}},
		},
		{
			name:    "no category",
			sponsor: Sponsor{Name: "Acme"},
			want:    []ValidationError{{Field: "category", Message: "Please select a category"}},
		},
		{
			name:    "unknown category",
			sponsor: Sponsor{Name: "Acme", Category: "gold"},
			want:    []ValidationError{{Field: "category", Message: "Category must be one of: Gold, Silver"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValidateSponsor(tt.sponsor, categories)
			if len(got) != len(tt.want) {
				t.Fatalf("ValidateSponsor() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("ValidateSponsor()[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestValidationError_Error(t *testing.T) {
	if got := (ValidationError{Field: "name", Message: "required"}).Error(); got != "name: required" {
		t.Errorf("Error() = %q", got)
	}
	if got := (ValidationError{Message: "required"}).Error(); got != "required" {
		t.Errorf("Error() = %q", got)
	}
}
