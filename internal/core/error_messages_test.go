package core

import (
	"errors"
	"fmt"
	"testing"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantCode    string
		wantMessage string
	}{
		{
			name:        "nil error returns empty",
			err:         nil,
			wantCode:    "",
			wantMessage: "",
		},
		{
			name:        "airtable not found",
			err:         errors.New("airtable: 404 NOT_FOUND: Could not find table"),
			wantCode:    "AT001",
			wantMessage: "Airtable resource not found",
		},
		{
			name:        "airtable insufficient permissions",
			err:         errors.New("airtable: 403 INVALID_PERMISSIONS: Insufficient permissions"),
			wantCode:    "AT002",
			wantMessage: "Insufficient permissions",
		},
		{
			name:        "airtable authentication",
			err:         errors.New("airtable: 401 AUTHENTICATION_REQUIRED: Authentication required"),
			wantCode:    "AT003",
			wantMessage: "Airtable authentication failed",
		},
		{
			name:        "sponsor or offering before generic not found",
			err:         errors.New("sponsor or offering not found"),
			wantCode:    "VAL002",
			wantMessage: "Sponsor or offering not found",
		},
		{
			name:        "generic not found",
			err:         errors.New("booking not found"),
			wantCode:    "ST001",
			wantMessage: "Record not found",
		},
		{
			name:        "missing columns",
			err:         &HeaderError{Missing: []string{"zip"}},
			wantCode:    "VAL004",
			wantMessage: "Required column is missing from CSV",
		},
		{
			name:        "import limiter busy",
			err:         ErrTooManyImports,
			wantCode:    "IMP001",
			wantMessage: "System is busy processing other imports",
		},
		{
			name:        "duplicate key maps correctly",
			err:         errors.New("pq: duplicate key value violates unique constraint"),
			wantCode:    "ST003",
			wantMessage: "A record with this ID already exists",
		},
		{
			name:        "rate limit maps correctly",
			err:         errors.New("rate limit exceeded"),
			wantCode:    "RATE001",
			wantMessage: "Too many requests",
		},
		{
			name:        "unknown error returns default",
			err:         errors.New("some random internal error"),
			wantCode:    "ERR000",
			wantMessage: "An unexpected error occurred",
		},
		{
			name:        "case insensitive matching",
			err:         errors.New("FILE TOO LARGE"),
			wantCode:    "FILE001",
			wantMessage: "File exceeds maximum size limit (10MB)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapError(tt.err)
			if got.Code != tt.wantCode {
				t.Errorf("MapError() code = %q, want %q", got.Code, tt.wantCode)
			}
			if got.Message != tt.wantMessage {
				t.Errorf("MapError() message = %q, want %q", got.Message, tt.wantMessage)
			}
		})
	}
}

func TestFormatUserError(t *testing.T) {
	result := FormatUserError(errors.New("no file provided"))

	expected := "No file was selected (Code: FILE003). Please select a CSV file to upload"
	if result != expected {
		t.Errorf("FormatUserError() = %q, want %q", result, expected)
	}
}

func TestIsUserFacing(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil error is not user facing", err: nil, want: false},
		{name: "known error is user facing", err: errors.New("invalid date: \"x\""), want: true},
		{name: "unknown error is not user facing", err: errors.New("random internal error xyz"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsUserFacing(tt.err); got != tt.want {
				t.Errorf("IsUserFacing() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewUserError(t *testing.T) {
	t.Run("nil error returns nil", func(t *testing.T) {
		if got := NewUserError(nil); got != nil {
			t.Errorf("NewUserError(nil) = %v, want nil", got)
		}
	})

	t.Run("wraps technical error with user message", func(t *testing.T) {
		techErr := errors.New("dial tcp: connection refused")
		userErr := NewUserError(techErr)

		if userErr.Error() != "Storage is unavailable" {
			t.Errorf("Error() = %q, want user message", userErr.Error())
		}
		if !errors.Is(userErr, techErr) {
			t.Error("Unwrap() should return original error")
		}
	})
}

func TestRemoteNotice(t *testing.T) {
	notFound := errors.New("airtable: 404 NOT_FOUND: Could not find what you are looking for")
	denied := errors.New("airtable: 403 INVALID_PERMISSIONS: Insufficient permissions")
	other := errors.New("airtable: 422 INVALID_VALUE_FOR_COLUMN: Field \"Logo_url\" cannot accept the provided value")

	tests := []struct {
		name string
		op   RemoteOp
		err  error
		want string
	}{
		{
			name: "add not found",
			op:   OpAddSponsor,
			err:  notFound,
			want: "Failed to add sponsor: Airtable resource not found. Please check your Base ID and Table ID.",
		},
		{
			name: "add permissions",
			op:   OpAddSponsor,
			err:  denied,
			want: "Failed to add sponsor: Insufficient permissions. Please check your Airtable API token.",
		},
		{
			name: "add other",
			op:   OpAddSponsor,
			err:  other,
			want: "Failed to add sponsor: " + other.Error(),
		},
		{
			name: "update not found",
			op:   OpUpdateSponsor,
			err:  fmt.Errorf("update sponsor: %w", notFound),
			want: "Failed to update sponsor: Airtable resource not found",
		},
		{
			name: "update permissions",
			op:   OpUpdateSponsor,
			err:  denied,
			want: "Failed to update sponsor: Insufficient permissions",
		},
		{
			name: "delete is fixed",
			op:   OpDeleteSponsor,
			err:  notFound,
			want: "Failed to delete sponsor",
		},
		{
			name: "unexpected",
			op:   OpAddSponsor,
			err:  ErrUnexpected,
			want: "An unexpected error occurred while adding the sponsor",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RemoteNotice(tt.op, tt.err); got != tt.want {
				t.Errorf("RemoteNotice() = %q, want %q", got, tt.want)
			}
		})
	}
}
