package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncodeAddress(t *testing.T) {
	a := Address{Street: "Main Street", Number: "123", Zip: "12345", City: "New York", Country: "USA"}
	assert.Equal(t, "Main Street,123,12345,New York,USA", EncodeAddress(a))
}

func TestDecodeAddress(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Address
	}{
		{
			name:  "empty string",
			input: "",
			want:  Address{},
		},
		{
			name:  "five segments",
			input: "Main Street, 123, 12345, New York, USA",
			want:  Address{Street: "Main Street", Number: "123", Zip: "12345", City: "New York", Country: "USA"},
		},
		{
			name:  "segments trimmed",
			input: "  Elm Rd ,7,  9000,Oslo ,  Norway ",
			want:  Address{Street: "Elm Rd", Number: "7", Zip: "9000", City: "Oslo", Country: "Norway"},
		},
		{
			name:  "missing trailing segments",
			input: "Elm Rd, 7",
			want:  Address{Street: "Elm Rd", Number: "7"},
		},
		{
			name:  "extra segments discarded",
			input: "a, b, c, d, e, f, g",
			want:  Address{Street: "a", Number: "b", Zip: "c", City: "d", Country: "e"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DecodeAddress(tt.input))
		})
	}
}

func TestInspectAddress(t *testing.T) {
	tests := []struct {
		input    string
		segments int
		wellFmt  bool
	}{
		{input: "", segments: 0, wellFmt: true},
		{input: "a, b, c, d, e", segments: 5, wellFmt: true},
		{input: "a, b", segments: 2, wellFmt: false},
		{input: "a,b,c,d,e,f", segments: 6, wellFmt: false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, n := InspectAddress(tt.input)
			assert.Equal(t, tt.segments, n)
			assert.Equal(t, tt.wellFmt, WellFormedAddress(tt.input))
		})
	}
}

func TestAddressRoundTrip(t *testing.T) {
	addresses := []Address{
		{},
		{Street: "Main Street", Number: "123", Zip: "12345", City: "New York", Country: "USA"},
		{Street: "Ringvej", Number: "4B", Zip: "", City: "Aarhus", Country: "Denmark"},
		{Street: "", Number: "", Zip: "", City: "", Country: "Iceland"},
		{Street: "Rue de l'Église", Number: "12 bis", Zip: "75001", City: "Paris", Country: "France"},
	}

	for _, a := range addresses {
		assert.Equal(t, a, DecodeAddress(EncodeAddress(a)), "round trip of %+v", a)
	}
}

func TestFormatAddress(t *testing.T) {
	a := Address{Street: "Main Street", Number: "123", Zip: "12345", City: "New York", Country: "USA"}
	assert.Equal(t, "Main Street 123, 12345 New York, USA", FormatAddress(a))
	assert.Empty(t, FormatAddress(Address{}))
}
