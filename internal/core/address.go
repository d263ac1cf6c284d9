package core

import "strings"

// addressSegments is the number of comma-separated parts in an encoded address.
const addressSegments = 5

// EncodeAddress joins the address fields into the single string stored remotely.
// Order is street, number, zip, city, country. Commas inside a field are not
// escaped and will shift the remaining fields on decode.
func EncodeAddress(a Address) string {
	return strings.Join([]string{a.Street, a.Number, a.Zip, a.City, a.Country}, ",")
}

// DecodeAddress parses a stored address string. It never fails: an empty
// input yields the zero Address, missing trailing segments become empty
// strings and surplus segments are dropped.
func DecodeAddress(s string) Address {
	a, _ := InspectAddress(s)
	return a
}

// InspectAddress decodes s like DecodeAddress and also returns the number of
// segments found, so callers can flag strings that are not well formed.
// An empty input reports zero segments.
func InspectAddress(s string) (Address, int) {
	if s == "" {
		return Address{}, 0
	}

	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	seg := func(i int) string {
		if i < len(parts) {
			return parts[i]
		}
		return ""
	}

	return Address{
		Street:  seg(0),
		Number:  seg(1),
		Zip:     seg(2),
		City:    seg(3),
		Country: seg(4),
	}, len(parts)
}

// WellFormedAddress reports whether an encoded address has exactly the
// expected number of segments. Empty strings count as well formed.
func WellFormedAddress(s string) bool {
	_, n := InspectAddress(s)
	return n == 0 || n == addressSegments
}

// FormatAddress renders an address for display, e.g. "Main Street 123, 12345 New York, USA".
func FormatAddress(a Address) string {
	if a.IsZero() {
		return ""
	}
	return a.Street + " " + a.Number + ", " + a.Zip + " " + a.City + ", " + a.Country
}
