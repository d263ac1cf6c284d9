// Package core holds the sponsor desk's domain logic, independent of any
// transport or storage layer.
//
// # Records
//
// [Sponsor], [Offering], [Booking] and [Game] are the records the store keeps.
// Sponsor addresses travel to the remote table as a single comma-joined
// string; see [EncodeAddress] and [DecodeAddress].
//
// # Import
//
// [ParseSponsorCSV] validates an uploaded file against the required header
// set and the current categories. The file is accepted only if every row is
// valid; otherwise each failing row is reported with all of its problems.
// Input is streamed through [WrapForImport], which drops a UTF-8 BOM and
// replaces invalid byte sequences.
//
// # Bookings
//
// [ExpandBooking] turns a calendar selection into bookings: one booking for a
// range, or one single-day booking per selected date.
//
// # Error Handling
//
// Technical errors are mapped to user-friendly messages using [MapError].
// Each error category has a unique code for support reference:
//
//   - AT001-AT004: Airtable errors (not found, permissions, auth, bad data)
//   - VAL001-VAL005: Validation errors (dates, required fields, columns)
//   - FILE001-FILE004: File errors (size, format, empty)
//   - IMP001-IMP003: Import errors (busy, cancelled, timeout)
//   - ST001-ST004: Store errors (not found, load, duplicates, storage)
//
// [RemoteNotice] builds the operation-prefixed notice for a failed remote
// sponsor change.
package core
