package store

// Queries shared by the SQL backends. Placeholders use the PostgreSQL $N form;
// the SQLite backend rewrites them to ? (each $N appears once, in order).

const (
	qSelectOfferings = `SELECT id, name, description, type FROM offerings ORDER BY seq`
	qUpsertOffering  = `INSERT INTO offerings (id, name, description, type) VALUES ($1, $2, $3, $4)
ON CONFLICT (id) DO UPDATE SET name = excluded.name, description = excluded.description, type = excluded.type`
	qDeleteOffering = `DELETE FROM offerings WHERE id = $1`

	qSelectBookings = `SELECT id, sponsor_id, offering_id, sponsor_name, offering_name, start_date, end_date, is_active
FROM bookings ORDER BY seq`
	qUpsertBooking = `INSERT INTO bookings (id, sponsor_id, offering_id, sponsor_name, offering_name, start_date, end_date, is_active)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT (id) DO UPDATE SET sponsor_id = excluded.sponsor_id, offering_id = excluded.offering_id,
sponsor_name = excluded.sponsor_name, offering_name = excluded.offering_name,
start_date = excluded.start_date, end_date = excluded.end_date, is_active = excluded.is_active`
	qDeleteBooking = `DELETE FROM bookings WHERE id = $1`

	qSelectCategories = `SELECT label FROM categories ORDER BY position`
	qDeleteCategories = `DELETE FROM categories`
	qInsertCategory   = `INSERT INTO categories (position, label) VALUES ($1, $2)`

	qSelectGames = `SELECT id, date, time, league, home_team, away_team, venue FROM games ORDER BY seq`
	qUpsertGame  = `INSERT INTO games (id, date, time, league, home_team, away_team, venue)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (id) DO UPDATE SET date = excluded.date, time = excluded.time, league = excluded.league,
home_team = excluded.home_team, away_team = excluded.away_team, venue = excluded.venue`

	qSelectFiles = `SELECT sponsor_id, id, name, type, size, url, upload_date FROM sponsor_files ORDER BY seq`
	qInsertFile  = `INSERT INTO sponsor_files (sponsor_id, id, name, type, size, url, upload_date)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

	qInsertAudit = `INSERT INTO audit_log (id, action, severity, entity, entity_id, summary, ip_address, user_agent, count, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	// Empty filter values match everything. seq orders entries written
	// within the same timestamp.
	qSelectAudit = `SELECT id, action, severity, entity, entity_id, summary, ip_address, user_agent, count, created_at
FROM audit_log
WHERE ($1 = '' OR entity = $2) AND ($3 = '' OR action = $4)
ORDER BY created_at DESC, seq DESC
LIMIT $5 OFFSET $6`
	qPruneAudit = `DELETE FROM audit_log WHERE created_at < $1`
)

// rowScanner is satisfied by pgx.Rows and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func auditArgs(filter auditQuery) []any {
	return []any{filter.entity, filter.entity, filter.action, filter.action, filter.limit, filter.offset}
}

// auditQuery is a normalized AuditLogFilter.
type auditQuery struct {
	entity string
	action string
	limit  int
	offset int
}
