package web

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JonMunkholm/SponsorDesk/internal/airtable"
	"github.com/JonMunkholm/SponsorDesk/internal/config"
	"github.com/JonMunkholm/SponsorDesk/internal/core"
	"github.com/JonMunkholm/SponsorDesk/internal/store"
)

var testNow = time.Date(2025, 1, 11, 9, 30, 0, 0, time.UTC)

// fakeRemote is an in-memory Remote. Setting an error field makes the
// matching call fail.
type fakeRemote struct {
	mu       sync.Mutex
	sponsors []airtable.SponsorRecord
	games    []airtable.GameRecord

	listErr   error
	createErr error
	creates   int
}

func (f *fakeRemote) ListSponsors(context.Context) ([]airtable.SponsorRecord, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.sponsors, nil
}

func (f *fakeRemote) ListGames(context.Context) ([]airtable.GameRecord, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.games, nil
}

func (f *fakeRemote) CreateSponsor(_ context.Context, s core.Sponsor) (airtable.SponsorRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return airtable.SponsorRecord{}, f.createErr
	}
	f.creates++
	return airtable.SponsorRecord{
		ID:     fmt.Sprintf("recNew%d", f.creates),
		Fields: airtable.SponsorFields{Name: s.Name, Category: s.Category},
	}, nil
}

func (f *fakeRemote) UpdateSponsor(_ context.Context, s core.Sponsor) (airtable.SponsorRecord, error) {
	return airtable.SponsorRecord{ID: s.ID, Fields: airtable.SponsorFields{Name: s.Name, Logo: "https://logo.example/acme.png"}}, nil
}

func (f *fakeRemote) DeleteSponsor(context.Context, string) error {
	return nil
}

func seededRemote() *fakeRemote {
	return &fakeRemote{
		sponsors: []airtable.SponsorRecord{
			{ID: "rec1", Fields: airtable.SponsorFields{Name: "Acme Corp", Category: "Gold", Address: "Main Street, 1, 12345, Springfield, USA"}},
			{ID: "rec2", Fields: airtable.SponsorFields{Name: "Globex", Category: "Silver", Address: "Elm Road, 9, 54321, Shelbyville, USA"}},
		},
		games: []airtable.GameRecord{
			{ID: "game1", Fields: airtable.GameFields{Date: "2025-02-01", HomeTeam: "Lions", AwayTeam: "Tigers"}},
		},
	}
}

func testConfig() config.Config {
	return config.Config{
		Import: config.ImportConfig{MaxFileSize: 1 << 20, MaxConcurrent: 1, MaxWaitTime: time.Second},
	}
}

// newTestServer builds a loaded store over remote and a server around it.
func newTestServer(t *testing.T, remote *fakeRemote, cfg config.Config) (*Server, *store.Store) {
	t.Helper()
	st, err := store.New(store.Deps{
		Remote: remote,
		Clock:  func() time.Time { return testNow },
	})
	require.NoError(t, err)
	require.NoError(t, st.Init(context.Background()))
	t.Cleanup(func() { _ = st.Close() })

	srv := NewServer(st, nil, cfg)
	srv.clock = func() time.Time { return testNow }
	return srv, st
}

func doJSON(t *testing.T, srv *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v), rec.Body.String())
	return v
}

func TestState(t *testing.T) {
	srv, _ := newTestServer(t, seededRemote(), testConfig())

	rec := doJSON(t, srv, http.MethodGet, "/api/state", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	st := decode[store.State](t, rec)
	assert.Len(t, st.Sponsors, 2)
	assert.Equal(t, []string{"Gold", "Silver"}, st.Categories)
	assert.Len(t, st.Games, 1)
	assert.False(t, st.Loading)
}

func TestCreateSponsor(t *testing.T) {
	srv, st := newTestServer(t, seededRemote(), testConfig())

	rec := doJSON(t, srv, http.MethodPost, "/api/sponsors", core.Sponsor{Name: "Initech", Category: "Gold"})

	require.Equal(t, http.StatusCreated, rec.Code)
	created := decode[core.Sponsor](t, rec)
	assert.Equal(t, "recNew1", created.ID)
	assert.Equal(t, core.PlaceholderLogo, created.Logo)
	assert.Len(t, st.Snapshot().Sponsors, 3)
}

func TestCreateSponsor_Validation(t *testing.T) {
	tests := []struct {
		name      string
		sponsor   core.Sponsor
		wantField string
	}{
		{"blank name", core.Sponsor{Name: "  ", Category: "Gold"}, "name"},
		{"unknown category", core.Sponsor{Name: "Initech", Category: "Platinum"}, "category"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := newTestServer(t, seededRemote(), testConfig())

			rec := doJSON(t, srv, http.MethodPost, "/api/sponsors", tt.sponsor)

			require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
			resp := decode[ErrorResponse](t, rec)
			require.Len(t, resp.Fields, 1)
			assert.Equal(t, tt.wantField, resp.Fields[0].Field)
			assert.Equal(t, "VAL003", resp.Code)
		})
	}
}

func TestCreateSponsor_RemoteFailure(t *testing.T) {
	remote := seededRemote()
	remote.createErr = &airtable.APIError{Status: 404, Type: "NOT_FOUND"}
	srv, st := newTestServer(t, remote, testConfig())

	rec := doJSON(t, srv, http.MethodPost, "/api/sponsors", core.Sponsor{Name: "Initech", Category: "Gold"})

	require.Equal(t, http.StatusBadGateway, rec.Code)
	resp := decode[ErrorResponse](t, rec)
	assert.Equal(t, "Failed to add sponsor: Airtable resource not found. Please check your Base ID and Table ID.", resp.Message)
	assert.Equal(t, "AT001", resp.Code)
	assert.Len(t, st.Snapshot().Sponsors, 2)

	notices := st.Notices()
	require.NotEmpty(t, notices)
	assert.Equal(t, store.NoticeError, notices[0].Level)
}

func TestUpdateSponsor(t *testing.T) {
	srv, st := newTestServer(t, seededRemote(), testConfig())

	rec := doJSON(t, srv, http.MethodPut, "/api/sponsors/rec1", core.Sponsor{Name: "Acme Holdings", Category: "Silver"})

	require.Equal(t, http.StatusOK, rec.Code)
	sp, ok := st.Snapshot().Sponsor("rec1")
	require.True(t, ok)
	assert.Equal(t, "Acme Holdings", sp.Name)
	assert.Equal(t, "https://logo.example/acme.png", sp.Logo)

	rec = doJSON(t, srv, http.MethodPut, "/api/sponsors/missing", core.Sponsor{Name: "X", Category: "Gold"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteSponsor(t *testing.T) {
	srv, st := newTestServer(t, seededRemote(), testConfig())

	rec := doJSON(t, srv, http.MethodDelete, "/api/sponsors/rec2", nil)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	_, ok := st.Snapshot().Sponsor("rec2")
	assert.False(t, ok)
}

func TestQuickAddSponsor(t *testing.T) {
	srv, _ := newTestServer(t, seededRemote(), testConfig())

	rec := doJSON(t, srv, http.MethodPost, "/api/sponsors/quick", quickSponsorRequest{Name: "Umbrella"})

	require.Equal(t, http.StatusCreated, rec.Code)
	sp := decode[core.Sponsor](t, rec)
	assert.Equal(t, core.UncategorizedLabel, sp.Category)
	assert.Equal(t, "recNew1", sp.ID)
}

func TestAttachFile(t *testing.T) {
	srv, st := newTestServer(t, seededRemote(), testConfig())

	rec := doJSON(t, srv, http.MethodPost, "/api/sponsors/rec1/files", core.SponsorFile{Name: "contract.pdf", Size: 1024})

	require.Equal(t, http.StatusCreated, rec.Code)
	sp, _ := st.Snapshot().Sponsor("rec1")
	require.Len(t, sp.Files, 1)
	assert.Equal(t, testNow, sp.Files[0].UploadDate)
}

const importHeader = "name,industry,category,accountManager,email,role,street,number,zip,city,country\n"

func uploadRequest(t *testing.T, path, content string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", "sponsors.csv")
	require.NoError(t, err)
	_, err = fw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestImportTemplate(t *testing.T) {
	srv, _ := newTestServer(t, seededRemote(), testConfig())

	rec := doJSON(t, srv, http.MethodGet, "/api/import/template", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), core.TemplateFileName)
	assert.True(t, strings.HasPrefix(rec.Body.String(), strings.TrimSuffix(importHeader, "\n")))
}

func TestImportPreview_RowErrors(t *testing.T) {
	srv, _ := newTestServer(t, seededRemote(), testConfig())
	csv := importHeader +
		"Initech,Software,Gold,Bill,bill@initech.com,CEO,Main,1,111,Austin,USA\n" +
		"Hooli,Tech,Platinum,Gavin,gavin@hooli.com,CEO,Elm,2,222,Palo Alto,USA\n"

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, uploadRequest(t, "/api/import/preview", csv))

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	result := decode[core.ImportResult](t, rec)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, 2, result.Errors[0].Row)
	assert.Empty(t, result.Sponsors)
	assert.Len(t, result.Rows, 2)
}

func TestImportPreview_MissingHeaders(t *testing.T) {
	srv, _ := newTestServer(t, seededRemote(), testConfig())

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, uploadRequest(t, "/api/import/preview", "name,industry\nAcme,Tech\n"))

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	resp := decode[ErrorResponse](t, rec)
	assert.Equal(t, "VAL004", resp.Code)
	assert.Contains(t, resp.Missing, "category")
	assert.NotContains(t, resp.Missing, "name")
}

func TestImport(t *testing.T) {
	srv, st := newTestServer(t, seededRemote(), testConfig())
	csv := importHeader +
		"Initech,Software,Gold,Bill,bill@initech.com,CEO,Main,1,111,Austin,USA\n" +
		"\n" +
		"Hooli,Tech,Silver,Gavin,gavin@hooli.com,CEO,Elm,2,222,Palo Alto,USA\n"

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, uploadRequest(t, "/api/import", csv))

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	resp := decode[ImportResponse](t, rec)
	assert.Equal(t, 2, resp.Imported)
	assert.Equal(t, 2, resp.Total)
	assert.Len(t, st.Snapshot().Sponsors, 4)
	assert.Equal(t, 0, srv.imports.ActiveCount())
}

func TestImport_NoFile(t *testing.T) {
	srv, _ := newTestServer(t, seededRemote(), testConfig())

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	require.NoError(t, mw.WriteField("other", "x"))
	require.NoError(t, mw.Close())
	req := httptest.NewRequest(http.MethodPost, "/api/import", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "FILE003", decode[ErrorResponse](t, rec).Code)
}

func TestImport_TooLarge(t *testing.T) {
	cfg := testConfig()
	cfg.Import.MaxFileSize = 256
	srv, _ := newTestServer(t, seededRemote(), cfg)

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, uploadRequest(t, "/api/import", importHeader+strings.Repeat("x", 512)))

	require.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Equal(t, "FILE001", decode[ErrorResponse](t, rec).Code)
}

func TestImport_RemoteFailureReportsCount(t *testing.T) {
	remote := seededRemote()
	srv, st := newTestServer(t, remote, testConfig())
	remote.createErr = &airtable.APIError{Status: 403, Type: "INVALID_PERMISSIONS"}

	csv := importHeader + "Initech,Software,Gold,Bill,bill@initech.com,CEO,Main,1,111,Austin,USA\n"
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, uploadRequest(t, "/api/import", csv))

	require.Equal(t, http.StatusBadGateway, rec.Code)
	resp := decode[importFailure](t, rec)
	assert.Equal(t, 0, resp.Imported)
	assert.Equal(t, 1, resp.Total)
	assert.Equal(t, "AT002", resp.Code)
	assert.Len(t, st.Snapshot().Sponsors, 2)
}

func createOffering(t *testing.T, srv *Server) core.Offering {
	t.Helper()
	rec := doJSON(t, srv, http.MethodPost, "/api/offerings", offeringRequest{Name: "Banner", Type: core.OfferingPhysical})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[core.Offering](t, rec)
}

func TestOfferings(t *testing.T) {
	srv, st := newTestServer(t, seededRemote(), testConfig())

	o := createOffering(t, srv)
	assert.Equal(t, "Banner", o.Name)

	rec := doJSON(t, srv, http.MethodPut, "/api/offerings/"+o.ID, offeringRequest{Name: "Big Banner", Type: core.OfferingPhysical})
	require.Equal(t, http.StatusOK, rec.Code)
	got, _ := st.Snapshot().Offering(o.ID)
	assert.Equal(t, "Big Banner", got.Name)

	rec = doJSON(t, srv, http.MethodPost, "/api/offerings", offeringRequest{Name: "Radio", Type: "radio"})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = doJSON(t, srv, http.MethodDelete, "/api/offerings/"+o.ID, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, srv, http.MethodDelete, "/api/offerings/"+o.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestBookings_Range(t *testing.T) {
	srv, _ := newTestServer(t, seededRemote(), testConfig())
	o := createOffering(t, srv)

	rec := doJSON(t, srv, http.MethodPost, "/api/bookings", bookingRequest{
		Mode: core.ModeRange, SponsorID: "rec1", OfferingID: o.ID, From: "2025-01-10", To: "2025-01-12",
	})

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	bookings := decode[[]core.Booking](t, rec)
	require.Len(t, bookings, 1)
	assert.Equal(t, "2025-01-10", bookings[0].StartDate)
	assert.Equal(t, "2025-01-12", bookings[0].EndDate)
	assert.True(t, bookings[0].IsActive)
	assert.Equal(t, "Acme Corp", bookings[0].SponsorName)
}

func TestBookings_SpecificDates(t *testing.T) {
	srv, _ := newTestServer(t, seededRemote(), testConfig())
	o := createOffering(t, srv)

	rec := doJSON(t, srv, http.MethodPost, "/api/bookings", bookingRequest{
		Mode: core.ModeSpecific, SponsorID: "rec1", OfferingID: o.ID, Dates: []string{"2025-01-15", "2025-01-05"},
	})

	require.Equal(t, http.StatusCreated, rec.Code)
	bookings := decode[[]core.Booking](t, rec)
	require.Len(t, bookings, 2)
	assert.Equal(t, "2025-01-05", bookings[0].StartDate)
	assert.False(t, bookings[0].IsActive)
	assert.Equal(t, "2025-01-15", bookings[1].StartDate)
	assert.True(t, bookings[1].IsActive)
}

func TestBookings_Errors(t *testing.T) {
	srv, _ := newTestServer(t, seededRemote(), testConfig())
	o := createOffering(t, srv)

	tests := []struct {
		name string
		req  bookingRequest
		want int
	}{
		{"unknown sponsor", bookingRequest{Mode: core.ModeRange, SponsorID: "nope", OfferingID: o.ID, From: "2025-01-10", To: "2025-01-12"}, http.StatusUnprocessableEntity},
		{"missing range", bookingRequest{Mode: core.ModeRange, SponsorID: "rec1", OfferingID: o.ID}, http.StatusUnprocessableEntity},
		{"no dates", bookingRequest{Mode: core.ModeSpecific, SponsorID: "rec1", OfferingID: o.ID}, http.StatusUnprocessableEntity},
		{"bad date", bookingRequest{Mode: core.ModeRange, SponsorID: "rec1", OfferingID: o.ID, From: "someday", To: "2025-01-12"}, http.StatusUnprocessableEntity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, srv, http.MethodPost, "/api/bookings", tt.req)
			assert.Equal(t, tt.want, rec.Code)
		})
	}

	rec := doJSON(t, srv, http.MethodPost, "/api/bookings", "not an object")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBookings_SeedAndEdit(t *testing.T) {
	srv, st := newTestServer(t, seededRemote(), testConfig())
	o := createOffering(t, srv)
	rec := doJSON(t, srv, http.MethodPost, "/api/bookings", bookingRequest{
		Mode: core.ModeRange, SponsorID: "rec1", OfferingID: o.ID, From: "2025-01-10", To: "2025-01-12",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	id := decode[[]core.Booking](t, rec)[0].ID

	rec = doJSON(t, srv, http.MethodGet, "/api/bookings/"+id+"/seed", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	seed := decode[bookingSeed](t, rec)
	assert.Equal(t, core.ModeRange, seed.Mode)
	assert.Equal(t, "2025-01-10", seed.From)
	assert.Equal(t, id, seed.EditingID)

	rec = doJSON(t, srv, http.MethodPut, "/api/bookings/"+id, bookingRequest{
		Mode: core.ModeRange, SponsorID: "rec2", OfferingID: o.ID, From: "2025-02-01", To: "2025-02-03",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	b, ok := st.Snapshot().Booking(id)
	require.True(t, ok)
	assert.Equal(t, "Globex", b.SponsorName)
	assert.False(t, b.IsActive)

	rec = doJSON(t, srv, http.MethodPut, "/api/bookings/missing", bookingRequest{})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, srv, http.MethodDelete, "/api/bookings/"+id, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestCategories(t *testing.T) {
	srv, st := newTestServer(t, seededRemote(), testConfig())

	rec := doJSON(t, srv, http.MethodPost, "/api/categories", categoryRequest{Name: "Bronze"})
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, []string{"Gold", "Silver", "Bronze"}, decode[[]string](t, rec))

	rec = doJSON(t, srv, http.MethodPost, "/api/categories", categoryRequest{Name: "Gold"})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = doJSON(t, srv, http.MethodPut, "/api/categories/Gold", categoryRequest{Name: "Platinum"})
	require.Equal(t, http.StatusOK, rec.Code)
	sp, _ := st.Snapshot().Sponsor("rec1")
	assert.Equal(t, "Platinum", sp.Category)

	rec = doJSON(t, srv, http.MethodDelete, "/api/categories/Silver", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, []string{"Platinum", "Bronze"}, st.Snapshot().Categories)

	rec = doJSON(t, srv, http.MethodDelete, "/api/categories/Silver", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGames(t *testing.T) {
	srv, _ := newTestServer(t, seededRemote(), testConfig())

	rec := doJSON(t, srv, http.MethodPost, "/api/games", core.Game{Date: "2025-03-01", HomeTeam: "Lions", AwayTeam: "Bears"})
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.NotEmpty(t, decode[core.Game](t, rec).ID)

	rec = doJSON(t, srv, http.MethodPost, "/api/games", core.Game{Date: "2025-03-01"})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = doJSON(t, srv, http.MethodGet, "/api/games", nil)
	assert.Len(t, decode[[]core.Game](t, rec), 2)
}

func TestExports(t *testing.T) {
	srv, _ := newTestServer(t, seededRemote(), testConfig())

	tests := []struct {
		path        string
		contentType string
		contains    string
	}{
		{"/api/export/sponsors.csv", "text/csv; charset=utf-8", "Acme Corp"},
		{"/api/export/bookings.ics", "text/calendar; charset=utf-8", "BEGIN:VCALENDAR"},
		{"/api/export/bookings.xlsx", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", "PK"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := doJSON(t, srv, http.MethodGet, tt.path, nil)
			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.contentType, rec.Header().Get("Content-Type"))
			assert.Contains(t, rec.Header().Get("Content-Disposition"), "attachment")
			assert.Contains(t, rec.Body.String(), tt.contains)
		})
	}
}

func TestAuditLogAPI(t *testing.T) {
	srv, _ := newTestServer(t, seededRemote(), testConfig())
	createOffering(t, srv)
	doJSON(t, srv, http.MethodPost, "/api/categories", categoryRequest{Name: "Bronze"})

	rec := doJSON(t, srv, http.MethodGet, "/api/audit-log", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[AuditLogResponse](t, rec)
	require.Len(t, resp.Entries, 2)
	assert.Equal(t, core.ActionCategoryCreate, resp.Entries[0].Action)
	assert.False(t, resp.HasMore)

	rec = doJSON(t, srv, http.MethodGet, "/api/audit-log?entity=offering", nil)
	resp = decode[AuditLogResponse](t, rec)
	require.Len(t, resp.Entries, 1)
	assert.Equal(t, core.ActionOfferingCreate, resp.Entries[0].Action)
}

func TestPages(t *testing.T) {
	srv, _ := newTestServer(t, seededRemote(), testConfig())

	tests := []struct {
		path     string
		want     int
		contains string
	}{
		{"/", http.StatusOK, "Acme Corp"},
		{"/sponsors/rec1", http.StatusOK, "Springfield"},
		{"/sponsors/missing", http.StatusNotFound, "ST001"},
		{"/audit-log", http.StatusOK, "Audit log"},
		{"/placeholder.svg", http.StatusOK, "<svg"},
		{"/static/app.css", http.StatusOK, "body"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			rec := httptest.NewRecorder()
			srv.Router().ServeHTTP(rec, req)

			assert.Equal(t, tt.want, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.contains)
			assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
		})
	}
}

func TestReload_Failure(t *testing.T) {
	remote := seededRemote()
	srv, st := newTestServer(t, remote, testConfig())
	remote.listErr = fmt.Errorf("connection reset")

	rec := doJSON(t, srv, http.MethodPost, "/api/reload", nil)

	require.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, "ST002", decode[ErrorResponse](t, rec).Code)
	assert.Equal(t, store.LoadErrorMessage, st.Snapshot().LoadError)
	assert.Len(t, st.Snapshot().Sponsors, 2, "previous data is kept")

	req := httptest.NewRequest(http.MethodPost, "/api/reload", nil)
	req.Header.Set("Accept", "text/html")
	rec = httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
}

func TestNotices(t *testing.T) {
	srv, _ := newTestServer(t, seededRemote(), testConfig())
	doJSON(t, srv, http.MethodPost, "/api/categories", categoryRequest{Name: "Bronze"})

	rec := doJSON(t, srv, http.MethodGet, "/api/notices", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	notices := decode[[]store.Notice](t, rec)
	require.NotEmpty(t, notices)
	assert.Equal(t, "Category added successfully", notices[0].Message)
}

func TestAPIKeyRequired(t *testing.T) {
	cfg := testConfig()
	cfg.Security = config.SecurityConfig{RequireAPIKey: true, APIKeys: []string{"secret"}}
	srv, _ := newTestServer(t, seededRemote(), cfg)

	rec := doJSON(t, srv, http.MethodGet, "/api/state", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/state", nil)
	req.Header.Set("X-API-Key", "secret")
	rec = httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	rec = httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code, "pages are not behind the API key")
}

func TestRateLimit(t *testing.T) {
	cfg := testConfig()
	cfg.Rate = config.RateLimitConfig{Enabled: true, RequestsPerMinute: 2, ImportLimit: 1}
	srv, _ := newTestServer(t, seededRemote(), cfg)
	t.Cleanup(func() { _ = srv.Shutdown(context.Background()) })

	for i := 0; i < 2; i++ {
		rec := doJSON(t, srv, http.MethodGet, "/api/state", nil)
		require.Equal(t, http.StatusOK, rec.Code)
	}
	rec := doJSON(t, srv, http.MethodGet, "/api/state", nil)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "RATE001", decode[ErrorResponse](t, rec).Code)
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", core.ValidationError{Field: "name", Message: "x"}, http.StatusUnprocessableEntity},
		{"header", &core.HeaderError{Missing: []string{"name"}}, http.StatusUnprocessableEntity},
		{"not found", store.ErrSponsorNotFound, http.StatusNotFound},
		{"remote", &store.RemoteError{Op: core.OpAddSponsor, Notice: "x"}, http.StatusBadGateway},
		{"busy", core.ErrTooManyImports, http.StatusServiceUnavailable},
		{"bad request", badRequest(errNoFile), http.StatusBadRequest},
		{"deadline", fmt.Errorf("list: %w", context.DeadlineExceeded), http.StatusGatewayTimeout},
		{"other", fmt.Errorf("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, statusFor(tt.err))
		})
	}
}
