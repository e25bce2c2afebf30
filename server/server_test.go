package server

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foliodash/folio"
)

const transactionsCSV = `Trade date,Settle date,Reference,Transaction Category,Direction,Description,Quantity,Unit cost (£),Purchase Value (£),Account
02/01/2025,04/01/2025,REF001,Deposit,In,Debit card payment,,,"£1,000.00",ISA
10/01/2025,12/01/2025,REF002,Purchase,Out,ACME Inc ORD 10p,10,£10.00,£100.00,ISA
`

const pricesCSV = `Code,Stock,Price (pence)
ACME,ACME Inc,1200
`

func newTestServer(t *testing.T) *Server {
	t.Helper()
	store := NewStore(folio.NewBuilder(folio.NewDefaultResolver()))
	return New(Config{Port: 0, Log: zerolog.Nop()}, store)
}

// multipartBody builds a multipart form carrying one CSV file.
func multipartBody(t *testing.T, content string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", "export.csv")
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func upload(t *testing.T, s *Server, path, csv string) *httptest.ResponseRecorder {
	t.Helper()
	body, contentType := multipartBody(t, csv)
	req := httptest.NewRequest(http.MethodPost, path, body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func get(s *Server, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	rec := get(newTestServer(t), "/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestPortfolio_IncompleteUntilBothUploads(t *testing.T) {
	s := newTestServer(t)

	rec := get(s, "/api/portfolio")
	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "both transactions and market prices are required")

	rec = upload(t, s, "/api/upload/transactions", transactionsCSV)
	require.Equal(t, http.StatusOK, rec.Code)

	// One dataset is not enough.
	rec = get(s, "/api/portfolio")
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = upload(t, s, "/api/upload/prices", pricesCSV)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = get(s, "/api/portfolio")
	require.Equal(t, http.StatusOK, rec.Code)

	var snapshot struct {
		TotalValue struct {
			Currency string  `json:"currency"`
			Amount   float64 `json:"amount"`
		} `json:"totalValue"`
		Holdings  []map[string]any `json:"holdings"`
		Anomalies []map[string]any `json:"anomalies"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snapshot))
	assert.Equal(t, "GBP", snapshot.TotalValue.Currency)
	assert.InDelta(t, 120.0, snapshot.TotalValue.Amount, 0.001)
	require.Len(t, snapshot.Holdings, 1)
	assert.Equal(t, "ACME", snapshot.Holdings[0]["symbol"])
	assert.Empty(t, snapshot.Anomalies)
}

func TestUpload_ReturnsUploadID(t *testing.T) {
	s := newTestServer(t)
	rec := upload(t, s, "/api/upload/transactions", transactionsCSV)
	require.Equal(t, http.StatusOK, rec.Code)

	var up Upload
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &up))
	assert.NotEmpty(t, up.ID)
	assert.Equal(t, 2, up.Rows)
	assert.Empty(t, up.RowErrors)

	// A second upload gets a fresh ID.
	rec = upload(t, s, "/api/upload/transactions", transactionsCSV)
	var up2 Upload
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &up2))
	assert.NotEqual(t, up.ID, up2.ID)
}

func TestUpload_RowErrorsReported(t *testing.T) {
	withBadRow := transactionsCSV + "bad-date,04/01/2025,REF003,Deposit,In,,,,£50.00,ISA\n"
	s := newTestServer(t)
	rec := upload(t, s, "/api/upload/transactions", withBadRow)
	require.Equal(t, http.StatusOK, rec.Code)

	var up Upload
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &up))
	assert.Equal(t, 2, up.Rows)
	require.Len(t, up.RowErrors, 1)
	assert.Equal(t, 4, up.RowErrors[0].Line)
}

func TestUpload_WrongHeaders(t *testing.T) {
	s := newTestServer(t)
	rec := upload(t, s, "/api/upload/prices", "Ticker,Name,Price\nACME,ACME Inc,12\n")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "missing columns")
}

func TestUpload_MissingFileField(t *testing.T) {
	s := newTestServer(t)
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField("note", "no file here"))
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/upload/transactions", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStore_RebuildSwapsSnapshot(t *testing.T) {
	s := newTestServer(t)
	require.Equal(t, http.StatusOK, upload(t, s, "/api/upload/transactions", transactionsCSV).Code)
	require.Equal(t, http.StatusOK, upload(t, s, "/api/upload/prices", pricesCSV).Code)

	first := get(s, "/api/portfolio")
	require.Equal(t, http.StatusOK, first.Code)

	// Re-uploading prices with a new quote replaces the whole snapshot.
	require.Equal(t, http.StatusOK, upload(t, s, "/api/upload/prices", "Code,Stock,Price (pence)\nACME,ACME Inc,1500\n").Code)

	second := get(s, "/api/portfolio")
	require.Equal(t, http.StatusOK, second.Code)

	var snapshot struct {
		TotalValue struct {
			Amount float64 `json:"amount"`
		} `json:"totalValue"`
	}
	require.NoError(t, json.Unmarshal(second.Body.Bytes(), &snapshot))
	assert.InDelta(t, 150.0, snapshot.TotalValue.Amount, 0.001)
}

func TestStore_EmptyUploadRejected(t *testing.T) {
	headersOnly := "Trade date,Settle date,Reference,Transaction Category,Direction,Description,Quantity,Unit cost (£),Purchase Value (£),Account\n"

	s := newTestServer(t)
	require.Equal(t, http.StatusOK, upload(t, s, "/api/upload/transactions", transactionsCSV).Code)
	require.Equal(t, http.StatusOK, upload(t, s, "/api/upload/prices", pricesCSV).Code)

	first := get(s, "/api/portfolio")
	require.Equal(t, http.StatusOK, first.Code)

	// A replacement upload with no rows is rejected and the dataset kept.
	rec := upload(t, s, "/api/upload/transactions", headersOnly)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "no transactions")

	second := get(s, "/api/portfolio")
	require.Equal(t, http.StatusOK, second.Code)
	assert.JSONEq(t, first.Body.String(), second.Body.String())

	// On a fresh store the same upload is rejected outright.
	fresh := newTestServer(t)
	assert.Equal(t, http.StatusUnprocessableEntity, upload(t, fresh, "/api/upload/transactions", headersOnly).Code)
	assert.Equal(t, http.StatusConflict, get(fresh, "/api/portfolio").Code)
}
