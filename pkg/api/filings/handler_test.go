package filings

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"edgar_sections/pkg/core/edgar"
	"edgar_sections/pkg/core/pipeline"
)

func newTestHandler() *Handler {
	return NewHandler(pipeline.New(edgar.NewClient(), nil), nil)
}

func TestHandleSection_RejectsBadBody(t *testing.T) {
	h := newTestHandler()

	req := httptest.NewRequest("POST", "/api/filings/section", strings.NewReader("not json"))
	rec := httptest.NewRecorder()
	h.HandleSection(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleSection_RequiresTickerAndYear(t *testing.T) {
	h := newTestHandler()

	req := httptest.NewRequest("POST", "/api/filings/section", strings.NewReader(`{"ticker":"AAPL"}`))
	rec := httptest.NewRecorder()
	h.HandleSection(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Error, "fiscal_year")
}

func TestHandleSectionCatalog(t *testing.T) {
	h := newTestHandler()

	req := httptest.NewRequest("GET", "/api/filings/sections", nil)
	rec := httptest.NewRecorder()
	h.HandleSectionCatalog(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var entries []struct {
		Item    string `json:"item"`
		Heading string `json:"heading"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entries))
	require.NotEmpty(t, entries)
	assert.Equal(t, "1", entries[0].Item)
	assert.Equal(t, "Item 1. Business", entries[0].Heading)
}

func TestHandleCompare_RequiresBothYears(t *testing.T) {
	h := newTestHandler()

	req := httptest.NewRequest("POST", "/api/filings/compare", strings.NewReader(`{"ticker":"AAPL","year_a":2024}`))
	rec := httptest.NewRecorder()
	h.HandleCompare(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleCompare_HardFailureIsBadGateway(t *testing.T) {
	h := newTestHandler()

	// Years outside EDGAR coverage are hard input errors, not missing
	// filings; they must not surface as 404.
	req := httptest.NewRequest("POST", "/api/filings/compare", strings.NewReader(`{"ticker":"AAPL","year_a":1800,"year_b":1801}`))
	rec := httptest.NewRecorder()
	h.HandleCompare(rec, req)

	require.Equal(t, http.StatusBadGateway, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Error, "year 1800")
}

func TestRoutes_Registered(t *testing.T) {
	h := newTestHandler()
	srv := httptest.NewServer(h.Routes())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/sections")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestHandleSectionStream_RequiresParams(t *testing.T) {
	h := newTestHandler()

	req := httptest.NewRequest("GET", "/api/filings/section-stream", nil)
	rec := httptest.NewRecorder()
	h.HandleSectionStream(rec, req)

	assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "required")

	var ev ProgressEvent
	payload := strings.TrimPrefix(strings.TrimSpace(rec.Body.String()), "data: ")
	require.NoError(t, json.Unmarshal([]byte(payload), &ev))
	assert.Equal(t, "error", ev.Step)
	assert.NotEmpty(t, ev.RequestID)
}
