package edgar

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"
)

const (
	// DefaultUserAgent identifies this client to SEC servers. EDGAR rejects
	// requests without a contact-style User-Agent, so every request carries one.
	DefaultUserAgent = "EdgarSections/1.0 (contact@example.com)"

	companyTickersURL = "https://www.sec.gov/files/company_tickers.json"
	browseEdgarURL    = "https://www.sec.gov/cgi-bin/browse-edgar?action=getcompany&CIK=%s&type=%s&dateb=&owner=include&count=100"
	secBaseURL        = "https://www.sec.gov"
)

// Client talks to SEC EDGAR. It is safe for concurrent use; the only shared
// state is the lazily loaded ticker -> CIK lookup table.
type Client struct {
	httpClient *http.Client
	userAgent  string

	// Endpoint templates; defaults point at sec.gov, tests override them.
	tickersURL string
	listingURL string

	tickerMu    sync.RWMutex
	tickerTable map[string]tickerEntry
}

type tickerEntry struct {
	CIK   string
	Title string
}

// NewClient creates an EDGAR client with the default timeout and User-Agent.
func NewClient() *Client {
	return NewClientWith(60*time.Second, DefaultUserAgent)
}

// NewClientWith creates an EDGAR client with explicit timeout and User-Agent.
func NewClientWith(timeout time.Duration, userAgent string) *Client {
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		userAgent:  userAgent,
		tickersURL: companyTickersURL,
		listingURL: browseEdgarURL,
	}
}

// LookupCIK resolves a ticker symbol to a zero-padded 10-digit CIK and the
// registrant name, using SEC's company_tickers.json. The full mapping is
// loaded once and kept in memory for subsequent lookups.
func (c *Client) LookupCIK(ticker string) (cik string, companyName string, err error) {
	normalized := strings.ToUpper(strings.TrimSpace(ticker))
	if normalized == "" {
		return "", "", fmt.Errorf("ticker must not be empty")
	}

	c.tickerMu.RLock()
	entry, ok := c.tickerTable[normalized]
	c.tickerMu.RUnlock()
	if ok {
		return entry.CIK, entry.Title, nil
	}

	c.tickerMu.Lock()
	defer c.tickerMu.Unlock()

	if c.tickerTable == nil {
		if err := c.loadTickerTable(); err != nil {
			return "", "", err
		}
	}

	if entry, ok := c.tickerTable[normalized]; ok {
		return entry.CIK, entry.Title, nil
	}
	return "", "", fmt.Errorf("ticker %s not found in SEC company list", ticker)
}

// loadTickerTable fetches the full ticker list.
// Format: {"0": {"cik_str": 320193, "ticker": "AAPL", "title": "Apple Inc."}, ...}
func (c *Client) loadTickerTable() error {
	body, err := c.fetchURL(c.tickersURL)
	if err != nil {
		return fmt.Errorf("failed to fetch company tickers: %w", err)
	}

	var raw map[string]struct {
		CIK    int    `json:"cik_str"`
		Ticker string `json:"ticker"`
		Title  string `json:"title"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return fmt.Errorf("failed to parse company tickers JSON: %w", err)
	}

	c.tickerTable = make(map[string]tickerEntry, len(raw))
	for _, e := range raw {
		c.tickerTable[strings.ToUpper(e.Ticker)] = tickerEntry{
			CIK:   fmt.Sprintf("%010d", e.CIK),
			Title: e.Title,
		}
	}
	return nil
}

// fetchURL performs a single GET with the required SEC headers. Errors are
// propagated verbatim; there is no retry.
func (c *Client) fetchURL(url string) ([]byte, error) {
	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json, text/html")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d fetching %s", resp.StatusCode, url)
	}

	return io.ReadAll(resp.Body)
}

// padCIK zero-pads a CIK to the 10 digits EDGAR endpoints expect.
func padCIK(cik string) string {
	cik = strings.TrimLeft(cik, "0")
	return fmt.Sprintf("%010s", cik)
}
