package edgar

import "fmt"

// FetchDocument retrieves the full filing document at a resolved URL and
// returns its raw markup. One attempt, no retry; redirects are whatever the
// HTTP client does by default. A non-success status is an error.
func (c *Client) FetchDocument(documentURL string) (string, error) {
	body, err := c.fetchURL(documentURL)
	if err != nil {
		return "", fmt.Errorf("failed to fetch filing document: %w", err)
	}
	return string(body), nil
}
