// Package remote fetches whole sequence records from the NCBI Entrez
// efetch service. It provides the lookup capability the splice engine uses
// for cross-record references.
package remote

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"spliceseq/internal/fasta"
	"spliceseq/internal/seq"
)

const defaultBaseURL = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils/efetch.fcgi"

// NotFoundError reports an accession the service does not know.
type NotFoundError struct {
	Accession string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("accession %s not found", e.Accession)
}

// TransientError reports a retryable failure (network error, throttling,
// server-side error).
type TransientError struct {
	Err error
}

func (e *TransientError) Error() string {
	return fmt.Sprintf("transient lookup failure: %v", e.Err)
}

func (e *TransientError) Unwrap() error {
	return e.Err
}

// Client fetches nucleotide records by accession.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates an efetch client with a 30 second request timeout.
func NewClient() *Client {
	return &Client{
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// SetBaseURL overrides the service endpoint; tests point it at a local server.
func (c *Client) SetBaseURL(u string) {
	c.baseURL = u
}

// SetAPIKey attaches an NCBI API key to requests, raising the rate limit.
func (c *Client) SetAPIKey(key string) {
	c.apiKey = key
}

// FetchByAccession retrieves the whole record for a nucleotide accession.
// Throttled requests are retried a few times with backoff before giving up.
func (c *Client) FetchByAccession(accession string) (*seq.Record, error) {
	if accession == "" {
		return nil, &NotFoundError{Accession: accession}
	}

	q := url.Values{}
	q.Set("db", "nuccore")
	q.Set("id", accession)
	q.Set("rettype", "fasta")
	q.Set("retmode", "text")
	if c.apiKey != "" {
		q.Set("api_key", c.apiKey)
	}
	reqURL := c.baseURL + "?" + q.Encode()

	var lastErr error
	for attempt := 1; attempt <= 3; attempt++ {
		rec, retry, err := c.fetchOnce(reqURL, accession)
		if err == nil {
			return rec, nil
		}
		if !retry {
			return nil, err
		}
		lastErr = err
		time.Sleep(time.Duration(attempt) * 500 * time.Millisecond)
	}
	return nil, lastErr
}

func (c *Client) fetchOnce(reqURL, accession string) (*seq.Record, bool, error) {
	resp, err := c.httpClient.Get(reqURL)
	if err != nil {
		return nil, true, &TransientError{Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		// Fall through to parsing.
	case resp.StatusCode == http.StatusNotFound, resp.StatusCode == http.StatusBadRequest:
		io.Copy(io.Discard, resp.Body)
		return nil, false, &NotFoundError{Accession: accession}
	case resp.StatusCode == http.StatusTooManyRequests:
		io.Copy(io.Discard, resp.Body)
		return nil, true, &TransientError{Err: fmt.Errorf("efetch returned 429")}
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, false, &TransientError{Err: fmt.Errorf("efetch returned status %d: %s", resp.StatusCode, string(body))}
	}

	records, err := fasta.Parse(resp.Body)
	if err != nil {
		return nil, false, &TransientError{Err: fmt.Errorf("decode efetch response: %w", err)}
	}
	if len(records) == 0 || records[0].Seq == "" {
		return nil, false, &NotFoundError{Accession: accession}
	}
	rec := records[0]
	// efetch reports versioned ids; callers address records by the accession
	// they asked for.
	rec.ID = accession
	return rec, false, nil
}
