package remote

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchByAccession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "nuccore", r.URL.Query().Get("db"))
		assert.Equal(t, "fasta", r.URL.Query().Get("rettype"))
		assert.Equal(t, "X77802", r.URL.Query().Get("id"))
		fmt.Fprint(w, ">X77802.1 some organism\nACGTACGTAG\nCTAGCTAGGA\n")
	}))
	defer srv.Close()

	c := NewClient()
	c.SetBaseURL(srv.URL)

	rec, err := c.FetchByAccession("X77802")
	require.NoError(t, err)
	// The record is addressed by the accession asked for, not the
	// versioned id the service reports.
	assert.Equal(t, "X77802", rec.ID)
	assert.Equal(t, "ACGTACGTAGCTAGCTAGGA", rec.Seq)
}

func TestFetchByAccessionSendsAPIKey(t *testing.T) {
	var gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.URL.Query().Get("api_key")
		fmt.Fprint(w, ">X77802.1\nACGT\n")
	}))
	defer srv.Close()

	c := NewClient()
	c.SetBaseURL(srv.URL)
	c.SetAPIKey("secret")

	_, err := c.FetchByAccession("X77802")
	require.NoError(t, err)
	assert.Equal(t, "secret", gotKey)
}

func TestFetchByAccessionNotFound(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		http.Error(w, "no such record", http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClient()
	c.SetBaseURL(srv.URL)

	_, err := c.FetchByAccession("NOPE1")
	var nf *NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "NOPE1", nf.Accession)
	assert.Equal(t, 1, calls, "missing records are not retried")
}

func TestFetchByAccessionEmptyBodyIsNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// efetch answers 200 with an empty body for some unknown ids.
	}))
	defer srv.Close()

	c := NewClient()
	c.SetBaseURL(srv.URL)

	_, err := c.FetchByAccession("NOPE2")
	var nf *NotFoundError
	require.True(t, errors.As(err, &nf))
}

func TestFetchByAccessionRetriesThrottling(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			http.Error(w, "slow down", http.StatusTooManyRequests)
			return
		}
		fmt.Fprint(w, ">X77802.1\nACGTACGT\n")
	}))
	defer srv.Close()

	c := NewClient()
	c.SetBaseURL(srv.URL)

	rec, err := c.FetchByAccession("X77802")
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	assert.Equal(t, "ACGTACGT", rec.Seq)
}

func TestFetchByAccessionServerError(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient()
	c.SetBaseURL(srv.URL)

	_, err := c.FetchByAccession("X77802")
	var te *TransientError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, 1, calls)
}

func TestFetchByAccessionEmptyAccession(t *testing.T) {
	_, err := NewClient().FetchByAccession("")
	var nf *NotFoundError
	require.True(t, errors.As(err, &nf))
}
