package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGoogleFetch(t *testing.T) {
	var gotQuery, gotClient, gotLang, gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		gotClient = r.URL.Query().Get("client")
		gotLang = r.URL.Query().Get("hl")
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "text/javascript; charset=UTF-8")
		_, _ = w.Write([]byte(`["why shoes",["why shoes hurt","why shoes smell"],[],{"google:suggesttype":["QUERY","QUERY"]}]`))
	}))
	defer srv.Close()

	g := NewGoogle(GoogleOptions{Endpoint: srv.URL, Language: "de", UserAgent: "test-agent"})
	got, err := g.Fetch(context.Background(), "why shoes")
	require.NoError(t, err)

	assert.Equal(t, []string{"why shoes hurt", "why shoes smell"}, got)
	assert.Equal(t, "why shoes", gotQuery)
	assert.Equal(t, DefaultClient, gotClient)
	assert.Equal(t, "de", gotLang)
	assert.Equal(t, "test-agent", gotUA)
}

// latin1 bodies must come out as UTF-8
func TestGoogleFetchLatin1(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/javascript; charset=ISO-8859-1")
		_, _ = w.Write([]byte("[\"caf\",[\"caf\xe9 paris\",\"caf\xe9 au lait\"]]"))
	}))
	defer srv.Close()

	got, err := NewGoogle(GoogleOptions{Endpoint: srv.URL}).Fetch(context.Background(), "caf")
	require.NoError(t, err)
	assert.Equal(t, []string{"café paris", "café au lait"}, got)
}

func TestGoogleFetchNormalizesNFC(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("[\"caf\",[\"cafe\u0301\"]]"))
	}))
	defer srv.Close()

	got, err := NewGoogle(GoogleOptions{Endpoint: srv.URL}).Fetch(context.Background(), "caf")
	require.NoError(t, err)
	assert.Equal(t, []string{"caf\u00e9"}, got)
}

func TestGoogleFetchErrors(t *testing.T) {
	testCases := []struct {
		name   string
		status int
		body   string
	}{
		{"server error", http.StatusInternalServerError, `oops`},
		{"rate limited", http.StatusTooManyRequests, ``},
		{"not json", http.StatusOK, `<html></html>`},
		{"short array", http.StatusOK, `["only phrase"]`},
		{"list is not strings", http.StatusOK, `["q", [1, 2]]`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			_, err := NewGoogle(GoogleOptions{Endpoint: srv.URL}).Fetch(context.Background(), "q")
			assert.Error(t, err)
		})
	}
}

func TestGoogleFetchEmptyList(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`["zzzz",[]]`))
	}))
	defer srv.Close()

	got, err := NewGoogle(GoogleOptions{Endpoint: srv.URL}).Fetch(context.Background(), "zzzz")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestGoogleFetchCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`["q",[]]`))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewGoogle(GoogleOptions{Endpoint: srv.URL}).Fetch(ctx, "q")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestStatic(t *testing.T) {
	boom := errors.New("boom")
	s := NewStatic(map[string][]string{"Why shoes": {"why shoes hurt"}})
	s.Errors["Vs shoes"] = boom

	got, err := s.Fetch(context.Background(), "Why shoes")
	require.NoError(t, err)
	assert.Equal(t, []string{"why shoes hurt"}, got)

	got, err = s.Fetch(context.Background(), "unknown")
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = s.Fetch(context.Background(), "Vs shoes")
	assert.ErrorIs(t, err, boom)

	assert.Equal(t, []string{"Why shoes", "unknown", "Vs shoes"}, s.Calls())
}

func TestLoadStatic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fixture.toml")
	content := "[responses]\n\"Why shoes\" = [\"why shoes hurt\", \"socks\"]\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	s, err := LoadStatic(path)
	require.NoError(t, err)
	got, err := s.Fetch(context.Background(), "Why shoes")
	require.NoError(t, err)
	assert.Equal(t, []string{"why shoes hurt", "socks"}, got)

	_, err = LoadStatic(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestFetcherFunc(t *testing.T) {
	var f Fetcher = FetcherFunc(func(ctx context.Context, phrase string) ([]string, error) {
		return []string{phrase + "!"}, nil
	})
	got, err := f.Fetch(context.Background(), "hi")
	require.NoError(t, err)
	assert.Equal(t, []string{"hi!"}, got)
}
