package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/unicode/norm"
)

const (
	DefaultEndpoint  = "https://suggestqueries.google.com/complete/search"
	DefaultClient    = "firefox"
	DefaultLanguage  = "en"
	DefaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	DefaultTimeout   = 10 * time.Second

	// suggest payloads are tiny; anything bigger is not a suggest response
	maxBodyBytes = 256 * 1024
)

// GoogleOptions configures the Google suggest client.
// Zero values fall back to the Default* constants.
type GoogleOptions struct {
	Endpoint  string
	Client    string
	Language  string
	UserAgent string
	Timeout   time.Duration
}

// Google fetches suggestions from Google's suggest endpoint.
// The response is the OpenSearch suggestion array:
//
//	["phrase", ["suggestion 1", "suggestion 2"], ...]
type Google struct {
	opts       GoogleOptions
	httpClient *http.Client
}

// NewGoogle creates a Google fetcher with its own http.Client.
func NewGoogle(opts GoogleOptions) *Google {
	if opts.Endpoint == "" {
		opts.Endpoint = DefaultEndpoint
	}
	if opts.Client == "" {
		opts.Client = DefaultClient
	}
	if opts.Language == "" {
		opts.Language = DefaultLanguage
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	return &Google{
		opts:       opts,
		httpClient: &http.Client{Timeout: opts.Timeout},
	}
}

// Fetch requests suggestions for phrase.
// Non-200 statuses, unreadable bodies and malformed payloads are errors.
func (g *Google) Fetch(ctx context.Context, phrase string) ([]string, error) {
	reqURL, err := g.requestURL(phrase)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", g.opts.UserAgent)
	req.Header.Set("Accept", "application/json, text/javascript, */*;q=0.1")

	start := time.Now()
	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request %q: %w", phrase, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("suggest endpoint returned %d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	body, err := decodeBody(resp.Header.Get("Content-Type"), io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, err
	}

	suggestions, err := parseSuggestions(body)
	if err != nil {
		return nil, fmt.Errorf("parse response for %q: %w", phrase, err)
	}
	log.Debugf("Fetched %d suggestions for %q in [ %v ]", len(suggestions), phrase, time.Since(start))
	return suggestions, nil
}

func (g *Google) requestURL(phrase string) (string, error) {
	u, err := url.Parse(g.opts.Endpoint)
	if err != nil {
		return "", fmt.Errorf("invalid endpoint %q: %w", g.opts.Endpoint, err)
	}
	q := u.Query()
	q.Set("client", g.opts.Client)
	q.Set("hl", g.opts.Language)
	q.Set("q", phrase)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// decodeBody reads r as UTF-8, transcoding from the charset named in contentType.
// Google answers in ISO-8859-1 for several locales.
func decodeBody(contentType string, r io.Reader) ([]byte, error) {
	charset := ""
	if contentType != "" {
		if _, params, err := mime.ParseMediaType(contentType); err == nil {
			charset = strings.ToLower(strings.TrimSpace(params["charset"]))
		}
	}

	if charset != "" && charset != "utf-8" && charset != "utf8" {
		enc, err := htmlindex.Get(charset)
		if err != nil {
			log.Warnf("Unknown response charset %q, reading as UTF-8", charset)
		} else {
			r = enc.NewDecoder().Reader(r)
		}
	}

	body, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	return body, nil
}

// parseSuggestions extracts the second element of the suggest array.
// Suggestions are NFC-normalized so composed and decomposed forms compare equal downstream.
func parseSuggestions(body []byte) ([]string, error) {
	var payload []json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, err
	}
	if len(payload) < 2 {
		return nil, fmt.Errorf("expected at least 2 elements, got %d", len(payload))
	}

	var raw []string
	if err := json.Unmarshal(payload[1], &raw); err != nil {
		return nil, fmt.Errorf("suggestion list: %w", err)
	}

	out := make([]string, 0, len(raw))
	for _, s := range raw {
		out = append(out, norm.NFC.String(s))
	}
	return out, nil
}
