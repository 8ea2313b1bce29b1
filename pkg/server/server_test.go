package server

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/bastiangx/suggestscope/pkg/export"
	"github.com/bastiangx/suggestscope/pkg/fetch"
	"github.com/bastiangx/suggestscope/pkg/pipeline"
	"github.com/bastiangx/suggestscope/pkg/taxonomy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
)

func encodeRequests(t *testing.T, reqs ...RunRequest) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	for _, r := range reqs {
		require.NoError(t, enc.Encode(r))
	}
	return &buf
}

func TestServerRun(t *testing.T) {
	f := fetch.NewStatic(map[string][]string{
		"Not working shoes": {"light up shoes not working"},
		"Why shoes":         {"why shoes hurt"},
	})
	dir := t.TempDir()
	p := pipeline.New(f, taxonomy.Default(), export.New(dir, "", false))

	in := encodeRequests(t, RunRequest{ID: "req_001", Query: "shoes"})
	var out bytes.Buffer
	require.NoError(t, NewServer(p, in, &out).Start(context.Background()))

	dec := msgpack.NewDecoder(&out)
	var ready StatusResponse
	require.NoError(t, dec.Decode(&ready))
	assert.Equal(t, "ready", ready.Status)

	var resp RunResponse
	require.NoError(t, dec.Decode(&resp))
	assert.Equal(t, "req_001", resp.ID)
	assert.NotEmpty(t, resp.Location)

	names := make([]string, len(resp.Categories))
	for i, c := range resp.Categories {
		names[i] = c.Name
	}
	assert.Equal(t, taxonomy.Default().Names(), names)
	for _, c := range resp.Categories {
		if c.Name == "Complaints" {
			assert.Equal(t, []string{"light up shoes not working"}, c.Suggestions)
		} else {
			assert.Empty(t, c.Suggestions, c.Name)
		}
	}
}

func TestServerFetchError(t *testing.T) {
	f := fetch.NewStatic(nil)
	f.Errors = map[string]error{"Why shoes": errors.New("timeout")}
	p := pipeline.New(f, taxonomy.Default(), export.New(t.TempDir(), "", false))

	in := encodeRequests(t, RunRequest{ID: "x", Query: "shoes"})
	var out bytes.Buffer
	require.NoError(t, NewServer(p, in, &out).Start(context.Background()))

	dec := msgpack.NewDecoder(&out)
	var ready StatusResponse
	require.NoError(t, dec.Decode(&ready))

	var resp RunError
	require.NoError(t, dec.Decode(&resp))
	assert.Equal(t, "x", resp.ID)
	assert.Equal(t, CodeFetchError, resp.Code)
	assert.Contains(t, resp.Error, "timeout")
}

func TestServerExportError(t *testing.T) {
	f := fetch.NewStatic(nil)
	p := pipeline.New(f, taxonomy.Default(), export.New(t.TempDir()+"/missing/dir", "", false))

	in := encodeRequests(t, RunRequest{ID: "x", Query: "shoes"})
	var out bytes.Buffer
	require.NoError(t, NewServer(p, in, &out).Start(context.Background()))

	dec := msgpack.NewDecoder(&out)
	var ready StatusResponse
	require.NoError(t, dec.Decode(&ready))

	var resp RunError
	require.NoError(t, dec.Decode(&resp))
	assert.Equal(t, CodeExportError, resp.Code)
}

func TestServerHealthAndMissingID(t *testing.T) {
	p := pipeline.New(fetch.NewStatic(nil), taxonomy.Default(), export.New(t.TempDir(), "", false))

	in := encodeRequests(t,
		RunRequest{ID: "ping", Action: "health"},
		RunRequest{Action: "bogus"},
	)
	var out bytes.Buffer
	require.NoError(t, NewServer(p, in, &out).Start(context.Background()))

	dec := msgpack.NewDecoder(&out)
	var ready, health StatusResponse
	require.NoError(t, dec.Decode(&ready))
	require.NoError(t, dec.Decode(&health))
	assert.Equal(t, "ping", health.ID)
	assert.Equal(t, "ok", health.Status)

	var bad RunError
	require.NoError(t, dec.Decode(&bad))
	assert.NotEmpty(t, bad.ID)
	assert.Equal(t, CodeBadRequest, bad.Code)
}
