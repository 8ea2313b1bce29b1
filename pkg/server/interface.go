/*
Package server implements msgpack IPC for suggestion pipeline runs.

The server reads msgpack messages from stdin and writes one msgpack
response per request to stdout. Requests are handled synchronously, one
pipeline run at a time, with timing information included in responses.

# IPC

A run request carries an ID and the raw query:

	{"id": "req_001", "q": "shoes"}

The server answers with every taxonomy category in order, the export
location and the elapsed time in milliseconds:

	{"id": "req_001", "c": [{"n": "Questions", "s": ["why shoes hurt"]}, {"n": "Complaints", "s": []}], "f": "./google_suggestions_categorized.csv", "t": 812}

Health checks use the action field:

	{"id": "ping", "action": "health"}

Failures produce a RunError whose code tells fetch (502) and export (500)
problems apart:

	{"id": "req_001", "e": "fetch \"Why shoes\" (Questions): timeout", "c": 502}

Requests without an ID get a generated one so replies can still be matched.
*/
package server

// RunRequest asks for one pipeline run.
type RunRequest struct {
	ID     string `msgpack:"id"`
	Query  string `msgpack:"q"`
	Action string `msgpack:"action,omitempty"` // "" or "run", "health"
}

// CategoryResult is one category of a run.
type CategoryResult struct {
	Name        string   `msgpack:"n"`
	Suggestions []string `msgpack:"s"`
}

// RunResponse is a successful run.
type RunResponse struct {
	ID         string           `msgpack:"id"`
	Categories []CategoryResult `msgpack:"c"`
	Location   string           `msgpack:"f"`
	TimeTaken  int64            `msgpack:"t"`
}

// StatusResponse answers health checks and startup.
type StatusResponse struct {
	ID     string `msgpack:"id,omitempty"`
	Status string `msgpack:"status"`
}

// RunError holds basic error information for failed requests
type RunError struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}

// Error codes.
const (
	CodeBadRequest  = 400
	CodeExportError = 500
	CodeFetchError  = 502
	CodeCanceled    = 499
)
