// Package suggest runs the expanded phrases through a fetcher and keeps the suggestions relevant to the query.
//
// Each kept suggestion is tagged with the name of the template group that produced it,
// never with the individual template. Classification downstream only sees group names.
package suggest

// Record pairs a suggestion with the template group it came from.
type Record struct {
	Group string `msgpack:"g" json:"group"`
	Text  string `msgpack:"s" json:"text"`
}
