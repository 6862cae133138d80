// Package render turns ordered display records into visible output.
// The pipeline only sees the Sink interface; adapters decide how cards
// actually look.
package render

import "github.com/runger/folio/internal/resolve"

// Sink is the rendering boundary the discovery pipeline writes to.
type Sink interface {
	// Render receives the final, sorted records of one discovery run.
	// An empty list means "nothing found" and should still produce
	// visible output.
	Render(records []resolve.Record)

	// Status reflects the pipeline's current phase or a non-fatal
	// degradation message.
	Status(phase, message string)
}

// Discard is a Sink that drops everything. Useful for tests and for
// callers that only want the returned records.
type Discard struct{}

func (Discard) Render([]resolve.Record) {}
func (Discard) Status(string, string)   {}
