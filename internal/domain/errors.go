package domain

import "fmt"

// DecodePhase identifies where a load failed.
type DecodePhase string

const (
	PhaseOpen  DecodePhase = "open"  // opening or reading the header of the stream
	PhaseRow   DecodePhase = "row"   // decoding a data row
	PhaseClose DecodePhase = "close" // finalizing the stream after the last row
)

// DecodeError reports a failure reading the crash file. Any DecodeError
// aborts the run; no partial records are returned alongside it.
type DecodeError struct {
	Phase DecodePhase
	Path  string
	Line  int // 1-based source line, 0 when not applicable
	Err   error
}

func (e *DecodeError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("decode %s: %s line %d: %v", e.Path, e.Phase, e.Line, e.Err)
	}
	return fmt.Sprintf("decode %s: %s: %v", e.Path, e.Phase, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// ValidationError reports a record whose ordinal or date lies outside the
// domain aggregation understands.
type ValidationError struct {
	Index int // 0-based record index in load order
	Field string
	Value string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("record %d: invalid %s %q: %v", e.Index, e.Field, e.Value, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }
