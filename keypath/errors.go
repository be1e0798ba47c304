package keypath

import "fmt"

// SegmentError reports a key segment that does not match the segment
// grammar.
type SegmentError struct {
	Segment string
	Reason  string
}

func (e *SegmentError) Error() string {
	return fmt.Sprintf("keypath: malformed segment %q: %s", e.Segment, e.Reason)
}
