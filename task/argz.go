package task

// Accessors below panic on a missing or mistyped position: Args
// positions are a fixed contract between a task family and its
// callers, documented at the call site, so a mismatch is a
// programming error to surface immediately rather than paper over.

// Int returns the i'th argument as an int.
func (a Args) Int(i int) int { return a[i].(int) }

// Int64 returns the i'th argument as an int64.
func (a Args) Int64(i int) int64 { return a[i].(int64) }

// Bytes returns the i'th argument as a byte slice.
func (a Args) Bytes(i int) []byte { return a[i].([]byte) }

// String returns the i'th argument as a string.
func (a Args) String(i int) string { return a[i].(string) }

// Bool returns the i'th argument as a bool.
func (a Args) Bool(i int) bool { return a[i].(bool) }

// Err returns the i'th argument as an *Exception, or nil if it isn't
// one. A CATCH label's incoming Args always holds exactly one
// Exception at position 0.
func (a Args) Err(i int) *Exception {
	if exc, ok := a[i].(*Exception); ok {
		return exc
	}
	return nil
}

// Len reports the number of positions.
func (a Args) Len() int { return len(a) }
