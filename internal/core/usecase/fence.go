package usecase

// fence orders concurrent fetches for one view by issuance: results
// arriving out of order are admitted only if no later-issued fetch has
// already been applied ("last-issued-wins", not "last-arrived-wins").
type fence struct {
	issued  uint64
	applied uint64
}

// issue tags the next fetch with a monotonically increasing sequence.
func (f *fence) issue() uint64 {
	f.issued++
	return f.issued
}

// admit reports whether a result with the given sequence may still be
// applied, and records it as applied when so.
func (f *fence) admit(seq uint64) bool {
	if seq <= f.applied {
		return false
	}
	f.applied = seq
	return true
}

// invalidate discards every fetch issued so far; only fetches issued
// after this call can be applied. Used when filter or page state
// changes underneath in-flight requests.
func (f *fence) invalidate() {
	f.applied = f.issued
}
