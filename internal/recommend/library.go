package recommend

import "github.com/answerlens/aeoscan/domain"

// Library is the first strategy consulted for every issue: a source of
// curated, hand-written recommendations keyed by subfactor. A hit skips
// all other strategies.
type Library interface {
	// Lookup returns a curated recommendation for the issue, or false
	// when the library has no entry for it.
	Lookup(issue domain.Issue, ev *domain.Evidence) (*domain.Recommendation, bool)
}

// NoopLibrary is the default: no curated entries, every lookup misses.
type NoopLibrary struct{}

func (NoopLibrary) Lookup(domain.Issue, *domain.Evidence) (*domain.Recommendation, bool) {
	return nil, false
}
