package crawl

import (
	"strings"
	"sync"
)

// visitedSet tracks the normalized URLs already dequeued in one crawl run.
// It is exact (no false positives): skipping a URL that was never visited
// would break the visit-exactly-once guarantee on cyclic graphs. Add is an
// atomic check-and-set so a parallelized traversal cannot fetch the same
// URL twice.
type visitedSet struct {
	mu   sync.Mutex
	seen map[string]struct{}
}

func newVisitedSet() *visitedSet {
	return &visitedSet{seen: make(map[string]struct{})}
}

// normalize strips the fragment: URLs differing only by fragment are the
// same resource.
func normalize(url string) string {
	if i := strings.Index(url, "#"); i != -1 {
		return url[:i]
	}
	return url
}

// Add marks the URL as visited. Returns false if it was already present.
func (v *visitedSet) Add(url string) bool {
	key := normalize(url)
	v.mu.Lock()
	defer v.mu.Unlock()
	if _, ok := v.seen[key]; ok {
		return false
	}
	v.seen[key] = struct{}{}
	return true
}

// Seen reports whether the URL has been visited.
func (v *visitedSet) Seen(url string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	_, ok := v.seen[normalize(url)]
	return ok
}

// Len returns the number of visited URLs.
func (v *visitedSet) Len() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.seen)
}
