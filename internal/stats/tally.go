package stats

import "sync"

// Tally keeps running per-key message counts, the same bookkeeping the
// pipeline's companion JSON consumer did per author. Keys here are the
// historical facts riding along on each message.
type Tally struct {
	mu     sync.Mutex
	counts map[string]int64
}

func NewTally() *Tally {
	return &Tally{counts: make(map[string]int64)}
}

// Add increments key and returns its updated count.
func (t *Tally) Add(key string) int64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.counts[key]++
	return t.counts[key]
}

// Counts returns a copy of the current per-key counts.
func (t *Tally) Counts() map[string]int64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make(map[string]int64, len(t.counts))
	for k, v := range t.counts {
		out[k] = v
	}
	return out
}
