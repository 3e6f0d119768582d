package speech

import (
	"sort"
	"sync"
)

// Transcripts fans a live transcript out to subscribers. Recognizers embed
// it to satisfy Recognizer.Subscribe. Listeners are called in subscription
// order, one update at a time.
type Transcripts struct {
	mu      sync.Mutex
	pubMu   sync.Mutex
	nextID  int
	subs    map[int]func(string)
	current string
}

// Subscribe registers fn and returns its unsubscribe func.
func (t *Transcripts) Subscribe(fn func(transcript string)) func() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.subs == nil {
		t.subs = make(map[int]func(string))
	}
	id := t.nextID
	t.nextID++
	t.subs[id] = fn
	return func() {
		t.mu.Lock()
		delete(t.subs, id)
		t.mu.Unlock()
	}
}

// Publish delivers transcript to all current subscribers.
func (t *Transcripts) Publish(transcript string) {
	t.pubMu.Lock()
	defer t.pubMu.Unlock()

	t.mu.Lock()
	t.current = transcript
	ids := make([]int, 0, len(t.subs))
	for id := range t.subs {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	fns := make([]func(string), 0, len(ids))
	for _, id := range ids {
		fns = append(fns, t.subs[id])
	}
	t.mu.Unlock()

	for _, fn := range fns {
		fn(transcript)
	}
}

// Current returns the last published transcript.
func (t *Transcripts) Current() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.current
}
