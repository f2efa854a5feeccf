package stats

import "sort"

// Entry is one label and its count.
type Entry struct {
	Label string
	Count int
}

// Breakdown counts occurrences per label and remembers the order in which
// labels were first seen. The zero value is not usable; call NewBreakdown.
type Breakdown struct {
	index   map[string]int
	entries []Entry
}

// NewBreakdown returns an empty Breakdown.
func NewBreakdown() *Breakdown {
	return &Breakdown{index: make(map[string]int)}
}

// Inc adds one to label, creating it at zero first if unseen.
func (b *Breakdown) Inc(label string) {
	i, ok := b.index[label]
	if !ok {
		i = len(b.entries)
		b.index[label] = i
		b.entries = append(b.entries, Entry{Label: label})
	}
	b.entries[i].Count++
}

// Count returns the count for label, zero if unseen.
func (b *Breakdown) Count(label string) int {
	i, ok := b.index[label]
	if !ok {
		return 0
	}
	return b.entries[i].Count
}

// Len is the number of distinct labels.
func (b *Breakdown) Len() int { return len(b.entries) }

// Total sums every count.
func (b *Breakdown) Total() int {
	n := 0
	for _, e := range b.entries {
		n += e.Count
	}
	return n
}

// Entries returns a copy of all entries in first-seen order.
func (b *Breakdown) Entries() []Entry {
	out := make([]Entry, len(b.entries))
	copy(out, b.entries)
	return out
}

// Map returns the counts keyed by label.
func (b *Breakdown) Map() map[string]int {
	m := make(map[string]int, len(b.entries))
	for _, e := range b.entries {
		m[e.Label] = e.Count
	}
	return m
}

// Top returns at most n entries ordered by count descending. Equal counts
// keep first-seen order; there is no secondary sort on label.
func (b *Breakdown) Top(n int) []Entry {
	out := b.Entries()
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	if n >= 0 && len(out) > n {
		out = out[:n]
	}
	return out
}
