package model

import "sort"

// Entry is one labeled value inside an aggregate view or ranked list.
type Entry struct {
	Label string
	Value float64
	Count int
}

// AggregateView is a named mapping from group label to an accumulated revenue
// metric. Labels keep their first-seen order so tables and chart colors stay
// identical across runs over the same data.
type AggregateView struct {
	name    string
	entries []Entry
	index   map[string]int
}

// NewAggregateView creates an empty view with the given display name.
func NewAggregateView(name string) *AggregateView {
	return &AggregateView{
		name:  name,
		index: make(map[string]int),
	}
}

// NewAggregateViewFromEntries creates a view whose label order follows the
// given entries. Duplicate labels are merged into the first occurrence.
func NewAggregateViewFromEntries(name string, entries []Entry) *AggregateView {
	v := NewAggregateView(name)
	for _, e := range entries {
		if i, ok := v.index[e.Label]; ok {
			v.entries[i].Value += e.Value
			v.entries[i].Count += e.Count
			continue
		}
		v.index[e.Label] = len(v.entries)
		v.entries = append(v.entries, e)
	}
	return v
}

// Name returns the view's display name, e.g. "Sales by Category".
func (v *AggregateView) Name() string {
	return v.name
}

// Add accumulates value under label, creating the label on first sight.
func (v *AggregateView) Add(label string, value float64) {
	if i, ok := v.index[label]; ok {
		v.entries[i].Value += value
		v.entries[i].Count++
		return
	}
	v.index[label] = len(v.entries)
	v.entries = append(v.entries, Entry{Label: label, Value: value, Count: 1})
}

// Len returns the number of distinct labels in the view.
func (v *AggregateView) Len() int {
	return len(v.entries)
}

// Value returns the accumulated value for label, or zero when the label has
// never been seen.
func (v *AggregateView) Value(label string) float64 {
	if i, ok := v.index[label]; ok {
		return v.entries[i].Value
	}
	return 0
}

// Sum returns the total of all entry values.
func (v *AggregateView) Sum() float64 {
	var sum float64
	for _, e := range v.entries {
		sum += e.Value
	}
	return sum
}

// Entries returns a copy of the entries in first-seen order.
func (v *AggregateView) Entries() []Entry {
	out := make([]Entry, len(v.entries))
	copy(out, v.entries)
	return out
}

// Labels returns the labels in first-seen order.
func (v *AggregateView) Labels() []string {
	labels := make([]string, len(v.entries))
	for i, e := range v.entries {
		labels[i] = e.Label
	}
	return labels
}

// SortedDesc returns the entries sorted by descending value. Entries with
// equal values keep their first-seen order.
func (v *AggregateView) SortedDesc() []Entry {
	out := v.Entries()
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Value > out[j].Value
	})
	return out
}

// SortedByLabel returns the entries in ascending label order, which is
// chronological for "2006-01" month labels.
func (v *AggregateView) SortedByLabel() []Entry {
	out := v.Entries()
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Label < out[j].Label
	})
	return out
}

// RankedList is a descending slice of the top entries cut from a view.
type RankedList []Entry

// Rank builds the top-n ranked list for a view. Ties keep their first-seen
// order. A nil view or non-positive n yields an empty list; n larger than the
// view is capped at the view's size.
func Rank(v *AggregateView, n int) RankedList {
	if v == nil || n <= 0 {
		return RankedList{}
	}
	sorted := v.SortedDesc()
	if n > len(sorted) {
		n = len(sorted)
	}
	return RankedList(sorted[:n])
}

// Top returns the highest-ranked entry, or nil for an empty list.
func (r RankedList) Top() *Entry {
	if len(r) == 0 {
		return nil
	}
	return &r[0]
}

// Labels returns the labels in rank order.
func (r RankedList) Labels() []string {
	labels := make([]string, len(r))
	for i, e := range r {
		labels[i] = e.Label
	}
	return labels
}
