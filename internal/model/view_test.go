package model

import (
	"math"
	"reflect"
	"testing"
)

func TestAggregateViewAdd(t *testing.T) {
	v := NewAggregateView("Sales by Category")
	v.Add("Electronics", 100.0)
	v.Add("Clothing", 40.0)
	v.Add("Electronics", 50.0)

	if got := v.Len(); got != 2 {
		t.Fatalf("Len() = %d, want 2", got)
	}
	if got := v.Value("Electronics"); math.Abs(got-150.0) > 1e-9 {
		t.Errorf("Value(Electronics) = %v, want 150.0", got)
	}
	if got := v.Value("Clothing"); math.Abs(got-40.0) > 1e-9 {
		t.Errorf("Value(Clothing) = %v, want 40.0", got)
	}
	if got := v.Value("Books"); got != 0 {
		t.Errorf("Value(Books) = %v, want 0", got)
	}

	entries := v.Entries()
	if entries[0].Count != 2 {
		t.Errorf("Electronics count = %d, want 2", entries[0].Count)
	}
	if entries[1].Count != 1 {
		t.Errorf("Clothing count = %d, want 1", entries[1].Count)
	}
}

func TestAggregateViewFirstSeenOrder(t *testing.T) {
	v := NewAggregateView("test")
	v.Add("gamma", 1.0)
	v.Add("alpha", 2.0)
	v.Add("beta", 3.0)
	v.Add("alpha", 4.0)

	want := []string{"gamma", "alpha", "beta"}
	if got := v.Labels(); !reflect.DeepEqual(got, want) {
		t.Errorf("Labels() = %v, want %v", got, want)
	}
}

func TestAggregateViewSum(t *testing.T) {
	v := NewAggregateView("test")
	v.Add("a", 10.5)
	v.Add("b", 20.25)
	v.Add("a", 5.0)

	if got := v.Sum(); math.Abs(got-35.75) > 1e-9 {
		t.Errorf("Sum() = %v, want 35.75", got)
	}
}

func TestAggregateViewSortedDesc(t *testing.T) {
	v := NewAggregateView("test")
	v.Add("small", 10.0)
	v.Add("big", 100.0)
	v.Add("medium", 50.0)

	got := v.SortedDesc()
	want := []string{"big", "medium", "small"}
	for i, e := range got {
		if e.Label != want[i] {
			t.Errorf("SortedDesc()[%d] = %q, want %q", i, e.Label, want[i])
		}
	}
}

func TestAggregateViewSortedDescStableTies(t *testing.T) {
	v := NewAggregateView("test")
	v.Add("first", 25.0)
	v.Add("second", 25.0)
	v.Add("third", 25.0)

	got := v.SortedDesc()
	want := []string{"first", "second", "third"}
	for i, e := range got {
		if e.Label != want[i] {
			t.Errorf("SortedDesc()[%d] = %q, want %q (ties keep first-seen order)", i, e.Label, want[i])
		}
	}
}

func TestAggregateViewSortedByLabel(t *testing.T) {
	v := NewAggregateView("Monthly Sales Trend")
	v.Add("2024-11", 30.0)
	v.Add("2024-02", 10.0)
	v.Add("2024-07", 20.0)

	got := v.SortedByLabel()
	want := []string{"2024-02", "2024-07", "2024-11"}
	for i, e := range got {
		if e.Label != want[i] {
			t.Errorf("SortedByLabel()[%d] = %q, want %q", i, e.Label, want[i])
		}
	}
}

func TestAggregateViewEntriesIsCopy(t *testing.T) {
	v := NewAggregateView("test")
	v.Add("a", 1.0)

	entries := v.Entries()
	entries[0].Value = 999.0

	if got := v.Value("a"); got != 1.0 {
		t.Errorf("Value(a) = %v after mutating Entries() copy, want 1.0", got)
	}
}

func TestRank(t *testing.T) {
	build := func() *AggregateView {
		v := NewAggregateView("test")
		v.Add("d", 40.0)
		v.Add("a", 100.0)
		v.Add("c", 60.0)
		v.Add("b", 80.0)
		return v
	}

	tests := []struct {
		name string
		n    int
		want []string
	}{
		{name: "top 2", n: 2, want: []string{"a", "b"}},
		{name: "exact size", n: 4, want: []string{"a", "b", "c", "d"}},
		{name: "n larger than view", n: 10, want: []string{"a", "b", "c", "d"}},
		{name: "zero n", n: 0, want: []string{}},
		{name: "negative n", n: -1, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Rank(build(), tt.n)
			if len(got) != len(tt.want) {
				t.Fatalf("Rank() returned %d entries, want %d", len(got), len(tt.want))
			}
			for i, e := range got {
				if e.Label != tt.want[i] {
					t.Errorf("Rank()[%d] = %q, want %q", i, e.Label, tt.want[i])
				}
			}
		})
	}
}

func TestRankDescendingInvariant(t *testing.T) {
	v := NewAggregateView("test")
	v.Add("w", 7.0)
	v.Add("x", 42.0)
	v.Add("y", 42.0)
	v.Add("z", 3.0)

	ranked := Rank(v, 3)
	for i := 1; i < len(ranked); i++ {
		if ranked[i].Value > ranked[i-1].Value {
			t.Errorf("Rank() not descending at %d: %v > %v", i, ranked[i].Value, ranked[i-1].Value)
		}
	}
	if ranked[0].Label != "x" || ranked[1].Label != "y" {
		t.Errorf("tied entries out of first-seen order: got %q, %q", ranked[0].Label, ranked[1].Label)
	}
}

func TestRankNilView(t *testing.T) {
	if got := Rank(nil, 5); len(got) != 0 {
		t.Errorf("Rank(nil, 5) returned %d entries, want 0", len(got))
	}
}

func TestRankedListTop(t *testing.T) {
	v := NewAggregateView("test")
	v.Add("winner", 99.0)
	v.Add("runner-up", 1.0)

	top := Rank(v, 5).Top()
	if top == nil {
		t.Fatal("Top() = nil, want entry")
	}
	if top.Label != "winner" {
		t.Errorf("Top().Label = %q, want %q", top.Label, "winner")
	}

	if got := (RankedList{}).Top(); got != nil {
		t.Errorf("Top() on empty list = %v, want nil", got)
	}
}
