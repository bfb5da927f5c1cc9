package topic

import (
	"sort"
	"testing"
)

func matchSorted(m *Matcher, event Topic) []Topic {
	got := m.Match(event)
	sort.Slice(got, func(i, j int) bool { return got[i] < got[j] })
	return got
}

func assertTopics(t *testing.T, got, want []Topic) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("matches = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("matches[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestMatcher_Match(t *testing.T) {
	m := NewMatcher()
	for _, p := range []Topic{
		"user.created",
		"user.*",
		"user.**",
		"*.created",
		"order.created",
	} {
		m.Add(p)
	}

	tests := []struct {
		event Topic
		want  []Topic
	}{
		{"user.created", []Topic{"*.created", "user.*", "user.**", "user.created"}},
		{"user.deleted", []Topic{"user.*", "user.**"}},
		{"user.created.extra", []Topic{"user.**"}},
		{"user", []Topic{"user.**"}},
		{"order.created", []Topic{"*.created", "order.created"}},
		{"payment.failed", nil},
	}

	for _, tt := range tests {
		t.Run(tt.event.String(), func(t *testing.T) {
			assertTopics(t, matchSorted(m, tt.event), tt.want)
		})
	}
}

func TestMatcher_MatchAll(t *testing.T) {
	m := NewMatcher()
	m.Add("*")

	for _, event := range []Topic{"ping", "a.b", "a.b.c.d"} {
		assertTopics(t, matchSorted(m, event), []Topic{"*"})
	}

	m.Remove("*")
	if got := m.Match("ping"); got != nil {
		t.Errorf("after Remove, Match = %v, want nil", got)
	}
}

func TestMatcher_RestShortCircuits(t *testing.T) {
	m := NewMatcher()
	m.Add("a.**.b")
	m.Add("a.**")

	// A ** edge matches the rest regardless of what follows in the pattern.
	assertTopics(t, matchSorted(m, "a.x"), []Topic{"a.**", "a.**.b"})
	assertTopics(t, matchSorted(m, "a"), []Topic{"a.**", "a.**.b"})

	if got := m.Match("c.x"); got != nil {
		t.Errorf("Match(c.x) = %v, want nil", got)
	}
}

func TestMatcher_AddRemoveHas(t *testing.T) {
	m := NewMatcher()

	m.Add("user.*")
	m.Add("user.*") // duplicate is a no-op
	if !m.Has("user.*") {
		t.Error("expected Has(user.*) after Add")
	}
	if m.Count() != 1 {
		t.Errorf("Count() = %d, want 1", m.Count())
	}

	m.Remove("user.*")
	if m.Has("user.*") {
		t.Error("expected !Has(user.*) after Remove")
	}
	if m.Count() != 0 {
		t.Errorf("Count() = %d, want 0", m.Count())
	}

	// Removing something unknown is a no-op.
	m.Remove("never.added")
}

func TestMatcher_Patterns(t *testing.T) {
	m := NewMatcher()
	m.Add("*")
	m.Add("user.created")
	m.Add("user.**")

	got := m.Patterns()
	sort.Slice(got, func(i, j int) bool { return got[i] < got[j] })
	assertTopics(t, got, []Topic{"*", "user.**", "user.created"})

	m.Clear()
	if m.Count() != 0 {
		t.Errorf("Count() after Clear = %d, want 0", m.Count())
	}
	if m.Has("*") {
		t.Error("expected !Has(*) after Clear")
	}
}
