package topic

import "strings"

// Topic is a hierarchical event name using dot notation, such as
// "user.created" or "fs.write.go". Subscription patterns are Topics that may
// additionally contain wildcard segments.
type Topic string

const (
	// WildcardOne matches exactly one segment at its position.
	WildcardOne = "*"

	// WildcardRest matches the remainder of the event name, however many
	// segments are left, and ignores any pattern segments that follow it.
	WildcardRest = "**"

	// Separator delimits topic segments.
	Separator = "."
)

// String returns the topic as a string.
func (t Topic) String() string {
	return string(t)
}

// Segments returns the topic split on the separator.
func (t Topic) Segments() []string {
	if t == "" {
		return nil
	}
	return strings.Split(string(t), Separator)
}

// SegmentCount returns the number of segments in the topic.
func (t Topic) SegmentCount() int {
	if t == "" {
		return 0
	}
	return strings.Count(string(t), Separator) + 1
}

// IsPattern returns true if the topic contains wildcard segments.
// Concrete event names are never patterns.
func (t Topic) IsPattern() bool {
	for _, seg := range t.Segments() {
		if seg == WildcardOne || seg == WildcardRest {
			return true
		}
	}
	return false
}

// IsValid returns true if the topic is well formed.
// A valid topic is non-empty, does not begin or end with a separator, and
// contains no empty segments.
func (t Topic) IsValid() bool {
	s := string(t)
	if s == "" {
		return false
	}
	if strings.HasPrefix(s, Separator) || strings.HasSuffix(s, Separator) {
		return false
	}
	return !strings.Contains(s, Separator+Separator)
}

// Matches reports whether the pattern accepts the concrete event name.
//
// Matching rules:
//   - A pattern identical to the event always matches.
//   - The bare pattern "*" matches every event regardless of depth.
//   - A "**" segment matches the rest of the event immediately; pattern
//     segments after it are never examined.
//   - A "*" segment matches exactly one event segment at its position.
//   - Any other segment must equal the event segment at the same position.
//   - With no "**" involved, the pattern and event must have the same
//     number of segments.
func Matches(pattern, event Topic) bool {
	if pattern == event || pattern == WildcardOne {
		return true
	}

	ps := pattern.Segments()
	es := event.Segments()

	for i, seg := range ps {
		if seg == WildcardRest {
			return true
		}
		if i >= len(es) {
			return false
		}
		if seg == WildcardOne {
			continue
		}
		if seg != es[i] {
			return false
		}
	}

	return len(ps) == len(es)
}

// Join joins segments into a topic.
func Join(segments ...string) Topic {
	return Topic(strings.Join(segments, Separator))
}
