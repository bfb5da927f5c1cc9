// Package topic provides hierarchical topic names and pattern matching for
// the emitter.
//
// # Topic Format
//
// Topics use dot-notation to create hierarchical namespaces:
//
//	user.created
//	fs.write.go
//	order.payment.failed
//
// # Wildcards
//
// Subscription patterns may contain two wildcards:
//
//   - "*" matches exactly one segment
//   - "**" matches the rest of the event name, however many segments remain
//
// Examples:
//
//	user.*        matches user.created, user.deleted (not user.created.extra, not user)
//	user.**       matches user, user.created, user.a.b.c
//	*.failed      matches order.failed, job.failed
//	*             matches every event, at any depth
//
// A "**" segment short-circuits: pattern segments after it are never
// examined, so "a.**.b" matches "a.x" just as "a.**" does.
//
// # Pattern Matching
//
// Matches is the pure matching function. The Matcher type indexes a pattern
// set in a trie so an event can be checked against many patterns at once:
//
//	m := topic.NewMatcher()
//	m.Add(topic.Topic("user.*"))
//	m.Add(topic.Topic("user.created"))
//
//	matches := m.Match(topic.Topic("user.created"))
//	// matches contains both patterns
package topic
