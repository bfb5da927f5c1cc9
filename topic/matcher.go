package topic

import "sync"

// Matcher indexes subscription patterns in a trie so that, given a concrete
// event name, every matching pattern can be found without scanning the full
// pattern set. It is safe for concurrent use.
type Matcher struct {
	mu       sync.RWMutex
	root     *trieNode
	matchAll bool // bare "*" pattern registered
}

// trieNode is one segment level of the pattern trie.
type trieNode struct {
	children map[string]*trieNode
	patterns []Topic // patterns terminating at this node
}

func newTrieNode() *trieNode {
	return &trieNode{children: make(map[string]*trieNode)}
}

// NewMatcher creates an empty matcher.
func NewMatcher() *Matcher {
	return &Matcher{root: newTrieNode()}
}

// Add adds a pattern to the matcher. Adding the same pattern twice is a no-op.
func (m *Matcher) Add(pattern Topic) {
	if pattern == "" {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	// The bare "*" matches every event regardless of depth, so it cannot
	// live in the trie, where "*" consumes exactly one segment.
	if pattern == WildcardOne {
		m.matchAll = true
		return
	}

	node := m.root
	for _, seg := range pattern.Segments() {
		if node.children[seg] == nil {
			node.children[seg] = newTrieNode()
		}
		node = node.children[seg]
	}

	for _, p := range node.patterns {
		if p == pattern {
			return
		}
	}
	node.patterns = append(node.patterns, pattern)
}

// Remove removes a pattern from the matcher. Unknown patterns are ignored.
func (m *Matcher) Remove(pattern Topic) {
	if pattern == "" {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if pattern == WildcardOne {
		m.matchAll = false
		return
	}

	node := m.root
	for _, seg := range pattern.Segments() {
		if node.children[seg] == nil {
			return
		}
		node = node.children[seg]
	}

	for i, p := range node.patterns {
		if p == pattern {
			node.patterns = append(node.patterns[:i], node.patterns[i+1:]...)
			return
		}
	}
}

// Has returns true if the pattern exists in the matcher.
func (m *Matcher) Has(pattern Topic) bool {
	if pattern == "" {
		return false
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	if pattern == WildcardOne {
		return m.matchAll
	}

	node := m.root
	for _, seg := range pattern.Segments() {
		if node.children[seg] == nil {
			return false
		}
		node = node.children[seg]
	}

	for _, p := range node.patterns {
		if p == pattern {
			return true
		}
	}
	return false
}

// Match returns every registered pattern that accepts the given event name.
// The event must be a concrete name without wildcard segments; the result
// order is not specified.
func (m *Matcher) Match(event Topic) []Topic {
	if event == "" {
		return nil
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	var matches []Topic
	if m.matchAll {
		matches = append(matches, WildcardOne)
	}
	m.matchWalk(m.root, event.Segments(), 0, &matches)
	return matches
}

// matchWalk descends the trie alongside the event segments.
func (m *Matcher) matchWalk(node *trieNode, segments []string, depth int, matches *[]Topic) {
	// A "**" edge accepts the rest of the event no matter what follows it
	// in the pattern, so every pattern below that edge matches.
	if child := node.children[WildcardRest]; child != nil {
		m.collect(child, matches)
	}

	if depth == len(segments) {
		*matches = append(*matches, node.patterns...)
		return
	}

	if child := node.children[segments[depth]]; child != nil {
		m.matchWalk(child, segments, depth+1, matches)
	}
	if child := node.children[WildcardOne]; child != nil {
		m.matchWalk(child, segments, depth+1, matches)
	}
}

// collect gathers every pattern in the subtree rooted at node.
func (m *Matcher) collect(node *trieNode, matches *[]Topic) {
	*matches = append(*matches, node.patterns...)
	for _, child := range node.children {
		m.collect(child, matches)
	}
}

// Patterns returns all patterns held by the matcher.
func (m *Matcher) Patterns() []Topic {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var patterns []Topic
	if m.matchAll {
		patterns = append(patterns, WildcardOne)
	}
	m.collect(m.root, &patterns)
	return patterns
}

// Count returns the number of patterns held by the matcher.
func (m *Matcher) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	count := 0
	if m.matchAll {
		count++
	}
	m.countWalk(m.root, &count)
	return count
}

func (m *Matcher) countWalk(node *trieNode, count *int) {
	*count += len(node.patterns)
	for _, child := range node.children {
		m.countWalk(child, count)
	}
}

// Clear removes all patterns.
func (m *Matcher) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.root = newTrieNode()
	m.matchAll = false
}
