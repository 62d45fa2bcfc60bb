package history

import (
	"strings"
	"sync"
)

// Memory is an in-process Platform backed by a slice of history entries.
// It exists for tests and for embedding the router in non-browser hosts.
// Traversal (Go) fires the subscribed change callbacks; programmatic writes
// do not, matching the Platform contract.
type Memory struct {
	mu      sync.Mutex
	entries []string
	index   int

	popState  map[int]func()
	hashState map[int]func()
	nextID    int
}

// NewMemory creates a memory platform positioned at initial, which may
// carry a query string and fragment ("/a?x=1#/frag").
func NewMemory(initial string) *Memory {
	if initial == "" {
		initial = "/"
	}
	return &Memory{
		entries:   []string{initial},
		popState:  make(map[int]func()),
		hashState: make(map[int]func()),
	}
}

// Location implements Platform.
func (m *Memory) Location() Location {
	m.mu.Lock()
	defer m.mu.Unlock()
	return parseEntry(m.entries[m.index])
}

// Push implements Platform. Forward entries are discarded, as a browser
// does when navigating from the middle of the stack.
func (m *Memory) Push(path string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries[:m.index+1], path)
	m.index = len(m.entries) - 1
}

// Replace implements Platform.
func (m *Memory) Replace(path string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[m.index] = path
}

// SetFragment implements Platform.
func (m *Memory) SetFragment(fragment string, replace bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur := parseEntry(m.entries[m.index])
	entry := cur.Pathname + cur.Search + "#" + fragment
	if replace {
		m.entries[m.index] = entry
		return
	}
	m.entries = append(m.entries[:m.index+1], entry)
	m.index = len(m.entries) - 1
}

// OnPopState implements Platform.
func (m *Memory) OnPopState(fn func()) (stop func()) {
	return m.subscribe(m.popState, fn)
}

// OnFragmentChange implements Platform.
func (m *Memory) OnFragmentChange(fn func()) (stop func()) {
	return m.subscribe(m.hashState, fn)
}

func (m *Memory) subscribe(set map[int]func(), fn func()) (stop func()) {
	m.mu.Lock()
	id := m.nextID
	m.nextID++
	set[id] = fn
	m.mu.Unlock()
	return func() {
		m.mu.Lock()
		delete(set, id)
		m.mu.Unlock()
	}
}

// Go implements Platform. Out-of-range deltas are clamped to the stack
// bounds; a zero net movement fires no callbacks.
func (m *Memory) Go(delta int) {
	m.mu.Lock()
	target := m.index + delta
	if target < 0 {
		target = 0
	}
	if target > len(m.entries)-1 {
		target = len(m.entries) - 1
	}
	moved := target != m.index
	before := parseEntry(m.entries[m.index])
	m.index = target
	after := parseEntry(m.entries[m.index])

	var fns []func()
	if moved {
		for _, fn := range m.popState {
			fns = append(fns, fn)
		}
		if before.Fragment != after.Fragment {
			for _, fn := range m.hashState {
				fns = append(fns, fn)
			}
		}
	}
	m.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

// Entries returns a copy of the history stack, oldest first.
func (m *Memory) Entries() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.entries))
	copy(out, m.entries)
	return out
}

// Index returns the cursor position in the stack.
func (m *Memory) Index() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.index
}

func parseEntry(entry string) Location {
	var loc Location
	rest := entry
	if i := strings.IndexByte(rest, '#'); i >= 0 {
		loc.Fragment = rest[i+1:]
		rest = rest[:i]
	}
	if i := strings.IndexByte(rest, '?'); i >= 0 {
		loc.Search = rest[i:]
		rest = rest[:i]
	}
	if rest == "" {
		rest = "/"
	}
	loc.Pathname = rest
	return loc
}
