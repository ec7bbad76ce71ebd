package capo

import "sync"

// edge links a node to a child either by a literal command word or by a
// parameter wildcard.
type edge struct {
	label    string
	wildcard bool
	pattern  Wildcard
	child    int
}

type node struct {
	command *Command
	edges   []edge
}

// Store indexes commands in a trie keyed by command words and parameter
// wildcards. Nodes live in one slice and refer to children by index; node
// 0 is the root. It is safe for concurrent use.
type Store struct {
	mu    sync.RWMutex
	nodes []node
	order []*Command
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{nodes: []node{{}}}
}

// Set stores the command at its signature path, replacing any command
// already stored at the same path.
func (s *Store) Set(cmd *Command) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current := 0
	for _, word := range cmd.signature.command {
		current = s.child(current, edge{label: word})
	}
	for _, p := range cmd.signature.parameters {
		pattern := WildcardFromParameter(p)
		current = s.child(current, edge{label: pattern.String(), wildcard: true, pattern: pattern})
	}

	if previous := s.nodes[current].command; previous != nil {
		for i, stored := range s.order {
			if stored == previous {
				s.order = append(s.order[:i], s.order[i+1:]...)
				break
			}
		}
	}
	s.nodes[current].command = cmd
	s.order = append(s.order, cmd)
}

// child returns the index of the child reached through e, creating it.
func (s *Store) child(parent int, e edge) int {
	for _, existing := range s.nodes[parent].edges {
		if existing.wildcard == e.wildcard && existing.label == e.label {
			return existing.child
		}
	}
	e.child = len(s.nodes)
	s.nodes = append(s.nodes, node{})
	s.nodes[parent].edges = append(s.nodes[parent].edges, e)
	return e.child
}

// Look returns every command whose path is compatible with argv. Literal
// edges are followed before wildcard edges, and wildcard edges in
// insertion order. It never fails; no match yields an empty slice.
func (s *Store) Look(argv []string) []*Command {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.look(0, argv, []*Command{})
}

func (s *Store) look(index int, argv []string, found []*Command) []*Command {
	n := &s.nodes[index]

	if len(argv) == 0 {
		if n.command != nil {
			found = append(found, n.command)
		}
		for _, e := range n.edges {
			if e.wildcard && e.pattern.Matches(nil) {
				found = s.look(e.child, nil, found)
			}
		}
		return found
	}

	head, tail := argv[0], argv[1:]
	for _, e := range n.edges {
		if !e.wildcard && e.label == head {
			found = s.look(e.child, tail, found)
		}
	}
	for _, e := range n.edges {
		switch {
		case !e.wildcard:
		case e.pattern.Variadic:
			if e.pattern.Matches(argv) {
				found = s.look(e.child, nil, found)
			}
		case e.pattern.Matches(argv[:1]):
			found = s.look(e.child, tail, found)
		}
	}
	return found
}

// Clear removes every command.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nodes = []node{{}}
	s.order = nil
}

// Len returns the number of stored commands.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}

// Commands returns the stored commands in registration order.
func (s *Store) Commands() []*Command {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]*Command(nil), s.order...)
}
