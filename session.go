package uidl

import (
	"sync"

	"bennypowers.dev/uidl/bind"
	"bennypowers.dev/uidl/internal/collections"
	"bennypowers.dev/uidl/internal/log"
	"bennypowers.dev/uidl/tree"
	"bennypowers.dev/uidl/value"
)

// Session owns one loaded document over its lifetime: the resolved tree, the
// binding index, and the viewport it was resolved against. Hosts call Update
// once per frame with the current variable snapshot and SetViewport on
// resize; both are cheap relative to a reload.
type Session struct {
	mu       sync.Mutex
	source   string
	viewport value.Viewport
	tree     *tree.Tree
	index    *bind.Index
}

// NewSession creates a session with no document loaded.
func NewSession(vp value.Viewport) *Session {
	return &Session{viewport: vp}
}

// Load parses and resolves a source text, replacing any previously loaded
// document. The variable snapshot seeds the initial binding pass. A document
// with unresolved variables still loads, with those placeholders literal
// until a later Update supplies them; the error reports them anyway.
func (s *Session) Load(source string, vars bind.Variables) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ix, err := Build(source, s.viewport, vars)
	if t == nil {
		return err
	}
	s.source = source
	s.tree = t
	s.index = ix
	log.Debug("Loaded document: %d elements, %d bindings", t.Len(), ix.Len())
	return err
}

// SetViewport records a new viewport and re-resolves every percent-valued
// attribute against it. Absolute attributes are untouched.
func (s *Session) SetViewport(vp value.Viewport) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.viewport = vp
	if s.tree != nil {
		s.tree.Reresolve(vp)
	}
}

// Update re-applies the binding index with the current variable snapshot and
// returns the IDs of elements whose attributes changed, in ascending order.
// Identical snapshots return nothing, so callers may invoke it every frame.
func (s *Session) Update(vars bind.Variables) []tree.ElementID {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.index == nil {
		return nil
	}
	changed := s.index.Apply(vars)
	if len(changed) == 0 {
		return nil
	}
	return collections.SortedMembers(changed)
}

// Tree returns the resolved descriptor tree, or nil before Load.
func (s *Session) Tree() *tree.Tree {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tree
}

// Viewport returns the viewport the tree is currently resolved against.
func (s *Session) Viewport() value.Viewport {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewport
}
