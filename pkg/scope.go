package funlang

import (
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/value"
)

// Scope binds names to the most recent IR value assigned to them. Lookups
// fall back to the parent scope; writes always land in the receiver, so a
// child scope shadows its parent and is discarded with it.
type Scope struct {
	parent *Scope
	vals   map[string]value.Value
}

func NewScope(parent *Scope) *Scope {
	return &Scope{
		parent: parent,
		vals:   make(map[string]value.Value),
	}
}

// Constants copies the constant bindings of s into a new root scope. Values
// produced by instructions belong to the function that emitted them and
// cannot be referenced from another one.
func (s *Scope) Constants() *Scope {
	c := NewScope(nil)
	for k, v := range s.vals {
		if _, ok := v.(constant.Constant); ok {
			c.Set(k, v)
		}
	}

	return c
}

func (s *Scope) Get(id string) (value.Value, bool) {
	for sc := s; sc != nil; sc = sc.parent {
		if val, ok := sc.vals[id]; ok {
			return val, true
		}
	}

	return nil, false
}

func (s *Scope) Set(id string, val value.Value) {
	s.vals[id] = val
}

// Commit moves the bindings of s into its parent.
func (s *Scope) Commit() {
	for k, v := range s.vals {
		s.parent.Set(k, v)
	}

	s.vals = make(map[string]value.Value)
}
