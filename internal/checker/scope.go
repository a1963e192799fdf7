package checker

import (
	"errors"
	"fmt"
)

// ErrDuplicateDeclaration is returned by Declare when the name is already
// bound in the innermost frame.
var ErrDuplicateDeclaration = errors.New("duplicate declaration")

type frame map[string]*Symbol

// Scope is a stack of frames. The bottom frame is the global frame and
// lives for the whole analysis.
type Scope struct {
	frames []frame
}

// NewScope creates a scope stack holding only the global frame
func NewScope() *Scope {
	return &Scope{frames: []frame{make(frame)}}
}

// Push opens a new innermost frame
func (s *Scope) Push() {
	s.frames = append(s.frames, make(frame))
}

// Pop discards the innermost frame. The global frame is never popped.
func (s *Scope) Pop() {
	if len(s.frames) > 1 {
		s.frames = s.frames[:len(s.frames)-1]
	}
}

// Depth returns the number of frames, the global frame included
func (s *Scope) Depth() int {
	return len(s.frames)
}

// Declare binds name in the innermost frame. A name already bound there is
// left untouched and ErrDuplicateDeclaration is returned.
func (s *Scope) Declare(name string, sym *Symbol) error {
	inner := s.frames[len(s.frames)-1]
	if _, exists := inner[name]; exists {
		return fmt.Errorf("%w: '%s'", ErrDuplicateDeclaration, name)
	}
	inner[name] = sym
	return nil
}

// Resolve returns the nearest binding of name, innermost frame first
func (s *Scope) Resolve(name string) (*Symbol, bool) {
	for i := len(s.frames) - 1; i >= 0; i-- {
		if sym, ok := s.frames[i][name]; ok {
			return sym, true
		}
	}
	return nil, false
}
