// Copyright (c) 2026, Vectorscene. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package update

import (
	"log/slog"

	"github.com/cogentcore-design/vectorscene/scene"
	"github.com/cogentcore-design/vectorscene/vserr"
)

// Session owns one Graph's undo/redo history and enforces that at most
// one Block is open against it at a time.
type Session struct {
	Graph *scene.Graph
	Log   *slog.Logger

	open *Block

	undoStack [][]step
	redoStack [][]step
}

// NewSession constructs a Session over g. If log is nil, the default
// slog logger is used.
func NewSession(g *scene.Graph, log *slog.Logger) *Session {
	if log == nil {
		log = slog.Default()
	}
	return &Session{Graph: g, Log: log}
}

// Open begins a new Block, failing with BlockAlreadyOpen if one is
// already open on this Session.
func (s *Session) Open() (*Block, error) {
	if s.open != nil {
		return nil, vserr.New(vserr.BlockAlreadyOpen, "open", "")
	}
	b := newBlock(s)
	s.open = b
	return b, nil
}

func (s *Session) pushUndo(steps []step) {
	if len(steps) == 0 {
		return
	}
	s.undoStack = append(s.undoStack, steps)
	s.redoStack = nil
}

// CanUndo reports whether Undo would do anything.
func (s *Session) CanUndo() bool { return len(s.undoStack) > 0 }

// CanRedo reports whether Redo would do anything.
func (s *Session) CanRedo() bool { return len(s.redoStack) > 0 }

// Undo reverses the most recently committed block's steps, in reverse
// order, and moves it to the redo stack.
func (s *Session) Undo() error {
	if len(s.undoStack) == 0 {
		return vserr.New(vserr.NotFound, "undo", "")
	}
	n := len(s.undoStack) - 1
	steps := s.undoStack[n]
	s.undoStack = s.undoStack[:n]
	for i := len(steps) - 1; i >= 0; i-- {
		steps[i].undo()
	}
	s.redoStack = append(s.redoStack, steps)
	return nil
}

// Redo re-applies the most recently undone block's steps, in original
// order, and moves it back to the undo stack.
func (s *Session) Redo() error {
	if len(s.redoStack) == 0 {
		return vserr.New(vserr.NotFound, "redo", "")
	}
	n := len(s.redoStack) - 1
	steps := s.redoStack[n]
	s.redoStack = s.redoStack[:n]
	for _, st := range steps {
		st.do()
	}
	s.undoStack = append(s.undoStack, steps)
	return nil
}
