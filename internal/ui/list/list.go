// Package list provides a generic selectable list driven by keymap actions.
package list

import (
	"github.com/llehouerou/hifi/internal/keymap"
	"github.com/llehouerou/hifi/internal/ui"
	"github.com/llehouerou/hifi/internal/ui/cursor"
)

// Action represents what happened during Handle.
type Action int

const (
	ActionNone   Action = iota
	ActionMoved         // selection changed
	ActionSelect        // enter on the selected row
	ActionLeaveTop      // move up past the first row
	ActionLeaveBottom   // move down past the last row
)

// Result tells the parent what happened.
type Result struct {
	Action Action
	Index  int // selected index, -1 if none
}

// Model is a selectable list. The parent renders rows using VisibleRange.
type Model[T any] struct {
	ui.Base
	items  []T
	cursor cursor.Cursor
}

// New creates an empty list.
func New[T any]() Model[T] {
	return Model[T]{cursor: cursor.New(ui.ScrollMargin)}
}

// SetItems replaces the items and keeps the selection in range.
func (m *Model[T]) SetItems(items []T) {
	m.items = items
	m.cursor.ClampToBounds(len(items))
}

// Items returns the items.
func (m Model[T]) Items() []T {
	return m.items
}

// Len returns the number of items.
func (m Model[T]) Len() int {
	return len(m.items)
}

// Selected returns the selected item.
func (m Model[T]) Selected() (T, bool) {
	if m.cursor.Pos() >= len(m.items) {
		var zero T
		return zero, false
	}
	return m.items[m.cursor.Pos()], true
}

// SelectedIndex returns the selected index, -1 when empty.
func (m Model[T]) SelectedIndex() int {
	if len(m.items) == 0 {
		return -1
	}
	return m.cursor.Pos()
}

// SelectFirst selects the first row.
func (m *Model[T]) SelectFirst() {
	m.cursor.Reset()
}

// SelectLast selects the last row.
func (m *Model[T]) SelectLast() {
	m.cursor.Jump(len(m.items)-1, len(m.items), m.Height())
}

// VisibleRange returns [start, end) indices for rendering.
func (m Model[T]) VisibleRange() (start, end int) {
	return m.cursor.VisibleRange(len(m.items), m.Height())
}

// Handle applies a navigation action. Unfocused lists ignore input.
func (m *Model[T]) Handle(a keymap.Action) Result {
	if !m.IsFocused() {
		return Result{Index: -1}
	}
	n := len(m.items)

	switch a { //nolint:exhaustive // only list navigation
	case keymap.ActionMoveDown:
		if m.cursor.AtEnd(n) {
			return Result{Action: ActionLeaveBottom, Index: m.SelectedIndex()}
		}
		m.cursor.Move(1, n, m.Height())
		return Result{Action: ActionMoved, Index: m.cursor.Pos()}
	case keymap.ActionMoveUp:
		if n == 0 || m.cursor.AtStart() {
			return Result{Action: ActionLeaveTop, Index: m.SelectedIndex()}
		}
		m.cursor.Move(-1, n, m.Height())
		return Result{Action: ActionMoved, Index: m.cursor.Pos()}
	case keymap.ActionSelect:
		if n > 0 {
			return Result{Action: ActionSelect, Index: m.cursor.Pos()}
		}
	}
	return Result{Index: -1}
}
