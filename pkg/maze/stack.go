package maze

import "fmt"

// stack is the flood-fill backtracking path, bounded by the grid area.
// Pushing past capacity or popping an empty stack means the traversal
// revisited a cell, so both panic.
type stack struct {
	items []int
}

func newStack(capacity int) (*stack, error) {
	buf, err := makeSlice[int](capacity, "backtracking stack")
	if err != nil {
		return nil, err
	}
	return &stack{items: buf[:0]}, nil
}

func (s *stack) push(cell int) {
	if len(s.items) == cap(s.items) {
		panic(fmt.Sprintf("maze: stack push beyond capacity %d", cap(s.items)))
	}
	s.items = append(s.items, cell)
}

func (s *stack) pop() int {
	n := len(s.items)
	if n == 0 {
		panic("maze: stack pop on empty stack")
	}
	cell := s.items[n-1]
	s.items = s.items[:n-1]
	return cell
}

func (s *stack) len() int { return len(s.items) }
