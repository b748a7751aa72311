package reactive

// IntState wraps State[int] with integer helpers.
type IntState struct {
	*State[int]
}

// NewIntState creates a new IntState holding initial.
func NewIntState(initial int) *IntState {
	return &IntState{NewState(initial)}
}

// Inc increments the value by 1.
func (s *IntState) Inc() {
	s.Add(1)
}

// Add adds n. Overflow wraps.
func (s *IntState) Add(n int) {
	s.Update(func(v int) int { return v + n })
}
