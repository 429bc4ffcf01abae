package routing

import (
	"context"
	"fmt"
	"sync"
)

// MockDirections implements Directions for tests. Responses are keyed by
// call order; it records every request it receives.
type MockDirections struct {
	mu sync.Mutex

	// Responses are returned in call order. When exhausted, calls fail.
	Responses [][]RawRoute

	// Errs maps call index to an injected error for that call.
	Errs map[int]error

	// Requests records every request in arrival order.
	Requests []DirectionsRequest
}

// NewMockDirections builds a mock returning the given responses in order.
func NewMockDirections(responses ...[]RawRoute) *MockDirections {
	return &MockDirections{Responses: responses}
}

// FailAt injects an error for the call with the given zero-based index.
func (m *MockDirections) FailAt(index int, err error) *MockDirections {
	if m.Errs == nil {
		m.Errs = make(map[int]error)
	}
	m.Errs[index] = err
	return m
}

// ComputeAlternatives replays the canned response for the current call.
func (m *MockDirections) ComputeAlternatives(ctx context.Context, req DirectionsRequest) ([]RawRoute, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	index := len(m.Requests)
	m.Requests = append(m.Requests, req)

	if err, ok := m.Errs[index]; ok {
		return nil, err
	}
	if index >= len(m.Responses) {
		return nil, fmt.Errorf("mock directions: unexpected call %d", index)
	}
	return m.Responses[index], nil
}

// CallCount returns how many requests the mock has received.
func (m *MockDirections) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Requests)
}
