package services

import (
	"context"
	"sync"
)

// MockAdviceService is a mock implementation of AdviceService for testing
type MockAdviceService struct {
	GetAdviceFunc func(ctx context.Context, req AdviceRequest) (string, error)

	// Track calls for testing
	Calls []AdviceRequest

	mu sync.Mutex // protects all fields above
}

// Ensure MockAdviceService implements AdviceService interface
var _ AdviceService = (*MockAdviceService)(nil)

// NewMockAdviceService creates a mock that answers with a fixed tip
func NewMockAdviceService() *MockAdviceService {
	return &MockAdviceService{
		Calls: make([]AdviceRequest, 0),
	}
}

// GetAdvice mocks the provider call
func (m *MockAdviceService) GetAdvice(ctx context.Context, req AdviceRequest) (string, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, req)
	fn := m.GetAdviceFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, req)
	}

	// Default behavior - success
	return "Mock tip", nil
}

// SetTip makes the mock answer with tip
func (m *MockAdviceService) SetTip(tip string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetAdviceFunc = func(ctx context.Context, req AdviceRequest) (string, error) {
		return tip, nil
	}
}

// SetError makes the mock fail with err
func (m *MockAdviceService) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetAdviceFunc = func(ctx context.Context, req AdviceRequest) (string, error) {
		return "", err
	}
}

// SetBlocking makes the mock wait until the context is done
func (m *MockAdviceService) SetBlocking() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetAdviceFunc = func(ctx context.Context, req AdviceRequest) (string, error) {
		<-ctx.Done()
		return "", ctx.Err()
	}
}

// GetCalls returns a copy of the recorded requests
func (m *MockAdviceService) GetCalls() []AdviceRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	calls := make([]AdviceRequest, len(m.Calls))
	copy(calls, m.Calls)
	return calls
}
