package tokens

import (
	"github.com/stretchr/testify/mock"
)

// MockCounter is a mock implementation of Counter for testing.
type MockCounter struct {
	mock.Mock
}

var _ Counter = (*MockCounter)(nil)

func NewMockCounter() *MockCounter {
	return &MockCounter{}
}

func (m *MockCounter) CountText(text string) int {
	args := m.Called(text)
	return args.Int(0)
}

func (m *MockCounter) CountTexts(texts []string) int {
	args := m.Called(texts)
	return args.Int(0)
}

func (m *MockCounter) Truncate(text string, maxTokens int) string {
	args := m.Called(text, maxTokens)
	return args.String(0)
}
