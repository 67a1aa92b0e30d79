// File: internal/mocks/mocks.go
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// -- Property Store Mock --

// MockPropertyStore mocks the schemas.PropertyStore interface.
type MockPropertyStore struct {
	mock.Mock
}

func (m *MockPropertyStore) GetString(key string) (string, bool) {
	args := m.Called(key)
	return args.String(0), args.Bool(1)
}

func (m *MockPropertyStore) GetBool(key string, def bool) bool {
	args := m.Called(key, def)
	return args.Bool(0)
}

// -- Task Monitor Mock --

// MockTaskMonitor mocks the schemas.TaskMonitor interface.
type MockTaskMonitor struct {
	mock.Mock
}

func (m *MockTaskMonitor) TopActivity(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

// SubscribeStackChanges accepts either a directional or a plain channel in
// the mock setup.
func (m *MockTaskMonitor) SubscribeStackChanges() (<-chan struct{}, func(), error) {
	args := m.Called()

	var events <-chan struct{}
	switch ch := args.Get(0).(type) {
	case chan struct{}:
		events = ch
	case <-chan struct{}:
		events = ch
	}

	cancel, _ := args.Get(1).(func())
	return events, cancel, args.Error(2)
}

// -- Process Controller Mock --

// MockProcessController mocks the schemas.ProcessController interface.
type MockProcessController struct {
	mock.Mock
}

func (m *MockProcessController) Kill() {
	m.Called()
}

// -- Stack Inspector Mock --

// MockStackInspector mocks the schemas.StackInspector interface.
type MockStackInspector struct {
	mock.Mock
}

func (m *MockStackInspector) InAttestationPath() bool {
	args := m.Called()
	return args.Bool(0)
}
