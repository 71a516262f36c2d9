// Package mocks 提供测试用的依赖替身
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockTextGateway is a mock type for the port.TextGateway type
type MockTextGateway struct {
	mock.Mock
}

// Invoke provides a mock function with given fields: ctx, instruction, maxTokens
func (_m *MockTextGateway) Invoke(ctx context.Context, instruction string, maxTokens int) string {
	ret := _m.Called(ctx, instruction, maxTokens)

	var r0 string
	if rf, ok := ret.Get(0).(func(context.Context, string, int) string); ok {
		r0 = rf(ctx, instruction, maxTokens)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(string)
		}
	}

	return r0
}

// NewMockTextGateway creates a new instance of MockTextGateway. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewMockTextGateway(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockTextGateway {
	m := &MockTextGateway{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
