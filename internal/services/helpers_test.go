package services

import (
	"context"

	"github.com/stretchr/testify/mock"

	"meddash/internal/files"
)

// MockDataSource is a mock for the DataSource interface
type MockDataSource struct {
	mock.Mock
}

func (m *MockDataSource) Path() string {
	return "mock/selected1.csv"
}

func (m *MockDataSource) Read(ctx context.Context) ([]byte, error) {
	args := m.Called(ctx)
	data, _ := args.Get(0).([]byte)
	return data, args.Error(1)
}

func (m *MockDataSource) Stat(ctx context.Context) (files.FileInfo, error) {
	args := m.Called(ctx)
	info, _ := args.Get(0).(files.FileInfo)
	return info, args.Error(1)
}

// MockClientCounter is a mock for the ClientCounter interface
type MockClientCounter struct {
	mock.Mock
}

func (m *MockClientCounter) ClientCount() int {
	return m.Called().Int(0)
}
