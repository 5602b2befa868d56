package services

import (
	"context"
)

type mockApprover struct {
	approved    bool
	err         error
	called      bool
	gotTable    string
	gotExisting int64
}

func (m *mockApprover) RequestApproval(_ context.Context, table string, existing int64) (bool, error) {
	m.called = true
	m.gotTable = table
	m.gotExisting = existing
	return m.approved, m.err
}

type mockLogger struct{}

func (m *mockLogger) Verbose(_ string, _ ...interface{}) {}
func (m *mockLogger) Info(_ string, _ ...interface{})    {}
func (m *mockLogger) Error(_ string, _ ...interface{})   {}
