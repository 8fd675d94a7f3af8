package nfc

import (
	"fmt"
	"sync"
)

// MockService is a test implementation of Service that simulates the host
// smart-card layer.
//
// MockService allows testing availability checks without a PC/SC daemon or
// physical readers by providing configurable responses. It counts sessions
// so tests can verify that every session handed out was released.
//
// Example:
//
//	svc := &MockService{
//	    Readers: []string{"ACS ACR122U PICC Interface 00 00"},
//	}
//	status := NewProbe(svc).CheckAvailability()
type MockService struct {
	// Readers is the list of reader names returned by Session.ListReaders()
	Readers []string

	// EstablishError, if set, will be returned by Establish()
	EstablishError error

	// ListReadersError, if set, will be returned by Session.ListReaders()
	ListReadersError error

	// ReleaseError, if set, will be returned by Session.Release()
	ReleaseError error

	// PanicOnList makes Session.ListReaders() panic with this value when non-nil
	PanicOnList any

	// CallLog tracks all method calls for verification in tests
	CallLog []string

	established int
	released    int
	scopes      []Scope
	mu          sync.Mutex
}

// NewMockService creates a new MockService reporting the given readers.
func NewMockService(readers ...string) *MockService {
	return &MockService{
		Readers: readers,
		CallLog: make([]string, 0),
	}
}

// Establish simulates opening a smart-card context.
func (m *MockService) Establish(scope Scope) (Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.CallLog = append(m.CallLog, fmt.Sprintf("Establish(%s)", scope))
	m.scopes = append(m.scopes, scope)

	if m.EstablishError != nil {
		return nil, m.EstablishError
	}

	m.established++
	return &mockSession{service: m}, nil
}

// OpenSessions returns how many established sessions have not been released.
func (m *MockService) OpenSessions() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.established - m.released
}

// Scopes returns the scopes requested so far.
func (m *MockService) Scopes() []Scope {
	m.mu.Lock()
	defer m.mu.Unlock()

	scopes := make([]Scope, len(m.scopes))
	copy(scopes, m.scopes)
	return scopes
}

// SetReaders replaces the reader list returned by ListReaders().
func (m *MockService) SetReaders(readers ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Readers = readers
}

// GetCallLog returns a copy of the call log for verification.
func (m *MockService) GetCallLog() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	logCopy := make([]string, len(m.CallLog))
	copy(logCopy, m.CallLog)
	return logCopy
}

type mockSession struct {
	service  *MockService
	released bool
}

func (s *mockSession) ListReaders() ([]string, error) {
	m := s.service
	m.mu.Lock()
	m.CallLog = append(m.CallLog, "ListReaders")
	panicValue := m.PanicOnList
	listErr := m.ListReadersError
	readersCopy := make([]string, len(m.Readers))
	copy(readersCopy, m.Readers)
	m.mu.Unlock()

	if panicValue != nil {
		panic(panicValue)
	}
	if listErr != nil {
		return nil, listErr
	}
	return readersCopy, nil
}

func (s *mockSession) Release() error {
	m := s.service
	m.mu.Lock()
	defer m.mu.Unlock()

	m.CallLog = append(m.CallLog, "Release")
	if !s.released {
		s.released = true
		m.released++
	}
	return m.ReleaseError
}
