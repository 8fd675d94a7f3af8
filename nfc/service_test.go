package nfc

import (
	"errors"
	"strings"
	"testing"

	"github.com/ebfe/scard"
)

func TestNewService(t *testing.T) {
	tests := []struct {
		backend string
		wantErr bool
	}{
		{"", false},
		{"pcsc", false},
		{"PCSC", false},
		{" libnfc ", false},
		{"bluetooth", true},
	}

	for _, tt := range tests {
		t.Run(tt.backend, func(t *testing.T) {
			svc, err := NewService(tt.backend)
			if tt.wantErr {
				if err == nil {
					t.Fatal("Expected error for unknown backend")
				}
				if !strings.Contains(err.Error(), "pcsc") {
					t.Errorf("Expected error to list valid backends, got %q", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewService(%q) failed: %v", tt.backend, err)
			}
			if svc == nil {
				t.Fatal("Expected non-nil service")
			}
		})
	}
}

func TestNewService_Types(t *testing.T) {
	svc, _ := NewService(BackendPCSC)
	if _, ok := svc.(*pcscService); !ok {
		t.Errorf("Expected *pcscService, got %T", svc)
	}

	svc, _ = NewService(BackendLibNFC)
	if _, ok := svc.(*libnfcService); !ok {
		t.Errorf("Expected *libnfcService, got %T", svc)
	}
}

func TestScope_String(t *testing.T) {
	tests := map[Scope]string{
		ScopeUser:     "user",
		ScopeTerminal: "terminal",
		ScopeSystem:   "system",
		Scope(9):      "Scope(9)",
	}
	for scope, want := range tests {
		if got := scope.String(); got != want {
			t.Errorf("Scope.String() = %q, want %q", got, want)
		}
	}
}

func TestPCSCSession_ReleaseIdempotent(t *testing.T) {
	s := &pcscSession{}
	if err := s.Release(); err != nil {
		t.Errorf("Release on empty session returned %v", err)
	}
}

func TestMockService_OpenSessions(t *testing.T) {
	svc := NewMockService("reader 0")

	s1, _ := svc.Establish(ScopeUser)
	s2, _ := svc.Establish(ScopeUser)
	if got := svc.OpenSessions(); got != 2 {
		t.Fatalf("OpenSessions() = %d, want 2", got)
	}

	s1.Release()
	s1.Release()
	if got := svc.OpenSessions(); got != 1 {
		t.Errorf("OpenSessions() after double release = %d, want 1", got)
	}

	s2.Release()
	if got := svc.OpenSessions(); got != 0 {
		t.Errorf("OpenSessions() = %d, want 0", got)
	}
}

// fakePCSCContext stands in for *scard.Context.
type fakePCSCContext struct {
	readers    []string
	listErr    error
	releaseErr error
	released   int
}

func (f *fakePCSCContext) ListReaders() ([]string, error) {
	return f.readers, f.listErr
}

func (f *fakePCSCContext) Release() error {
	f.released++
	return f.releaseErr
}

// fakePCSCService hands out sessions over a fake context.
type fakePCSCService struct {
	ctx *fakePCSCContext
}

func (s *fakePCSCService) Establish(scope Scope) (Session, error) {
	return &pcscSession{ctx: s.ctx}, nil
}

func TestPCSCSession_ListReaders(t *testing.T) {
	tests := []struct {
		name      string
		readers   []string
		listErr   error
		expected  []string
		expectErr error
	}{
		{
			name:     "readers attached",
			readers:  []string{"ACS ACR122U 00 00", "ACS ACR1252 00 00"},
			expected: []string{"ACS ACR122U 00 00", "ACS ACR1252 00 00"},
		},
		{
			name:     "no readers available",
			listErr:  scard.ErrNoReadersAvailable,
			expected: []string{},
		},
		{
			name:      "service not running",
			listErr:   scard.ErrNoService,
			expectErr: scard.ErrNoService,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &pcscSession{ctx: &fakePCSCContext{readers: tt.readers, listErr: tt.listErr}}

			readers, err := s.ListReaders()
			if tt.expectErr != nil {
				if !errors.Is(err, tt.expectErr) {
					t.Fatalf("Expected error %v, got %v", tt.expectErr, err)
				}
				if readers != nil {
					t.Errorf("Expected nil readers on error, got %v", readers)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if readers == nil || len(readers) != len(tt.expected) {
				t.Fatalf("ListReaders() = %#v, want %#v", readers, tt.expected)
			}
			for i := range readers {
				if readers[i] != tt.expected[i] {
					t.Errorf("reader %d = %q, want %q", i, readers[i], tt.expected[i])
				}
			}
		})
	}
}

func TestPCSCSession_NoReadersThroughProbe(t *testing.T) {
	ctx := &fakePCSCContext{listErr: scard.ErrNoReadersAvailable}
	got := newTestProbe(&fakePCSCService{ctx: ctx}).CheckAvailability()

	want := Status{Available: false, Message: "No NFC readers detected"}
	if got != want {
		t.Errorf("CheckAvailability() = %+v, want %+v", got, want)
	}
	if ctx.released != 1 {
		t.Errorf("Expected context released once, got %d", ctx.released)
	}
}

func TestPCSCSession_ServiceErrorThroughProbe(t *testing.T) {
	ctx := &fakePCSCContext{listErr: scard.ErrNoService}
	got := newTestProbe(&fakePCSCService{ctx: ctx}).CheckAvailability()

	want := Status{Available: false, Message: "Failed to list readers: " + scard.ErrNoService.Error()}
	if got != want {
		t.Errorf("CheckAvailability() = %+v, want %+v", got, want)
	}
}

func TestPCSCSession_ReleaseOnce(t *testing.T) {
	ctx := &fakePCSCContext{releaseErr: scard.ErrInvalidHandle}
	s := &pcscSession{ctx: ctx}

	if err := s.Release(); !errors.Is(err, scard.ErrInvalidHandle) {
		t.Errorf("First Release() = %v, want %v", err, scard.ErrInvalidHandle)
	}
	if err := s.Release(); err != nil {
		t.Errorf("Second Release() = %v, want nil", err)
	}
	if ctx.released != 1 {
		t.Errorf("Expected one release of the context, got %d", ctx.released)
	}
}
