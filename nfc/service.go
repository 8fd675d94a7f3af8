package nfc

import (
	"fmt"
	"strings"
)

// Scope selects the visibility of a smart-card service context.
type Scope int

const (
	// ScopeUser limits the context to the calling user's session.
	ScopeUser Scope = iota
	// ScopeTerminal is reserved by PC/SC and treated like ScopeUser by most stacks.
	ScopeTerminal
	// ScopeSystem requests a machine-wide context.
	ScopeSystem
)

func (s Scope) String() string {
	switch s {
	case ScopeUser:
		return "user"
	case ScopeTerminal:
		return "terminal"
	case ScopeSystem:
		return "system"
	default:
		return fmt.Sprintf("Scope(%d)", int(s))
	}
}

// Service is the host smart-card access layer the probe talks to.
// Establish returns either a usable Session or a plain nil one, never a nil
// pointer of a concrete session type.
//
// Example:
//
//	svc, _ := nfc.NewService(nfc.BackendPCSC)
//	session, err := svc.Establish(nfc.ScopeUser)
//	if err != nil {
//	    return err
//	}
//	defer session.Release()
//	readers, _ := session.ListReaders()
type Service interface {
	Establish(scope Scope) (Session, error)
}

// Session is a live handle to a Service. It must be released once the
// caller is done with it.
type Session interface {
	ListReaders() ([]string, error)
	Release() error
}

// Backend names accepted by NewService.
const (
	BackendPCSC   = "pcsc"
	BackendLibNFC = "libnfc"
)

// Backends returns all backend names accepted by NewService.
func Backends() []string {
	return []string{BackendPCSC, BackendLibNFC}
}

// NewService returns the Service implementation registered under backend.
// An empty name selects PC/SC.
func NewService(backend string) (Service, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "", BackendPCSC:
		return newPCSCService(), nil
	case BackendLibNFC:
		return newLibNFCService(), nil
	default:
		return nil, fmt.Errorf("unknown NFC backend %q (expected one of %s)", backend, strings.Join(Backends(), ", "))
	}
}
