package nfc

import (
	"errors"

	"github.com/ebfe/scard"
)

// pcscService implements Service using PC/SC via ebfe/scard
type pcscService struct{}

func newPCSCService() *pcscService {
	return &pcscService{}
}

// Establish opens a PC/SC context. scard always requests the system scope
// from the resource manager; pcsc-lite ignores the scope argument entirely,
// so a user-scoped request maps onto the same call.
func (s *pcscService) Establish(scope Scope) (Session, error) {
	ctx, err := scard.EstablishContext()
	if err != nil {
		return nil, err
	}
	return &pcscSession{ctx: ctx}, nil
}

// pcscContext is the part of *scard.Context a session uses.
type pcscContext interface {
	ListReaders() ([]string, error)
	Release() error
}

// pcscSession wraps an established PC/SC context
type pcscSession struct {
	ctx pcscContext
}

// ListReaders lists the reader names known to the resource manager.
// SCARD_E_NO_READERS_AVAILABLE is reported as an empty list.
func (s *pcscSession) ListReaders() ([]string, error) {
	readers, err := s.ctx.ListReaders()
	if err != nil {
		if errors.Is(err, scard.ErrNoReadersAvailable) {
			return []string{}, nil
		}
		return nil, err
	}
	return readers, nil
}

func (s *pcscSession) Release() error {
	if s.ctx == nil {
		return nil
	}
	err := s.ctx.Release()
	s.ctx = nil
	return err
}
