package nfc

import (
	"errors"

	libnfc "github.com/clausecker/nfc/v2"
)

// libnfcService implements Service on top of libnfc. libnfc manages its own
// context per call, so a session carries no handle.
type libnfcService struct{}

func newLibNFCService() *libnfcService {
	return &libnfcService{}
}

func (s *libnfcService) Establish(scope Scope) (Session, error) {
	if libnfc.Version() == "" {
		return nil, errors.New("libnfc is not available")
	}
	return libnfcSession{}, nil
}

type libnfcSession struct{}

func (libnfcSession) ListReaders() ([]string, error) {
	devices, err := libnfc.ListDevices()
	if err != nil {
		return nil, err
	}
	if devices == nil {
		devices = []string{}
	}
	return devices, nil
}

func (libnfcSession) Release() error { return nil }
