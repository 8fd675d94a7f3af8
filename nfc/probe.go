// Package nfc checks whether the host has an NFC-capable reader attached.
//
// The check opens a user-scoped session with the smart-card service, lists
// the attached readers and classifies the result:
//
//	probe := nfc.NewProbe(svc)
//	status := probe.CheckAvailability()
//	fmt.Println(status.Available, status.Message)
//
// A check never returns an error. Every failure is reported through
// Status.Message with Available set to false.
package nfc

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// Probe runs availability checks against a Service. A Probe holds no state
// between checks and is safe for concurrent use.
type Probe struct {
	service Service
	logger  logrus.FieldLogger
}

// ProbeOption configures a Probe.
type ProbeOption func(*Probe)

// WithLogger sets the logger used for check diagnostics.
func WithLogger(logger logrus.FieldLogger) ProbeOption {
	return func(p *Probe) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// NewProbe creates a probe bound to svc.
func NewProbe(svc Service, opts ...ProbeOption) *Probe {
	p := &Probe{
		service: svc,
		logger:  logrus.StandardLogger().WithField("component", "nfc"),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// CheckAvailability runs one check and returns its rendered status.
func (p *Probe) CheckAvailability() Status {
	return p.Inspect().Status()
}

// Inspect runs one check and returns its structured report.
func (p *Probe) Inspect() Report {
	session, err := p.establish()
	if err != nil {
		if session != nil {
			p.release(session)
		}
		p.logger.WithError(err).Debug("NFC context unavailable")
		return Report{Outcome: OutcomeSessionError, Err: NewSessionError(err)}
	}
	defer p.release(session)

	readers, err := p.listReaders(session)
	if err != nil {
		p.logger.WithError(err).Debug("NFC reader enumeration failed")
		return Report{Outcome: OutcomeEnumerationError, Err: NewEnumerationError(err)}
	}
	if len(readers) == 0 {
		p.logger.Debug("No NFC readers detected")
		return Report{Outcome: OutcomeEmpty, Readers: []string{}}
	}

	p.logger.WithField("readers", readers).Debugf("Found %d NFC reader(s)", len(readers))
	return Report{Outcome: OutcomeFound, Readers: readers}
}

func (p *Probe) establish() (session Session, err error) {
	defer recoverInto(&err)

	if p.service == nil {
		return nil, fmt.Errorf("no smart-card service configured")
	}
	session, err = p.service.Establish(ScopeUser)
	// A typed nil pointer wrapped in Session passes this check; its first
	// ListReaders panics and is reported as an enumeration failure.
	if err == nil && session == nil {
		err = fmt.Errorf("smart-card service returned no session")
	}
	return session, err
}

func (p *Probe) listReaders(session Session) (readers []string, err error) {
	defer recoverInto(&err)

	readers, err = session.ListReaders()
	if err != nil {
		return nil, err
	}
	// Copy so the report does not alias adapter-owned storage.
	out := make([]string, len(readers))
	copy(out, readers)
	return out, nil
}

func (p *Probe) release(session Session) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Warnf("Panic releasing NFC context: %v", r)
		}
	}()

	if err := session.Release(); err != nil {
		p.logger.WithError(err).Warn("Failed to release NFC context")
	}
}

// recoverInto turns a panic raised by a service adapter into an error.
func recoverInto(err *error) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("smart-card service panic: %v", r)
	}
}

// CheckAvailability runs a check against the default PC/SC service.
func CheckAvailability() Status {
	return NewProbe(newPCSCService()).CheckAvailability()
}
