package nfc

import "fmt"

// Message texts rendered into Status.Message.
const (
	MessageSessionFailed     = "Failed to establish NFC context"
	MessageEnumerationFailed = "Failed to list readers"
	MessageNoReaders         = "No NFC readers detected"
)

// Outcome is the structured result kind of an availability check.
type Outcome int

const (
	OutcomeSessionError Outcome = iota
	OutcomeEnumerationError
	OutcomeEmpty
	OutcomeFound
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSessionError:
		return "session_error"
	case OutcomeEnumerationError:
		return "enumeration_error"
	case OutcomeEmpty:
		return "empty"
	case OutcomeFound:
		return "found"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// Status is the availability result handed to the UI layer.
type Status struct {
	Available bool   `json:"available"`
	Message   string `json:"message"`
}

// Report is the structured form of a check. Status renders it for display.
type Report struct {
	Outcome Outcome
	Readers []string
	Err     *ProbeError // set for OutcomeSessionError and OutcomeEnumerationError
}

// Count returns the number of readers enumerated.
func (r Report) Count() int {
	return len(r.Readers)
}

// Available reports whether at least one reader was found.
func (r Report) Available() bool {
	return r.Outcome == OutcomeFound && len(r.Readers) > 0
}

// Status renders the report into its two-field presentation form.
func (r Report) Status() Status {
	switch r.Outcome {
	case OutcomeSessionError:
		return Status{Message: fmt.Sprintf("%s: %s", MessageSessionFailed, r.detail())}
	case OutcomeEnumerationError:
		return Status{Message: fmt.Sprintf("%s: %s", MessageEnumerationFailed, r.detail())}
	case OutcomeFound:
		if len(r.Readers) > 0 {
			return Status{Available: true, Message: fmt.Sprintf("Found %d NFC reader(s)", len(r.Readers))}
		}
	}
	return Status{Message: MessageNoReaders}
}

func (r Report) detail() string {
	if r.Err == nil {
		return "unknown error"
	}
	return r.Err.Detail()
}
