package nfc

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestReport_Status(t *testing.T) {
	tests := []struct {
		name     string
		report   Report
		expected Status
	}{
		{
			name:     "found",
			report:   Report{Outcome: OutcomeFound, Readers: []string{"a", "b", "c"}},
			expected: Status{Available: true, Message: "Found 3 NFC reader(s)"},
		},
		{
			name:     "found without readers renders as empty",
			report:   Report{Outcome: OutcomeFound},
			expected: Status{Available: false, Message: MessageNoReaders},
		},
		{
			name:     "empty",
			report:   Report{Outcome: OutcomeEmpty},
			expected: Status{Available: false, Message: "No NFC readers detected"},
		},
		{
			name:     "session error",
			report:   Report{Outcome: OutcomeSessionError, Err: NewSessionError(errors.New("no service"))},
			expected: Status{Available: false, Message: "Failed to establish NFC context: no service"},
		},
		{
			name:     "enumeration error",
			report:   Report{Outcome: OutcomeEnumerationError, Err: NewEnumerationError(errors.New("gone"))},
			expected: Status{Available: false, Message: "Failed to list readers: gone"},
		},
		{
			name:     "session error without cause",
			report:   Report{Outcome: OutcomeSessionError},
			expected: Status{Available: false, Message: "Failed to establish NFC context: unknown error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.report.Status(); got != tt.expected {
				t.Errorf("Status() = %+v, want %+v", got, tt.expected)
			}
			if tt.report.Available() != tt.expected.Available {
				t.Errorf("Available() = %v, want %v", tt.report.Available(), tt.expected.Available)
			}
		})
	}
}

func TestStatus_JSON(t *testing.T) {
	data, err := json.Marshal(Status{Available: true, Message: "Found 1 NFC reader(s)"})
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	want := `{"available":true,"message":"Found 1 NFC reader(s)"}`
	if string(data) != want {
		t.Errorf("Marshal = %s, want %s", data, want)
	}
}

func TestOutcome_String(t *testing.T) {
	names := map[Outcome]string{
		OutcomeSessionError:     "session_error",
		OutcomeEnumerationError: "enumeration_error",
		OutcomeEmpty:            "empty",
		OutcomeFound:            "found",
		Outcome(42):             "Outcome(42)",
	}
	for outcome, want := range names {
		if got := outcome.String(); got != want {
			t.Errorf("Outcome(%d).String() = %q, want %q", int(outcome), got, want)
		}
	}
}
