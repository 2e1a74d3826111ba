package domain

// SubmissionStatus is what the contact form shows for the current attempt.
type SubmissionStatus string

const (
	StatusIdle    SubmissionStatus = "idle"
	StatusPending SubmissionStatus = "pending"
	StatusSuccess SubmissionStatus = "success"
	StatusError   SubmissionStatus = "error"
)

// FailureCause keeps the reason a transmission failed. It is only logged;
// visitors always see the same generic error.
type FailureCause string

const (
	FailureNone    FailureCause = ""
	FailureStatus  FailureCause = "relay_status"
	FailureNetwork FailureCause = "relay_network"
)

// SubmissionOutcome is the terminal result of one Submit call.
type SubmissionOutcome struct {
	Status     SubmissionStatus
	Cause      FailureCause
	StatusCode int
	Err        error
}

// Succeeded reports whether the relay accepted the submission.
func (o SubmissionOutcome) Succeeded() bool {
	return o.Status == StatusSuccess
}
