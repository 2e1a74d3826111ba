package security

// Severity represents the severity level of a security event
// This is derived from EventType, NOT user-provided
type Severity string

const (
	SeverityINFO   Severity = "INFO"
	SeverityMEDIUM Severity = "MEDIUM"
	SeverityWARN   Severity = "WARN"
	SeverityHIGH   Severity = "HIGH"
)

// EventSeverityMap defines the hard-coded severity for each event type
var EventSeverityMap = map[EventType]Severity{
	// MEDIUM - Notable but not urgent
	EventRelayFailure: SeverityMEDIUM,
	EventServerError:  SeverityMEDIUM,

	// WARN - Potential issues, monitor
	EventRateLimitTriggered: SeverityWARN,
	EventValidationFailed:   SeverityWARN,

	// HIGH - Active threats
	EventCSRFViolation: SeverityHIGH,
}

// GetSeverity returns the severity for an event type
// If the event type is not mapped, defaults to MEDIUM
func GetSeverity(eventType EventType) Severity {
	if severity, ok := EventSeverityMap[eventType]; ok {
		return severity
	}
	return SeverityMEDIUM
}

// IsHighOrAbove returns true if the event is HIGH severity
func IsHighOrAbove(eventType EventType) bool {
	return GetSeverity(eventType) == SeverityHIGH
}
