package security

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// EventType represents the type of security event
type EventType string

const (
	EventRateLimitTriggered EventType = "rate_limit_triggered"
	EventValidationFailed   EventType = "validation_failed"
	EventRelayFailure       EventType = "relay_failure"
	EventCSRFViolation      EventType = "csrf_violation"
	EventServerError        EventType = "server_error"
)

// SecurityEvent represents a security-related event to be logged
type SecurityEvent struct {
	Timestamp    time.Time              `json:"timestamp"`
	Service      string                 `json:"service"`
	Environment  string                 `json:"env"`
	Level        string                 `json:"level"`
	Severity     Severity               `json:"severity"`
	Event        EventType              `json:"event"`
	SubjectType  string                 `json:"subject_type,omitempty"`  // "email", "ip", "visitor"
	SubjectValue string                 `json:"subject_value,omitempty"` // Masked or hashed for PII
	IP           string                 `json:"ip,omitempty"`
	UserAgent    string                 `json:"user_agent,omitempty"`
	RequestID    string                 `json:"request_id,omitempty"`
	Details      map[string]interface{} `json:"details,omitempty"`
}

// SecurityLogger provides structured logging for security events
type SecurityLogger struct {
	zapLogger   *zap.Logger
	serviceName string
	environment string
}

var (
	defaultLogger *SecurityLogger
	defaultMu     sync.Mutex
)

// ServiceName tags every security event emitted by the site.
const ServiceName = "tracefield-site"

// InitSecurityLogger initializes the security logger with Zap
func InitSecurityLogger(serviceName, environment string) *SecurityLogger {
	// Create production-ready Zap config
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.EncoderConfig.LevelKey = "level"
	config.EncoderConfig.MessageKey = "message"

	// Set output to stdout for container environments
	config.OutputPaths = []string{"stdout"}
	config.ErrorOutputPaths = []string{"stderr"}

	logger, err := config.Build(
		zap.AddCaller(),
		zap.AddStacktrace(zapcore.ErrorLevel),
	)
	if err != nil {
		// Fallback to a basic logger if config fails
		logger, _ = zap.NewProduction()
	}

	sl := NewSecurityLogger(logger, serviceName, environment)

	defaultMu.Lock()
	defaultLogger = sl
	defaultMu.Unlock()
	return sl
}

// NewSecurityLogger wraps an existing zap logger without touching the default.
func NewSecurityLogger(logger *zap.Logger, serviceName, environment string) *SecurityLogger {
	return &SecurityLogger{
		zapLogger:   logger,
		serviceName: serviceName,
		environment: environment,
	}
}

// DefaultLogger returns the default security logger instance
func DefaultLogger() *SecurityLogger {
	defaultMu.Lock()
	sl := defaultLogger
	defaultMu.Unlock()
	if sl == nil {
		// Create a basic logger if not initialized
		return InitSecurityLogger(ServiceName, getEnvironment())
	}
	return sl
}

// Log logs a security event
func (sl *SecurityLogger) Log(ctx context.Context, event SecurityEvent) {
	if sl == nil {
		return
	}

	// Fill in defaults
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	event.Service = sl.serviceName
	event.Environment = sl.environment
	event.Severity = GetSeverity(event.Event)

	// Determine log level based on severity
	level := zapcore.WarnLevel
	switch event.Severity {
	case SeverityINFO:
		level = zapcore.InfoLevel
	case SeverityHIGH:
		level = zapcore.ErrorLevel
	}
	event.Level = level.String()

	// Build Zap fields
	fields := []zap.Field{
		zap.String("service", event.Service),
		zap.String("env", event.Environment),
		zap.String("event", string(event.Event)),
		zap.String("severity", string(event.Severity)),
	}
	if event.SubjectType != "" {
		fields = append(fields, zap.String("subject_type", event.SubjectType))
	}
	if event.SubjectValue != "" {
		fields = append(fields, zap.String("subject_value", event.SubjectValue))
	}
	if event.IP != "" {
		fields = append(fields, zap.String("ip", event.IP))
	}
	if event.UserAgent != "" {
		fields = append(fields, zap.String("user_agent", event.UserAgent))
	}
	if event.RequestID != "" {
		fields = append(fields, zap.String("request_id", event.RequestID))
	}
	if len(event.Details) > 0 {
		detailsJSON, _ := json.Marshal(event.Details)
		fields = append(fields, zap.String("details", string(detailsJSON)))
	}

	sl.zapLogger.Log(level, string(event.Event), fields...)
	if IsHighOrAbove(event.Event) {
		_ = sl.zapLogger.Sync()
	}
}

// LogRateLimitTriggered logs when rate limiting is triggered
func (sl *SecurityLogger) LogRateLimitTriggered(ctx context.Context, ip, userAgent, requestID, endpoint string) {
	sl.Log(ctx, SecurityEvent{
		Event:        EventRateLimitTriggered,
		SubjectType:  "ip",
		SubjectValue: ip,
		IP:           ip,
		UserAgent:    userAgent,
		RequestID:    requestID,
		Details:      map[string]interface{}{"endpoint": endpoint},
	})
}

// LogValidationFailed logs a rejected contact form, listing only field names
func (sl *SecurityLogger) LogValidationFailed(ctx context.Context, ip, requestID string, fields []string) {
	sorted := append([]string(nil), fields...)
	sort.Strings(sorted)
	sl.Log(ctx, SecurityEvent{
		Event:     EventValidationFailed,
		IP:        ip,
		RequestID: requestID,
		Details:   map[string]interface{}{"fields": strings.Join(sorted, ",")},
	})
}

// LogRelayFailure logs a contact inquiry the relay did not accept
func (sl *SecurityLogger) LogRelayFailure(ctx context.Context, cause string, statusCode int, email string) {
	details := map[string]interface{}{"cause": cause, "email_hash": HashValue(email)}
	if statusCode != 0 {
		details["status_code"] = statusCode
	}
	sl.Log(ctx, SecurityEvent{
		Event:        EventRelayFailure,
		SubjectType:  "email",
		SubjectValue: MaskEmail(email),
		Details:      details,
	})
}

// LogCSRFViolation logs a state-changing request with a bad CSRF token
func (sl *SecurityLogger) LogCSRFViolation(ctx context.Context, ip, userAgent, requestID, path string) {
	sl.Log(ctx, SecurityEvent{
		Event:     EventCSRFViolation,
		IP:        ip,
		UserAgent: userAgent,
		RequestID: requestID,
		Details:   map[string]interface{}{"path": path},
	})
}

// Sync flushes any buffered log entries
func (sl *SecurityLogger) Sync() error {
	return sl.zapLogger.Sync()
}

// --- Helper Functions ---

// MaskEmail masks an email for logging (e.g., "j***@example.com")
func MaskEmail(email string) string {
	if len(email) < 3 {
		return "***"
	}
	atIndex := strings.IndexByte(email, '@')
	if atIndex <= 1 {
		return "***" + email[1:]
	}
	return string(email[0]) + "***" + email[atIndex:]
}

// HashValue creates a SHA256 hash of a value (for logging without PII)
func HashValue(value string) string {
	hash := sha256.Sum256([]byte(value))
	return hex.EncodeToString(hash[:8]) // First 16 chars of hex
}

// getEnvironment determines the current environment
func getEnvironment() string {
	env := os.Getenv("GIN_MODE")
	if env == "release" {
		return "production"
	}
	return "development"
}
