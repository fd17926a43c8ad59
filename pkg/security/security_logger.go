package security

import (
	"context"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// EventType represents the type of security event
type EventType string

const (
	EventOTPRequested      EventType = "otp_requested"
	EventOTPDenied         EventType = "otp_denied"
	EventOTPFailed         EventType = "otp_failed"
	EventOTPLocked         EventType = "otp_locked"
	EventAdminLoginSuccess EventType = "admin_login_success"
	EventTokenRejected     EventType = "token_rejected"
	EventAdminLogout       EventType = "admin_logout"
)

// SecurityEvent represents a security-related event to be logged
type SecurityEvent struct {
	Event     EventType
	Email     string // masked before it is written
	IP        string
	UserAgent string
	RequestID string
	Details   map[string]interface{}
}

// LoggerConfig configures the security logger.
type LoggerConfig struct {
	ServiceName string
	Environment string
	// FilePath, when set, also writes JSON lines to a rotated file.
	FilePath string
}

// SecurityLogger provides structured logging for security events
type SecurityLogger struct {
	zapLogger   *zap.Logger
	service     string
	environment string
	persist     PersistFunc
}

// NewSecurityLogger builds a zap logger writing JSON to stdout and, optionally, a lumberjack file.
func NewSecurityLogger(cfg LoggerConfig) *SecurityLogger {
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "timestamp"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoder := zapcore.NewJSONEncoder(encCfg)

	cores := []zapcore.Core{
		zapcore.NewCore(encoder, zapcore.AddSync(os.Stdout), zap.InfoLevel),
	}
	if cfg.FilePath != "" {
		rotating := zapcore.AddSync(&lumberjack.Logger{
			Filename:   cfg.FilePath,
			MaxSize:    50, // megabytes
			MaxBackups: 5,
			MaxAge:     90, // days
			Compress:   true,
		})
		cores = append(cores, zapcore.NewCore(encoder, rotating, zap.InfoLevel))
	}

	logger := zap.New(zapcore.NewTee(cores...), zap.AddCaller()).With(
		zap.String("service", cfg.ServiceName),
		zap.String("env", cfg.Environment),
	)
	return &SecurityLogger{zapLogger: logger, service: cfg.ServiceName, environment: cfg.Environment}
}

// WithPersist also hands every event to fn, off the request path.
func (sl *SecurityLogger) WithPersist(fn PersistFunc) *SecurityLogger {
	sl.persist = fn
	return sl
}

// NewNopLogger discards every event. Used in tests.
func NewNopLogger() *SecurityLogger {
	return &SecurityLogger{zapLogger: zap.NewNop()}
}

// Log logs a security event. Missing request fields are filled from ctx.
func (sl *SecurityLogger) Log(ctx context.Context, event SecurityEvent) {
	meta := MetaFromContext(ctx)
	if event.IP == "" {
		event.IP = meta.IP
	}
	if event.UserAgent == "" {
		event.UserAgent = meta.UserAgent
	}
	if event.RequestID == "" {
		event.RequestID = meta.RequestID
	}

	severity := GetSeverity(event.Event)

	fields := []zap.Field{
		zap.String("event", string(event.Event)),
		zap.String("severity", string(severity)),
	}
	if event.Email != "" {
		fields = append(fields, zap.String("email", MaskEmail(event.Email)))
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
		fields = append(fields, zap.Any("details", event.Details))
	}

	sl.zapLogger.Log(severity.zapLevel(), string(event.Event), fields...)

	if sl.persist != nil {
		var masked string
		if event.Email != "" {
			masked = MaskEmail(event.Email)
		}
		go sl.store(StoredEvent{
			Event:       event.Event,
			Severity:    severity,
			Service:     sl.service,
			Environment: sl.environment,
			Email:       masked,
			IP:          event.IP,
			UserAgent:   event.UserAgent,
			RequestID:   event.RequestID,
			Details:     event.Details,
			Timestamp:   time.Now().UTC(),
		})
	}
}

func (sl *SecurityLogger) store(event StoredEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := sl.persist(ctx, event); err != nil {
		sl.zapLogger.Warn("security event not persisted", zap.String("event", string(event.Event)), zap.Error(err))
	}
}

// Sync flushes any buffered log entries
func (sl *SecurityLogger) Sync() error {
	return sl.zapLogger.Sync()
}

// MaskEmail masks an email for logging (e.g., "j***@example.com")
func MaskEmail(email string) string {
	at := strings.IndexByte(email, '@')
	switch {
	case len(email) < 3:
		return "***"
	case at <= 1:
		return "***" + email[max(at, 0):]
	}
	return email[:1] + "***" + email[at:]
}
