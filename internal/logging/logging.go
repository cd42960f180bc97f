// Package logging provides the structured per-instruction logger the
// processor and cmd/ctokens-verifierd use: a thin wrapper over logrus
// that attaches the fields a verifier operator actually wants to grep or
// alert on (instruction kind, mint, accounts, result) without tying the
// processor itself to logrus's API.
package logging

import (
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/mayacrypto/spl-c-tokens-prototype/pkg/types"
)

// Logger wraps a logrus.Logger configured for structured JSON output. A
// nil *Logger is valid everywhere it's accepted: every method on it is a
// no-op.
type Logger struct {
	base *logrus.Logger
}

// New returns a Logger writing JSON-formatted entries to stdout at the
// given level ("debug", "info", "warn", "error").
func New(level string) *Logger {
	base := logrus.New()
	base.SetOutput(os.Stdout)
	base.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: time.RFC3339Nano,
	})
	if parsed, err := logrus.ParseLevel(level); err == nil {
		base.SetLevel(parsed)
	}
	return &Logger{base: base}
}

// Instruction logs the outcome of processing one instruction.
func (l *Logger) Instruction(kind string, mint types.Pubkey, accounts []types.Pubkey, err error) {
	if l == nil {
		return
	}
	accountKeys := make([]string, len(accounts))
	for i, a := range accounts {
		accountKeys[i] = a.String()
	}

	fields := logrus.Fields{
		"instruction": kind,
		"mint":        mint.String(),
		"accounts":    accountKeys,
	}

	if err != nil {
		fields["error"] = err.Error()
		l.base.WithFields(fields).Warn("instruction rejected")
		return
	}
	l.base.WithFields(fields).Info("instruction processed")
}

// Info logs an informational message with arbitrary structured fields.
func (l *Logger) Info(message string, fields map[string]interface{}) {
	if l == nil {
		return
	}
	l.base.WithFields(logrus.Fields(fields)).Info(message)
}

// Error logs an error with arbitrary structured fields.
func (l *Logger) Error(message string, err error, fields map[string]interface{}) {
	if l == nil {
		return
	}
	if fields == nil {
		fields = make(map[string]interface{})
	}
	fields["error"] = err.Error()
	l.base.WithFields(logrus.Fields(fields)).Error(message)
}
