package utils

import (
	"github.com/getsentry/sentry-go"
	"github.com/sirupsen/logrus"
)

// InitSentry initializes Sentry for error tracking. It reports whether
// Sentry is active; an empty DSN disables it.
func InitSentry(dsn, environment string) bool {
	if dsn == "" {
		logrus.Info("SENTRY_DSN not set, error tracking disabled")
		return false
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:              dsn,
		Environment:      environment,
		EnableTracing:    true,
		TracesSampleRate: 1.0,
		AttachStacktrace: true,
	})
	if err != nil {
		logrus.Errorf("sentry.Init: %s", err)
		return false
	}

	logrus.Infof("Sentry initialized for environment %s", environment)
	return true
}
