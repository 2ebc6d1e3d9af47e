package logging

import (
	"testing"

	"github.com/sirupsen/logrus"
)

func TestSetupUsesJSONOutsideDevelopment(t *testing.T) {
	t.Cleanup(func() { Setup("development", "info") })

	Setup("production", "debug")

	if _, ok := logrus.StandardLogger().Formatter.(*logrus.JSONFormatter); !ok {
		t.Fatalf("expected JSON formatter, got %T", logrus.StandardLogger().Formatter)
	}
	if logrus.GetLevel() != logrus.DebugLevel {
		t.Fatalf("expected debug level, got %s", logrus.GetLevel())
	}
}

func TestSetupFallsBackToInfoForUnknownLevel(t *testing.T) {
	Setup("development", "chatty")

	if _, ok := logrus.StandardLogger().Formatter.(*logrus.TextFormatter); !ok {
		t.Fatalf("expected text formatter, got %T", logrus.StandardLogger().Formatter)
	}
	if logrus.GetLevel() != logrus.InfoLevel {
		t.Fatalf("expected info level, got %s", logrus.GetLevel())
	}
}
