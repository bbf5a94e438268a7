package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"tsugumi/misc"
)

func TestLoggingPrepareFile(t *testing.T) {
	dir := t.TempDir()
	dest := filepath.Join(dir, "final.log")

	conf := &LoggingConfig{
		FileLogger:    LoggerConfig{Level: "debug", Destination: dest, Mode: "overwrite"},
		ConsoleLogger: LoggerConfig{Level: "none"},
	}

	log, err := conf.Prepare(nil)
	if err != nil {
		t.Fatalf("unable to prepare logger: %v", err)
	}
	log.Debug("recorded entry")
	_ = log.Sync()

	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("unable to read log file: %v", err)
	}
	if !strings.Contains(string(data), "recorded entry") {
		t.Error("debug entry did not reach the log file")
	}

	if _, err := os.Stat(filepath.Join(dir, misc.GetAppName()+"-panic.log")); err != nil {
		t.Errorf("crash capture file was not created: %v", err)
	}
}

func TestLoggingPrepareNone(t *testing.T) {
	conf := &LoggingConfig{
		FileLogger:    LoggerConfig{Level: "none"},
		ConsoleLogger: LoggerConfig{Level: "none"},
	}

	log, err := conf.Prepare(nil)
	if err != nil {
		t.Fatalf("unable to prepare logger: %v", err)
	}
	// everything is discarded, must not touch the filesystem
	log.Info("dropped entry")
}
