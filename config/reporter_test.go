package config

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestReport(t *testing.T) {
	dir := t.TempDir()

	stored := filepath.Join(dir, "stored.txt")
	if err := os.WriteFile(stored, []byte("stored content"), 0644); err != nil {
		t.Fatal(err)
	}

	conf := ReporterConfig{Destination: filepath.Join(dir, "report.zip")}
	rpt, err := conf.Prepare()
	if err != nil {
		t.Fatalf("unable to prepare report: %v", err)
	}
	if rpt.Name() == "" {
		t.Error("report has no name")
	}

	rpt.Store("stored.txt", stored)
	rpt.Store("missing.txt", filepath.Join(dir, "does-not-exist.txt"))
	rpt.StoreData("inline.txt", []byte("inline content"))

	if err := rpt.Close(); err != nil {
		t.Fatalf("unable to finalize report: %v", err)
	}

	r, err := zip.OpenReader(conf.Destination)
	if err != nil {
		t.Fatalf("unable to open report: %v", err)
	}
	defer r.Close()

	entries := make(map[string]string)
	for _, f := range r.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatal(err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatal(err)
		}
		entries[f.Name] = string(data)
	}

	if !strings.Contains(entries["MANIFEST"], "stored.txt") {
		t.Error("manifest does not list stored file")
	}
	if entries["stored.txt"] != "stored content" {
		t.Error("stored file content does not match")
	}
	if entries["inline.txt"] != "inline content" {
		t.Error("inline data content does not match")
	}
	if _, ok := entries["missing.txt"]; ok {
		t.Error("absent file ended up in the report")
	}
}

func TestReportNil(t *testing.T) {
	var rpt *Report
	rpt.Store("name", "path")
	rpt.StoreData("name", []byte("data"))
	if rpt.Name() != "" {
		t.Error("nil report has a name")
	}
	if err := rpt.Close(); err != nil {
		t.Errorf("nil report close failed: %v", err)
	}
}

func TestReportOverwritePanics(t *testing.T) {
	conf := ReporterConfig{Destination: filepath.Join(t.TempDir(), "report.zip")}
	rpt, err := conf.Prepare()
	if err != nil {
		t.Fatal(err)
	}
	defer rpt.Close()

	rpt.Store("name", "path")
	defer func() {
		if recover() == nil {
			t.Error("conflicting store did not panic")
		}
	}()
	rpt.Store("name", "other path")
}
