package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestIsColorTerminal_NonFile(t *testing.T) {
	if isColorTerminal(&bytes.Buffer{}) {
		t.Error("a buffer is not a colour terminal")
	}
}

func TestReporter_PlainOutput(t *testing.T) {
	var stdout, stderr bytes.Buffer
	r := newReporter(&stdout, &stderr)

	r.infof("Table found: %s (%d columns)", "users", 2)
	r.generated("/out/Users.java")
	r.warnings([]string{"first", "second"})
	r.errorf("boom: %d", 42)

	wantOut := "Table found: users (2 columns)\nGenerated: /out/Users.java\n"
	if stdout.String() != wantOut {
		t.Errorf("stdout = %q, want %q", stdout.String(), wantOut)
	}
	wantErr := "WARN: first\nWARN: second\nERROR: boom: 42\n"
	if stderr.String() != wantErr {
		t.Errorf("stderr = %q, want %q", stderr.String(), wantErr)
	}
	if strings.Contains(stdout.String()+stderr.String(), "\x1b[") {
		t.Error("escape sequences written to a non-terminal")
	}
}
