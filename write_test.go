package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriteFileAtomic(t *testing.T) {
	dir := t.TempDir()

	path, err := writeFileAtomic(dir, "Users.java", []byte("first"))
	if err != nil {
		t.Fatalf("writeFileAtomic() error: %v", err)
	}
	if path != filepath.Join(dir, "Users.java") {
		t.Errorf("path = %q", path)
	}

	// A second write replaces the file.
	if _, err := writeFileAtomic(dir, "Users.java", []byte("second")); err != nil {
		t.Fatalf("writeFileAtomic() error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "second" {
		t.Errorf("content = %q, want %q", data, "second")
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != outputFilePerm {
		t.Errorf("perm = %o, want %o", perm, outputFilePerm)
	}
	assertNoTempFiles(t, dir)
}

func TestWriteFileAtomic_PathEscape(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"../Evil.java", "."} {
		if _, err := writeFileAtomic(dir, name, []byte("x")); err == nil || !strings.Contains(err.Error(), "path escape") {
			t.Errorf("writeFileAtomic(%q) error = %v, want path escape", name, err)
		}
	}
	if _, err := os.Stat(filepath.Join(filepath.Dir(dir), "Evil.java")); !os.IsNotExist(err) {
		t.Error("file written outside the output directory")
	}
}

func TestWriteFileAtomic_MissingDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "missing")
	if _, err := writeFileAtomic(dir, "A.java", []byte("x")); err == nil {
		t.Fatal("expected error for missing directory")
	}
}

func TestWriteEntities(t *testing.T) {
	schema, _ := mustParse(t, usersAndOrdersDDL)
	out := filepath.Join(t.TempDir(), "nested", "entities")

	var reported []string
	written, err := writeEntities(schema, out, defaultEmitOptions, func(p string) { reported = append(reported, p) })
	if err != nil {
		t.Fatalf("writeEntities() error: %v", err)
	}

	want := make([]string, len(schema.Tables))
	for i, tbl := range schema.Tables {
		want[i] = filepath.Join(out, tbl.ClassName+".java")
	}
	if strings.Join(written, "|") != strings.Join(want, "|") {
		t.Errorf("written = %v, want %v", written, want)
	}
	if strings.Join(reported, "|") != strings.Join(want, "|") {
		t.Errorf("reported = %v, want %v", reported, want)
	}

	for i := range schema.Tables {
		data, err := os.ReadFile(want[i])
		if err != nil {
			t.Fatal(err)
		}
		if got := renderEntity(schema, &schema.Tables[i], defaultEmitOptions); string(data) != got {
			t.Errorf("%s content differs from renderEntity", want[i])
		}
	}
	assertNoTempFiles(t, out)
}

func TestWriteEntities_OutputDirIsFile(t *testing.T) {
	schema, _ := mustParse(t, usersAndOrdersDDL)
	file := filepath.Join(t.TempDir(), "not-a-dir")
	if err := os.WriteFile(file, nil, 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := writeEntities(schema, file, defaultEmitOptions, nil); err == nil {
		t.Fatal("expected error when the output dir is a file")
	}
}

func TestWriteEntities_UnsafeTableNames(t *testing.T) {
	schema, _ := mustParse(t, "CREATE TABLE `a/b` (id INT); CREATE TABLE `--` (x INT); CREATE TABLE good (id INT);")
	out := t.TempDir()

	written, err := writeEntities(schema, out, defaultEmitOptions, nil)
	if err != nil {
		t.Fatalf("writeEntities() error: %v", err)
	}
	want := []string{filepath.Join(out, "AB.java"), filepath.Join(out, "Good.java")}
	if strings.Join(written, "|") != strings.Join(want, "|") {
		t.Errorf("written = %v, want %v", written, want)
	}
	entries, err := os.ReadDir(out)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Errorf("output dir has %d entries, want 2", len(entries))
	}
}

func TestWriteEntities_ContinuesAfterFailure(t *testing.T) {
	schema, _ := mustParse(t, usersAndOrdersDDL)
	out := t.TempDir()
	// A directory in place of Users.java makes the rename fail.
	if err := os.Mkdir(filepath.Join(out, "Users.java"), 0o755); err != nil {
		t.Fatal(err)
	}

	written, err := writeEntities(schema, out, defaultEmitOptions, nil)
	if err == nil || !strings.Contains(err.Error(), "table users") {
		t.Fatalf("error = %v, want failure for table users", err)
	}
	if len(written) != 1 || written[0] != filepath.Join(out, "Orders.java") {
		t.Errorf("written = %v, want only Orders.java", written)
	}
	assertNoTempFiles(t, out)
}

func assertNoTempFiles(t *testing.T, dir string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".tmp") {
			t.Errorf("temp file left behind: %s", e.Name())
		}
	}
}
