package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	outputDirPerm  = 0o755
	outputFilePerm = 0o644
)

// writeFileAtomic writes content to dir/name through a temp file in the same
// directory followed by a rename. The temp file is removed on failure.
func writeFileAtomic(dir, name string, content []byte) (string, error) {
	fullPath := filepath.Join(dir, name)

	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve output dir: %w", err)
	}
	absFile, err := filepath.Abs(fullPath)
	if err != nil {
		return "", fmt.Errorf("resolve output file: %w", err)
	}
	if !strings.HasPrefix(absFile, absDir+string(filepath.Separator)) {
		return "", fmt.Errorf("path escape detected: %q resolves outside output directory", name)
	}

	tmp, err := os.CreateTemp(dir, "."+name+".*.tmp")
	if err != nil {
		return "", fmt.Errorf("create temp file for %s: %w", name, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return "", fmt.Errorf("write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("close %s: %w", name, err)
	}
	if err := os.Chmod(tmpName, outputFilePerm); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("chmod %s: %w", name, err)
	}
	if err := os.Rename(tmpName, fullPath); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("rename %s: %w", name, err)
	}
	return fullPath, nil
}

// writeEntities renders every table of schema into outputDir and returns the
// written paths in table order. onWrite is called after each file. A table
// that cannot be written does not stop the others; the failures are
// returned joined.
func writeEntities(schema *Schema, outputDir string, opts EmitOptions, onWrite func(path string)) ([]string, error) {
	if err := os.MkdirAll(outputDir, outputDirPerm); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	var written []string
	var errs []error
	for i := range schema.Tables {
		t := &schema.Tables[i]
		if t.ClassName == "" {
			// Reported by collectJavaNameWarnings.
			continue
		}
		src := renderEntity(schema, t, opts)
		path, err := writeFileAtomic(outputDir, entityFileName(*t), []byte(src))
		if err != nil {
			errs = append(errs, fmt.Errorf("table %s: %w", t.SourceName, err))
			continue
		}
		written = append(written, path)
		if onWrite != nil {
			onWrite(path)
		}
	}
	return written, errors.Join(errs...)
}
