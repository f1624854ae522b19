package main

import (
	"fmt"
	"os"
	"path/filepath"
)

// loadSchema reads and parses a DDL file. The returned warnings cover parse
// problems, type fallbacks, naming issues and ignored statements.
func loadSchema(sqlFile string, typeMap TypeMappingConfig) (*Schema, []string, error) {
	data, err := os.ReadFile(sqlFile)
	if err != nil {
		return nil, nil, fmt.Errorf("read SQL file: %w", err)
	}

	schema, warnings := parseSchema(string(data), typeMap)
	warnings = append(warnings, collectUnknownTypeWarnings(schema, typeMap)...)
	warnings = append(warnings, collectGeneratedColumnWarnings(schema)...)
	warnings = append(warnings, collectJavaNameWarnings(schema)...)
	warnings = append(warnings, ignoredStatementWarnings(schema.Ignored)...)
	return schema, warnings, nil
}

// runGenerate parses sqlFile and writes one entity per table into
// cfg.OutputDir. It returns the written file paths, also when some tables
// failed to write.
func runGenerate(sqlFile string, cfg *GeneratorConfig, r *reporter) ([]string, error) {
	schema, warnings, err := loadSchema(sqlFile, cfg.TypeMapping)
	if err != nil {
		return nil, err
	}
	r.warnings(warnings)

	for _, t := range schema.Tables {
		r.infof("Table found: %s (%d columns)", t.SourceName, len(t.Columns))
	}

	opts := EmitOptions{
		Namespace:          cfg.Namespace,
		PersistencePackage: cfg.PersistencePackage,
	}
	files, writeErr := writeEntities(schema, cfg.OutputDir, opts, r.generated)

	outDir, err := filepath.Abs(cfg.OutputDir)
	if err != nil {
		outDir = cfg.OutputDir
	}
	r.infof("Generated %d entities in %s", len(files), outDir)
	return files, writeErr
}
