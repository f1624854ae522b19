package main

import "fmt"

// collectUnknownTypeWarnings reports columns whose SQL type has no Java
// mapping and therefore fell back to String.
func collectUnknownTypeWarnings(schema *Schema, typeMap TypeMappingConfig) []string {
	if schema == nil {
		return nil
	}

	var warnings []string
	for _, t := range schema.Tables {
		for _, col := range t.Columns {
			if _, ok := mapType(col, typeMap); !ok {
				warnings = append(warnings, fmt.Sprintf(
					"%s.%s (%s): unknown SQL type %s, mapped to %s",
					t.SourceName, col.SourceName, col.ColumnType, col.SQLType, javaTextType,
				))
			}
		}
	}
	return warnings
}
