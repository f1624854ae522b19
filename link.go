package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"
)

// linkSchema resolves cross-table references and primary keys in place:
//   - table-level PRIMARY KEY names mark their columns; names that match no
//     column are reported and dropped, and inline PRIMARY KEY columns are
//     unioned into Table.PrimaryKey;
//   - foreign keys on unknown local columns are reported and dropped;
//   - foreign key targets are resolved to table indexes, unresolved targets
//     stay in the model with Target -1.
func linkSchema(schema *Schema) []string {
	var warnings []string

	byName := make(map[string]int, len(schema.Tables))
	byFold := make(map[string]int, len(schema.Tables))
	names := make([]string, 0, len(schema.Tables))
	for i, t := range schema.Tables {
		byName[t.SourceName] = i
		if _, dup := byFold[strings.ToLower(t.SourceName)]; !dup {
			byFold[strings.ToLower(t.SourceName)] = i
		}
		names = append(names, t.SourceName)
	}

	for ti := range schema.Tables {
		t := &schema.Tables[ti]
		warnings = append(warnings, markPrimaryKey(t)...)

		fks := t.ForeignKeys[:0]
		for _, fk := range t.ForeignKeys {
			if _, ok := t.Column(fk.Column); !ok {
				warnings = append(warnings, fmt.Sprintf(
					"table %s: foreign key column %s does not exist; skipped", t.SourceName, fk.Column))
				continue
			}

			fk.Target = -1
			if idx, ok := byName[fk.RefTable]; ok {
				fk.Target = idx
			} else if idx, ok := byFold[strings.ToLower(fk.RefTable)]; ok {
				fk.Target = idx
			} else {
				msg := fmt.Sprintf("table %s: foreign key %s references unknown table %s; relation omitted",
					t.SourceName, fk.Column, fk.RefTable)
				if s := suggestName(fk.RefTable, names); s != "" {
					msg += fmt.Sprintf(" (did you mean %s?)", s)
				}
				warnings = append(warnings, msg)
			}
			fks = append(fks, fk)
		}
		t.ForeignKeys = fks
	}
	return warnings
}

// markPrimaryKey applies the table-level primary key to the columns and
// rebuilds t.PrimaryKey so that every entry names an existing column.
func markPrimaryKey(t *Table) []string {
	var warnings []string
	var pk []string
	for _, name := range t.PrimaryKey {
		col, ok := t.Column(name)
		if !ok {
			warnings = append(warnings, fmt.Sprintf(
				"table %s: primary key column %s does not exist; ignored", t.SourceName, name))
			continue
		}
		col.PrimaryKey = true
		pk = append(pk, name)
	}
	for _, c := range t.Columns {
		if c.PrimaryKey && !containsString(pk, c.SourceName) {
			pk = append(pk, c.SourceName)
		}
	}
	t.PrimaryKey = pk
	return warnings
}

// suggestName returns the closest fuzzy match for name among candidates, or
// "" when nothing matches.
func suggestName(name string, candidates []string) string {
	if len(candidates) == 0 || name == "" {
		return ""
	}
	lower := make([]string, len(candidates))
	for i, c := range candidates {
		lower[i] = strings.ToLower(c)
	}

	matches := fuzzy.Find(strings.ToLower(name), lower)
	if len(matches) == 0 {
		return ""
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	return candidates[matches[0].Index]
}
