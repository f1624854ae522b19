package main

import (
	"errors"
	"fmt"
	"strings"
)

// parseSchema runs the full front end over raw DDL: comment stripping,
// statement location, table parsing and linking. Problems that only affect a
// single statement, item or reference are returned as warnings.
func parseSchema(sql string, typeMap TypeMappingConfig) (*Schema, []string) {
	cleaned := cleanSQL(sql)
	sources, warnings := locateTables(cleaned)

	schema := &Schema{Ignored: classifyStatements(cleaned)}
	seen := make(map[string]bool, len(sources))
	for _, src := range sources {
		if seen[src.Name] {
			warnings = append(warnings, fmt.Sprintf("table %s defined more than once; keeping the first definition", src.Name))
			continue
		}
		seen[src.Name] = true

		t, tw := parseTable(src, typeMap)
		warnings = append(warnings, tw...)
		if len(t.Columns) == 0 {
			warnings = append(warnings, fmt.Sprintf("table %s has no parseable columns", t.SourceName))
		}
		schema.Tables = append(schema.Tables, t)
	}

	warnings = append(warnings, linkSchema(schema)...)
	return schema, warnings
}

// parseTable splits a table body into items and builds the Table.
// Column-level PRIMARY KEY flags are set here; table-level PRIMARY KEY
// constraints are only recorded and applied by linkSchema.
func parseTable(src tableSource, typeMap TypeMappingConfig) (Table, []string) {
	t := Table{
		SourceName: src.Name,
		ClassName:  javaClassName(src.Name),
	}
	var warnings []string

	for _, item := range splitTopLevel(src.Body, ',') {
		toks, err := tokenize(item)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("table %s: cannot parse %q: %v", t.SourceName, item, err))
			continue
		}
		if len(toks) == 0 {
			continue
		}

		if isConstraintItem(toks) {
			w, err := parseConstraint(&t, toks)
			if err != nil {
				warnings = append(warnings, fmt.Sprintf("table %s: cannot parse constraint %q: %v", t.SourceName, item, err))
			}
			if w != "" {
				warnings = append(warnings, fmt.Sprintf("table %s: %s", t.SourceName, w))
			}
			continue
		}

		col, fk, err := parseColumn(item, toks, typeMap)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("table %s: cannot parse column definition %q: %v", t.SourceName, item, err))
			continue
		}
		t.Columns = append(t.Columns, col)
		if fk != nil {
			t.ForeignKeys = append(t.ForeignKeys, *fk)
		}
	}
	return t, warnings
}

// isConstraintItem reports whether an item is a table-level constraint or
// index definition rather than a column.
func isConstraintItem(toks []token) bool {
	first := toks[0]
	if first.Kind != tokWord {
		return false
	}
	switch first.upper() {
	case "KEY", "INDEX", "UNIQUE", "CONSTRAINT", "CHECK", "FULLTEXT", "SPATIAL":
		return true
	case "PRIMARY", "FOREIGN":
		return len(toks) > 1 && toks[1].is("KEY")
	}
	return false
}

// parseConstraint records PRIMARY KEY and FOREIGN KEY constraints on t and
// ignores every other constraint kind. The returned string is a non-fatal
// warning.
func parseConstraint(t *Table, toks []token) (string, error) {
	if toks[0].is("CONSTRAINT") {
		toks = toks[1:]
		// Named constraint: CONSTRAINT fk_name FOREIGN KEY ...
		if len(toks) > 0 && !toks[0].is("PRIMARY") && !toks[0].is("FOREIGN") &&
			!toks[0].is("UNIQUE") && !toks[0].is("CHECK") {
			toks = toks[1:]
		}
		if len(toks) == 0 {
			return "", errors.New("constraint has no body")
		}
	}

	switch {
	case len(toks) > 1 && toks[0].is("PRIMARY") && toks[1].is("KEY"):
		group, _, ok := nextGroup(toks, 2)
		if !ok {
			return "", errors.New("PRIMARY KEY without column list")
		}
		cols := identList(group.inner())
		if len(cols) == 0 {
			return "", errors.New("PRIMARY KEY with empty column list")
		}
		var warning string
		if len(t.PrimaryKey) > 0 {
			warning = "multiple PRIMARY KEY constraints; merging their columns"
		}
		for _, c := range cols {
			if !containsString(t.PrimaryKey, c) {
				t.PrimaryKey = append(t.PrimaryKey, c)
			}
		}
		return warning, nil

	case len(toks) > 1 && toks[0].is("FOREIGN") && toks[1].is("KEY"):
		return parseForeignKey(t, toks)
	}
	return "", nil
}

// parseForeignKey handles FOREIGN KEY [name] (cols) REFERENCES table (cols) [ON ...].
func parseForeignKey(t *Table, toks []token) (string, error) {
	local, i, ok := nextGroup(toks, 2)
	if !ok {
		return "", errors.New("FOREIGN KEY without column list")
	}
	i++
	if i >= len(toks) || !toks[i].is("REFERENCES") {
		return "", errors.New("FOREIGN KEY without REFERENCES clause")
	}
	i++
	if i >= len(toks) || toks[i].Kind != tokWord {
		return "", errors.New("REFERENCES without table name")
	}
	refTable := lastIdentPart(toks[i].Text)
	var refCols []string
	if i+1 < len(toks) && toks[i+1].Kind == tokGroup {
		refCols = identList(toks[i+1].inner())
	}

	localCols := identList(local.inner())
	if len(localCols) == 0 {
		return "", errors.New("FOREIGN KEY with empty column list")
	}
	if len(localCols) > 1 {
		return fmt.Sprintf("composite foreign key (%s) -> %s is not supported; skipped",
			strings.Join(localCols, ", "), refTable), nil
	}

	fk := ForeignKey{Column: localCols[0], RefTable: refTable, Target: -1}
	if len(refCols) > 0 {
		fk.RefColumn = refCols[0]
	}
	t.ForeignKeys = append(t.ForeignKeys, fk)
	return "", nil
}

// nextGroup returns the first parenthesised group at or after index from,
// allowing index names and USING/CLUSTERED words before it.
func nextGroup(toks []token, from int) (token, int, bool) {
	for i := from; i < len(toks) && i < from+4; i++ {
		if toks[i].Kind == tokGroup {
			return toks[i], i, true
		}
		if toks[i].is("REFERENCES") {
			break
		}
	}
	return token{}, 0, false
}

// typeModifiers are words that qualify a numeric type without changing its
// base keyword.
var typeModifiers = map[string]bool{"UNSIGNED": true, "SIGNED": true, "ZEROFILL": true}

// attributeKeywords end the type of a column definition.
var attributeKeywords = map[string]bool{
	"NOT": true, "NULL": true, "AUTO_INCREMENT": true, "AUTOINCREMENT": true, "IDENTITY": true,
	"PRIMARY": true, "KEY": true, "DEFAULT": true, "COMMENT": true, "REFERENCES": true,
	"UNIQUE": true, "CHECK": true, "COLLATE": true, "CHARSET": true, "GENERATED": true,
	"AS": true, "ON": true, "CONSTRAINT": true,
}

// parseColumn parses "name type [attributes...]". Attributes may appear in
// any order. An inline REFERENCES clause yields a foreign key.
func parseColumn(item string, toks []token, typeMap TypeMappingConfig) (Column, *ForeignKey, error) {
	nameTok := toks[0]
	if nameTok.Kind != tokWord || !(isBareIdent(nameTok.Text) || isQuotedIdent(nameTok.Text)) {
		return Column{}, nil, fmt.Errorf("invalid column name %q", nameTok.Text)
	}
	col := Column{
		SourceName: unquoteIdent(nameTok.Text),
		Nullable:   true,
	}
	col.FieldName = javaFieldName(col.SourceName)

	// Type: everything up to the first attribute keyword.
	k := 1
	for k < len(toks) && !endsType(toks, k) {
		k++
	}
	if k == 1 || toks[1].Kind != tokWord {
		return Column{}, nil, errors.New("missing column type")
	}
	typeToks := toks[1:k]
	if err := applyType(&col, item, typeToks); err != nil {
		return Column{}, nil, err
	}

	var fk *ForeignKey
	for k < len(toks) {
		tok := toks[k]
		switch tok.upper() {
		case "NOT":
			if k+1 < len(toks) && toks[k+1].is("NULL") {
				col.Nullable = false
				k += 2
				continue
			}
			k++
		case "NULL":
			col.Nullable = true
			k++
		case "AUTO_INCREMENT", "AUTOINCREMENT":
			col.AutoIncrement = true
			k++
		case "IDENTITY":
			col.AutoIncrement = true
			k = skipGroup(toks, k+1)
		case "PRIMARY":
			if k+1 < len(toks) && toks[k+1].is("KEY") {
				col.PrimaryKey = true
				k += 2
				continue
			}
			k++
		case "KEY":
			col.PrimaryKey = true
			k++
		case "UNIQUE":
			k++
			if k < len(toks) && toks[k].is("KEY") {
				k++
			}
		case "DEFAULT":
			if k+1 >= len(toks) {
				return Column{}, nil, errors.New("DEFAULT without value")
			}
			v := toks[k+1].Text
			k += 2
			// Function call defaults: now(), CURRENT_TIMESTAMP(6)
			if k < len(toks) && toks[k].Kind == tokGroup && toks[k].Start == toks[k-1].End {
				v += toks[k].Text
				k++
			}
			col.Default = &v
		case "COMMENT":
			if k+1 >= len(toks) {
				return Column{}, nil, errors.New("COMMENT without text")
			}
			col.Comment = unquoteLiteral(toks[k+1].Text)
			k += 2
		case "REFERENCES":
			if k+1 >= len(toks) || toks[k+1].Kind != tokWord {
				return Column{}, nil, errors.New("REFERENCES without table name")
			}
			fk = &ForeignKey{Column: col.SourceName, RefTable: lastIdentPart(toks[k+1].Text), Target: -1}
			k += 2
			if k < len(toks) && toks[k].Kind == tokGroup {
				if refCols := identList(toks[k].inner()); len(refCols) > 0 {
					fk.RefColumn = refCols[0]
				}
				k++
			}
		case "ON":
			k = skipReferentialAction(toks, k)
		case "CHECK":
			k = skipGroup(toks, k+1)
		case "COLLATE", "CHARSET", "CONSTRAINT":
			k += 2
		case "CHARACTER":
			k += 3 // CHARACTER SET name
		case "GENERATED":
			k = parseGenerated(&col, toks, k)
		case "AS":
			col.Generated = true
			k = skipGroup(toks, k+1)
		default:
			// STORED, VIRTUAL, ROWGUIDCOL, SPARSE and other tolerated noise.
			k++
		}
	}

	javaType, _ := mapType(col, typeMap)
	col.JavaType = javaType
	return col, fk, nil
}

// endsType reports whether toks[k] starts the attribute list of a column.
func endsType(toks []token, k int) bool {
	tok := toks[k]
	if tok.Kind != tokWord {
		return false
	}
	up := tok.upper()
	if up == "CHARACTER" {
		return k+1 < len(toks) && toks[k+1].is("SET") && k > 1
	}
	return attributeKeywords[up]
}

// applyType fills the type fields of col from the type tokens.
func applyType(col *Column, item string, typeToks []token) error {
	col.ColumnType = item[typeToks[0].Start:typeToks[len(typeToks)-1].End]

	var base []string
	var args *token
	for i := range typeToks {
		tok := typeToks[i]
		if tok.Kind == tokGroup {
			if args == nil && len(base) > 0 {
				args = &typeToks[i]
			}
			continue
		}
		up := tok.upper()
		if typeModifiers[up] {
			if up == "UNSIGNED" {
				col.Unsigned = true
			}
			continue
		}
		if args == nil {
			base = append(base, up)
		}
	}
	if len(base) == 0 {
		return fmt.Errorf("missing base type in %q", col.ColumnType)
	}
	col.SQLType = strings.Join(base, " ")

	if args != nil {
		inner := args.inner()
		if isEnumType(col.SQLType) {
			values, err := parseEnumValues(inner)
			if err != nil {
				return err
			}
			col.EnumValues = values
		}
		col.TypeArgs = splitTopLevel(inner, ',')
	}
	return nil
}

// parseGenerated handles GENERATED ALWAYS AS (expr) [STORED|VIRTUAL] and
// GENERATED {ALWAYS|BY DEFAULT} AS IDENTITY [(options)].
func parseGenerated(col *Column, toks []token, k int) int {
	k++
words:
	for k < len(toks) && toks[k].Kind == tokWord {
		switch toks[k].upper() {
		case "ALWAYS", "BY", "DEFAULT", "AS":
			k++
		case "IDENTITY":
			col.AutoIncrement = true
			return skipGroup(toks, k+1)
		default:
			break words
		}
	}
	col.Generated = true
	return skipGroup(toks, k)
}

// skipReferentialAction skips ON {UPDATE|DELETE} action, where action is one
// or two words (SET NULL, NO ACTION) or an expression such as
// CURRENT_TIMESTAMP(3).
func skipReferentialAction(toks []token, k int) int {
	k += 2
	if k < len(toks) && (toks[k].is("SET") || toks[k].is("NO")) {
		k++
	}
	k++
	if k < len(toks) && toks[k].Kind == tokGroup && toks[k].Start == toks[k-1].End {
		k++
	}
	return k
}

// skipGroup returns the index after an optional group token at k.
func skipGroup(toks []token, k int) int {
	if k < len(toks) && toks[k].Kind == tokGroup {
		return k + 1
	}
	return k
}

// unquoteLiteral strips single or double quotes from a SQL string literal and
// resolves doubled-quote escapes. Unquoted text is returned as is.
func unquoteLiteral(s string) string {
	if len(s) >= 2 && (s[0] == '\'' || s[0] == '"') && s[len(s)-1] == s[0] {
		q := string(s[0])
		return strings.ReplaceAll(s[1:len(s)-1], q+q, q)
	}
	return s
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
