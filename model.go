package main

// Column represents a single column parsed from a CREATE TABLE body.
type Column struct {
	SourceName    string
	FieldName     string
	SQLType       string   // base type e.g. "VARCHAR", "BIGINT", "DOUBLE PRECISION"
	ColumnType    string   // type as written e.g. "bigint(20) unsigned", "decimal(10,2)"
	TypeArgs      []string // size arguments e.g. ["10", "2"]
	Unsigned      bool
	JavaType      string
	Nullable      bool
	PrimaryKey    bool
	AutoIncrement bool
	Default       *string // raw literal, quotes kept
	Comment       string
	EnumValues    []string // ENUM/SET value list
	Generated     bool     // GENERATED ALWAYS AS / AS (expr)
}

// ForeignKey represents a single-column foreign key constraint.
type ForeignKey struct {
	Column    string // local column name
	RefTable  string // referenced table name as written in DDL
	RefColumn string
	Target    int // index into Schema.Tables once linked, -1 when unresolved
}

// Resolved reports whether the referenced table was found in the schema.
func (fk ForeignKey) Resolved() bool {
	return fk.Target >= 0
}

// Table holds the full parsed definition of a CREATE TABLE statement.
type Table struct {
	SourceName  string
	ClassName   string
	Columns     []Column
	PrimaryKey  []string // column names, constraint order
	ForeignKeys []ForeignKey
}

// Column returns the first column named name.
func (t *Table) Column(name string) (*Column, bool) {
	for i := range t.Columns {
		if t.Columns[i].SourceName == name {
			return &t.Columns[i], true
		}
	}
	return nil, false
}

// PrimaryKeyColumns returns the primary-key columns in declaration order.
func (t *Table) PrimaryKeyColumns() []Column {
	var cols []Column
	for _, c := range t.Columns {
		if c.PrimaryKey {
			cols = append(cols, c)
		}
	}
	return cols
}

// Schema holds all tables parsed from one input file.
type Schema struct {
	Tables  []Table
	Ignored IgnoredStatements
}

// Target returns the table a foreign key resolves to.
func (s *Schema) Target(fk ForeignKey) (*Table, bool) {
	if !fk.Resolved() || fk.Target >= len(s.Tables) {
		return nil, false
	}
	return &s.Tables[fk.Target], true
}
