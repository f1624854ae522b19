package main

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// EmitOptions controls the Java source rendered for each table.
type EmitOptions struct {
	Namespace          string
	PersistencePackage string // javax.persistence or jakarta.persistence
}

// relationField is a navigation field generated for a resolved foreign key.
type relationField struct {
	FK        ForeignKey
	ClassName string
	FieldName string
}

// entityFileName returns the output file name for a table.
func entityFileName(t Table) string {
	return t.ClassName + ".java"
}

// relationFields returns the navigation fields of t in foreign key order.
// Unresolved foreign keys produce no field. A relation named like an
// earlier field is suffixed with "By" and the local column.
func relationFields(schema *Schema, t *Table) []relationField {
	used := make(map[string]bool, len(t.Columns))
	for _, c := range t.Columns {
		used[c.FieldName] = true
	}

	var fields []relationField
	for _, fk := range t.ForeignKeys {
		target, ok := schema.Target(fk)
		if !ok || target.ClassName == "" {
			continue
		}
		name := javaFieldName(fk.RefTable)
		if used[name] {
			name = strings.TrimSuffix(name, "_") + "By" + toUpperCamel(fk.Column)
		}
		for n := 2; used[name]; n++ {
			name = strings.TrimRightFunc(name, isDigitRune) + strconv.Itoa(n)
		}
		used[name] = true
		fields = append(fields, relationField{FK: fk, ClassName: target.ClassName, FieldName: name})
	}
	return fields
}

func isDigitRune(r rune) bool { return r >= '0' && r <= '9' }

// persistenceNames are the persistence package types an entity refers to.
var persistenceNames = []string{
	"Column", "Entity", "FetchType", "GeneratedValue", "GenerationType",
	"Id", "JoinColumn", "ManyToOne", "Table",
}

// entityScope decides how an entity names library types. Entity classes of
// the same package shadow imported and java.lang types with the same simple
// name, so such types are written fully qualified and not imported.
type entityScope struct {
	classes            map[string]bool
	persistence        string
	qualifyPersistence bool
}

func newEntityScope(schema *Schema, opts EmitOptions) entityScope {
	s := entityScope{
		classes:     make(map[string]bool, len(schema.Tables)),
		persistence: opts.PersistencePackage,
	}
	for _, t := range schema.Tables {
		s.classes[t.ClassName] = true
	}
	for _, name := range persistenceNames {
		if s.classes[name] {
			s.qualifyPersistence = true
		}
	}
	return s
}

// typeRef returns the name to write for a Java type.
func (s entityScope) typeRef(javaType string) string {
	simple := javaSimpleName(javaType)
	if !s.classes[simple] {
		return simple
	}
	if imp := javaImportFor(javaType); imp != "" {
		return imp
	}
	return "java.lang." + simple
}

// persistenceRef returns the name to write for a persistence package type.
func (s entityScope) persistenceRef(name string) string {
	if s.qualifyPersistence {
		return s.persistence + "." + name
	}
	return name
}

// entityImports returns the sorted import list of a rendered entity.
func entityImports(t *Table, scope entityScope) []string {
	set := make(map[string]bool)
	if !scope.qualifyPersistence {
		set[scope.persistence+".*"] = true
	}
	add := func(imp string) {
		if imp != "" && !scope.classes[javaSimpleName(imp)] {
			set[imp] = true
		}
	}
	add("java.io.Serializable")
	for _, c := range t.Columns {
		add(javaImportFor(c.JavaType))
	}
	if len(t.PrimaryKeyColumns()) > 0 {
		add("java.util.Objects")
	}

	imports := make([]string, 0, len(set))
	for imp := range set {
		imports = append(imports, imp)
	}
	sort.Strings(imports)
	return imports
}

// renderEntity renders the Java source of one entity class.
func renderEntity(schema *Schema, t *Table, opts EmitOptions) string {
	var b strings.Builder
	scope := newEntityScope(schema, opts)
	relations := relationFields(schema, t)

	fmt.Fprintf(&b, "package %s;\n\n", opts.Namespace)
	for _, imp := range entityImports(t, scope) {
		fmt.Fprintf(&b, "import %s;\n", imp)
	}
	b.WriteString("\n")

	b.WriteString("/**\n")
	fmt.Fprintf(&b, " * JPA entity for table %s.\n", javadocText(t.SourceName))
	b.WriteString(" */\n")
	fmt.Fprintf(&b, "@%s\n", scope.persistenceRef("Entity"))
	fmt.Fprintf(&b, "@%s(name = %s)\n", scope.persistenceRef("Table"), javaString(t.SourceName))
	fmt.Fprintf(&b, "public class %s implements %s {\n\n", t.ClassName, scope.typeRef("java.io.Serializable"))
	b.WriteString("    private static final long serialVersionUID = 1L;\n\n")

	for _, c := range t.Columns {
		writeColumnField(&b, scope, c)
	}
	for _, r := range relations {
		writeRelationField(&b, scope, r)
	}

	writeConstructors(&b, scope, t)

	for _, c := range t.Columns {
		writeAccessors(&b, scope.typeRef(c.JavaType), c.FieldName)
	}
	for _, r := range relations {
		writeAccessors(&b, r.ClassName, r.FieldName)
	}

	writeEqualsHashCode(&b, scope, t)
	writeToString(&b, scope, t)
	b.WriteString("}\n")
	return b.String()
}

func writeColumnField(b *strings.Builder, scope entityScope, c Column) {
	b.WriteString("    /**\n")
	fmt.Fprintf(b, "     * Column %s", javadocText(c.SourceName))
	if c.Default != nil {
		fmt.Fprintf(b, " (default: %s)", javadocText(*c.Default))
	}
	b.WriteString("\n")
	if c.Comment != "" {
		fmt.Fprintf(b, "     * <p>%s</p>\n", javadocText(c.Comment))
	}
	if len(c.EnumValues) > 0 {
		fmt.Fprintf(b, "     * Allowed values: %s\n", javadocText(strings.Join(c.EnumValues, ", ")))
	}
	b.WriteString("     */\n")

	if c.PrimaryKey {
		fmt.Fprintf(b, "    @%s\n", scope.persistenceRef("Id"))
		if c.AutoIncrement {
			fmt.Fprintf(b, "    @%s(strategy = %s.IDENTITY)\n",
				scope.persistenceRef("GeneratedValue"), scope.persistenceRef("GenerationType"))
		}
	}
	fmt.Fprintf(b, "    @%s(%s)\n", scope.persistenceRef("Column"), columnAnnotationArgs(c))
	fmt.Fprintf(b, "    private %s %s;\n\n", scope.typeRef(c.JavaType), c.FieldName)
}

// columnAnnotationArgs returns the attribute list of a column's @Column.
// columnDefinition carries the type as written, size arguments and
// UNSIGNED included.
func columnAnnotationArgs(c Column) string {
	args := []string{"name = " + javaString(c.SourceName)}
	if !c.Nullable {
		args = append(args, "nullable = false")
	}
	if c.Default != nil && !c.PrimaryKey {
		def := c.ColumnType
		if !c.Nullable {
			def += " NOT NULL"
		}
		def += " DEFAULT " + *c.Default
		args = append(args, "columnDefinition = "+javaString(def))
	}
	if c.Generated {
		args = append(args, "insertable = false", "updatable = false")
	}
	return strings.Join(args, ", ")
}

func writeRelationField(b *strings.Builder, scope entityScope, r relationField) {
	b.WriteString("    /**\n")
	fmt.Fprintf(b, "     * Relation to %s\n", javadocText(r.FK.RefTable))
	b.WriteString("     */\n")
	fmt.Fprintf(b, "    @%s(fetch = %s.LAZY)\n", scope.persistenceRef("ManyToOne"), scope.persistenceRef("FetchType"))
	fmt.Fprintf(b, "    @%s(name = %s)\n", scope.persistenceRef("JoinColumn"), javaString(r.FK.Column))
	fmt.Fprintf(b, "    private %s %s;\n\n", r.ClassName, r.FieldName)
}

// requiredColumns returns the columns the required-fields constructor takes:
// non-nullable columns whose value the database does not generate.
func requiredColumns(t *Table) []Column {
	var cols []Column
	for _, c := range t.Columns {
		if !c.Nullable && !c.AutoIncrement {
			cols = append(cols, c)
		}
	}
	return cols
}

func writeConstructors(b *strings.Builder, scope entityScope, t *Table) {
	fmt.Fprintf(b, "    public %s() {\n", t.ClassName)
	b.WriteString("    }\n\n")

	required := requiredColumns(t)
	if len(required) == 0 {
		return
	}
	params := make([]string, len(required))
	for i, c := range required {
		params[i] = scope.typeRef(c.JavaType) + " " + c.FieldName
	}
	fmt.Fprintf(b, "    public %s(%s) {\n", t.ClassName, strings.Join(params, ", "))
	for _, c := range required {
		fmt.Fprintf(b, "        this.%s = %s;\n", c.FieldName, c.FieldName)
	}
	b.WriteString("    }\n\n")
}

func writeAccessors(b *strings.Builder, javaType, field string) {
	accessor := upperFirst(field)
	fmt.Fprintf(b, "    public %s get%s() {\n", javaType, accessor)
	fmt.Fprintf(b, "        return %s;\n", field)
	b.WriteString("    }\n\n")
	fmt.Fprintf(b, "    public void set%s(%s %s) {\n", accessor, javaType, field)
	fmt.Fprintf(b, "        this.%s = %s;\n", field, field)
	b.WriteString("    }\n\n")
}

// writeEqualsHashCode compares this.f with that.f; a primary-key field named
// o or that is shadowed inside equals.
func writeEqualsHashCode(b *strings.Builder, scope entityScope, t *Table) {
	pk := t.PrimaryKeyColumns()
	if len(pk) == 0 {
		return
	}

	objects := scope.typeRef("java.util.Objects")
	override := scope.typeRef("Override")
	comparisons := make([]string, len(pk))
	fields := make([]string, len(pk))
	for i, c := range pk {
		comparisons[i] = fmt.Sprintf("%s.equals(this.%s, that.%s)", objects, c.FieldName, c.FieldName)
		fields[i] = c.FieldName
	}

	fmt.Fprintf(b, "    @%s\n", override)
	fmt.Fprintf(b, "    public boolean equals(%s o) {\n", scope.typeRef("Object"))
	b.WriteString("        if (this == o) return true;\n")
	b.WriteString("        if (o == null || getClass() != o.getClass()) return false;\n")
	fmt.Fprintf(b, "        %s that = (%s) o;\n", t.ClassName, t.ClassName)
	fmt.Fprintf(b, "        return %s;\n", strings.Join(comparisons, " && "))
	b.WriteString("    }\n\n")

	fmt.Fprintf(b, "    @%s\n", override)
	b.WriteString("    public int hashCode() {\n")
	fmt.Fprintf(b, "        return %s.hash(%s);\n", objects, strings.Join(fields, ", "))
	b.WriteString("    }\n\n")
}

func writeToString(b *strings.Builder, scope entityScope, t *Table) {
	fmt.Fprintf(b, "    @%s\n", scope.typeRef("Override"))
	fmt.Fprintf(b, "    public %s toString() {\n", scope.typeRef("String"))
	fmt.Fprintf(b, "        return \"%s{\" +\n", t.ClassName)
	for i, c := range t.Columns {
		sep := ""
		if i > 0 {
			sep = ", "
		}
		fmt.Fprintf(b, "                \"%s%s=\" + %s +\n", sep, c.FieldName, c.FieldName)
	}
	b.WriteString("                '}';\n")
	b.WriteString("    }\n")
}

// javaString renders s as a Java string literal.
func javaString(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

// javadocText keeps free text from closing the surrounding comment or
// starting a unicode escape.
func javadocText(s string) string {
	s = strings.ReplaceAll(s, `\u`, `\\u`)
	return strings.ReplaceAll(s, "*/", "*&#47;")
}
