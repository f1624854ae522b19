package main

import "strings"

// sqlToJava is the canonical SQL base type -> Java type mapping.
var sqlToJava = map[string]string{
	"VARCHAR": "String", "CHAR": "String", "TEXT": "String", "LONGTEXT": "String",
	"MEDIUMTEXT": "String", "TINYTEXT": "String", "CLOB": "String", "NVARCHAR": "String",
	"NCHAR": "String", "NTEXT": "String", "JSON": "String", "JSONB": "String", "XML": "String",

	"INT": "Integer", "INTEGER": "Integer", "MEDIUMINT": "Integer",
	"SMALLINT": "Short",
	"TINYINT":  "Byte",
	"BIGINT":   "Long",

	"DECIMAL": "BigDecimal", "NUMERIC": "BigDecimal", "MONEY": "BigDecimal", "SMALLMONEY": "BigDecimal",
	"FLOAT": "Float", "REAL": "Float",
	"DOUBLE": "Double",

	"DATE":      "LocalDate",
	"TIME":      "LocalTime",
	"TIMESTAMP": "LocalDateTime", "DATETIME": "LocalDateTime", "DATETIME2": "LocalDateTime", "SMALLDATETIME": "LocalDateTime",

	"BOOLEAN": "Boolean", "BOOL": "Boolean", "BIT": "Boolean",

	"BLOB": "byte[]", "LONGBLOB": "byte[]", "MEDIUMBLOB": "byte[]", "TINYBLOB": "byte[]",
	"BINARY": "byte[]", "VARBINARY": "byte[]", "IMAGE": "byte[]",

	"UUID": "UUID",

	// Multi-word and value-list types.
	"ENUM": "String", "SET": "String",
	"CHARACTER": "String", "CHARACTER VARYING": "String",
	"DOUBLE PRECISION": "Double",
}

// javaImports lists the import each non-java.lang type needs.
var javaImports = map[string]string{
	"BigDecimal":    "java.math.BigDecimal",
	"BigInteger":    "java.math.BigInteger",
	"LocalDate":     "java.time.LocalDate",
	"LocalTime":     "java.time.LocalTime",
	"LocalDateTime": "java.time.LocalDateTime",
	"UUID":          "java.util.UUID",
}

// javaTextType is the fallback for SQL types with no mapping.
const javaTextType = "String"

// mapType returns the Java type for a parsed column and whether the SQL type
// was recognised. Unknown types map to String.
func mapType(col Column, typeMap TypeMappingConfig) (string, bool) {
	if t, ok := typeMap.Overrides[col.SQLType]; ok {
		return t, true
	}

	switch {
	case col.SQLType == "TINYINT" && typeArg(col, 0) == "1" && typeMap.TinyInt1AsBoolean:
		return "Boolean", true
	case col.SQLType == "BINARY" && typeArg(col, 0) == "16" && typeMap.Binary16AsUUID:
		return "UUID", true
	}

	t, ok := sqlToJava[col.SQLType]
	if !ok {
		return javaTextType, false
	}
	if col.Unsigned && typeMap.WidenUnsignedIntegers {
		t = widenUnsigned(t)
	}
	return t, true
}

// widenUnsigned returns the next wider Java type able to hold the unsigned
// range of an integer type. Non-integer types are returned unchanged.
func widenUnsigned(javaType string) string {
	switch javaType {
	case "Byte":
		return "Short"
	case "Short":
		return "Integer"
	case "Integer":
		return "Long"
	case "Long":
		return "BigInteger"
	default:
		return javaType
	}
}

func typeArg(col Column, i int) string {
	if i >= len(col.TypeArgs) {
		return ""
	}
	return strings.TrimSpace(col.TypeArgs[i])
}

// javaSimpleName returns the name used in field declarations: fully
// qualified override types such as java.time.OffsetDateTime are shortened.
func javaSimpleName(javaType string) string {
	if i := strings.LastIndexByte(javaType, '.'); i >= 0 {
		return javaType[i+1:]
	}
	return javaType
}

// javaImportFor returns the import a Java type needs, or "" for java.lang
// types and primitive arrays.
func javaImportFor(javaType string) string {
	if strings.Contains(javaType, ".") {
		return javaType
	}
	return javaImports[javaType]
}
