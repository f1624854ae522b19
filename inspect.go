package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// outputFormat is the --format flag of inspect.
type outputFormat string

var _ pflag.Value = (*outputFormat)(nil)

func (f *outputFormat) String() string { return string(*f) }

func (f *outputFormat) Set(v string) error {
	switch v {
	case "yaml", "json":
		*f = outputFormat(v)
		return nil
	}
	return errors.New("must be one of: yaml, json")
}

func (f *outputFormat) Type() string { return "yaml|json" }

type schemaView struct {
	Tables   []tableView       `json:"tables" yaml:"tables"`
	Ignored  IgnoredStatements `json:"ignored" yaml:"ignored"`
	Warnings []string          `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

type tableView struct {
	Name       string         `json:"name" yaml:"name"`
	Class      string         `json:"class" yaml:"class"`
	PrimaryKey []string       `json:"primary_key,omitempty" yaml:"primary_key,omitempty"`
	Columns    []columnView   `json:"columns" yaml:"columns"`
	Relations  []relationView `json:"relations,omitempty" yaml:"relations,omitempty"`
}

type columnView struct {
	Name          string   `json:"name" yaml:"name"`
	Field         string   `json:"field" yaml:"field"`
	SQLType       string   `json:"sql_type" yaml:"sql_type"`
	ColumnType    string   `json:"column_type" yaml:"column_type"`
	JavaType      string   `json:"java_type" yaml:"java_type"`
	Nullable      bool     `json:"nullable" yaml:"nullable"`
	PrimaryKey    bool     `json:"primary_key,omitempty" yaml:"primary_key,omitempty"`
	AutoIncrement bool     `json:"auto_increment,omitempty" yaml:"auto_increment,omitempty"`
	Generated     bool     `json:"generated,omitempty" yaml:"generated,omitempty"`
	Default       *string  `json:"default,omitempty" yaml:"default,omitempty"`
	Comment       string   `json:"comment,omitempty" yaml:"comment,omitempty"`
	EnumValues    []string `json:"enum_values,omitempty" yaml:"enum_values,omitempty"`
}

type relationView struct {
	Column     string `json:"column" yaml:"column"`
	References string `json:"references" yaml:"references"`
	RefColumn  string `json:"ref_column,omitempty" yaml:"ref_column,omitempty"`
	Resolved   bool   `json:"resolved" yaml:"resolved"`
	Field      string `json:"field,omitempty" yaml:"field,omitempty"`
	Class      string `json:"class,omitempty" yaml:"class,omitempty"`
}

func newInspectCmd(configPath *string) *cobra.Command {
	format := outputFormat("yaml")
	cmd := &cobra.Command{
		Use:   "inspect <sqlFile>",
		Short: "Print the parsed table model without generating files",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveGeneratorConfig(*configPath, nil)
			if err != nil {
				return err
			}
			schema, warnings, err := loadSchema(args[0], cfg.TypeMapping)
			if err != nil {
				return err
			}
			return writeSchemaView(cmd.OutOrStdout(), buildSchemaView(schema, warnings), format)
		},
	}
	cmd.Flags().Var(&format, "format", "output format: yaml|json")
	return cmd
}

func buildSchemaView(schema *Schema, warnings []string) schemaView {
	view := schemaView{Ignored: schema.Ignored, Warnings: warnings}
	for i := range schema.Tables {
		t := &schema.Tables[i]
		tv := tableView{Name: t.SourceName, Class: t.ClassName, PrimaryKey: t.PrimaryKey}
		for _, c := range t.Columns {
			tv.Columns = append(tv.Columns, columnView{
				Name:          c.SourceName,
				Field:         c.FieldName,
				SQLType:       c.SQLType,
				ColumnType:    c.ColumnType,
				JavaType:      c.JavaType,
				Nullable:      c.Nullable,
				PrimaryKey:    c.PrimaryKey,
				AutoIncrement: c.AutoIncrement,
				Generated:     c.Generated,
				Default:       c.Default,
				Comment:       c.Comment,
				EnumValues:    c.EnumValues,
			})
		}

		fields := relationFields(schema, t)
		next := 0
		for _, fk := range t.ForeignKeys {
			rv := relationView{Column: fk.Column, References: fk.RefTable, RefColumn: fk.RefColumn, Resolved: fk.Resolved()}
			if rv.Resolved && next < len(fields) {
				rv.Field = fields[next].FieldName
				rv.Class = fields[next].ClassName
				next++
			}
			tv.Relations = append(tv.Relations, rv)
		}
		view.Tables = append(view.Tables, tv)
	}
	return view
}

func writeSchemaView(w io.Writer, view schemaView, format outputFormat) error {
	switch format {
	case "yaml", "":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(view); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(view); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil
	default:
		return errors.New("format must be one of: yaml, json")
	}
}
