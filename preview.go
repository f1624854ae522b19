package main

import (
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	javaKeywordStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	javaTypeStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	javaAnnotationStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("13"))
	javaStringStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	javaNumberStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	javaCommentStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Italic(true)
)

func newPreviewCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "preview <sqlFile> <table>",
		Short: "Print the entity generated for one table",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveGeneratorConfig(*configPath, nil)
			if err != nil {
				return err
			}
			schema, warnings, err := loadSchema(args[0], cfg.TypeMapping)
			if err != nil {
				return err
			}
			newReporter(cmd.OutOrStdout(), cmd.ErrOrStderr()).warnings(warnings)

			t, err := findTable(schema, args[1])
			if err != nil {
				return err
			}
			src := renderEntity(schema, t, EmitOptions{
				Namespace:          cfg.Namespace,
				PersistencePackage: cfg.PersistencePackage,
			})
			if isColorTerminal(cmd.OutOrStdout()) {
				src = highlightJava(src)
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), src)
			return err
		},
	}
}

// findTable looks a table up by DDL name, then case-insensitively by DDL or
// class name.
func findTable(schema *Schema, name string) (*Table, error) {
	for i := range schema.Tables {
		if schema.Tables[i].SourceName == name {
			return &schema.Tables[i], nil
		}
	}
	names := make([]string, 0, len(schema.Tables))
	for i := range schema.Tables {
		t := &schema.Tables[i]
		if strings.EqualFold(t.SourceName, name) || strings.EqualFold(t.ClassName, name) {
			return t, nil
		}
		names = append(names, t.SourceName)
	}

	if s := suggestName(name, names); s != "" {
		return nil, fmt.Errorf("table %q not found (did you mean %s?)", name, s)
	}
	return nil, fmt.Errorf("table %q not found", name)
}

// highlightJava renders Java source with terminal colours. The input is
// returned unchanged if it cannot be tokenised.
func highlightJava(src string) string {
	l := lexers.Get("java")
	if l == nil {
		return src
	}
	iter, err := chroma.Coalesce(l).Tokenise(nil, src)
	if err != nil {
		return src
	}

	var b strings.Builder
	b.Grow(len(src) * 2)
	for _, tok := range iter.Tokens() {
		if tok.Value == "" {
			continue
		}
		style, ok := javaStyleFor(tok.Type)
		if !ok {
			b.WriteString(tok.Value)
			continue
		}
		// Style each line separately so newlines stay unstyled.
		lines := strings.Split(tok.Value, "\n")
		for i, line := range lines {
			if line != "" {
				b.WriteString(style.Render(line))
			}
			if i < len(lines)-1 {
				b.WriteByte('\n')
			}
		}
	}
	return b.String()
}

func javaStyleFor(tt chroma.TokenType) (lipgloss.Style, bool) {
	switch {
	case tt == chroma.KeywordType || tt == chroma.NameClass:
		return javaTypeStyle, true
	case tt == chroma.NameDecorator:
		return javaAnnotationStyle, true
	case tt.InCategory(chroma.Keyword):
		return javaKeywordStyle, true
	case tt.InCategory(chroma.Comment):
		return javaCommentStyle, true
	case tt.InSubCategory(chroma.LiteralString):
		return javaStringStyle, true
	case tt.InSubCategory(chroma.LiteralNumber):
		return javaNumberStyle, true
	default:
		return lipgloss.Style{}, false
	}
}
