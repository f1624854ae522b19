package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

const (
	defaultNamespace = "com.example.entities"
	defaultOutputDir = "./generated-entities"
)

// GeneratorConfig holds the entity generation settings. It is read from an
// optional TOML or YAML file; positional CLI arguments override it.
type GeneratorConfig struct {
	Namespace          string            `toml:"namespace" yaml:"namespace"`
	OutputDir          string            `toml:"output_dir" yaml:"output_dir"`
	PersistencePackage string            `toml:"persistence_package" yaml:"persistence_package"` // javax.persistence|jakarta.persistence
	TypeMapping        TypeMappingConfig `toml:"type_mapping" yaml:"type_mapping"`

	// configDir is the directory containing the config file, used to resolve a relative output_dir.
	configDir string
}

// TypeMappingConfig controls optional SQL -> Java type coercions.
type TypeMappingConfig struct {
	TinyInt1AsBoolean     bool              `toml:"tinyint1_as_boolean" yaml:"tinyint1_as_boolean"`
	Binary16AsUUID        bool              `toml:"binary16_as_uuid" yaml:"binary16_as_uuid"`
	WidenUnsignedIntegers bool              `toml:"widen_unsigned_integers" yaml:"widen_unsigned_integers"`
	Overrides             map[string]string `toml:"overrides" yaml:"overrides"` // SQL base type -> Java type
}

func defaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		Namespace:          defaultNamespace,
		OutputDir:          defaultOutputDir,
		PersistencePackage: "javax.persistence",
		TypeMapping:        defaultTypeMappingConfig(),
	}
}

func defaultTypeMappingConfig() TypeMappingConfig {
	return TypeMappingConfig{
		TinyInt1AsBoolean:     false,
		Binary16AsUUID:        false,
		WidenUnsignedIntegers: true,
	}
}

// loadConfig reads a TOML (.toml) or YAML (.yaml, .yml) config file and
// returns a GeneratorConfig with defaults applied. Unknown keys are errors.
func loadConfig(path string) (*GeneratorConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := defaultGeneratorConfig()
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		md, err := toml.Decode(string(data), &cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
		if unknown := md.Undecoded(); len(unknown) > 0 {
			keys := make([]string, len(unknown))
			for i, k := range unknown {
				keys[i] = k.String()
			}
			return nil, fmt.Errorf("unknown config keys: %s", strings.Join(keys, ", "))
		}
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format %q (use .toml, .yaml or .yml)", ext)
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve config path: %w", err)
	}
	cfg.configDir = filepath.Dir(absPath)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// validate normalises and checks a config, whether loaded from a file or
// built from defaults and CLI arguments.
func (c *GeneratorConfig) validate() error {
	c.Namespace = strings.TrimSpace(c.Namespace)
	if c.Namespace == "" {
		c.Namespace = defaultNamespace
	}
	if !isJavaPackageName(c.Namespace) {
		return fmt.Errorf("namespace %q is not a valid Java package name", c.Namespace)
	}

	c.OutputDir = strings.TrimSpace(c.OutputDir)
	if c.OutputDir == "" {
		c.OutputDir = defaultOutputDir
	}

	switch c.PersistencePackage {
	case "":
		c.PersistencePackage = "javax.persistence"
	case "javax.persistence", "jakarta.persistence":
	default:
		return fmt.Errorf("persistence_package must be one of: javax.persistence, jakarta.persistence")
	}

	if len(c.TypeMapping.Overrides) > 0 {
		overrides := make(map[string]string, len(c.TypeMapping.Overrides))
		for sqlType, javaType := range c.TypeMapping.Overrides {
			key := strings.ToUpper(strings.Join(strings.Fields(sqlType), " "))
			javaType = strings.TrimSpace(javaType)
			if !isKnownJavaType(javaType) && !(strings.Contains(javaType, ".") && isJavaPackageName(javaType)) {
				return fmt.Errorf("type_mapping.overrides: %q is not a supported Java type for %s", javaType, key)
			}
			overrides[key] = javaType
		}
		c.TypeMapping.Overrides = overrides
	}
	return nil
}

// resolvePath resolves a path relative to the config file directory.
func (c *GeneratorConfig) resolvePath(p string) string {
	if filepath.IsAbs(p) || c.configDir == "" {
		return p
	}
	return filepath.Join(c.configDir, p)
}

// isKnownJavaType reports whether t is one of the simple type names the
// generator knows how to declare and import.
func isKnownJavaType(t string) bool {
	if t == "String" || t == "Boolean" || t == "byte[]" || t == "BigInteger" {
		return true
	}
	for _, v := range sqlToJava {
		if v == t {
			return true
		}
	}
	return false
}

// isJavaPackageName reports whether s is a dotted sequence of Java identifiers.
func isJavaPackageName(s string) bool {
	if s == "" {
		return false
	}
	for _, part := range strings.Split(s, ".") {
		if part == "" || javaReservedWords[part] {
			return false
		}
		for i, r := range part {
			if r == '_' || r == '$' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' {
				continue
			}
			if i > 0 && r >= '0' && r <= '9' {
				continue
			}
			return false
		}
	}
	return true
}
