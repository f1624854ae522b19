package main

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func writeConfigFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfig_TOML(t *testing.T) {
	path := writeConfigFile(t, "sqltojpa.toml", `
namespace = "org.acme.model"
output_dir = "out"
persistence_package = "jakarta.persistence"

[type_mapping]
tinyint1_as_boolean = true
binary16_as_uuid = true
widen_unsigned_integers = false

[type_mapping.overrides]
json = "java.util.Map"
"double  precision" = "BigDecimal"
`)

	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig() error: %v", err)
	}

	if cfg.Namespace != "org.acme.model" {
		t.Errorf("Namespace = %q", cfg.Namespace)
	}
	if cfg.OutputDir != "out" {
		t.Errorf("OutputDir = %q", cfg.OutputDir)
	}
	if got := cfg.resolvePath(cfg.OutputDir); got != filepath.Join(filepath.Dir(path), "out") {
		t.Errorf("resolvePath(OutputDir) = %q", got)
	}
	if cfg.PersistencePackage != "jakarta.persistence" {
		t.Errorf("PersistencePackage = %q", cfg.PersistencePackage)
	}
	if !cfg.TypeMapping.TinyInt1AsBoolean || !cfg.TypeMapping.Binary16AsUUID || cfg.TypeMapping.WidenUnsignedIntegers {
		t.Errorf("TypeMapping = %+v", cfg.TypeMapping)
	}
	wantOverrides := map[string]string{"JSON": "java.util.Map", "DOUBLE PRECISION": "BigDecimal"}
	if !reflect.DeepEqual(cfg.TypeMapping.Overrides, wantOverrides) {
		t.Errorf("Overrides = %v, want %v", cfg.TypeMapping.Overrides, wantOverrides)
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	for _, name := range []string{"empty.toml", "empty.yaml"} {
		t.Run(name, func(t *testing.T) {
			cfg, err := loadConfig(writeConfigFile(t, name, ""))
			if err != nil {
				t.Fatalf("loadConfig() error: %v", err)
			}
			if cfg.Namespace != defaultNamespace {
				t.Errorf("Namespace = %q, want %q", cfg.Namespace, defaultNamespace)
			}
			if cfg.OutputDir != defaultOutputDir {
				t.Errorf("OutputDir = %q, want %q", cfg.OutputDir, defaultOutputDir)
			}
			if cfg.PersistencePackage != "javax.persistence" {
				t.Errorf("PersistencePackage = %q", cfg.PersistencePackage)
			}
			if !reflect.DeepEqual(cfg.TypeMapping, defaultTypeMappingConfig()) {
				t.Errorf("TypeMapping = %+v, want defaults", cfg.TypeMapping)
			}
		})
	}
}

func TestLoadConfig_YAML(t *testing.T) {
	path := writeConfigFile(t, "sqltojpa.yml", `
namespace: com.shop.domain
persistence_package: jakarta.persistence
type_mapping:
  tinyint1_as_boolean: true
  overrides:
    geometry: byte[]
`)

	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig() error: %v", err)
	}
	if cfg.Namespace != "com.shop.domain" {
		t.Errorf("Namespace = %q", cfg.Namespace)
	}
	if cfg.PersistencePackage != "jakarta.persistence" {
		t.Errorf("PersistencePackage = %q", cfg.PersistencePackage)
	}
	if !cfg.TypeMapping.TinyInt1AsBoolean {
		t.Error("TinyInt1AsBoolean = false, want true")
	}
	if !cfg.TypeMapping.WidenUnsignedIntegers {
		t.Error("WidenUnsignedIntegers should keep its default")
	}
	if got := cfg.TypeMapping.Overrides["GEOMETRY"]; got != "byte[]" {
		t.Errorf("Overrides[GEOMETRY] = %q", got)
	}
}

func TestLoadConfig_Errors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		wantErr string
	}{
		{
			name:    "unknown toml key",
			file:    "c.toml",
			content: "namespace = \"a.b\"\nbogus = 1\n",
			wantErr: "unknown config keys: bogus",
		},
		{
			name:    "unknown nested toml key",
			file:    "c.toml",
			content: "[type_mapping]\nbool_everything = true\n",
			wantErr: "unknown config keys: type_mapping.bool_everything",
		},
		{
			name:    "unknown yaml key",
			file:    "c.yaml",
			content: "bogus: 1\n",
			wantErr: "bogus",
		},
		{
			name:    "invalid persistence package",
			file:    "c.toml",
			content: "persistence_package = \"hibernate\"\n",
			wantErr: "persistence_package must be one of",
		},
		{
			name:    "invalid namespace",
			file:    "c.toml",
			content: "namespace = \"com.1bad\"\n",
			wantErr: "not a valid Java package name",
		},
		{
			name:    "reserved word in namespace",
			file:    "c.toml",
			content: "namespace = \"com.class.model\"\n",
			wantErr: "not a valid Java package name",
		},
		{
			name:    "unsupported override type",
			file:    "c.toml",
			content: "[type_mapping.overrides]\njson = \"Foo\"\n",
			wantErr: "not a supported Java type",
		},
		{
			name:    "toml syntax",
			file:    "c.toml",
			content: "namespace = \n",
			wantErr: "parse config",
		},
		{
			name:    "unsupported extension",
			file:    "c.json",
			content: "{}",
			wantErr: "unsupported config format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loadConfig(writeConfigFile(t, tt.file, tt.content))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := loadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	if err == nil || !strings.Contains(err.Error(), "read config") {
		t.Fatalf("error = %v, want read config error", err)
	}
}

func TestResolveGeneratorConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := resolveGeneratorConfig("", nil)
		if err != nil {
			t.Fatal(err)
		}
		if cfg.Namespace != defaultNamespace || cfg.OutputDir != defaultOutputDir {
			t.Errorf("cfg = %+v", cfg)
		}
	})

	t.Run("positional arguments win over config", func(t *testing.T) {
		path := writeConfigFile(t, "c.toml", "namespace = \"from.config\"\noutput_dir = \"cfg-out\"\n")
		cfg, err := resolveGeneratorConfig(path, []string{"from.args", "args-out"})
		if err != nil {
			t.Fatal(err)
		}
		if cfg.Namespace != "from.args" || cfg.OutputDir != "args-out" {
			t.Errorf("cfg = %+v", cfg)
		}
	})

	t.Run("config output dir is relative to the config file", func(t *testing.T) {
		path := writeConfigFile(t, "c.toml", "output_dir = \"cfg-out\"\n")
		cfg, err := resolveGeneratorConfig(path, []string{"from.args"})
		if err != nil {
			t.Fatal(err)
		}
		if want := filepath.Join(filepath.Dir(path), "cfg-out"); cfg.OutputDir != want {
			t.Errorf("OutputDir = %q, want %q", cfg.OutputDir, want)
		}
	})

	t.Run("invalid namespace argument", func(t *testing.T) {
		if _, err := resolveGeneratorConfig("", []string{"not a package"}); err == nil {
			t.Error("expected error")
		}
	})
}
