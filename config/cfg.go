package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v3"

	"github.com/rupor-github/gencfg"
)

//go:embed config.yaml.tmpl
var ConfigTmpl []byte

type (
	// ImportConfig names the directories a source file's bare resource
	// paths (image/font entries, data.file: payloads) are resolved
	// against, and a table of #define values. The defines are only loaded
	// into the configuration: the compiler does not read them and the
	// grammar has no conditional blocks.
	ImportConfig struct {
		ImageSearchPath []string          `yaml:"image_search_path" validate:"dive,dirpath"`
		FontSearchPath  []string          `yaml:"font_search_path" validate:"dive,dirpath"`
		Defines         map[string]string `yaml:"defines"`
	}

	// ImagesConfig is the import-time recompression policy applied when a
	// source doesn't specify its own quality.
	ImagesConfig struct {
		DefaultJPEGQuality int   `yaml:"default_jpeg_quality" validate:"min=40,max=100"`
		RemoveAlphaOnRGB   bool  `yaml:"remove_alpha_on_rgb"`
		MaxInlineBytes     int64 `yaml:"max_inline_bytes" validate:"min=0"`
	}

	// OutputConfig controls serializer behavior that isn't specific to
	// any one compiled File.
	OutputConfig struct {
		Overwrite   bool   `yaml:"overwrite"`
		CompilerTag string `yaml:"compiler_tag" validate:"required"`
	}

	// Config is the top level compiler configuration.
	Config struct {
		Version int           `yaml:"version" validate:"eq=1"`
		Import  ImportConfig  `yaml:"import"`
		Images  ImagesConfig  `yaml:"images"`
		Output  OutputConfig  `yaml:"output"`
		Logging LoggingConfig `yaml:"logging"`
	}
)

func unmarshalConfig(data []byte, cfg *Config, process bool) (*Config, error) {
	// We want to use only fields we defined so we cannot use yaml.Unmarshal
	// directly here
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration data: %w", err)
	}
	if process {
		// sanitize and validate what has been loaded
		if err := gencfg.Sanitize(cfg); err != nil {
			return nil, err
		}
		if err := gencfg.Validate(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// LoadConfiguration reads the configuration from the file at the given path,
// superimposes its values on top of the expanded configuration template to
// provide sane defaults, and performs validation.
func LoadConfiguration(path string, options ...func(*gencfg.ProcessingOptions)) (*Config, error) {
	haveFile := len(path) > 0

	data, err := gencfg.Process(ConfigTmpl, options...)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	cfg, err := unmarshalConfig(data, &Config{}, !haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	if !haveFile {
		return cfg, nil
	}

	// overwrite cfg values with values from the file
	data, err = os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err = unmarshalConfig(data, cfg, haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration file: %w", err)
	}
	return cfg, nil
}

// Prepare generates a configuration file from the template and returns it as
// a byte slice, for a CLI "dump defaults" subcommand.
func Prepare() ([]byte, error) {
	return gencfg.Process(ConfigTmpl)
}

// Dump marshals cfg back to YAML, e.g. to let a user diff their file
// against what the compiler actually resolved.
func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(*cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config to yaml: %v", err)
	}
	return data, nil
}
