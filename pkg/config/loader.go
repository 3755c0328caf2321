package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dlclark/regexp2"
	"github.com/rs/zerolog"
	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"
)

// Load reads the YAML file at path and returns a validated [File].
func Load(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open %q: %w", path, err)
	}
	defer f.Close()

	cfg, err := LoadFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("config: parse %q: %w", path, err)
	}
	return cfg, nil
}

// LoadFromReader decodes a YAML config from r and validates the result.
// An empty document yields an empty File.
func LoadFromReader(r io.Reader) (*File, error) {
	cfg := &File{}
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: decode yaml: %w", err)
	}
	cfg.normalize()
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// normalize puts property names in NFC so they compare equal to keys built
// from Go string literals.
func (f *File) normalize() {
	f.AccessKey = norm.NFC.String(f.AccessKey)
	for i, p := range f.IncludeProperties {
		f.IncludeProperties[i] = norm.NFC.String(p)
	}
	for i, p := range f.ExcludeProperties {
		f.ExcludeProperties[i] = norm.NFC.String(p)
	}
}

// Validate checks cfg and returns a joined error listing every problem found.
func Validate(cfg *File) error {
	var errs []error

	if cfg.AccessKey != "" && strings.TrimSpace(cfg.AccessKey) == "" {
		errs = append(errs, fmt.Errorf("access_key %q is blank", cfg.AccessKey))
	}
	if cfg.LogLevel != "" {
		if _, err := zerolog.ParseLevel(cfg.LogLevel); err != nil {
			errs = append(errs, fmt.Errorf("log_level %q is invalid; valid values: trace, debug, info, warn, error", cfg.LogLevel))
		}
	}
	errs = append(errs, validatePatterns("include_properties", cfg.IncludeProperties)...)
	errs = append(errs, validatePatterns("exclude_properties", cfg.ExcludeProperties)...)

	return errors.Join(errs...)
}

func validatePatterns(field string, patterns []string) []error {
	var errs []error
	for i, p := range patterns {
		prefix := fmt.Sprintf("%s[%d]", field, i)
		if p == "" {
			errs = append(errs, fmt.Errorf("%s is empty", prefix))
			continue
		}
		if len(p) < 2 || p[0] != '/' {
			continue
		}
		end := strings.LastIndexByte(p, '/')
		if end == 0 {
			continue
		}
		if _, err := regexp2.Compile(p[1:end], regexp2.ECMAScript); err != nil {
			errs = append(errs, fmt.Errorf("%s %q is not a valid regular expression: %w", prefix, p, err))
		}
	}
	return errs
}
