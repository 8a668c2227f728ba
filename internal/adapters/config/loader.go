// Package config loads vigil.yaml into a resolved domain.Config.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.trai.ch/vigil/internal/core/domain"
	"go.trai.ch/vigil/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// AuthTokenEnv overrides auth_token from the config file.
const AuthTokenEnv = "VIGIL_AUTH_TOKEN"

// Loader reads and validates configuration files.
type Loader struct {
	Logger   ports.Logger
	validate *validator.Validate
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Loader{Logger: logger, validate: v}
}

// Load reads vigil.yaml from dir. A missing file yields the defaults.
func (l *Loader) Load(dir string) (*domain.Config, error) {
	path := filepath.Join(dir, domain.ConfigFileName)

	//nolint:gosec // path is the fixed config name inside the working directory
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := domain.DefaultConfig()
			l.applyEnv(&cfg)
			return &cfg, nil
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigRead.Error()), "path", path)
	}

	cfg, err := l.Parse(data)
	if err != nil {
		return nil, zerr.With(err, "path", path)
	}
	return cfg, nil
}

// Parse decodes and validates a config document.
func (l *Loader) Parse(data []byte) (*domain.Config, error) {
	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, zerr.Wrap(err, domain.ErrConfigParse.Error())
	}

	if err := l.validate.Struct(file); err != nil {
		return nil, validationError(err)
	}

	cfg, err := l.resolve(&file)
	if err != nil {
		return nil, err
	}
	l.applyEnv(cfg)

	return cfg, nil
}

func (l *Loader) resolve(file *File) (*domain.Config, error) {
	cfg := domain.DefaultConfig()

	if file.Root != "" {
		cfg.Root = file.Root
	}

	cfg.Source = domain.ParseSource(file.ChecksumSource)
	if file.ChecksumSource != "" && string(cfg.Source) != strings.ToLower(strings.TrimSpace(file.ChecksumSource)) {
		l.Logger.Warn("unknown checksum_source, using default",
			"value", file.ChecksumSource, "source", cfg.Source)
	}

	if file.Version != "" {
		if err := domain.ValidateVersion(file.Version); err != nil {
			return nil, err
		}
		cfg.Version = strings.TrimSpace(file.Version)
	}

	cfg.Locale = file.Locale
	if file.Endpoint != "" {
		cfg.Endpoint = file.Endpoint
	}
	if file.LocalBaseline != "" {
		cfg.LocalBaseline = file.LocalBaseline
	}

	algorithm, err := domain.ParseAlgorithm(file.Algorithm)
	if err != nil {
		return nil, err
	}
	cfg.Algorithm = algorithm

	if file.Exclude.Prefixes != nil {
		cfg.Exclusions.Prefixes = *file.Exclude.Prefixes
	}
	cfg.Exclusions.Patterns = file.Exclude.Patterns
	if err := cfg.Exclusions.Validate(); err != nil {
		return nil, zerr.Wrap(err, domain.ErrConfigInvalid.Error())
	}

	cfg.SkipExcludedMissing = file.SkipExcludedMissing
	if file.Workers > 0 {
		cfg.Workers = file.Workers
	}
	cfg.FetchRetries = file.FetchRetries
	if file.Progress.TTL > 0 {
		cfg.ProgressTTL = file.Progress.TTL
	}
	if file.Progress.Store != "" {
		cfg.ProgressStore = file.Progress.Store
	}
	cfg.AuthToken = file.AuthToken
	if file.Listen != "" {
		cfg.Listen = file.Listen
	}
	if file.LogFormat != "" {
		cfg.LogFormat = file.LogFormat
	}

	return &cfg, nil
}

func (l *Loader) applyEnv(cfg *domain.Config) {
	if token, ok := os.LookupEnv(AuthTokenEnv); ok {
		cfg.AuthToken = token
	}
}

func validationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return zerr.Wrap(err, domain.ErrConfigInvalid.Error())
	}

	fe := fieldErrs[0]
	return zerr.With(zerr.Wrap(domain.ErrConfigInvalid, msgForTag(fe)), "field", fe.Namespace())
}

func msgForTag(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	case "url":
		return fmt.Sprintf("%s must be a valid URL", field)
	case "hostname_port":
		return fmt.Sprintf("%s must be a host:port address", field)
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "lte", "max":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
	}
}
