package config

import "time"

// File is the on-disk shape of vigil.yaml.
type File struct {
	Root                string          `yaml:"root"`
	ChecksumSource      string          `yaml:"checksum_source"`
	Version             string          `yaml:"version"`
	Locale              string          `yaml:"locale" validate:"omitempty,max=16"`
	Endpoint            string          `yaml:"endpoint" validate:"omitempty,url"`
	LocalBaseline       string          `yaml:"local_baseline"`
	Algorithm           string          `yaml:"algorithm" validate:"omitempty,oneof=md5 sha1 sha256 xxh64"`
	Exclude             ExcludeSection  `yaml:"exclude"`
	SkipExcludedMissing bool            `yaml:"skip_excluded_missing"`
	Workers             int             `yaml:"workers" validate:"gte=0,lte=256"`
	FetchRetries        int             `yaml:"fetch_retries" validate:"gte=0,lte=10"`
	Progress            ProgressSection `yaml:"progress"`
	AuthToken           string          `yaml:"auth_token"`
	Listen              string          `yaml:"listen" validate:"omitempty,hostname_port"`
	LogFormat           string          `yaml:"log_format" validate:"omitempty,oneof=pretty json"`
}

// ExcludeSection lists excluded paths. A nil Prefixes keeps the default user-content prefix;
// an explicit empty list disables it.
type ExcludeSection struct {
	Prefixes *[]string `yaml:"prefixes"`
	Patterns []string  `yaml:"patterns"`
}

// ProgressSection configures the progress store.
type ProgressSection struct {
	TTL   time.Duration `yaml:"ttl" validate:"gte=0"`
	Store string        `yaml:"store" validate:"omitempty,oneof=memory file"`
}
