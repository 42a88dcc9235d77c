// Package config loads the fretcards configuration file.
//
// The file is TOML. It is looked up at $FRETCARDS_CONFIG, then
// $XDG_CONFIG_HOME/fretcards/config.toml (~/.config/fretcards/config.toml).
// A missing file means defaults; keys the program does not know are an
// error so typos do not go unnoticed.
//
//	[deck]
//	name = "Guitar::Fretboard"
//	user = "alice"
//
//	[media]
//	backend = "s3"
//	[media.s3]
//	bucket = "flashcards"
//	endpoint = "http://localhost:9000"
//	use_path_style = true
//
//	[cache]
//	backend = "redis"
//	redis_addr = "localhost:6379"
//	ttl = "720h"
//
//	[fretboard.general]
//	last_fret = 15
package config

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/fretcards/pkg/errors"
	"github.com/matzehuels/fretcards/pkg/fretboard"
	"github.com/matzehuels/fretcards/pkg/media"
)

const appName = "fretcards"

// EnvPath names the environment variable that overrides the config path.
const EnvPath = "FRETCARDS_CONFIG"

// Media backends.
const (
	MediaDir = "dir"
	MediaS3  = "s3"
)

// Cache backends.
const (
	CacheFile  = "file"
	CacheRedis = "redis"
	CacheNone  = "none"
)

// Config is the whole configuration file.
type Config struct {
	Deck      Deck             `toml:"deck"`
	Media     Media            `toml:"media"`
	Cache     Cache            `toml:"cache"`
	Fretboard fretboard.Config `toml:"fretboard"`
}

// Deck selects the collection and deck cards are written to.
type Deck struct {
	Name       string `toml:"name"`
	User       string `toml:"user"`
	Collection string `toml:"collection"`
}

// Media selects where images are stored.
type Media struct {
	Backend string         `toml:"backend"`
	Dir     string         `toml:"dir"`
	S3      media.S3Config `toml:"s3"`
}

// Cache configures the render cache.
type Cache struct {
	Backend       string        `toml:"backend"`
	Dir           string        `toml:"dir"`
	RedisAddr     string        `toml:"redis_addr"`
	RedisPassword string        `toml:"redis_password"`
	RedisDB       int           `toml:"redis_db"`
	TTL           time.Duration `toml:"ttl"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Deck:      Deck{Name: "Fretboard"},
		Media:     Media{Backend: MediaDir},
		Cache:     Cache{Backend: CacheFile, TTL: 30 * 24 * time.Hour},
		Fretboard: fretboard.DefaultConfig(),
	}
}

// Path returns the config file location. The file need not exist.
func Path() (string, error) {
	if p := os.Getenv(EnvPath); p != "" {
		return p, nil
	}
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, appName, "config.toml"), nil
}

// Load reads the file at path over the defaults. A missing file is not an
// error unless the path came from the environment.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) && os.Getenv(EnvPath) != path {
		return cfg, nil
	}
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config")
	}
	if err := Parse(data, &cfg); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "%s", path)
	}
	return cfg, nil
}

// LoadDefault resolves Path and loads it.
func LoadDefault() (Config, string, error) {
	path, err := Path()
	if err != nil {
		return Default(), "", nil
	}
	cfg, err := Load(path)
	return cfg, path, err
}

// Parse decodes TOML into cfg, keeping values the data does not set.
func Parse(data []byte, cfg *Config) error {
	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return errors.New(errors.ErrCodeInvalidConfig, "unknown keys: %s", strings.Join(keys, ", "))
	}
	return cfg.Validate()
}

// Validate checks backend names and the fretboard section.
func (c Config) Validate() error {
	if !slices.Contains([]string{MediaDir, MediaS3}, c.Media.Backend) {
		return errors.New(errors.ErrCodeInvalidConfig, "media.backend must be %q or %q, got %q", MediaDir, MediaS3, c.Media.Backend)
	}
	if c.Media.Backend == MediaS3 && c.Media.S3.Bucket == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "media.s3.bucket is required for the s3 backend")
	}
	if !slices.Contains([]string{CacheFile, CacheRedis, CacheNone}, c.Cache.Backend) {
		return errors.New(errors.ErrCodeInvalidConfig, "cache.backend must be file, redis or none, got %q", c.Cache.Backend)
	}
	if c.Cache.Backend == CacheRedis && c.Cache.RedisAddr == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "cache.redis_addr is required for the redis backend")
	}
	if c.Cache.TTL < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "cache.ttl must not be negative")
	}
	return c.Fretboard.Validate()
}
