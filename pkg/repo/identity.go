package repo

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/guidurbano/write-yourself-a-git/pkg/object"
)

const (
	defaultAuthorName  = "Guit"
	defaultAuthorEmail = "guit@example.com"
)

// userConfig is the shape of ~/.guitconfig.
type userConfig struct {
	User struct {
		Name  string `toml:"name"`
		Email string `toml:"email"`
	} `toml:"user"`
}

// AuthorIdentity resolves who is writing objects. Precedence:
// GUIT_AUTHOR_NAME / GUIT_AUTHOR_EMAIL environment variables, then the
// [user] section of ~/.guitconfig, then a built-in placeholder. The
// identity is stamped with the current time and local zone.
func AuthorIdentity(now time.Time) (object.Identity, error) {
	name := strings.TrimSpace(os.Getenv("GUIT_AUTHOR_NAME"))
	email := strings.TrimSpace(os.Getenv("GUIT_AUTHOR_EMAIL"))

	if name == "" || email == "" {
		cfg, err := loadUserConfig()
		if err != nil {
			return object.Identity{}, err
		}
		if name == "" {
			name = cfg.User.Name
		}
		if email == "" {
			email = cfg.User.Email
		}
	}

	if name == "" {
		name = defaultAuthorName
	}
	if email == "" {
		email = defaultAuthorEmail
	}
	return object.NewIdentity(name, email, now), nil
}

func loadUserConfig() (userConfig, error) {
	var cfg userConfig
	home, err := os.UserHomeDir()
	if err != nil {
		// No home directory: fall through to defaults.
		return cfg, nil
	}
	path := filepath.Join(home, ".guitconfig")
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("load %s: %w", path, err)
	}
	return cfg, nil
}
