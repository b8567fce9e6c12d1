package repo

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/guidurbano/write-yourself-a-git/pkg/object"
)

const defaultDescription = "Unnamed repository; edit this file 'description' to name the repository.\n"

// Init creates a new repository at path. It creates the .git/ control
// directory: objects/, refs/heads/, refs/tags/, HEAD pointing at the
// default branch, description, and the INI config. Returns an error if
// a .git/ directory already exists.
func Init(path string) (*Repo, error) {
	gitDir := filepath.Join(path, ".git")

	if _, err := os.Stat(gitDir); err == nil {
		return nil, fmt.Errorf("init: repository already exists at %s", gitDir)
	}

	dirs := []string{
		filepath.Join(gitDir, "objects"),
		filepath.Join(gitDir, "refs", "heads"),
		filepath.Join(gitDir, "refs", "tags"),
	}
	for _, d := range dirs {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return nil, fmt.Errorf("init: mkdir %s: %w", d, err)
		}
	}

	files := map[string]string{
		"HEAD":        "ref: refs/heads/main\n",
		"description": defaultDescription,
		"config":      defaultConfig,
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(gitDir, name), []byte(content), 0o644); err != nil {
			return nil, fmt.Errorf("init: write %s: %w", name, err)
		}
	}

	return &Repo{
		WorkTree: path,
		GitDir:   gitDir,
		Store:    object.NewStore(gitDir),
	}, nil
}

// Open searches upward from path for a .git/ directory and opens the
// repository. The config's repositoryformatversion is validated; only
// format 0 is supported.
func Open(path string) (*Repo, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("open: abs path: %w", err)
	}

	cur := abs
	for {
		gitDir := filepath.Join(cur, ".git")
		info, err := os.Stat(gitDir)
		if err == nil && info.IsDir() {
			r := &Repo{
				WorkTree: cur,
				GitDir:   gitDir,
				Store:    object.NewStore(gitDir),
			}
			if err := r.checkFormatVersion(); err != nil {
				return nil, fmt.Errorf("open: %w", err)
			}
			return r, nil
		}

		parent := filepath.Dir(cur)
		if parent == cur {
			return nil, fmt.Errorf("open: not a repository (or any parent up to /)")
		}
		cur = parent
	}
}
