package repo

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// defaultConfig is written at init time. The core only ever consults
// core.repositoryformatversion; the rest exists for interoperability.
const defaultConfig = "[core]\n" +
	"\trepositoryformatversion = 0\n" +
	"\tfilemode = false\n" +
	"\tbare = false\n"

// checkFormatVersion validates core.repositoryformatversion in
// .git/config. A missing config file is an error; only format 0 is
// supported.
func (r *Repo) checkFormatVersion() error {
	path := filepath.Join(r.GitDir, "config")
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("configuration file missing at %s", path)
		}
		return fmt.Errorf("read config: %w", err)
	}
	defer f.Close()

	version, found := 0, false
	section := ""
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, ";"):
		case strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]"):
			section = strings.TrimSpace(line[1 : len(line)-1])
		default:
			key, value, ok := strings.Cut(line, "=")
			if !ok {
				continue
			}
			if section == "core" && strings.TrimSpace(key) == "repositoryformatversion" {
				v, err := strconv.Atoi(strings.TrimSpace(value))
				if err != nil {
					return fmt.Errorf("config: bad repositoryformatversion %q", strings.TrimSpace(value))
				}
				version, found = v, true
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	if found && version != 0 {
		return fmt.Errorf("config: unsupported repositoryformatversion %d", version)
	}
	return nil
}
