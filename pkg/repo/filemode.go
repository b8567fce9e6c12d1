package repo

import (
	"os"

	"github.com/guidurbano/write-yourself-a-git/pkg/object"
)

// isDirMode matches both the canonical "40000" and the zero-padded
// "040000" some writers emit.
func isDirMode(mode string) bool {
	return mode == object.ModeDir || mode == "0"+object.ModeDir
}

func isFileMode(mode string) bool {
	return mode == object.ModeFile || mode == object.ModeExecutable
}

func filePermFromMode(mode string) os.FileMode {
	if mode == object.ModeExecutable {
		return 0o755
	}
	return 0o644
}
