package repo

import (
	"github.com/guidurbano/write-yourself-a-git/pkg/object"
)

// Repo represents an opened repository: the worktree, the .git control
// directory, and the object store rooted inside it. The handle is
// passed explicitly to every operation so multiple repositories can be
// open in one process.
type Repo struct {
	WorkTree string        // working directory root
	GitDir   string        // .git/ control directory
	Store    *object.Store // content-addressed object store
}
