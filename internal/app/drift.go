package app

import "github.com/sergi/go-diff/diffmatchpatch"

// drift counts the characters added and removed going from the buffer to
// what is now on disk.
func drift(buffer, disk string) (added, removed int) {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffCleanupSemantic(dmp.DiffMain(buffer, disk, false))
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			added += len([]rune(d.Text))
		case diffmatchpatch.DiffDelete:
			removed += len([]rune(d.Text))
		}
	}
	return added, removed
}
