package render

import (
	"fmt"
	"io"

	"commitscope/models"
)

// WriteCounts writes the per-repository commit counts as a plain list,
// one "- name: N commits" line per repository, in the order given.
func WriteCounts(w io.Writer, counts []models.RepoCommitCount) error {
	for _, c := range counts {
		if _, err := fmt.Fprintf(w, "- %s: %d commits\n", c.Repo, c.Count); err != nil {
			return err
		}
	}
	return nil
}
