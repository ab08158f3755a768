package worker

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"plexify/internal/media"
)

// Order sorts claim candidates in place: episodic jobs first, grouped by
// collated series name and ordered by season then episode; jobs without a
// sort key keep their discovery order after all episodic jobs. The order is
// advisory only, a preference for which claim to attempt first.
func Order(jobs []*media.Job) {
	c := collate.New(language.Und, collate.IgnoreCase)
	sort.SliceStable(jobs, func(i, j int) bool {
		a, b := jobs[i].SortKey, jobs[j].SortKey
		switch {
		case a != nil && b == nil:
			return true
		case a == nil:
			return false
		}
		if cmp := c.CompareString(a.Series, b.Series); cmp != 0 {
			return cmp < 0
		}
		if a.Season != b.Season {
			return a.Season < b.Season
		}
		return a.Episode < b.Episode
	})
}
