package media

import (
	"path"
	"regexp"
	"strconv"
	"strings"
)

// SortKey carries episodic ordering metadata parsed from the file path.
// Jobs without a sort key are processed in discovery order after all
// episodic jobs.
type SortKey struct {
	Series  string `json:"series"`
	Season  int    `json:"season"`
	Episode int    `json:"episode"`
}

var episodePattern = regexp.MustCompile(`(?i)\bS(\d{1,2})[ ._-]?E(\d{1,3})\b`)

// ParseSortKey extracts series, season, and episode numbers from an
// "SxxEyy"-style file name. It returns nil when the path carries no episodic
// marker.
func ParseSortKey(relPath string) *SortKey {
	base := path.Base(relPath)
	stem := strings.TrimSuffix(base, path.Ext(base))

	loc := episodePattern.FindStringSubmatchIndex(stem)
	if loc == nil {
		return nil
	}

	season, _ := strconv.Atoi(stem[loc[2]:loc[3]])
	episode, _ := strconv.Atoi(stem[loc[4]:loc[5]])

	series := cleanSeriesName(stem[:loc[0]])
	if series == "" {
		// Fall back to the containing directory, e.g. "Show/Season 1/S01E02.mkv".
		series = cleanSeriesName(seriesFromDir(relPath))
	}

	return &SortKey{Series: series, Season: season, Episode: episode}
}

func seriesFromDir(relPath string) string {
	dir := path.Dir(relPath)
	for dir != "." && dir != "/" {
		base := path.Base(dir)
		if !seasonDirPattern.MatchString(base) {
			return base
		}
		dir = path.Dir(dir)
	}
	return ""
}

var seasonDirPattern = regexp.MustCompile(`(?i)^(season|series)[ ._-]*\d+$`)

func cleanSeriesName(raw string) string {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case '.', '_', '-':
			return ' '
		default:
			return r
		}
	}, raw)
	return strings.Join(strings.Fields(cleaned), " ")
}
