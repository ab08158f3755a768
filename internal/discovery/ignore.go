package discovery

import (
	"bufio"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
)

// IgnoreFileName is looked for in every directory of the media tree.
const IgnoreFileName = ".plexifyignore"

type ignorePattern struct {
	glob    string
	negate  bool
	dirOnly bool
}

// Filter applies .plexifyignore patterns. Patterns are scoped to the
// directory holding their ignore file, later and deeper matches win, "!"
// negates, and a trailing "/" restricts a pattern to directories.
type Filter struct {
	// byDir maps a slash-separated directory (relative to the media root,
	// "" for the root itself) to its patterns, in file order.
	byDir map[string][]ignorePattern
	dirs  []string
}

// LoadFilter collects every .plexifyignore in the tree rooted at mediaRoot.
func LoadFilter(mediaRoot string) (*Filter, error) {
	f := &Filter{byDir: make(map[string][]ignorePattern)}

	err := filepath.WalkDir(mediaRoot, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // unreadable subtree, handled by the walker proper
		}
		if d.IsDir() || d.Name() != IgnoreFileName {
			return nil
		}
		rel, relErr := filepath.Rel(mediaRoot, filepath.Dir(p))
		if relErr != nil {
			return relErr
		}
		dir := filepath.ToSlash(rel)
		if dir == "." {
			dir = ""
		}
		patterns, loadErr := loadIgnoreFile(p)
		if loadErr != nil {
			return loadErr
		}
		if len(patterns) > 0 {
			f.byDir[dir] = patterns
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("load ignore files: %w", err)
	}

	for dir := range f.byDir {
		f.dirs = append(f.dirs, dir)
	}
	// Root first, deeper directories later so they take precedence.
	sort.Slice(f.dirs, func(i, j int) bool {
		return strings.Count(f.dirs[i], "/")+len(f.dirs[i]) < strings.Count(f.dirs[j], "/")+len(f.dirs[j])
	})
	return f, nil
}

func loadIgnoreFile(p string) ([]ignorePattern, error) {
	file, err := os.Open(p)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var patterns []ignorePattern
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		pat := ignorePattern{glob: line}
		if strings.HasPrefix(pat.glob, "!") {
			pat.negate = true
			pat.glob = strings.TrimPrefix(pat.glob, "!")
		}
		if strings.HasSuffix(pat.glob, "/") {
			pat.dirOnly = true
			pat.glob = strings.TrimSuffix(pat.glob, "/")
		}
		if pat.glob == "" {
			continue
		}
		if _, err := path.Match(pat.glob, "probe"); err != nil {
			continue // malformed pattern, same tolerance as the scanner
		}
		patterns = append(patterns, pat)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return patterns, nil
}

// Ignored reports whether the slash-separated path rel (relative to the
// media root) is excluded. The last matching pattern decides.
func (f *Filter) Ignored(rel string, isDir bool) bool {
	if f == nil || len(f.byDir) == 0 {
		return false
	}

	ignored := false
	for _, dir := range f.dirs {
		sub := rel
		if dir != "" {
			if !strings.HasPrefix(rel, dir+"/") {
				continue
			}
			sub = strings.TrimPrefix(rel, dir+"/")
		}
		for _, pat := range f.byDir[dir] {
			if pat.dirOnly && !isDir {
				continue
			}
			if matchPattern(pat.glob, sub) {
				ignored = !pat.negate
			}
		}
	}
	return ignored
}

func matchPattern(glob, rel string) bool {
	if strings.Contains(glob, "/") {
		ok, _ := path.Match(glob, rel)
		return ok
	}
	// Bare patterns match any path segment, gitignore style.
	for _, segment := range strings.Split(rel, "/") {
		if ok, _ := path.Match(glob, segment); ok {
			return true
		}
	}
	return false
}
