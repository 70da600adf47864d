package plugincopy

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/karrick/godirwalk"
)

// DefaultDescriptorExtensions are the project file extensions looked for
// when locating a plugin's project root.
var DefaultDescriptorExtensions = []string{".csproj", ".proj"}

// FindProjectRoot searches the whole tree under sourceDir for a project
// descriptor named after sourceDir itself (e.g. MyPlugin/src/MyPlugin.csproj
// for sourceDir MyPlugin) and returns the directory containing it. The
// shallowest match wins; ties go to the lexically smaller path. found is false
// when there is no descriptor.
//
// Relative paths such as "." are resolved first, so the descriptor name is the
// directory's real name and root is always absolute.
func FindProjectRoot(sourceDir string, extensions []string) (root string, found bool, err error) {
	sourceDir, err = filepath.Abs(sourceDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve source directory: %w", err)
	}
	base := filepath.Base(sourceDir)
	wanted := make(map[string]bool, len(extensions))
	for _, ext := range extensions {
		wanted[base+ext] = true
	}

	bestDepth := -1
	err = godirwalk.Walk(sourceDir, &godirwalk.Options{
		Callback: func(osPathname string, de *godirwalk.Dirent) error {
			if de.IsDir() || !wanted[de.Name()] {
				return nil
			}
			dir := filepath.Dir(osPathname)
			depth := pathDepth(sourceDir, dir)
			if bestDepth < 0 || depth < bestDepth || (depth == bestDepth && dir < root) {
				root, bestDepth = dir, depth
			}
			return nil
		},
		Unsorted: true,
	})
	if err != nil {
		return "", false, fmt.Errorf("failed to search %s for %s project file: %w", sourceDir, base, err)
	}
	return root, bestDepth >= 0, nil
}

func pathDepth(base, dir string) int {
	rel, err := filepath.Rel(base, dir)
	if err != nil || rel == "." {
		return 0
	}
	return strings.Count(rel, string(filepath.Separator)) + 1
}

// matchingDirs lists the direct subdirectories of dir whose names belong to cat.
func matchingDirs(dir string, cat Category) ([]string, error) {
	dirents, err := godirwalk.ReadDirents(dir, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", dir, err)
	}

	var names []string
	for _, de := range dirents {
		if de.IsDir() && cat.Matches(de.Name()) {
			names = append(names, de.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}
