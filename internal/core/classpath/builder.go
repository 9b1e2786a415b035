// Package classpath assembles the ordered archive path list handed to
// the runtime entry point.
package classpath

import "strings"

// Separator joins classpath entries.
const Separator = ":"

// Build produces the classpath entry list for a launch. Dependency
// paths are prepended in reverse declaration order immediately before
// the primary path: each dependency, as it is processed, is placed at
// the front of the growing list, so the last-declared dependency ends
// up first. The fixed suffix paths are always appended last. No
// de-duplication is performed.
func Build(primaryPath string, dependencyPaths, suffixPaths []string) []string {
	entries := make([]string, 0, len(dependencyPaths)+1+len(suffixPaths))
	entries = append(entries, primaryPath)
	for _, dep := range dependencyPaths {
		entries = append([]string{dep}, entries...)
	}
	entries = append(entries, suffixPaths...)
	return entries
}

// Join renders entries as a single colon-delimited classpath string.
func Join(entries []string) string {
	return strings.Join(entries, Separator)
}
