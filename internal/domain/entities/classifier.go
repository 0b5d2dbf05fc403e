package entities

import "strings"

//nolint:gochecknoglobals // fixed rule tables
var (
	hardIgnoreNames = []string{"venv", ".venv", "node_modules", ".git", "__pycache__", "dist", "build"}

	secretSuffixes = []string{
		".env", ".pem", ".key", ".cert", ".p12",
		"secrets.json", "credentials.json", "id_rsa",
	}

	// ManifestNames is ordered: dependencies are concatenated in this order.
	ManifestNames = []string{
		"package.json", "requirements.txt", "go.mod",
		"Cargo.toml", "pom.xml", "build.gradle",
	}

	sourceExtensions = []string{
		".ts", ".tsx", ".js", ".jsx", ".py", ".go", ".rs",
		".java", ".cpp", ".c", ".h", ".cs", ".md",
	}
)

// PathClass is the classification of a repository-relative path.
type PathClass struct {
	HardIgnored bool
	Secret      bool
}

// Retained reports whether the path stays in the working tree.
func (c PathClass) Retained() bool {
	return !c.HardIgnored && !c.Secret
}

// Classify decides whether a path is noise or a secret.
func Classify(path string) PathClass {
	return PathClass{
		HardIgnored: IsHardIgnored(path),
		Secret:      IsSecret(path),
	}
}

// IsHardIgnored matches the ignore names on full segment boundaries only,
// so "build/x" is ignored but "builder/x" is not.
func IsHardIgnored(path string) bool {
	for _, name := range hardIgnoreNames {
		if strings.HasPrefix(path, name+"/") || strings.Contains(path, "/"+name+"/") {
			return true
		}
	}
	return false
}

// IsSecret matches secret suffixes at the end of the path. The segment form
// ("/<suffix>/") practically never fires for file suffixes but is kept.
func IsSecret(path string) bool {
	for _, suffix := range secretSuffixes {
		if strings.HasSuffix(path, suffix) || strings.Contains(path, "/"+suffix+"/") {
			return true
		}
	}
	return false
}

// IsManifest reports whether path is one of the recognized root-level manifests.
func IsManifest(path string) bool {
	for _, name := range ManifestNames {
		if path == name {
			return true
		}
	}
	return false
}

// IsReadme reports whether path is the root README selected by the host.
func IsReadme(path string) bool {
	return strings.ToLower(path) == "readme.md"
}

// IsSourceCandidate reports whether path may be scored and selected.
func IsSourceCandidate(path string) bool {
	if IsManifest(path) || IsReadme(path) {
		return false
	}
	for _, ext := range sourceExtensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}

// FilterTree keeps blob entries whose path is retained, in input order.
func FilterTree(entries []TreeEntry) []string {
	paths := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.Type != BlobType {
			continue
		}
		if !Classify(entry.Path).Retained() {
			continue
		}
		paths = append(paths, entry.Path)
	}
	return paths
}

// TruncateTree caps the tree at MaxTreeEntries, keeping the leading entries.
func TruncateTree(paths []string) ([]string, bool) {
	if len(paths) > MaxTreeEntries {
		return paths[:MaxTreeEntries], true
	}
	return paths, false
}

// PresentManifests returns the manifest names present in the tree, in manifest order.
func PresentManifests(tree []string) []string {
	present := make(map[string]struct{}, len(tree))
	for _, p := range tree {
		if IsManifest(p) {
			present[p] = struct{}{}
		}
	}

	var names []string
	for _, name := range ManifestNames {
		if _, ok := present[name]; ok {
			names = append(names, name)
		}
	}
	return names
}

// SourceCandidates returns the candidate paths of the tree, in tree order.
func SourceCandidates(tree []string) []string {
	var candidates []string
	for _, p := range tree {
		if IsSourceCandidate(p) {
			candidates = append(candidates, p)
		}
	}
	return candidates
}
