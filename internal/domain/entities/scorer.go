package entities

import (
	"sort"
	"strings"
)

const (
	testPenalty      = 50
	auxiliaryPenalty = 30
	coreDirBonus     = 20
	importantBonus   = 10
)

//nolint:gochecknoglobals // fixed rule tables
var (
	auxiliaryKeywords = []string{
		"build", "setup", "config", "webpack", "vite", "rollup", "gulpfile",
		"backup", "manage.py", "scripts/", "tools/", "docs/", "example", "demo", "migrations/",
	}

	coreDirs = []string{"src/", "lib/", "app/", "core/", "pkg/", "internal/"}

	importantNames = []string{
		"main", "index", "app", "server", "core", "manager", "parser", "api",
		"router", "handler", "controller", "service", "model", "database",
	}
)

// ScoredPath pairs a path with its relevance score.
type ScoredPath struct {
	Path  string
	Score int
}

// Score estimates how useful a file is to a reader of the repository.
// Higher is better; every rule applies independently.
func Score(path string) int {
	lower := strings.ToLower(path)
	parts := strings.Split(lower, "/")
	fileName := parts[len(parts)-1]

	score := 0

	if isTestLike(lower, fileName) {
		score -= testPenalty
	}
	if containsAny(lower, auxiliaryKeywords) {
		score -= auxiliaryPenalty
	}
	for _, dir := range coreDirs {
		if strings.HasPrefix(lower, dir) || strings.Contains(lower, "/"+dir) {
			score += coreDirBonus
			break
		}
	}
	if containsAny(fileName, importantNames) {
		score += importantBonus
	}

	return score - len(parts)
}

func isTestLike(lower, fileName string) bool {
	return strings.Contains(lower, "/test/") ||
		strings.Contains(lower, "/tests/") ||
		strings.Contains(lower, "__tests__") ||
		strings.Contains(fileName, ".test.") ||
		strings.Contains(fileName, ".spec.") ||
		strings.HasPrefix(fileName, "test_") ||
		strings.HasSuffix(fileName, "_test.go")
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}

// Rank scores paths and orders them best first. Equal scores keep input order.
func Rank(paths []string) []ScoredPath {
	scored := make([]ScoredPath, len(paths))
	for i, p := range paths {
		scored[i] = ScoredPath{Path: p, Score: Score(p)}
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	return scored
}

// SelectTop returns the best n paths of the tree's source candidates.
func SelectTop(tree []string, n int) []string {
	ranked := Rank(SourceCandidates(tree))
	if len(ranked) > n {
		ranked = ranked[:n]
	}

	paths := make([]string, len(ranked))
	for i, s := range ranked {
		paths[i] = s.Path
	}
	return paths
}
