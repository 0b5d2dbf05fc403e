package entities

const (
	// MaxTreeEntries caps the tree carried in a bundle.
	MaxTreeEntries = 1000

	DefaultMaxFiles = 5
	MinMaxFiles     = 1
	MaxMaxFiles     = 200
)

// FetchStage names the best-effort stage a fetch failure happened in.
type FetchStage string

const (
	StageReadme   FetchStage = "readme"
	StageManifest FetchStage = "manifest"
	StageSource   FetchStage = "source"
)

// FetchFailure records why a best-effort fetch produced nothing.
type FetchFailure struct {
	Path   string     `json:"path"   yaml:"path"`
	Stage  FetchStage `json:"stage"  yaml:"stage"`
	Reason string     `json:"reason" yaml:"reason"`
}

// IngestionResult is the bundle produced for one repository.
type IngestionResult struct {
	Info         RepositoryInfo `json:"info"                  yaml:"info"`
	Tree         []string       `json:"tree"                  yaml:"tree"`
	Readme       string         `json:"readme"                yaml:"readme"`
	Dependencies string         `json:"dependencies"          yaml:"dependencies"`
	SourceFiles  []FileEntry    `json:"source_files"          yaml:"source_files"`
	IsTruncated  bool           `json:"is_truncated"          yaml:"is_truncated"`
	Diagnostics  []FetchFailure `json:"diagnostics,omitempty" yaml:"diagnostics,omitempty"`
}

// ResolvedTree is the filtered, capped tree of a repository plus its metadata.
type ResolvedTree struct {
	DefaultBranch string
	Description   string
	Tree          []string
	IsTruncated   bool
}

// IngestOptions are the caller-supplied inputs of one ingestion.
type IngestOptions struct {
	Provider   string     `json:"provider,omitempty"`
	Repository Repository `json:"repository"`
	Token      string     `json:"-"`
	// MaxFiles of zero selects DefaultMaxFiles; anything else is clamped.
	MaxFiles int `json:"max_files,omitempty"`
}

// ClampMaxFiles applies the default and the [MinMaxFiles, MaxMaxFiles] bounds.
func ClampMaxFiles(n int) int {
	switch {
	case n == 0:
		return DefaultMaxFiles
	case n < MinMaxFiles:
		return MinMaxFiles
	case n > MaxMaxFiles:
		return MaxMaxFiles
	default:
		return n
	}
}
