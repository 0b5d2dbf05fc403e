package entities

// MaxLocalFileSize is the size ceiling of files read by a local scan.
const MaxLocalFileSize = 1_000_000

// ScanResult is what a local directory scan produces. Info is nil when the
// directory is not inside a git checkout with a recognizable origin.
type ScanResult struct {
	Root  string          `json:"root"           yaml:"root"`
	Info  *RepositoryInfo `json:"info,omitempty" yaml:"info,omitempty"`
	Files []FileEntry     `json:"files"          yaml:"files"`
}

// CheckoutInfo is what the local git checkout reports about itself.
type CheckoutInfo struct {
	Remote *RemoteInfo
	Branch string
}
