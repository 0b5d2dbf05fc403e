package entities

// BlobType is the tree entry type of a file.
const BlobType = "blob"

// TreeEntry is one raw entry of a recursive repository tree listing.
type TreeEntry struct {
	Path string
	Type string // "blob", "tree", "commit"
}

// TreeListing is a recursive tree as the host returned it. Truncated is set
// when the host itself cut the listing short.
type TreeListing struct {
	Entries   []TreeEntry
	Truncated bool
}

// FileEntry is a file path with its decoded text content. Remote and local
// sources produce the same shape.
type FileEntry struct {
	Path    string `json:"path"    yaml:"path"`
	Content string `json:"content" yaml:"content"`
}

// Envelope is the transport wrapper a hosting API delivers file content in.
type Envelope struct {
	Content  string
	Encoding string
}
