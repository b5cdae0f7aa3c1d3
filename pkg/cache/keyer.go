package cache

// Keyer derives cache keys. Implementations must be deterministic.
type Keyer interface {
	// DocumentKey identifies a decoded document by the hash of its canonical
	// encoding.
	DocumentKey(docHash string) string

	// ArtifactKey identifies one rendered output of a document.
	ArtifactKey(docHash string, opts ArtifactKeyOpts) string
}

// ArtifactKeyOpts holds every render option that changes the output bytes.
type ArtifactKeyOpts struct {
	Format     string  `json:"format"`
	Engine     string  `json:"engine,omitempty"`
	IDPrefix   string  `json:"id_prefix,omitempty"`
	Responsive bool    `json:"responsive,omitempty"`
	Scale      float64 `json:"scale,omitempty"`
}

// DefaultKeyer produces "kind:hash" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// DocumentKey returns "doc:<hash>".
func (DefaultKeyer) DocumentKey(docHash string) string {
	return "doc:" + docHash
}

// ArtifactKey hashes the document hash together with the options.
func (DefaultKeyer) ArtifactKey(docHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", docHash, opts)
}
