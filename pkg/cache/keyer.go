package cache

// ArtifactKeyOpts holds every input that determines a rendered artifact.
type ArtifactKeyOpts struct {
	Algorithm string `json:"algorithm"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Seed      uint64 `json:"seed"`
	Format    string `json:"format"`
	Wall      string `json:"wall,omitempty"`
	Open      string `json:"open,omitempty"`
	Color     string `json:"color,omitempty"`
	Labels    bool   `json:"labels,omitempty"`
}

// Keyer builds cache keys.
type Keyer interface {
	// ArtifactKey returns the key of a rendered artifact.
	ArtifactKey(opts ArtifactKeyOpts) string
}

// DefaultKeyer hashes key options into fixed-length keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default Keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ArtifactKey returns "artifact:<format>:<sha256 of opts>".
func (DefaultKeyer) ArtifactKey(opts ArtifactKeyOpts) string {
	return artifactDigest(opts)
}
