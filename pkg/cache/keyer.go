package cache

// Keyer builds cache keys.
type Keyer interface {
	// AnalysisKey is the key for a lattice.Analysis of the graph whose
	// canonical JSON hashes to graphHash.
	AnalysisKey(graphHash string, opts AnalysisKeyOpts) string

	// ArtifactKey is the key for a rendered picture of the graph.
	ArtifactKey(graphHash string, opts ArtifactKeyOpts) string
}

// AnalysisKeyOpts are the inputs that change an analysis.
type AnalysisKeyOpts struct {
	Full bool `json:"full"`
}

// ArtifactKeyOpts are the inputs that change a rendering.
type ArtifactKeyOpts struct {
	Format    string `json:"format"`
	Engine    string `json:"engine,omitempty"`
	ShowLabel bool   `json:"show_label,omitempty"`
}

// DefaultKeyer builds keys of the form "<kind>:<sha256>".
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// AnalysisKey implements Keyer.
func (DefaultKeyer) AnalysisKey(graphHash string, opts AnalysisKeyOpts) string {
	return hashKey("analysis", graphHash, opts)
}

// ArtifactKey implements Keyer.
func (DefaultKeyer) ArtifactKey(graphHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", graphHash, opts)
}
