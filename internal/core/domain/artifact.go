package domain

import "sort"

// Artifact is one named output file produced by a generator variant.
type Artifact struct {
	Path    string
	Content []byte
}

// ArtifactSet is the complete output of one generator invocation: a small tree
// of named files plus the names of the source archives that must travel
// alongside them. An ArtifactSet is only ever complete; a generator that fails
// returns no set at all.
type ArtifactSet struct {
	// Blueprint is the name of the blueprint the set was generated from.
	Blueprint string

	// ArchiveDir is the directory, relative to the set root, where archive
	// bytes must be placed for the target tooling to find them.
	ArchiveDir string

	artifacts []Artifact
	archives  []string
}

// NewArtifactSet creates an empty artifact set for the named blueprint.
func NewArtifactSet(blueprint string) *ArtifactSet {
	return &ArtifactSet{Blueprint: blueprint}
}

// Add appends one output file to the set.
func (s *ArtifactSet) Add(path string, content []byte) {
	s.artifacts = append(s.artifacts, Artifact{Path: path, Content: content})
}

// AddArchive records that the named archive must ship with the set.
func (s *ArtifactSet) AddArchive(name string) {
	s.archives = append(s.archives, name)
}

// Artifacts returns the output files sorted by path.
func (s *ArtifactSet) Artifacts() []Artifact {
	out := make([]Artifact, len(s.artifacts))
	copy(out, s.artifacts)
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}

// Archives returns the referenced archive names sorted.
func (s *ArtifactSet) Archives() []string {
	out := make([]string, len(s.archives))
	copy(out, s.archives)
	sort.Strings(out)
	return out
}
