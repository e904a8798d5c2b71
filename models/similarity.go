package models

// SimilarCase pairs a case record with a model-produced similarity score and
// rationale. It exists only for the lifetime of one precedent request and is
// never persisted.
type SimilarCase struct {
	Case
	SimilarityScore float64 `json:"similarity_score"`
	Reasoning       string  `json:"reasoning"`
}
