package model

// NormalizedScore is one answer mapped onto the common 0-100 scale
type NormalizedScore struct {
	QuestionID string  `json:"questionId" bson:"questionId"`
	Dimension  string  `json:"dimension" bson:"dimension"`
	Normalized float64 `json:"normalized" bson:"normalized"`
}

// DimensionScore is the mean of all normalized scores sharing a dimension
type DimensionScore struct {
	Dimension string  `json:"dimension" bson:"dimension"`
	Average   float64 `json:"average" bson:"average"`
	ItemCount int     `json:"itemCount" bson:"itemCount"`
}

// Band is the display category of a dimension score
type Band string

const (
	BandFavorable    Band = "favorable"
	BandIntermediate Band = "intermediate"
	BandSensitive    Band = "sensitive"
)

// ScoredDimension is a DimensionScore decorated for display
type ScoredDimension struct {
	DimensionScore
	Rounded float64 `json:"rounded" bson:"rounded"`
	Band    Band    `json:"band" bson:"band"`
}
