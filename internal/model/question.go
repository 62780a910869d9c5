package model

// Scale is the Likert response range of a question
type Scale struct {
	Min    int      `json:"min" yaml:"min"`
	Max    int      `json:"max" yaml:"max"`
	Labels []string `json:"labels,omitempty" yaml:"labels,omitempty"`
}

// Valid reports whether the scale has a usable range
func (s Scale) Valid() bool {
	return s.Min < s.Max
}

// Contains reports whether v lies within [Min, Max]
func (s Scale) Contains(v float64) bool {
	return v >= float64(s.Min) && v <= float64(s.Max)
}

// Question is an immutable catalog entry bound to exactly one dimension
type Question struct {
	ID        string `json:"id" yaml:"id"`               // e.g. "q2_3"
	Num       int    `json:"num" yaml:"num"`             // display order, 1-based
	Text      string `json:"text" yaml:"text"`
	Dimension string `json:"dimension" yaml:"dimension"`
	Scale     Scale  `json:"scale" yaml:"scale"`
	Inverted  bool   `json:"inverted,omitempty" yaml:"inverted,omitempty"` // higher raw answer = worse outcome
	Source    string `json:"-" yaml:"source,omitempty"`                   // internal only, never exposed
}
