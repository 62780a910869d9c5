package report

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"

	"wellbeing/internal/model"
	"wellbeing/internal/scoring"
)

// Score thresholds used to build the highlights block
const (
	StrengthThreshold = 60
	WatchThreshold    = 40
)

var (
	workloadLabel    = regexp.MustCompile(`(?i)charge|workload`)
	recognitionLabel = regexp.MustCompile(`(?i)reconnaissance|recognition`)
	supportLabel     = regexp.MustCompile(`(?i)management|dispositifs|support`)
)

// Prompt is the pair of messages sent to the LLM
type Prompt struct {
	System string
	User   string
}

// Highlights pre-classifies the results for the model
type Highlights struct {
	Strengths    []string `json:"strengths"`
	WatchPoints  []string `json:"watchPoints"`
	Combinations []string `json:"combinations"`
}

type dataBlock struct {
	Locale     model.Locale         `json:"locale"`
	Results    []model.ReportResult `json:"results"`
	Highlights Highlights           `json:"highlights"`
}

// ParseLocale defaults an empty locale to French and rejects anything unsupported
func ParseLocale(s string) (model.Locale, error) {
	switch model.Locale(s) {
	case "":
		return model.LocaleFR, nil
	case model.LocaleFR, model.LocaleEN:
		return model.Locale(s), nil
	}
	return "", &InvalidRequestError{Reason: fmt.Sprintf("unsupported locale %q", s)}
}

// BuildReportRequest turns aggregated dimension scores into a report request.
// Values are rounded to one decimal here and nowhere else.
func BuildReportRequest(scores []model.DimensionScore, locale model.Locale) (model.ReportRequest, error) {
	loc, err := ParseLocale(string(locale))
	if err != nil {
		return model.ReportRequest{}, err
	}
	results := make([]model.ReportResult, 0, len(scores))
	for _, s := range scores {
		results = append(results, model.ReportResult{
			Label: s.Dimension,
			Value: scoring.RoundTenth(s.Average),
		})
	}
	req := model.ReportRequest{Locale: loc, Results: results}
	if err := ValidateRequest(req); err != nil {
		return model.ReportRequest{}, err
	}
	return req, nil
}

// ValidateRequest checks a request before anything is sent
func ValidateRequest(req model.ReportRequest) error {
	if _, err := ParseLocale(string(req.Locale)); err != nil {
		return err
	}
	if len(req.Results) == 0 {
		return &InvalidRequestError{Reason: "at least one dimension is required"}
	}
	seen := make(map[string]struct{}, len(req.Results))
	for i, r := range req.Results {
		if r.Label == "" {
			return &InvalidRequestError{Reason: fmt.Sprintf("result %d has no label", i)}
		}
		if _, dup := seen[r.Label]; dup {
			return &InvalidRequestError{Reason: fmt.Sprintf("dimension %q appears twice", r.Label)}
		}
		seen[r.Label] = struct{}{}
		if math.IsNaN(r.Value) || r.Value < 0 || r.Value > 100 {
			return &InvalidRequestError{Reason: fmt.Sprintf("dimension %q has value %v outside 0-100", r.Label, r.Value)}
		}
	}
	return nil
}

// HighlightsOf classifies results into strengths, watch points and
// known combinations of low scores.
func HighlightsOf(results []model.ReportResult) Highlights {
	h := Highlights{Strengths: []string{}, WatchPoints: []string{}, Combinations: []string{}}
	var lowWorkload, lowRecognition, lowSupport bool
	for _, r := range results {
		switch {
		case r.Value >= StrengthThreshold:
			h.Strengths = append(h.Strengths, r.Label)
		case r.Value < WatchThreshold:
			h.WatchPoints = append(h.WatchPoints, r.Label)
			lowWorkload = lowWorkload || workloadLabel.MatchString(r.Label)
			lowRecognition = lowRecognition || recognitionLabel.MatchString(r.Label)
			lowSupport = lowSupport || supportLabel.MatchString(r.Label)
		}
	}
	if lowWorkload && lowRecognition {
		h.Combinations = append(h.Combinations, "high workload + low recognition")
	}
	if lowWorkload && lowSupport {
		h.Combinations = append(h.Combinations, "high workload + low perceived support")
	}
	if lowRecognition && lowSupport {
		h.Combinations = append(h.Combinations, "low recognition + low perceived support")
	}
	return h
}

// BuildPrompt renders the system instructions and the JSON data block
func BuildPrompt(req model.ReportRequest) (Prompt, error) {
	if err := ValidateRequest(req); err != nil {
		return Prompt{}, err
	}
	loc, _ := ParseLocale(string(req.Locale))
	data, err := json.Marshal(dataBlock{
		Locale:     loc,
		Results:    req.Results,
		Highlights: HighlightsOf(req.Results),
	})
	if err != nil {
		return Prompt{}, fmt.Errorf("report: encode data block: %w", err)
	}
	return Prompt{System: Instructions, User: string(data)}, nil
}
