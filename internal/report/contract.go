package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"wellbeing/internal/model"
	"wellbeing/internal/validate"
)

var contractValidator = validate.New()

// DecodeResponse parses the model output and checks it against the
// ReportResponse contract. The content is never repaired: a payload that is
// not JSON is malformed, and JSON of the wrong shape is a contract violation.
func DecodeResponse(content string, req model.ReportRequest) (*model.ReportResponse, error) {
	raw := []byte(strings.TrimSpace(content))
	if len(raw) == 0 {
		return nil, &MalformedResponseError{Reason: "empty content"}
	}
	if !json.Valid(raw) {
		return nil, &MalformedResponseError{Reason: "content is not valid JSON"}
	}
	if raw[0] != '{' {
		return nil, &ContractViolationError{Violations: []string{"top-level value must be an object"}}
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	var resp model.ReportResponse
	if err := dec.Decode(&resp); err != nil {
		return nil, &ContractViolationError{Violations: []string{err.Error()}}
	}

	var violations []string
	if err := contractValidator.Struct(resp); err != nil {
		violations = append(violations, validate.Describe(err)...)
	}

	labels := req.Labels()
	keys := make([]string, 0, len(resp.DimensionAnalyses))
	for k := range resp.DimensionAnalyses {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if _, ok := labels[k]; !ok {
			violations = append(violations, fmt.Sprintf("dimensionAnalyses[%s]: not a requested dimension", k))
			continue
		}
		if err := contractValidator.Struct(resp.DimensionAnalyses[k]); err != nil {
			for _, d := range validate.Describe(err) {
				violations = append(violations, fmt.Sprintf("dimensionAnalyses[%s].%s", k, d))
			}
		}
	}

	if len(violations) > 0 {
		return nil, &ContractViolationError{Violations: violations}
	}
	return &resp, nil
}
