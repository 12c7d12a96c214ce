package serve

import (
	"errors"

	"github.com/geozarr/toolkit/validate"
)

// ValidateRequest is the body of POST /api/validate. Exactly one input
// mode applies: a store reference (URL, optionally Group) or an inline
// attribute mapping.
type ValidateRequest struct {
	URL        string         `json:"url,omitempty"`
	Group      string         `json:"group,omitempty"`
	Attributes map[string]any `json:"attributes,omitempty"`
}

// ErrNoInput rejects requests that carry neither a url nor attributes.
var ErrNoInput = errors.New("either 'url' or 'attributes' must be provided")

// Validate checks the client input before it reaches the validation core.
func (r ValidateRequest) Validate() error {
	if r.URL == "" && r.Attributes == nil {
		return ErrNoInput
	}
	return nil
}

// ConventionResult is the validation outcome for a single convention.
type ConventionResult struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

// ValidateResponse is the body of a successful POST /api/validate
// exchange. Error is set (and Valid false, with empty Conventions and
// Results) when the store could not be opened or read.
type ValidateResponse struct {
	URL         string                      `json:"url,omitempty"`
	Group       string                      `json:"group,omitempty"`
	Conventions []string                    `json:"conventions"`
	Results     map[string]ConventionResult `json:"results"`
	Valid       bool                        `json:"valid"`
	Error       string                      `json:"error,omitempty"`
}

// fill populates Results and Valid from engine results, normalizing nil
// error lists to empty slices so the wire format is stable.
func (r *ValidateResponse) fill(results validate.Results) {
	for name, errs := range results {
		if errs == nil {
			errs = []string{}
		}
		r.Results[name] = ConventionResult{Valid: len(errs) == 0, Errors: errs}
	}
	r.Valid = results.Valid()
}
