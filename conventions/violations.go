package conventions

import "strings"

// Violation is a single field-level schema violation found while decoding
// or validating a convention record.
type Violation struct {
	// Field is the wire-format path of the offending field, e.g.
	// "spatial:transform" or "multiscales.layout[2].asset".
	Field string `json:"field"`

	// Message is the human-readable description of the violation. Messages
	// are self-contained (they name the field and, where useful, the
	// offending value) so they can be reported as plain strings.
	Message string `json:"message"`
}

// Violations is an ordered collection of schema violations. A nil or empty
// collection means the record is valid.
//
// Violations implements error so that fail-fast callers (the metadata
// builders) can return it directly, while the validation engine flattens it
// into per-convention message lists.
type Violations []Violation

// Error joins all violation messages into a single string.
func (vs Violations) Error() string {
	msgs := vs.Messages()
	return strings.Join(msgs, "; ")
}

// Messages returns the human-readable message of every violation, in order.
func (vs Violations) Messages() []string {
	if len(vs) == 0 {
		return nil
	}
	msgs := make([]string, len(vs))
	for i, v := range vs {
		msgs[i] = v.Message
	}
	return msgs
}

// add appends a violation for the given field.
func (vs *Violations) add(field, message string) {
	*vs = append(*vs, Violation{Field: field, Message: message})
}
