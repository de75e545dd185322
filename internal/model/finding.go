package model

import "fmt"

// Finding is a non-fatal validation annotation raised by the normalization
// engine. Findings are reported alongside the cleaned record and never block
// persistence.
type Finding struct {
	Field  string `json:"field"`
	Value  string `json:"value"`
	Reason string `json:"reason"`
}

func (f Finding) String() string {
	return fmt.Sprintf("%s: %s (%q)", f.Field, f.Reason, f.Value)
}
