package layout

import "fmt"

// MalformedInputError reports an extractor record that could not be turned
// into a fragment. The record is dropped; conversion continues.
type MalformedInputError struct {
	// Page is the 1-based page of the record
	Page int

	// Index is the record's position in the input (0-based)
	Index int

	// Field names the missing or unparsable attribute
	Field string

	// Value is the raw attribute value, empty when missing
	Value string

	Err error
}

func (e *MalformedInputError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("page %d, record %d: missing %s", e.Page, e.Index, e.Field)
	}
	return fmt.Sprintf("page %d, record %d: malformed %s %q: %v", e.Page, e.Index, e.Field, e.Value, e.Err)
}

func (e *MalformedInputError) Unwrap() error {
	return e.Err
}

// DegenerateCalibrationWarning reports a threshold for which calibration
// found no usable statistic. The documented default was used instead.
type DegenerateCalibrationWarning struct {
	Threshold string
	Default   float64
	Reason    string
}

func (w *DegenerateCalibrationWarning) Error() string {
	return fmt.Sprintf("cannot calibrate %s (%s), using default %.1f", w.Threshold, w.Reason, w.Default)
}

// ConfigurationConflictError reports contradictory explicit settings, such
// as a header cutoff at or below the footer cutoff. Conversion refuses to run
// rather than produce silently empty output.
type ConfigurationConflictError struct {
	Field  string
	Reason string
}

func (e *ConfigurationConflictError) Error() string {
	return fmt.Sprintf("configuration conflict: %s: %s", e.Field, e.Reason)
}
