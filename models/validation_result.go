// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"bytes"
	"encoding/json"
)

// JSON keys of the optional ValidationMeta fields.
const (
	MetaDataAssetName        = "data_asset_name"
	MetaExpectationSuiteName = "expectation_suite_name"
	MetaRunID                = "run_id"
	MetaBatchKwargs          = "batch_kwargs"
	MetaResultReference      = "result_reference"
	MetaDatasetReference     = "dataset_reference"
)

// ValidationResult is the record produced by a validation run. It is the
// input of the notification formatter and is usually decoded from the JSON
// document written by the validation operator.
type ValidationResult struct {
	// Success reports whether every evaluated expectation was met.
	Success bool `json:"success"`

	// Statistics holds the expectation counters of the run.
	Statistics Statistics `json:"statistics"`

	// Meta carries descriptive data about the validated batch. It is nil
	// when the producer did not attach any metadata.
	Meta *ValidationMeta `json:"meta,omitempty"`
}

// Statistics holds the expectation counters of a single validation run.
type Statistics struct {
	// SuccessfulExpectations is the number of expectations that were met.
	SuccessfulExpectations int `json:"successful_expectations"`

	// EvaluatedExpectations is the total number of expectations evaluated.
	EvaluatedExpectations int `json:"evaluated_expectations"`
}

// ValidationMeta describes the validated batch. Every field is optional and
// absence is meaningful: the formatter only renders the blocks whose source
// field is present. A key decoded with an explicit JSON null is present
// but null; see [ValidationMeta.IsNull].
type ValidationMeta struct {
	DataAssetName        *string        `json:"data_asset_name,omitempty"`
	ExpectationSuiteName *string        `json:"expectation_suite_name,omitempty"`
	RunID                *string        `json:"run_id,omitempty"`
	BatchKwargs          map[string]any `json:"batch_kwargs,omitempty"`
	ResultReference      *string        `json:"result_reference,omitempty"`
	DatasetReference     *string        `json:"dataset_reference,omitempty"`

	nulls map[string]bool
}

// UnmarshalJSON decodes the meta fields and records which keys held null.
func (m *ValidationMeta) UnmarshalJSON(data []byte) error {
	type plain ValidationMeta
	var decoded plain
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*m = ValidationMeta(decoded)
	for key, value := range raw {
		if bytes.Equal(bytes.TrimSpace(value), []byte("null")) {
			m.SetNull(key)
		}
	}
	return nil
}

// SetNull marks key as present with a null value.
func (m *ValidationMeta) SetNull(key string) {
	if m.nulls == nil {
		m.nulls = make(map[string]bool)
	}
	m.nulls[key] = true
}

// IsNull reports whether key was present with a null value.
func (m *ValidationMeta) IsNull(key string) bool {
	return m != nil && m.nulls[key]
}

// StringPtr returns a pointer to s. It is handy when filling the optional
// fields of [ValidationMeta].
func StringPtr(s string) *string {
	return &s
}
