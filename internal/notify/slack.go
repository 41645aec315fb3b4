package notify

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-data-context/models"
)

const (
	blockTypeSection = "section"
	blockTypeContext = "context"
	textTypeMarkdown = "mrkdwn"

	statusSuccess = "Success :tada:"
	statusFailed  = "Failed :x:"

	noValidationText = "No validation occurred. Please ensure you passed a validation_json."
	// noneText renders a missing run id and any meta value present as null.
	noneText         = "None"

	// footerTimeLayout renders as MM/DD/YY HH:MM:SS.
	footerTimeLayout = "01/02/06 15:04:05"
	// noNameTimeLayout is an ISO 8601 timestamp with the colons removed.
	noNameTimeLayout = "2006-01-02T150405.000000"
)

// SlackRequest is the JSON body of a Slack incoming-webhook message.
type SlackRequest struct {
	Blocks []Block `json:"blocks"`
}

// Block is a single Slack layout block. Section blocks carry Text, context
// blocks carry Elements.
type Block struct {
	Type     string       `json:"type"`
	Text     *TextObject  `json:"text,omitempty"`
	Elements []TextObject `json:"elements,omitempty"`
}

// TextObject is a Slack text composition object.
type TextObject struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

func markdownSection(text string) Block {
	return Block{Type: blockTypeSection, Text: &TextObject{Type: textTypeMarkdown, Text: text}}
}

// BuildSlackRequest renders result as a Slack message.
//
// The message always starts with a summary section and ends with a context
// footer holding the run id and now. Between them, a batch kwargs section,
// a validation report section and a data asset section are added for each
// of meta.batch_kwargs, meta.result_reference and meta.dataset_reference
// that is present, even when its value is null. A nil result produces a summary saying that no
// validation occurred.
func BuildSlackRequest(result *models.ValidationResult, now time.Time) SlackRequest {
	runID := noneText
	summary := noValidationText
	var details []Block

	if result != nil {
		meta := result.Meta
		if meta == nil {
			meta = &models.ValidationMeta{}
		}

		dataAssetName := "no_name_provided_" + now.UTC().Format(noNameTimeLayout) + "Z"
		if meta.DataAssetName != nil || meta.IsNull(models.MetaDataAssetName) {
			dataAssetName = textOrNone(meta.DataAssetName)
		}
		if meta.RunID != nil {
			runID = *meta.RunID
		}

		status := statusFailed
		if result.Success {
			status = statusSuccess
		}

		summary = fmt.Sprintf("*Validated batch from data asset:* `%s`\n*Status: %s*\n%d of %d expectations were met\n\n",
			dataAssetName, status,
			result.Statistics.SuccessfulExpectations, result.Statistics.EvaluatedExpectations)

		if meta.BatchKwargs != nil || meta.IsNull(models.MetaBatchKwargs) {
			details = append(details, markdownSection("Batch kwargs: "+formatBatchKwargs(meta.BatchKwargs)))
		}
		if meta.ResultReference != nil || meta.IsNull(models.MetaResultReference) {
			details = append(details, markdownSection("- *Validation Report*: "+textOrNone(meta.ResultReference)))
		}
		if meta.DatasetReference != nil || meta.IsNull(models.MetaDatasetReference) {
			details = append(details, markdownSection("- *Validation data asset*: "+textOrNone(meta.DatasetReference)))
		}
	}

	blocks := make([]Block, 0, len(details)+2)
	blocks = append(blocks, markdownSection(summary))
	blocks = append(blocks, details...)
	blocks = append(blocks, Block{
		Type: blockTypeContext,
		Elements: []TextObject{{
			Type: textTypeMarkdown,
			Text: fmt.Sprintf("Validation run id %s ran at %s", runID, now.Format(footerTimeLayout)),
		}},
	})

	return SlackRequest{Blocks: blocks}
}

func textOrNone(s *string) string {
	if s == nil {
		return noneText
	}
	return *s
}

// formatBatchKwargs renders kwargs as indented JSON, falling back to the Go
// representation for values JSON cannot encode.
func formatBatchKwargs(kwargs map[string]any) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(kwargs); err != nil {
		return fmt.Sprint(kwargs)
	}
	return strings.TrimSuffix(buf.String(), "\n")
}
