// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package bridge

// ExtractionResult mirrors the result record returned by the native core.
// The bridge forwards it untouched; only the fields needed by callers of
// this library are mirrored here.
type ExtractionResult struct {
	Content           string   `json:"content"`
	MimeType          string   `json:"mime_type"`
	Metadata          Metadata `json:"metadata"`
	Tables            []Table  `json:"tables,omitempty"`
	DetectedLanguages []string `json:"detected_languages,omitempty"`
	Success           bool     `json:"success"`
}

// Table represents a detected table in the source document.
type Table struct {
	Cells      [][]string `json:"cells"`
	Markdown   string     `json:"markdown"`
	PageNumber int        `json:"page_number"`
}

// Metadata carries document-level metadata from the native core.
type Metadata struct {
	Language *string           `json:"language,omitempty"`
	Date     *string           `json:"date,omitempty"`
	Subject  *string           `json:"subject,omitempty"`
	Extra    map[string]string `json:"extra,omitempty"`
}

// BytesWithMime pairs an in-memory document with its MIME type for
// byte-based submissions.
type BytesWithMime struct {
	Data     []byte `json:"data"`
	MimeType string `json:"mime_type"`
}

// ExtractionConfig is the pass-through subset of the native core's
// extraction options. The bridge never inspects it.
type ExtractionConfig struct {
	UseOCR        *bool   `json:"use_ocr,omitempty"`
	OCRLanguage   *string `json:"ocr_language,omitempty"`
	ExtractTables *bool   `json:"extract_tables,omitempty"`
	UseCache      *bool   `json:"use_cache,omitempty"`
}
