// Package extract turns source files into plain text documents for
// ingestion. Extraction failures are per-document: the caller logs and
// skips, they are never fatal to an ingestion run.
package extract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// SourceType identifies the kind of document a file was extracted from.
type SourceType string

const (
	SourcePDF     SourceType = "pdf"
	SourceText    SourceType = "text"
	SourceWebpage SourceType = "webpage"
)

// Document is the ephemeral result of extraction: it exists only for the
// duration of an ingestion run.
type Document struct {
	Source string // stable path identifying the document
	Type   SourceType
	Text   string
}

// TypeFor reports the source type for a path, or false for unsupported files.
func TypeFor(path string) (SourceType, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return SourcePDF, true
	case ".txt":
		return SourceText, true
	case ".html", ".htm":
		return SourceWebpage, true
	default:
		return "", false
	}
}

// Extract reads the file at path and returns its plain text. The text may
// be empty when the source has no extractable content; callers decide
// whether that is a skip or an error.
func Extract(path string) (Document, error) {
	srcType, ok := TypeFor(path)
	if !ok {
		return Document{}, fmt.Errorf("extract: unsupported file type: %s", path)
	}

	var (
		text string
		err  error
	)
	switch srcType {
	case SourcePDF:
		text, err = pdfText(path)
	case SourceText:
		text, err = textFile(path)
	case SourceWebpage:
		text, err = htmlFile(path)
	}
	if err != nil {
		return Document{}, fmt.Errorf("extract %s: %w", path, err)
	}

	return Document{Source: path, Type: srcType, Text: text}, nil
}

func textFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
