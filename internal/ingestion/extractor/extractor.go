// Package extractor turns uploaded study files into plain text.
//
// Failures never surface as errors to the caller of Text: they come back as a
// bracketed marker string that downstream consumers recognise with IsFailure.
package extractor

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"

	pdf "github.com/ledongthuc/pdf"

	"github.com/Roblokonha/StudyVault/internal/platform/logger"
)

const failurePrefix = "[Extraction failed: "

// FailureText builds the marker stored in place of extracted content.
func FailureText(reason string) string {
	return failurePrefix + strings.TrimSpace(reason) + "]"
}

// IsFailure reports whether text is an extraction marker rather than content.
func IsFailure(text string) bool {
	return strings.HasPrefix(strings.TrimSpace(text), failurePrefix)
}

type Extractor struct {
	log *logger.Logger
}

func New(log *logger.Logger) *Extractor {
	return &Extractor{log: log.With("service", "TextExtractor")}
}

// Text extracts data or returns a failure marker.
func (e *Extractor) Text(name, mimeType string, data []byte) string {
	text, err := Extract(name, mimeType, data)
	if err != nil {
		e.log.Warn("text extraction failed", "file", name, "mime", mimeType, "error", err)
		return FailureText(err.Error())
	}
	if strings.TrimSpace(text) == "" {
		return FailureText("no text found in " + name)
	}
	return text
}

// Extract sniffs the real file type from bytes before trusting name or mime type.
// Supported: PDF, DOCX, HTML, TXT/MD.
func Extract(name, mimeType string, data []byte) (string, error) {
	ext := strings.ToLower(filepath.Ext(name))
	mt := strings.ToLower(strings.TrimSpace(mimeType))

	if len(data) == 0 {
		return "", fmt.Errorf("empty file %q", name)
	}
	switch {
	case isPDF(data):
		return extractPDF(data)
	case isZip(data):
		if !hasZipPrefix(data, "word/") {
			return "", fmt.Errorf("unsupported archive %q", name)
		}
		return extractDOCX(data)
	case looksLikeHTML(data) || mt == "text/html" || ext == ".html" || ext == ".htm":
		return extractHTML(string(data)), nil
	case isProbablyText(data) || mt == "text/plain" || ext == ".txt" || ext == ".md":
		return normalizeLines(string(data)), nil
	case ext == ".pdf" || ext == ".docx":
		return "", fmt.Errorf("file %q claims %s but its contents do not match", name, ext)
	default:
		return "", fmt.Errorf("unsupported format '%s'", ext)
	}
}

func isPDF(b []byte) bool {
	return len(b) >= 5 && string(b[:5]) == "%PDF-"
}

func isZip(b []byte) bool {
	return len(b) >= 4 && b[0] == 'P' && b[1] == 'K' && b[2] == 3 && b[3] == 4
}

func looksLikeHTML(b []byte) bool {
	s := strings.TrimSpace(strings.ToLower(string(b[:min(len(b), 2048)])))
	return strings.HasPrefix(s, "<!doctype") || strings.HasPrefix(s, "<html") ||
		(strings.Contains(s, "<html") && strings.Contains(s, "</html>"))
}

func isProbablyText(b []byte) bool {
	sample := b[:min(len(b), 4096)]
	good := 0
	for _, c := range sample {
		if c == 0x00 {
			return false
		}
		if c == '\n' || c == '\r' || c == '\t' || c >= 0x20 {
			good++
		}
	}
	return float64(good)/float64(len(sample)) > 0.9
}

func extractPDF(data []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("pdf reader: %w", err)
	}
	plain, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("pdf plaintext: %w", err)
	}
	b, err := io.ReadAll(plain)
	if err != nil {
		return "", fmt.Errorf("pdf read: %w", err)
	}
	return normalizeLines(string(b)), nil
}

func hasZipPrefix(data []byte, prefix string) bool {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return false
	}
	for _, f := range zr.File {
		if strings.HasPrefix(f.Name, prefix) {
			return true
		}
	}
	return false
}

// extractDOCX reads word/document.xml and emits one line per <w:p> paragraph.
func extractDOCX(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	var body *zip.File
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			body = f
			break
		}
	}
	if body == nil {
		return "", fmt.Errorf("docx has no word/document.xml")
	}
	rc, err := body.Open()
	if err != nil {
		return "", err
	}
	defer rc.Close()

	dec := xml.NewDecoder(rc)
	var out, para strings.Builder
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("docx xml: %w", err)
		}
		switch el := tok.(type) {
		case xml.StartElement:
			if el.Name.Local == "t" {
				var v string
				if err := dec.DecodeElement(&v, &el); err == nil {
					para.WriteString(v)
				}
			}
		case xml.EndElement:
			if el.Name.Local == "p" {
				if line := strings.TrimSpace(para.String()); line != "" {
					out.WriteString(line)
					out.WriteString("\n")
				}
				para.Reset()
			}
		}
	}
	return strings.TrimSpace(out.String()), nil
}

var tagPattern = regexp.MustCompile(`(?s)<[^>]*>`)

func extractHTML(s string) string {
	s = tagPattern.ReplaceAllString(s, " ")
	s = strings.ReplaceAll(s, "\u00a0", " ")
	s = strings.ReplaceAll(s, "&amp;", "&")
	return strings.Join(strings.Fields(s), " ")
}

// normalizeLines collapses runs of blanks inside lines and drops empty lines.
func normalizeLines(s string) string {
	s = strings.ReplaceAll(s, " ", " ")
	var lines []string
	for _, line := range strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n") {
		if f := strings.Fields(line); len(f) > 0 {
			lines = append(lines, strings.Join(f, " "))
		}
	}
	return strings.Join(lines, "\n")
}
