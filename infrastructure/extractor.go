package infrastructure

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/nguyenthenguyen/docx"
	"github.com/unidoc/unipdf/v3/common/license"
	"github.com/unidoc/unipdf/v3/extractor"
	"github.com/unidoc/unipdf/v3/model"
	"go.uber.org/zap"
)

const maxRawTextBytes = 10000

// PDFFallback extracts PDF text when local extraction finds nothing.
type PDFFallback interface {
	ExtractPDFText(ctx context.Context, data []byte) (string, error)
}

// TextExtractor turns uploaded resume files into plain text. It never fails:
// anything it cannot read comes back as an empty string.
type TextExtractor struct {
	fallback PDFFallback
	logger   *zap.Logger
}

func NewTextExtractor(fallback PDFFallback, logger *zap.Logger) *TextExtractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TextExtractor{fallback: fallback, logger: logger}
}

// ConfigureUnidocLicense installs a metered unipdf license key.
func ConfigureUnidocLicense(key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil
	}
	if err := license.SetMeteredKey(key); err != nil {
		return fmt.Errorf("set unidoc license: %w", err)
	}
	return nil
}

// SupportedResumeFile reports whether the upload endpoint accepts filename.
func SupportedResumeFile(filename string) bool {
	switch fileExtension(filename) {
	case "pdf", "txt", "docx":
		return true
	}
	return false
}

func (e *TextExtractor) ExtractText(ctx context.Context, data []byte, filename string) string {
	switch fileExtension(filename) {
	case "txt":
		return strings.ToValidUTF8(string(data), "")
	case "pdf":
		return e.extractPDF(ctx, data)
	case "docx":
		text, err := extractDOCX(data)
		if err != nil {
			e.logger.Warn("docx extraction failed", zap.String("file", filename), zap.Error(err))
			return ""
		}
		return text
	default:
		if len(data) > maxRawTextBytes {
			data = data[:maxRawTextBytes]
		}
		return strings.ToValidUTF8(string(data), "")
	}
}

func (e *TextExtractor) extractPDF(ctx context.Context, data []byte) string {
	text, err := extractPDFText(data)
	if err == nil && text != "" {
		return text
	}
	e.logger.Warn("pdf extraction failed", zap.Error(err))

	if e.fallback == nil {
		return ""
	}

	text, err = e.fallback.ExtractPDFText(ctx, data)
	if err != nil {
		e.logger.Warn("pdf fallback extraction failed", zap.Error(err))
		return ""
	}
	return text
}

func extractPDFText(data []byte) (string, error) {
	pdfReader, err := model.NewPdfReader(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("read pdf: %w", err)
	}

	numPages, err := pdfReader.GetNumPages()
	if err != nil {
		return "", fmt.Errorf("get page count: %w", err)
	}
	if numPages == 0 {
		return "", fmt.Errorf("pdf has no pages")
	}

	var sb strings.Builder
	for i := 1; i <= numPages; i++ {
		page, err := pdfReader.GetPage(i)
		if err != nil {
			continue
		}
		ex, err := extractor.New(page)
		if err != nil {
			continue
		}
		pageText, err := ex.ExtractText()
		if err != nil || pageText == "" {
			continue
		}
		sb.WriteString(pageText)
		sb.WriteString("\n")
	}

	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", fmt.Errorf("no text on any of %d pages", numPages)
	}
	return text, nil
}

var (
	docxParagraphEnd = regexp.MustCompile(`</w:p>|<w:br\s*/>`)
	docxTab          = regexp.MustCompile(`<w:tab\s*/>`)
	xmlTag           = regexp.MustCompile(`<[^>]+>`)
)

func extractDOCX(data []byte) (string, error) {
	r, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("read docx: %w", err)
	}
	defer r.Close()

	return docxXMLToText(r.Editable().GetContent()), nil
}

// docxXMLToText flattens WordprocessingML into lines of plain text.
func docxXMLToText(content string) string {
	content = docxParagraphEnd.ReplaceAllString(content, "\n")
	content = docxTab.ReplaceAllString(content, "\t")
	content = xmlTag.ReplaceAllString(content, "")
	content = html.UnescapeString(content)

	lines := strings.Split(content, "\n")
	out := lines[:0]
	for _, l := range lines {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	return strings.Join(out, "\n")
}

func fileExtension(filename string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
}
