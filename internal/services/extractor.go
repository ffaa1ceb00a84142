package services

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	docx "github.com/fumiama/go-docx"
	"github.com/gen2brain/go-fitz"
	"github.com/ledongthuc/pdf"
)

// TextExtractor pulls plain text out of an uploaded resume. PDF pages use
// the native text layer first and fall back to OCR when a page has none;
// DOCX paragraphs pass through with a dash marker on list styles.
type TextExtractor interface {
	Extract(ctx context.Context, path string) (string, error)
}

type textExtractor struct {
	ocr           OCRClient
	renderDPI     int
	preserveOrder bool
}

func NewTextExtractor(ocr OCRClient, renderDPI int, preserveOrder bool) TextExtractor {
	if renderDPI <= 0 {
		renderDPI = 400
	}
	return &textExtractor{
		ocr:           ocr,
		renderDPI:     renderDPI,
		preserveOrder: preserveOrder,
	}
}

// Extract implements TextExtractor. Dispatch is strictly on file extension.
func (e *textExtractor) Extract(ctx context.Context, path string) (string, error) {
	var fragments []string
	var err error

	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		fragments, err = e.extractPDF(ctx, path)
	case ".docx":
		fragments, err = e.extractDOCX(path)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
	if err != nil {
		return "", err
	}

	return joinFragments(fragments, e.preserveOrder), nil
}

func (e *textExtractor) extractPDF(ctx context.Context, path string) ([]string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open PDF: %v", ErrExtractionFailed, err)
	}
	defer f.Close()

	// The rendering document is opened lazily, on the first page whose text
	// layer comes back empty.
	var renderDoc *fitz.Document
	defer func() {
		if renderDoc != nil {
			renderDoc.Close()
		}
	}()

	var fragments []string
	totalPage := r.NumPage()

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var text string
		page := r.Page(pageIndex)
		if !page.V.IsNull() {
			// An unreadable text layer falls through to the OCR path below.
			text, _ = page.GetPlainText(nil)
		}

		if strings.TrimSpace(text) != "" {
			fragments = append(fragments, text)
			continue
		}

		if renderDoc == nil {
			renderDoc, err = fitz.New(path)
			if err != nil {
				return nil, fmt.Errorf("%w: failed to open PDF for rendering: %v", ErrExtractionFailed, err)
			}
		}

		ocrText, err := e.ocrPage(ctx, renderDoc, pageIndex-1)
		if err != nil {
			return nil, err
		}
		fragments = append(fragments, ocrText)
	}

	return fragments, nil
}

// ocrPage rasterizes one page, converts it to greyscale and runs it through
// the recognition engine. pageIndex is zero-based.
func (e *textExtractor) ocrPage(ctx context.Context, doc *fitz.Document, pageIndex int) (string, error) {
	img, err := doc.ImageDPI(pageIndex, float64(e.renderDPI))
	if err != nil {
		return "", fmt.Errorf("%w: failed to render page %d: %v", ErrExtractionFailed, pageIndex+1, err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, toGreyscale(img)); err != nil {
		return "", fmt.Errorf("%w: failed to encode page %d: %v", ErrExtractionFailed, pageIndex+1, err)
	}

	text, err := e.ocr.Recognize(ctx, buf.Bytes())
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrOCRUnavailable, err)
	}
	return text, nil
}

func (e *textExtractor) extractDOCX(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open DOCX: %v", ErrExtractionFailed, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to stat DOCX: %v", ErrExtractionFailed, err)
	}

	doc, err := docx.Parse(f, info.Size())
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse DOCX: %v", ErrExtractionFailed, err)
	}

	var fragments []string
	for _, item := range doc.Document.Body.Items {
		paragraph, ok := item.(*docx.Paragraph)
		if !ok {
			continue
		}

		style := ""
		if paragraph.Properties != nil && paragraph.Properties.Style != nil {
			style = paragraph.Properties.Style.Val
		}
		fragments = append(fragments, formatParagraph(paragraph.String(), style))
	}

	return fragments, nil
}

// formatParagraph prefixes list-styled paragraphs with a dash marker so
// bullet structure survives into the plain text.
func formatParagraph(text, style string) string {
	if isListStyle(style) {
		return "- " + text
	}
	return text
}

func isListStyle(style string) bool {
	return strings.Contains(style, "List") ||
		strings.Contains(style, "Bullet") ||
		strings.Contains(style, "Number")
}

// joinFragments collapses byte-identical fragments into one before joining
// with newlines. In the default mode the output order is whatever map
// iteration yields: two runs over the same document produce the same
// fragment set but not necessarily the same order, and two pages with
// identical text collapse to a single fragment. preserveOrder keeps
// first-occurrence document order instead; duplicates still collapse.
func joinFragments(fragments []string, preserveOrder bool) string {
	if preserveOrder {
		seen := make(map[string]struct{}, len(fragments))
		ordered := make([]string, 0, len(fragments))
		for _, fragment := range fragments {
			if _, ok := seen[fragment]; ok {
				continue
			}
			seen[fragment] = struct{}{}
			ordered = append(ordered, fragment)
		}
		return strings.Join(ordered, "\n")
	}

	set := make(map[string]struct{}, len(fragments))
	for _, fragment := range fragments {
		set[fragment] = struct{}{}
	}
	parts := make([]string, 0, len(set))
	for fragment := range set {
		parts = append(parts, fragment)
	}
	return strings.Join(parts, "\n")
}

func toGreyscale(src image.Image) *image.Gray {
	bounds := src.Bounds()
	grey := image.NewGray(bounds)
	draw.Draw(grey, bounds, src, bounds.Min, draw.Src)
	return grey
}
