// Package ocr extracts expense data from receipt images using tesseract.
package ocr

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	portssvc "github.com/expenseflow/expense_approval_app/internal/core/ports/services"
	"github.com/otiai10/gosseract/v2"
	"github.com/shopspring/decimal"
)

// TesseractExtractor runs a local tesseract engine over receipt images.
type TesseractExtractor struct{}

func NewTesseractExtractor() *TesseractExtractor {
	return &TesseractExtractor{}
}

// Ensure TesseractExtractor implements portssvc.ReceiptExtractor
var _ portssvc.ReceiptExtractor = (*TesseractExtractor)(nil)

// ExtractReceipt OCRs the image at the given path and parses an amount out
// of the recognized text.
func (e *TesseractExtractor) ExtractReceipt(ctx context.Context, imagePath string) (*portssvc.ReceiptData, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetImage(imagePath); err != nil {
		return nil, fmt.Errorf("failed to load receipt image: %w", err)
	}
	text, err := client.Text()
	if err != nil {
		return nil, fmt.Errorf("failed to run OCR on receipt: %w", err)
	}

	data := &portssvc.ReceiptData{RawText: text}
	if amount, ok := ParseAmount(text); ok {
		data.Amount = &amount
		data.Confidence = 0.8
	} else {
		data.Confidence = 0.3
	}
	return data, nil
}

var amountPattern = regexp.MustCompile(`(?i)(?:total|amount|sum)[^\d]{0,10}(\d+(?:[.,]\d{2})?)|(\d+[.,]\d{2})`)

// ParseAmount scans OCR text for a plausible monetary amount. Lines labelled
// "total"/"amount"/"sum" win over bare numbers; among bare numbers the
// largest is used, since receipt totals are bigger than their line items.
func ParseAmount(text string) (decimal.Decimal, bool) {
	var best decimal.Decimal
	found := false

	for _, line := range strings.Split(text, "\n") {
		matches := amountPattern.FindAllStringSubmatch(line, -1)
		for _, m := range matches {
			if m[1] != "" {
				// Labelled amount, take it immediately.
				if amount, err := decimal.NewFromString(normalizeNumber(m[1])); err == nil {
					return amount, true
				}
			}
			if m[2] != "" {
				amount, err := decimal.NewFromString(normalizeNumber(m[2]))
				if err != nil {
					continue
				}
				if !found || amount.GreaterThan(best) {
					best = amount
					found = true
				}
			}
		}
	}
	return best, found
}

func normalizeNumber(s string) string {
	return strings.ReplaceAll(s, ",", ".")
}
