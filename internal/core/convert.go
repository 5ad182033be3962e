package core

// convert.go provides the field-level normalizers behind the column rules.
//
// These functions handle the messy reality of hand-entered data:
//   - Phone numbers, SSNs and postal codes with dashes, spaces and brackets
//   - Amounts with currency symbols, separators and decimals
//   - Dates written as MM/DD/YYYY or DD-MM-YYYY
//
// A value that cannot be normalized is never an error: it passes through trimmed.

import (
	"regexp"
	"strings"
	"time"
)

// nonDigitRegex matches every character that is not an ASCII digit.
var nonDigitRegex = regexp.MustCompile(`[^0-9]`)

// CanonicalDateLayout is the output format of every parsed date (MM/DD/YYYY).
const CanonicalDateLayout = "01/02/2006"

// dateLayouts are tried in order; the first that parses wins.
// MM/DD/YYYY, then DD-MM-YYYY, then MM-DD-YYYY for dashed dates whose
// second part cannot be a month.
var dateLayouts = []string{
	"1/2/2006",
	"2-1-2006",
	"1-2-2006",
}

type outcome int

const (
	outcomeUnchanged outcome = iota
	outcomeDigitsChanged
	outcomeDateReformatted
	outcomeDatePassedThrough
)

// DigitsOnly strips every character that is not 0-9.
// The result may be empty.
func DigitsOnly(s string) string {
	return nonDigitRegex.ReplaceAllString(s, "")
}

// CanonicalizeDate rewrites s as MM/DD/YYYY.
// Returns s unchanged and false if no layout matches.
func CanonicalizeDate(s string) (string, bool) {
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t.Format(CanonicalDateLayout), true
		}
	}
	return s, false
}

// applyRule trims value and applies kind to the result.
func applyRule(kind RuleKind, value string) (string, outcome) {
	trimmed := strings.TrimSpace(value)

	switch kind {
	case RuleDigits:
		digits := DigitsOnly(trimmed)
		if digits != trimmed {
			return digits, outcomeDigitsChanged
		}
		return digits, outcomeUnchanged

	case RuleDate:
		if trimmed == "" {
			return trimmed, outcomeUnchanged
		}
		date, ok := CanonicalizeDate(trimmed)
		if !ok {
			return trimmed, outcomeDatePassedThrough
		}
		if date != trimmed {
			return date, outcomeDateReformatted
		}
		return date, outcomeUnchanged
	}

	return trimmed, outcomeUnchanged
}
