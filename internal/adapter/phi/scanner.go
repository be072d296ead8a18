// Package phi detects protected health information in free text with a fixed
// set of regular expressions. It is the default sensitivity scanner for
// comparisons; a hosted classifier can replace it behind the same interface.
package phi

import (
	"context"
	"regexp"
	"strings"

	"github.com/heartmarshall/research-ledger/internal/domain"
)

// Pattern is one detector.
type Pattern struct {
	Kind string
	re   *regexp.Regexp
}

// DefaultPatterns covers US social security numbers, medical record numbers,
// phone numbers, email addresses and labelled dates of birth.
var DefaultPatterns = []Pattern{
	{Kind: "ssn", re: regexp.MustCompile(`\b\d{3}-\d{2}-\d{4}\b`)},
	{Kind: "mrn", re: regexp.MustCompile(`(?i)\bMRN[:#\s]*\d{6,10}\b`)},
	{Kind: "phone", re: regexp.MustCompile(`(?:\+1[\s.-]?)?\(?\b\d{3}\)?[\s.-]\d{3}[\s.-]\d{4}\b`)},
	{Kind: "email", re: regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)},
	{Kind: "dob", re: regexp.MustCompile(`(?i)\b(?:DOB|date of birth)[:\s]*\d{1,4}[/-]\d{1,2}[/-]\d{1,4}\b`)},
}

// NewPattern compiles a custom detector.
func NewPattern(kind, expr string) (Pattern, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return Pattern{}, err
	}
	return Pattern{Kind: kind, re: re}, nil
}

// Scanner runs every pattern over each line of the input.
type Scanner struct {
	patterns []Pattern
}

// NewScanner returns a Scanner using patterns, or DefaultPatterns when none
// are given.
func NewScanner(patterns ...Pattern) *Scanner {
	if len(patterns) == 0 {
		patterns = DefaultPatterns
	}
	return &Scanner{patterns: patterns}
}

// Scan reports every match with its 1-based line and column.
func (s *Scanner) Scan(ctx context.Context, text string) (domain.ScanResult, error) {
	var res domain.ScanResult
	for i, line := range strings.Split(text, "\n") {
		if err := ctx.Err(); err != nil {
			return domain.ScanResult{}, err
		}
		for _, p := range s.patterns {
			for _, m := range p.re.FindAllStringIndex(line, -1) {
				res.Locations = append(res.Locations, domain.SensitiveLocation{
					Line:   i + 1,
					Column: m[0] + 1,
					Kind:   p.Kind,
				})
			}
		}
	}
	res.HasSensitiveData = len(res.Locations) > 0
	return res, nil
}
