// Package extract implements pattern-based structured-field extraction
// over raw document text: labelled dates, labelled amounts, and a fixed
// set of named fields (invoice/order/model/serial/account numbers,
// warranty period, vendor name).
package extract

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/santhosh-patel/snapkeep-core/internal/core/domain"
)

// dateToken matches D{1,2}[/-]D{1,2}[/-]D{2,4}. The matched substring is
// kept literally; day/month ordering is never resolved here.
const dateToken = `\d{1,2}[/-]\d{1,2}[/-]\d{2,4}`

// numberToken matches a numeral with optional thousands separators and
// exactly two optional decimal digits.
const numberToken = `(?:\d{1,3}(?:,\d{3})+|\d+)(?:\.\d{2})?`

const currencySymbols = `(?:\$|₹|€|£)`

type datePattern struct {
	typ domain.DateType
	re  *regexp.Regexp
}

type amountPattern struct {
	typ domain.AmountType
	re  *regexp.Regexp
}

type fieldPattern struct {
	key string
	re  *regexp.Regexp
}

// The five date pattern families. Matches from every family are retained
// independently, including overlapping matches of the same substring: the
// permissive overlap maximises downstream reminder recall. The generic
// family is line-anchored so a labelled "Due Date:" line is claimed by
// its label family alone.
var datePatterns = []datePattern{
	{domain.DateTypeDue, regexp.MustCompile(`(?i)due\s*(?:date|on|by)?\s*[:\-]?\s*(` + dateToken + `)`)},
	{domain.DateTypeRenewal, regexp.MustCompile(`(?i)renew(?:al|s)?\s*(?:date|on|by)?\s*[:\-]?\s*(` + dateToken + `)`)},
	{domain.DateTypeWarranty, regexp.MustCompile(`(?i)warranty\s*(?:valid\s*)?(?:till|until|up\s*to|expires?(?:\s*on)?)?\s*[:\-]?\s*(` + dateToken + `)`)},
	{domain.DateTypeExpiry, regexp.MustCompile(`(?i)(?:expiry|expires?|expiration|valid\s*(?:till|until|through))\s*(?:date|on)?\s*[:\-]?\s*(` + dateToken + `)`)},
	{domain.DateTypeGeneric, regexp.MustCompile(`(?im)^date\s*[:\-]?\s*(` + dateToken + `)`)},
}

// The five amount pattern families. As with dates, every match from every
// family is kept. The generic family only claims bare currency-prefixed
// numerals at line start so labelled lines are not double-counted.
var amountPatterns = []amountPattern{
	{domain.AmountTypeTotal, regexp.MustCompile(`(?i)total\s*(?:amount|due)?\s*[:\-]?\s*` + currencySymbols + `?\s*(` + numberToken + `)`)},
	{domain.AmountTypeSubtotal, regexp.MustCompile(`(?i)sub\s*-?\s*total\s*[:\-]?\s*` + currencySymbols + `?\s*(` + numberToken + `)`)},
	{domain.AmountTypeTax, regexp.MustCompile(`(?i)(?:tax|gst|vat)\s*(?:\(\s*\d+(?:\.\d+)?%\s*\))?\s*[:\-]?\s*` + currencySymbols + `?\s*(` + numberToken + `)`)},
	{domain.AmountTypePayment, regexp.MustCompile(`(?i)(?:amount\s+paid|payment|paid)\s*[:\-]?\s*` + currencySymbols + `?\s*(` + numberToken + `)`)},
	{domain.AmountTypeGeneric, regexp.MustCompile(`(?im)^\s*` + currencySymbols + `\s*(` + numberToken + `)`)},
}

// alphanumToken is an identifier containing at least one digit, so the
// literal word "number" in a label is never captured as the value.
const alphanumToken = `[A-Z0-9][A-Z0-9\-/]*\d[A-Z0-9\-/]*`

const periodToken = `\d+\s*(?:years?|months?)`

// The seven named-field patterns. First match wins per key; a field is
// absent from the result when its pattern does not match.
var fieldPatterns = []fieldPattern{
	{"invoiceNumber", regexp.MustCompile(`(?i)invoice\s*(?:#|no\.?|number)?\s*[:\-]?\s*(` + alphanumToken + `)`)},
	{"orderNumber", regexp.MustCompile(`(?i)order\s*(?:#|no\.?|number|id)?\s*[:\-]?\s*(` + alphanumToken + `)`)},
	{"modelNumber", regexp.MustCompile(`(?i)model\s*(?:#|no\.?|number)?\s*[:\-]?\s*([A-Z0-9][A-Z0-9\-/]{2,})`)},
	{"serialNumber", regexp.MustCompile(`(?i)serial\s*(?:#|no\.?|number)?\s*[:\-]?\s*([A-Z0-9][A-Z0-9\-/]{2,})`)},
	{"accountNumber", regexp.MustCompile(`(?i)account\s*(?:#|no\.?|number)?\s*[:\-]?\s*([0-9Xx*]{4,})`)},
	{"warrantyPeriod", regexp.MustCompile(`(?i)warranty\s*(?:period)?\s*[:\-]?\s*(` + periodToken + `)|(` + periodToken + `)\s*(?:limited\s*)?warranty`)},
	{"vendorName", regexp.MustCompile(`(?im)^(?:vendor|seller|sold\s+by|merchant|from)\s*[:\-]\s*(\S[^\n]*)`)},
}

// Extractor scans raw text with the fixed pattern tables. It is pure and
// stateless; identical input always yields identical output.
type Extractor struct{}

// New creates a field extractor.
func New() *Extractor {
	return &Extractor{}
}

// Extract runs all pattern families over the text. It never fails: absent
// matches produce empty slices/maps, and an amount whose capture does not
// parse as a finite number is dropped silently.
func (e *Extractor) Extract(text string) *domain.Extraction {
	return &domain.Extraction{
		Dates:   extractDates(text),
		Amounts: extractAmounts(text),
		Fields:  extractFields(text),
	}
}

func extractDates(text string) []domain.ExtractedDate {
	dates := make([]domain.ExtractedDate, 0, 4)
	for _, p := range datePatterns {
		for _, m := range p.re.FindAllStringSubmatch(text, -1) {
			dates = append(dates, domain.ExtractedDate{
				Type:         p.typ,
				Date:         m[1],
				OriginalText: strings.TrimSpace(m[0]),
			})
		}
	}
	return dates
}

func extractAmounts(text string) []domain.ExtractedAmount {
	amounts := make([]domain.ExtractedAmount, 0, 4)
	for _, p := range amountPatterns {
		for _, m := range p.re.FindAllStringSubmatch(text, -1) {
			value, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64)
			if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
				continue
			}
			amounts = append(amounts, domain.ExtractedAmount{
				Type:         p.typ,
				Amount:       value,
				Currency:     domain.DefaultCurrency,
				OriginalText: strings.TrimSpace(m[0]),
			})
		}
	}
	return amounts
}

func extractFields(text string) map[string]string {
	fields := make(map[string]string)
	for _, p := range fieldPatterns {
		m := p.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		// Alternation patterns carry two capture groups; take the first
		// non-empty one.
		value := ""
		for _, g := range m[1:] {
			if g != "" {
				value = g
				break
			}
		}
		if value == "" {
			continue
		}
		fields[p.key] = strings.TrimSpace(value)
	}
	return fields
}
