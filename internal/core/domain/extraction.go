package domain

import "strconv"

// DateType identifies which labelled pattern family produced a date match.
type DateType string

const (
	DateTypeDue      DateType = "due_date"
	DateTypeRenewal  DateType = "renewal_date"
	DateTypeWarranty DateType = "warranty_date"
	DateTypeExpiry   DateType = "expiry_date"
	DateTypeGeneric  DateType = "date"
)

// AmountType identifies which labelled pattern family produced an amount match.
type AmountType string

const (
	AmountTypeTotal    AmountType = "total"
	AmountTypeSubtotal AmountType = "subtotal"
	AmountTypeTax      AmountType = "tax"
	AmountTypePayment  AmountType = "payment"
	AmountTypeGeneric  AmountType = "amount"
)

// DefaultCurrency is recorded on every extracted amount. Currency symbols
// are only used for match anchoring, never detected.
const DefaultCurrency = "USD"

// ExtractedDate is a date match in the raw text. Date holds the literal
// matched substring; it is deliberately not normalised to a calendar type,
// since downstream consumers depend on the source string as written.
type ExtractedDate struct {
	Type         DateType `json:"type"`
	Date         string   `json:"date"`
	OriginalText string   `json:"original_text"`
}

// ExtractedAmount is a monetary amount match in the raw text.
type ExtractedAmount struct {
	Type         AmountType `json:"type"`
	Amount       float64    `json:"amount"`
	Currency     string     `json:"currency"`
	OriginalText string     `json:"original_text"`
}

// Extraction is the full result of structured-field extraction over a
// document's raw text. Overlapping pattern families may each contribute a
// match for the same substring; duplicates are retained on purpose so that
// downstream reminder creation never misses a date.
type Extraction struct {
	Dates   []ExtractedDate   `json:"dates"`
	Amounts []ExtractedAmount `json:"amounts"`
	Fields  map[string]string `json:"fields"`
}

// FieldList flattens an extraction into typed document fields: named
// fields first, then dates, then amounts.
func (e *Extraction) FieldList() []ExtractedField {
	fields := make([]ExtractedField, 0, len(e.Fields)+len(e.Dates)+len(e.Amounts))
	for _, key := range NamedFieldKeys {
		if v, ok := e.Fields[key]; ok {
			fields = append(fields, ExtractedField{Key: key, Value: v, Kind: namedFieldKind(key)})
		}
	}
	for _, d := range e.Dates {
		fields = append(fields, ExtractedField{Key: string(d.Type), Value: d.Date, Kind: FieldKindDate})
	}
	for _, a := range e.Amounts {
		fields = append(fields, ExtractedField{Key: string(a.Type), Value: formatAmount(a.Amount), Kind: FieldKindAmount})
	}
	return fields
}

// NamedFieldKeys lists the single-capture named fields in extraction order.
var NamedFieldKeys = []string{
	"invoiceNumber",
	"orderNumber",
	"modelNumber",
	"serialNumber",
	"accountNumber",
	"warrantyPeriod",
	"vendorName",
}

// formatAmount renders an amount as a canonical numeric string with two
// decimal places and no separators.
func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func namedFieldKind(key string) FieldKind {
	switch key {
	case "invoiceNumber", "orderNumber", "modelNumber", "serialNumber", "accountNumber":
		return FieldKindNumber
	default:
		return FieldKindText
	}
}
