package domain

import "strings"

// Tag is a semantic document label drawn from a fixed closed vocabulary.
type Tag string

const (
	TagReceipt       Tag = "receipt"
	TagInvoice       Tag = "invoice"
	TagBill          Tag = "bill"
	TagManual        Tag = "manual"
	TagIDCard        Tag = "id_card"
	TagBankStatement Tag = "bank_statement"
	TagCertificate   Tag = "certificate"
	TagContract      Tag = "contract"
	TagWarranty      Tag = "warranty"
	TagNote          Tag = "note"
	TagPhoto         Tag = "photo"
	TagScreenshot    Tag = "screenshot"
	TagOther         Tag = "other"
)

// MaxAutoTags is the maximum number of tags the classifier assigns.
const MaxAutoTags = 3

// ContentTagPriority is the fixed total order used by the classifier when
// multiple keyword sets match. Earlier entries win; truncation to
// MaxAutoTags therefore drops the lowest-priority matches.
var ContentTagPriority = []Tag{
	TagIDCard,
	TagBankStatement,
	TagWarranty,
	TagCertificate,
	TagContract,
	TagInvoice,
	TagReceipt,
	TagBill,
	TagManual,
	TagNote,
}

// ExtendedTagPriority extends ContentTagPriority with the non-content
// tags, ranked after every content tag. It governs primary-tag selection.
var ExtendedTagPriority = append(append([]Tag{}, ContentTagPriority...),
	TagScreenshot,
	TagPhoto,
	TagOther,
)

// TagKeywords maps each content tag to its ordered keyword triggers.
// Keywords are matched as substrings of the lowercased text and filename.
var TagKeywords = map[Tag][]string{
	TagIDCard:        {"id card", "identity card", "identification", "passport", "driving license", "driver's license", "date of birth"},
	TagBankStatement: {"bank statement", "account statement", "statement period", "opening balance", "closing balance", "transaction history"},
	TagWarranty:      {"warranty", "guarantee card", "warranty period", "warranty card"},
	TagCertificate:   {"certificate", "certification", "certified", "diploma", "completion"},
	TagContract:      {"contract", "agreement", "terms and conditions", "hereby agree", "signatory"},
	TagInvoice:       {"invoice", "invoice number", "bill to", "payment due"},
	TagReceipt:       {"receipt", "payment received", "amount paid", "thank you for your purchase", "cash"},
	TagBill:          {"bill", "amount due", "due date", "electricity", "utility", "statement of charges"},
	TagManual:        {"manual", "instructions", "user guide", "how to use", "installation guide"},
	TagNote:          {"note", "memo", "reminder", "to-do", "todo"},
}

// tagRank maps tags to their position in ExtendedTagPriority.
var tagRank = func() map[Tag]int {
	m := make(map[Tag]int, len(ExtendedTagPriority))
	for i, t := range ExtendedTagPriority {
		m[t] = i
	}
	return m
}()

// AllTags returns the full tag vocabulary in extended priority order.
func AllTags() []Tag {
	return append([]Tag{}, ExtendedTagPriority...)
}

// IsValidTag reports whether the value belongs to the tag vocabulary.
func IsValidTag(t Tag) bool {
	_, ok := tagRank[t]
	return ok
}

// ParseTag converts a string to a vocabulary tag.
// Returns ErrInvalidInput for values outside the vocabulary.
func ParseTag(s string) (Tag, error) {
	t := Tag(strings.ToLower(strings.TrimSpace(s)))
	if !IsValidTag(t) {
		return "", ErrInvalidInput
	}
	return t, nil
}

// TagRank returns the priority rank of a tag (lower ranks win).
// Unknown tags rank after the entire vocabulary.
func TagRank(t Tag) int {
	if r, ok := tagRank[t]; ok {
		return r
	}
	return len(ExtendedTagPriority)
}

// PrimaryTag selects the highest-priority tag from a tag set using the
// extended priority order. Returns TagOther for an empty set.
func PrimaryTag(tags []Tag) Tag {
	if len(tags) == 0 {
		return TagOther
	}
	best := tags[0]
	for _, t := range tags[1:] {
		if TagRank(t) < TagRank(best) {
			best = t
		}
	}
	return best
}
