package core

// RuleKind is the normalization applied to a column after trimming.
type RuleKind int

const (
	RuleTrim RuleKind = iota
	RuleDigits
	RuleDate
)

// String returns the rule name used in logs.
func (k RuleKind) String() string {
	switch k {
	case RuleDigits:
		return "digits"
	case RuleDate:
		return "date"
	default:
		return "trim"
	}
}

// ColumnRule binds a normalization to a zero-based column position.
type ColumnRule struct {
	Index int      // Zero-based column position
	Kind  RuleKind // Normalization applied after trimming
	Label string   // What the column holds in the source data
}

// Stats summarizes a single normalization run.
type Stats struct {
	Rows               int   // Body rows written (header excluded)
	Fields             int   // Body fields written
	HeaderWritten      bool  // False only for an empty input
	DigitsChanged      int   // Digits-only fields that lost characters
	DatesReformatted   int   // Date fields that parsed and were rewritten
	DatesPassedThrough int   // Non-empty date fields that did not parse
	BytesRead          int64 // Raw input bytes consumed
}
