package core

import "sort"

// columnRules is the fixed position-to-rule table. Positions not listed are trim only.
var columnRules = map[int]ColumnRule{
	3:  {Index: 3, Kind: RuleDigits, Label: "Phone number"},
	4:  {Index: 4, Kind: RuleDate, Label: "Date"},
	5:  {Index: 5, Kind: RuleDigits, Label: "SSN"},
	6:  {Index: 6, Kind: RuleDate, Label: "Date"},
	7:  {Index: 7, Kind: RuleDate, Label: "Date"},
	8:  {Index: 8, Kind: RuleDate, Label: "Date"},
	9:  {Index: 9, Kind: RuleDate, Label: "Date"},
	17: {Index: 17, Kind: RuleDigits, Label: "Postal code"},
	18: {Index: 18, Kind: RuleDigits, Label: "Monthly rent"},
	19: {Index: 19, Kind: RuleDigits, Label: "Outstanding balance"},
}

// RuleFor returns the rule for a column position.
// Unlisted positions get a trim-only rule.
func RuleFor(index int) ColumnRule {
	if r, ok := columnRules[index]; ok {
		return r
	}
	return ColumnRule{Index: index, Kind: RuleTrim}
}

// Rules returns every non-trivial rule, sorted by column position.
func Rules() []ColumnRule {
	result := make([]ColumnRule, 0, len(columnRules))
	for _, r := range columnRules {
		result = append(result, r)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Index < result[j].Index
	})

	return result
}

// NormalizeField applies the rule for position index to a single value.
func NormalizeField(index int, value string) string {
	out, _ := applyRule(RuleFor(index).Kind, value)
	return out
}

// NormalizeRecord returns a normalized copy of a body record.
// The field count is always preserved.
func NormalizeRecord(record []string) []string {
	out := make([]string, len(record))
	copy(out, record)
	normalizeInPlace(out, nil)
	return out
}

// normalizeInPlace rewrites record and, when st is non-nil, counts outcomes.
func normalizeInPlace(record []string, st *Stats) {
	for i, field := range record {
		kind := RuleFor(i).Kind
		out, outcome := applyRule(kind, field)
		record[i] = out

		if st == nil {
			continue
		}
		switch outcome {
		case outcomeDigitsChanged:
			st.DigitsChanged++
		case outcomeDateReformatted:
			st.DatesReformatted++
		case outcomeDatePassedThrough:
			st.DatesPassedThrough++
		}
	}
}
