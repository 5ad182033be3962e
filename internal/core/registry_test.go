package core

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRuleFor(t *testing.T) {
	digits := []int{3, 5, 17, 18, 19}
	dates := []int{4, 6, 7, 8, 9}
	trims := []int{0, 1, 2, 10, 11, 12, 13, 14, 15, 16, 20, 100}

	for _, i := range digits {
		if got := RuleFor(i).Kind; got != RuleDigits {
			t.Errorf("RuleFor(%d).Kind = %v, want digits", i, got)
		}
	}
	for _, i := range dates {
		if got := RuleFor(i).Kind; got != RuleDate {
			t.Errorf("RuleFor(%d).Kind = %v, want date", i, got)
		}
	}
	for _, i := range trims {
		r := RuleFor(i)
		if r.Kind != RuleTrim {
			t.Errorf("RuleFor(%d).Kind = %v, want trim", i, r.Kind)
		}
		if r.Index != i {
			t.Errorf("RuleFor(%d).Index = %d", i, r.Index)
		}
	}
}

func TestRules_SortedAndComplete(t *testing.T) {
	var got []int
	for _, r := range Rules() {
		got = append(got, r.Index)
	}

	want := []int{3, 4, 5, 6, 7, 8, 9, 17, 18, 19}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Rules() indexes mismatch (-want +got):\n%s", diff)
	}
}

func TestRuleKind_String(t *testing.T) {
	tests := map[RuleKind]string{
		RuleTrim:   "trim",
		RuleDigits: "digits",
		RuleDate:   "date",
	}
	for kind, want := range tests {
		if got := kind.String(); got != want {
			t.Errorf("RuleKind(%d).String() = %q, want %q", kind, got, want)
		}
	}
}

func TestNormalizeField(t *testing.T) {
	tests := []struct {
		index int
		input string
		want  string
	}{
		{0, "  John ", "John"},
		{3, " (555) 123-4567 ", "5551234567"},
		{4, "01/15/2023", "01/15/2023"},
		{6, "15-01-2023", "01/15/2023"},
		{9, "not-a-date", "not-a-date"},
		{19, "500.00", "50000"},
		{25, " tail ", "tail"},
	}

	for _, tt := range tests {
		if got := NormalizeField(tt.index, tt.input); got != tt.want {
			t.Errorf("NormalizeField(%d, %q) = %q, want %q", tt.index, tt.input, got, tt.want)
		}
	}
}

func TestNormalizeRecord_PreservesFieldCount(t *testing.T) {
	tests := []struct {
		name   string
		record []string
	}{
		{"empty", []string{}},
		{"single field", []string{" a "}},
		{"three fields", []string{"a", " b", "c "}},
		{"stops before digits column", []string{"a", "b", "c", " 555-1234 "}},
		{"wider than rule table", make([]string, 25)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeRecord(tt.record)
			if len(got) != len(tt.record) {
				t.Errorf("len = %d, want %d", len(got), len(tt.record))
			}
		})
	}
}

func TestNormalizeRecord_DoesNotMutateInput(t *testing.T) {
	in := []string{" a ", "b", "c", "(555) 123-4567"}
	_ = NormalizeRecord(in)

	if in[0] != " a " || in[3] != "(555) 123-4567" {
		t.Errorf("input mutated: %q", in)
	}
}

func TestNormalizeInPlace_CountsOutcomes(t *testing.T) {
	record := []string{
		"John", "x", "y", "(555) 123-4567", "z", "123456789",
		"01/02/2023", "15-01-2023", "", "bad",
	}

	var st Stats
	normalizeInPlace(record, &st)

	if st.DigitsChanged != 1 {
		t.Errorf("DigitsChanged = %d, want 1", st.DigitsChanged)
	}
	if st.DatesReformatted != 1 {
		t.Errorf("DatesReformatted = %d, want 1", st.DatesReformatted)
	}
	// "z" at 4 and "bad" at 9; the empty field at 8 is not counted.
	if st.DatesPassedThrough != 2 {
		t.Errorf("DatesPassedThrough = %d, want 2", st.DatesPassedThrough)
	}
}
