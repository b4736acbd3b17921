// Package notes suggests KCD diagnosis codes and procedure categories from free-text
// clinical notes by keyword lookup.
package notes

import "strings"

// ContextWindow is the number of characters kept on each side of a matched keyword.
const ContextWindow = 50

// DiagnosisHint is a diagnosis keyword found in a note.
type DiagnosisHint struct {
	Keyword        string   `yaml:"keyword"`
	SuggestedCodes []string `yaml:"suggested_codes"`
	Context        string   `yaml:"context"`
}

// ProcedureHint is a procedure keyword found in a note.
type ProcedureHint struct {
	Keyword        string   `yaml:"keyword"`
	SuggestedCodes []string `yaml:"suggested_codes"`
}

// Hints is everything Extract found in one note.
type Hints struct {
	Diagnoses  []DiagnosisHint `yaml:"diagnoses"`
	Procedures []ProcedureHint `yaml:"procedures"`
}

type entry struct {
	keyword string
	codes   []string
}

// Lookup order is fixed so output is deterministic.
var diagnosisKeywords = []entry{
	{"폐렴", []string{"J18", "J15", "J12"}},
	{"당뇨", []string{"E10", "E11", "E12"}},
	{"고혈압", []string{"I10", "I11", "I12"}},
	{"뇌졸중", []string{"I63", "I64", "I60"}},
	{"심근경색", []string{"I21", "I22", "I23"}},
	{"폐결핵", []string{"A15", "A16", "A17"}},
	{"간염", []string{"B15", "B16", "B17", "B18"}},
	{"신부전", []string{"N17", "N18", "N19"}},
}

var procedureKeywords = []entry{
	{"수술", []string{"O", "코드"}},
	{"내시경", []string{"F", "검사"}},
	{"영상", []string{"X선", "CT", "MRI"}},
}

// Extract scans text for known keywords. Each keyword is reported at most once,
// with the context around its first occurrence.
func Extract(text string) Hints {
	h := Hints{Diagnoses: []DiagnosisHint{}, Procedures: []ProcedureHint{}}
	if strings.TrimSpace(text) == "" {
		return h
	}
	for _, e := range diagnosisKeywords {
		if ctx, ok := context(text, e.keyword); ok {
			h.Diagnoses = append(h.Diagnoses, DiagnosisHint{
				Keyword:        e.keyword,
				SuggestedCodes: append([]string(nil), e.codes...),
				Context:        ctx,
			})
		}
	}
	for _, e := range procedureKeywords {
		if strings.Contains(text, e.keyword) {
			h.Procedures = append(h.Procedures, ProcedureHint{
				Keyword:        e.keyword,
				SuggestedCodes: append([]string(nil), e.codes...),
			})
		}
	}
	return h
}

// context returns up to ContextWindow runes either side of the first match, trimmed.
func context(text, keyword string) (string, bool) {
	pos := strings.Index(text, keyword)
	if pos < 0 {
		return "", false
	}
	before := []rune(text[:pos])
	after := []rune(text[pos+len(keyword):])

	if len(before) > ContextWindow {
		before = before[len(before)-ContextWindow:]
	}
	if len(after) > ContextWindow {
		after = after[:ContextWindow]
	}
	return strings.TrimSpace(string(before) + keyword + string(after)), true
}
