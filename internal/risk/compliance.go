package risk

// Compliance is the result of a KCD coding-rule check on a principal diagnosis.
type Compliance struct {
	IsCompliant     bool     `yaml:"is_compliant"`
	Issues          []string `yaml:"issues"`
	Recommendations []string `yaml:"recommendations"`
}

const issueShortCode = "진단 코드가 3자리 미만입니다"

// CheckCompliance flags principal diagnosis codes shorter than three characters.
func CheckCompliance(diagnosis string) Compliance {
	c := Compliance{Issues: []string{}, Recommendations: []string{}}
	if len(diagnosis) < 3 {
		c.Issues = append(c.Issues, issueShortCode)
		c.Recommendations = append(c.Recommendations, RecommendDiagnosisCheck)
	}
	c.IsCompliant = len(c.Issues) == 0
	return c
}
