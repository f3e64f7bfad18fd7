package advisor

import "strings"

// SuggestNextSteps proposes follow-up actions keyed on what the analysis
// text talks about.
func SuggestNextSteps(analysis string) []string {
	text := strings.ToLower(analysis)

	var suggestions []string
	if strings.Contains(text, "error") {
		suggestions = append(suggestions,
			"Get more details about the specific error",
			"Check if other users are affected by the same issue",
		)
	}
	if strings.Contains(text, "api") {
		suggestions = append(suggestions,
			"Analyze the complete API call chain",
			"Check API response times and performance",
		)
	}
	if strings.Contains(text, "user") {
		suggestions = append(suggestions,
			"View the complete user journey",
			"Compare with other users' behavior",
		)
	}
	return suggestions
}
