package advisor

import "testing"

func TestSuggestNextSteps(t *testing.T) {
	tests := []struct {
		name     string
		analysis string
		want     int
	}{
		{"error only", "A NullPointerException error occurred during checkout.", 2},
		{"api only", "The /payment API endpoint responded slowly.", 2},
		{"error and user", "The user john123 hit a payment error twice.", 4},
		{"all topics", "Errors in the API degraded the user experience.", 6},
		{"none", "Nothing unusual in this batch.", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SuggestNextSteps(tt.analysis)
			if len(got) != tt.want {
				t.Errorf("SuggestNextSteps() returned %d suggestions, want %d: %v",
					len(got), tt.want, got)
			}
		})
	}
}

func TestSuggestNextStepsCaseInsensitive(t *testing.T) {
	got := SuggestNextSteps("ERROR rates spiked at 10:00.")
	if len(got) != 2 {
		t.Fatalf("upper-case analysis yielded %d suggestions, want 2", len(got))
	}
	if got[0] != "Get more details about the specific error" {
		t.Errorf("unexpected first suggestion %q", got[0])
	}
}
