package analysis

// PlaceholderAnalysisText is stored as the raw analysis when the model
// request failed and the record was filled from Placeholder.
const PlaceholderAnalysisText = "API Error - Manual review required"

// Placeholder returns the record used when the analysis request itself fails.
func Placeholder() Result {
	return Result{
		Domain:        "GENERAL",
		KeySkills:     []string{"Resume", "Submitted", "For", "Review"},
		MissingSkills: []string{"Pending", "Analysis", "Review"},
		Score:         5,
		Overview:      "Resume submitted for manual review.",
	}
}
