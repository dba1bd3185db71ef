package validation

import "github.com/stylecast/wardrobe/internal/model"

// ValidateFeedback accepts only model.FeedbackNegative and model.FeedbackPositive.
// A nil value means the field was missing.
func ValidateFeedback(feedback *int) (int, error) {
	if feedback == nil {
		return 0, newError("feedback", "feedback is required")
	}
	switch *feedback {
	case model.FeedbackNegative, model.FeedbackPositive:
		return *feedback, nil
	default:
		return 0, newError("feedback", "feedback must be %d or %d", model.FeedbackNegative, model.FeedbackPositive)
	}
}
