package service

import (
	"context"
	"fmt"
	"strings"
)

// TextTransformationsService derives short text from user input through the LLM.
type TextTransformationsService struct {
	llm *LLMService
}

func NewTextTransformationsService(llm *LLMService) *TextTransformationsService {
	return &TextTransformationsService{llm: llm}
}

// TripTitle turns a trip situation into a title of at most five words.
// A reply without a string "title" yields an empty title.
func (s *TextTransformationsService) TripTitle(ctx context.Context, situation, userID string) (string, error) {
	prompt := fmt.Sprintf(`Given this trip situation:
%s

Generate a clean, concise title (max 5 words) that summarizes this trip.
The title should be professional and easy to understand.
Return the response as a JSON object with a single field 'title' containing the title text.`, situation)

	result, err := s.llm.Complete(ctx, prompt, userID)
	if err != nil {
		return "", err
	}

	title, _ := result["title"].(string)
	return strings.Trim(strings.TrimSpace(title), `"'`), nil
}
