package openai

import (
	"fmt"

	"screening-backend/internal/llm"
)

const fixJSONSystem = "You repair malformed JSON. Return only the corrected JSON document with no commentary."

// buildFixPrompt asks the model to repair its own malformed output.
func buildFixPrompt(raw []byte) []llm.Message {
	return []llm.Message{
		{Role: "system", Content: fixJSONSystem},
		{Role: "user", Content: fmt.Sprintf("The following output should be a single valid JSON object but is malformed. Return the corrected JSON only:\n\n%s", raw)},
	}
}
