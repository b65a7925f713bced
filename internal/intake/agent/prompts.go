package agent

import (
	"fmt"
	"strings"
)

const classifyPromptTemplate = `You classify home and business service requests.

Given a customer's free-text description, determine:
- serviceIntent: "service" for repairs and maintenance, "installation" for new installs and replacements
- serviceType: one of the known service types
- subcategory: a subcategory belonging to that service type
- confidence: 0.0 to 1.0, how certain you are
- reasoning: one short sentence explaining the choice
- clarifier: if confidence is below 0.7, one question that would resolve the ambiguity; otherwise empty

Known service types and subcategories:
%s

Respond with a single JSON object using exactly these keys:
{"serviceIntent": "...", "serviceType": "...", "subcategory": "...", "confidence": 0.0, "reasoning": "...", "clarifier": "..."}

Customer description:
%s`

func buildClassifyPrompt(description string) string {
	var b strings.Builder
	for _, st := range ServiceTypes() {
		fmt.Fprintf(&b, "- %s: %s\n", st, strings.Join(Subcategories(st), ", "))
	}
	return fmt.Sprintf(classifyPromptTemplate, b.String(), description)
}
