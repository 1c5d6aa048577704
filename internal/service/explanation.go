package service

import "fmt"

// ExplanationComposer turns assembled context into the warning text spoken to
// the user. Template-selected, never generative.
type ExplanationComposer struct{}

func NewExplanationComposer() *ExplanationComposer {
	return &ExplanationComposer{}
}

const patternWarningTemplate = `Warning: This conversation matches the pattern of a %s.

Based on similar cases in our database, this is a fraudulent call. The caller is using known scam tactics including urgency, emotional manipulation, and requests for immediate payment.

You should hang up immediately. Do not provide any personal information, payment details, or gift card numbers. Legitimate organizations never demand immediate payment over the phone.`

const contextWarningTemplate = `Warning: This conversation shows signs of a potential scam.

%s

You should be cautious. Hang up immediately and do not provide any personal information or payment details.`

const genericWarning = `Warning: This conversation shows suspicious patterns that may indicate a scam.

Be cautious of:
- Urgent requests for money
- Requests for gift cards or wire transfers
- Pressure to act immediately
- Requests for personal information

If you're unsure, hang up and verify the caller's identity through official channels.`

// Compose picks the template for the given evidence: a named-pattern warning,
// a raw-context warning when the match carries no usable category, or the
// generic red-flag caution when nothing matched.
func (c *ExplanationComposer) Compose(contextResult ContextResult) string {
	if !contextResult.Matched {
		return genericWarning
	}

	if top, ok := contextResult.Top(); ok && top.Category != "" {
		return fmt.Sprintf(patternWarningTemplate, top.Category)
	}

	return fmt.Sprintf(contextWarningTemplate, contextResult.Context())
}
