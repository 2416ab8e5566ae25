package llm

import "context"

type contextKey string

const purposeKey contextKey = "llm_purpose"

// Purposes attached by the generation operations.
const (
	PurposeSummarize = "summarize"
	PurposeTranslate = "translate"
	PurposeQuiz      = "quiz"
)

// WithPurpose labels the requests made with ctx in the request log.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey, purpose)
}

// PurposeFrom returns the label set by WithPurpose, or "unknown".
func PurposeFrom(ctx context.Context) string {
	if v, ok := ctx.Value(purposeKey).(string); ok && v != "" {
		return v
	}
	return "unknown"
}
