// Package enrichment wraps the external AI services used when a memory is
// created: image captioning, reminiscence question generation and speech
// synthesis. Captioning and question generation never fail; when a backend
// is unconfigured or unreachable they fall back to fixed, patient-friendly
// defaults. Speech synthesis surfaces its errors because the caller has
// nothing sensible to play instead.
package enrichment

import "context"

// Analysis is the result of captioning an uploaded photo.
type Analysis struct {
	Caption string
	Tags    []string
}

type ImageAnalyzer interface {
	Analyze(ctx context.Context, imageURL string) Analysis
}

type QuestionGenerator interface {
	Questions(ctx context.Context, analysis Analysis, userDescription string) []string
}

type SpeechSynthesizer interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
}
