package enrichment

import (
	"context"
	"fmt"
	"io"
	"time"

	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/reminisce-care/reminisce/internal/common"
)

// speechVoice is not among the typed voice constants in the pinned SDK
// release, but the API accepts it.
const speechVoice = openai.AudioSpeechNewParamsVoice("nova")

// OpenAISpeech synthesizes spoken audio for reminiscence questions. Unlike
// captioning and question generation there is no sensible fallback, so an
// unconfigured or failing backend is reported to the caller.
type OpenAISpeech struct {
	client *openai.Client
}

func NewOpenAISpeech(apiKey string) *OpenAISpeech {
	s := &OpenAISpeech{}
	if apiKey != "" {
		client := openai.NewClient(option.WithAPIKey(apiKey))
		s.client = &client
	}
	return s
}

// Synthesize returns MP3 audio for the given text.
func (s *OpenAISpeech) Synthesize(ctx context.Context, text string) ([]byte, error) {

	if s.client == nil {
		return nil, common.ErrSpeechUnavailable
	}

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	resp, err := s.client.Audio.Speech.New(ctx, openai.AudioSpeechNewParams{
		Model:          openai.SpeechModelGPT4oMiniTTS,
		Input:          text,
		Voice:          speechVoice,
		ResponseFormat: openai.AudioSpeechNewParamsResponseFormatMP3,
	})
	if err != nil {
		return nil, fmt.Errorf("speech synthesis failed: %w", err)
	}
	defer resp.Body.Close()

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("speech synthesis failed: %w", err)
	}

	return audio, nil
}
