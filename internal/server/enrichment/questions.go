package enrichment

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/reminisce-care/reminisce/internal/logging"
)

// fallbackQuestions is used when the model is unconfigured or returns too
// few usable lines.
var fallbackQuestions = []string{
	"Who is with you in this photo?",
	"Where was this special moment?",
	"What were you celebrating or doing?",
	"How did this make you feel?",
	"What else do you remember about this day?",
}

const questionPrompt = `You are a compassionate dementia care assistant specializing in reminiscence therapy. Your role is to help elderly patients with memory challenges recall precious moments from their lives.

Photo Analysis:
- Visual Description: %s
- Detected Elements: %s
- Patient's Context: %s

Generate exactly 5 memory-sparking questions that:
1. Use simple, clear language (max 15 words each)
2. Focus on emotions, people, and sensory details
3. Are specific to this moment, not generic
4. Help trigger episodic memories
5. Are warm and encouraging in tone

Format: Return only the 5 questions, numbered 1-5, one per line.`

// OpenAIQuestionGenerator produces reminiscence questions with a chat model.
// An empty API key disables the client; Questions then returns the fallback
// list.
type OpenAIQuestionGenerator struct {
	client *openai.Client
	model  openai.ChatModel
	logger logging.Logger
}

func NewOpenAIQuestionGenerator(apiKey string, logger logging.Logger) *OpenAIQuestionGenerator {
	g := &OpenAIQuestionGenerator{model: openai.ChatModelGPT4oMini, logger: logger}
	if apiKey != "" {
		client := openai.NewClient(option.WithAPIKey(apiKey))
		g.client = &client
	}
	return g
}

// Questions returns exactly five questions for the analyzed photo. It never
// returns an error: model failures and unusable output degrade to the
// fallback list.
func (g *OpenAIQuestionGenerator) Questions(ctx context.Context, analysis Analysis, userDescription string) []string {

	if g.client == nil {
		return fallbackQuestions
	}

	prompt := fmt.Sprintf(questionPrompt, analysis.Caption, strings.Join(analysis.Tags, ", "), userDescription)

	req := openai.ChatCompletionNewParams{
		Model: g.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			{
				OfUser: &openai.ChatCompletionUserMessageParam{
					Content: openai.ChatCompletionUserMessageParamContentUnion{
						OfString: openai.String(prompt),
					},
				},
			},
		},
		Temperature:         openai.Float(0.7),
		MaxCompletionTokens: openai.Int(300),
	}

	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	resp, err := g.client.Chat.Completions.New(ctx, req)
	if err != nil {
		g.logger.Warn(ctx, "question generation failed", "err", err)
		return fallbackQuestions
	}
	if len(resp.Choices) == 0 {
		return fallbackQuestions
	}

	questions := parseQuestions(resp.Choices[0].Message.Content)
	if len(questions) < 3 {
		return fallbackQuestions
	}

	return questions
}

var questionNumbering = regexp.MustCompile(`^[0-9]+[.)]\s*`)

// parseQuestions extracts up to five questions from the model output, one
// per line, stripping "1." / "1)" prefixes and dropping lines too short to
// be real questions.
func parseQuestions(text string) []string {
	var questions []string
	for _, line := range strings.Split(text, "\n") {
		q := strings.TrimSpace(questionNumbering.ReplaceAllString(strings.TrimSpace(line), ""))
		if len(q) <= 10 {
			continue
		}
		questions = append(questions, q)
		if len(questions) == 5 {
			break
		}
	}
	return questions
}
