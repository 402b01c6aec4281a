package oracle

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"interview-service/config"

	"google.golang.org/genai"
)

const systemInstruction = "Act as a human interviewer. Generate questions for the candidate based on the skills and the job title. " +
	"When given a job title and a list of skills, select the most relevant skills from the list that are essential for the job title " +
	"and return them as a list in a clear format like: '[skill1, skill2, skill3]'. " +
	"Do not generate feedback. Just generate the next question. Avoid asking candidates to write code. " +
	"Hard questions should be practical-oriented based on earlier theoretical questions. " +
	"When scoring an answer, provide a score between 0 and 10 based on accuracy, relevance, and completeness. " +
	"Return the score as a single integer (e.g., '8') with no additional text."

// GeminiClient wraps the shared genai client. One client serves the whole
// process; each interview session gets its own GeminiOracle with isolated
// conversation history.
type GeminiClient struct {
	client *genai.Client
	cfg    config.OracleConfig
}

func NewGeminiClient(ctx context.Context, cfg config.OracleConfig) (*GeminiClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create Gemini client: %w", err)
	}

	return &GeminiClient{client: client, cfg: cfg}, nil
}

func (c *GeminiClient) NewSession() Oracle {
	return &GeminiOracle{client: c.client, cfg: c.cfg}
}

// GeminiOracle implements Oracle over a single chat-style conversation.
type GeminiOracle struct {
	client *genai.Client
	cfg    config.OracleConfig

	mu      sync.Mutex
	history []*genai.Content
}

func (o *GeminiOracle) SelectSkills(ctx context.Context, jobName string, skills []string) ([]string, error) {
	prompt := fmt.Sprintf(
		"Given the job title '%s' and the skills list [%s], select the most relevant skills required for the role. "+
			"Return the result as a list like '[skill1, skill2, skill3]'.",
		jobName, strings.Join(skills, ", "),
	)

	text, err := o.send(ctx, prompt)
	if err != nil {
		return nil, err
	}
	return ParseSkillList(text)
}

func (o *GeminiOracle) NextQuestion(ctx context.Context, jobName, skill, level string, priorQuestions []string) (string, error) {
	prior := "None"
	if len(priorQuestions) > 0 {
		prior = strings.Join(priorQuestions, "; ")
	}

	prompt := fmt.Sprintf(
		"Given prior questions for %s: %s, ask a %s level question about %s for the %s role that hasn't been asked before.",
		skill, prior, level, skill, jobName,
	)

	return o.send(ctx, prompt)
}

func (o *GeminiOracle) Score(ctx context.Context, question, answer string) (int, error) {
	prompt := fmt.Sprintf(
		"Score the following answer to the question '%s' on a scale of 0 to 10 based on accuracy, relevance, and completeness: '%s'. "+
			"Return the score as a single integer (e.g., '8').",
		question, answer,
	)

	text, err := o.send(ctx, prompt)
	if err != nil {
		return 0, err
	}
	return ParseScore(text)
}

// send appends the prompt to the conversation, generates a reply and
// records it in the history so later prompts stay in context.
func (o *GeminiOracle) send(ctx context.Context, prompt string) (string, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	temp := float32(o.cfg.Temperature)
	genCfg := &genai.GenerateContentConfig{
		MaxOutputTokens: int32(o.cfg.MaxTokens),
		Temperature:     &temp,
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: systemInstruction}},
		},
	}

	contents := append(o.history, &genai.Content{
		Role:  "user",
		Parts: []*genai.Part{{Text: prompt}},
	})

	result, err := o.client.Models.GenerateContent(ctx, o.cfg.Model, contents, genCfg)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	text := strings.TrimSpace(result.Text())

	o.history = append(contents, &genai.Content{
		Role:  "model",
		Parts: []*genai.Part{{Text: text}},
	})

	return text, nil
}
