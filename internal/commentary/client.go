package commentary

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/mzaytsev/passguard/internal/logging"
)

// ErrNotConfigured is returned by Comment when no API key is set.
var ErrNotConfigured = errors.New("commentary service not configured")

const defaultTimeout = 10 * time.Second

// Config holds the chat-completions endpoint settings.
type Config struct {
	URL     string
	APIKey  string
	Model   string
	Timeout time.Duration
}

// Client talks to an OpenAI-style chat-completions endpoint.
type Client struct {
	cfg Config
	hc  *http.Client
	log logging.Logger
}

func NewClient(cfg Config, log logging.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		cfg: cfg,
		hc:  &http.Client{Timeout: timeout},
		log: log.With("module", "commentary"),
	}
}

const systemPrompt = `Analyze this password as cybersecurity expert:
- Detect leetspeak variations and common substitutions
- Identify keyboard patterns (qwerty, etc.)
- Find cultural/meme references
- Check for multilingual vulnerabilities
- Explain the main risks in plain language
- Output in JSON format with 'weaknesses', 'suggestions' and 'risk_analysis'`

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

type assessment struct {
	Weaknesses   []string `json:"weaknesses"`
	Suggestions  string   `json:"suggestions"`
	RiskAnalysis string   `json:"risk_analysis"`
}

// reEmbeddedJSON extracts a JSON object embedded in prose, for models that
// wrap their answer in explanation text or code fences.
var reEmbeddedJSON = regexp.MustCompile(`(?s)\{.*\}`)

// Comment asks the model for an assessment of the password. Every failure is
// returned as an error; the caller falls back to the local analysis.
func (c *Client) Comment(ctx context.Context, req Request) (string, error) {
	if c.cfg.APIKey == "" {
		return "", ErrNotConfigured
	}

	body, err := json.Marshal(chatRequest{
		Model: c.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: "Password: " + req.Password},
		},
		Temperature: 0.3,
		MaxTokens:   250,
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.URL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	httpReq.Header.Set("Content-Type", "application/json")

	c.log.Debug(ctx, "requesting commentary", "model", c.cfg.Model)

	resp, err := c.hc.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("call commentary service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("commentary service status %d", resp.StatusCode)
	}

	var chat chatResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&chat); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(chat.Choices) == 0 {
		return "", errors.New("empty choices in response")
	}

	parsed, err := parseContent(chat.Choices[0].Message.Content)
	if err != nil {
		return "", err
	}
	return render(parsed), nil
}

func parseContent(content string) (assessment, error) {
	var a assessment
	if err := json.Unmarshal([]byte(content), &a); err == nil {
		return a, nil
	}

	match := reEmbeddedJSON.FindString(content)
	if match == "" {
		return a, errors.New("no JSON object in model output")
	}
	if err := json.Unmarshal([]byte(match), &a); err != nil {
		return a, fmt.Errorf("parse model output: %w", err)
	}
	return a, nil
}

// render formats the model assessment as the same HTML fragment shape the
// local fallback produces.
func render(a assessment) string {
	var b strings.Builder
	b.WriteString("<h3>Password Security Analysis</h3>\n")

	if len(a.Weaknesses) > 0 {
		b.WriteString("<ul>")
		for _, w := range a.Weaknesses {
			b.WriteString("<li>" + w + "</li>")
		}
		b.WriteString("</ul>\n")
	}
	if a.RiskAnalysis != "" {
		b.WriteString("<p>" + a.RiskAnalysis + "</p>\n")
	}

	b.WriteString("<h3>Recommendation</h3>\n")
	if a.Suggestions != "" {
		b.WriteString("<p>" + a.Suggestions + "</p>")
	} else {
		b.WriteString("<p>Consider using a password manager to generate and store truly random, high-entropy passwords that are unique for each service.</p>")
	}
	return b.String()
}
