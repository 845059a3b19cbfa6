// Package pitch writes short outreach pitches for a freelancer approaching
// a discovered business, using the Groq chat completions API with canned
// fallbacks when no key is configured or the API misbehaves.
package pitch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"
)

const (
	groqEndpoint = "https://api.groq.com/openai/v1/chat/completions"
	groqModel    = "llama-3.3-70b-versatile"
	groqTimeout  = 15 * time.Second
)

var fallbackPitches = map[string]string{
	"web_designer":    "Hi! I'm a web design specialist. I noticed %s could benefit from a modern, professional website to attract more customers online.",
	"social_media":    "Hi! I specialize in social media growth. %s could significantly increase engagement and reach with a tailored social strategy.",
	"seo":             "Hi! I'm an SEO expert. I can help %s rank higher on Google and attract more organic traffic to boost sales.",
	"content_creator": "Hi! I create high-quality content. %s could benefit from engaging content that converts visitors into customers.",
}

// HTTPClient abstracts the transport so tests can stub Groq.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Writer generates pitches. With an empty API key it only serves the
// fallback templates and never touches the network.
type Writer struct {
	apiKey     string
	httpClient HTTPClient
}

func NewWriter(apiKey string, client HTTPClient) *Writer {
	if client == nil {
		client = &http.Client{Timeout: groqTimeout}
	}
	return &Writer{apiKey: apiKey, httpClient: client}
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Write returns a 2-3 sentence pitch for approaching businessName as a
// freelancer in the given niche. It never returns an empty string.
func (w *Writer) Write(ctx context.Context, businessName, businessType, niche string) string {
	if w.apiKey == "" {
		return fallbackPitch(businessName, niche)
	}

	pitch, err := w.generate(ctx, businessName, businessType, niche)
	if err != nil {
		log.Printf("pitch generation failed for %q: %v", businessName, err)
		return genericPitch(businessName, niche)
	}
	return pitch
}

func (w *Writer) generate(ctx context.Context, businessName, businessType, niche string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, groqTimeout)
	defer cancel()

	body := chatRequest{
		Model: groqModel,
		Messages: []chatMessage{
			{
				Role:    "system",
				Content: "You are a professional sales pitch writer. Create SHORT (2-3 sentences), persuasive pitches in English.",
			},
			{
				Role:    "user",
				Content: fmt.Sprintf("Create a brief sales pitch for a %s freelancer approaching %q (a %s business). Focus on benefits and results.", niche, businessName, businessType),
			},
		},
		MaxTokens:   100,
		Temperature: 0.7,
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, groqEndpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+w.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("call groq: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("groq returned status %d", resp.StatusCode)
	}

	var decoded chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(decoded.Choices) == 0 {
		return "", fmt.Errorf("groq returned no choices")
	}

	content := strings.TrimSpace(decoded.Choices[0].Message.Content)
	if content == "" {
		return "", fmt.Errorf("groq returned empty pitch")
	}
	return content, nil
}

// Pitch adapts Write to consumers expecting an error return. The writer
// always produces a pitch, so the error is always nil.
func (w *Writer) Pitch(ctx context.Context, businessName, businessType, niche string) (string, error) {
	return w.Write(ctx, businessName, businessType, niche), nil
}

func fallbackPitch(businessName, niche string) string {
	tmpl, ok := fallbackPitches[niche]
	if !ok {
		tmpl = fallbackPitches["web_designer"]
	}
	return fmt.Sprintf(tmpl, businessName)
}

func genericPitch(businessName, niche string) string {
	return fmt.Sprintf("Hi! I'm a %s specialist. I can help %s grow their business with professional services tailored to their needs.",
		strings.ReplaceAll(niche, "_", " "), businessName)
}
