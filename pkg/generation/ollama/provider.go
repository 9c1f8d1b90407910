package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"campus-assistant-be/pkg/generation"
)

type OllamaProvider struct {
	BaseURL   string
	ModelName string
	Client    *http.Client
}

// Ensure OllamaProvider implements generation.Provider
var _ generation.Provider = &OllamaProvider{}

// DefaultTimeout bounds a generation call when no timeout is
// configured.
const DefaultTimeout = 120 * time.Second

func NewOllamaProvider(baseURL, modelName string, timeout time.Duration) *OllamaProvider {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &OllamaProvider{
		BaseURL:   baseURL,
		ModelName: modelName,
		Client: &http.Client{
			Timeout: timeout,
		},
	}
}

// --- Request/Response structs (Internal to this package) ---

type ollamaChatRequest struct {
	Model    string          `json:"model"`
	Messages []ollamaMessage `json:"messages"`
	Stream   bool            `json:"stream"`
	Options  *ollamaOptions  `json:"options,omitempty"`
}

type ollamaMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ollamaOptions struct {
	Temperature float64 `json:"temperature,omitempty"`
	NumPredict  int     `json:"num_predict,omitempty"`
}

type ollamaChatResponse struct {
	Model   string        `json:"model"`
	Message ollamaMessage `json:"message"`
	Done    bool          `json:"done"`
}

const systemPromptTemplate = `Eres Ociel, el asistente virtual de la Universidad Autónoma de Nayarit (UAN).
Respondes en español, con tono cordial y profesional, y solo con información institucional verificable.
Si no tienes la información, dilo claramente y sugiere el contacto oficial (311-211-8800).
Usuario: %s.`

// --- Interface Implementation ---

func (o *OllamaProvider) IsAvailable(ctx context.Context) bool {
	checkCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(checkCtx, "GET", o.BaseURL+"/api/tags", nil)
	if err != nil {
		return false
	}

	resp, err := o.Client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	return resp.StatusCode == http.StatusOK
}

func (o *OllamaProvider) Generate(ctx context.Context, query string, contextItems []string, userType, department string) (generation.Result, error) {
	// 1. Build the prompt pair: institutional persona plus the grounding
	// context the retrieval layer produced.
	messages := []ollamaMessage{
		{Role: "system", Content: fmt.Sprintf(systemPromptTemplate, userType)},
		{Role: "user", Content: buildUserPrompt(query, contextItems, department)},
	}

	reqPayload := ollamaChatRequest{
		Model:    o.ModelName,
		Messages: messages,
		Stream:   false,
		Options: &ollamaOptions{
			Temperature: 0.3,
			NumPredict:  600,
		},
	}

	payloadBytes, err := json.Marshal(reqPayload)
	if err != nil {
		return generation.Result{}, fmt.Errorf("marshal request: %w", err)
	}

	// 2. Send Request
	url := o.BaseURL + "/api/chat"
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(payloadBytes))
	if err != nil {
		return generation.Result{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.Client.Do(req)
	if err != nil {
		return generation.Result{}, fmt.Errorf("ollama request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return generation.Result{}, fmt.Errorf("ollama returned status %d: %s", resp.StatusCode, string(body))
	}

	// 3. Decode Response
	var chatResp ollamaChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return generation.Result{}, fmt.Errorf("decode response: %w", err)
	}

	text := strings.TrimSpace(chatResp.Message.Content)
	if text == "" {
		return generation.Result{}, fmt.Errorf("ollama returned an empty response")
	}

	return generation.Result{
		Text:       text,
		Confidence: generation.DeriveConfidence(text, len(contextItems) > 0),
		ModelTag:   chatResp.Model,
	}, nil
}

func buildUserPrompt(query string, contextItems []string, department string) string {
	var b strings.Builder

	if len(contextItems) > 0 {
		b.WriteString("Información institucional disponible:\n")
		for _, item := range contextItems {
			b.WriteString("- ")
			b.WriteString(item)
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
	if department != "" {
		b.WriteString(fmt.Sprintf("Departamento del usuario: %s\n\n", department))
	}

	b.WriteString("Consulta: ")
	b.WriteString(query)
	return b.String()
}
