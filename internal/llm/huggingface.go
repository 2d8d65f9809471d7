package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// HuggingFaceProvider implements Provider against the HuggingFace Inference
// API's text-generation task. The request is a raw prompt, not a chat
// transcript; messages are flattened in order.
type HuggingFaceProvider struct {
	endpoint string // inference base URL, e.g. https://api-inference.huggingface.co/models/
	apiKey   string
	model    string
	client   *http.Client
}

// NewHuggingFaceProvider creates a new HuggingFace Inference provider.
func NewHuggingFaceProvider(endpoint, apiKey, model string) *HuggingFaceProvider {
	if !strings.HasSuffix(endpoint, "/") {
		endpoint += "/"
	}
	return &HuggingFaceProvider{
		endpoint: endpoint,
		apiKey:   apiKey,
		model:    model,
		client:   &http.Client{},
	}
}

func (p *HuggingFaceProvider) Name() string {
	return "huggingface"
}

type hfRequest struct {
	Inputs     string       `json:"inputs"`
	Parameters hfParameters `json:"parameters"`
}

type hfParameters struct {
	MaxNewTokens int     `json:"max_new_tokens,omitempty"`
	Temperature  float64 `json:"temperature"`
	TopP         float64 `json:"top_p,omitempty"`
	DoSample     bool    `json:"do_sample"`
}

type hfGenerated struct {
	GeneratedText string `json:"generated_text"`
}

// parseHFResponse normalizes the two response shapes the inference API is
// known to produce (a JSON array of generations, or a single object) into
// one generated string before any caller sees it.
func parseHFResponse(body []byte) (string, error) {
	var asList []hfGenerated
	if err := json.Unmarshal(body, &asList); err == nil {
		if len(asList) == 0 {
			return "", fmt.Errorf("huggingface returned an empty generation list")
		}
		return asList[0].GeneratedText, nil
	}

	var asObject hfGenerated
	if err := json.Unmarshal(body, &asObject); err == nil {
		return asObject.GeneratedText, nil
	}

	return "", fmt.Errorf("unexpected huggingface response shape: %s", truncateBody(body))
}

func truncateBody(body []byte) string {
	const max = 512
	if len(body) <= max {
		return string(body)
	}
	return string(body[:max]) + "..."
}

func (p *HuggingFaceProvider) Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error) {
	model := req.Model
	if model == "" {
		model = p.model
	}

	var prompt strings.Builder
	for i, msg := range req.Messages {
		if i > 0 {
			prompt.WriteString("\n")
		}
		prompt.WriteString(msg.Content)
	}

	hfReq := hfRequest{
		Inputs: prompt.String(),
		Parameters: hfParameters{
			MaxNewTokens: req.MaxTokens,
			Temperature:  req.Temperature,
			TopP:         req.TopP,
			DoSample:     req.Temperature > 0,
		},
	}

	body, err := json.Marshal(hfReq)
	if err != nil {
		return nil, fmt.Errorf("marshal huggingface request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint+model, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create huggingface request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+p.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, &GenerationError{Provider: p.Name(), Detail: err.Error()}
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("read huggingface response: %w", err)
	}

	if httpResp.StatusCode != http.StatusOK {
		return nil, &GenerationError{
			Provider:   p.Name(),
			StatusCode: httpResp.StatusCode,
			Detail:     string(respBody),
		}
	}

	content, err := parseHFResponse(respBody)
	if err != nil {
		return nil, err
	}

	return &CompletionResponse{
		Content: content,
		Model:   model,
	}, nil
}
