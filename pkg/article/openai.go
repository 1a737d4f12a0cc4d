package article

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const defaultOpenAIBaseURL = "https://api.openai.com"

const systemPrompt = "あなたは WordPress プラグインを紹介する日本語のテクニカルライターです。" +
	"与えられた事実のみを使い、Markdown で記事本文を書いてください。" +
	"出力の 1 行目は必ず「TITLE: <記事タイトル>」とし、空行を挟んで本文を続けてください。"

// OpenAIGenerator drafts the article with a chat-completions model.
type OpenAIGenerator struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
}

// NewOpenAIGenerator creates a generator backed by a chat-completions API.
func NewOpenAIGenerator(apiKey, model string) *OpenAIGenerator {
	return &OpenAIGenerator{
		baseURL:    defaultOpenAIBaseURL,
		apiKey:     apiKey,
		model:      model,
		httpClient: &http.Client{Timeout: 120 * time.Second, Transport: otelhttp.NewTransport(http.DefaultTransport)},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Generate asks the model for a draft and parses the TITLE/body contract.
func (g *OpenAIGenerator) Generate(ctx context.Context, req Request) (Draft, error) {
	payload := chatRequest{
		Model: g.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: buildPrompt(req)},
		},
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return Draft{}, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/v1/chat/completions", bytes.NewBuffer(data))
	if err != nil {
		return Draft{}, fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+g.apiKey)

	resp, err := g.httpClient.Do(httpReq)
	if err != nil {
		return Draft{}, fmt.Errorf("failed to call API: %w", err)
	}

	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Draft{}, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode/100 != 2 {
		return Draft{}, fmt.Errorf("completion failed with status %d: %s", resp.StatusCode, body)
	}

	var completion chatResponse
	if err := json.Unmarshal(body, &completion); err != nil {
		return Draft{}, fmt.Errorf("failed to unmarshal completion: %w", err)
	}

	if len(completion.Choices) == 0 {
		return Draft{}, errors.New("completion returned no choices")
	}

	title, content, err := splitDraft(completion.Choices[0].Message.Content)
	if err != nil {
		return Draft{}, err
	}

	return Draft{
		Title:   title,
		Content: content,
		Tags:    tagsOf(req.Plugin),
	}, nil
}

func buildPrompt(req Request) string {
	b := &strings.Builder{}

	fmt.Fprintf(b, "テーマ: %s\n\n", req.Topic)
	fmt.Fprintf(b, "プラグイン名: %s\n", req.Plugin.Name)
	fmt.Fprintf(b, "公式ページ: %s\n", req.Plugin.PageURL())
	fmt.Fprintf(b, "有効インストール数: %d\n", req.Plugin.ActiveInstalls)
	fmt.Fprintf(b, "評価: %d/100\n", req.Plugin.Rating)
	fmt.Fprintf(b, "最終更新: %s\n", req.Plugin.LastUpdated)

	if req.Plugin.Tested != "" {
		fmt.Fprintf(b, "動作確認済みバージョン: %s\n", req.Plugin.Tested)
	}

	if req.Plugin.ShortDescription != "" {
		fmt.Fprintf(b, "概要: %s\n", req.Plugin.ShortDescription)
	}

	if len(req.References) > 0 {
		b.WriteString("\n参考リンク:\n")

		for _, ref := range req.References {
			fmt.Fprintf(b, "- %s %s\n", ref.Title, ref.URL)
		}
	}

	return b.String()
}

func splitDraft(raw string) (title, content string, err error) {
	raw = strings.TrimSpace(raw)

	first, rest, _ := strings.Cut(raw, "\n")

	title = strings.TrimSpace(strings.TrimPrefix(first, "TITLE:"))
	if title == first || title == "" {
		return "", "", errors.New("completion did not follow the TITLE contract")
	}

	return title, strings.TrimSpace(rest), nil
}
