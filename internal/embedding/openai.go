package embedding

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// openAIClientInterface abstracts the OpenAI client for testing.
type openAIClientInterface interface {
	CreateEmbeddings(ctx context.Context, req openai.EmbeddingRequestConverter) (openai.EmbeddingResponse, error)
}

// OpenAIProvider implements Provider using OpenAI's embeddings API.
type OpenAIProvider struct {
	client openAIClientInterface
	model  openai.EmbeddingModel
}

// NewOpenAI creates a new OpenAI embedding provider. The model must
// match the one used to build the stored embeddings or similarity
// scores are meaningless.
func NewOpenAI(apiKey string, model string) *OpenAIProvider {
	if model == "" {
		model = string(openai.SmallEmbedding3)
	}
	return &OpenAIProvider{
		client: openai.NewClient(apiKey),
		model:  openai.EmbeddingModel(model),
	}
}

// NewOpenAIWithClient creates a provider with a custom client. This is
// useful for testing.
func NewOpenAIWithClient(client openAIClientInterface, model string) *OpenAIProvider {
	if model == "" {
		model = string(openai.SmallEmbedding3)
	}
	return &OpenAIProvider{client: client, model: openai.EmbeddingModel(model)}
}

// Embed generates an embedding for a single text string.
func (p *OpenAIProvider) Embed(ctx context.Context, text string) ([]float64, error) {
	resp, err := p.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: []string{text},
		Model: p.model,
	})
	if err != nil {
		return nil, fmt.Errorf("create embedding: %w", err)
	}

	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("no embedding data returned")
	}

	return toFloat64(resp.Data[0].Embedding), nil
}

// EmbedBatch generates embeddings for multiple text strings.
func (p *OpenAIProvider) EmbedBatch(ctx context.Context, texts []string) ([][]float64, error) {
	resp, err := p.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: texts,
		Model: p.model,
	})
	if err != nil {
		return nil, fmt.Errorf("create embeddings: %w", err)
	}

	result := make([][]float64, len(texts))
	for i, data := range resp.Data {
		if i < len(result) {
			result[i] = toFloat64(data.Embedding)
		}
	}

	return result, nil
}

func toFloat64(v []float32) []float64 {
	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = float64(x)
	}
	return out
}
