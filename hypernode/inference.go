package hypernode

import (
	"context"
	"net/http"
	"strings"

	"github.com/Hypernode-sol/hypernode-sdk-go/errors"
)

const defaultTopK = 5

// checkEndpoint validates the deployment endpoint URL inference calls are
// made against.
func checkEndpoint(endpoint string) (string, error) {
	trimmed := strings.TrimSpace(endpoint)
	if trimmed == "" {
		return "", errors.NewValidation("endpoint cannot be empty")
	}
	if !strings.HasPrefix(trimmed, "http://") && !strings.HasPrefix(trimmed, "https://") {
		return "", errors.NewValidationField("endpoint", "must be an absolute http(s) URL")
	}
	return strings.TrimRight(trimmed, "/"), nil
}

// Generate runs text generation against a deployment endpoint, normally
// Deployment.Endpoint. Unset request fields are filled with the service
// defaults before sending.
func (c *Client) Generate(ctx context.Context, endpoint string, req GenerationRequest) (*GenerationResponse, error) {
	base, err := checkEndpoint(endpoint)
	if err != nil {
		return nil, err
	}
	req = req.withDefaults()
	if err := c.validateStruct(req); err != nil {
		return nil, err
	}
	var out GenerationResponse
	err = c.do(ctx, call{
		method: http.MethodPost,
		route:  "/generate",
		path:   base + "/generate",
		in:     req,
		out:    &out,
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// GenerateImage runs image generation against a stable-diffusion
// deployment endpoint. Unset request fields are filled with the service
// defaults before sending.
func (c *Client) GenerateImage(ctx context.Context, endpoint string, req ImageGenerationRequest) (*ImageGenerationResponse, error) {
	base, err := checkEndpoint(endpoint)
	if err != nil {
		return nil, err
	}
	req = req.withDefaults()
	if err := c.validateStruct(req); err != nil {
		return nil, err
	}
	var out ImageGenerationResponse
	err = c.do(ctx, call{
		method: http.MethodPost,
		route:  "/generate",
		path:   base + "/generate",
		in:     req,
		out:    &out,
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Embed computes an embedding vector for text. normalize asks the server
// for a unit-length vector.
func (c *Client) Embed(ctx context.Context, endpoint, text string, normalize bool) ([]float64, error) {
	base, err := checkEndpoint(endpoint)
	if err != nil {
		return nil, err
	}
	if text == "" {
		return nil, errors.NewValidation("text cannot be empty")
	}
	var out embedResponse
	err = c.do(ctx, call{
		method: http.MethodPost,
		route:  "/embed",
		path:   base + "/embed",
		in:     embedRequest{Text: text, Normalize: normalize},
		out:    &out,
	})
	if err != nil {
		return nil, err
	}
	return out.Embedding, nil
}

// ClassifyText classifies text against a classifier endpoint and returns
// up to topK label candidates ordered by descending score. A topK of zero
// or less requests the default of five.
func (c *Client) ClassifyText(ctx context.Context, endpoint, text string, topK int) ([]Classification, error) {
	base, err := checkEndpoint(endpoint)
	if err != nil {
		return nil, err
	}
	if text == "" {
		return nil, errors.NewValidation("text cannot be empty")
	}
	if topK <= 0 {
		topK = defaultTopK
	}
	var out classifyResponse
	err = c.do(ctx, call{
		method: http.MethodPost,
		route:  "/classify",
		path:   base + "/classify",
		in:     classifyRequest{Text: text, TopK: topK},
		out:    &out,
	})
	if err != nil {
		return nil, err
	}
	return out.Results, nil
}
