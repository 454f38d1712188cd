// Package stability generates an image through the Stability AI REST API.
package stability

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"net/http"
	"time"

	_ "image/png"

	"github.com/hannesrauhe/artframe/acquire"
	"github.com/hannesrauhe/artframe/base"
)

type Config struct {
	Key string
	// Engine is the generation engine id
	Engine string
	Host   string
}

// DefaultConfig returns the config defaults merged by the config reader
func DefaultConfig() Config {
	return Config{Engine: "stable-diffusion-xl-1024-v1-0", Host: "https://api.stability.ai"}
}

type Provider struct {
	cfg    Config
	client *http.Client
}

var _ acquire.Provider = &Provider{}

func NewProvider(cfg Config) *Provider {
	return &Provider{cfg: cfg, client: &http.Client{Timeout: 2 * time.Minute}}
}

type textPrompt struct {
	Text string `json:"text"`
}

type generationRequest struct {
	TextPrompts []textPrompt `json:"text_prompts"`
	Width       int          `json:"width"`
	Height      int          `json:"height"`
	Samples     int          `json:"samples"`
}

type generationResponse struct {
	Artifacts []struct {
		Base64       string `json:"base64"`
		FinishReason string `json:"finishReason"`
	} `json:"artifacts"`
}

// roundTo64 rounds up to the next multiple of 64, the API rejects other dimensions
func roundTo64(v int) int {
	if v < 64 {
		return 64
	}
	return (v + 63) / 64 * 64
}

func (p *Provider) Fetch(ctx *base.Context, req acquire.Request) (image.Image, acquire.Result, error) {
	body, err := json.Marshal(generationRequest{
		TextPrompts: []textPrompt{{Text: req.Prompt}},
		Width:       roundTo64(req.Width),
		Height:      roundTo64(req.Height),
		Samples:     1,
	})
	if err != nil {
		return nil, acquire.Result{}, err
	}

	url := fmt.Sprintf("%v/v1/generation/%v/text-to-image", p.cfg.Host, p.cfg.Engine)
	httpReq, err := http.NewRequestWithContext(ctx.GoContext, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, acquire.Result{}, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+p.cfg.Key)

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, acquire.Result{}, fmt.Errorf("generation request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, acquire.Result{}, fmt.Errorf("generation request returned %v", resp.Status)
	}

	var gen generationResponse
	if err := json.NewDecoder(resp.Body).Decode(&gen); err != nil {
		return nil, acquire.Result{}, fmt.Errorf("decoding generation response: %w", err)
	}
	if len(gen.Artifacts) == 0 {
		return nil, acquire.Result{}, fmt.Errorf("generation response contains no image")
	}

	raw, err := base64.StdEncoding.DecodeString(gen.Artifacts[0].Base64)
	if err != nil {
		return nil, acquire.Result{}, fmt.Errorf("decoding image payload: %w", err)
	}
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, acquire.Result{}, fmt.Errorf("decoding image: %w", err)
	}
	return img, acquire.Result{}, nil
}
