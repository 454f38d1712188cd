// Package automatic generates an image through a locally running
// AUTOMATIC1111 Stable Diffusion web UI.
package automatic

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
	Host string
	Port int
}

// DefaultConfig returns the config defaults merged by the config reader
func DefaultConfig() Config {
	return Config{Host: "127.0.0.1", Port: 7860}
}

type Provider struct {
	cfg    Config
	client *http.Client
}

var _ acquire.Provider = &Provider{}

func NewProvider(cfg Config) *Provider {
	return &Provider{cfg: cfg, client: &http.Client{Timeout: 10 * time.Minute}}
}

type txt2imgRequest struct {
	Prompt string `json:"prompt"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type txt2imgResponse struct {
	Images []string `json:"images"`
}

func (p *Provider) Fetch(ctx *base.Context, req acquire.Request) (image.Image, acquire.Result, error) {
	body, err := json.Marshal(txt2imgRequest{Prompt: req.Prompt, Width: req.Width, Height: req.Height})
	if err != nil {
		return nil, acquire.Result{}, err
	}

	url := fmt.Sprintf("http://%v:%v/sdapi/v1/txt2img", p.cfg.Host, p.cfg.Port)
	httpReq, err := http.NewRequestWithContext(ctx.GoContext, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, acquire.Result{}, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, acquire.Result{}, fmt.Errorf("txt2img request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, acquire.Result{}, fmt.Errorf("txt2img request returned %v", resp.Status)
	}

	var gen txt2imgResponse
	if err := json.NewDecoder(resp.Body).Decode(&gen); err != nil {
		return nil, acquire.Result{}, fmt.Errorf("decoding txt2img response: %w", err)
	}
	if len(gen.Images) == 0 {
		return nil, acquire.Result{}, fmt.Errorf("txt2img response contains no image")
	}

	raw, err := base64.StdEncoding.DecodeString(gen.Images[0])
	if err != nil {
		return nil, acquire.Result{}, fmt.Errorf("decoding image payload: %w", err)
	}
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, acquire.Result{}, fmt.Errorf("decoding image: %w", err)
	}
	return img, acquire.Result{}, nil
}
