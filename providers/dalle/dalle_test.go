package dalle

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"

	openai "github.com/sashabaranov/go-openai"
	"github.com/sirupsen/logrus"
	"gotest.tools/v3/assert"

	"github.com/hannesrauhe/artframe/acquire"
	"github.com/hannesrauhe/artframe/base"
)

func newTestContext(t *testing.T) *base.Context {
	t.Helper()
	ctx, cancel := base.NewBaseContext(logrus.StandardLogger())
	t.Cleanup(cancel)
	return ctx
}

func TestSquareSize(t *testing.T) {
	assert.Equal(t, squareSize(200, 100), openai.CreateImageSize256x256)
	assert.Equal(t, squareSize(100, 512), openai.CreateImageSize512x512)
	assert.Equal(t, squareSize(800, 480), openai.CreateImageSize1024x1024)
}

func TestFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, r.URL.Path, "/v1/images/generations")

		var req openai.ImageRequest
		assert.NilError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, req.Prompt, "a calm sea")
		assert.Equal(t, req.Size, openai.CreateImageSize1024x1024)

		var buf bytes.Buffer
		assert.NilError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 4, 4))))
		json.NewEncoder(w).Encode(openai.ImageResponse{Data: []openai.ImageResponseDataInner{
			{B64JSON: base64.StdEncoding.EncodeToString(buf.Bytes())},
		}})
	}))
	defer srv.Close()

	p := NewProvider(Config{Key: "test-key", Host: srv.URL + "/v1"})
	img, _, err := p.Fetch(newTestContext(t), acquire.Request{Prompt: "a calm sea", Width: 800, Height: 480})
	assert.NilError(t, err)
	assert.Equal(t, img.Bounds().Dx(), 4)
}

func TestFetchInfillFailureKeepsPlainImage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/v1/images/edits" {
			http.Error(w, "not available", http.StatusBadRequest)
			return
		}
		var buf bytes.Buffer
		assert.NilError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 4, 4))))
		json.NewEncoder(w).Encode(openai.ImageResponse{Data: []openai.ImageResponseDataInner{
			{B64JSON: base64.StdEncoding.EncodeToString(buf.Bytes())},
		}})
	}))
	defer srv.Close()

	p := NewProvider(Config{Key: "test-key", Host: srv.URL + "/v1", Infill: true, InfillPercent: 25})
	img, _, err := p.Fetch(newTestContext(t), acquire.Request{Prompt: "a calm sea", Width: 800, Height: 480})
	assert.NilError(t, err)
	assert.Assert(t, img != nil)
}

func TestResizeNearest(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 4, 4))
	red := color.RGBA{R: 0xff, A: 0xff}
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			src.SetRGBA(x, y, red)
		}
	}
	dst := resizeNearest(src, 2, 2)
	assert.Equal(t, dst.Bounds().Dx(), 2)
	assert.Equal(t, dst.Bounds().Dy(), 2)
	assert.Equal(t, dst.At(0, 0), color.Color(red))
	assert.Equal(t, dst.At(1, 1), color.Color(red))
}
