package module

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/devsapp/sd-checkpoint-test/pkg/client"
	"github.com/devsapp/sd-checkpoint-test/pkg/config"
	"github.com/devsapp/sd-checkpoint-test/pkg/datastore"
	"github.com/devsapp/sd-checkpoint-test/pkg/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodedImage(t *testing.T, c color.Color) string {
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return base64.StdEncoding.EncodeToString(buf.Bytes())
}

type fakeGenerator struct {
	images   []string
	fail     map[string]error
	requests []*models.Txt2ImgRequest
}

func (f *fakeGenerator) Txt2Img(ctx context.Context, payload *models.Txt2ImgRequest) (*models.Txt2ImgResult, error) {
	f.requests = append(f.requests, payload)
	if err, ok := f.fail[payload.OverrideSettings.SdModelCheckpoint]; ok {
		return nil, err
	}
	return &models.Txt2ImgResult{Images: f.images}, nil
}

type memRecorder struct {
	results []*datastore.Result
}

func (m *memRecorder) Record(res *datastore.Result) error {
	m.results = append(m.results, res)
	return nil
}

func newGenerator(t *testing.T, n int) *fakeGenerator {
	images := make([]string, 0, n)
	for i := 0; i < n; i++ {
		images = append(images, encodedImage(t, color.RGBA{R: uint8(i * 20), A: 255}))
	}
	return &fakeGenerator{images: images, fail: map[string]error{}}
}

func TestRunnerGenerate(t *testing.T) {
	out := t.TempDir()
	gen := newGenerator(t, 9)
	recorder := &memRecorder{}
	d := newDirectory(t, "SD15-base", "SD15-refiner", "SD15-photon")
	r := NewRunner(gen, d, DefaultTests(), out, WithRecorder(recorder), WithRunId("run-1"))

	summary := r.Run(context.Background(), []string{"woman"})
	assert.Equal(t, "run-1", summary.RunId)
	assert.Equal(t, 2, summary.Generated)
	assert.Equal(t, 0, summary.Failed)
	require.Len(t, gen.requests, 2)
	assert.Equal(t, "SD15-base", gen.requests[0].OverrideSettings.SdModelCheckpoint)
	assert.Equal(t, "SD15-photon", gen.requests[1].OverrideSettings.SdModelCheckpoint)

	fn := filepath.Join(out, "woman", "SD15-base-woman.png")
	fd, err := os.Open(fn)
	require.NoError(t, err)
	defer fd.Close()
	cfg, err := png.DecodeConfig(fd)
	require.NoError(t, err)
	assert.Equal(t, 1536, cfg.Width)
	assert.Equal(t, 1536, cfg.Height)

	require.Len(t, recorder.results, 2)
	assert.Equal(t, config.RESULT_GENERATED, recorder.results[0].Status)
	assert.Equal(t, fn, recorder.results[0].Path)
}

func TestRunnerSkipExisting(t *testing.T) {
	out := t.TempDir()
	gen := newGenerator(t, 9)
	d := newDirectory(t, "SD15-base", "SD15-photon")
	r := NewRunner(gen, d, DefaultTests(), out)

	fn := r.OutputPath("man", Checkpoint{ModelName: "SD15-base"})
	require.NoError(t, os.MkdirAll(filepath.Dir(fn), 0755))
	require.NoError(t, os.WriteFile(fn, []byte("done"), 0644))

	summary := r.Run(context.Background(), []string{"man"})
	assert.Equal(t, 1, summary.Skipped)
	assert.Equal(t, 1, summary.Generated)
	require.Len(t, gen.requests, 1)
	assert.Equal(t, "SD15-photon", gen.requests[0].OverrideSettings.SdModelCheckpoint)
	data, err := os.ReadFile(fn)
	require.NoError(t, err)
	assert.Equal(t, "done", string(data))

	// rerun is a no-op
	summary = r.Run(context.Background(), []string{"man"})
	assert.Equal(t, 2, summary.Skipped)
	assert.Len(t, gen.requests, 1)
}

func TestRunnerFailureIsolation(t *testing.T) {
	out := t.TempDir()
	gen := newGenerator(t, 9)
	gen.fail["SD15-broken"] = errors.New("connection refused")
	d := newDirectory(t, "SD15-broken", "SD15-base")
	recorder := &memRecorder{}
	r := NewRunner(gen, d, DefaultTests(), out, WithRecorder(recorder))

	summary := r.Run(context.Background(), []string{"square", "circle"})
	assert.Equal(t, []string{"square"}, summary.UnknownTests)
	assert.Equal(t, 1, summary.Failed)
	assert.Equal(t, 1, summary.Generated)
	assert.FileExists(t, filepath.Join(out, "circle", "SD15-base-circle.png"))
	assert.NoFileExists(t, filepath.Join(out, "circle", "SD15-broken-circle.png"))
	require.Len(t, recorder.results, 2)
	assert.Equal(t, config.RESULT_FAILED, recorder.results[0].Status)
	assert.Equal(t, "connection refused", recorder.results[0].Message)
}

func TestRunnerDecodeFailure(t *testing.T) {
	out := t.TempDir()
	gen := newGenerator(t, 2)
	gen.images = append(gen.images, "!!corrupt!!")
	d := newDirectory(t, "SD15-base")
	r := NewRunner(gen, d, DefaultTests(), out, WithImageExt(".jpg"))

	summary := r.Run(context.Background(), []string{"man"})
	assert.Equal(t, 1, summary.Failed)
	assert.NoFileExists(t, filepath.Join(out, "man", "SD15-base-man.jpg"))
}

func TestRunnerCancelled(t *testing.T) {
	gen := newGenerator(t, 1)
	d := newDirectory(t, "SD15-base", "SD15-photon")
	r := NewRunner(gen, d, DefaultTests(), t.TempDir())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	summary := r.Run(ctx, []string{"man"})
	assert.Empty(t, gen.requests)
	assert.Equal(t, 0, summary.Generated+summary.Skipped+summary.Failed)
}

// circle test against a fake sd server, the refiner is never requested
func TestRunnerAgainstServer(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	tile := encodedImage(t, color.White)
	received := make([]models.Txt2ImgRequest, 0)
	router.GET(config.SD_MODELS, func(c *gin.Context) {
		c.JSON(http.StatusOK, []models.SDModel{{Title: "base", ModelName: "SD15-base"},
			{Title: "refiner", ModelName: "SDXL-refiner"}})
	})
	router.POST(config.TXT2IMG, func(c *gin.Context) {
		var req models.Txt2ImgRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}
		received = append(received, req)
		images := make([]string, 0, req.BatchCount)
		for i := 0; i < req.BatchCount; i++ {
			images = append(images, tile)
		}
		c.JSON(http.StatusOK, models.Txt2ImgResult{Images: images})
	})
	srv := httptest.NewServer(router)
	defer srv.Close()

	sd := client.NewClient(srv.URL, 5*time.Second)
	d := NewCheckpointDirectory(sd)
	require.NoError(t, d.Refresh(context.Background()))
	out := t.TempDir()
	tests := Registry{"circle": {Prompt: "prompt A", NegativePrompt: "neg A"}}
	summary := NewRunner(sd, d, tests, out).Run(context.Background(), []string{"circle"})

	assert.Equal(t, 1, summary.Generated)
	require.Len(t, received, 1)
	assert.Equal(t, "SD15-base", received[0].OverrideSettings.SdModelCheckpoint)
	assert.Equal(t, "prompt A", received[0].Prompt)
	assert.Equal(t, "neg A", received[0].NegativePrompt)
	assert.Equal(t, 9, received[0].BatchCount)
	assert.FileExists(t, filepath.Join(out, "circle", "SD15-base-circle.png"))
}

func TestRunnerServerStatusError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST(config.TXT2IMG, func(c *gin.Context) {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "cuda out of memory"})
	})
	srv := httptest.NewServer(router)
	defer srv.Close()

	recorder := &memRecorder{}
	sd := client.NewClient(srv.URL, 5*time.Second)
	d := newDirectory(t, "SD15-base", "SD15-photon")
	summary := NewRunner(sd, d, DefaultTests(), t.TempDir(), WithRecorder(recorder)).
		Run(context.Background(), []string{"man"})
	assert.Equal(t, 2, summary.Failed)
	require.Len(t, recorder.results, 2)
	assert.Contains(t, recorder.results[1].Message, "500")
}
