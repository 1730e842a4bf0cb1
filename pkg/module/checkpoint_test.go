package module

import (
	"context"
	"errors"
	"testing"

	"github.com/devsapp/sd-checkpoint-test/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLister struct {
	models []models.SDModel
	err    error
	calls  int
}

func (f *fakeLister) ListModels(ctx context.Context) ([]models.SDModel, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.models, nil
}

func newDirectory(t *testing.T, names ...string) *CheckpointDirectory {
	lister := &fakeLister{}
	for _, name := range names {
		lister.models = append(lister.models, models.SDModel{Title: name + ".safetensors", ModelName: name})
	}
	d := NewCheckpointDirectory(lister)
	require.NoError(t, d.Refresh(context.Background()))
	return d
}

func TestCheckpointPredicates(t *testing.T) {
	assert.True(t, Checkpoint{ModelName: "SD15-photon"}.IsSD15())
	assert.False(t, Checkpoint{ModelName: "SD15-photon"}.IsSDXL())
	assert.True(t, Checkpoint{ModelName: "SDXL-juggernaut"}.IsSDXL())
	assert.False(t, Checkpoint{ModelName: "sdxl-lowercase"}.IsSDXL())
	assert.True(t, Checkpoint{ModelName: "SDXL-Refiner-1.0"}.IsRefiner())
	assert.False(t, Checkpoint{ModelName: "SDXL-base-1.0"}.IsRefiner())
}

func TestCheckpointDirectoryFind(t *testing.T) {
	d := NewCheckpointDirectory(&fakeLister{})
	_, ok := d.Find("photon")
	assert.False(t, ok)

	d = newDirectory(t, "SD15-Photon-v1", "SD15-photon-v2", "SDXL-base")
	ckpt, ok := d.Find("PHOTON")
	require.True(t, ok)
	assert.Equal(t, "SD15-Photon-v1", ckpt.ModelName)
	assert.Equal(t, "SD15-Photon-v1.safetensors", d.Title("photon"))
	assert.Equal(t, "", d.Title("dreamshaper"))
	_, ok = d.Find("dreamshaper")
	assert.False(t, ok)
}

func TestCheckpointDirectoryRefresh(t *testing.T) {
	lister := &fakeLister{models: []models.SDModel{{ModelName: "SD15-a"}, {ModelName: "SD15-b"}}}
	d := NewCheckpointDirectory(lister)
	require.NoError(t, d.Refresh(context.Background()))
	assert.Equal(t, 2, d.Len())

	// failure keeps the previous checkpoints
	lister.err = errors.New("connection refused")
	assert.Error(t, d.Refresh(context.Background()))
	assert.Equal(t, []Checkpoint{{ModelName: "SD15-a"}, {ModelName: "SD15-b"}}, d.All())

	// success replaces all
	lister.err = nil
	lister.models = []models.SDModel{{ModelName: "SDXL-c"}}
	require.NoError(t, d.Refresh(context.Background()))
	assert.Equal(t, []Checkpoint{{ModelName: "SDXL-c"}}, d.All())
	assert.Equal(t, 3, lister.calls)
}

func TestCheckpointDirectoryTestable(t *testing.T) {
	d := newDirectory(t, "SD15-base", "SDXL-refiner", "SDXL-base", "sdxl_REFINER_v2")
	testable := d.Testable()
	require.Len(t, testable, 2)
	assert.Equal(t, "SD15-base", testable[0].ModelName)
	assert.Equal(t, "SDXL-base", testable[1].ModelName)
	// refiner is still found by lookup
	ckpt, ok := d.Find("refiner")
	assert.True(t, ok)
	assert.Equal(t, "SDXL-refiner", ckpt.ModelName)

	all := d.All()
	all[0].ModelName = "changed"
	assert.Equal(t, "SD15-base", d.All()[0].ModelName)
}
