package module

import (
	"context"
	"fmt"
	"strings"

	"github.com/devsapp/sd-checkpoint-test/pkg/config"
	"github.com/devsapp/sd-checkpoint-test/pkg/models"
	"github.com/sirupsen/logrus"
)

// Checkpoint a model weights file the sd server can load
type Checkpoint struct {
	Title     string
	ModelName string
}

func (c Checkpoint) IsSD15() bool {
	return strings.HasPrefix(c.ModelName, config.SD15_PREFIX)
}

func (c Checkpoint) IsSDXL() bool {
	return strings.HasPrefix(c.ModelName, config.SDXL_PREFIX)
}

func (c Checkpoint) IsRefiner() bool {
	return strings.Contains(strings.ToLower(c.ModelName), config.REFINER_TAG)
}

func (c Checkpoint) String() string {
	return fmt.Sprintf("%s (%s)", c.ModelName, c.Title)
}

type ModelLister interface {
	ListModels(ctx context.Context) ([]models.SDModel, error)
}

// CheckpointDirectory checkpoints known by the sd server, in server order.
// It is not safe for concurrent Refresh.
type CheckpointDirectory struct {
	lister      ModelLister
	checkpoints []Checkpoint
}

func NewCheckpointDirectory(lister ModelLister) *CheckpointDirectory {
	return &CheckpointDirectory{
		lister:      lister,
		checkpoints: make([]Checkpoint, 0),
	}
}

// Refresh replace all checkpoints with the server list.
// On error the previous checkpoints are kept.
func (d *CheckpointDirectory) Refresh(ctx context.Context) error {
	sdModels, err := d.lister.ListModels(ctx)
	if err != nil {
		logrus.Errorf("query checkpoints fail err=%s", err.Error())
		return fmt.Errorf("query checkpoints: %w", err)
	}
	checkpoints := make([]Checkpoint, 0, len(sdModels))
	for _, m := range sdModels {
		checkpoints = append(checkpoints, Checkpoint{Title: m.Title, ModelName: m.ModelName})
	}
	d.checkpoints = checkpoints
	logrus.Debugf("loaded %d checkpoints", len(checkpoints))
	return nil
}

// Find first checkpoint whose model name contains name, case-insensitive
func (d *CheckpointDirectory) Find(name string) (Checkpoint, bool) {
	name = strings.ToLower(name)
	for _, ckpt := range d.checkpoints {
		if strings.Contains(strings.ToLower(ckpt.ModelName), name) {
			return ckpt, true
		}
	}
	return Checkpoint{}, false
}

// Title of the first checkpoint matching name, "" if none
func (d *CheckpointDirectory) Title(name string) string {
	if ckpt, ok := d.Find(name); ok {
		return ckpt.Title
	}
	return ""
}

func (d *CheckpointDirectory) All() []Checkpoint {
	return append([]Checkpoint(nil), d.checkpoints...)
}

// Testable all checkpoints except refiners
func (d *CheckpointDirectory) Testable() []Checkpoint {
	ret := make([]Checkpoint, 0, len(d.checkpoints))
	for _, ckpt := range d.checkpoints {
		if ckpt.IsRefiner() {
			continue
		}
		ret = append(ret, ckpt)
	}
	return ret
}

func (d *CheckpointDirectory) Len() int {
	return len(d.checkpoints)
}
