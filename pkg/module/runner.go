package module

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/devsapp/sd-checkpoint-test/pkg/config"
	"github.com/devsapp/sd-checkpoint-test/pkg/datastore"
	"github.com/devsapp/sd-checkpoint-test/pkg/imaging"
	"github.com/devsapp/sd-checkpoint-test/pkg/models"
	"github.com/devsapp/sd-checkpoint-test/pkg/utils"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type Generator interface {
	Txt2Img(ctx context.Context, payload *models.Txt2ImgRequest) (*models.Txt2ImgResult, error)
}

type ResultRecorder interface {
	Record(res *datastore.Result) error
}

type RunnerOption func(*Runner)

func WithRecorder(recorder ResultRecorder) RunnerOption {
	return func(r *Runner) {
		r.recorder = recorder
	}
}

func WithImageExt(ext string) RunnerOption {
	return func(r *Runner) {
		r.ext = strings.TrimPrefix(ext, ".")
	}
}

func WithRunId(runId string) RunnerOption {
	return func(r *Runner) {
		r.runId = runId
	}
}

// Summary counts of one Run
type Summary struct {
	RunId        string
	Generated    int
	Skipped      int
	Failed       int
	UnknownTests []string
}

// Runner run named tests against every non-refiner checkpoint, one grid image per pair.
// Pairs whose grid already exists on disk are skipped without contacting the server.
type Runner struct {
	client    Generator
	directory *CheckpointDirectory
	tests     Registry
	outputDir string
	ext       string
	grid      imaging.GridSize
	recorder  ResultRecorder
	runId     string
}

func NewRunner(client Generator, directory *CheckpointDirectory, tests Registry, outputDir string,
	opts ...RunnerOption) *Runner {
	r := &Runner{
		client:    client,
		directory: directory,
		tests:     tests,
		outputDir: outputDir,
		ext:       "png",
		grid:      imaging.GridSize{Rows: config.TEST_GRID_ROWS, Cols: config.TEST_GRID_COLS},
		runId:     uuid.NewString(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Runner) RunId() string {
	return r.runId
}

// OutputPath <outputDir>/<test>/<model_name>-<test>.<ext>
func (r *Runner) OutputPath(test string, ckpt Checkpoint) string {
	return filepath.Join(r.outputDir, test, fmt.Sprintf("%s-%s.%s", ckpt.ModelName, test, r.ext))
}

// Run tests in order. Unknown tests and failing checkpoints are logged and skipped,
// a cancelled ctx stops the run before the next checkpoint.
func (r *Runner) Run(ctx context.Context, names []string) *Summary {
	summary := &Summary{RunId: r.runId, UnknownTests: make([]string, 0)}
	for _, name := range names {
		test, err := r.tests.Lookup(name)
		if err != nil {
			logrus.WithFields(logrus.Fields{"runId": r.runId}).Warnf("invalid test name: %s", name)
			summary.UnknownTests = append(summary.UnknownTests, name)
			continue
		}
		logrus.WithFields(logrus.Fields{"runId": r.runId, "test": name}).Infof(
			"launching checkpoint test, prompt: %s", test.Prompt)
		for _, ckpt := range r.directory.Testable() {
			if ctx.Err() != nil {
				logrus.WithFields(logrus.Fields{"runId": r.runId}).Warnf("run cancelled: %s", ctx.Err())
				return summary
			}
			status, path, err := r.runTest(ctx, name, test, ckpt)
			switch status {
			case config.RESULT_GENERATED:
				summary.Generated++
			case config.RESULT_SKIPPED:
				summary.Skipped++
			default:
				summary.Failed++
			}
			r.record(name, ckpt, status, path, err)
		}
	}
	logrus.WithFields(logrus.Fields{"runId": r.runId}).Infof("run finished, generated=%d skipped=%d failed=%d",
		summary.Generated, summary.Skipped, summary.Failed)
	return summary
}

func (r *Runner) runTest(ctx context.Context, name string, test TestDefinition,
	ckpt Checkpoint) (string, string, error) {
	logger := logrus.WithFields(logrus.Fields{"runId": r.runId, "test": name, "checkpoint": ckpt.ModelName})
	folder := filepath.Join(r.outputDir, name)
	if err := utils.EnsureDir(folder); err != nil {
		logger.Errorf("create output dir err=%s", err.Error())
		return config.RESULT_FAILED, "", err
	}
	path := r.OutputPath(name, ckpt)
	if utils.FileExists(path) {
		logger.Info("skipping test for checkpoint, testfile already exist")
		return config.RESULT_SKIPPED, path, nil
	}

	logger.Info("testing checkpoint")
	payload := BuildTestPayload(test, ckpt)
	result, err := r.client.Txt2Img(ctx, payload)
	if err != nil {
		logger.Errorf("txt2img fail err=%s", err.Error())
		return config.RESULT_FAILED, path, err
	}
	grid, err := imaging.Grid(imaging.NewDecoder(result.Images),
		imaging.Size{Width: payload.Width, Height: payload.Height}, r.grid)
	if err != nil {
		logger.Errorf("build image grid err=%s", err.Error())
		return config.RESULT_FAILED, path, err
	}
	if err := imaging.Save(path, grid); err != nil {
		logger.Errorf("save image grid err=%s", err.Error())
		return config.RESULT_FAILED, path, err
	}
	logger.Infof("image grid '%s' saved", path)
	return config.RESULT_GENERATED, path, nil
}

func (r *Runner) record(name string, ckpt Checkpoint, status, path string, err error) {
	if r.recorder == nil {
		return
	}
	res := &datastore.Result{
		RunId:      r.runId,
		Test:       name,
		Checkpoint: ckpt.ModelName,
		Status:     status,
		Path:       path,
	}
	if err != nil {
		res.Message = err.Error()
	}
	if err := r.recorder.Record(res); err != nil {
		logrus.WithFields(logrus.Fields{"runId": r.runId, "test": name}).Warnf(
			"record result err=%s", err.Error())
	}
}
