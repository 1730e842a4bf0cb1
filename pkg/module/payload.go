package module

import (
	"github.com/devsapp/sd-checkpoint-test/pkg/config"
	"github.com/devsapp/sd-checkpoint-test/pkg/models"
)

const defaultCfgScale = 7

// NewPayload txt2img request with the webui defaults
func NewPayload(prompt, negativePrompt string) *models.Txt2ImgRequest {
	return &models.Txt2ImgRequest{
		Prompt:         prompt,
		NegativePrompt: negativePrompt,
		SamplerName:    config.DEFAULT_SAMPLER,
		BatchCount:     1,
		BatchSize:      1,
		Steps:          config.TEST_STEPS,
		CfgScale:       defaultCfgScale,
		Width:          config.DEFAULT_SIZE,
		Height:         config.DEFAULT_SIZE,
		Seed:           -1,
	}
}

// BuildTestPayload fixed seed batch of 9 forced to ckpt, 1024px for SDXL.
func BuildTestPayload(test TestDefinition, ckpt Checkpoint) *models.Txt2ImgRequest {
	payload := NewPayload(test.Prompt, test.NegativePrompt)
	payload.BatchCount = config.TEST_BATCH_COUNT
	payload.Steps = config.TEST_STEPS
	payload.Seed = config.TEST_SEED
	if ckpt.IsSDXL() {
		payload.Width = config.SDXL_SIZE
		payload.Height = config.SDXL_SIZE
	}
	payload.Override(OverrideSettingsFor(ckpt))
	return payload
}

func OverrideSettingsFor(ckpt Checkpoint) models.OverrideSettings {
	return models.OverrideSettings{SdModelCheckpoint: ckpt.ModelName}
}
