package models

// SDModel one checkpoint of GET /sdapi/v1/sd-models
type SDModel struct {
	Title     string  `json:"title"`
	ModelName string  `json:"model_name"`
	Hash      *string `json:"hash,omitempty"`
	Sha256    *string `json:"sha256,omitempty"`
	Filename  string  `json:"filename,omitempty"`
	Config    *string `json:"config,omitempty"`
}

// OverrideSettings force sd settings for a single request
type OverrideSettings struct {
	SdModelCheckpoint string `json:"sd_model_checkpoint"`
}

// Txt2ImgRequest body of POST /sdapi/v1/txt2img
type Txt2ImgRequest struct {
	Prompt         string  `json:"prompt"`
	NegativePrompt string  `json:"negative_prompt"`
	SamplerName    string  `json:"sampler_name"`
	BatchCount     int     `json:"n_iter"`
	BatchSize      int     `json:"batch_size"`
	Steps          int     `json:"steps"`
	CfgScale       float64 `json:"cfg_scale"`
	Width          int     `json:"width"`
	Height         int     `json:"height"`
	Seed           int64   `json:"seed"`

	OverrideSettings                  *OverrideSettings `json:"override_settings,omitempty"`
	OverrideSettingsRestoreAfterwards *bool             `json:"override_settings_restore_afterwards,omitempty"`
}

// Override attach override settings to the request
func (r *Txt2ImgRequest) Override(settings OverrideSettings) {
	r.OverrideSettings = &settings
}

type Txt2ImgResult struct {
	Images     []string               `json:"images"`
	Parameters map[string]interface{} `json:"parameters"`
	Info       string                 `json:"info"`
}
