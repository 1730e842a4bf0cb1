package config

import "time"

// sd api
const (
	SD_API_PREFIX = "/sdapi/v1"
	SD_MODELS     = SD_API_PREFIX + "/sd-models"
	TXT2IMG       = SD_API_PREFIX + "/txt2img"
	// the api docs page, only used as liveness probe
	SD_DOCS = "/docs"

	HTTPTIMEOUT = 10 * time.Minute
)

// env
const (
	SD_URL        = "SD_URL"
	SD_OUTPUT_DIR = "SD_OUTPUT_DIR"
	SD_DB_SQLITE  = "SD_DB_SQLITE"
	SD_IMAGE_EXT  = "SD_IMAGE_EXT"
	SD_LOG_MODE   = "SD_LOG_MODE"
)

// checkpoint test
const (
	CKPT_TEST        = "ckpt-test"
	DEFAULT_TEST     = "circle"
	TEST_BATCH_COUNT = 9
	TEST_STEPS       = 20
	TEST_SEED        = 1
	TEST_GRID_ROWS   = 3
	TEST_GRID_COLS   = 3

	SD15_PREFIX     = "SD15"
	SDXL_PREFIX     = "SDXL"
	REFINER_TAG     = "refiner"
	DEFAULT_SIZE    = 512
	SDXL_SIZE       = 1024
	DEFAULT_SAMPLER = "Euler"
)

// result status
const (
	RESULT_GENERATED = "generated"
	RESULT_SKIPPED   = "skipped"
	RESULT_FAILED    = "failed"
)
