package config

import (
	"errors"
	"fmt"
	"io/ioutil"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

var ConfigGlobal = DefaultConfig()

type Config struct {
	// sd
	SdUrlPrefix string        `yaml:"sdUrlPrefix"`
	HttpTimeout time.Duration `yaml:"httpTimeout"`

	// output
	ImageOutputDir string `yaml:"imageOutputDir"`
	ImageExt       string `yaml:"imageExt"`

	// db, empty disable the result ledger
	DbSqlite string `yaml:"dbSqlite"`

	// log mode debug|dev|product
	LogMode string `yaml:"logMode"`
}

func DefaultConfig() *Config {
	return &Config{
		SdUrlPrefix:    "http://127.0.0.1:7860",
		HttpTimeout:    HTTPTIMEOUT,
		ImageOutputDir: "../my-output",
		ImageExt:       "png",
		LogMode:        "dev",
	}
}

// TestOutputDir root dir of checkpoint test grids
func (c *Config) TestOutputDir() string {
	return strings.TrimRight(c.ImageOutputDir, "/") + "/" + CKPT_TEST
}

func (c *Config) check() error {
	if c.SdUrlPrefix == "" {
		return errors.New("sdUrlPrefix not set, please check")
	}
	if c.ImageOutputDir == "" {
		return errors.New("imageOutputDir not set, please check")
	}
	switch strings.ToLower(c.ImageExt) {
	case "png", "jpg", "jpeg":
	default:
		return fmt.Errorf("imageExt %s not support", c.ImageExt)
	}
	if c.HttpTimeout <= 0 {
		c.HttpTimeout = HTTPTIMEOUT
	}
	c.SdUrlPrefix = strings.TrimRight(c.SdUrlPrefix, "/")
	c.ImageExt = strings.ToLower(c.ImageExt)
	return nil
}

// InitConfig load config from .env, yaml file fn and env, later overrides earlier.
// A missing file is not an error.
func InitConfig(fn string) error {
	// .env is optional
	_ = godotenv.Load()

	cfg := DefaultConfig()
	if fn != "" {
		data, err := ioutil.ReadFile(fn)
		if err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("read config %s err=%w", fn, err)
		}
		if err == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return fmt.Errorf("parse config %s err=%w", fn, err)
			}
		}
	}
	loadEnv(cfg)
	if err := cfg.check(); err != nil {
		return err
	}
	ConfigGlobal = cfg
	return nil
}

func loadEnv(cfg *Config) {
	if v := os.Getenv(SD_URL); v != "" {
		cfg.SdUrlPrefix = v
	}
	if v := os.Getenv(SD_OUTPUT_DIR); v != "" {
		cfg.ImageOutputDir = v
	}
	if v := os.Getenv(SD_DB_SQLITE); v != "" {
		cfg.DbSqlite = v
	}
	if v := os.Getenv(SD_IMAGE_EXT); v != "" {
		cfg.ImageExt = v
	}
	if v := os.Getenv(SD_LOG_MODE); v != "" {
		cfg.LogMode = v
	}
}
