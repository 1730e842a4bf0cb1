package main

import (
	"context"
	"flag"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/devsapp/sd-checkpoint-test/pkg/client"
	"github.com/devsapp/sd-checkpoint-test/pkg/config"
	"github.com/devsapp/sd-checkpoint-test/pkg/module"
	"github.com/sirupsen/logrus"
)

const defaultConfigPath = "config.yaml"

func main() {
	configFile := flag.String("config", defaultConfigPath, "default config path")
	prompt := flag.String("prompt", "woman", "prompt")
	negativePrompt := flag.String("negative", "", "negative prompt")
	model := flag.String("model", "photon", "checkpoint name to force, empty use the server current one")
	batch := flag.Int("batch", 3, "batch size")
	prefix := flag.String("prefix", "output", "output file name prefix")
	seed := flag.Int64("seed", 1, "seed, -1 random")
	flag.Parse()

	if err := config.InitConfig(*configFile); err != nil {
		logrus.Fatal(err.Error())
	}
	if config.ConfigGlobal.LogMode == "debug" {
		logrus.SetLevel(logrus.DebugLevel)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sd := client.NewClient(config.ConfigGlobal.SdUrlPrefix, config.ConfigGlobal.HttpTimeout)
	if !sd.IsAlive(ctx) {
		logrus.Fatal("A1111 server not found")
	}

	payload := module.NewPayload(*prompt, *negativePrompt)
	payload.BatchSize = *batch
	payload.Seed = *seed
	if *model != "" {
		directory := module.NewCheckpointDirectory(sd)
		if err := directory.Refresh(ctx); err != nil {
			logrus.Fatal("checkpoints init fail")
		}
		if ckpt, ok := directory.Find(*model); ok {
			logrus.Infof("use checkpoint %s", ckpt)
			payload.Override(module.OverrideSettingsFor(ckpt))
		} else {
			logrus.Warn(fmt.Errorf("%w: %s", module.ErrCheckpointNotFound, *model).Error())
		}
	}

	result, err := sd.Txt2Img(ctx, payload)
	if err != nil {
		logrus.Fatalf("txt2img fail err=%s", err.Error())
	}
	if _, err := module.StoreImages(result, config.ConfigGlobal.ImageOutputDir, *prefix,
		config.ConfigGlobal.ImageExt); err != nil {
		logrus.Fatalf("store images fail err=%s", err.Error())
	}
}
