package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/devsapp/sd-checkpoint-test/pkg/client"
	"github.com/devsapp/sd-checkpoint-test/pkg/config"
	"github.com/devsapp/sd-checkpoint-test/pkg/datastore"
	"github.com/devsapp/sd-checkpoint-test/pkg/module"
	"github.com/sirupsen/logrus"
)

const defaultConfigPath = "config.yaml"

func logInit(logLevel string) {
	switch logLevel {
	case "debug":
		logrus.SetLevel(logrus.DebugLevel)
		// include function and file
		logrus.SetReportCaller(true)
	case "dev":
		logrus.SetLevel(logrus.InfoLevel)
	default:
		logrus.SetLevel(logrus.WarnLevel)
	}
}

func main() {
	configFile := flag.String("config", defaultConfigPath, "default config path")
	mode := flag.String("mode", "", "work mode debug|dev|product, default from config")
	list := flag.Bool("list", false, "print all test names and exit")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] [test ...]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	tests := module.DefaultTests()
	if *list {
		for _, name := range tests.Names() {
			fmt.Println(name)
		}
		return
	}

	// init config
	if err := config.InitConfig(*configFile); err != nil {
		logrus.Fatal(err.Error())
	}
	if *mode == "" {
		*mode = config.ConfigGlobal.LogMode
	}
	logInit(*mode)

	names := flag.Args()
	if len(names) == 0 {
		names = []string{config.DEFAULT_TEST}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client.ManagerClientGlobal.SetTimeout(config.ConfigGlobal.HttpTimeout)
	sd := client.ManagerClientGlobal.GetClient(config.ConfigGlobal.SdUrlPrefix)
	if !sd.IsAlive(ctx) {
		logrus.Fatalf("A1111 server not running at %s", sd.Endpoint())
	}
	directory := module.NewCheckpointDirectory(sd)
	if err := directory.Refresh(ctx); err != nil {
		logrus.Fatal("checkpoints init fail")
	}

	opts := []module.RunnerOption{module.WithImageExt(config.ConfigGlobal.ImageExt)}
	if config.ConfigGlobal.DbSqlite != "" {
		store, err := datastore.NewResultStore(config.ConfigGlobal.DbSqlite)
		if err != nil {
			logrus.Fatalf("result store init fail err=%s", err.Error())
		}
		defer store.Close()
		opts = append(opts, module.WithRecorder(store))
	}

	runner := module.NewRunner(sd, directory, tests, config.ConfigGlobal.TestOutputDir(), opts...)
	summary := runner.Run(ctx, names)
	fmt.Printf("run %s: generated %d, skipped %d, failed %d\n",
		summary.RunId, summary.Generated, summary.Skipped, summary.Failed)
	if len(summary.UnknownTests) > 0 {
		fmt.Printf("unknown tests: %v\n", summary.UnknownTests)
	}
}
