package main

import (
	"flag"
	"os"
	"time"

	log "github.com/golang/glog"

	"github.com/ethereum/go-ethereum/common"
	"github.com/robfig/cron"

	"github.com/joincivil/token-registry/pkg/helpers"
	"github.com/joincivil/token-registry/pkg/registry"
	"github.com/joincivil/token-registry/pkg/utils"
)

const (
	checkRunSecs = 5
)

func checkCron(cr *cron.Cron) {
	entries := cr.Entries()
	for _, entry := range entries {
		log.Infof("Finalizer run times: prev: %v, next: %v\n", entry.Prev, entry.Next)
	}
}

func runFinalizer(engine *registry.Engine, finalizer common.Address) {
	finalized, err := engine.FinalizeExpired(finalizer)
	if err != nil {
		log.Errorf("Error finalizing expired listings: err: %v", err)
		return
	}
	log.Infof("Done running finalizer: finalized %v listings", finalized)
}

func main() {
	config := &utils.RegistryConfig{}
	flag.Usage = func() {
		config.OutputUsage()
		os.Exit(0)
	}
	flag.Parse()

	err := config.PopulateFromEnv()
	if err != nil {
		config.OutputUsage()
		log.Errorf("Invalid registry config: err: %v\n", err)
		os.Exit(2)
	}

	engine, err := helpers.Engine(config)
	if err != nil {
		log.Errorf("Error initializing registry engine: err: %v", err)
		os.Exit(2)
	}
	finalizer := common.HexToAddress(config.FinalizerAddress)

	cr := cron.New()
	err = cr.AddFunc(config.CronConfig, func() { runFinalizer(engine, finalizer) })
	if err != nil {
		log.Errorf("Error starting: err: %v", err)
		os.Exit(1)
	}
	cr.Start()

	// Blocks here while the cron process runs
	for range time.After(checkRunSecs * time.Second) {
		checkCron(cr)
	}
}
