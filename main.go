/*
This is an example of application that will use the
engine package to fly a camera around
*/
package main

import (
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/spaghettifunk/flycam/engine"
	"github.com/spaghettifunk/flycam/engine/config"
	"github.com/spaghettifunk/flycam/engine/core"
	"github.com/spaghettifunk/flycam/testbed"
)

func main() {
	configPath := flag.String("config", "", "path to a .toml or .yaml config file")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			core.LogFatal("failed to load config: %s", err)
		}
		cfg = loaded
	}

	appConfig, err := engine.NewApplicationConfig(cfg, *configPath)
	if err != nil {
		panic(err)
	}
	tb := testbed.NewTestGame(appConfig)

	engine, err := engine.New(tb.Game, cfg)
	if err != nil {
		panic(err)
	}

	if err := engine.Initialize(); err != nil {
		panic(err)
	}

	// signal channel to capture system calls
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)

	// start shutdown goroutine
	go func() {
		// capture sigterm and other system call here
		<-sigCh
		engine.Stop()
	}()

	// run engine
	runErr := engine.Run()
	if err := engine.Shutdown(); err != nil {
		core.LogError("shutdown failed: %s", err)
	}
	if runErr != nil {
		panic(runErr)
	}
}
