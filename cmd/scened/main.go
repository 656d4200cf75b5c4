// Command scened owns the shared scene root and runs the updater and
// event tasks of the scene protocol over a single TCP listener.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/op/go-logging"

	"github.com/sceneproto/scene/codec"
	"github.com/sceneproto/scene/codec/binary"
	"github.com/sceneproto/scene/common/config"
	scenelog "github.com/sceneproto/scene/common/log"
	"github.com/sceneproto/scene/common/version"
	"github.com/sceneproto/scene/daemon"
	"github.com/sceneproto/scene/scene"
)

var log = scenelog.SetupLogging("scened", logging.INFO, useSyslog())

func useSyslog() bool {
	return os.Getenv("SCENE_LOG_SYSLOG") == "true"
}

func main() {
	defer func() {
		if r := recover(); r != nil {
			log.Critical("recovered panic:", r)
			log.Critical(string(debug.Stack()))
			panic(r)
		}
	}()

	configPath := flag.String("config", "", "path to a YAML config file (defaults built in if omitted)")
	modelPath := flag.String("model", "", "path to a binary-encoded initial model, overriding the config file")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatal(err)
		}
		cfg = loaded
	}
	if *modelPath != "" {
		cfg.InitialModelPath = *modelPath
	}

	log.Notice("scened", version.Current, "starting, listening on", cfg.ListenAddress)

	root := loadInitialRoot(cfg.InitialModelPath)

	srv := daemon.NewServer(cfg.ListenAddress, log, root)

	ctx, cancel := context.WithCancel(context.Background())
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-stop
		log.Notice("signal received, shutting down")
		cancel()
	}()

	if err := srv.Run(ctx); err != nil && ctx.Err() == nil {
		log.Fatal(err)
	}
}

// loadInitialRoot resolves the startup scene: an initial
// binary-encoded model file if given, otherwise a built-in default
// tree (an empty Group at the origin).
func loadInitialRoot(modelPath string) scene.Node {
	if modelPath == "" {
		return &scene.Group{}
	}
	f, err := os.Open(modelPath)
	if err != nil {
		log.Error("opening initial model", modelPath, ":", err)
		return &scene.Group{}
	}
	defer f.Close()

	r := codec.New(binary.NewReader(f))
	if err := r.ExpectStart(); err != nil {
		log.Error("reading initial model", modelPath, ":", err)
		return &scene.Group{}
	}
	tag, err := r.ExpectTag()
	if err != nil {
		log.Error("reading initial model", modelPath, ":", err)
		return &scene.Group{}
	}
	if tag != scene.TagShape {
		log.Error("initial model", modelPath, "is not a SHAP group")
		return &scene.Group{}
	}
	shape, err := scene.ReadModel(r)
	if err != nil {
		log.Error("reading initial model", modelPath, ":", err)
		return &scene.Group{}
	}
	return &scene.Model{Shape: shape, Scale: 1}
}
