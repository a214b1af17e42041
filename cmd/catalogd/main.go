package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/brightline/catalogd/config"
	"github.com/brightline/catalogd/internal/adminapi"
	"github.com/brightline/catalogd/internal/app"
	"github.com/brightline/catalogd/internal/webserver"
)

var (
	cfile      = flag.String("c", "/etc/catalogd.yml", "config file path")
	initdb     = flag.Bool("initdb", false, "drop and recreate all tables, then exit")
	showConfig = flag.Bool("x", false, "print effective config and exit")
)

func main() {
	flag.Parse()

	cfg := config.LoadConfig(*cfile)
	cfg.InitDirs()

	if *showConfig {
		fmt.Printf("%+v\n", *cfg)
		return
	}

	application := app.NewApplication(cfg)
	application.Init(cfg)
	defer application.Release()

	if *initdb {
		application.InitDb()
		zap.S().Info("database initialized")
		return
	}

	webserver.Init(application)
	adminapi.InitRouter()

	errC := make(chan error, 1)
	go func() {
		errC <- webserver.Listen()
	}()

	sigC := make(chan os.Signal, 1)
	signal.Notify(sigC, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errC:
		if err != nil {
			zap.S().Fatalf("web server error: %v", err)
		}
	case sig := <-sigC:
		zap.S().Infof("received signal %s, shutting down", sig)
	}
}
