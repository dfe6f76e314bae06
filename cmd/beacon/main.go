// Command beacon runs the protocol engine as a standalone server.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/isitreallyalive/beacon/internal/config"
	"github.com/isitreallyalive/beacon/internal/version"
	"github.com/isitreallyalive/beacon/server"
)

func main() {
	configPath := flag.String("config", "beacon.yaml", "path to the server configuration file")
	flag.Parse()

	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	logrus.Infof("starting beacon v%s", version.Beacon)
	logrus.Warn("beacon is in early development. expect bugs and incomplete features.")
	logrus.WithFields(logrus.Fields{
		"os":       runtime.GOOS,
		"arch":     runtime.GOARCH,
		"protocol": version.Protocol,
		"supports": supportedVersionsString(),
	}).Debug("runtime environment")

	cfgManager, err := config.Watch(*configPath)
	if err != nil {
		logrus.WithError(err).Fatal("failed to load configuration")
	}
	defer cfgManager.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s := server.New(cfgManager)
	if err := s.Run(ctx); err != nil {
		logrus.WithError(err).Fatal("server exited with error")
	}
}

func supportedVersionsString() string {
	names := make([]string, len(version.Supported))
	for i, v := range version.Supported {
		names[i] = v.String()
	}
	return "[" + strings.Join(names, ", ") + "]"
}
