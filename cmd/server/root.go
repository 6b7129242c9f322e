package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	config "github.com/avatarctic/profile-lookup/configs"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "profile-lookup",
		Short: "Social profile and phone photo lookup service.",
	}
	root.AddCommand(newServeCmd(), newLookupCmd())
	return root
}

func newLogger(cfg *config.LogConfig) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	if cfg.Format == "text" {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		logger.SetLevel(logrus.InfoLevel)
	} else {
		logger.SetLevel(level)
	}
	return logger
}
