// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cli

import (
	"os"
	"path"

	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/ava-labs/avalanchego/utils/perms"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/ava-labs/countervm/config"
)

// NewLogger writes colored output to stderr and, when a log directory is
// configured, JSON to a rotated file in it. The returned func stops the
// logger.
func NewLogger(cfg *config.Config, name string) (logging.Logger, func(), error) {
	logConfig := cfg.GetLogConfig(name)

	consoleCore := logging.NewWrappedCore(logConfig.DisplayLevel, os.Stderr, logging.Colors.ConsoleEncoder())
	cores := []logging.WrappedCore{consoleCore}

	var rw *lumberjack.Logger
	if logConfig.Directory != "" {
		if err := os.MkdirAll(logConfig.Directory, perms.ReadWriteExecute); err != nil {
			return nil, nil, err
		}
		rw = &lumberjack.Logger{
			Filename:   path.Join(logConfig.Directory, name+".log"),
			MaxSize:    logConfig.MaxSize,  // megabytes
			MaxBackups: logConfig.MaxFiles, // files
		}
		cores = append(cores, logging.NewWrappedCore(logConfig.LogLevel, rw, logConfig.LogFormat.FileEncoder()))
	}

	prefix := logConfig.LogFormat.WrapPrefix(logConfig.MsgPrefix)
	log := logging.NewLogger(prefix, cores...)
	return log, func() {
		log.Stop()
		if rw != nil {
			_ = rw.Close()
		}
	}, nil
}

