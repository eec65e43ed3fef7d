package logger

import (
	"fmt"

	"go.uber.org/zap"
)

// Init builds the process logger for env and installs it as zap's global
// logger. "production" logs JSON at info level; anything else logs to the
// console at debug level.
func Init(env string) error {
	var (
		l   *zap.Logger
		err error
	)
	switch env {
	case "production", "prod":
		l, err = zap.NewProduction()
	default:
		l, err = zap.NewDevelopment()
	}
	if err != nil {
		return fmt.Errorf("build %s logger -> %w", env, err)
	}

	zap.ReplaceGlobals(l)
	return nil
}
