package obs

import (
	"fmt"

	"go.uber.org/zap"
)

// NewLogger builds a development logger for local runs and a JSON
// production logger everywhere else.
func NewLogger(appEnv, name string) (*zap.Logger, error) {
	var (
		logger *zap.Logger
		err    error
	)

	if appEnv == "development" || appEnv == "" {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return nil, fmt.Errorf("new logger: %w", err)
	}

	return logger.Named(name), nil
}
