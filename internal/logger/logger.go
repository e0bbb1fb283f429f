package logger

import "go.uber.org/zap"

// New builds a zap logger appropriate for the given gin mode.
func New(ginMode string) (*zap.Logger, error) {
	if ginMode == "release" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
