package bootstrap

import (
	"fmt"
	"os"

	coreconfig "payshot/core/config"
	"payshot/core/logger"
)

// Options control the generic bootstrap pipeline shared between bots.
type Options struct {
	Config *coreconfig.Config

	LoggerInit    func(*coreconfig.Config) error
	EnsureScratch func(dir string) error
}

// Result exposes infrastructure initialized by the bootstrap pipeline.
type Result struct {
	ScratchDir string
}

// Run initializes the logger and prepares the scratch directory used for
// render artifacts.
func Run(opts Options) (*Result, error) {
	if opts.Config == nil {
		return nil, fmt.Errorf("bootstrap: nil config provided")
	}

	loggerInit := opts.LoggerInit
	if loggerInit == nil {
		loggerInit = logger.InitLogger
	}
	if err := loggerInit(opts.Config); err != nil {
		return nil, fmt.Errorf("bootstrap: logger init failed: %w", err)
	}

	scratch := opts.Config.Render.ScratchDir
	ensure := opts.EnsureScratch
	if ensure == nil {
		ensure = func(dir string) error {
			return os.MkdirAll(dir, 0o755)
		}
	}
	if err := ensure(scratch); err != nil {
		return nil, fmt.Errorf("bootstrap: scratch dir init failed: %w", err)
	}

	return &Result{ScratchDir: scratch}, nil
}
