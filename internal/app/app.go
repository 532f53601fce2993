// Package app wires the generator's services together.
package app

import (
	"log/slog"

	"github.com/samber/do/v2"
	"github.com/spf13/afero"

	"github.com/nfrund/contractgen/internal/compiler"
	"github.com/nfrund/contractgen/internal/config"
	"github.com/nfrund/contractgen/internal/storage"
)

// NewInjector registers the configuration, logger and file system, and the
// services built from them.
func NewInjector(cfg *config.Config, logger *slog.Logger, fs afero.Fs) do.Injector {
	injector := do.New()

	do.ProvideValue(injector, cfg)
	do.ProvideValue(injector, logger)
	do.ProvideValue(injector, fs)

	do.Provide(injector, NewStore)
	do.Provide(injector, NewCompiler)

	return injector
}

// NewStore provides the afero-backed store.
func NewStore(i do.Injector) (storage.Store, error) {
	fs, err := do.Invoke[afero.Fs](i)
	if err != nil {
		return nil, err
	}
	return storage.NewAferoStore(fs), nil
}

// NewCompiler provides the compiler.
func NewCompiler(i do.Injector) (*compiler.Compiler, error) {
	store, err := do.Invoke[storage.Store](i)
	if err != nil {
		return nil, err
	}
	logger, err := do.Invoke[*slog.Logger](i)
	if err != nil {
		return nil, err
	}
	return compiler.New(store, logger), nil
}
