package app_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/samber/do/v2"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nfrund/contractgen/internal/app"
	"github.com/nfrund/contractgen/internal/compiler"
	"github.com/nfrund/contractgen/internal/config"
	"github.com/nfrund/contractgen/internal/storage"
)

func TestInjector(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "events.yaml", []byte(`package: events
kinds:
  - name: Ping
    topic: ping/{node}
`), 0644))

	cfg := config.Default()
	injector := app.NewInjector(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)), fs)

	assert.Same(t, cfg, do.MustInvoke[*config.Config](injector))

	store, err := do.Invoke[storage.Store](injector)
	require.NoError(t, err)
	assert.IsType(t, &storage.AferoStore{}, store)

	c := do.MustInvoke[*compiler.Compiler](injector)
	assert.Same(t, c, do.MustInvoke[*compiler.Compiler](injector), "services are singletons")

	res, err := c.Generate(context.Background(), "events.yaml", compiler.OptionsFromConfig(cfg))
	require.NoError(t, err)
	assert.Equal(t, "events_contract.go", res.Output)

	exists, err := afero.Exists(fs, "events_contract.go")
	require.NoError(t, err)
	assert.True(t, exists)
}
