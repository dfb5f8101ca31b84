package commands_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/tago/cmd/tago/commands"
	"go.trai.ch/tago/internal/app"
	"go.trai.ch/tago/internal/build"
)

type mockApp struct {
	buildFunc func(ctx context.Context, opts app.Options) error
	runFunc   func(ctx context.Context, opts app.Options) error
	rmFunc    func(ctx context.Context, opts app.Options) error
	queryFunc func(ctx context.Context, opts app.Options) error
	listFunc  func(ctx context.Context, opts app.Options) error
	initFunc  func(ctx context.Context, opts app.Options) error
	purgeFunc func(ctx context.Context, opts app.Options) error
}

func call(fn func(ctx context.Context, opts app.Options) error, ctx context.Context, opts app.Options) error {
	if fn != nil {
		return fn(ctx, opts)
	}
	return nil
}

func (m *mockApp) Build(ctx context.Context, opts app.Options) error {
	return call(m.buildFunc, ctx, opts)
}

func (m *mockApp) Run(ctx context.Context, opts app.Options) error {
	return call(m.runFunc, ctx, opts)
}

func (m *mockApp) Remove(ctx context.Context, opts app.Options) error {
	return call(m.rmFunc, ctx, opts)
}

func (m *mockApp) Query(ctx context.Context, opts app.Options) error {
	return call(m.queryFunc, ctx, opts)
}

func (m *mockApp) List(ctx context.Context, opts app.Options) error {
	return call(m.listFunc, ctx, opts)
}

func (m *mockApp) Init(ctx context.Context, opts app.Options) error {
	return call(m.initFunc, ctx, opts)
}

func (m *mockApp) Purge(ctx context.Context, opts app.Options) error {
	return call(m.purgeFunc, ctx, opts)
}

func TestCommands_Build(t *testing.T) {
	t.Run("wires flags correctly", func(t *testing.T) {
		var capturedOpts app.Options
		called := false

		mock := &mockApp{
			buildFunc: func(_ context.Context, opts app.Options) error {
				capturedOpts = opts
				called = true
				return nil
			},
		}

		cli := commands.New(mock)
		cli.SetArgs([]string{"build", "0.2.0", "--force", "--allow-dirty", "--skip-rebuild", "-f", "custom.yml"})

		err := cli.Execute(context.Background())
		require.NoError(t, err)
		assert.True(t, called)
		assert.Equal(t, "0.2.0", capturedOpts.Request.Tag)
		assert.True(t, capturedOpts.Request.Force)
		assert.True(t, capturedOpts.Request.AllowDirty)
		assert.True(t, capturedOpts.Request.SkipRebuild)
		assert.Equal(t, "custom.yml", capturedOpts.Descriptor)
	})

	t.Run("requires a tag argument", func(t *testing.T) {
		mock := &mockApp{
			buildFunc: func(_ context.Context, _ app.Options) error {
				panic("should not be called")
			},
		}

		cli := commands.New(mock)
		cli.SetOutput(new(bytes.Buffer), new(bytes.Buffer))
		cli.SetArgs([]string{"build"})

		err := cli.Execute(context.Background())
		require.Error(t, err)
	})

	t.Run("returns error on build failure", func(t *testing.T) {
		mock := &mockApp{
			buildFunc: func(_ context.Context, _ app.Options) error {
				return errors.New("simulated error")
			},
		}

		cli := commands.New(mock)
		cli.SetArgs([]string{"build", "0.1.0"})
		// Silence output to avoid polluting test logs
		cli.SetOutput(new(bytes.Buffer), new(bytes.Buffer))

		err := cli.Execute(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "simulated error")
	})
}

func TestCommands_PersistentFlags(t *testing.T) {
	var capturedOpts app.Options

	mock := &mockApp{
		listFunc: func(_ context.Context, opts app.Options) error {
			capturedOpts = opts
			return nil
		},
	}

	cli := commands.New(mock)
	cli.SetArgs([]string{"list", "--local", "--strict", "--builds-dir", "out"})

	err := cli.Execute(context.Background())
	require.NoError(t, err)
	assert.True(t, capturedOpts.Request.InPlace)
	assert.True(t, capturedOpts.Request.Strict)
	assert.Equal(t, "out", capturedOpts.BuildsDir)
}

func TestCommands_Query(t *testing.T) {
	t.Run("wires test flags", func(t *testing.T) {
		var capturedOpts app.Options

		mock := &mockApp{
			queryFunc: func(_ context.Context, opts app.Options) error {
				capturedOpts = opts
				return nil
			},
		}

		cli := commands.New(mock)
		cli.SetArgs([]string{"query", "--test", "smoke", "--record"})

		err := cli.Execute(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "smoke", capturedOpts.Request.Test)
		assert.True(t, capturedOpts.Request.Record)
		assert.Empty(t, capturedOpts.Request.Tag)
	})

	t.Run("accepts an optional tag", func(t *testing.T) {
		var capturedOpts app.Options

		mock := &mockApp{
			queryFunc: func(_ context.Context, opts app.Options) error {
				capturedOpts = opts
				return nil
			},
		}

		cli := commands.New(mock)
		cli.SetArgs([]string{"query", "0.3.0"})

		err := cli.Execute(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "0.3.0", capturedOpts.Request.Tag)
	})
}

func TestCommands_Bulk(t *testing.T) {
	var initOpts app.Options
	purged := false

	mock := &mockApp{
		initFunc: func(_ context.Context, opts app.Options) error {
			initOpts = opts
			return nil
		},
		purgeFunc: func(_ context.Context, _ app.Options) error {
			purged = true
			return nil
		},
	}

	cli := commands.New(mock)
	cli.SetArgs([]string{"init", "--force"})
	require.NoError(t, cli.Execute(context.Background()))
	assert.True(t, initOpts.Request.Force)

	cli = commands.New(mock)
	cli.SetArgs([]string{"purge"})
	require.NoError(t, cli.Execute(context.Background()))
	assert.True(t, purged)
}

func TestCommands_Version(t *testing.T) {
	mock := &mockApp{}
	cli := commands.New(mock)

	buf := new(bytes.Buffer)
	cli.SetOutput(buf, buf)
	cli.SetArgs([]string{"version"})

	err := cli.Execute(context.Background())
	require.NoError(t, err)

	assert.Contains(t, buf.String(), build.Version)
}
