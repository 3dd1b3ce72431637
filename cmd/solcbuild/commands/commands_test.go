package commands_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.trai.ch/solcbuild/cmd/solcbuild/commands"
	"go.trai.ch/solcbuild/internal/build"
)

type mockApp struct {
	runOnceFunc func(ctx context.Context, configPath string, contracts ...string) error
	watchFunc   func(ctx context.Context, configPath string) error
}

func (m *mockApp) RunOnce(ctx context.Context, configPath string, contracts ...string) error {
	if m.runOnceFunc != nil {
		return m.runOnceFunc(ctx, configPath, contracts...)
	}
	return nil
}

func (m *mockApp) Watch(ctx context.Context, configPath string) error {
	if m.watchFunc != nil {
		return m.watchFunc(ctx, configPath)
	}
	return nil
}

func TestCommands_Compile(t *testing.T) {
	t.Run("wires config path and contract names", func(t *testing.T) {
		var capturedPath string
		var capturedContracts []string
		called := false

		mock := &mockApp{
			runOnceFunc: func(_ context.Context, configPath string, contracts ...string) error {
				capturedPath = configPath
				capturedContracts = contracts
				called = true
				return nil
			},
		}

		cli := commands.New(mock)
		cli.SetArgs([]string{"compile", "Token", "Vault", "--config", "custom.json"})

		err := cli.Execute(context.Background())
		require.NoError(t, err)
		assert.True(t, called)
		assert.Equal(t, "custom.json", capturedPath)
		assert.Equal(t, []string{"Token", "Vault"}, capturedContracts)
	})

	t.Run("uses the default config path when unset", func(t *testing.T) {
		var capturedPath string

		mock := &mockApp{
			runOnceFunc: func(_ context.Context, configPath string, _ ...string) error {
				capturedPath = configPath
				return nil
			},
		}

		cli := commands.New(mock)
		cli.SetArgs([]string{"compile"})

		err := cli.Execute(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "solcbuild.json", capturedPath)
	})

	t.Run("returns error on build failure", func(t *testing.T) {
		mock := &mockApp{
			runOnceFunc: func(_ context.Context, _ string, _ ...string) error {
				return errors.New("simulated error")
			},
		}

		cli := commands.New(mock)
		cli.SetArgs([]string{"compile"})
		cli.SetOutput(new(bytes.Buffer), new(bytes.Buffer))

		err := cli.Execute(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "simulated error")
	})
}

func TestCommands_Watch(t *testing.T) {
	called := false
	mock := &mockApp{
		watchFunc: func(_ context.Context, _ string) error {
			called = true
			return nil
		},
	}

	cli := commands.New(mock)
	cli.SetArgs([]string{"watch"})

	err := cli.Execute(context.Background())
	require.NoError(t, err)
	assert.True(t, called)
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
