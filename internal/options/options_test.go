package options

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type readerConfig struct {
	bufferSize int
	halt       bool
	calls      []string
}

func (c *readerConfig) Validate() error {
	if c.bufferSize < 16 {
		return errors.New("buffer too small")
	}

	return nil
}

func withBufferSize(n int) Option[*readerConfig] {
	return New(func(c *readerConfig) error {
		if n <= 0 {
			return errors.New("buffer size must be positive")
		}
		c.bufferSize = n
		c.calls = append(c.calls, "size")

		return nil
	})
}

func withHalt(halt bool) Option[*readerConfig] {
	return NoError(func(c *readerConfig) {
		c.halt = halt
		c.calls = append(c.calls, "halt")
	})
}

func TestApply(t *testing.T) {
	t.Run("applies in order", func(t *testing.T) {
		cfg := &readerConfig{}
		err := Apply(cfg, withBufferSize(64), withHalt(true))
		require.NoError(t, err)
		require.Equal(t, 64, cfg.bufferSize)
		require.True(t, cfg.halt)
		require.Equal(t, []string{"size", "halt"}, cfg.calls)
	})

	t.Run("stops at first error", func(t *testing.T) {
		cfg := &readerConfig{}
		err := Apply(cfg, withHalt(true), withBufferSize(-1), withHalt(false))
		require.Error(t, err)
		require.True(t, cfg.halt)
		require.Equal(t, []string{"halt"}, cfg.calls)
	})

	t.Run("skips nil options", func(t *testing.T) {
		cfg := &readerConfig{}
		require.NoError(t, Apply(cfg, nil, withHalt(true)))
		require.True(t, cfg.halt)
	})

	t.Run("no options", func(t *testing.T) {
		cfg := &readerConfig{}
		require.NoError(t, Apply(cfg))
		require.Empty(t, cfg.calls)
	})
}

func TestApplyAndValidate(t *testing.T) {
	cfg := &readerConfig{}
	require.Error(t, ApplyAndValidate(cfg, withBufferSize(8)))

	cfg = &readerConfig{}
	require.NoError(t, ApplyAndValidate(cfg, withBufferSize(4096)))
}
