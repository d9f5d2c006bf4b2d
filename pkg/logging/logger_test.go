package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("json format", func(t *testing.T) {
		logger, err := New("info", "json")
		require.NoError(t, err)
		require.NotNil(t, logger)
		logger.Info("logger built")
	})

	t.Run("console format", func(t *testing.T) {
		logger, err := New("debug", "console")
		require.NoError(t, err)
		require.NotNil(t, logger)
	})

	t.Run("bad level", func(t *testing.T) {
		_, err := New("chatty", "json")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "chatty")
	})

	t.Run("bad format", func(t *testing.T) {
		_, err := New("info", "xml")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "xml")
	})
}
