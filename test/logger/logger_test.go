package logger_test

import (
	"os"
	"path/filepath"
	"testing"

	"memoflow/src/logger"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitLogger(t *testing.T) {
	dir := t.TempDir()
	os.Setenv("LOG_DIRECTORY", dir)
	os.Setenv("LOG_LEVEL", "debug")
	defer func() {
		os.Unsetenv("LOG_DIRECTORY")
		os.Unsetenv("LOG_LEVEL")
		logger.CloseLogger()
	}()

	require.NoError(t, logger.InitLogger())
	require.NotNil(t, logger.Log)

	assert.Equal(t, logrus.DebugLevel, logger.Log.GetLevel())

	// ログファイルが作成されている
	logFile := logger.GetCurrentLogFile()
	require.NotEmpty(t, logFile)
	assert.Equal(t, dir, filepath.Dir(logFile))

	_, err := os.Stat(logFile)
	assert.NoError(t, err)

	// フィールド付きログが書ける
	logger.WithField("key", "value").Info("test entry")
	logger.WithFields(logrus.Fields{"a": 1, "b": 2}).Debug("another entry")

	info, err := os.Stat(logFile)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestInitLogger_InvalidLevelFallsBack(t *testing.T) {
	dir := t.TempDir()
	os.Setenv("LOG_DIRECTORY", dir)
	os.Setenv("LOG_LEVEL", "not-a-level")
	defer func() {
		os.Unsetenv("LOG_DIRECTORY")
		os.Unsetenv("LOG_LEVEL")
		logger.CloseLogger()
	}()

	require.NoError(t, logger.InitLogger())
	assert.Equal(t, logrus.InfoLevel, logger.Log.GetLevel())
}
