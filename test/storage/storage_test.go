package storage_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"memoflow/src/storage"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *storage.S3Config {
	return &storage.S3Config{
		Endpoint:        "http://localhost:9000",
		AccessKeyID:     "minioadmin",
		SecretAccessKey: "minioadmin",
		Region:          "us-east-1",
		Bucket:          "memoflow-logs",
		UseSSL:          false,
	}
}

func TestNewLogUploader(t *testing.T) {
	uploader, err := storage.NewLogUploader(testConfig(), logrus.New())

	require.NoError(t, err)
	assert.NotNil(t, uploader)
}

func TestUploadOldLogs_EmptyDirectory(t *testing.T) {
	uploader, err := storage.NewLogUploader(testConfig(), logrus.New())
	require.NoError(t, err)

	// 空のディレクトリではアップロード対象がなく、エラーも出ない
	err = uploader.UploadOldLogs(t.TempDir(), time.Hour)
	assert.NoError(t, err)
}

func TestUploadOldLogs_SkipsRecentFiles(t *testing.T) {
	uploader, err := storage.NewLogUploader(testConfig(), logrus.New())
	require.NoError(t, err)

	dir := t.TempDir()
	logFile := filepath.Join(dir, "app_test.log")
	require.NoError(t, os.WriteFile(logFile, []byte("entry\n"), 0644))

	// 新しいファイルはアップロード対象外なので S3 には触れない
	err = uploader.UploadOldLogs(dir, time.Hour)
	assert.NoError(t, err)

	_, err = os.Stat(logFile)
	assert.NoError(t, err, "recent log file must not be removed")
}

func TestUploadOldLogs_MissingDirectory(t *testing.T) {
	uploader, err := storage.NewLogUploader(testConfig(), logrus.New())
	require.NoError(t, err)

	err = uploader.UploadOldLogs(filepath.Join(t.TempDir(), "missing"), time.Hour)
	assert.Error(t, err)
}
