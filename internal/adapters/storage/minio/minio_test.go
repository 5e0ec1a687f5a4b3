package minio_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"tagboard/internal/adapters/storage/minio"
	"tagboard/internal/config"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	testAccessKey = "minioadmin"
	testSecretKey = "minioadmin"
	testBucket    = "test-exports"
)

func setupContainer(t *testing.T) (string, func()) {
	t.Helper()
	ctx := context.Background()

	minioContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "minio/minio:latest",
			ExposedPorts: []string{"9000/tcp"},
			Env: map[string]string{
				"MINIO_ROOT_USER":     testAccessKey,
				"MINIO_ROOT_PASSWORD": testSecretKey,
			},
			Cmd:        []string{"server", "/data"},
			WaitingFor: wait.ForHTTP("/minio/health/live").WithPort("9000"),
		},
		Started: true,
	})
	require.NoError(t, err)

	host, err := minioContainer.Host(ctx)
	require.NoError(t, err)

	port, err := minioContainer.MappedPort(ctx, "9000")
	require.NoError(t, err)

	cleanup := func() {
		if err := minioContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	}
	return fmt.Sprintf("%s:%s", host, port.Port()), cleanup
}

func createAdapter(t *testing.T, ctx context.Context, endpoint string) *minio.Adapter {
	t.Helper()
	cfg := config.MinioConfig{
		Endpoint:          endpoint,
		AccessKey:         testAccessKey,
		SecretKey:         testSecretKey,
		BucketName:        testBucket,
		DownloadURLExpiry: 5 * time.Minute,
	}

	discardLogger := slog.New(slog.NewTextHandler(io.Discard, nil))

	adapter, err := minio.NewAdapter(ctx, cfg, discardLogger)
	require.NoError(t, err)
	require.NotNil(t, adapter)

	return adapter
}

func TestExportRoundTrip(t *testing.T) {
	// Arrange
	endpoint, cleanup := setupContainer(t)
	defer cleanup()
	ctx := context.Background()
	adapter := createAdapter(t, ctx, endpoint)

	key := "exports/roundtrip.csv"
	content := "id,title,slug,amountOfVideos\n1,react,react,3\n"

	// Act
	err := adapter.PutObject(ctx, key, strings.NewReader(content), int64(len(content)), "text/csv")
	require.NoError(t, err)
	presignedURL, expiresAt, err := adapter.PresignedGetURL(ctx, key)

	// Assert
	require.NoError(t, err)
	require.NotNil(t, expiresAt)
	assert.WithinDuration(t, time.Now().Add(5*time.Minute), *expiresAt, 5*time.Second)

	u, err := url.Parse(presignedURL)
	require.NoError(t, err)
	assert.Equal(t, "AWS4-HMAC-SHA256", u.Query().Get("X-Amz-Algorithm"))
	assert.NotEmpty(t, u.Query().Get("X-Amz-Signature"))

	resp, err := http.Get(presignedURL)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "tags.csv")

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, content, string(body))
}

func TestNewAdapter_ExistingBucket(t *testing.T) {
	endpoint, cleanup := setupContainer(t)
	defer cleanup()
	ctx := context.Background()

	createAdapter(t, ctx, endpoint)
	createAdapter(t, ctx, endpoint)
}

func TestPresignedGetURL_MissingObjectStillSigns(t *testing.T) {
	endpoint, cleanup := setupContainer(t)
	defer cleanup()
	ctx := context.Background()
	adapter := createAdapter(t, ctx, endpoint)

	presignedURL, _, err := adapter.PresignedGetURL(ctx, "exports/missing.csv")
	require.NoError(t, err)

	resp, err := http.Get(presignedURL)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestListAndDeleteExports(t *testing.T) {
	// Arrange
	endpoint, cleanup := setupContainer(t)
	defer cleanup()
	ctx := context.Background()
	adapter := createAdapter(t, ctx, endpoint)

	for _, key := range []string{"exports/a.csv", "exports/b.csv", "other/c.txt"} {
		require.NoError(t, adapter.PutObject(ctx, key, strings.NewReader("x"), 1, "text/plain"))
	}

	// Act
	listed, err := adapter.ListObjects(ctx, "exports/")
	require.NoError(t, err)
	require.NoError(t, adapter.DeleteObject(ctx, "exports/a.csv"))
	remaining, err := adapter.ListObjects(ctx, "exports/")

	// Assert
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.False(t, listed[0].LastModified.IsZero())
	require.Len(t, remaining, 1)
	assert.Equal(t, "exports/b.csv", remaining[0].Key)
}
