package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/inventory/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func testStorageConfig(endpoint string) *config.StorageConfig {
	return &config.StorageConfig{
		Enabled:         true,
		Endpoint:        endpoint,
		Region:          "us-east-1",
		Bucket:          "inventory",
		AccessKeyID:     "test-key",
		SecretAccessKey: "test-secret",
		UsePathStyle:    true,
		PresignExpiry:   10 * time.Minute,
	}
}

func TestNewS3ObjectStorage_Validation(t *testing.T) {
	ctx := context.Background()

	t.Run("nil config", func(t *testing.T) {
		_, err := NewS3ObjectStorage(ctx, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "configuration is required")
	})

	t.Run("missing bucket", func(t *testing.T) {
		cfg := testStorageConfig("http://localhost:9000")
		cfg.Bucket = ""
		_, err := NewS3ObjectStorage(ctx, cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "bucket is required")
	})

	t.Run("half configured credentials", func(t *testing.T) {
		cfg := testStorageConfig("http://localhost:9000")
		cfg.SecretAccessKey = ""
		_, err := NewS3ObjectStorage(ctx, cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "must be set together")
	})

	t.Run("defaults", func(t *testing.T) {
		cfg := testStorageConfig("localhost:9000")
		cfg.PresignExpiry = 0
		s, err := NewS3ObjectStorage(ctx, cfg, WithLogger(zaptest.NewLogger(t)))
		require.NoError(t, err)
		assert.Equal(t, defaultPresignExpiry, s.presignExpiry)
		assert.Equal(t, "https://localhost:9000/inventory", s.publicBaseURL)
		assert.Equal(t, "inventory", s.GetBucket())
	})
}

func TestS3ObjectStorage_PublicURL(t *testing.T) {
	ctx := context.Background()

	t.Run("aws virtual hosted", func(t *testing.T) {
		cfg := testStorageConfig("")
		cfg.UsePathStyle = false
		cfg.Region = "eu-west-1"
		s, err := NewS3ObjectStorage(ctx, cfg)
		require.NoError(t, err)
		assert.Equal(t, "https://inventory.s3.eu-west-1.amazonaws.com/items/1/a.png", s.PublicURL("items/1/a.png"))
	})

	t.Run("custom endpoint virtual hosted", func(t *testing.T) {
		cfg := testStorageConfig("https://r2.example.com")
		cfg.UsePathStyle = false
		s, err := NewS3ObjectStorage(ctx, cfg)
		require.NoError(t, err)
		assert.Equal(t, "https://inventory.r2.example.com/k", s.PublicURL("/k"))
	})

	t.Run("configured base url wins", func(t *testing.T) {
		cfg := testStorageConfig("http://localhost:9000")
		cfg.PublicBaseURL = "https://cdn.example.com/"
		s, err := NewS3ObjectStorage(ctx, cfg)
		require.NoError(t, err)
		assert.Equal(t, "https://cdn.example.com/items/2.png", s.PublicURL("items/2.png"))
	})
}

func TestS3ObjectStorage_PresignUpload(t *testing.T) {
	s, err := NewS3ObjectStorage(context.Background(), testStorageConfig("http://localhost:9000"))
	require.NoError(t, err)

	t.Run("empty key", func(t *testing.T) {
		_, _, err := s.PresignUpload(context.Background(), "", "image/png", time.Minute)
		require.Error(t, err)
	})

	t.Run("signed PUT url", func(t *testing.T) {
		before := time.Now()
		url, expiresAt, err := s.PresignUpload(context.Background(), "items/7/photo.png", "image/png", 0)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(url, "http://localhost:9000/inventory/items/7/photo.png?"))
		assert.Contains(t, url, "X-Amz-Signature=")
		assert.Contains(t, url, "X-Amz-Expires=600")
		assert.WithinDuration(t, before.Add(10*time.Minute), expiresAt, 5*time.Second)
	})
}

// fakeS3 serves the handful of path-style S3 calls the store makes
type fakeS3 struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func (f *fakeS3) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	path := strings.TrimPrefix(r.URL.Path, "/inventory")
	key := strings.TrimPrefix(path, "/")

	switch {
	case r.Method == http.MethodPut && key != "":
		body, _ := io.ReadAll(r.Body)
		f.objects[key] = body
		w.Header().Set("ETag", `"etag"`)
		w.WriteHeader(http.StatusOK)
	case r.Method == http.MethodDelete:
		delete(f.objects, key)
		w.WriteHeader(http.StatusNoContent)
	case r.Method == http.MethodHead && key == "":
		w.WriteHeader(http.StatusOK)
	case r.Method == http.MethodGet && r.URL.Query().Get("list-type") == "2":
		prefix := r.URL.Query().Get("prefix")
		var contents strings.Builder
		count := 0
		for k, v := range f.objects {
			if strings.HasPrefix(k, prefix) {
				count++
				fmt.Fprintf(&contents, "<Contents><Key>%s</Key><LastModified>2025-01-02T03:04:05.000Z</LastModified><Size>%d</Size></Contents>", k, len(v))
			}
		}
		w.Header().Set("Content-Type", "application/xml")
		fmt.Fprintf(w, `<?xml version="1.0" encoding="UTF-8"?><ListBucketResult xmlns="http://s3.amazonaws.com/doc/2006-03-01/"><Name>inventory</Name><Prefix>%s</Prefix><KeyCount>%d</KeyCount><MaxKeys>1000</MaxKeys><IsTruncated>false</IsTruncated>%s</ListBucketResult>`, prefix, count, contents.String())
	default:
		w.WriteHeader(http.StatusNotImplemented)
	}
}

func TestS3ObjectStorage_PutListDelete(t *testing.T) {
	fake := &fakeS3{objects: map[string][]byte{}}
	server := httptest.NewServer(fake)
	defer server.Close()

	ctx := context.Background()
	s, err := NewS3ObjectStorage(ctx, testStorageConfig(server.URL))
	require.NoError(t, err)
	require.NoError(t, s.Ping(ctx))

	payload := []byte("backup payload")
	require.NoError(t, s.Put(ctx, "backups/a.json.gz", bytes.NewReader(payload), int64(len(payload)), "application/gzip"))
	require.NoError(t, s.Put(ctx, "other/b.txt", bytes.NewReader([]byte("x")), 1, "text/plain"))

	fake.mu.Lock()
	assert.Equal(t, payload, fake.objects["backups/a.json.gz"])
	fake.mu.Unlock()

	objects, err := s.List(ctx, "backups/")
	require.NoError(t, err)
	require.Len(t, objects, 1)
	assert.Equal(t, "backups/a.json.gz", objects[0].Key)
	assert.Equal(t, int64(len(payload)), objects[0].Size)
	assert.Equal(t, time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC), objects[0].LastModified.UTC())

	require.NoError(t, s.Delete(ctx, "backups/a.json.gz"))
	objects, err = s.List(ctx, "backups/")
	require.NoError(t, err)
	assert.Empty(t, objects)

	assert.Error(t, s.Put(ctx, "", bytes.NewReader(nil), 0, ""))
	assert.Error(t, s.Delete(ctx, ""))
}
