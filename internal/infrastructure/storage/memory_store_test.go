package storage

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryObjectStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryObjectStore("")

	require.NoError(t, store.Put(ctx, "backups/2.json.gz", strings.NewReader("two"), 3, "application/gzip"))
	require.NoError(t, store.Put(ctx, "backups/1.json.gz", strings.NewReader("one"), 3, "application/gzip"))
	require.NoError(t, store.Put(ctx, "labels/x.pdf", strings.NewReader("pdf"), 3, "application/pdf"))

	objects, err := store.List(ctx, "backups/")
	require.NoError(t, err)
	require.Len(t, objects, 2)
	assert.Equal(t, "backups/1.json.gz", objects[0].Key)
	assert.Equal(t, int64(3), objects[0].Size)

	old := time.Now().AddDate(0, 0, -30)
	store.SetLastModified("backups/1.json.gz", old)
	objects, _ = store.List(ctx, "backups/")
	assert.Equal(t, old, objects[0].LastModified)

	data, ok := store.Get("labels/x.pdf")
	require.True(t, ok)
	assert.Equal(t, "pdf", string(data))

	require.NoError(t, store.Delete(ctx, "labels/x.pdf"))
	require.NoError(t, store.Delete(ctx, "labels/x.pdf"))
	_, ok = store.Get("labels/x.pdf")
	assert.False(t, ok)

	assert.Error(t, store.Put(ctx, "", strings.NewReader(""), 0, ""))
}

func TestMemoryObjectStore_URLs(t *testing.T) {
	store := NewMemoryObjectStore("https://files.example.com/")

	url, expiresAt, err := store.PresignUpload(context.Background(), "items/1/a.png", "image/png", time.Minute)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "https://files.example.com/upload/items/1/a.png?expires="))
	assert.WithinDuration(t, time.Now().Add(time.Minute), expiresAt, 5*time.Second)

	assert.Equal(t, "https://files.example.com/items/1/a.png", store.PublicURL("items/1/a.png"))

	_, _, err = store.PresignUpload(context.Background(), "", "", 0)
	assert.Error(t, err)
}
