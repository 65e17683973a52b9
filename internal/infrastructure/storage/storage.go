package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// AssetStore manages speaker photo files independently of the database.
//
// Save persists the content under a freshly generated key and never leaves a
// partial file visible under a returned key. Delete is best-effort and
// idempotent: a missing key is not an error, the bool reports whether
// anything was actually removed. List exists for the orphan sweep worker.
type AssetStore interface {
	Save(ctx context.Context, originalName string, content io.Reader) (string, error)
	Delete(ctx context.Context, key string) (bool, error)
	Exists(ctx context.Context, key string) (bool, error)
	List(ctx context.Context) ([]AssetInfo, error)
}

// AssetInfo describes a stored asset. ModTime lets the sweep skip
// freshly written files that may belong to an in-flight request.
type AssetInfo struct {
	Key     string
	ModTime time.Time
}

// newAssetKey builds a collision-resistant key: millisecond timestamp plus a
// random suffix, keeping the original extension so content type can be
// inferred downstream.
func newAssetKey(originalName string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	return fmt.Sprintf("speaker-%d-%s%s", time.Now().UnixMilli(), suffix, ext)
}
