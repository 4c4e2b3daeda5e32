package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Local keeps assets on disk. The router serves BaseDir under URLPrefix.
type Local struct {
	BaseDir   string
	URLPrefix string
}

func NewLocal(baseDir, urlPrefix string) *Local {
	return &Local{BaseDir: baseDir, URLPrefix: urlPrefix}
}

func (l *Local) Put(ctx context.Context, r io.Reader, in PutInput) (PutResult, error) {
	_ = ctx

	key := in.Key
	if key == "" {
		key = uuid.NewString() + safeExt(in.Filename)
	}
	key, err := cleanKey(key)
	if err != nil {
		return PutResult{}, err
	}

	dstPath := filepath.Join(l.BaseDir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(dstPath), 0o755); err != nil {
		return PutResult{}, err
	}

	f, err := os.OpenFile(dstPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return PutResult{}, err
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return PutResult{}, err
	}
	return PutResult{Key: key, URL: l.URL(key)}, nil
}

func (l *Local) Delete(ctx context.Context, key string) error {
	_ = ctx
	key, err := cleanKey(key)
	if err != nil {
		return err
	}
	return os.Remove(filepath.Join(l.BaseDir, filepath.FromSlash(key)))
}

func (l *Local) URL(key string) string { return joinURL(l.URLPrefix, key) }

func safeExt(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".png", ".jpg", ".jpeg", ".webp", ".gif", ".svg":
		return ext
	default:
		return ""
	}
}

func (l *Local) String() string { return fmt.Sprintf("local(%s)", l.BaseDir) }
