// Package snapshot persists document contexts as opaque JSON snapshots.
//
// A snapshot captures the full context: margin, pages, keys, flags, and
// text. Derived state (chain indexes) is not stored; it is rebuilt when
// the context is wrapped in a document again.
//
// Load reports a missing snapshot as [fs.ErrNotExist] and a snapshot
// that exists but cannot be decoded as [ErrCorrupt], so callers can
// decide between re-ingesting and surfacing an error.
package snapshot

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bytedance/sonic"

	"github.com/tsawler/folio/model"
)

// ErrCorrupt marks a snapshot that exists but cannot be decoded into a
// valid context.
var ErrCorrupt = errors.New("snapshot: corrupt")

// Save serializes the context and writes it to path atomically: the
// bytes go to a temp file in the destination directory first, then a
// rename replaces any previous snapshot.
func Save(ctx *model.Context, path string) error {
	data, err := sonic.Marshal(ctx)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".snapshot-*")
	if err != nil {
		return fmt.Errorf("create temp snapshot: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close snapshot: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replace snapshot: %w", err)
	}
	return nil
}

// Load reads and decodes a context snapshot. A missing file surfaces as
// an error satisfying errors.Is(err, fs.ErrNotExist); any decode or
// validation failure satisfies errors.Is(err, ErrCorrupt).
func Load(path string) (*model.Context, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	var ctx model.Context
	if err := sonic.Unmarshal(data, &ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if err := validate(&ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return &ctx, nil
}

// validate guards the context invariants a snapshot must satisfy: every
// key unique, every key below the allocator watermark, no nil elements.
func validate(ctx *model.Context) error {
	seen := make(map[int]bool)
	for pi, page := range ctx.Pages {
		if page == nil {
			return fmt.Errorf("page %d is null", pi)
		}
		for _, slot := range page.Slots {
			if slot.Element == nil {
				return fmt.Errorf("key %d has no element", slot.Key)
			}
			if seen[slot.Key] {
				return fmt.Errorf("duplicate key %d", slot.Key)
			}
			if slot.Key >= ctx.NextKey {
				return fmt.Errorf("key %d above allocator watermark %d", slot.Key, ctx.NextKey)
			}
			seen[slot.Key] = true
		}
	}
	return nil
}
