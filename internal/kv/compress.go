package kv

import (
	"context"
	"fmt"

	"github.com/klauspost/compress/zstd"
)

// Compressed wraps a Store and zstd-compresses values at rest. Values that
// fail to decompress are reported as ErrCorrupt, not as missing keys, so the
// caller's corruption policy decides what to do.
type Compressed struct {
	inner   Store
	encoder *zstd.Encoder
	decoder *zstd.Decoder
}

// WithCompression wraps inner with zstd compression at the given level
// (1-22; values outside the range fall back to the library default).
func WithCompression(inner Store, level int) (*Compressed, error) {
	enc, err := zstd.NewWriter(nil,
		zstd.WithEncoderLevel(zstd.EncoderLevelFromZstd(level)))
	if err != nil {
		return nil, fmt.Errorf("create zstd encoder: %w", err)
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		enc.Close()
		return nil, fmt.Errorf("create zstd decoder: %w", err)
	}
	return &Compressed{inner: inner, encoder: enc, decoder: dec}, nil
}

func (c *Compressed) Get(ctx context.Context, key string) ([]byte, error) {
	raw, err := c.inner.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	out, err := c.decoder.DecodeAll(raw, nil)
	if err != nil {
		return nil, fmt.Errorf("decompress %q: %w: %w", key, ErrCorrupt, err)
	}
	return out, nil
}

func (c *Compressed) Put(ctx context.Context, key string, value []byte) error {
	return c.inner.Put(ctx, key, c.encoder.EncodeAll(value, nil))
}

func (c *Compressed) Delete(ctx context.Context, key string) error {
	return c.inner.Delete(ctx, key)
}

func (c *Compressed) Close() error {
	c.decoder.Close()
	if err := c.encoder.Close(); err != nil {
		return err
	}
	return c.inner.Close()
}
