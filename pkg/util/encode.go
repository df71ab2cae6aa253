// pkg/util/encode.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package util

import (
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/vmihailenco/msgpack/v5"
)

// CountingWriter wraps an io.Writer and records the total number of bytes
// written through it.
type CountingWriter struct {
	io.Writer
	N int64
}

func (c *CountingWriter) Write(b []byte) (int, error) {
	n, err := c.Writer.Write(b)
	c.N += int64(n)
	return n, err
}

// WriteMsgpack encodes obj to w using msgpack.
func WriteMsgpack(w io.Writer, obj any) error {
	if err := msgpack.NewEncoder(w).Encode(obj); err != nil {
		return fmt.Errorf("msgpack encode: %w", err)
	}
	return nil
}

// WriteMsgpackZstd encodes obj to w using msgpack and compresses the
// result with zstd.
func WriteMsgpackZstd(w io.Writer, obj any) error {
	zw, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
	if err != nil {
		return fmt.Errorf("failed to create zstd writer: %w", err)
	}
	defer zw.Close()

	if err := WriteMsgpack(zw, obj); err != nil {
		return err
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("failed to close zstd writer: %w", err)
	}
	return nil
}

// ReadMsgpack decodes msgpack-encoded data from r into obj.
func ReadMsgpack(r io.Reader, obj any) error {
	if err := msgpack.NewDecoder(r).Decode(obj); err != nil {
		return fmt.Errorf("msgpack decode: %w", err)
	}
	return nil
}

// ReadMsgpackZstd decodes zstd-compressed msgpack data from r into obj.
func ReadMsgpackZstd(r io.Reader, obj any) error {
	zr, err := zstd.NewReader(r)
	if err != nil {
		return fmt.Errorf("failed to create zstd reader: %w", err)
	}
	defer zr.Close()

	return ReadMsgpack(zr, obj)
}
