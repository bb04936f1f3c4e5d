/*
 * compress.go, part of cebeconf.
 *
 *
 * Copyright 2026 The cebeconf authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 *
 */

package model

import (
	"compress/gzip"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"
	cebe "github.com/rmera/cebeconf"
)

//Compression of model files.
type Compression int

const (
	None Compression = iota
	Zstd
	Gzip
)

//Suffix returns the file extension used for c.
func (c Compression) Suffix() string {
	switch c {
	case Zstd:
		return ".zst"
	case Gzip:
		return ".gz"
	}
	return ""
}

//ParseCompression returns the compression named s: "none", "zstd" or "gzip".
func ParseCompression(s string) (Compression, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none", "":
		return None, nil
	case "zstd", "zst":
		return Zstd, nil
	case "gzip", "gz":
		return Gzip, nil
	}
	return None, cebe.NewError(cebe.ErrFormat, "unknown compression %q", s).Decorated("ParseCompression")
}

//zstd decoders have a Close without return value.
type zstdCloser struct {
	*zstd.Decoder
}

func (z zstdCloser) Close() error {
	z.Decoder.Close()
	return nil
}

//fileReader closes both the decompressor and the underlying file.
type fileReader struct {
	io.Reader
	closers []io.Closer
}

func (f *fileReader) Close() error {
	var err error
	for _, c := range f.closers {
		if e := c.Close(); e != nil && err == nil {
			err = e
		}
	}
	return err
}

//openResource opens name, or, if it does not exist, name.zst or name.gz,
//and returns a reader with the decompressed content and the name of the file used.
func openResource(name string) (io.ReadCloser, string, error) {
	for _, c := range []Compression{None, Zstd, Gzip} {
		fname := name + c.Suffix()
		f, err := os.Open(fname)
		if isNotExist(err) {
			continue
		}
		if err != nil {
			return nil, fname, cebe.NewError(cebe.ErrResourceNotFound, "unable to open %s: %s", fname, err).Decorated("openResource")
		}
		var dec io.ReadCloser
		switch c {
		case Zstd:
			d, err := zstd.NewReader(f)
			if err != nil {
				f.Close()
				return nil, fname, cebe.NewError(cebe.ErrResourceNotFound, "%s: %s", fname, err).Decorated("openResource")
			}
			dec = zstdCloser{d}
		case Gzip:
			d, err := gzip.NewReader(f)
			if err != nil {
				f.Close()
				return nil, fname, cebe.NewError(cebe.ErrResourceNotFound, "%s: %s", fname, err).Decorated("openResource")
			}
			dec = d
		default:
			return f, fname, nil
		}
		return &fileReader{Reader: dec, closers: []io.Closer{dec, f}}, fname, nil
	}
	return nil, name, cebe.NewError(cebe.ErrResourceNotFound, "%s (or a compressed version) not found", name).Decorated("openResource")
}

//createResource creates name with the compression c, returning a writer that
//must be closed to flush the data.
func createResource(name string, c Compression) (io.WriteCloser, error) {
	f, err := os.Create(name + c.Suffix())
	if err != nil {
		return nil, err
	}
	var enc io.WriteCloser
	switch c {
	case Zstd:
		enc, err = zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
	case Gzip:
		enc, err = gzip.NewWriterLevel(f, gzip.BestCompression)
	default:
		return f, nil
	}
	if err != nil {
		f.Close()
		return nil, err
	}
	return &fileWriter{enc, f}, nil
}

type fileWriter struct {
	io.WriteCloser
	f *os.File
}

func (w *fileWriter) Close() error {
	err := w.WriteCloser.Close()
	if e := w.f.Close(); err == nil {
		err = e
	}
	return err
}
