// Copyright (C) 2020  Lukas Dietrich <lukas@lukasdietrich.com>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package storage

import (
	"bytes"
	"context"
	"io"

	"github.com/spf13/afero"
	"github.com/spf13/viper"

	"github.com/lukasdietrich/minimail/internal/crypto"
	"github.com/lukasdietrich/minimail/internal/log"
)

func init() {
	viper.SetDefault("storage.cache.foldername", "data/cache")
	viper.SetDefault("storage.cache.memorylimit", "1mb")
}

// CacheOptions are the options for the temporary cache.
type CacheOptions struct {
	Foldername  string
	MemoryLimit int64
}

// CacheOptionsFromViper reads CacheOptions from viper.
func CacheOptionsFromViper() CacheOptions {
	return CacheOptions{
		Foldername:  viper.GetString("storage.cache.foldername"),
		MemoryLimit: int64(viper.GetSizeInBytes("storage.cache.memorylimit")),
	}
}

// Cache holds data temporarily. Small entries are kept in memory, larger ones are written to a
// file.
type Cache interface {
	// Write consumes r entirely and returns an entry, which can be read multiple times.
	Write(context.Context, io.Reader) (CacheEntry, error)
}

// CacheEntry is an entry of the Cache. It must be released after use.
type CacheEntry interface {
	// Reader returns a reader starting at the beginning of the entry. A previous reader must not
	// be used anymore.
	Reader() (io.Reader, error)
	// Size returns the number of bytes in the entry.
	Size() int64
	// Release frees all resources of the entry.
	Release(context.Context) error
}

type cache struct {
	fs          afero.Fs
	idGen       crypto.IDGenerator
	memoryLimit int64
}

// NewCache creates a new Cache.
func NewCache(fs afero.Fs, idGen crypto.IDGenerator, opts CacheOptions) (Cache, error) {
	if err := fs.MkdirAll(opts.Foldername, 0700); err != nil {
		return nil, err
	}

	return cache{
		fs:          afero.NewBasePathFs(fs, opts.Foldername),
		idGen:       idGen,
		memoryLimit: opts.MemoryLimit,
	}, nil
}

func (c cache) Write(ctx context.Context, r io.Reader) (CacheEntry, error) {
	var memory bytes.Buffer

	n, err := io.Copy(&memory, io.LimitReader(r, c.memoryLimit))
	if err != nil {
		return nil, err
	}

	if n < c.memoryLimit {
		return memoryEntry{data: memory.Bytes()}, nil
	}

	return c.writeFile(ctx, io.MultiReader(&memory, r))
}

func (c cache) writeFile(ctx context.Context, r io.Reader) (CacheEntry, error) {
	id, err := c.idGen.GenerateID()
	if err != nil {
		return nil, err
	}

	filename, err := blobFilename(id)
	if err != nil {
		return nil, err
	}

	file, err := c.fs.Create(filename)
	if err != nil {
		return nil, err
	}

	log.DebugContext(ctx).
		Str("filename", id).
		Int64("memoryLimit", c.memoryLimit).
		Msg("cache entry exceeding memory limit, evading to file")

	size, err := io.Copy(file, r)
	if err != nil {
		entry := fileEntry{fs: c.fs, filename: filename, file: file}

		if err := entry.Release(ctx); err != nil {
			log.WarnContext(ctx).
				Str("filename", id).
				Err(err).
				Msg("could not remove partial cache file")
		}

		return nil, err
	}

	return fileEntry{fs: c.fs, filename: filename, file: file, size: size}, nil
}

type memoryEntry struct {
	data []byte
}

func (e memoryEntry) Reader() (io.Reader, error) {
	return bytes.NewReader(e.data), nil
}

func (e memoryEntry) Size() int64 {
	return int64(len(e.data))
}

func (memoryEntry) Release(context.Context) error {
	return nil
}

type fileEntry struct {
	fs       afero.Fs
	filename string
	file     afero.File
	size     int64
}

func (e fileEntry) Reader() (io.Reader, error) {
	if _, err := e.file.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}

	return e.file, nil
}

func (e fileEntry) Size() int64 {
	return e.size
}

func (e fileEntry) Release(ctx context.Context) error {
	log.DebugContext(ctx).
		Str("filename", e.filename).
		Msg("removing cache file")

	if err := e.file.Close(); err != nil {
		return err
	}

	return e.fs.Remove(e.filename)
}
