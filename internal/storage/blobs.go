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
	"context"
	"errors"
	"io"
	"path"
	"strings"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/viper"

	"github.com/lukasdietrich/minimail/internal/crypto"
	"github.com/lukasdietrich/minimail/internal/log"
)

// ErrInvalidID is returned when a blob id cannot be used as a filename.
var ErrInvalidID = errors.New("storage: invalid blob id")

func init() {
	viper.SetDefault("storage.mails.foldername", "data/mails")
}

// BlobsOptions are the options for the message blobs.
type BlobsOptions struct {
	Foldername string
}

// BlobsOptionsFromViper reads BlobsOptions from viper.
func BlobsOptionsFromViper() BlobsOptions {
	return BlobsOptions{
		Foldername: viper.GetString("storage.mails.foldername"),
	}
}

// Blobs stores the content of messages as files, each named by a generated id.
type Blobs interface {
	// Write copies r into a new blob and returns its id and size.
	Write(context.Context, io.Reader) (string, int64, error)
	// Reader opens an existing blob.
	Reader(string) (io.ReadCloser, error)
	// Delete removes an existing blob.
	Delete(context.Context, string) error
	// List returns every stored blob.
	List(context.Context) ([]BlobInfo, error)
}

// BlobInfo describes a stored blob.
type BlobInfo struct {
	ID      string
	ModTime time.Time
}

type blobs struct {
	fs    afero.Fs
	idGen crypto.IDGenerator
}

// NewBlobs creates a new Blobs instance rooted at the configured folder.
func NewBlobs(fs afero.Fs, idGen crypto.IDGenerator, opts BlobsOptions) (Blobs, error) {
	if err := fs.MkdirAll(opts.Foldername, 0700); err != nil {
		return nil, err
	}

	return blobs{
		fs:    afero.NewBasePathFs(fs, opts.Foldername),
		idGen: idGen,
	}, nil
}

func (b blobs) Write(ctx context.Context, r io.Reader) (string, int64, error) {
	id, err := b.idGen.GenerateID()
	if err != nil {
		return "", -1, err
	}

	filename, err := blobFilename(id)
	if err != nil {
		return "", -1, err
	}

	f, err := b.fs.Create(filename)
	if err != nil {
		return "", -1, err
	}

	log.DebugContext(ctx).
		Str("blob", id).
		Msg("writing blob")

	size, err := io.Copy(f, r)
	if err != nil {
		f.Close()             // nolint:errcheck
		b.fs.Remove(filename) // nolint:errcheck

		return "", -1, err
	}

	return id, size, f.Close()
}

func (b blobs) Reader(id string) (io.ReadCloser, error) {
	filename, err := blobFilename(id)
	if err != nil {
		return nil, err
	}

	return b.fs.Open(filename)
}

func (b blobs) Delete(ctx context.Context, id string) error {
	filename, err := blobFilename(id)
	if err != nil {
		return err
	}

	log.DebugContext(ctx).
		Str("blob", id).
		Msg("removing blob")

	return b.fs.Remove(filename)
}

func (b blobs) List(ctx context.Context) ([]BlobInfo, error) {
	infos, err := afero.ReadDir(b.fs, "/")
	if err != nil {
		return nil, err
	}

	var blobSlice []BlobInfo

	for _, info := range infos {
		if info.IsDir() {
			continue
		}

		blobSlice = append(blobSlice, BlobInfo{
			ID:      info.Name(),
			ModTime: info.ModTime(),
		})
	}

	return blobSlice, nil
}

func blobFilename(id string) (string, error) {
	if id == "" || id == "." || id == ".." || strings.ContainsAny(id, `/\`) {
		return "", ErrInvalidID
	}

	return path.Join("/", id), nil
}
