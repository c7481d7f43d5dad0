// Golang port of postcss-mixins
// Copyright (C) 2026 Jakob Ackermann <das7pad@outlook.com>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published
// by the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package copyFile

import (
	"bytes"
	"io"
	"os"
	"path/filepath"

	"github.com/das7pad/css-mixins/pkg/errors"
)

// WriteAtomic replaces dest with blob. Missing parent directories are
// created.
func WriteAtomic(dest string, blob []byte, mode os.FileMode) error {
	return Atomic(dest, bytes.NewReader(blob), mode)
}

// Atomic replaces dest with the contents of reader via a temporary file in
// the same directory.
func Atomic(dest string, reader io.Reader, mode os.FileMode) error {
	dir := filepath.Dir(dest)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Tag(err, "create "+dir)
	}
	writer, err := os.CreateTemp(dir, ".atomicWrite-*")
	if err != nil {
		return errors.Tag(err, "mktemp")
	}
	defer func() {
		if err != nil {
			_ = os.Remove(writer.Name())
		}
	}()
	if _, err = io.Copy(writer, reader); err != nil {
		_ = writer.Close()
		return errors.Tag(err, "copy")
	}
	if err = writer.Chmod(mode); err != nil {
		_ = writer.Close()
		return errors.Tag(err, "chmod "+dest)
	}
	if err = writer.Close(); err != nil {
		return errors.Tag(err, "close "+dest)
	}
	if err = os.Rename(writer.Name(), dest); err != nil {
		return errors.Tag(err, "rename")
	}
	return nil
}
