// nbdsetsize - A utility to set the size of Linux network block devices.
// Copyright (c) 2023 The Linsk Authors.
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program. If not, see <https://www.gnu.org/licenses/>.

package nbd

import (
	"os"
	"syscall"

	"github.com/pkg/errors"
)

var (
	ErrNotBlockDevice      = errors.New("not a block device")
	ErrUnsupportedPlatform = errors.New("nbd is supported on linux only")
)

// Device is an open handle to an NBD device node.
type Device struct {
	f    *os.File
	path string
}

// Open opens the device node for read-write access. The node is never
// created if it is absent.
func Open(devPath string) (*Device, error) {
	f, err := os.OpenFile(devPath, os.O_RDWR, 0)
	if err != nil {
		return nil, errors.Wrap(err, "open device")
	}

	stat, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, errors.Wrap(err, "stat device")
	}

	mode := stat.Mode()
	if mode&os.ModeDevice == 0 || mode&os.ModeCharDevice != 0 {
		_ = f.Close()
		return nil, errors.Wrapf(ErrNotBlockDevice, "check file mode (%v)", mode)
	}

	return &Device{
		f:    f,
		path: devPath,
	}, nil
}

// Path returns the device path as it was passed to Open.
func (d *Device) Path() string {
	return d.path
}

// SetSize issues a single NBD_SET_SIZE request with the size in bytes.
func (d *Device) SetSize(size uint64) error {
	err := setSizeInner(d.f.Fd(), size)
	if err != nil {
		return errors.Wrap(err, "NBD_SET_SIZE")
	}

	return nil
}

func (d *Device) Close() error {
	return d.f.Close()
}

// IsSizeRejected reports whether the driver refused the requested size
// itself, as opposed to the request not being possible at all.
func IsSizeRejected(err error) bool {
	return errors.Is(err, syscall.EINVAL)
}
