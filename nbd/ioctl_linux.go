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

//go:build linux

package nbd

import (
	"golang.org/x/sys/unix"
)

// From <linux/nbd.h>: _IO(0xab, 2).
const ioctlSetSize = 0xab02

func setSizeInner(fd uintptr, size uint64) error {
	// The kernel reads the argument as unsigned long.
	if uint64(uintptr(size)) != size {
		return unix.EINVAL
	}

	_, _, serr := unix.Syscall(unix.SYS_IOCTL, fd, ioctlSetSize, uintptr(size))
	if serr != 0 {
		return serr
	}

	return nil
}
