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
package cmd

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/AlexSSD7/nbdsetsize/nbd"
	"github.com/AlexSSD7/nbdsetsize/utils"
	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

type device interface {
	Path() string
	SetSize(size uint64) error
	Close() error
}

type openDeviceFunc func(devPath string) (device, error)

func openNBDDevice(devPath string) (device, error) {
	dev, err := nbd.Open(devPath)
	if err != nil {
		return nil, err
	}

	return dev, nil
}

type setSizeConfig struct {
	Logger    *slog.Logger
	Stderr    io.Writer
	UsageLine string
	Open      openDeviceFunc

	HumanSize bool
}

func runSetSize(cfg setSizeConfig, args []string) int {
	if want, have := 2, len(args); want != have {
		fmt.Fprintf(cfg.Stderr, "usage: %v\n", cfg.UsageLine)
		return exitFailure
	}

	devPath, sizeArg := args[0], args[1]

	parseSize := utils.ParseSize
	if cfg.HumanSize {
		parseSize = utils.ParseHumanSize
	}

	size, err := parseSize(sizeArg)
	if err != nil {
		cfg.Logger.Error("Failed to parse size", "error", err.Error(), "value", utils.SanitizeArg(sizeArg))
		return exitFailure
	}

	lg := cfg.Logger.With("device", utils.SanitizeArg(devPath), "size", size)
	lg.Debug("Parsed size", "size-human", humanize.IBytes(size))

	dev, err := cfg.Open(devPath)
	if err != nil {
		lg.Error("Failed to open device", "error", err.Error())
		return exitFailure
	}

	lg.Debug("Opened device", "path", utils.SanitizeArg(dev.Path()))

	err = dev.SetSize(size)

	// The handle is released on every path, the request outcome decides the exit status.
	closeErr := dev.Close()

	if err != nil {
		exitCode, msg := exitFailure, "Failed to set device size"
		if nbd.IsSizeRejected(err) {
			exitCode, msg = exitSizeRejected, "Device rejected the requested size"
		}

		if closeErr != nil {
			err = multierr.Append(err, errors.Wrap(closeErr, "close device"))
		}

		lg.Error(msg, "error", err.Error())
		return exitCode
	}

	if closeErr != nil {
		lg.Warn("Failed to close device", "error", closeErr.Error())
	}

	lg.Debug("Set device size")

	return exitOK
}
