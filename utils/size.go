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

package utils

import (
	"math/big"
	"strconv"
	"strings"
	"unicode"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
)

var (
	ErrInvalidSize = errors.New("invalid size")
)

// ParseSize parses an unsigned 64-bit size literal. The base is derived from
// the prefix: "0x" for hex, a leading "0" for octal, decimal otherwise.
// The entire string must be consumed.
func ParseSize(s string) (uint64, error) {
	v, err := strconv.ParseUint(s, 0, 64)
	if err != nil {
		return 0, errors.Wrapf(ErrInvalidSize, "parse uint64 (%v)", numErrReason(err))
	}

	return v, nil
}

// ParseHumanSize is like ParseSize, but also accepts byte quantities with
// SI and IEC unit suffixes such as "512MiB" or "4 GB". Fractional values
// are accepted only when they amount to a whole number of bytes.
func ParseHumanSize(s string) (uint64, error) {
	v, err := strconv.ParseUint(s, 0, 64)
	if err == nil {
		return v, nil
	}

	if errors.Is(err, strconv.ErrRange) {
		return 0, errors.Wrapf(ErrInvalidSize, "parse uint64 (%v)", numErrReason(err))
	}

	// Validates the syntax and the unit suffix.
	_, err = humanize.ParseBytes(s)
	if err != nil {
		return 0, errors.Wrapf(ErrInvalidSize, "parse byte quantity (%v)", err.Error())
	}

	// go-humanize computes in float64 and truncates, so the exact value is
	// recomputed from the quantity and the unit multiplier.
	numLen := strings.IndexFunc(s, func(r rune) bool {
		return !(unicode.IsDigit(r) || r == '.' || r == ',')
	})
	if numLen == -1 {
		numLen = len(s)
	}

	unit := s[numLen:]

	mult, err := humanize.ParseBytes("1" + unit)
	if err != nil {
		return 0, errors.Wrapf(ErrInvalidSize, "parse unit (%v)", err.Error())
	}

	qty, ok := new(big.Rat).SetString(strings.ReplaceAll(s[:numLen], ",", ""))
	if !ok {
		return 0, errors.Wrap(ErrInvalidSize, "parse quantity")
	}

	qty.Mul(qty, new(big.Rat).SetUint64(mult))
	if !qty.IsInt() {
		return 0, errors.Wrap(ErrInvalidSize, "not a whole number of bytes")
	}

	if !qty.Num().IsUint64() {
		return 0, errors.Wrap(ErrInvalidSize, "value out of range")
	}

	return qty.Num().Uint64(), nil
}

func numErrReason(err error) string {
	var numErr *strconv.NumError
	if errors.As(err, &numErr) {
		return numErr.Err.Error()
	}

	return err.Error()
}
