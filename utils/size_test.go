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
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSize(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want uint64
	}{
		{"0", 0},
		{"1048576", 1048576},
		{"0x100000", 1048576},
		{"0X1f", 31},
		{"0777", 511},
		{"18446744073709551615", 18446744073709551615},
		{"0xffffffffffffffff", 18446744073709551615},
	} {
		v, err := ParseSize(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, v, tc.in)
	}
}

func TestParseSizeInvalid(t *testing.T) {
	for _, in := range []string{
		"",
		"notanumber",
		"12abc",
		"-1",
		"+1",
		" 1",
		"1 ",
		"08",
		"0x",
		"18446744073709551616",
		"99999999999999999999999",
		"1MiB",
	} {
		_, err := ParseSize(in)
		require.Error(t, err, in)
		assert.True(t, errors.Is(err, ErrInvalidSize), in)
		assert.Contains(t, err.Error(), "invalid size", in)
	}
}

func TestParseHumanSize(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want uint64
	}{
		{"1048576", 1048576},
		{"0x1000", 4096},
		{"1MiB", 1048576},
		{"1 MiB", 1048576},
		{"4k", 4000},
		{"2GB", 2000000000},
		{"10 GiB", 10 << 30},
		{"1.5k", 1500},
		{"1.5 KiB", 1536},
		{"0.5KiB", 512},
		{"1,024 B", 1024},
	} {
		v, err := ParseHumanSize(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, v, tc.in)
	}
}

func TestParseHumanSizeInvalid(t *testing.T) {
	for _, in := range []string{
		"",
		"12abc",
		"-1",
		"MiB",
		"18446744073709551616",
		"100000 EiB",
		"1.5",
		"0.5",
		"1.9 B",
		"1.0000001KiB",
		"0.0001k",
		"16 EiB",
	} {
		_, err := ParseHumanSize(in)
		require.Error(t, err, in)
		assert.True(t, errors.Is(err, ErrInvalidSize), in)
	}
}

func TestSanitizeArg(t *testing.T) {
	assert.Equal(t, "/dev/nbd0", SanitizeArg("/dev/nbd0"))
	assert.Equal(t, "/dev/nbd0", SanitizeArg("\x1b[31m/dev/nbd0\x1b[0m"))
	assert.Equal(t, "ab", SanitizeArg("a\nb"))

	long := SanitizeArg(strings.Repeat("x", 300))
	assert.True(t, strings.HasPrefix(long, strings.Repeat("x", 256)+"["))
	assert.True(t, strings.HasSuffix(long, "[44 chars trimmed]"))

	// 255 ASCII bytes followed by 2-byte runes puts byte 256 inside a rune.
	multibyte := SanitizeArg(strings.Repeat("x", 255) + strings.Repeat("é", 10))
	assert.True(t, utf8.ValidString(multibyte))
	assert.Equal(t, strings.Repeat("x", 255)+"[10 chars trimmed]", multibyte)

	runes := SanitizeArg(strings.Repeat("é", 200))
	assert.True(t, utf8.ValidString(runes))
	assert.Equal(t, strings.Repeat("é", 128)+"[72 chars trimmed]", runes)
}

func TestClearUnprintableCharsNewlines(t *testing.T) {
	assert.Equal(t, "a\nb", ClearUnprintableChars("a\nb\x00", true))
	assert.Equal(t, "ab", ClearUnprintableChars("a\nb\x00", false))
}
