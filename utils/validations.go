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
	"unicode"
	"unicode/utf8"

	"github.com/acarl005/stripansi"
)

func ClearUnprintableChars(s string, allowNewlines bool) string {
	// This will remove ANSI color codes.
	s = stripansi.Strip(s)

	return strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) || (allowNewlines && r == '\n') {
			return r
		}
		return -1
	}, s)
}

// SanitizeArg prepares a user-supplied argument to be attached to a log record.
func SanitizeArg(s string) string {
	s = ClearUnprintableChars(s, false)

	const maxArgLen = 256
	if len(s) > maxArgLen {
		// Cut on a rune boundary so that the record stays valid UTF-8.
		cut := maxArgLen
		for cut > 0 && !utf8.RuneStart(s[cut]) {
			cut--
		}

		return s[:cut] + "[" + UintToStr(uint(utf8.RuneCountInString(s[cut:]))) + " chars trimmed]"
	}

	return s
}
