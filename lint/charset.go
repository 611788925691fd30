/* Apache v2 license
 * Copyright (C) 2019 Intel Corporation
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package lint

var (
	// GS1 AI Encodable Character Set 82, per the GS1 General Specifications
	// figure 7.11-1.
	cset82Table = [127]uint8{
		'!': 1, '"': 1, '%': 1, '&': 1, '\'': 1, '(': 1, ')': 1,
		'*': 1, '+': 1, ',': 1, '-': 1, '.': 1, '/': 1,
		':': 1, ';': 1, '<': 1, '=': 1, '>': 1, '?': 1, '_': 1,
		'0': 1, '1': 1, '2': 1, '3': 1, '4': 1, '5': 1, '6': 1, '7': 1, '8': 1, '9': 1,
		'A': 1, 'B': 1, 'C': 1, 'D': 1, 'E': 1, 'F': 1, 'G': 1, 'H': 1, 'I': 1,
		'J': 1, 'K': 1, 'L': 1, 'M': 1, 'N': 1, 'O': 1, 'P': 1, 'Q': 1, 'R': 1,
		'S': 1, 'T': 1, 'U': 1, 'V': 1, 'W': 1, 'X': 1, 'Y': 1, 'Z': 1,
		'a': 1, 'b': 1, 'c': 1, 'd': 1, 'e': 1, 'f': 1, 'g': 1, 'h': 1, 'i': 1,
		'j': 1, 'k': 1, 'l': 1, 'm': 1, 'n': 1, 'o': 1, 'p': 1, 'q': 1, 'r': 1,
		's': 1, 't': 1, 'u': 1, 'v': 1, 'w': 1, 'x': 1, 'y': 1, 'z': 1,
	}

	// GS1 AI Encodable Character Set 39, used by the Component and Part AIs.
	cset39Table = [127]uint8{
		'#': 1, '-': 1, '/': 1,
		'0': 1, '1': 1, '2': 1, '3': 1, '4': 1, '5': 1, '6': 1, '7': 1, '8': 1, '9': 1,
		'A': 1, 'B': 1, 'C': 1, 'D': 1, 'E': 1, 'F': 1, 'G': 1, 'H': 1, 'I': 1,
		'J': 1, 'K': 1, 'L': 1, 'M': 1, 'N': 1, 'O': 1, 'P': 1, 'Q': 1, 'R': 1,
		'S': 1, 'T': 1, 'U': 1, 'V': 1, 'W': 1, 'X': 1, 'Y': 1, 'Z': 1,
	}

	// GS1 AI Encodable Character Set 64: file-safe, URI-safe base64,
	// including the '=' padding character.
	cset64Table = [127]uint8{
		'-': 1, '_': 1, '=': 1,
		'0': 1, '1': 1, '2': 1, '3': 1, '4': 1, '5': 1, '6': 1, '7': 1, '8': 1, '9': 1,
		'A': 1, 'B': 1, 'C': 1, 'D': 1, 'E': 1, 'F': 1, 'G': 1, 'H': 1, 'I': 1,
		'J': 1, 'K': 1, 'L': 1, 'M': 1, 'N': 1, 'O': 1, 'P': 1, 'Q': 1, 'R': 1,
		'S': 1, 'T': 1, 'U': 1, 'V': 1, 'W': 1, 'X': 1, 'Y': 1, 'Z': 1,
		'a': 1, 'b': 1, 'c': 1, 'd': 1, 'e': 1, 'f': 1, 'g': 1, 'h': 1, 'i': 1,
		'j': 1, 'k': 1, 'l': 1, 'm': 1, 'n': 1, 'o': 1, 'p': 1, 'q': 1, 'r': 1,
		's': 1, 't': 1, 'u': 1, 'v': 1, 'w': 1, 'x': 1, 'y': 1, 'z': 1,
	}
)

func checkTable(value string, table *[127]uint8, setName string) *Error {
	for i := 0; i < len(value); i++ {
		if value[i] > 127 || table[value[i]&0x7F] != 1 {
			return errAt(i, 1, "illegal %s character", setName)
		}
	}
	return nil
}

// Numeric checks that the value consists solely of digits '0'-'9'.
func Numeric(value string) *Error {
	for i := 0; i < len(value); i++ {
		if value[i] < '0' || value[i] > '9' {
			return errAt(i, 1, "illegal non-digit character")
		}
	}
	return nil
}

// CSet82 checks the value against GS1 Character Set 82.
func CSet82(value string) *Error {
	return checkTable(value, &cset82Table, "CSET 82")
}

// CSet39 checks the value against GS1 Character Set 39.
func CSet39(value string) *Error {
	return checkTable(value, &cset39Table, "CSET 39")
}

// CSet64 checks the value against GS1 Character Set 64 (URI-safe base64).
func CSet64(value string) *Error {
	return checkTable(value, &cset64Table, "CSET 64")
}
