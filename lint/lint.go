/* Apache v2 license
 * Copyright (C) 2019 Intel Corporation
 *
 * SPDX-License-Identifier: Apache-2.0
 */

// Package lint implements the validation functions ("linters") applied to
// individual GS1 Application Identifier component values: the AI character
// sets and the semantic checks (check digits, dates, ISO codes) the syntax
// dictionary refers to by name.
//
// Every linter is a pure function from a component value to either nil or a
// positional Error identifying the exact offending byte span within that
// value. Linters never see the AI code or the surrounding element string;
// callers are responsible for translating the reported span to positions
// within a larger buffer.
package lint

import (
	"fmt"
	"sort"
)

// Error reports a lint failure. Offset and Length locate the offending bytes
// within the value the linter was given; Length is never zero, but the span
// may cover the entire value when no narrower span applies.
type Error struct {
	Msg    string
	Offset int
	Length int
}

func (e *Error) Error() string {
	return e.Msg
}

func errAt(offset, length int, format string, args ...interface{}) *Error {
	if length < 1 {
		length = 1
	}
	return &Error{
		Msg:    fmt.Sprintf(format, args...),
		Offset: offset,
		Length: length,
	}
}

// Func checks one AI component value.
type Func func(value string) *Error

var registry = map[string]Func{
	"csum":         CheckDigit,
	"key":          GS1Key,
	"yymmdd":       YYMMDD,
	"yymmd0":       YYMMD0,
	"hhmm":         HHMM,
	"iso3166":      ISO3166,
	"iso4217":      ISO4217,
	"nozeroprefix": NoZeroPrefix,
	"pieceoftotal": PieceOfTotal,
}

// Lookup returns the named linter, or false if no linter has that name.
func Lookup(name string) (Func, bool) {
	fn, ok := registry[name]
	return fn, ok
}

// Names returns the sorted list of registered linter names.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
