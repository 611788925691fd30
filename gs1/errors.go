/* Apache v2 license
 * Copyright (C) 2019 Intel Corporation
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package gs1

import (
	"fmt"

	"github.com/intel/rsp-sw-toolkit-im-suite-gs1syntax/lint"
)

// ErrKind classifies processing failures so callers can react to the class
// of problem without parsing message text.
type ErrKind int

const (
	// ErrKindSyntax covers malformed input structure: bad brackets,
	// missing separators, unknown AIs, unsupported symbology identifiers,
	// bad parity, and the like.
	ErrKindSyntax ErrKind = iota

	// ErrKindValue covers values whose overall shape is wrong for their
	// AI: too short, too long, or containing a literal separator.
	ErrKindValue

	// ErrKindLint covers component-level character set and semantic
	// failures; these carry positional markup.
	ErrKindLint

	// ErrKindCrossAI covers whole-record failures: mutual exclusion,
	// unmet requisites, inconsistent repeats, missing serialization.
	ErrKindCrossAI

	// ErrKindDigitalLink covers Digital-Link-specific failures: no
	// primary key, illegal path sequences, unknown numeric query
	// parameters.
	ErrKindDigitalLink
)

// Error is a structured processing failure.
type Error struct {
	Kind ErrKind

	// AI is the offending AI code, when one is known.
	AI string

	// Markup renders lint failures as "(AI)prefix|span|suffix",
	// bracketing the exact offending bytes within the value. It is empty
	// for other kinds.
	Markup string

	msg string
}

func (e *Error) Error() string {
	return e.msg
}

func errKindf(kind ErrKind, ai, format string, args ...interface{}) *Error {
	return &Error{
		Kind: kind,
		AI:   ai,
		msg:  fmt.Sprintf(format, args...),
	}
}

func syntaxErrf(format string, args ...interface{}) *Error {
	return errKindf(ErrKindSyntax, "", format, args...)
}

func valueErrf(ai, format string, args ...interface{}) *Error {
	return errKindf(ErrKindValue, ai, format, args...)
}

func crossErrf(ai, format string, args ...interface{}) *Error {
	return errKindf(ErrKindCrossAI, ai, format, args...)
}

func dlErrf(format string, args ...interface{}) *Error {
	return errKindf(ErrKindDigitalLink, "", format, args...)
}

// lintErrf builds an ErrKindLint error for a failure the given linter error
// reported at base+le.Offset within value.
func lintErrf(ai, value string, base int, le *lint.Error) *Error {
	start := base + le.Offset
	if start > len(value) {
		start = len(value)
	}
	end := start + le.Length
	if end > len(value) {
		end = len(value)
	}
	return &Error{
		Kind:   ErrKindLint,
		AI:     ai,
		Markup: fmt.Sprintf("(%s)%s|%s|%s", ai, value[:start], value[start:end], value[end:]),
		msg:    fmt.Sprintf("AI (%s): %s", ai, le.Msg),
	}
}
