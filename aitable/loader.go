/* Apache v2 license
 * Copyright (C) 2019 Intel Corporation
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package aitable

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/intel/rsp-sw-toolkit-im-suite-gs1syntax/lint"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// componentRegex matches one component specification token: an optional
// surrounding "[]" (optional component), a character set letter, a fixed
// length ("N14") or a maximum length ("X..20"), and zero or more linter
// names ("N13,csum,key").
var componentRegex = regexp.MustCompile(
	`^\[?[NXYZ](?:\d{1,2}|\.\.\d{1,2})(?:,[a-z0-9]+)*\]?$`)

var charSetByLetter = map[byte]CharSet{
	'N': CharSetNumeric,
	'X': CharSet82,
	'Y': CharSet39,
	'Z': CharSet64,
}

// Load builds a Table from syntax dictionary text. Each non-comment line
// defines one AI (or an inclusive range of same-length AIs):
//
//	AI[-AIlast]  flags  compspec...  [attrs...]  [# title]
//
// where flags is '*' for FNC1-terminated AIs or '-' for the predefined
// fixed-length AIs. Lines referencing linters this build does not provide
// are skipped with a logged warning rather than failing the load, so a
// newer dictionary remains usable.
func Load(r io.Reader) (*Table, error) {
	var entries []*Entry
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || line[0] == '#' {
			continue
		}

		title := ""
		if i := strings.IndexByte(line, '#'); i >= 0 {
			title = strings.TrimSpace(line[i+1:])
			line = strings.TrimSpace(line[:i])
		}

		lineEntries, err := parseLine(line, title)
		if err != nil {
			if unknown, ok := err.(*unknownLinterError); ok {
				log.WithFields(log.Fields{
					"Line":   lineNo,
					"AI":     unknown.ai,
					"Linter": unknown.name,
				}).Warning("skipping syntax dictionary entry with unknown linter")
				continue
			}
			return nil, errors.Wrapf(err, "syntax dictionary line %d", lineNo)
		}
		entries = append(entries, lineEntries...)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "reading syntax dictionary")
	}
	return New(entries)
}

type unknownLinterError struct {
	ai, name string
}

func (e *unknownLinterError) Error() string {
	return fmt.Sprintf("AI (%s) references unknown linter %q", e.ai, e.name)
}

func parseLine(line, title string) ([]*Entry, error) {
	fields := strings.Fields(line)
	if len(fields) < 3 {
		return nil, errors.Errorf("expected AI, flags, and components, "+
			"but have %q", line)
	}

	first, last, err := parseAIRange(fields[0])
	if err != nil {
		return nil, err
	}

	var fnc1 bool
	switch fields[1] {
	case "*":
		fnc1 = true
	case "-":
		fnc1 = false
	default:
		return nil, errors.Errorf("flags must be '*' or '-', but have %q",
			fields[1])
	}

	var components []Component
	var attrs []string
	for _, tok := range fields[2:] {
		if len(attrs) == 0 && componentRegex.MatchString(tok) {
			comp, err := parseComponent(first, tok)
			if err != nil {
				return nil, err
			}
			components = append(components, comp)
			continue
		}
		attrs = append(attrs, tok)
	}
	if len(components) == 0 {
		return nil, errors.Errorf("AI (%s) has no component specification", first)
	}

	var entries []*Entry
	lo, _ := strconv.Atoi(first)
	hi, _ := strconv.Atoi(last)
	for v := lo; v <= hi; v++ {
		entries = append(entries, &Entry{
			AI:         fmt.Sprintf("%0*d", len(first), v),
			FNC1:       fnc1,
			Components: components,
			Attrs:      strings.Join(attrs, " "),
			Title:      title,
		})
	}
	return entries, nil
}

func parseAIRange(spec string) (first, last string, err error) {
	parts := strings.SplitN(spec, "-", 2)
	first = parts[0]
	last = first
	if len(parts) == 2 {
		last = parts[1]
	}
	if !isDigits(first) || !isDigits(last) || len(first) != len(last) || last < first {
		return "", "", errors.Errorf("malformed AI range %q", spec)
	}
	return first, last, nil
}

func parseComponent(ai, tok string) (Component, error) {
	var comp Component
	if strings.HasPrefix(tok, "[") {
		if !strings.HasSuffix(tok, "]") {
			return comp, errors.Errorf("AI (%s) has unbalanced brackets in %q", ai, tok)
		}
		comp.Optional = true
		tok = tok[1 : len(tok)-1]
	}

	comp.CharSet = charSetByLetter[tok[0]]
	parts := strings.Split(tok[1:], ",")
	if strings.HasPrefix(parts[0], "..") {
		comp.Min = 1
		comp.Max, _ = strconv.Atoi(parts[0][2:])
	} else {
		comp.Min, _ = strconv.Atoi(parts[0])
		comp.Max = comp.Min
	}

	for _, name := range parts[1:] {
		fn, ok := lint.Lookup(name)
		if !ok {
			return comp, &unknownLinterError{ai: ai, name: name}
		}
		comp.Linters = append(comp.Linters, fn)
	}
	return comp, nil
}
