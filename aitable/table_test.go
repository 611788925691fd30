/* Apache v2 license
 * Copyright (C) 2019 Intel Corporation
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package aitable

import (
	"fmt"
	"strings"
	"testing"

	"github.com/intel/rsp-sw-toolkit-im-suite-expect"
)

func TestDefaultTable(t *testing.T) {
	w := expect.WrapT(t)

	table := w.ShouldHaveResult(Default()).(*Table)
	w.StopOnMismatch().ShouldBeTrue(table.Len() > 50)

	gtin := table.Lookup("01", 2)
	w.StopOnMismatch().As("GTIN entry").ShouldBeTrue(gtin != nil)
	w.ShouldBeEqual(gtin.AI, "01")
	w.ShouldBeEqual(gtin.Title, "GTIN")
	w.ShouldBeFalse(gtin.FNC1)
	w.ShouldBeEqual(gtin.MinLength(), 14)
	w.ShouldBeEqual(gtin.MaxLength(), 14)

	batch := table.Lookup("10", 2)
	w.StopOnMismatch().As("batch entry").ShouldBeTrue(batch != nil)
	w.ShouldBeTrue(batch.FNC1)
	w.ShouldBeEqual(batch.MinLength(), 1)
	w.ShouldBeEqual(batch.MaxLength(), 20)

	// GDTI has an optional serial component
	gdti := table.Lookup("253", 3)
	w.StopOnMismatch().As("GDTI entry").ShouldBeTrue(gdti != nil)
	w.ShouldHaveLength(gdti.Components, 2)
	w.ShouldBeTrue(gdti.Components[1].Optional)
	w.ShouldBeEqual(gdti.MinLength(), 13)
	w.ShouldBeEqual(gdti.MaxLength(), 30)
}

func TestLookup(t *testing.T) {
	w := expect.WrapT(t)
	table := w.ShouldHaveResult(Default()).(*Table)

	// prefix mode determines the AI length from the data
	w.As("two-digit prefix").ShouldBeEqual(
		table.Lookup("0112345678901231", 0).AI, "01")
	w.As("four-digit prefix").ShouldBeEqual(
		table.Lookup("3102000500", 0).AI, "3102")
	w.As("three-digit prefix").ShouldBeEqual(
		table.Lookup("4151234567890128", 0).AI, "415")

	w.As("window past end").ShouldBeTrue(table.Lookup("01", 4) == nil)
	w.As("non-digit window").ShouldBeTrue(table.Lookup("0A12", 2) == nil)
	w.As("unknown code").ShouldBeTrue(table.Lookup("0500", 2) == nil)
	w.As("no such 31xx").ShouldBeTrue(table.Lookup("3109000500", 0) == nil)
}

func TestAttributes(t *testing.T) {
	w := expect.WrapT(t)
	table := w.ShouldHaveResult(Default()).(*Table)

	gtin := table.Lookup("01", 2)
	w.StopOnMismatch().ShouldBeTrue(gtin != nil)
	w.As("ex").ShouldBeEqual(gtin.ExcludedAIs(), []string{"02", "8006"})

	// AI 250 carries two independent requirements
	ss := table.Lookup("250", 3)
	w.StopOnMismatch().ShouldBeTrue(ss != nil)
	w.As("req").ShouldBeEqual(ss.Requisites(), [][]string{
		{"01", "8006"},
		{"21"},
	})

	// wildcard templates pass through untouched
	weight := table.Lookup("3100", 4)
	w.StopOnMismatch().ShouldBeTrue(weight != nil)
	w.As("wildcard ex").ShouldBeEqual(weight.ExcludedAIs(), []string{"310n"})

	alts, ok := gtin.DLPathKeyAlternatives()
	w.StopOnMismatch().As("GTIN dlpkey").ShouldBeTrue(ok)
	w.ShouldBeEqual(alts, [][]string{
		{"22", "10", "21"},
		{"235"},
	})

	sscc := table.Lookup("00", 2)
	w.StopOnMismatch().ShouldBeTrue(sscc != nil)
	_, ok = sscc.DLPathKeyAlternatives()
	w.As("bare dlpkey").ShouldBeTrue(ok)

	_, ok = batchlessDL(table)
	w.As("no dlpkey").ShouldBeFalse(ok)
}

func batchlessDL(table *Table) ([][]string, bool) {
	return table.Lookup("10", 2).DLPathKeyAlternatives()
}

func TestDLSequences(t *testing.T) {
	w := expect.WrapT(t)
	table := w.ShouldHaveResult(Default()).(*Table)

	w.As("01 is a key").ShouldBeTrue(table.IsDLPathKey("01"))
	w.As("00 is a key").ShouldBeTrue(table.IsDLPathKey("00"))
	w.As("10 is not a key").ShouldBeFalse(table.IsDLPathKey("10"))

	// any in-order subset of one qualifier alternative is legal
	w.ShouldBeTrue(table.HasDLSequence([]string{"01"}))
	w.ShouldBeTrue(table.HasDLSequence([]string{"01", "22", "10", "21"}))
	w.ShouldBeTrue(table.HasDLSequence([]string{"01", "10"}))
	w.ShouldBeTrue(table.HasDLSequence([]string{"01", "22", "21"}))
	w.ShouldBeTrue(table.HasDLSequence([]string{"01", "235"}))

	// out of order, mixed alternatives, or non-qualifiers are not
	w.ShouldBeFalse(table.HasDLSequence([]string{"01", "10", "22"}))
	w.ShouldBeFalse(table.HasDLSequence([]string{"01", "235", "10"}))
	w.ShouldBeFalse(table.HasDLSequence([]string{"01", "17"}))
	w.ShouldBeFalse(table.HasDLSequence([]string{"10"}))

	seqs := table.DLSequencesForKey("01")
	w.StopOnMismatch().ShouldBeTrue(len(seqs) > 0)
	for _, seq := range seqs {
		w.As(seq).ShouldBeTrue(seq == "01" || strings.HasPrefix(seq, "01 "))
	}
}

func TestLoad(t *testing.T) {
	type loadTest struct {
		name, dict string
		bad        bool
		entries    int
	}

	pass := func(n, d string, entries int) loadTest {
		return loadTest{name: n, dict: d, entries: entries}
	}

	fail := func(n, d string) loadTest {
		return loadTest{name: n, dict: d, bad: true}
	}

	for i, tt := range []loadTest{
		pass("single entry", "01 - N14,csum,key # GTIN", 1),
		pass("range expands", "3100-3105 - N6 req=01,02", 6),
		pass("comments and blanks", "# comment\n\n90 * X..30\n", 1),
		pass("unknown linter skips entry", "01 - N14,frobnicate # GTIN", 0),
		pass("optional component", "253 * N13,csum,key [X..17] dlpkey", 1),

		fail("prefix length conflict", "91 * X..90\n911 * X..10"),
		fail("duplicate AI", "90 * X..30\n90 * X..40"),
		fail("five digit AI", "12345 * X..30"),
		fail("no components", "90 *"),
		fail("bad component spec", "90 * Q..30"),
		fail("reversed range", "3105-3100 - N6"),
		fail("non-final optional", "90 * [N2] X..10"),
	} {
		t.Run(fmt.Sprintf("%02d_%s", i, tt.name), func(t *testing.T) {
			w := expect.WrapT(t)
			table, err := Load(strings.NewReader(tt.dict))
			if tt.bad {
				w.As(tt.dict).ShouldFail(err)
				return
			}
			w.As(tt.dict).ShouldSucceed(err)
			w.ShouldBeEqual(table.Len(), tt.entries)
		})
	}
}

func TestVivify(t *testing.T) {
	w := expect.WrapT(t)
	table := w.ShouldHaveResult(Default()).(*Table)

	// no table entry, no fixed-length prefix: FNC1-terminated placeholder
	unknown := w.ShouldHaveResult(table.Vivify("88999", 2)).(*Entry)
	w.ShouldBeEqual(unknown.AI, "88")
	w.ShouldBeTrue(unknown.Unknown)
	w.ShouldBeTrue(unknown.FNC1)
	w.ShouldBeEqual(unknown.MaxLength(), 90)

	// the 31xx prefix class is predefined fixed length
	weight := w.ShouldHaveResult(table.Vivify("31990005003999", 0)).(*Entry)
	w.ShouldBeEqual(weight.AI, "3199")
	w.ShouldBeFalse(weight.FNC1)
	w.ShouldBeEqual(weight.MinLength(), 6)
	w.ShouldBeEqual(weight.MaxLength(), 6)

	// refusals: anything ambiguous with the known table
	_, err := table.Vivify("013", 3)
	w.As("known AI is a proper prefix").ShouldFail(err)
	_, err = table.Vivify("2511", 4)
	w.As("length disagrees with prefix class").ShouldFail(err)
	_, err = table.Vivify("88", 0)
	w.As("undeterminable length").ShouldFail(err)
	_, err = table.Vivify("X8", 2)
	w.As("non-digit code").ShouldFail(err)
}
