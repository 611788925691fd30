/* Apache v2 license
 * Copyright (C) 2019 Intel Corporation
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package lint

// daysInMonth is indexed by month (1-12); February is handled separately.
var daysInMonth = [13]int{0, 31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// CheckDigit verifies the standard GS1 mod-10 check digit over a numeric
// value whose final digit is the check digit.
//
// The weighting is defined from the right: the digit immediately preceding
// the check digit has weight 3, and weights alternate 3, 1, 3, 1, ...
// leftward from there, so the same rule covers GTIN-8 through SSCC-18.
func CheckDigit(value string) *Error {
	if len(value) < 2 {
		return errAt(0, len(value), "too short to contain a check digit")
	}
	if err := Numeric(value); err != nil {
		return err
	}
	sum := 0
	weight := 3
	for i := len(value) - 2; i >= 0; i-- {
		sum += int(value[i]-'0') * weight
		weight = 4 - weight
	}
	want := byte((10-sum%10)%10) + '0'
	if value[len(value)-1] != want {
		return errAt(len(value)-1, 1, "incorrect check digit (expected %c)", want)
	}
	return nil
}

// GS1Key checks that the value is long enough to begin with a GS1 Company
// Prefix and that the prefix portion is numeric. GCPs are at minimum four
// digits.
func GS1Key(value string) *Error {
	if len(value) < 4 {
		return errAt(0, len(value), "too short to contain a GS1 Company Prefix")
	}
	for i := 0; i < 4; i++ {
		if value[i] < '0' || value[i] > '9' {
			return errAt(i, 1, "illegal non-digit character in GS1 Company Prefix")
		}
	}
	return nil
}

// YYMMDD checks a six-digit date with a non-zero day of month.
func YYMMDD(value string) *Error {
	return checkDate(value, false)
}

// YYMMD0 checks a six-digit date, permitting day "00" to denote an
// unspecified day (interpreted as the last day of the month).
func YYMMD0(value string) *Error {
	return checkDate(value, true)
}

func checkDate(value string, allowDay00 bool) *Error {
	if len(value) != 6 {
		return errAt(0, len(value), "dates must be six digits (YYMMDD)")
	}
	if err := Numeric(value); err != nil {
		return err
	}
	mm := int(value[2]-'0')*10 + int(value[3]-'0')
	if mm < 1 || mm > 12 {
		return errAt(2, 2, "invalid month %02d", mm)
	}
	dd := int(value[4]-'0')*10 + int(value[5]-'0')
	if dd == 0 {
		if allowDay00 {
			return nil
		}
		return errAt(4, 2, "day of month must not be zero")
	}
	max := daysInMonth[mm]
	if mm == 2 {
		// The GS1 General Specifications define the two-digit year as
		// falling within 1951-2049, so the Gregorian century rules for
		// leap years never come into play.
		yy := int(value[0]-'0')*10 + int(value[1]-'0')
		if yy%4 == 0 {
			max = 29
		}
	}
	if dd > max {
		return errAt(4, 2, "invalid day %02d for month %02d", dd, mm)
	}
	return nil
}

// HHMM checks a four-digit time of day.
func HHMM(value string) *Error {
	if len(value) != 4 {
		return errAt(0, len(value), "times must be four digits (HHMM)")
	}
	if err := Numeric(value); err != nil {
		return err
	}
	if value[0] > '2' || (value[0] == '2' && value[1] > '3') {
		return errAt(0, 2, "invalid hour")
	}
	if value[2] > '5' {
		return errAt(2, 2, "invalid minute")
	}
	return nil
}

// NoZeroPrefix checks that a numeric value has no leading zero, except for
// the single value "0".
func NoZeroPrefix(value string) *Error {
	if len(value) > 1 && value[0] == '0' {
		return errAt(0, 1, "value must not have a leading zero")
	}
	return nil
}

// PieceOfTotal checks an even-length numeric "piece of total" field: the
// first half is the piece number, the second half the total count. Neither
// may be zero and the piece may not exceed the total.
func PieceOfTotal(value string) *Error {
	if len(value) == 0 || len(value)%2 != 0 {
		return errAt(0, len(value), "piece/total must have an even number of digits")
	}
	if err := Numeric(value); err != nil {
		return err
	}
	half := len(value) / 2
	piece, total := value[:half], value[half:]
	if allZero(piece) {
		return errAt(0, half, "piece number must not be zero")
	}
	if allZero(total) {
		return errAt(half, half, "total count must not be zero")
	}
	// equal lengths, so string comparison is numeric comparison
	if piece > total {
		return errAt(0, half, "piece number exceeds total count")
	}
	return nil
}

func allZero(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] != '0' {
			return false
		}
	}
	return true
}
