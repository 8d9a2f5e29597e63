// Copyright (c) 2026 Tilawa. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package convert provides fault-tolerant conversions for query parameters.

Handlers use it for optional switches such as ?annotate=true or ?reciter=3,
where a malformed value should behave like an absent one. Do not use it where
distinguishing malformed input from a default matters; parse explicitly instead.
*/
package convert

import (
	"strconv"
	"strings"
)

// ToIntD converts a string to an int, returning def if parsing fails or the string is empty.
func ToIntD(str string, def int) int {
	str = strings.TrimSpace(str)
	if str == "" {
		return def
	}

	if v, err := strconv.Atoi(str); err == nil {
		return v
	}
	return def
}

// ToBool parses a boolean string ("true", "1", "false", "0").
// It returns false on empty string or parse error.
func ToBool(s string) bool {
	return ToBoolD(s, false)
}

// ToBoolD parses a boolean string, returning def if it is empty or malformed.
func ToBoolD(s string, def bool) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}

	if v, err := strconv.ParseBool(s); err == nil {
		return v
	}
	return def
}
