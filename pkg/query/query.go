// Copyright (c) 2026 Tilawa. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package query parses list-valued settings such as "1,2,114" or repeated
// query parameters.
package query

import (
	"strconv"
	"strings"
)

// IntSlice parses a slice of string values into integers.
// Invalid entries are ignored safely.
func IntSlice(vals []string) []int {
	var res []int
	for _, v := range vals {
		if i, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			res = append(res, i)
		}
	}
	return res
}

// StringSlice splits a single comma-separated string into a trimmed slice,
// dropping empty entries.
func StringSlice(val string) []string {
	if val == "" {
		return nil
	}

	var res []string
	for _, v := range strings.Split(val, ",") {
		clean := strings.TrimSpace(v)
		if clean != "" {
			res = append(res, clean)
		}
	}
	return res
}

// IntList parses a comma-separated list of integers ("1, 2,114").
func IntList(val string) []int {
	return IntSlice(StringSlice(val))
}
