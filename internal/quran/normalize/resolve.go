// Copyright (c) 2026 Tilawa. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package normalize

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// # Ordered Alternate-Key Resolution

/*
Resolve returns the value stored under the first key of keys that is present
in entry.

Keys are tried in order. A key whose value is JSON null counts as absent. A
dotted key such as "name.translation.id" descends through nested objects; a
literal key containing a dot is checked before descending.

Parameters:
  - entry: map[string]any (one decoded JSON object)
  - keys: []string (ordered alternates)

Returns:
  - any: the resolved value, nil when no key is present
  - bool: whether a key was present
*/
func Resolve(entry map[string]any, keys []string) (any, bool) {
	for _, key := range keys {
		if value, ok := lookup(entry, key); ok {
			return value, true
		}
	}
	return nil, false
}

func lookup(entry map[string]any, key string) (any, bool) {
	if value, ok := entry[key]; ok && value != nil {
		return value, true
	}

	if !strings.Contains(key, ".") {
		return nil, false
	}

	var current any = entry
	for _, part := range strings.Split(key, ".") {
		object, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = object[part]
		if !ok || current == nil {
			return nil, false
		}
	}
	return current, true
}

// resolveAs is [Resolve] with a type check: a present value that does not
// coerce is skipped and the next alternate is tried.
func resolveAs[T any](entry map[string]any, keys []string, coerce func(any) (T, bool)) (T, bool) {
	for _, key := range keys {
		value, ok := lookup(entry, key)
		if !ok {
			continue
		}
		if typed, ok := coerce(value); ok {
			return typed, true
		}
	}

	var zero T
	return zero, false
}

// # Coercion

// toInt accepts non-negative integral numbers and decimal strings.
func toInt(value any) (int, bool) {
	switch number := value.(type) {
	case int:
		return number, number >= 0
	case int32:
		return int(number), number >= 0
	case int64:
		return int(number), number >= 0 && number <= math.MaxInt32
	case float64:
		return floatToInt(number)
	case json.Number:
		if integer, err := number.Int64(); err == nil {
			return toInt(integer)
		}
		if float, err := number.Float64(); err == nil {
			return floatToInt(float)
		}
		return 0, false
	case string:
		integer, err := strconv.Atoi(strings.TrimSpace(number))
		if err != nil {
			return 0, false
		}
		return integer, integer >= 0
	}
	return 0, false
}

func floatToInt(number float64) (int, bool) {
	if number < 0 || number > math.MaxInt32 || number != math.Trunc(number) {
		return 0, false
	}
	return int(number), true
}

// toString accepts non-blank strings.
func toString(value any) (string, bool) {
	text, ok := value.(string)
	if !ok {
		return "", false
	}
	text = strings.TrimSpace(text)
	return text, text != ""
}

// toLatin accepts strings not written in Arabic script.
func toLatin(value any) (string, bool) {
	text, ok := toString(value)
	if !ok || arabicScript(text) {
		return "", false
	}
	return text, true
}

// toArabic accepts strings written in Arabic script.
func toArabic(value any) (string, bool) {
	text, ok := toString(value)
	if !ok || !arabicScript(text) {
		return "", false
	}
	return text, true
}

func toList(value any) ([]any, bool) {
	list, ok := value.([]any)
	return list, ok
}

func toObject(value any) (map[string]any, bool) {
	object, ok := value.(map[string]any)
	return object, ok
}

// arabicScript reports whether most letters of text are Arabic.
func arabicScript(text string) bool {
	var arabic, letters int
	for _, r := range text {
		if !unicode.IsLetter(r) {
			continue
		}
		letters++
		if unicode.Is(unicode.Arabic, r) {
			arabic++
		}
	}
	return letters > 0 && arabic*2 > letters
}
