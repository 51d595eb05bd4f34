// Package ruleconfig normalizes the compact forms accepted for rule tables.
package ruleconfig

import (
	"math"
	"strconv"
	"strings"
)

type shorthandKind int

const (
	shorthandInteger shorthandKind = iota
	shorthandString
)

type shorthandSpec struct {
	optionKey string
	kind      shorthandKind
}

// formatShorthand lets a pattern rule be configured as `MemberName = "^m[A-Z]"`.
var formatShorthand = shorthandSpec{optionKey: "format", kind: shorthandString}

// Keys are lower-cased rule codes.
var shorthandByRule = map[string]shorthandSpec{
	"filelength":               {optionKey: "max", kind: shorthandInteger},
	"abbreviationaswordinname": {optionKey: "allowed-abbreviation-length", kind: shorthandInteger},
	"typename":                 formatShorthand,
	"methodname":               formatShorthand,
	"constantname":             formatShorthand,
	"staticvariablename":       formatShorthand,
	"membername":               formatShorthand,
	"localvariablename":        formatShorthand,
	"localfinalvariablename":   formatShorthand,
	"parametername":            formatShorthand,
	"packagename":              formatShorthand,
}

// CanonicalizeRuleOptions converts a shorthand rule value to the table form,
// e.g. `FileLength = 1500` to `{max = 1500}`. Tables and values that do not
// fit the rule's shorthand are returned unchanged.
func CanonicalizeRuleOptions(ruleCode string, value any) any {
	spec, ok := shorthandByRule[strings.ToLower(ruleCode)]
	if !ok {
		return value
	}

	if _, isMap := value.(map[string]any); isMap {
		return value
	}

	switch spec.kind {
	case shorthandInteger:
		if !isIntegerLike(value) {
			return value
		}
	case shorthandString:
		if _, ok := value.(string); !ok {
			return value
		}
	}

	return map[string]any{spec.optionKey: value}
}

func isIntegerLike(value any) bool {
	switch typed := value.(type) {
	case int, int8, int16, int32, int64:
		return true
	case uint:
		return uint64(typed) <= math.MaxInt64
	case uint64:
		return typed <= math.MaxInt64
	case uint8, uint16, uint32:
		return true
	case float64:
		return typed == math.Trunc(typed) && !math.IsInf(typed, 0) && !math.IsNaN(typed) &&
			typed >= math.MinInt64 && typed <= math.MaxInt64
	case string:
		_, err := strconv.ParseInt(strings.TrimSpace(typed), 10, 64)
		return err == nil
	default:
		return false
	}
}
