package core

import (
	"fmt"
	"net/url"
	"reflect"
	"sort"
	"strconv"
	"strings"
)

// Formatter renders params as a query string without the leading '?'.
// Nil values and empty lists both render as "key=".
type Formatter func(params Params) string

func RepeatFormatter(params Params) string {
	return formatParams(params, func(key string, values []string) string {
		parts := make([]string, 0, len(values))
		for _, value := range values {
			parts = append(parts, key+"="+url.QueryEscape(value))
		}
		return strings.Join(parts, "&")
	})
}

func JoinFormatter(params Params) string {
	return formatParams(params, func(key string, values []string) string {
		escaped := make([]string, 0, len(values))
		for _, value := range values {
			escaped = append(escaped, url.QueryEscape(value))
		}
		return key + "=" + strings.Join(escaped, ",")
	})
}

func formatParams(params Params, list func(key string, values []string) string) string {
	if len(params) == 0 {
		return ""
	}
	keys := make([]string, 0, len(params))
	for key := range params {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		escapedKey := url.QueryEscape(key)
		values, isList := paramValues(params[key])
		if !isList {
			parts = append(parts, escapedKey+"="+url.QueryEscape(values[0]))
			continue
		}
		if len(values) == 0 {
			parts = append(parts, escapedKey+"=")
			continue
		}
		parts = append(parts, list(escapedKey, values))
	}
	return strings.Join(parts, "&")
}

func paramValues(value any) ([]string, bool) {
	switch typed := value.(type) {
	case nil:
		return []string{""}, false
	case []string:
		return append([]string(nil), typed...), true
	case []byte:
		return []string{string(typed)}, false
	}

	rv := reflect.ValueOf(value)
	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		out := make([]string, 0, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			out = append(out, scalarString(rv.Index(i).Interface()))
		}
		return out, true
	}
	return []string{scalarString(value)}, false
}

func scalarString(value any) string {
	switch typed := value.(type) {
	case nil:
		return ""
	case string:
		return typed
	case bool:
		return strconv.FormatBool(typed)
	case int:
		return strconv.Itoa(typed)
	case int64:
		return strconv.FormatInt(typed, 10)
	case float64:
		return strconv.FormatFloat(typed, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(typed), 'f', -1, 32)
	case fmt.Stringer:
		return typed.String()
	default:
		return fmt.Sprint(typed)
	}
}
