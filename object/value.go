package object

import (
	"fmt"
	"math"
	"reflect"
	"sort"
	"strconv"
	"strings"
)

// TypeName returns the guest-level type name of a host value.
func TypeName(v any) string {
	switch x := v.(type) {
	case nil:
		return "Null"
	case bool:
		return "Boolean"
	case string:
		return "String"
	case *List, []any, []string:
		return "List"
	case *DynamicObject:
		if x.IsConstructible() {
			return "ClassObject"
		}
		return "Object"
	case map[string]any:
		return "Dictionary"
	case Callable, func(args ...any) (any, error):
		return "Function"
	}
	if _, ok := ToInt64(v); ok && !isFloatKind(v) {
		return "Integer"
	}
	if isFloatKind(v) {
		return "Float"
	}
	if _, ok := v.(Caller); ok {
		return "Function"
	}
	return fmt.Sprintf("HostObject<%T>", v)
}

// IsInteger reports whether v holds a host integer kind.
func IsInteger(v any) bool {
	if isFloatKind(v) {
		return false
	}
	_, ok := ToInt64(v)
	return ok
}

// IsFloating reports whether v holds a host floating-point kind.
func IsFloating(v any) bool {
	return isFloatKind(v)
}

func isFloatKind(v any) bool {
	switch v.(type) {
	case float32, float64:
		return true
	}
	return false
}

// ToInt64 converts any host integer kind, or a float64 holding an integral
// value, to int64.
func ToInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint:
		return int64(n), true
	case uint8:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint64:
		if n > math.MaxInt64 {
			return 0, false
		}
		return int64(n), true
	case float32:
		return floatToInt(float64(n))
	case float64:
		return floatToInt(n)
	default:
		return 0, false
	}
}

func floatToInt(f float64) (int64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	// float64(MaxInt64) rounds up to 2^63, which is out of range.
	if f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, false
	}
	return int64(f), true
}

// ToFloat64 converts any host numeric kind to float64.
func ToFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	}
	if i, ok := ToInt64(v); ok {
		return float64(i), true
	}
	if u, ok := v.(uint64); ok {
		return float64(u), true
	}
	return 0, false
}

// Repr renders v the way the guest's str() and print() do. Top-level
// strings are written verbatim; strings nested inside containers are quoted.
func Repr(v any) string {
	var sb strings.Builder
	writeRepr(&sb, v, false, map[any]struct{}{})
	return sb.String()
}

func writeRepr(sb *strings.Builder, v any, nested bool, seen map[any]struct{}) {
	switch x := v.(type) {
	case nil:
		sb.WriteString("null")
	case string:
		if nested {
			sb.WriteString(quote(x))
		} else {
			sb.WriteString(x)
		}
	case bool:
		sb.WriteString(strconv.FormatBool(x))
	case float64:
		sb.WriteString(formatFloat(x))
	case float32:
		sb.WriteString(formatFloat(float64(x)))
	case *List:
		if _, ok := seen[x]; ok {
			sb.WriteString("[...]")
			return
		}
		seen[x] = struct{}{}
		defer delete(seen, x)
		sb.WriteByte('[')
		for i, item := range x.items {
			if i > 0 {
				sb.WriteString(", ")
			}
			writeRepr(sb, item, true, seen)
		}
		sb.WriteByte(']')
	case []any:
		writeRepr(sb, NewList(x...), nested, seen)
	case []string:
		items := make([]any, len(x))
		for i, s := range x {
			items[i] = s
		}
		writeRepr(sb, NewList(items...), nested, seen)
	case *DynamicObject:
		if _, ok := seen[x]; ok {
			sb.WriteString("{...}")
			return
		}
		seen[x] = struct{}{}
		defer delete(seen, x)
		sb.WriteByte('{')
		first := true
		x.Each(func(name string, value any) bool {
			if !first {
				sb.WriteString(", ")
			}
			first = false
			sb.WriteString(name)
			sb.WriteString(": ")
			writeRepr(sb, value, true, seen)
			return true
		})
		sb.WriteByte('}')
	case map[string]any:
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		sb.WriteByte('{')
		for i, k := range keys {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(k)
			sb.WriteString(": ")
			writeRepr(sb, x[k], true, seen)
		}
		sb.WriteByte('}')
	case Callable, func(args ...any) (any, error):
		sb.WriteString("<function>")
	case fmt.Stringer:
		sb.WriteString(x.String())
	default:
		if i, ok := ToInt64(v); ok {
			sb.WriteString(strconv.FormatInt(i, 10))
			return
		}
		if reflect.ValueOf(v).Kind() == reflect.Func {
			sb.WriteString("<function>")
			return
		}
		fmt.Fprintf(sb, "%v", v)
	}
}

func quote(s string) string {
	r := strings.NewReplacer(`\`, `\\`, "'", `\'`, "\n", `\n`, "\t", `\t`, "\r", `\r`)
	return "'" + r.Replace(s) + "'"
}

// formatFloat always keeps a fractional part so floats stay distinguishable
// from integers when printed.
func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return s
	}
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}
