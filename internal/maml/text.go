package maml

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/agentflare-ai/go-cmdletdoc/cmdlet"
)

var (
	whitespaceRun = regexp.MustCompile(`\s{2,}`)
	lineBreak     = regexp.MustCompile(`\r?\n`)
)

// Tidy collapses every run of two or more whitespace characters to a single
// space and trims the result.
func Tidy(s string) string {
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(s, " "))
}

// TidyCode drops blank lines at both ends of a code block and removes the
// indentation common to its non-blank lines.
func TidyCode(s string) string {
	lines := lineBreak.Split(s, -1)
	start, end := 0, len(lines)
	for start < end && strings.TrimSpace(lines[start]) == "" {
		start++
	}
	for end > start && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}
	return strings.Join(dedent(lines[start:end]), "\n")
}

func dedent(lines []string) []string {
	minIndent := -1
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		indent := leadingWhitespace(line)
		if minIndent == -1 || indent < minIndent {
			minIndent = indent
		}
	}
	if minIndent <= 0 {
		return lines
	}
	for i, line := range lines {
		if len(line) >= minIndent {
			lines[i] = line[minIndent:]
		} else {
			lines[i] = ""
		}
	}
	return lines
}

func leadingWhitespace(line string) int {
	count := 0
	for _, r := range line {
		if r == ' ' || r == '\t' {
			count++
			continue
		}
		break
	}
	return count
}

var simpleTypeNames = map[reflect.Type]string{
	reflect.TypeOf((*any)(nil)).Elem(): "object",
	reflect.TypeOf(""):                 "string",
	reflect.TypeOf(false):              "bool",
	reflect.TypeOf(uint8(0)):           "byte",
	reflect.TypeOf(int16(0)):           "short",
	reflect.TypeOf(uint16(0)):          "ushort",
	reflect.TypeOf(int32(0)):           "int",
	reflect.TypeOf(uint32(0)):          "uint",
	reflect.TypeOf(int64(0)):           "long",
	reflect.TypeOf(uint64(0)):          "ulong",
	reflect.TypeOf(float32(0)):         "float",
	reflect.TypeOf(float64(0)):         "double",
}

// SimpleTypeName is the shell-friendly name of t: keyword names for the
// basic types, "elem[]" for slices and arrays and the bare name otherwise.
func SimpleTypeName(t reflect.Type) string {
	if t.Kind() == reflect.Slice || t.Kind() == reflect.Array {
		return SimpleTypeName(t.Elem()) + "[]"
	}
	if name, ok := simpleTypeNames[t]; ok {
		return name
	}
	return cmdlet.ShortName(t)
}

// FullTypeName is the qualified name of t with slices and arrays written as
// "elem[]".
func FullTypeName(t reflect.Type) string {
	if t.Kind() == reflect.Slice || t.Kind() == reflect.Array {
		return FullTypeName(t.Elem()) + "[]"
	}
	return cmdlet.FullName(t)
}

var enumType = reflect.TypeOf((*cmdlet.Enum)(nil)).Elem()

// FormatDefault renders a default value. Slices and arrays are joined with
// ", "; nil values and empty sequences render as "".
func FormatDefault(v any) string {
	rv := reflect.ValueOf(v)
	for rv.IsValid() && (rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface) {
		if rv.IsNil() {
			return ""
		}
		rv = rv.Elem()
	}
	if !rv.IsValid() {
		return ""
	}
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		parts := make([]string, rv.Len())
		for i := range parts {
			parts[i] = FormatDefault(rv.Index(i).Interface())
		}
		return strings.Join(parts, ", ")
	case reflect.Map, reflect.Func, reflect.Chan:
		if rv.IsNil() {
			return ""
		}
	}
	if name, ok := enumName(rv); ok {
		return name
	}
	return fmt.Sprint(rv.Interface())
}

// enumName maps an integer enumeration value to its declared name.
func enumName(rv reflect.Value) (string, bool) {
	var values []string
	switch {
	case rv.Type().Implements(enumType):
		values = rv.Interface().(cmdlet.Enum).EnumValues()
	case reflect.PointerTo(rv.Type()).Implements(enumType):
		values = reflect.New(rv.Type()).Interface().(cmdlet.Enum).EnumValues()
	default:
		return "", false
	}
	var i int64
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i = rv.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		i = int64(rv.Uint())
	default:
		return "", false
	}
	if i < 0 || i >= int64(len(values)) {
		return "", false
	}
	return values[i], true
}
