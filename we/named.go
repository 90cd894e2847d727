package we

import (
	"reflect"
	"strings"

	"github.com/iancoleman/strcase"
)

type Named interface {
	TypeName() string
}

// NameOf returns the stable name of a value. Values implementing Named supply
// their own, everything else is named `<package>:<kebab-case-type>`.
func NameOf(value any) string {
	if typed, ok := value.(Named); ok {
		return typed.TypeName()
	}

	t := reflect.TypeOf(value)
	if t == nil {
		return ""
	}

	split := strings.Split(t.String(), ".")
	segments := make([]string, len(split))
	for i, segment := range split {
		s := strings.TrimLeft(segment, "*")
		segments[i] = strcase.ToKebab(s)
	}

	if len(segments) == 1 {
		return segments[0]
	}

	namespace := segments[0]
	name := strings.Join(segments[1:], "-")

	return namespace + ":" + name
}
