package war

import (
	"errors"
	"fmt"

	"google.golang.org/protobuf/types/known/structpb"
)

// ErrPayloadShape — верхний уровень ответа не того JSON-типа (например строка
// с ошибкой вместо объекта). Отсутствующие поля ошибкой не считаются.
var ErrPayloadShape = errors.New("war: unexpected payload shape")

// obj — объект из ответа API. Все чтения идут через дефолт: нет ключа или
// у значения другой тип — возвращаем def.
type obj struct {
	s *structpb.Struct
}

func objectOf(v *structpb.Value) obj {
	return obj{s: v.GetStructValue()}
}

func requireObject(schema Schema, v *structpb.Value) (obj, error) {
	s := v.GetStructValue()
	if s == nil {
		return obj{}, fmt.Errorf("%s: want object, got %s: %w", schema, kindName(v), ErrPayloadShape)
	}
	return obj{s: s}, nil
}

func requireList(schema Schema, v *structpb.Value) ([]*structpb.Value, error) {
	l := v.GetListValue()
	if l == nil {
		return nil, fmt.Errorf("%s: want array, got %s: %w", schema, kindName(v), ErrPayloadShape)
	}
	return l.GetValues(), nil
}

func kindName(v *structpb.Value) string {
	switch v.GetKind().(type) {
	case *structpb.Value_StructValue:
		return "object"
	case *structpb.Value_ListValue:
		return "array"
	case *structpb.Value_StringValue:
		return fmt.Sprintf("string %q", v.GetStringValue())
	case *structpb.Value_NumberValue:
		return "number"
	case *structpb.Value_BoolValue:
		return "bool"
	case *structpb.Value_NullValue:
		return "null"
	}
	return "nothing"
}

func (o obj) field(key string) *structpb.Value {
	return o.s.GetFields()[key]
}

func (o obj) Has(key string) bool {
	_, ok := o.s.GetFields()[key]
	return ok
}

func (o obj) Int(key string, def int64) int64 {
	n, ok := o.field(key).GetKind().(*structpb.Value_NumberValue)
	if !ok {
		return def
	}
	return int64(n.NumberValue)
}

func (o obj) Index(key string, def int) int {
	return int(o.Int(key, int64(def)))
}

func (o obj) Float(key string, def float64) float64 {
	n, ok := o.field(key).GetKind().(*structpb.Value_NumberValue)
	if !ok {
		return def
	}
	return n.NumberValue
}

func (o obj) String(key, def string) string {
	s, ok := o.field(key).GetKind().(*structpb.Value_StringValue)
	if !ok {
		return def
	}
	return s.StringValue
}

func (o obj) Bool(key string, def bool) bool {
	b, ok := o.field(key).GetKind().(*structpb.Value_BoolValue)
	if !ok {
		return def
	}
	return b.BoolValue
}

func (o obj) Object(key string) obj {
	return objectOf(o.field(key))
}

func (o obj) List(key string) []*structpb.Value {
	return o.field(key).GetListValue().GetValues()
}

// Ints — список чисел; нечисловые элементы пропускаются.
func (o obj) Ints(key string) []int64 {
	vals := o.List(key)
	out := make([]int64, 0, len(vals))
	for _, v := range vals {
		if n, ok := v.GetKind().(*structpb.Value_NumberValue); ok {
			out = append(out, int64(n.NumberValue))
		}
	}
	return out
}

func (o obj) Indices(key string) []int {
	raw := o.Ints(key)
	out := make([]int, len(raw))
	for i, n := range raw {
		out[i] = int(n)
	}
	return out
}

// Objects — элементы списка, которые являются объектами.
func (o obj) Objects(key string) []obj {
	return objectsOf(o.List(key))
}

func objectsOf(vals []*structpb.Value) []obj {
	out := make([]obj, 0, len(vals))
	for _, v := range vals {
		if s := v.GetStructValue(); s != nil {
			out = append(out, obj{s: s})
		}
	}
	return out
}
