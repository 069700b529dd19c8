package stdlib

import (
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/cfs-lang/cfscript/internal/evaluator"
)

// registerJSON wires spec.md §6's json module. Full decode/encode of a
// cfscript Value goes through gjson.Parse/a hand-rolled encoder; get/set
// operate directly on raw JSON text via gjson/sjson path queries, without
// ever materializing a cfscript Value, mirroring how callers reach for
// gjson/sjson in the pack for targeted reads/writes rather than full
// unmarshal round-trips.
func (r *Registry) registerJSON() {
	r.register("json", "parse", CategoryJSON, 1, 1, func(args []evaluator.Value) (evaluator.Value, *evaluator.RuntimeError) {
		text, err := checkString(args, 0)
		if err != nil {
			return nil, err
		}
		if !gjson.Valid(text) {
			return errResult("invalid JSON")
		}
		return ok(fromGJSON(gjson.Parse(text)))
	})

	r.register("json", "stringify", CategoryJSON, 1, 1, func(args []evaluator.Value) (evaluator.Value, *evaluator.RuntimeError) {
		return evaluator.Str(toJSON(args[0])), nil
	})

	r.register("json", "get", CategoryJSON, 2, 2, func(args []evaluator.Value) (evaluator.Value, *evaluator.RuntimeError) {
		text, err := checkString(args, 0)
		if err != nil {
			return nil, err
		}
		path, err := checkString(args, 1)
		if err != nil {
			return nil, err
		}
		res := gjson.Get(text, path)
		if !res.Exists() {
			return errResult("path not found: " + path)
		}
		return ok(fromGJSON(res))
	})

	r.register("json", "set", CategoryJSON, 3, 3, func(args []evaluator.Value) (evaluator.Value, *evaluator.RuntimeError) {
		text, err := checkString(args, 0)
		if err != nil {
			return nil, err
		}
		path, err := checkString(args, 1)
		if err != nil {
			return nil, err
		}
		updated, setErr := sjson.Set(text, path, rawForSjson(args[2]))
		if setErr != nil {
			return errResult(setErr.Error())
		}
		return ok(evaluator.Str(updated))
	})
}

func fromGJSON(r gjson.Result) evaluator.Value {
	switch r.Type {
	case gjson.Null:
		return evaluator.Nil{}
	case gjson.False:
		return evaluator.Bool(false)
	case gjson.True:
		return evaluator.Bool(true)
	case gjson.Number:
		return evaluator.Number(r.Num)
	case gjson.String:
		return evaluator.Str(r.Str)
	case gjson.JSON:
		if r.IsArray() {
			arr := &evaluator.Array{}
			r.ForEach(func(_, v gjson.Result) bool {
				arr.Elements = append(arr.Elements, fromGJSON(v))
				return true
			})
			return arr
		}
		obj := evaluator.NewObject()
		r.ForEach(func(k, v gjson.Result) bool {
			obj.Set(k.Str, fromGJSON(v))
			return true
		})
		return obj
	default:
		return evaluator.Nil{}
	}
}

// rawForSjson passes scalar values through for sjson's own encoding and
// falls back to a pre-rendered JSON string (via the "raw" sjson.Set option
// path) for arrays/objects.
func rawForSjson(v evaluator.Value) interface{} {
	switch x := v.(type) {
	case evaluator.Number:
		return float64(x)
	case evaluator.Str:
		return string(x)
	case evaluator.Bool:
		return bool(x)
	case evaluator.Nil:
		return nil
	default:
		return sjson.Literal(toJSON(v))
	}
}

func toJSON(v evaluator.Value) string {
	var b strings.Builder
	writeJSON(&b, v)
	return b.String()
}

func writeJSON(b *strings.Builder, v evaluator.Value) {
	switch x := v.(type) {
	case evaluator.Nil:
		b.WriteString("null")
	case evaluator.Bool:
		b.WriteString(strconv.FormatBool(bool(x)))
	case evaluator.Number:
		b.WriteString(strconv.FormatFloat(float64(x), 'g', -1, 64))
	case evaluator.Str:
		b.WriteString(strconv.Quote(string(x)))
	case *evaluator.Array:
		b.WriteByte('[')
		for i, e := range x.Elements {
			if i > 0 {
				b.WriteByte(',')
			}
			writeJSON(b, e)
		}
		b.WriteByte(']')
	case *evaluator.Object:
		b.WriteByte('{')
		for i, k := range x.Keys() {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(strconv.Quote(k))
			b.WriteByte(':')
			val, _ := x.Get(k)
			writeJSON(b, val)
		}
		b.WriteByte('}')
	default:
		b.WriteString(strconv.Quote(v.Console()))
	}
}
