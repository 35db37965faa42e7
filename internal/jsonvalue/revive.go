package jsonvalue

import (
	"strconv"

	"github.com/ppyne/protoscript/internal/object"
)

// Revive implements JSON.parse's optional reviver walk: a holder object
// wraps the parsed value under key "", and walk recurses depth-first,
// replacing each property with the reviver's return value (deleting it
// when the reviver returns undefined).
func Revive(h Host, v object.Value, reviver object.Value) (object.Value, error) {
	holder := object.New(h.ObjectProto())
	h.Track(holder, 0)
	holder.Define("", v, 0)
	return walkRevive(h, holder, "", reviver)
}

func walkRevive(h Host, holder *object.Object, key string, reviver object.Value) (object.Value, error) {
	val, _ := holder.Get(key)
	if val.IsObject() {
		o := val.Object()
		if o.Kind == object.ArrayKind {
			for i := 0; i < o.Length(); i++ {
				elem, err := walkArrayRevive(h, o, i, reviver)
				if err != nil {
					return object.Undefined, err
				}
				if elem.IsUndefined() {
					o.DeleteIndex(i)
				} else {
					o.SetIndex(i, elem)
				}
			}
		} else {
			for _, k := range o.OwnEnumerableOrder() {
				nv, err := walkRevive(h, o, k, reviver)
				if err != nil {
					return object.Undefined, err
				}
				if nv.IsUndefined() {
					o.Delete(k)
				} else {
					o.Define(k, nv, 0)
				}
			}
		}
	}
	fn := reviver.Object()
	return h.Call(fn, object.Obj(holder), []object.Value{object.Str(key), val})
}

func walkArrayRevive(h Host, arr *object.Object, i int, reviver object.Value) (object.Value, error) {
	val, _ := arr.GetIndex(i)
	if val.IsObject() {
		o := val.Object()
		if o.Kind == object.ArrayKind {
			for j := 0; j < o.Length(); j++ {
				elem, err := walkArrayRevive(h, o, j, reviver)
				if err != nil {
					return object.Undefined, err
				}
				if elem.IsUndefined() {
					o.DeleteIndex(j)
				} else {
					o.SetIndex(j, elem)
				}
			}
		} else {
			for _, k := range o.OwnEnumerableOrder() {
				nv, err := walkRevive(h, o, k, reviver)
				if err != nil {
					return object.Undefined, err
				}
				if nv.IsUndefined() {
					o.Delete(k)
				} else {
					o.Define(k, nv, 0)
				}
			}
		}
	}
	fn := reviver.Object()
	return h.Call(fn, object.Obj(arr), []object.Value{object.Str(strconv.Itoa(i)), val})
}
