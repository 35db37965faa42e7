package builtins

import (
	"math"
	"time"

	"github.com/ppyne/protoscript/internal/interp"
	"github.com/ppyne/protoscript/internal/object"
)

const millisPerDay = 24 * 60 * 60 * 1000

func millisToTime(ms float64) time.Time {
	return time.Unix(0, int64(ms)*int64(time.Millisecond)).UTC()
}

func timeToMillis(t time.Time) float64 {
	return float64(t.UnixNano() / int64(time.Millisecond))
}

func dateSlot(this object.Value) (*object.DateSlot, bool) {
	if !this.IsObject() || this.Object().Kind != object.DateKind {
		return nil, false
	}
	return this.Object().DateSlot(), true
}

func registerDatePrototype(vm *interp.Interp) {
	proto := vm.Proto.Date

	field := func(name string, get func(t time.Time) float64) {
		native(vm, proto, name, 0, func(this object.Value, args []object.Value) (object.Value, error) {
			slot, ok := dateSlot(this)
			if !ok {
				return object.Undefined, typeErr("Date.prototype.%s called on a non-Date", name)
			}
			if math.IsNaN(slot.Millis) {
				return object.Num(math.NaN()), nil
			}
			return object.Num(get(millisToTime(slot.Millis))), nil
		})
	}
	field("getFullYear", func(t time.Time) float64 { return float64(t.Year()) })
	field("getMonth", func(t time.Time) float64 { return float64(int(t.Month()) - 1) })
	field("getDate", func(t time.Time) float64 { return float64(t.Day()) })
	field("getDay", func(t time.Time) float64 { return float64(int(t.Weekday())) })
	field("getHours", func(t time.Time) float64 { return float64(t.Hour()) })
	field("getMinutes", func(t time.Time) float64 { return float64(t.Minute()) })
	field("getSeconds", func(t time.Time) float64 { return float64(t.Second()) })
	field("getMilliseconds", func(t time.Time) float64 { return float64(t.Nanosecond() / int(time.Millisecond)) })
	field("getUTCFullYear", func(t time.Time) float64 { return float64(t.Year()) })
	field("getUTCMonth", func(t time.Time) float64 { return float64(int(t.Month()) - 1) })
	field("getUTCDate", func(t time.Time) float64 { return float64(t.Day()) })
	field("getUTCHours", func(t time.Time) float64 { return float64(t.Hour()) })
	field("getUTCMinutes", func(t time.Time) float64 { return float64(t.Minute()) })
	field("getUTCSeconds", func(t time.Time) float64 { return float64(t.Second()) })
	field("getTimezoneOffset", func(t time.Time) float64 { return 0 })

	native(vm, proto, "getTime", 0, func(this object.Value, args []object.Value) (object.Value, error) {
		slot, ok := dateSlot(this)
		if !ok {
			return object.Undefined, typeErr("Date.prototype.getTime called on a non-Date")
		}
		return object.Num(slot.Millis), nil
	})
	native(vm, proto, "valueOf", 0, func(this object.Value, args []object.Value) (object.Value, error) {
		slot, ok := dateSlot(this)
		if !ok {
			return object.Undefined, typeErr("Date.prototype.valueOf called on a non-Date")
		}
		return object.Num(slot.Millis), nil
	})
	native(vm, proto, "setTime", 1, func(this object.Value, args []object.Value) (object.Value, error) {
		slot, ok := dateSlot(this)
		if !ok {
			return object.Undefined, typeErr("Date.prototype.setTime called on a non-Date")
		}
		n, err := reqNumber(vm, args, 0)
		if err != nil {
			return object.Undefined, err
		}
		slot.Millis = n
		return object.Num(slot.Millis), nil
	})

	setter := func(name string, apply func(t time.Time, args []float64) time.Time, nargs int) {
		native(vm, proto, name, nargs, func(this object.Value, args []object.Value) (object.Value, error) {
			slot, ok := dateSlot(this)
			if !ok {
				return object.Undefined, typeErr("Date.prototype.%s called on a non-Date", name)
			}
			nums := make([]float64, len(args))
			for i, a := range args {
				n, err := toNum(vm, a)
				if err != nil {
					return object.Undefined, err
				}
				nums[i] = n
			}
			base := millisToTime(slot.Millis)
			if math.IsNaN(slot.Millis) {
				base = time.Unix(0, 0).UTC()
			}
			slot.Millis = timeToMillis(apply(base, nums))
			return object.Num(slot.Millis), nil
		})
	}
	setter("setFullYear", func(t time.Time, a []float64) time.Time {
		return time.Date(int(a[0]), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
	}, 3)
	setter("setMonth", func(t time.Time, a []float64) time.Time {
		return time.Date(t.Year(), time.Month(int(a[0])+1), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
	}, 2)
	setter("setDate", func(t time.Time, a []float64) time.Time {
		return time.Date(t.Year(), t.Month(), int(a[0]), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
	}, 1)
	setter("setHours", func(t time.Time, a []float64) time.Time {
		return time.Date(t.Year(), t.Month(), t.Day(), int(a[0]), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
	}, 4)
	setter("setMinutes", func(t time.Time, a []float64) time.Time {
		return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), int(a[0]), t.Second(), t.Nanosecond(), time.UTC)
	}, 3)
	setter("setSeconds", func(t time.Time, a []float64) time.Time {
		return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), int(a[0]), t.Nanosecond(), time.UTC)
	}, 2)
	setter("setMilliseconds", func(t time.Time, a []float64) time.Time {
		return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), int(a[0])*int(time.Millisecond), time.UTC)
	}, 1)

	native(vm, proto, "toISOString", 0, func(this object.Value, args []object.Value) (object.Value, error) {
		slot, ok := dateSlot(this)
		if !ok {
			return object.Undefined, typeErr("Date.prototype.toISOString called on a non-Date")
		}
		if math.IsNaN(slot.Millis) {
			return object.Undefined, rangeErr("Invalid Date")
		}
		return object.Str(millisToTime(slot.Millis).Format("2006-01-02T15:04:05.000Z")), nil
	})
	native(vm, proto, "toString", 0, func(this object.Value, args []object.Value) (object.Value, error) {
		slot, ok := dateSlot(this)
		if !ok {
			return object.Str("Invalid Date"), nil
		}
		if math.IsNaN(slot.Millis) {
			return object.Str("Invalid Date"), nil
		}
		return object.Str(millisToTime(slot.Millis).Format("Mon Jan 02 2006 15:04:05 GMT+0000 (UTC)")), nil
	})
	native(vm, proto, "toJSON", 0, func(this object.Value, args []object.Value) (object.Value, error) {
		slot, ok := dateSlot(this)
		if !ok || math.IsNaN(slot.Millis) {
			return object.Null, nil
		}
		return object.Str(millisToTime(slot.Millis).Format("2006-01-02T15:04:05.000Z")), nil
	})
}

func registerDateConstructor(vm *interp.Interp) {
	ctor := constructor(vm, "Date", 7, func(this object.Value, args []object.Value) (object.Value, error) {
		var millis float64
		switch len(args) {
		case 0:
			millis = timeToMillis(time.Now().UTC())
		case 1:
			if args[0].IsObject() && args[0].Object().Kind == object.DateKind {
				millis = args[0].Object().DateSlot().Millis
			} else {
				n, err := toNum(vm, args[0])
				if err != nil {
					return object.Undefined, err
				}
				millis = n
			}
		default:
			nums := make([]float64, 7)
			nums[2] = 1
			for i, a := range args {
				if i >= 7 {
					break
				}
				n, err := toNum(vm, a)
				if err != nil {
					return object.Undefined, err
				}
				nums[i] = n
			}
			t := time.Date(int(nums[0]), time.Month(int(nums[1])+1), int(nums[2]), int(nums[3]), int(nums[4]), int(nums[5]), int(nums[6])*int(time.Millisecond), time.UTC)
			millis = timeToMillis(t)
		}
		if o, ok := thisFreshInstance(this); ok {
			o.Kind = object.DateKind
			o.Internal = &object.DateSlot{Millis: millis}
			return this, nil
		}
		return object.Str(millisToTime(millis).Format("Mon Jan 02 2006 15:04:05 GMT+0000 (UTC)")), nil
	}, vm.Proto.Date)

	native(vm, ctor, "now", 0, func(this object.Value, args []object.Value) (object.Value, error) {
		return object.Num(timeToMillis(time.Now().UTC())), nil
	})
	native(vm, ctor, "UTC", 7, func(this object.Value, args []object.Value) (object.Value, error) {
		nums := make([]float64, 7)
		nums[2] = 1
		for i, a := range args {
			if i >= 7 {
				break
			}
			n, err := toNum(vm, a)
			if err != nil {
				return object.Undefined, err
			}
			nums[i] = n
		}
		t := time.Date(int(nums[0]), time.Month(int(nums[1])+1), int(nums[2]), int(nums[3]), int(nums[4]), int(nums[5]), int(nums[6])*int(time.Millisecond), time.UTC)
		return object.Num(timeToMillis(t)), nil
	})
	native(vm, ctor, "parse", 1, func(this object.Value, args []object.Value) (object.Value, error) {
		s, err := reqString(vm, args, 0)
		if err != nil {
			return object.Undefined, err
		}
		for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05.000Z", "2006-01-02"} {
			if t, err := time.Parse(layout, s); err == nil {
				return object.Num(timeToMillis(t)), nil
			}
		}
		return object.Num(math.NaN()), nil
	})
}
