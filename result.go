package recast

import (
	"fmt"
	"reflect"
	"runtime"
	"strings"
)

// Result is the three-way outcome of a cast unit: a value, an error, or an
// empty signal. Anything else a cast unit produces is a contract violation.
type Result struct {
	kind   resultKind
	value  any
	reason error
}

type resultKind uint8

const (
	resultOk resultKind = iota
	resultError
	resultEmpty
)

// Ok wraps a successfully casted value.
func Ok(v any) Result { return Result{kind: resultOk, value: v} }

// Fail wraps a cast failure. The reason is opaque caller data and is carried
// unchanged into the FieldError returned to the Cast caller.
func Fail(reason error) Result { return Result{kind: resultError, reason: reason} }

// Failf is Fail with formatting.
func Failf(format string, args ...any) Result {
	return Result{kind: resultError, reason: fmt.Errorf(format, args...)}
}

// Empty signals "no error, no value". The resolver treats it exactly like a
// casted value that matched the field's empty set.
var Empty = Result{kind: resultEmpty}

// Value returns the casted value and whether the result is Ok.
func (r Result) Value() (any, bool) { return r.value, r.kind == resultOk }

// Err returns the failure reason; nil unless the result is a failure.
func (r Result) Err() error { return r.reason }

// IsEmpty reports whether the result is the empty signal.
func (r Result) IsEmpty() bool { return r.kind == resultEmpty }

// Caster is the capability-object form of a cast unit.
type Caster interface {
	Cast(v any) Result
}

// Partial binds fixed trailing arguments to a casting function. Fn must take
// the raw value first; Args are appended on every invocation.
type Partial struct {
	Fn   any
	Args []any
}

// castFn is the normalized invoker shape every cast-unit form reduces to.
type castFn func(any) Result

var resultType = reflect.TypeOf(Result{})

// normalizeUnit resolves one of the supported cast-unit forms into a castFn.
// Normalization happens once, at descriptor build time; the returned closure
// does no shape inspection per call.
//
// Supported forms:
//   - func(any) Result, or any single-in single-out function. A function
//     whose return type is not Result is invoked loosely: the returned value
//     must still be a Result at runtime, otherwise a ContractViolationError
//     is raised.
//   - a value implementing Caster.
//   - Partial{Fn, Args}: Fn called with the raw value followed by Args.
func normalizeUnit(unit any) (castFn, string, error) {
	switch u := unit.(type) {
	case nil:
		return nil, "", fmt.Errorf("%w: nil", ErrNotACastUnit)
	case func(any) Result:
		return u, funcName(reflect.ValueOf(u)), nil
	case Caster:
		return u.Cast, fmt.Sprintf("%T", u), nil
	case Partial:
		return normalizePartial(u)
	}

	fv := reflect.ValueOf(unit)
	ft := fv.Type()
	if ft.Kind() != reflect.Func {
		return nil, "", fmt.Errorf("%w: %T", ErrNotACastUnit, unit)
	}
	if ft.NumIn() != 1 || ft.NumOut() != 1 {
		return nil, "", fmt.Errorf("%w: %s must take one argument and return one value", ErrNotACastUnit, funcName(fv))
	}

	name := funcName(fv)
	in := ft.In(0)
	typed := ft.Out(0) == resultType
	fn := func(v any) Result {
		av, ok := coerceArg(v, in)
		if !ok {
			return Failf("cast unit %s cannot take %T value", name, v)
		}
		out := fv.Call([]reflect.Value{av})[0].Interface()
		return interpretResult(name, out, typed)
	}
	return fn, name, nil
}

func normalizePartial(u Partial) (castFn, string, error) {
	fv := reflect.ValueOf(u.Fn)
	if !fv.IsValid() || fv.Kind() != reflect.Func {
		return nil, "", fmt.Errorf("%w: Partial.Fn is %T", ErrNotACastUnit, u.Fn)
	}
	ft := fv.Type()
	if ft.NumIn() != 1+len(u.Args) || ft.NumOut() != 1 {
		return nil, "", fmt.Errorf("%w: %s does not fit %d fixed arguments", ErrNotACastUnit, funcName(fv), len(u.Args))
	}

	name := funcName(fv)
	fixed := make([]reflect.Value, len(u.Args))
	for i, arg := range u.Args {
		av, ok := coerceArg(arg, ft.In(i+1))
		if !ok {
			return nil, "", fmt.Errorf("%w: fixed argument %d (%T) does not fit %s", ErrNotACastUnit, i, arg, name)
		}
		fixed[i] = av
	}

	in := ft.In(0)
	typed := ft.Out(0) == resultType
	fn := func(v any) Result {
		av, ok := coerceArg(v, in)
		if !ok {
			return Failf("cast unit %s cannot take %T value", name, v)
		}
		out := fv.Call(append([]reflect.Value{av}, fixed...))[0].Interface()
		return interpretResult(name, out, typed)
	}
	return fn, name, nil
}

// interpretResult enforces the three-way contract on a loosely typed return.
func interpretResult(name string, out any, typed bool) Result {
	if typed {
		return out.(Result)
	}
	res, ok := out.(Result)
	if !ok {
		panic(&ContractViolationError{Unit: name, Got: out})
	}
	return res
}

// coerceArg prepares v for a reflect call into a parameter of type t.
func coerceArg(v any, t reflect.Type) (reflect.Value, bool) {
	if v == nil {
		switch t.Kind() {
		case reflect.Interface, reflect.Ptr, reflect.Slice, reflect.Map, reflect.Chan, reflect.Func:
			return reflect.Zero(t), true
		}
		return reflect.Value{}, false
	}
	rv := reflect.ValueOf(v)
	if rv.Type().AssignableTo(t) {
		return rv, true
	}
	return reflect.Value{}, false
}

func funcName(fv reflect.Value) string {
	pc := runtime.FuncForPC(fv.Pointer())
	if pc == nil {
		return "func"
	}
	name := pc.Name()
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	return name
}
