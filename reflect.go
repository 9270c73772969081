package ledger

import (
	"reflect"

	"github.com/iov-one/tranche/errors"
)

// setMsg assigns src to the value pointed to by dst. Both the pointer and
// the pointed value types are accepted for src.
func setMsg(dst, src interface{}) error {
	dv := reflect.ValueOf(dst)
	if dv.Kind() != reflect.Ptr || dv.IsNil() {
		return errors.Wrapf(errors.ErrType, "destination must be a non nil pointer, got %T", dst)
	}
	target := dv.Elem()

	sv := reflect.ValueOf(src)
	if sv.Type().AssignableTo(target.Type()) {
		target.Set(sv)
		return nil
	}
	if sv.Kind() == reflect.Ptr && !sv.IsNil() && sv.Elem().Type().AssignableTo(target.Type()) {
		target.Set(sv.Elem())
		return nil
	}
	return errors.Wrapf(errors.ErrType, "cannot load %T into %T", src, dst)
}
