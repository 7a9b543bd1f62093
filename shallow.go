package dolly

import (
	"reflect"
)

// shallowCopy duplicates the pointee of src one level deep: the clone is a
// new instance whose fields share everything the source references.
// Types holding a lock by value are not copyable.
func shallowCopy(src reflect.Value) (reflect.Value, error) {
	elem := src.Type().Elem()
	if path := lockPath(elem); path != "" {
		return reflect.Value{}, &ShallowCopyError{Type: elem.String(), Reason: "contains lock " + path}
	}

	dst := reflect.New(elem)
	dst.Elem().Set(src.Elem())
	return dst, nil
}

// shallowValue copies any value one level deep. Used for `clone:"shallow"` fields.
func shallowValue(v reflect.Value) (reflect.Value, error) {
	switch v.Kind() {
	case reflect.Ptr:
		if v.IsNil() {
			return v, nil
		}
		return shallowCopy(v)

	case reflect.Slice:
		if v.IsNil() {
			return v, nil
		}
		out := reflect.MakeSlice(v.Type(), v.Len(), v.Len())
		reflect.Copy(out, v)
		return out, nil

	case reflect.Map:
		if v.IsNil() {
			return v, nil
		}
		out := reflect.MakeMapWithSize(v.Type(), v.Len())
		iter := v.MapRange()
		for iter.Next() {
			out.SetMapIndex(iter.Key(), iter.Value())
		}
		return out, nil

	case reflect.Interface:
		if v.IsNil() {
			return v, nil
		}
		return shallowValue(v.Elem())
	}

	return v, nil
}
