package dolly

import (
	"errors"
	"fmt"
	"maps"
	"reflect"
	"unsafe"

	"github.com/zoobzio/sentinel"
)

func init() {
	// Register the field mode tag with sentinel
	sentinel.Tag(tagClone)
}

// errNoField marks a field missing from a descriptor. Writers skip such fields.
var errNoField = fmt.Errorf("%w: no such field", ErrFieldAccess)

// TypeDescriptor exposes the runtime capabilities the cloner needs for one
// type: field enumeration, allocation without initialization, and field
// reads and writes that bypass access control.
//
// Read and Write take an addressable value of Type(), usually ptr.Elem().
type TypeDescriptor interface {
	// Type returns the described type. For a pointer instance this is the pointee.
	Type() reflect.Type

	// Name returns the type name used in errors and signals.
	Name() string

	// Builtin reports whether the type is defined by the standard library.
	Builtin() bool

	// Metadata returns the sentinel metadata of the type.
	Metadata() sentinel.Metadata

	// Fields returns the storage fields of a struct type, exported or not.
	Fields() []sentinel.FieldMetadata

	// New allocates a zero instance and returns a pointer to it.
	New() reflect.Value

	// Read returns the value of the named field of obj.
	Read(obj reflect.Value, name string) (reflect.Value, error)

	// Write stores v into the named field of obj. An invalid v stores the zero value.
	Write(obj reflect.Value, name string, v reflect.Value) error
}

// Introspector produces TypeDescriptors.
type Introspector interface {
	Describe(t reflect.Type) (TypeDescriptor, error)
}

// Introspect returns the default introspector. It reads and writes unexported fields.
func Introspect() Introspector {
	return reflectIntrospector{private: true}
}

// IntrospectExported returns an introspector restricted to exported fields.
// Reading or writing an unexported field fails with ErrFieldAccess.
func IntrospectExported() Introspector {
	return reflectIntrospector{}
}

type reflectIntrospector struct {
	private bool
}

func (r reflectIntrospector) Describe(t reflect.Type) (TypeDescriptor, error) {
	plan, err := planFor(t)
	if err != nil {
		return nil, err
	}
	return &reflectDescriptor{plan: plan, private: r.private}, nil
}

// typePlan is the cached, immutable description of a type.
type typePlan struct {
	typ     reflect.Type
	builtin bool
	meta    sentinel.Metadata
	byName  map[string]int
}

// buildPlan scans t into sentinel metadata, including unexported fields.
// Exported fields reuse what sentinel already holds for t, if it was scanned.
func buildPlan(t reflect.Type) (*typePlan, error) {
	plan := &typePlan{
		typ:     t,
		builtin: IsBuiltin(t),
		meta: sentinel.Metadata{
			TypeName:    t.String(),
			PackageName: t.PkgPath(),
		},
	}

	if t.Kind() != reflect.Struct {
		return plan, nil
	}

	// Sentinel keys its cache by bare type name, so the package must match too.
	var scanned map[string]sentinel.FieldMetadata
	if meta, ok := sentinel.Lookup(t.Name()); ok && meta.PackageName == t.PkgPath() {
		plan.meta.Relationships = meta.Relationships
		scanned = make(map[string]sentinel.FieldMetadata, len(meta.Fields))
		for _, fm := range meta.Fields {
			scanned[fm.Name] = fm
		}
	}

	plan.meta.Fields = make([]sentinel.FieldMetadata, 0, t.NumField())
	plan.byName = make(map[string]int, t.NumField())

	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if sf.Name == "_" {
			continue
		}

		fm, ok := scanned[sf.Name]
		if !ok || fm.ReflectType != sf.Type {
			fm = sentinel.FieldMetadata{
				Name:        sf.Name,
				Type:        sf.Type.String(),
				ReflectType: sf.Type,
				Index:       sf.Index,
				Kind:        fieldKind(sf.Type),
			}
		}
		fm.Tags = maps.Clone(fm.Tags)
		if fm.Tags == nil {
			fm.Tags = map[string]string{}
		}

		if val, ok := sf.Tag.Lookup(tagClone); ok {
			if !IsValidFieldMode(FieldMode(val)) {
				return nil, newConfigError(t.String(), fmt.Sprintf("invalid clone tag %q on field %s", val, sf.Name))
			}
			fm.Tags[tagClone] = val
		}

		plan.byName[sf.Name] = len(plan.meta.Fields)
		plan.meta.Fields = append(plan.meta.Fields, fm)
	}

	return plan, nil
}

// fieldKind categorizes t the way sentinel does.
func fieldKind(t reflect.Type) sentinel.FieldKind {
	switch t.Kind() {
	case reflect.Struct:
		return sentinel.KindStruct
	case reflect.Ptr:
		return sentinel.KindPointer
	case reflect.Slice, reflect.Array:
		return sentinel.KindSlice
	case reflect.Map:
		return sentinel.KindMap
	case reflect.Interface:
		return sentinel.KindInterface
	default:
		return sentinel.KindScalar
	}
}

// plainField reports whether a field can be copied by assignment alone.
// Channels and unsafe pointers are scalars to sentinel but never plain.
func plainField(fm sentinel.FieldMetadata) bool {
	if fm.Kind != sentinel.KindScalar || fm.ReflectType == nil {
		return false
	}
	switch fm.ReflectType.Kind() {
	case reflect.Chan, reflect.UnsafePointer:
		return false
	}
	return true
}

// reflectDescriptor implements TypeDescriptor over a cached plan.
type reflectDescriptor struct {
	plan    *typePlan
	private bool
}

func (d *reflectDescriptor) Type() reflect.Type { return d.plan.typ }

func (d *reflectDescriptor) Name() string { return d.plan.meta.TypeName }

func (d *reflectDescriptor) Builtin() bool { return d.plan.builtin }

func (d *reflectDescriptor) Metadata() sentinel.Metadata { return d.plan.meta }

func (d *reflectDescriptor) Fields() []sentinel.FieldMetadata { return d.plan.meta.Fields }

func (d *reflectDescriptor) New() reflect.Value { return reflect.New(d.plan.typ) }

func (d *reflectDescriptor) Read(obj reflect.Value, name string) (reflect.Value, error) {
	return d.field(obj, name)
}

func (d *reflectDescriptor) Write(obj reflect.Value, name string, v reflect.Value) error {
	f, err := d.field(obj, name)
	if err != nil {
		return err
	}
	if !f.CanSet() {
		return fmt.Errorf("%w: %s.%s is not settable", ErrFieldAccess, d.Name(), name)
	}
	return assign(f, v)
}

// field resolves the named field of obj, bypassing access control when allowed.
func (d *reflectDescriptor) field(obj reflect.Value, name string) (reflect.Value, error) {
	if obj.Type() != d.plan.typ {
		return reflect.Value{}, fmt.Errorf("%w: %s is not a %s", ErrFieldAccess, obj.Type(), d.Name())
	}
	i, ok := d.plan.byName[name]
	if !ok {
		return reflect.Value{}, fmt.Errorf("%w: %s.%s", errNoField, d.Name(), name)
	}

	fm := d.plan.meta.Fields[i]
	f := obj.Field(fm.Index[0])
	if f.CanInterface() {
		return f, nil
	}

	if !d.private {
		return reflect.Value{}, fmt.Errorf("%w: %s.%s is unexported", ErrFieldAccess, d.Name(), name)
	}
	if !f.CanAddr() {
		return reflect.Value{}, fmt.Errorf("%w: %s.%s is not addressable", ErrFieldAccess, d.Name(), name)
	}

	return reflect.NewAt(f.Type(), unsafe.Pointer(f.UnsafeAddr())).Elem(), nil
}

// assign stores v into dst. An invalid v stores the zero value.
func assign(dst reflect.Value, v reflect.Value) error {
	if !v.IsValid() {
		dst.Set(reflect.Zero(dst.Type()))
		return nil
	}
	if !v.Type().AssignableTo(dst.Type()) {
		return newConfigError(dst.Type().String(), fmt.Sprintf("clone of type %s is not assignable", v.Type()))
	}
	dst.Set(v)
	return nil
}

// isNoField reports whether err came from a missing field.
func isNoField(err error) bool {
	return errors.Is(err, errNoField)
}
