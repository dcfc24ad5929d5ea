package veil

import (
	"context"
	"fmt"
	"reflect"
	"time"

	"github.com/awnumar/memguard/core"
	"github.com/zoobzio/sentinel"
)

func init() {
	// Register the shred tag with sentinel
	sentinel.Tag("veil")
}

// ShredMode selects how a tagged field is cleared.
// Use these constants in struct tags: `veil:"wipe"`
type ShredMode string

const (
	// ShredWipe overwrites byte slices with zeroes and clears strings.
	ShredWipe ShredMode = "wipe"

	// ShredScramble overwrites byte slices with random bytes before zeroing.
	// For string fields it behaves like ShredWipe.
	ShredScramble ShredMode = "scramble"
)

// validShredModes contains all valid shred modes for tag validation.
var validShredModes = map[ShredMode]bool{
	ShredWipe:     true,
	ShredScramble: true,
}

// IsValidShredMode returns true if the mode is a known shred mode.
func IsValidShredMode(m ShredMode) bool {
	return validShredModes[m]
}

// shredFieldPlan describes how to clear a single field.
type shredFieldPlan struct {
	index      []int     // reflect.Value.FieldByIndex access path
	name       string    // field name for error messages
	mode       ShredMode // tag value (wipe, scramble)
	isBytes    bool      // true if field is []byte, false if string
	ptrIndices []int     // indices where pointer dereference is needed
	isSlice    bool      // true if field is []string
	isMap      bool      // true if field is map[K]string
}

// shredPlan holds the cached plans for one type.
type shredPlan struct {
	typeName string
	fields   []shredFieldPlan
}

// Shred clears the sensitive fields of a struct in place.
//
// Fields tagged `veil:"wipe"` or `veil:"scramble"` are cleared: []byte
// fields are overwritten in place (scramble overwrites with random bytes
// first) and then nilled; string, []string and map[K]string fields are set
// to empty values. Nested structs and non-nil struct pointers are walked.
//
// Strings are immutable in Go and their backing arrays may be shared or
// interned, so string fields can only be cleared, not wiped; keep secrets
// that must be wipeable in []byte fields.
//
// Types implementing Shreddable bypass reflection entirely.
func Shred[T any](obj *T) error {
	if obj == nil {
		return nil
	}

	start := time.Now()

	if s, ok := any(obj).(Shreddable); ok {
		err := s.Shred()
		emitShredded(context.Background(), reflect.TypeFor[T]().Name(), 0, time.Since(start), err)
		return err
	}

	plan, err := plansFor[T]()
	if err != nil {
		return err
	}

	err = applyShred(obj, plan.fields)
	emitShredded(context.Background(), plan.typeName, len(plan.fields), time.Since(start), err)
	return err
}

// buildShredPlans creates field plans for type T by scanning struct tags.
func buildShredPlans[T any]() (shredPlan, error) {
	if reflect.TypeFor[T]().Kind() != reflect.Struct {
		return shredPlan{}, fmt.Errorf("shred: %s is not a struct", reflect.TypeFor[T]().String())
	}

	spec := sentinel.Scan[T]()
	plan := shredPlan{typeName: spec.TypeName}

	if err := buildShredPlansRecursive(&plan, spec, nil, nil, ""); err != nil {
		return shredPlan{}, err
	}

	return plan, nil
}

// buildShredPlansRecursive recursively processes fields and nested structs.
func buildShredPlansRecursive(plan *shredPlan, spec sentinel.Metadata, parentIndex, ptrIndices []int, namePrefix string) error {
	for _, field := range spec.Fields {
		fullIndex := append(append([]int{}, parentIndex...), field.Index...)
		fullName := field.Name
		if namePrefix != "" {
			fullName = namePrefix + "." + field.Name
		}

		// Handle nested structs
		if field.Kind == sentinel.KindStruct {
			nestedSpec := scanNestedType(field.ReflectType)
			if nestedSpec != nil {
				if err := buildShredPlansRecursive(plan, *nestedSpec, fullIndex, ptrIndices, fullName); err != nil {
					return err
				}
			}
			continue
		}

		// Handle pointer to struct
		if field.Kind == sentinel.KindPointer && field.ReflectType.Elem().Kind() == reflect.Struct {
			nestedSpec := scanNestedType(field.ReflectType.Elem())
			if nestedSpec != nil {
				newPtrIndices := append(append([]int{}, ptrIndices...), len(fullIndex)-1)
				if err := buildShredPlansRecursive(plan, *nestedSpec, fullIndex, newPtrIndices, fullName); err != nil {
					return err
				}
			}
			continue
		}

		val, ok := field.Tags["veil"]
		if !ok {
			continue
		}
		if !IsValidShredMode(ShredMode(val)) {
			return fmt.Errorf("invalid shred mode %q for field %s", val, fullName)
		}

		// Check underlying kind for string, []byte, []string, or map[K]string fields
		isString := field.ReflectType.Kind() == reflect.String
		isBytes := field.ReflectType.Kind() == reflect.Slice &&
			field.ReflectType.Elem().Kind() == reflect.Uint8
		isStringSlice := field.ReflectType.Kind() == reflect.Slice &&
			field.ReflectType.Elem().Kind() == reflect.String
		isStringMap := field.ReflectType.Kind() == reflect.Map &&
			field.ReflectType.Elem().Kind() == reflect.String

		if !isString && !isBytes && !isStringSlice && !isStringMap {
			return fmt.Errorf("field %s: shred supports string, []byte, []string and map[K]string, got %s", fullName, field.ReflectType)
		}

		plan.fields = append(plan.fields, shredFieldPlan{
			index:      fullIndex,
			name:       fullName,
			mode:       ShredMode(val),
			isBytes:    isBytes,
			ptrIndices: ptrIndices,
			isSlice:    isStringSlice,
			isMap:      isStringMap,
		})
	}

	return nil
}

// scanNestedType scans a nested struct type and returns its metadata.
func scanNestedType(rt reflect.Type) *sentinel.Metadata {
	if spec, ok := sentinel.Lookup(rt.String()); ok {
		return &spec
	}

	if rt.Kind() != reflect.Struct {
		return nil
	}

	spec := sentinel.Metadata{
		TypeName:    rt.Name(),
		PackageName: rt.PkgPath(),
		Fields:      make([]sentinel.FieldMetadata, 0, rt.NumField()),
	}

	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}

		fm := sentinel.FieldMetadata{
			Name:        sf.Name,
			Type:        sf.Type.String(),
			ReflectType: sf.Type,
			Index:       sf.Index,
			Tags:        parseShredTags(sf.Tag),
		}

		switch sf.Type.Kind() {
		case reflect.Struct:
			fm.Kind = sentinel.KindStruct
		case reflect.Ptr:
			fm.Kind = sentinel.KindPointer
		case reflect.Slice, reflect.Array:
			fm.Kind = sentinel.KindSlice
		case reflect.Map:
			fm.Kind = sentinel.KindMap
		case reflect.Interface:
			fm.Kind = sentinel.KindInterface
		default:
			fm.Kind = sentinel.KindScalar
		}

		spec.Fields = append(spec.Fields, fm)
	}

	return &spec
}

// parseShredTags extracts the veil tag from a struct tag.
func parseShredTags(tag reflect.StructTag) map[string]string {
	tags := make(map[string]string)
	if val, ok := tag.Lookup("veil"); ok {
		tags["veil"] = val
	}
	return tags
}

// applyShred clears planned fields via reflection.
func applyShred[T any](obj *T, plans []shredFieldPlan) error {
	rv := reflect.ValueOf(obj).Elem()

	for _, plan := range plans {
		field, ok := getField(rv, plan)
		if !ok {
			continue
		}

		// Handle slice of strings
		if plan.isSlice {
			for i := 0; i < field.Len(); i++ {
				elem := field.Index(i)
				if elem.CanSet() {
					elem.SetString("")
				}
			}
			continue
		}

		// Handle map of strings
		if plan.isMap {
			iter := field.MapRange()
			for iter.Next() {
				k := iter.Key()
				field.SetMapIndex(k, reflect.Zero(field.Type().Elem()))
			}
			continue
		}

		// Handle scalar string or []byte
		if !field.CanSet() {
			return newShredError(plan.name, fmt.Errorf("field is not settable"))
		}

		if plan.isBytes {
			buf := field.Bytes()
			if plan.mode == ShredScramble {
				core.Scramble(buf)
			}
			core.Wipe(buf)
			field.SetBytes(nil)
			continue
		}

		field.SetString("")
	}

	return nil
}

// getField navigates a field path, dereferencing pointers as needed.
func getField(rv reflect.Value, plan shredFieldPlan) (reflect.Value, bool) {
	if len(plan.ptrIndices) == 0 {
		return rv.FieldByIndex(plan.index), true
	}

	current := rv
	ptrSet := make(map[int]bool, len(plan.ptrIndices))
	for _, idx := range plan.ptrIndices {
		ptrSet[idx] = true
	}

	for i, idx := range plan.index {
		current = current.Field(idx)

		if ptrSet[i] {
			if current.IsNil() {
				return reflect.Value{}, false
			}
			current = current.Elem()
		}
	}

	return current, true
}
