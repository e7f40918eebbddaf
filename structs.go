package fieldcodec

import (
	"fmt"
	"go/token"
	"reflect"
	"sync"
	"time"

	"github.com/zoobzio/sentinel"
)

func init() {
	// Register the field tag with sentinel
	sentinel.Tag("field")
}

// structField describes how one struct field maps to a schema field.
type structField struct {
	index []int // reflect.Value.FieldByIndex access path
	info  FieldInfo
}

// structPlan is the cached schema mapping for a struct type.
type structPlan struct {
	schema Schema
	fields []structField
}

var (
	structPlans   = make(map[reflect.Type]*structPlan)
	structPlansMu sync.RWMutex
)

var timeType = reflect.TypeOf(time.Time{})

// SchemaFor derives a schema from the exported scalar fields of struct T.
//
// The schema field name is taken from a `field:"name"` tag, falling back to
// the Go field name. A tag of "-" skips the field. Nested structs, pointers,
// maps, and interfaces are skipped; time.Time maps to TypeDateTime and []byte
// to TypeBlob.
func SchemaFor[T any]() (Schema, error) {
	plan, err := planFor[T]()
	if err != nil {
		return Schema{}, err
	}
	return plan.schema.Clone(), nil
}

// RecordOf builds a record from v in SchemaFor[T] order.
func RecordOf[T any](v T) (Record, error) {
	plan, err := planFor[T]()
	if err != nil {
		return Record{}, err
	}
	rv := reflect.ValueOf(v)
	rec := Record{Values: make([]any, len(plan.fields))}
	for i, f := range plan.fields {
		rec.Values[i] = cloneValue(rv.FieldByIndex(f.index).Interface())
	}
	return rec, nil
}

// planFor returns a cached plan or builds a new one.
func planFor[T any]() (*structPlan, error) {
	typ := reflect.TypeFor[T]()
	if typ.Kind() != reflect.Struct {
		return nil, fmt.Errorf("fieldcodec: %s is not a struct", typ)
	}

	// Fast path: read-lock cache check
	structPlansMu.RLock()
	if cached, ok := structPlans[typ]; ok {
		structPlansMu.RUnlock()
		return cached, nil
	}
	structPlansMu.RUnlock()

	structPlansMu.Lock()
	defer structPlansMu.Unlock()

	// Double-check pattern
	if cached, ok := structPlans[typ]; ok {
		return cached, nil
	}

	plan, err := buildStructPlan(sentinel.Scan[T]())
	if err != nil {
		return nil, err
	}
	structPlans[typ] = plan
	return plan, nil
}

// buildStructPlan maps sentinel metadata to schema fields.
func buildStructPlan(spec sentinel.Metadata) (*structPlan, error) {
	plan := &structPlan{}
	for _, field := range spec.Fields {
		if !token.IsExported(field.Name) {
			continue
		}
		name := field.Name
		if tag, ok := field.Tags["field"]; ok {
			if tag == "-" {
				continue
			}
			if tag != "" {
				name = tag
			}
		}

		ft, ok := fieldTypeOf(field.ReflectType)
		if !ok {
			continue
		}

		info := FieldInfo{
			Name:   name,
			Type:   ft,
			Source: spec.TypeName + "." + field.Name,
		}
		if err := plan.schema.AddField(info); err != nil {
			return nil, fmt.Errorf("%s: %w", spec.TypeName, err)
		}
		plan.fields = append(plan.fields, structField{
			index: append([]int{}, field.Index...),
			info:  info,
		})
	}
	return plan, nil
}

// fieldTypeOf maps a Go type to a schema field type.
func fieldTypeOf(rt reflect.Type) (FieldType, bool) {
	if rt == timeType {
		return TypeDateTime, true
	}
	switch rt.Kind() {
	case reflect.Bool:
		return TypeBool, true
	case reflect.Int8, reflect.Uint8:
		return TypeByte, true
	case reflect.Int16, reflect.Uint16:
		return TypeInt16, true
	case reflect.Int32, reflect.Uint32:
		return TypeInt32, true
	case reflect.Int, reflect.Int64, reflect.Uint, reflect.Uint64:
		return TypeInt64, true
	case reflect.Float32:
		return TypeFloat, true
	case reflect.Float64:
		return TypeDouble, true
	case reflect.String:
		return TypeVWString, true
	case reflect.Slice:
		if rt.Elem().Kind() == reflect.Uint8 {
			return TypeBlob, true
		}
	}
	return "", false
}
