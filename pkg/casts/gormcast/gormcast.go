// Package gormcast derives a casts.Source from a GORM model, so admin save
// handlers can decode JSON-backed columns without hand-maintaining a cast
// map. Columns typed datatypes.JSON / datatypes.JSONMap and fields using the
// json serializer are recognised.
package gormcast

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"gorm.io/datatypes"
	"gorm.io/gorm/schema"

	"github.com/goliatone/go-crudfields/pkg/casts"
)

var (
	jsonType    = reflect.TypeOf(datatypes.JSON{})
	jsonMapType = reflect.TypeOf(datatypes.JSONMap{})

	schemaCache = &sync.Map{}
)

// FromModel parses the model's GORM schema and returns the structured-cast
// mapping keyed by column name.
func FromModel(model any) (casts.Map, error) {
	if model == nil {
		return nil, fmt.Errorf("gormcast: model is required")
	}

	parsed, err := schema.Parse(model, schemaCache, schema.NamingStrategy{})
	if err != nil {
		return nil, fmt.Errorf("gormcast: parse model schema: %w", err)
	}

	out := make(casts.Map)
	for _, field := range parsed.Fields {
		if field.DBName == "" {
			continue
		}
		if kind := castKind(field); kind != "" {
			out[field.DBName] = kind
		}
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out, nil
}

// MustFromModel panics on parse failure. Useful for package-level model
// wiring.
func MustFromModel(model any) casts.Map {
	mapping, err := FromModel(model)
	if err != nil {
		panic(err)
	}
	return mapping
}

func castKind(field *schema.Field) string {
	switch field.FieldType {
	case jsonType:
		return casts.KindJSON
	case jsonMapType:
		return casts.KindObject
	}

	if serializer, ok := field.TagSettings["SERIALIZER"]; ok && strings.EqualFold(serializer, "json") {
		return serializedKind(field.FieldType)
	}
	return ""
}

func serializedKind(fieldType reflect.Type) string {
	for fieldType.Kind() == reflect.Pointer {
		fieldType = fieldType.Elem()
	}
	switch fieldType.Kind() {
	case reflect.Slice, reflect.Array:
		return casts.KindArray
	case reflect.Map, reflect.Struct:
		return casts.KindObject
	default:
		return casts.KindJSON
	}
}
