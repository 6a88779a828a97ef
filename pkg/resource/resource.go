// Package resource shapes API output. A Resource controls exactly which
// fields of a model leave the process, so adding a column never leaks it:
//
//	type ProductResource struct{ resource.Base }
//	func (r *ProductResource) ToArray(v interface{}) resource.Map {
//	    p := v.(models.Product)
//	    return resource.Map{"id": p.ID, "name": p.Name, "price": p.Price}
//	}
//
//	data := resource.New(&ProductResource{}, product).Array()
package resource

import (
	"encoding/json"
	"reflect"
)

// Map is the output of ToArray.
type Map = map[string]interface{}

// Transformer converts one model instance into a Map.
type Transformer interface {
	ToArray(v interface{}) Map
}

// Base can be embedded in any Resource for future extension points.
type Base struct{}

// Resource wraps a single model with its transformer.
type Resource struct {
	transformer Transformer
	data        interface{}
}

// New creates a Resource for a single model instance.
func New(t Transformer, data interface{}) *Resource {
	return &Resource{transformer: t, data: data}
}

// Array returns the transformed map.
func (r *Resource) Array() Map {
	return r.transformer.ToArray(r.data)
}

// MarshalJSON lets a Resource nest inside other payloads.
func (r *Resource) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Array())
}

// Collection wraps a slice of models.
type Collection struct {
	transformer Transformer
	items       interface{}
}

// CollectionOf creates a Collection. items must be a slice of models.
func CollectionOf(t Transformer, items interface{}) *Collection {
	return &Collection{transformer: t, items: items}
}

// Array transforms every element. A nil or empty slice yields an empty
// (never null) JSON array.
func (c *Collection) Array() []Map {
	out := []Map{}
	rv := reflect.ValueOf(c.items)
	if rv.Kind() != reflect.Slice {
		return out
	}
	for i := 0; i < rv.Len(); i++ {
		out = append(out, c.transformer.ToArray(rv.Index(i).Interface()))
	}
	return out
}

// MarshalJSON lets a Collection nest inside other payloads.
func (c *Collection) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Array())
}
