package models

import "fmt"

// Structure is a decoded JSON object in the shape exchanged with the Notion
// API. Nested objects may be Structure or plain map[string]interface{} values.
type Structure map[string]interface{}

func objectOf(v interface{}) (map[string]interface{}, bool) {
	switch o := v.(type) {
	case Structure:
		return o, true
	case map[string]interface{}:
		return o, true
	}
	return nil, false
}

func arrayOf(v interface{}) ([]interface{}, bool) {
	switch a := v.(type) {
	case []interface{}:
		return a, true
	case []Structure:
		out := make([]interface{}, len(a))
		for i := range a {
			out[i] = a[i]
		}
		return out, true
	case []map[string]interface{}:
		out := make([]interface{}, len(a))
		for i := range a {
			out[i] = a[i]
		}
		return out, true
	}
	return nil, false
}

func requiredString(obj map[string]interface{}, key string) (string, error) {
	v, ok := obj[key]
	if !ok || v == nil {
		return "", &SchemaError{Path: key, Reason: "missing required field"}
	}
	s, ok := v.(string)
	if !ok {
		return "", &SchemaError{Path: key, Reason: fmt.Sprintf("expected string, got %T", v)}
	}
	return s, nil
}

// optionalString treats an absent key and JSON null the same way.
func optionalString(obj map[string]interface{}, key string) (string, bool, error) {
	v, ok := obj[key]
	if !ok || v == nil {
		return "", false, nil
	}
	s, ok := v.(string)
	if !ok {
		return "", false, &SchemaError{Path: key, Reason: fmt.Sprintf("expected string, got %T", v)}
	}
	return s, true, nil
}

func optionalBool(obj map[string]interface{}, key string) (bool, error) {
	v, ok := obj[key]
	if !ok || v == nil {
		return false, nil
	}
	b, ok := v.(bool)
	if !ok {
		return false, &SchemaError{Path: key, Reason: fmt.Sprintf("expected boolean, got %T", v)}
	}
	return b, nil
}

func requiredObject(obj map[string]interface{}, key string) (map[string]interface{}, error) {
	v, ok := obj[key]
	if !ok || v == nil {
		return nil, &SchemaError{Path: key, Reason: "missing required object"}
	}
	o, ok := objectOf(v)
	if !ok {
		return nil, &SchemaError{Path: key, Reason: fmt.Sprintf("expected object, got %T", v)}
	}
	return o, nil
}

func optionalObject(obj map[string]interface{}, key string) (map[string]interface{}, bool, error) {
	v, ok := obj[key]
	if !ok || v == nil {
		return nil, false, nil
	}
	o, ok := objectOf(v)
	if !ok {
		return nil, false, &SchemaError{Path: key, Reason: fmt.Sprintf("expected object, got %T", v)}
	}
	return o, true, nil
}

func requiredArray(obj map[string]interface{}, key string) ([]interface{}, error) {
	v, ok := obj[key]
	if !ok || v == nil {
		return nil, &SchemaError{Path: key, Reason: "missing required array"}
	}
	a, ok := arrayOf(v)
	if !ok {
		return nil, &SchemaError{Path: key, Reason: fmt.Sprintf("expected array, got %T", v)}
	}
	return a, nil
}

func optionalArray(obj map[string]interface{}, key string) ([]interface{}, bool, error) {
	v, ok := obj[key]
	if !ok || v == nil {
		return nil, false, nil
	}
	a, ok := arrayOf(v)
	if !ok {
		return nil, false, &SchemaError{Path: key, Reason: fmt.Sprintf("expected array, got %T", v)}
	}
	return a, true, nil
}
