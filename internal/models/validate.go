package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

func init() {
	// Report JSON field names instead of Go field names.
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// ValidationMessage renders validator errors as a short, user-facing list.
func ValidationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			parts = append(parts, fmt.Sprintf("%s zorunludur", fe.Field()))
		case "oneof":
			parts = append(parts, fmt.Sprintf("%s şu değerlerden biri olmalı: %s", fe.Field(), fe.Param()))
		default:
			parts = append(parts, fmt.Sprintf("%s geçersiz", fe.Field()))
		}
	}
	return strings.Join(parts, ", ")
}

// ToDocument encodes v into a generic BSON map.
func ToDocument(v interface{}) (bson.M, error) {
	data, err := bson.Marshal(v)
	if err != nil {
		return nil, err
	}
	var doc bson.M
	if err := bson.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// mergeDocuments encodes each part and merges them into one flat map.
func mergeDocuments(parts ...interface{}) (bson.M, error) {
	out := bson.M{}
	for _, p := range parts {
		if p == nil {
			continue
		}
		doc, err := ToDocument(p)
		if err != nil {
			return nil, err
		}
		for k, v := range doc {
			out[k] = v
		}
	}
	return out, nil
}

// mergeJSON flattens several JSON objects into one.
func mergeJSON(parts ...interface{}) ([]byte, error) {
	out := map[string]json.RawMessage{}
	for _, p := range parts {
		if p == nil {
			continue
		}
		data, err := json.Marshal(p)
		if err != nil {
			return nil, err
		}
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(data, &fields); err != nil {
			return nil, err
		}
		for k, v := range fields {
			out[k] = v
		}
	}
	return json.Marshal(out)
}

func decodeDoc(doc bson.M, out interface{}) error {
	data, err := bson.Marshal(doc)
	if err != nil {
		return err
	}
	return bson.Unmarshal(data, out)
}
