package normalize

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
)

// CheckInput rejects client supplied values the read path would silently
// replace: timestamp strings that do not parse and non-boolean flags.
func CheckInput(fields bson.M, s Schema) error {
	check := func(field string) error {
		v, ok := fields[field]
		if !ok || v == nil {
			return nil
		}
		str, isString := v.(string)
		if !isString {
			return fmt.Errorf("%s must be an ISO-8601 date string", field)
		}
		if str == "" {
			return nil
		}
		if _, ok := ParseTime(str); !ok {
			return fmt.Errorf("%s is not a valid date: %q", field, str)
		}
		return nil
	}

	for _, field := range s.Timestamps {
		if err := check(field); err != nil {
			return err
		}
	}
	for _, field := range s.OptionalTimestamps {
		if err := check(field); err != nil {
			return err
		}
	}
	for _, field := range s.DefaultTrue {
		if v, ok := fields[field]; ok && v != nil {
			if _, isBool := v.(bool); !isBool {
				return fmt.Errorf("%s must be a boolean", field)
			}
		}
	}
	return nil
}

// Storage returns a copy of doc with ISO timestamp strings turned back into
// native dates, so stored values sort and compare as dates. Empty strings are
// dropped.
func Storage(doc bson.M, s Schema) bson.M {
	out := make(bson.M, len(doc))
	for k, v := range doc {
		out[k] = v
	}

	convert := func(field string) {
		str, ok := out[field].(string)
		if !ok {
			return
		}
		if str == "" {
			delete(out, field)
			return
		}
		if t, ok := ParseTime(str); ok {
			out[field] = t
		}
	}
	for _, field := range s.Timestamps {
		convert(field)
	}
	for _, field := range s.OptionalTimestamps {
		convert(field)
	}
	return out
}
