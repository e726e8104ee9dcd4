// Package normalize turns raw stored documents into the API shape.
//
// Each entity declares a Schema listing its timestamp fields and its
// default-true flags. Document applies that schema the same way for every
// entity: timestamps become ISO-8601 strings, missing flags become true and
// the id always comes from the caller. Malformed values never fail a read,
// they are logged and replaced with a fallback.
package normalize

import (
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// ISOLayout matches JavaScript's Date.toISOString output.
const ISOLayout = "2006-01-02T15:04:05.000Z07:00"

var acceptedLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

type Schema struct {
	// Timestamps are audit fields; a missing value becomes "now".
	Timestamps []string
	// OptionalTimestamps are left out when missing.
	OptionalTimestamps []string
	// DefaultTrue flags read as true unless explicitly stored as false.
	DefaultTrue []string
}

var now = func() time.Time { return time.Now().UTC() }

// FormatTime renders t in UTC with millisecond precision.
func FormatTime(t time.Time) string {
	return t.UTC().Format(ISOLayout)
}

// ParseTime accepts the ISO forms stored by clients: full RFC 3339,
// a local date-time without zone, or a plain date.
func ParseTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range acceptedLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// Document returns a copy of raw with the schema applied and "_id" set to id.
func Document(id string, raw bson.M, s Schema) bson.M {
	out := make(bson.M, len(raw)+1)
	for k, v := range raw {
		if k == "id" || k == "_id" {
			continue
		}
		out[k] = v
	}

	for _, field := range s.Timestamps {
		v, present := raw[field]
		if iso, ok := timestamp(id, field, v, present); ok {
			out[field] = iso
			continue
		}
		out[field] = FormatTime(now())
	}

	for _, field := range s.OptionalTimestamps {
		v, present := raw[field]
		if !present || v == nil {
			delete(out, field)
			continue
		}
		if iso, ok := timestamp(id, field, v, present); ok {
			out[field] = iso
			continue
		}
		out[field] = FormatTime(now())
	}

	for _, field := range s.DefaultTrue {
		out[field] = defaultTrue(id, field, raw[field])
	}

	out["_id"] = id
	return out
}

// Decode applies the schema and decodes the result into T.
func Decode[T any](id string, raw bson.M, s Schema) (T, error) {
	var out T
	if err := Into(Document(id, raw, s), &out); err != nil {
		return out, err
	}
	return out, nil
}

// Into round-trips doc through BSON into out.
func Into(doc bson.M, out interface{}) error {
	data, err := bson.Marshal(doc)
	if err != nil {
		return err
	}
	return bson.Unmarshal(data, out)
}

// ID extracts the document id as a string.
func ID(raw bson.M) string {
	switch v := raw["_id"].(type) {
	case string:
		return v
	case primitive.ObjectID:
		return v.Hex()
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

// timestamp converts v to an ISO string. ok is false when the caller must
// substitute a fallback.
func timestamp(id, field string, v interface{}, present bool) (string, bool) {
	switch typed := v.(type) {
	case primitive.DateTime:
		return FormatTime(typed.Time()), true
	case time.Time:
		return FormatTime(typed), true
	case *time.Time:
		if typed != nil {
			return FormatTime(*typed), true
		}
		return "", false
	case primitive.Timestamp:
		return FormatTime(time.Unix(int64(typed.T), 0)), true
	case string:
		if _, ok := ParseTime(typed); ok {
			return typed, true
		}
		zap.L().Warn("unparseable timestamp, using fallback",
			zap.String("id", id),
			zap.String("field", field),
			zap.String("value", typed))
		return "", false
	case nil:
		return "", false
	default:
		if present {
			zap.L().Warn("unexpected timestamp type, using fallback",
				zap.String("id", id),
				zap.String("field", field),
				zap.String("type", fmt.Sprintf("%T", v)))
		}
		return "", false
	}
}

func defaultTrue(id, field string, v interface{}) bool {
	switch typed := v.(type) {
	case nil:
		return true
	case bool:
		return typed
	default:
		zap.L().Warn("non-boolean flag, treating as true",
			zap.String("id", id),
			zap.String("field", field),
			zap.String("type", fmt.Sprintf("%T", v)))
		return true
	}
}
