package store

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/issever22/nakliyeciDunyasi-sub001/internal/normalize"
)

// Page size bounds, overridden from config at startup.
var (
	DefaultPageSize = 12
	MaxPageSize     = 100
)

func SetPageLimits(def, max int) {
	if def > 0 {
		DefaultPageSize = def
	}
	if max > 0 {
		MaxPageSize = max
	}
}

type SortOrder string

const (
	SortDefault SortOrder = ""
	SortAsc     SortOrder = "asc"
	SortDesc    SortOrder = "desc"
)

// Query asks for one page. Filters are equality constraints keyed by the
// public filter name; unknown names are ignored and empty values skipped.
type Query struct {
	Filters  map[string]string
	PageSize int
	Cursor   string
	Order    SortOrder
}

// Page is one page of results. Cursor is nil when no further page exists.
// A failed query yields an empty page and Error.
type Page[T any] struct {
	Items  []T         `json:"items"`
	Cursor *string     `json:"cursor"`
	Error  *QueryError `json:"error,omitempty"`
}

// QueryError describes a failed listing query. IndexHint is a createIndex
// command that would serve the query; IndexURL is any link the server put
// in its error text. BadRequest marks errors caused by the query itself
// (bad filter value, bad cursor) rather than the database.
type QueryError struct {
	Message    string `json:"message"`
	IndexHint  string `json:"indexHint,omitempty"`
	IndexURL   string `json:"indexUrl,omitempty"`
	BadRequest bool   `json:"-"`
}

func (e *QueryError) Error() string { return e.Message }

type filterField struct {
	key     string
	boolean bool
}

// pageSpec describes how one collection is listed.
type pageSpec struct {
	collection string
	sortField  string
	descending bool
	filters    map[string]filterField
	base       bson.M
	collation  *options.Collation
	activeOnly bool
}

type cursorKey struct {
	Value interface{} `bson:"v"`
	ID    string      `bson:"id"`
}

func normalizePageSize(n int) int {
	if n <= 0 {
		return DefaultPageSize
	}
	if n > MaxPageSize {
		return MaxPageSize
	}
	return n
}

func (s pageSpec) isDescending(order SortOrder) bool {
	switch order {
	case SortAsc:
		return false
	case SortDesc:
		return true
	default:
		return s.descending
	}
}

// filter builds the equality part of the query. Keys are visited in sorted
// order so hints are stable.
func (s pageSpec) filter(q Query) (bson.M, error) {
	out := bson.M{}
	for k, v := range s.base {
		out[k] = v
	}
	if s.activeOnly {
		out["isActive"] = true
	}

	names := make([]string, 0, len(q.Filters))
	for name := range q.Filters {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		field, ok := s.filters[name]
		if !ok {
			continue
		}
		value := strings.TrimSpace(q.Filters[name])
		if value == "" {
			continue
		}
		if field.boolean {
			b, err := strconv.ParseBool(value)
			if err != nil {
				return nil, fmt.Errorf("%s filtresi true/false olmalı", name)
			}
			out[field.key] = b
			continue
		}
		out[field.key] = value
	}
	return out, nil
}

// keysetWindow selects documents strictly after c in sort order, using _id
// to break ties between equal sort values.
func keysetWindow(field string, descending bool, c cursorKey) bson.M {
	op := "$gt"
	if descending {
		op = "$lt"
	}
	return bson.M{"$or": bson.A{
		bson.M{field: bson.M{op: c.Value}},
		bson.M{field: c.Value, "_id": bson.M{op: c.ID}},
	}}
}

func encodeCursor(value interface{}, id string) (string, error) {
	data, err := bson.Marshal(cursorKey{Value: value, ID: id})
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(data), nil
}

func decodeCursor(s string) (cursorKey, error) {
	data, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return cursorKey{}, err
	}
	var c cursorKey
	if err := bson.Unmarshal(data, &c); err != nil {
		return cursorKey{}, err
	}
	if c.ID == "" {
		return cursorKey{}, errors.New("cursor has no id")
	}
	return c, nil
}

func (s pageSpec) indexHint(filter bson.M, descending bool) string {
	dir := 1
	if descending {
		dir = -1
	}
	keys := make([]string, 0, len(filter))
	for k := range filter {
		if !strings.HasPrefix(k, "$") {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys)+2)
	for _, k := range keys {
		parts = append(parts, k+": 1")
	}
	parts = append(parts, fmt.Sprintf("%s: %d", s.sortField, dir), fmt.Sprintf("_id: %d", dir))

	hint := fmt.Sprintf("db.%s.createIndex({ %s })", s.collection, strings.Join(parts, ", "))
	if s.collation != nil {
		hint = fmt.Sprintf("db.%s.createIndex({ %s }, { collation: { locale: %q } })",
			s.collection, strings.Join(parts, ", "), s.collation.Locale)
	}
	return hint
}

var urlPattern = regexp.MustCompile(`https?://[^\s"'<>)]+`)

func isIndexError(err error) bool {
	var ce mongo.CommandError
	if errors.As(err, &ce) {
		switch ce.Code {
		case 291, 292: // NoQueryExecutionPlans, QueryExceededMemoryLimitNoDiskUseAllowed
			return true
		}
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "index") && (strings.Contains(msg, "requires") || strings.Contains(msg, "no query solutions") || strings.Contains(msg, "memory limit"))
}

func queryError(err error, hint string) *QueryError {
	qe := &QueryError{Message: "Liste yüklenirken bir hata oluştu."}
	switch {
	case isIndexError(err):
		qe.Message = "Bu filtre ve sıralama için veritabanı indeksi gerekiyor."
		qe.IndexHint = hint
	case mongo.IsTimeout(err) || errors.Is(err, context.DeadlineExceeded):
		qe.Message = "Sorgu zaman aşımına uğradı."
	}
	if u := urlPattern.FindString(err.Error()); u != "" {
		qe.IndexURL = u
	}
	return qe
}

func logDecodeFailure(collection, id string, err error) {
	zap.L().Warn("skipping undecodable document",
		zap.String("collection", collection),
		zap.String("id", id),
		zap.Error(err))
}

// fetchPage runs one keyset page query. It never returns an error: failures
// are logged and reported through Page.Error with no items.
func fetchPage[T any](ctx context.Context, db *mongo.Database, spec pageSpec, q Query, decode func(id string, raw bson.M) (T, error)) Page[T] {
	page := Page[T]{Items: make([]T, 0)}
	pageSize := normalizePageSize(q.PageSize)
	descending := spec.isDescending(q.Order)

	filter, err := spec.filter(q)
	if err != nil {
		page.Error = &QueryError{Message: err.Error(), BadRequest: true}
		return page
	}
	hint := spec.indexHint(filter, descending)

	if q.Cursor != "" {
		c, err := decodeCursor(q.Cursor)
		if err != nil {
			zap.L().Warn("invalid page cursor", zap.String("collection", spec.collection), zap.Error(err))
			page.Error = &QueryError{Message: "Geçersiz sayfa imleci.", BadRequest: true}
			return page
		}
		for k, v := range keysetWindow(spec.sortField, descending, c) {
			filter[k] = v
		}
	}

	dir := 1
	if descending {
		dir = -1
	}
	opts := options.Find().
		SetSort(bson.D{{Key: spec.sortField, Value: dir}, {Key: "_id", Value: dir}}).
		SetLimit(int64(pageSize))
	if spec.collation != nil {
		opts.SetCollation(spec.collation)
	}

	coll := db.Collection(spec.collection)
	cursor, err := coll.Find(ctx, filter, opts)
	if err != nil {
		zap.L().Error("page query failed",
			zap.String("collection", spec.collection),
			zap.Any("filter", filter),
			zap.Error(err))
		page.Error = queryError(err, hint)
		return page
	}
	defer cursor.Close(ctx)

	var raws []bson.M
	if err := cursor.All(ctx, &raws); err != nil {
		zap.L().Error("page decode failed", zap.String("collection", spec.collection), zap.Error(err))
		page.Error = queryError(err, hint)
		return page
	}

	for _, raw := range raws {
		id := normalize.ID(raw)
		item, err := decode(id, raw)
		if err != nil {
			logDecodeFailure(spec.collection, id, err)
			continue
		}
		page.Items = append(page.Items, item)
	}

	// The cursor follows the raw page so a skipped document never ends
	// pagination early.
	if len(raws) == pageSize {
		last := raws[len(raws)-1]
		next, err := encodeCursor(last[spec.sortField], normalize.ID(last))
		if err != nil {
			zap.L().Error("cursor encode failed", zap.String("collection", spec.collection), zap.Error(err))
			page.Error = queryError(err, hint)
			return page
		}
		page.Cursor = &next
	}
	return page
}
