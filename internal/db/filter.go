package db

import (
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// FilterSpec is an explicit query specification. Callers state what they
// want as enumerated optional fields; the translation to backend query
// syntax happens in one place, at this boundary, so the rest of the code
// stays free of driver-specific filter building.
type FilterSpec struct {
	// Equals holds field -> exact value constraints.
	Equals map[string]interface{}
	// RangeField, with Gte/Lte, bounds one field inclusively. A nil bound
	// is open.
	RangeField string
	Gte        interface{}
	Lte        interface{}
	// Pattern is a case-insensitive substring match OR-ed across
	// PatternFields (the backend's ilike-across-columns search).
	Pattern       string
	PatternFields []string
	// OrderBy sorts by one field; Desc flips the direction.
	OrderBy string
	Desc    bool
	// Limit caps the result set when positive.
	Limit int64
}

// ToBSON translates the spec into a Mongo filter document.
func (f FilterSpec) ToBSON() bson.M {
	filter := bson.M{}
	for field, value := range f.Equals {
		filter[field] = value
	}
	if f.RangeField != "" {
		bounds := bson.M{}
		if f.Gte != nil {
			bounds["$gte"] = f.Gte
		}
		if f.Lte != nil {
			bounds["$lte"] = f.Lte
		}
		if len(bounds) > 0 {
			filter[f.RangeField] = bounds
		}
	}
	if f.Pattern != "" && len(f.PatternFields) > 0 {
		re := primitive.Regex{Pattern: regexp.QuoteMeta(f.Pattern), Options: "i"}
		or := make(bson.A, 0, len(f.PatternFields))
		for _, field := range f.PatternFields {
			or = append(or, bson.M{field: re})
		}
		filter["$or"] = or
	}
	return filter
}

// FindOptions translates the spec's ordering and limit.
func (f FilterSpec) FindOptions() *options.FindOptions {
	opts := options.Find()
	if f.OrderBy != "" {
		dir := 1
		if f.Desc {
			dir = -1
		}
		opts.SetSort(bson.D{{Key: f.OrderBy, Value: dir}})
	}
	if f.Limit > 0 {
		opts.SetLimit(f.Limit)
	}
	return opts
}
