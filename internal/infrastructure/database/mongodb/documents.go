package mongodb

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"agentdesk/internal/infrastructure/metrics"
	"agentdesk/internal/utils/platformerrors"
)

// Timestamp field names stamped by the access layer on every write.
const (
	FieldCreatedAt = "createdAt"
	FieldUpdatedAt = "updatedAt"
)

const operatorSigil = "$"

// Documents normalizes common document operations and enforces timestamp
// discipline so domain repositories never construct raw update operators
// incorrectly.
type Documents struct {
	db     *mongo.Database
	logger zerolog.Logger
	now    func() time.Time
}

// NewDocuments binds the access layer to a database handle.
func NewDocuments(db *mongo.Database, logger zerolog.Logger) *Documents {
	return &Documents{
		db:     db,
		logger: logger,
		now:    time.Now,
	}
}

// FindOptions carries the subset of query options the repositories use.
type FindOptions struct {
	Sort  bson.D
	Limit *int64
	Skip  *int64
}

// FindOne decodes the first match into out. The second return is false when
// nothing matched; that is not an error.
func (d *Documents) FindOne(ctx context.Context, collection string, filter bson.M, out any) (bool, error) {
	err := d.db.Collection(collection).FindOne(ctx, filter).Decode(out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	if err != nil {
		return false, d.operationError(ctx, collection, "findOne", err)
	}
	return true, nil
}

// Find materializes every match into out (a pointer to a slice). Ordering
// follows opts.Sort when given and is otherwise unspecified.
func (d *Documents) Find(ctx context.Context, collection string, filter bson.M, opts *FindOptions, out any) error {
	findOpts := options.Find()
	if opts != nil {
		if len(opts.Sort) > 0 {
			findOpts.SetSort(opts.Sort)
		}
		if opts.Limit != nil {
			findOpts.SetLimit(*opts.Limit)
		}
		if opts.Skip != nil {
			findOpts.SetSkip(*opts.Skip)
		}
	}

	cursor, err := d.db.Collection(collection).Find(ctx, filter, findOpts)
	if err != nil {
		return d.operationError(ctx, collection, "find", err)
	}
	if err := cursor.All(ctx, out); err != nil {
		return d.operationError(ctx, collection, "find", err)
	}
	return nil
}

// InsertOne writes doc with createdAt and updatedAt set to the call time.
// Caller-supplied values for those fields are overwritten.
func (d *Documents) InsertOne(ctx context.Context, collection string, doc any) (primitive.ObjectID, error) {
	stamped, err := stampForInsert(doc, d.now())
	if err != nil {
		return primitive.NilObjectID, platformerrors.NewError(ctx, platformerrors.LayerRepository,
			platformerrors.ErrorTypeInternal, "encode document for "+collection, err,
			"2e9a4c7d-1f3b-4e8a-b6c5-9d0e1f2a3b4c")
	}

	res, err := d.db.Collection(collection).InsertOne(ctx, stamped)
	if err != nil {
		return primitive.NilObjectID, d.operationError(ctx, collection, "insertOne", err)
	}

	metrics.RecordDocumentOp(collection, "insertOne")
	id, _ := res.InsertedID.(primitive.ObjectID)
	return id, nil
}

// UpdateOne applies update to the first document matching filter. The update
// may be a raw operator document, a flat field map, or a mix; it is
// normalized so updatedAt always carries the call time. A zero matched count
// means the filter matched nothing; that is not an error and callers must
// check it.
func (d *Documents) UpdateOne(ctx context.Context, collection string, filter, update bson.M) (int64, error) {
	res, err := d.db.Collection(collection).UpdateOne(ctx, filter, NormalizeUpdate(update, d.now()))
	if err != nil {
		return 0, d.operationError(ctx, collection, "updateOne", err)
	}
	metrics.RecordDocumentOp(collection, "updateOne")
	return res.MatchedCount, nil
}

// UpdateMany applies update to every document matching filter, with the
// same normalization as UpdateOne. It returns the modified count.
func (d *Documents) UpdateMany(ctx context.Context, collection string, filter, update bson.M) (int64, error) {
	res, err := d.db.Collection(collection).UpdateMany(ctx, filter, NormalizeUpdate(update, d.now()))
	if err != nil {
		return 0, d.operationError(ctx, collection, "updateMany", err)
	}
	metrics.RecordDocumentOp(collection, "updateMany")
	return res.ModifiedCount, nil
}

// DeleteOne physically removes the first match. Soft-deletable entities go
// through UpdateOne with an isActive flip instead; this primitive serves
// records with no retention requirement.
func (d *Documents) DeleteOne(ctx context.Context, collection string, filter bson.M) (int64, error) {
	res, err := d.db.Collection(collection).DeleteOne(ctx, filter)
	if err != nil {
		return 0, d.operationError(ctx, collection, "deleteOne", err)
	}
	metrics.RecordDocumentOp(collection, "deleteOne")
	return res.DeletedCount, nil
}

// CountDocuments counts matches for filter.
func (d *Documents) CountDocuments(ctx context.Context, collection string, filter bson.M) (int64, error) {
	count, err := d.db.Collection(collection).CountDocuments(ctx, filter)
	if err != nil {
		return 0, d.operationError(ctx, collection, "countDocuments", err)
	}
	return count, nil
}

// NormalizeUpdate rewrites update into canonical operator form:
//   - a flat field map becomes a single $set sub-document;
//   - plain fields mixed with operator keys are moved under $set while the
//     operator keys pass through untouched;
//   - a caller-supplied $set sub-document keeps its fields.
//
// In every case updatedAt is stamped into the final $set with now, replacing
// any caller-supplied value.
func NormalizeUpdate(update bson.M, now time.Time) bson.M {
	setDoc := bson.M{}
	normalized := bson.M{}

	for key, value := range update {
		if !strings.HasPrefix(key, operatorSigil) {
			setDoc[key] = value
			continue
		}
		if key == "$set" {
			for field, fieldValue := range fieldMap(value) {
				setDoc[field] = fieldValue
			}
			continue
		}
		normalized[key] = value
	}

	setDoc[FieldUpdatedAt] = now
	normalized["$set"] = setDoc
	return normalized
}

// stampForInsert flattens doc into a field map with both timestamps set to
// now, discarding whatever the caller put there.
func stampForInsert(doc any, now time.Time) (bson.M, error) {
	fields, err := roundTripMap(doc)
	if err != nil {
		return nil, err
	}
	fields[FieldCreatedAt] = now
	fields[FieldUpdatedAt] = now
	return fields, nil
}

// fieldMap converts any driver-accepted document shape into bson.M. Typed
// maps and tagged structs go through the marshal round-trip. A value bson
// cannot marshal yields an empty map.
func fieldMap(value any) bson.M {
	fields, err := roundTripMap(value)
	if err != nil {
		return bson.M{}
	}
	return fields
}

func roundTripMap(value any) (bson.M, error) {
	if fields := toMap(value); fields != nil {
		return fields, nil
	}
	data, err := bson.Marshal(value)
	if err != nil {
		return nil, err
	}
	fields := bson.M{}
	if err := bson.Unmarshal(data, &fields); err != nil {
		return nil, err
	}
	return fields, nil
}

// toMap converts the value shapes callers hand us into bson.M. Returns nil
// for anything that needs a marshal round-trip.
func toMap(value any) bson.M {
	switch v := value.(type) {
	case bson.M:
		out := bson.M{}
		for k, val := range v {
			out[k] = val
		}
		return out
	case map[string]any:
		out := bson.M{}
		for k, val := range v {
			out[k] = val
		}
		return out
	case bson.D:
		out := bson.M{}
		for _, elem := range v {
			out[elem.Key] = elem.Value
		}
		return out
	default:
		return nil
	}
}

// operationError logs a collection-qualified diagnostic and returns the
// failure classified into the closed error-type enum, so callers can branch
// on the kind (duplicate key, timeout, connection loss) without string
// inspection.
func (d *Documents) operationError(ctx context.Context, collection, op string, err error) error {
	errorType := classify(err)
	metrics.RecordDocumentOpError(collection, string(errorType))
	d.logger.Error().
		Str("collection", collection).
		Str("operation", op).
		Str("error_type", string(errorType)).
		Err(err).
		Msg("document operation failed")
	return platformerrors.NewErrorWithContext(ctx, platformerrors.LayerRepository, errorType,
		op+" on "+collection+" failed", err, "d5b8e2f1-6a4c-4d9e-8b7a-3c2f1e0d9a8b",
		map[string]any{"collection": collection, "operation": op})
}

// classify maps driver failures onto the closed error-type enumeration.
func classify(err error) platformerrors.ErrorType {
	switch {
	case mongo.IsDuplicateKeyError(err):
		return platformerrors.ErrorTypeConflict
	case mongo.IsTimeout(err),
		errors.Is(err, context.DeadlineExceeded):
		return platformerrors.ErrorTypeTimeout
	case mongo.IsNetworkError(err):
		return platformerrors.ErrorTypeExternal
	default:
		return platformerrors.ErrorTypeDatabaseError
	}
}
