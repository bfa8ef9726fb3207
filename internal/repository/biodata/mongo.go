// internal/repository/biodata/mongo.go
package biodata

import (
	"context"
	"errors"
	"fmt"

	"biodata-service/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// MongoRepository stores biodata records as documents of one collection.
type MongoRepository struct {
	coll *mongo.Collection
}

func NewMongoRepository(coll *mongo.Collection) *MongoRepository {
	return &MongoRepository{coll: coll}
}

func (r *MongoRepository) FindAll(ctx context.Context) ([]models.BiodataRecord, error) {
	cursor, err := r.coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("find: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []bson.M
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode cursor: %w", err)
	}

	out := make([]models.BiodataRecord, 0, len(docs))
	for _, doc := range docs {
		out = append(out, models.BiodataRecord(doc))
	}
	return out, nil
}

func (r *MongoRepository) FindByApplicationNumber(ctx context.Context, value interface{}) (models.BiodataRecord, error) {
	// $eq keeps an object value literal instead of letting it act as operators.
	return r.findOne(ctx, bson.M{models.ApplicationNumberField: bson.M{"$eq": value}})
}

func (r *MongoRepository) Create(ctx context.Context, fields models.BiodataRecord) (string, error) {
	oid := primitive.NewObjectID()

	doc := bson.M(fields.WithoutID())
	doc[models.IDField] = oid

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return "", fmt.Errorf("insert: %w", err)
	}
	return oid.Hex(), nil
}

func (r *MongoRepository) FindByID(ctx context.Context, id string) (models.BiodataRecord, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	return r.findOne(ctx, bson.M{models.IDField: oid})
}

func (r *MongoRepository) UpdateByID(ctx context.Context, id string, fields models.BiodataRecord) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	filter := bson.M{models.IDField: oid}

	set := fields.WithoutID()
	if len(set) == 0 {
		// Nothing to merge; report whether the target exists.
		n, err := r.coll.CountDocuments(ctx, filter, options.Count().SetLimit(1))
		if err != nil {
			return fmt.Errorf("count: %w", err)
		}
		if n == 0 {
			return ErrNotFound
		}
		return nil
	}

	res, err := r.coll.UpdateOne(ctx, filter, bson.M{"$set": bson.M(set)})
	if err != nil {
		return fmt.Errorf("update: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoRepository) DeleteByID(ctx context.Context, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{models.IDField: oid})
	if err != nil {
		return fmt.Errorf("delete: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoRepository) Ping(ctx context.Context) error {
	return r.coll.Database().Client().Ping(ctx, readpref.Primary())
}

func (r *MongoRepository) findOne(ctx context.Context, filter bson.M) (models.BiodataRecord, error) {
	var doc bson.M
	err := r.coll.FindOne(ctx, filter).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find one: %w", err)
	}
	return models.BiodataRecord(doc), nil
}

func objectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %q: %v", ErrInvalidID, id, err)
	}
	return oid, nil
}
