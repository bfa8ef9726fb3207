package biodata

import (
	"context"
	"errors"
	"testing"

	"biodata-service/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

const testNamespace = "student.bioData"

func TestMongoRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("find all returns documents in cursor order", func(mt *mtest.T) {
		repo := NewMongoRepository(mt.Coll)
		first, second := primitive.NewObjectID(), primitive.NewObjectID()

		mt.AddMockResponses(mtest.CreateCursorResponse(0, testNamespace, mtest.FirstBatch,
			bson.D{{Key: "_id", Value: first}, {Key: "name", Value: "Jane"}},
			bson.D{{Key: "_id", Value: second}, {Key: "name", Value: "John"}},
		))

		records, err := repo.FindAll(context.Background())
		require.NoError(mt, err)
		require.Len(mt, records, 2)
		assert.Equal(mt, first.Hex(), records[0].ID())
		assert.Equal(mt, "Jane", records[0]["name"])
		assert.Equal(mt, second.Hex(), records[1].ID())
	})

	mt.Run("find all on empty collection", func(mt *mtest.T) {
		repo := NewMongoRepository(mt.Coll)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, testNamespace, mtest.FirstBatch))

		records, err := repo.FindAll(context.Background())
		require.NoError(mt, err)
		assert.NotNil(mt, records)
		assert.Empty(mt, records)
	})

	mt.Run("find all store error", func(mt *mtest.T) {
		repo := NewMongoRepository(mt.Coll)
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code: 13, Name: "Unauthorized", Message: "not authorized",
		}))

		_, err := repo.FindAll(context.Background())
		require.Error(mt, err)
		assert.False(mt, errors.Is(err, ErrNotFound))
	})

	mt.Run("find by application number found", func(mt *mtest.T) {
		repo := NewMongoRepository(mt.Coll)
		oid := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, testNamespace, mtest.FirstBatch,
			bson.D{{Key: "_id", Value: oid}, {Key: "application_number", Value: "APP-001"}},
		))

		rec, err := repo.FindByApplicationNumber(context.Background(), "APP-001")
		require.NoError(mt, err)
		assert.Equal(mt, oid.Hex(), rec.ID())
		assert.Equal(mt, "APP-001", rec["application_number"])

		evt := mt.GetStartedEvent()
		require.NotNil(mt, evt)
		assert.Equal(mt, "find", evt.CommandName)
		assert.Equal(mt, "APP-001", evt.Command.Lookup("filter", "application_number", "$eq").StringValue())
	})

	mt.Run("find by application number treats objects as values", func(mt *mtest.T) {
		repo := NewMongoRepository(mt.Coll)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, testNamespace, mtest.FirstBatch))

		_, err := repo.FindByApplicationNumber(context.Background(), map[string]interface{}{"$ne": nil})
		assert.ErrorIs(mt, err, ErrNotFound)

		evt := mt.GetStartedEvent()
		require.NotNil(mt, evt)
		cond := evt.Command.Lookup("filter", "application_number").Document()
		elems, err := cond.Elements()
		require.NoError(mt, err)
		require.Len(mt, elems, 1)
		assert.Equal(mt, "$eq", elems[0].Key())
		assert.Equal(mt, bson.TypeNull, elems[0].Value().Document().Lookup("$ne").Type)
	})

	mt.Run("find by application number absent", func(mt *mtest.T) {
		repo := NewMongoRepository(mt.Coll)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, testNamespace, mtest.FirstBatch))

		_, err := repo.FindByApplicationNumber(context.Background(), "APP-404")
		assert.ErrorIs(mt, err, ErrNotFound)
	})

	mt.Run("create assigns an object id", func(mt *mtest.T) {
		repo := NewMongoRepository(mt.Coll)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		id, err := repo.Create(context.Background(), models.BiodataRecord{
			"_id":  "client-supplied",
			"name": "Jane",
		})
		require.NoError(mt, err)
		assert.True(mt, models.IsValidID(id))

		evt := mt.GetStartedEvent()
		require.NotNil(mt, evt)
		assert.Equal(mt, "insert", evt.CommandName)
		doc := evt.Command.Lookup("documents", "0").Document()
		assert.Equal(mt, id, doc.Lookup("_id").ObjectID().Hex())
		assert.Equal(mt, "Jane", doc.Lookup("name").StringValue())
	})

	mt.Run("create store error", func(mt *mtest.T) {
		repo := NewMongoRepository(mt.Coll)
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index: 0, Code: 121, Message: "document failed validation",
		}))

		_, err := repo.Create(context.Background(), models.BiodataRecord{"name": "Jane"})
		assert.Error(mt, err)
	})

	mt.Run("find by id found", func(mt *mtest.T) {
		repo := NewMongoRepository(mt.Coll)
		oid := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, testNamespace, mtest.FirstBatch,
			bson.D{{Key: "_id", Value: oid}, {Key: "name", Value: "Jane"}},
		))

		rec, err := repo.FindByID(context.Background(), oid.Hex())
		require.NoError(mt, err)
		assert.Equal(mt, oid.Hex(), rec.ID())
	})

	mt.Run("find by id absent", func(mt *mtest.T) {
		repo := NewMongoRepository(mt.Coll)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, testNamespace, mtest.FirstBatch))

		_, err := repo.FindByID(context.Background(), primitive.NewObjectID().Hex())
		assert.ErrorIs(mt, err, ErrNotFound)
	})

	mt.Run("find by id malformed", func(mt *mtest.T) {
		repo := NewMongoRepository(mt.Coll)

		_, err := repo.FindByID(context.Background(), "not-an-id")
		assert.ErrorIs(mt, err, ErrInvalidID)
	})

	mt.Run("update matched", func(mt *mtest.T) {
		repo := NewMongoRepository(mt.Coll)
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 1},
		))

		err := repo.UpdateByID(context.Background(), primitive.NewObjectID().Hex(),
			models.BiodataRecord{"name": "Jane Doe", "_id": "ignored"})
		require.NoError(mt, err)

		evt := mt.GetStartedEvent()
		require.NotNil(mt, evt)
		assert.Equal(mt, "update", evt.CommandName)
		set := evt.Command.Lookup("updates", "0", "u", "$set").Document()
		assert.Equal(mt, "Jane Doe", set.Lookup("name").StringValue())
		_, err = set.LookupErr("_id")
		assert.Error(mt, err, "_id must never be part of $set")
	})

	mt.Run("update unmatched", func(mt *mtest.T) {
		repo := NewMongoRepository(mt.Coll)
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 0},
			bson.E{Key: "nModified", Value: 0},
		))

		err := repo.UpdateByID(context.Background(), primitive.NewObjectID().Hex(),
			models.BiodataRecord{"name": "Jane Doe"})
		assert.ErrorIs(mt, err, ErrNotFound)
	})

	mt.Run("update malformed id is a store error", func(mt *mtest.T) {
		repo := NewMongoRepository(mt.Coll)

		err := repo.UpdateByID(context.Background(), "xyz", models.BiodataRecord{"name": "x"})
		assert.ErrorIs(mt, err, ErrInvalidID)
		assert.False(mt, errors.Is(err, ErrNotFound))
	})

	mt.Run("delete removed", func(mt *mtest.T) {
		repo := NewMongoRepository(mt.Coll)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}))

		assert.NoError(mt, repo.DeleteByID(context.Background(), primitive.NewObjectID().Hex()))
	})

	mt.Run("delete none", func(mt *mtest.T) {
		repo := NewMongoRepository(mt.Coll)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}))

		err := repo.DeleteByID(context.Background(), primitive.NewObjectID().Hex())
		assert.ErrorIs(mt, err, ErrNotFound)
	})

	mt.Run("delete malformed id", func(mt *mtest.T) {
		repo := NewMongoRepository(mt.Coll)

		err := repo.DeleteByID(context.Background(), "")
		assert.ErrorIs(mt, err, ErrInvalidID)
	})
}
