package mongodb

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

var stampTime = time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)

func TestNormalizeUpdateFlatMap(t *testing.T) {
	update := bson.M{"folder": "Marketing", "description": "updated"}

	got := NormalizeUpdate(update, stampTime)

	require.Len(t, got, 1)
	set, ok := got["$set"].(bson.M)
	require.True(t, ok)
	assert.Equal(t, "Marketing", set["folder"])
	assert.Equal(t, "updated", set["description"])
	assert.Equal(t, stampTime, set[FieldUpdatedAt])
}

func TestNormalizeUpdateMixedOperatorsAndFields(t *testing.T) {
	update := bson.M{
		"$unset": bson.M{"folder": ""},
		"name":   "Sales Assistant",
	}

	got := NormalizeUpdate(update, stampTime)

	// Operator keys pass through untouched.
	assert.Equal(t, bson.M{"folder": ""}, got["$unset"])

	// Plain fields move under $set alongside the timestamp.
	set, ok := got["$set"].(bson.M)
	require.True(t, ok)
	assert.Equal(t, "Sales Assistant", set["name"])
	assert.Equal(t, stampTime, set[FieldUpdatedAt])
}

func TestNormalizeUpdatePreservesCallerSet(t *testing.T) {
	update := bson.M{
		"$set":      bson.M{"model": "gpt-4o", "webBrowsing": true},
		"$addToSet": bson.M{"assignedUserIds": "user_abc"},
	}

	got := NormalizeUpdate(update, stampTime)

	set, ok := got["$set"].(bson.M)
	require.True(t, ok)
	assert.Equal(t, "gpt-4o", set["model"])
	assert.Equal(t, true, set["webBrowsing"])
	assert.Equal(t, stampTime, set[FieldUpdatedAt])
	assert.Equal(t, bson.M{"assignedUserIds": "user_abc"}, got["$addToSet"])
}

func TestNormalizeUpdateOverridesCallerUpdatedAt(t *testing.T) {
	lied := time.Date(2001, 1, 1, 0, 0, 0, 0, time.UTC)

	for name, update := range map[string]bson.M{
		"flat":        {"folder": "Ops", FieldUpdatedAt: lied},
		"inside $set": {"$set": bson.M{"folder": "Ops", FieldUpdatedAt: lied}},
	} {
		got := NormalizeUpdate(update, stampTime)
		set := got["$set"].(bson.M)
		assert.Equal(t, stampTime, set[FieldUpdatedAt], name)
	}
}

func TestNormalizeUpdateDoesNotMutateInput(t *testing.T) {
	update := bson.M{"$set": bson.M{"folder": "Ops"}}

	NormalizeUpdate(update, stampTime)

	assert.Equal(t, bson.M{"folder": "Ops"}, update["$set"])
}

func TestNormalizeUpdateAcceptsBsonDSet(t *testing.T) {
	update := bson.M{"$set": bson.D{{Key: "folder", Value: "Ops"}}}

	got := NormalizeUpdate(update, stampTime)

	set := got["$set"].(bson.M)
	assert.Equal(t, "Ops", set["folder"])
	assert.Equal(t, stampTime, set[FieldUpdatedAt])
}

func TestNormalizeUpdateAcceptsTypedMapSet(t *testing.T) {
	update := bson.M{"$set": map[string]string{"name": "Marketing bot"}}

	got := NormalizeUpdate(update, stampTime)

	set := got["$set"].(bson.M)
	assert.Equal(t, "Marketing bot", set["name"])
	assert.Equal(t, stampTime, set[FieldUpdatedAt])
}

func TestNormalizeUpdateAcceptsStructSet(t *testing.T) {
	type patch struct {
		Name   string `bson:"name"`
		Folder string `bson:"folder,omitempty"`
	}
	update := bson.M{"$set": patch{Name: "Marketing bot"}}

	got := NormalizeUpdate(update, stampTime)

	set := got["$set"].(bson.M)
	assert.Equal(t, "Marketing bot", set["name"])
	assert.Equal(t, stampTime, set[FieldUpdatedAt])
	_, hasFolder := set["folder"]
	assert.False(t, hasFolder)
}

func TestStampForInsertOverridesTimestamps(t *testing.T) {
	lied := time.Date(2001, 1, 1, 0, 0, 0, 0, time.UTC)
	doc := bson.M{
		"name":         "Support GPT",
		FieldCreatedAt: lied,
		FieldUpdatedAt: lied,
	}

	got, err := stampForInsert(doc, stampTime)
	require.NoError(t, err)

	assert.Equal(t, stampTime, got[FieldCreatedAt])
	assert.Equal(t, stampTime, got[FieldUpdatedAt])
	assert.Equal(t, "Support GPT", got["name"])
}

func TestStampForInsertHandlesStructs(t *testing.T) {
	type doc struct {
		Name   string `bson:"name"`
		Folder string `bson:"folder,omitempty"`
	}

	got, err := stampForInsert(doc{Name: "Support GPT"}, stampTime)
	require.NoError(t, err)

	assert.Equal(t, "Support GPT", got["name"])
	assert.Equal(t, stampTime, got[FieldCreatedAt])
	assert.Equal(t, stampTime, got[FieldUpdatedAt])
	_, hasFolder := got["folder"]
	assert.False(t, hasFolder)
}
