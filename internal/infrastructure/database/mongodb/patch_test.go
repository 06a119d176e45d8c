package mongodb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestPatchBuildAllOperators(t *testing.T) {
	patch := NewPatch().
		Set("folder", "Marketing").
		SetAll(bson.M{"description": "updated"}).
		Unset("imageUrl").
		AddToSet("assignedUserIds", "user_abc").
		Pull("knowledgeFiles", bson.M{"name": "old.pdf"}).
		Push("messages", bson.M{"role": "user", "content": "hi"})

	update := patch.Build()

	assert.Equal(t, bson.M{"folder": "Marketing", "description": "updated"}, update["$set"])
	assert.Equal(t, bson.M{"imageUrl": ""}, update["$unset"])
	assert.Equal(t, bson.M{"assignedUserIds": "user_abc"}, update["$addToSet"])
	assert.Equal(t, bson.M{"knowledgeFiles": bson.M{"name": "old.pdf"}}, update["$pull"])
	assert.Equal(t, bson.M{"messages": bson.M{"role": "user", "content": "hi"}}, update["$push"])
}

func TestPatchEmpty(t *testing.T) {
	patch := NewPatch()
	assert.True(t, patch.IsEmpty())
	assert.Empty(t, patch.Build())

	patch.Set("folder", nil)
	assert.False(t, patch.IsEmpty())
}

func TestPatchBuildNormalizes(t *testing.T) {
	// A built patch still picks up the updatedAt stamp when it flows
	// through normalization, and the unset key survives untouched.
	update := NewPatch().Set("folder", "Ops").Unset("imageUrl").Build()

	got := NormalizeUpdate(update, stampTime)

	set, ok := got["$set"].(bson.M)
	require.True(t, ok)
	assert.Equal(t, "Ops", set["folder"])
	assert.Equal(t, stampTime, set[FieldUpdatedAt])
	assert.Equal(t, bson.M{"imageUrl": ""}, got["$unset"])
}
