package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestCartIndexModels_UniqueUserID(t *testing.T) {
	models := cartIndexModels()
	require.Len(t, models, 1)

	keys, ok := models[0].Keys.(bson.D)
	require.True(t, ok)
	require.Len(t, keys, 1)
	assert.Equal(t, "user_id", keys[0].Key)
	assert.Equal(t, 1, keys[0].Value)

	require.NotNil(t, models[0].Options)
	require.NotNil(t, models[0].Options.Unique, "index must be declared unique")
	assert.True(t, *models[0].Options.Unique, "one cart document per user")
}
