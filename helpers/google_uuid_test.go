package helpers

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCreateUUID(t *testing.T) {
	id := CreateUUID()
	assert.NoError(t, ParseUUID(id))
	assert.NotEqual(t, id, CreateUUID())
}

func TestParseUUID(t *testing.T) {
	assert.NoError(t, ParseUUID("0b708fe6-dac5-48d9-9b76-9341dbb212bf"))
	assert.Error(t, ParseUUID("not-a-uuid"))
}

func TestIdempotencyKey(t *testing.T) {
	key := IdempotencyKey()
	assert.True(t, strings.HasPrefix(key, "hnode-"))
	assert.NoError(t, ParseUUID(strings.TrimPrefix(key, "hnode-")))
	assert.NotEqual(t, key, IdempotencyKey())
}
