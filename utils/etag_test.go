package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestGenerateETag(t *testing.T) {
	id := primitive.NewObjectID()
	now := time.Now()

	etag := GenerateETag(id, now)
	assert.True(t, strings.HasPrefix(etag, `"`))
	assert.True(t, strings.HasSuffix(etag, `"`))

	// Deterministic for the same inputs.
	assert.Equal(t, etag, GenerateETag(id, now))

	// Changes when either input changes.
	assert.NotEqual(t, etag, GenerateETag(primitive.NewObjectID(), now))
	assert.NotEqual(t, etag, GenerateETag(id, now.Add(time.Millisecond)))
}

func TestNewTransactionReference(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		ref := NewTransactionReference()
		assert.True(t, strings.HasPrefix(ref, "sim_"), ref)
		assert.False(t, seen[ref], "duplicate reference %s", ref)
		seen[ref] = true
	}
}
