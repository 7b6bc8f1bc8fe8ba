package repository

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestSearchFilter(t *testing.T) {
	filter := SearchFilter("Drill (cordless)")

	assert.Equal(t, true, filter["available"])

	or, ok := filter["$or"].(bson.A)
	require.True(t, ok)
	require.Len(t, or, 2)

	for i, field := range []string{"name", "description"} {
		clause := or[i].(bson.M)[field].(bson.M)
		pattern := clause["$regex"].(primitive.Regex)
		assert.Equal(t, "i", pattern.Options)

		re := regexp.MustCompile("(?i)" + pattern.Pattern)
		assert.True(t, re.MatchString("my DRILL (CORDLESS) set"), field)
		assert.False(t, re.MatchString("drill cordless"), field)
	}
}
