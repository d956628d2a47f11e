package redissource

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyFor(t *testing.T) {
	assert.Equal(t, "grove:model/1", (&redisSource{prefix: "grove"}).keyFor("model/1"))
	assert.Equal(t, "model/1", (&redisSource{}).keyFor("model/1"))
}
