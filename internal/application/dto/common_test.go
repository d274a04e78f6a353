package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageRequest_Normalize(t *testing.T) {
	assert.Equal(t, PageRequest{Limit: DefaultPageLimit}, PageRequest{}.Normalize())
	assert.Equal(t, PageRequest{Limit: MaxPageLimit, Offset: 5}, PageRequest{Limit: 500, Offset: 5}.Normalize())
	assert.Equal(t, PageRequest{Limit: 7}, PageRequest{Limit: 7, Offset: -3}.Normalize())
}
