package common

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOptional(t *testing.T) {
	assert := require.New(t)

	optionalInt := NewOptional(42, true)
	assert.Equal(42, optionalInt.Value)
	assert.True(optionalInt.IsPresent)

	optionalString := NewOptional("foo", false)
	assert.Equal("foo", optionalString.Value)
	assert.False(optionalString.IsPresent)

	none := None[string]()
	assert.Equal("", none.Value)
	assert.False(none.IsPresent)
}

func TestNewEmailKeepsCase(t *testing.T) {
	assert := require.New(t)

	assert.Equal(Email("Alice@Example.com"), NewEmail("  Alice@Example.com\n"))
	assert.NotEqual(NewEmail("alice@example.com"), NewEmail("Alice@example.com"))
}
