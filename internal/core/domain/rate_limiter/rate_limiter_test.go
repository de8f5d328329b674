package ratelimiter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBucketIsStableWithinWindow(t *testing.T) {
	start := time.Date(2020, 1, 1, 15, 0, 0, 0, time.UTC)

	assert.Equal(t, Hour.Bucket(start), Hour.Bucket(start.Add(59*time.Minute)))
	assert.NotEqual(t, Hour.Bucket(start), Hour.Bucket(start.Add(time.Hour)))
	assert.Equal(t, Minute.Bucket(start), Minute.Bucket(start.Add(59*time.Second)))
	assert.NotEqual(t, Minute.Bucket(start), Hour.Bucket(start))
}
