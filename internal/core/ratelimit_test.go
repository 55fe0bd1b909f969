package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLimitersAllowUnregisteredSource(t *testing.T) {
	l := NewLimiters(nil)
	assert.True(t, l.Allow("unknown"))
}

func TestLimitersExhaustBucket(t *testing.T) {
	l := NewLimiters([]SourceDescriptor{{Name: "coingecko", RateLimitPerMin: 1}})

	assert.True(t, l.Allow("coingecko"), "first token must be available")
	assert.False(t, l.Allow("coingecko"), "bucket of size 1 must deny the second immediate call")
}

func TestLimitersDefaultQuotaWhenUnset(t *testing.T) {
	l := NewLimiters([]SourceDescriptor{{Name: "coinmarketcap", RateLimitPerMin: 0}})
	assert.True(t, l.Allow("coinmarketcap"))
}
