package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegistryGetMissingReturnsNil(t *testing.T) {
	r := NewRegistry()
	assert.Nil(t, r.Get("coingecko"))
}

func TestRegistryRegisterAndGet(t *testing.T) {
	r := NewRegistry()
	a := newFakeAdapter("coingecko", nil, nil)
	r.Register(a)
	assert.Same(t, a, r.Get("coingecko"))
}

func TestRegistryChainPreservesOrderAndDropsUnregistered(t *testing.T) {
	r := NewRegistry()
	r.Register(newFakeAdapter("coingecko", nil, nil))
	r.Register(newFakeAdapter("coinmarketcap", nil, nil))

	chain := r.Chain([]SourceDescriptor{
		{Name: "coingecko"},
		{Name: "etherscan"}, // not registered
		{Name: "coinmarketcap"},
	})

	assert.Len(t, chain, 2)
	assert.Equal(t, "coingecko", chain[0].Name())
	assert.Equal(t, "coinmarketcap", chain[1].Name())
}

func TestRegistryCloseReturnsNoErrorsWhenAdaptersCloseCleanly(t *testing.T) {
	r := NewRegistry()
	r.Register(newFakeAdapter("coingecko", nil, nil))
	errs := r.Close()
	assert.Empty(t, errs)
}
