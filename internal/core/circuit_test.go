package core

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dataforge/gateway/internal/monitoring"
)

func testLogger() *monitoring.Logger {
	return monitoring.New(monitoring.LoggerConfig{Level: "error", Output: "stdout"})
}

func TestCircuitsAllowUnregisteredSource(t *testing.T) {
	c := NewCircuits(nil, testLogger())
	assert.True(t, c.Allow("unknown"))
}

func TestCircuitsTripAfterConsecutiveFailures(t *testing.T) {
	c := NewCircuits([]string{"etherscan"}, testLogger())

	for i := 0; i < 4; i++ {
		c.Record("etherscan", false)
		assert.True(t, c.Allow("etherscan"), "breaker must stay closed below the trip threshold")
	}
	c.Record("etherscan", false)
	assert.False(t, c.Allow("etherscan"), "five consecutive failures must trip the breaker open")
}

func TestCircuitsResetOnSuccess(t *testing.T) {
	c := NewCircuits([]string{"defillama"}, testLogger())

	c.Record("defillama", false)
	c.Record("defillama", false)
	c.Record("defillama", true)
	c.Record("defillama", false)
	c.Record("defillama", false)
	assert.True(t, c.Allow("defillama"), "a success must reset the consecutive-failure counter")
}
