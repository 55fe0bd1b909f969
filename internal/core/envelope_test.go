package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewEnvelopeInitializesEmptyCollections(t *testing.T) {
	e := NewEnvelope()
	assert.NotNil(t, e.Data)
	assert.NotNil(t, e.SourceMeta)
	assert.NotNil(t, e.Conflicts)
	assert.NotNil(t, e.Warnings)
	assert.Empty(t, e.Warnings)
}

func TestEnvelopeAddWarningAppends(t *testing.T) {
	e := NewEnvelope()
	e.AddWarning("market: degraded to coinmarketcap")
	assert.Equal(t, []string{"market: degraded to coinmarketcap"}, e.Warnings)
}

func TestEnvelopeStampUsesLatestSourceTimestamp(t *testing.T) {
	e := NewEnvelope()
	now := time.Date(2026, 7, 29, 12, 0, 0, 0, time.UTC)
	older := now.Add(-time.Hour).Format(time.RFC3339)
	newer := now.Add(time.Hour).Format(time.RFC3339)

	e.SourceMeta = append(e.SourceMeta, SourceMeta{AsOfUTC: older}, SourceMeta{AsOfUTC: newer})
	e.Stamp(now)

	assert.Equal(t, newer, e.AsOfUTC)
}

func TestEnvelopeStampFallsBackToNowWhenSourcesAreOlder(t *testing.T) {
	e := NewEnvelope()
	now := time.Date(2026, 7, 29, 12, 0, 0, 0, time.UTC)
	older := now.Add(-time.Hour).Format(time.RFC3339)

	e.SourceMeta = append(e.SourceMeta, SourceMeta{AsOfUTC: older})
	e.Stamp(now)

	assert.Equal(t, now.Format(time.RFC3339), e.AsOfUTC)
}
