package sources

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dataforge/gateway/internal/core"
)

func TestBinanceFetchRawRequiresPair(t *testing.T) {
	b := NewBinance(core.SourceDescriptor{Name: "binance"})
	_, err := b.FetchRaw(context.Background(), "/orderbook", map[string]interface{}{})
	require.NotNil(t, err)
	assert.Equal(t, core.KindDecode, err.Kind)
}

func TestBinanceFetchRawOrderbookDefaultsDepth(t *testing.T) {
	var gotLimit string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotLimit = r.URL.Query().Get("limit")
		w.Write([]byte(`{"bids": [], "asks": []}`))
	}))
	defer srv.Close()

	b := NewBinance(core.SourceDescriptor{Name: "binance", BaseURL: srv.URL})
	_, err := b.FetchRaw(context.Background(), "/orderbook", map[string]interface{}{"pair": "BTCUSDT"})
	require.Nil(t, err)
	assert.Equal(t, "20", gotLimit)
}

func TestBinanceFetchRawRejectsUnsupportedEndpoint(t *testing.T) {
	b := NewBinance(core.SourceDescriptor{Name: "binance"})
	_, err := b.FetchRaw(context.Background(), "/unknown", map[string]interface{}{"pair": "BTCUSDT"})
	require.NotNil(t, err)
	assert.Equal(t, core.KindDecode, err.Kind)
}

func TestBinanceTransformTickerParsesStringPrices(t *testing.T) {
	b := NewBinance(core.SourceDescriptor{Name: "binance"})
	out, err := b.Transform(map[string]interface{}{"c": "101.5", "v": "2000", "b": "101.4", "a": "101.6"}, "ticker")
	require.Nil(t, err)
	data := out.(map[string]interface{})
	assert.Equal(t, 101.5, data["price"])
	assert.Equal(t, 2000.0, data["volume_24h"])
}

func TestBinanceTransformTickerParsesNumericPrices(t *testing.T) {
	b := NewBinance(core.SourceDescriptor{Name: "binance"})
	out, err := b.Transform(map[string]interface{}{"c": 101.5, "v": 2000.0, "b": 101.4, "a": 101.6}, "ticker")
	require.Nil(t, err)
	data := out.(map[string]interface{})
	assert.Equal(t, 101.5, data["price"])
}

func TestBinanceTransformOrderbookPassesThroughBidsAsks(t *testing.T) {
	b := NewBinance(core.SourceDescriptor{Name: "binance"})
	bids := []interface{}{[]interface{}{"101.0", "2.5"}}
	out, err := b.Transform(map[string]interface{}{"bids": bids, "asks": []interface{}{}}, "orderbook")
	require.Nil(t, err)
	data := out.(map[string]interface{})
	assert.Equal(t, bids, data["bids"])
}

func TestParsePriceHandlesStringAndNumber(t *testing.T) {
	assert.Equal(t, 101.5, parsePrice("101.5"))
	assert.Equal(t, 101.5, parsePrice(101.5))
}

func TestBinanceFetchRawFundingRateReturnsLatestEntry(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"fundingRate": "0.0001", "fundingTime": 1700000000000}]`))
	}))
	defer srv.Close()

	b := NewBinance(core.SourceDescriptor{Name: "binance", BaseURL: srv.URL})
	raw, err := b.FetchRaw(context.Background(), "/fapi/v1/fundingRate", map[string]interface{}{"pair": "BTCUSDT"})
	require.Nil(t, err)
	entry := raw.(map[string]interface{})
	assert.Equal(t, "0.0001", entry["fundingRate"])
}

func TestBinanceFetchRawFundingRateRejectsEmptyResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	b := NewBinance(core.SourceDescriptor{Name: "binance", BaseURL: srv.URL})
	_, err := b.FetchRaw(context.Background(), "/fapi/v1/fundingRate", map[string]interface{}{"pair": "BTCUSDT"})
	require.NotNil(t, err)
	assert.Equal(t, core.KindDecode, err.Kind)
}

func TestBinanceFetchRawOpenInterest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"openInterest": "50000.0", "time": 1700000000000}`))
	}))
	defer srv.Close()

	b := NewBinance(core.SourceDescriptor{Name: "binance", BaseURL: srv.URL})
	raw, err := b.FetchRaw(context.Background(), "/fapi/v1/openInterest", map[string]interface{}{"pair": "BTCUSDT"})
	require.Nil(t, err)
	entry := raw.(map[string]interface{})
	assert.Equal(t, "50000.0", entry["openInterest"])
}

func TestBinanceTransformFundingRate(t *testing.T) {
	b := NewBinance(core.SourceDescriptor{Name: "binance"})
	out, err := b.Transform(map[string]interface{}{"fundingRate": "0.0001", "fundingTime": 1700000000000.0}, "funding_rate")
	require.Nil(t, err)
	data := out.(map[string]interface{})
	assert.Equal(t, "binance", data["exchange"])
	assert.Equal(t, 0.0001, data["current_funding_rate"])
}

func TestBinanceTransformOpenInterest(t *testing.T) {
	b := NewBinance(core.SourceDescriptor{Name: "binance"})
	out, err := b.Transform(map[string]interface{}{"openInterest": "50000.0", "time": 1700000000000.0}, "open_interest")
	require.Nil(t, err)
	data := out.(map[string]interface{})
	assert.Equal(t, 50000.0, data["open_interest"])
}

func TestBinanceTransformLongShortRatio(t *testing.T) {
	b := NewBinance(core.SourceDescriptor{Name: "binance"})
	out, err := b.Transform(map[string]interface{}{"longAccount": "0.52", "shortAccount": "0.48", "longShortRatio": "1.08"}, "long_short_ratio")
	require.Nil(t, err)
	data := out.(map[string]interface{})
	assert.Equal(t, 0.52, data["long_account_ratio"])
	assert.Equal(t, 1.08, data["long_short_ratio"])
}
