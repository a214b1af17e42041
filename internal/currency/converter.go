// Package currency converts prices between currencies using a cached
// exchange-rate table fetched from an external provider.
package currency

import (
	"fmt"
	"strings"
	"time"

	"github.com/guonaihong/gout"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/brightline/catalogd/config"
	"github.com/brightline/catalogd/internal/cachestore"
	"github.com/brightline/catalogd/internal/domain"
)

const cacheKeyPrefix = "exchange_rate_"

// RateTable maps target currency codes to conversion multipliers relative
// to the base currency.
type RateTable map[string]float64

// providerPayload is the rate-provider response shape:
// GET <endpoint>/<FROM> -> {"result": "success", "rates": {"EUR": 0.9, ...}}
type providerPayload struct {
	Result string             `json:"result"`
	Rates  map[string]float64 `json:"rates"`
}

type Converter struct {
	cache    cachestore.Store
	endpoint string
	timeout  time.Duration
	cacheTTL time.Duration
}

func NewConverter(cache cachestore.Store, cfg config.CurrencyConfig) *Converter {
	timeout := time.Duration(cfg.FetchTimeout) * time.Second
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Converter{
		cache:    cache,
		endpoint: strings.TrimRight(cfg.ProviderEndpoint, "/"),
		timeout:  timeout,
		cacheTTL: time.Duration(cfg.CacheTTL) * time.Second,
	}
}

// Convert converts amount from one currency to another using the rate
// table for the source currency, rounding half-up to two decimal places.
// Converting a currency to itself still performs the lookup and rounding.
func (c *Converter) Convert(from string, amount decimal.Decimal, to string) (decimal.Decimal, error) {
	from = strings.ToUpper(from)
	to = strings.ToUpper(to)

	rates, err := c.ExchangeRates(from)
	if err != nil {
		return decimal.Zero, err
	}

	rate, ok := rates[to]
	if !ok {
		return decimal.Zero, errors.Wrapf(domain.ErrUpstreamData,
			"no rate from %s to %s", from, to)
	}

	return amount.Mul(decimal.NewFromFloat(rate)).Round(2), nil
}

// ExchangeRates returns the rate table for the given base currency,
// cache-first. A miss fetches from the provider and stores the table with
// the configured TTL; a provider outage is a hard failure even if a
// recently expired entry exists.
func (c *Converter) ExchangeRates(from string) (RateTable, error) {
	from = strings.ToUpper(from)
	key := cacheKeyPrefix + from

	cached, err := c.cache.Get(key)
	if err == nil && cached != nil {
		var rates RateTable
		if err := jsoniter.Unmarshal(cached, &rates); err == nil {
			return rates, nil
		}
		// unreadable entry, fall through to a fresh fetch
		_ = c.cache.Delete(key)
	}

	rates, err := c.fetchRates(from)
	if err != nil {
		return nil, err
	}

	data, err := jsoniter.Marshal(rates)
	if err != nil {
		return nil, errors.Wrap(domain.ErrSerialization, err.Error())
	}
	if err := c.cache.Set(key, data, c.cacheTTL); err != nil {
		return nil, errors.Wrapf(domain.ErrSerialization, "cache rates for %s: %v", from, err)
	}

	return rates, nil
}

func (c *Converter) fetchRates(from string) (RateTable, error) {
	var payload providerPayload
	var code int

	url := fmt.Sprintf("%s/%s", c.endpoint, from)
	err := gout.GET(url).
		SetTimeout(c.timeout).
		Code(&code).
		BindJSON(&payload).
		Do()
	if err != nil {
		return nil, errors.Wrapf(domain.ErrUpstream, "fetch rates for %s: %v", from, err)
	}
	if code != 200 {
		return nil, errors.Wrapf(domain.ErrUpstream, "rate provider returned status %d for %s", code, from)
	}
	if payload.Result != "success" {
		return nil, errors.Wrapf(domain.ErrUpstream, "rate provider result %q for %s", payload.Result, from)
	}
	if len(payload.Rates) == 0 {
		return nil, errors.Wrapf(domain.ErrUpstreamData, "empty rate table for %s", from)
	}

	return RateTable(payload.Rates), nil
}
