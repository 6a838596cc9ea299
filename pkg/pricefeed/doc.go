// Package pricefeed fetches the BTC/USD spot price from a fixed, ordered
// list of public HTTP APIs.
//
// Providers are data: a name, a URL, optional headers and timeout, and an
// Extractor that reads the price from the decoded JSON body. Chain.Fetch
// tries them strictly one after another, each under its own deadline, and
// returns on the first positive numeric value. Any failure (transport
// error, timeout, non-2xx status, malformed body, missing field) is logged
// and the next provider is tried. When the list is exhausted Fetch returns
// a static fallback quote marked with FallbackSource, optionally perturbed
// by a small bounded random offset.
//
// Prices are handled as github.com/shopspring/decimal values and always
// formatted with two fraction digits.
//
// The built-in list (CoinGecko, Binance, CoinCap, Blockchain.com) can be
// replaced with a YAML file, see LoadProviders.
package pricefeed
