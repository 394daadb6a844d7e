package entity

// CoinGeckoCoin represents the coin detail response of the CoinGecko API
// (coins/{id} and coins/{platform}/contract/{address} endpoints). Nested
// blocks are pointers so that absent sections unmarshal to nil instead of
// zero structs.
type CoinGeckoCoin struct {
	ID          string               `json:"id"`
	Symbol      string               `json:"symbol"`
	Name        string               `json:"name"`
	Description map[string]string    `json:"description"`
	GenesisDate string               `json:"genesis_date"`
	Platforms   map[string]string    `json:"platforms"`
	Links       *CoinGeckoLinks      `json:"links"`
	MarketData  *CoinGeckoMarketData `json:"market_data"`
}

// CoinGeckoMarketData is the market_data block of a coin detail response.
// Price-like fields are keyed by vs-currency (e.g. "usd").
type CoinGeckoMarketData struct {
	CurrentPrice             map[string]float64 `json:"current_price"`
	PriceChangePercentage24h float64            `json:"price_change_percentage_24h"`
	TotalVolume              map[string]float64 `json:"total_volume"`
	MarketCap                map[string]float64 `json:"market_cap"`
	TotalSupply              *float64           `json:"total_supply"`
}

// CoinGeckoLinks is the links block of a coin detail response.
type CoinGeckoLinks struct {
	Homepage                  []string `json:"homepage"`
	TwitterScreenName         string   `json:"twitter_screen_name"`
	TelegramChannelIdentifier string   `json:"telegram_channel_identifier"`
}

// CoinGeckoSearchResult is the response of the free-text search endpoint.
type CoinGeckoSearchResult struct {
	Coins []CoinGeckoSearchCoin `json:"coins"`
}

// CoinGeckoSearchCoin is a single search candidate.
type CoinGeckoSearchCoin struct {
	ID            string `json:"id"`
	Symbol        string `json:"symbol"`
	Name          string `json:"name"`
	MarketCapRank int    `json:"market_cap_rank"`
}
