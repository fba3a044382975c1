package ncaa

import "time"

const (
	defaultBaseURL      = "https://ncaa-api.henrygd.me"
	defaultCacheTTL     = 2 * time.Minute
	defaultRateLimit    = 5
	defaultRankingsPoll = "d1baseball-top-25"
	sportPath           = "/baseball/d1"
)
