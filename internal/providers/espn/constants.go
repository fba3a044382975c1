package espn

import "time"

const (
	defaultBaseURL   = "https://site.api.espn.com/apis"
	sportPath        = "/sports/baseball/college-baseball"
	defaultCacheTTL  = 30 * time.Second
	scoreboardLimit  = 300
	unrankedSentinel = 99
)
