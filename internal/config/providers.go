package config

// ESPNConfig configures the ESPN site API client.
type ESPNConfig struct {
	BaseURL  string
	CacheTTL Duration
}

// NCAAConfig configures the NCAA API client.
type NCAAConfig struct {
	BaseURL      string
	CacheTTL     Duration
	RateLimit    int
	RankingsPoll string
}

func loadESPN() ESPNConfig {
	return ESPNConfig{
		BaseURL:  envOrDefault(envESPNBaseURL, defaultESPNBaseURL),
		CacheTTL: durationEnvOrDefault(envESPNCacheTTL, defaultESPNCacheTTL),
	}
}

func loadNCAA() NCAAConfig {
	return NCAAConfig{
		BaseURL:      envOrDefault(envNCAABaseURL, defaultNCAABaseURL),
		CacheTTL:     durationEnvOrDefault(envNCAACacheTTL, defaultNCAACacheTTL),
		RateLimit:    intEnvOrDefault(envNCAARateLimit, defaultNCAARateLimit),
		RankingsPoll: envOrDefault(envNCAARankingsPoll, defaultNCAARankingsPoll),
	}
}
