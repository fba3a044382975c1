package ncaa

import (
	"net/url"
	"time"

	"github.com/preston-bernstein/ncaa-baseball-service/internal/timeutil"
)

func (c *Client) scoreboardURL(day time.Time) string {
	return c.baseURL + "/scoreboard" + sportPath + "/" + timeutil.SlashDate(day)
}

func (c *Client) boxScoreURL(gameID string) string {
	return c.baseURL + "/game/" + url.PathEscape(gameID) + "/boxscore"
}

func (c *Client) playByPlayURL(gameID string) string {
	return c.baseURL + "/game/" + url.PathEscape(gameID) + "/play-by-play"
}

func (c *Client) standingsURL() string {
	return c.baseURL + "/standings" + sportPath
}

func (c *Client) rankingsURL() string {
	return c.baseURL + "/rankings" + sportPath + "/" + url.PathEscape(c.rankingsPoll)
}
