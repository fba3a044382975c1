package espn

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/preston-bernstein/ncaa-baseball-service/internal/timeutil"
)

func (c *Client) siteURL(resource string, query url.Values) string {
	u := c.baseURL + "/site/v2" + sportPath + "/" + resource
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

func (c *Client) scoreboardURL(day time.Time) string {
	return c.siteURL("scoreboard", url.Values{
		"dates": []string{timeutil.CompactDate(day)},
		"limit": []string{strconv.Itoa(scoreboardLimit)},
	})
}

func (c *Client) summaryURL(gameID string) string {
	return c.siteURL("summary", url.Values{"event": []string{gameID}})
}

func (c *Client) rankingsURL(week string) string {
	q := url.Values{}
	if week = strings.TrimSpace(week); week != "" {
		q.Set("weeks", week)
	}
	return c.siteURL("rankings", q)
}

func (c *Client) standingsURL(season string) string {
	u := c.baseURL + "/v2" + sportPath + "/standings"
	if season = strings.TrimSpace(season); season != "" {
		u += "?" + url.Values{"season": []string{season}}.Encode()
	}
	return u
}
