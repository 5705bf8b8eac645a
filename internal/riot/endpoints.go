package riot

import (
	"context"
	"net/url"
	"strconv"
)

// GetPUUID resolves a riot id ("name/tag") to the player's puuid.
func (c *Client) GetPUUID(ctx context.Context, riotID string) (string, error) {
	if err := requireParams(KindIdentity, riotID); err != nil {
		return "", err
	}

	path := "/riot/account/v1/accounts/by-riot-id/" + escapeSegments(riotID)

	var account struct {
		PUUID string `json:"puuid"`
	}
	if err := c.get(ctx, KindIdentity, c.matchRouting, path, nil, &account); err != nil {
		return "", err
	}
	if account.PUUID == "" {
		return "", c.fail(KindIdentity, path, 0, errEmptyPUUID)
	}

	return account.PUUID, nil
}

// GetSummoner fetches the platform account; its "id" is the key for league entries.
func (c *Client) GetSummoner(ctx context.Context, region, puuid string) (Document, error) {
	if err := requireParams(KindSummoner, region, puuid); err != nil {
		return nil, err
	}

	var summoner Document
	path := "/lol/summoner/v4/summoners/by-puuid/" + url.PathEscape(puuid)
	if err := c.get(ctx, KindSummoner, region, path, nil, &summoner); err != nil {
		return nil, err
	}
	return summoner, nil
}

// GetChampionMastery fetches the player's top champion masteries.
func (c *Client) GetChampionMastery(ctx context.Context, region, puuid string) ([]Document, error) {
	if err := requireParams(KindMastery, region, puuid); err != nil {
		return nil, err
	}

	var mastery []Document
	path := "/lol/champion-mastery/v4/champion-masteries/by-puuid/" + url.PathEscape(puuid) + "/top"
	if err := c.get(ctx, KindMastery, region, path, nil, &mastery); err != nil {
		return nil, err
	}
	return mastery, nil
}

// GetLeagueEntries fetches one entry per ranked queue the summoner has played.
func (c *Client) GetLeagueEntries(ctx context.Context, region, summonerID string) ([]Document, error) {
	if err := requireParams(KindLeague, region, summonerID); err != nil {
		return nil, err
	}

	var entries []Document
	path := "/lol/league/v4/entries/by-summoner/" + url.PathEscape(summonerID)
	if err := c.get(ctx, KindLeague, region, path, nil, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// GetMatchIDs returns the most recent match ids, newest first.
func (c *Client) GetMatchIDs(ctx context.Context, puuid string) ([]string, error) {
	if err := requireParams(KindMatchIDs, puuid); err != nil {
		return nil, err
	}

	query := url.Values{
		"start": {"0"},
		"count": {strconv.Itoa(c.matchCount)},
	}

	var matchIDs []string
	path := "/lol/match/v5/matches/by-puuid/" + url.PathEscape(puuid) + "/ids"
	if err := c.get(ctx, KindMatchIDs, c.matchRouting, path, query, &matchIDs); err != nil {
		return nil, err
	}
	return matchIDs, nil
}

func (c *Client) GetMatch(ctx context.Context, matchID string) (Document, error) {
	if err := requireParams(KindMatch, matchID); err != nil {
		return nil, err
	}

	var match Document
	path := "/lol/match/v5/matches/" + url.PathEscape(matchID)
	if err := c.get(ctx, KindMatch, c.matchRouting, path, nil, &match); err != nil {
		return nil, err
	}
	return match, nil
}

func (c *Client) GetTimeline(ctx context.Context, matchID string) (Document, error) {
	if err := requireParams(KindTimeline, matchID); err != nil {
		return nil, err
	}

	var timeline Document
	path := "/lol/match/v5/matches/" + url.PathEscape(matchID) + "/timeline"
	if err := c.get(ctx, KindTimeline, c.matchRouting, path, nil, &timeline); err != nil {
		return nil, err
	}
	return timeline, nil
}
