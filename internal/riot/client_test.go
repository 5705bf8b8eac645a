package riot

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKey = "RGAPI-secret"

// newTestClient points a client at server; the routing value becomes the first path segment.
func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *test.Hook) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	log, hook := test.NewNullLogger()
	client := New(ClientConfig{
		APIKey:       testKey,
		HostFormat:   server.URL + "/%s",
		MatchRouting: "europe",
		MatchCount:   10,
	}, log)

	return client, hook
}

func TestGetPUUID(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/europe/riot/account/v1/accounts/by-riot-id/foo/bar#1", r.URL.Path)
		assert.Equal(t, testKey, r.URL.Query().Get("api_key"))
		w.Write([]byte(`{"puuid":"p-1","gameName":"foo","tagLine":"bar#1"}`))
	})

	puuid, err := client.GetPUUID(context.Background(), "foo/bar#1")
	require.NoError(t, err)
	assert.Equal(t, "p-1", puuid)
}

func TestGetPUUIDEmptyBody(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	})

	_, err := client.GetPUUID(context.Background(), "foo/bar")
	var upstream *UpstreamError
	require.ErrorAs(t, err, &upstream)
	assert.Equal(t, KindIdentity, upstream.Kind)
}

func TestRoutingSplit(t *testing.T) {
	tests := []struct {
		name     string
		call     func(c *Client) error
		wantPath string
		wantQry  map[string]string
	}{
		{
			name: "summonerUsesPlatform",
			call: func(c *Client) error {
				_, err := c.GetSummoner(context.Background(), "euw1", "p-1")
				return err
			},
			wantPath: "/euw1/lol/summoner/v4/summoners/by-puuid/p-1",
		},
		{
			name: "masteryUsesPlatform",
			call: func(c *Client) error {
				_, err := c.GetChampionMastery(context.Background(), "kr", "p-1")
				return err
			},
			wantPath: "/kr/lol/champion-mastery/v4/champion-masteries/by-puuid/p-1/top",
		},
		{
			name: "leagueUsesPlatform",
			call: func(c *Client) error {
				_, err := c.GetLeagueEntries(context.Background(), "na1", "s-1")
				return err
			},
			wantPath: "/na1/lol/league/v4/entries/by-summoner/s-1",
		},
		{
			name: "matchIdsUseContinent",
			call: func(c *Client) error {
				_, err := c.GetMatchIDs(context.Background(), "p-1")
				return err
			},
			wantPath: "/europe/lol/match/v5/matches/by-puuid/p-1/ids",
			wantQry:  map[string]string{"start": "0", "count": "10"},
		},
		{
			name: "matchUsesContinent",
			call: func(c *Client) error {
				_, err := c.GetMatch(context.Background(), "EUW1_1")
				return err
			},
			wantPath: "/europe/lol/match/v5/matches/EUW1_1",
		},
		{
			name: "timelineUsesContinent",
			call: func(c *Client) error {
				_, err := c.GetTimeline(context.Background(), "EUW1_1")
				return err
			},
			wantPath: "/europe/lol/match/v5/matches/EUW1_1/timeline",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotPath string
			var gotQuery map[string]string
			client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				gotPath = r.URL.Path
				gotQuery = map[string]string{}
				for k := range r.URL.Query() {
					gotQuery[k] = r.URL.Query().Get(k)
				}
				if strings.HasSuffix(r.URL.Path, "/top") || strings.Contains(r.URL.Path, "/ids") ||
					strings.Contains(r.URL.Path, "/entries/") {
					w.Write([]byte(`[]`))
					return
				}
				w.Write([]byte(`{}`))
			})

			require.NoError(t, tt.call(client))
			assert.Equal(t, tt.wantPath, gotPath)
			assert.Equal(t, testKey, gotQuery["api_key"])
			for k, v := range tt.wantQry {
				assert.Equal(t, v, gotQuery[k])
			}
		})
	}
}

func TestNon2xxBecomesUpstreamError(t *testing.T) {
	client, hook := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"status":{"message":"Data not found","status_code":404}}`))
	})

	_, err := client.GetMatch(context.Background(), "EUW1_404")

	var upstream *UpstreamError
	require.ErrorAs(t, err, &upstream)
	assert.Equal(t, KindMatch, upstream.Kind)
	assert.Equal(t, http.StatusNotFound, upstream.Status)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.NotContains(t, err.Error(), testKey)

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.ErrorLevel, entry.Level)
	assert.Equal(t, KindMatch, entry.Data["kind"])
	assert.Equal(t, "/lol/match/v5/matches/EUW1_404", entry.Data["path"])
	assert.NotContains(t, entry.Message, testKey)
}

func TestServerErrorIsNotNotFound(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, err := client.GetTimeline(context.Background(), "EUW1_1")
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrNotFound))
}

func TestDecodeFailure(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	})

	_, err := client.GetMatchIDs(context.Background(), "p-1")
	var upstream *UpstreamError
	require.ErrorAs(t, err, &upstream)
	assert.Equal(t, 0, upstream.Status)
}

func TestBlankParametersSkipIO(t *testing.T) {
	var calls int32
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	})
	ctx := context.Background()

	_, err := client.GetPUUID(ctx, " ")
	assert.ErrorIs(t, err, ErrBlankParameter)
	_, err = client.GetSummoner(ctx, "", "p-1")
	assert.ErrorIs(t, err, ErrBlankParameter)
	_, err = client.GetLeagueEntries(ctx, "euw1", "")
	assert.ErrorIs(t, err, ErrBlankParameter)
	_, err = client.GetMatch(ctx, "")
	assert.ErrorIs(t, err, ErrBlankParameter)

	assert.Equal(t, int32(0), atomic.LoadInt32(&calls))
}

func TestCanceledContextSkipsIO(t *testing.T) {
	var calls int32
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.GetMatch(ctx, "EUW1_1")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, int32(0), atomic.LoadInt32(&calls))
}

func TestContextDeadline(t *testing.T) {
	release := make(chan struct{})
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-time.After(2 * time.Second):
		}
		w.Write([]byte(`{}`))
	})
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := client.GetMatch(ctx, "EUW1_1")
	var upstream *UpstreamError
	require.ErrorAs(t, err, &upstream)
	assert.Equal(t, 0, upstream.Status)
}

func TestNumbersSurviveRoundTrip(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"gameId":7212345678901,"gameStartTimestamp":1700000000123}`))
	})

	match, err := client.GetMatch(context.Background(), "EUW1_1")
	require.NoError(t, err)
	assert.Equal(t, "7212345678901", match["gameId"].(interface{ String() string }).String())
	assert.Equal(t, "1700000000123", match["gameStartTimestamp"].(interface{ String() string }).String())
}
