package testutil

import (
	"context"
	"fmt"
	"strconv"

	"github.com/drewfoos/rift-stats/internal/riot"
	"github.com/stretchr/testify/mock"
)

// MockSource is a testify mock of the Riot client calls the aggregator makes.
type MockSource struct {
	mock.Mock
}

func (m *MockSource) GetMatchIDs(ctx context.Context, puuid string) ([]string, error) {
	args := m.Called(ctx, puuid)
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockSource) GetMatch(ctx context.Context, matchID string) (riot.Document, error) {
	args := m.Called(ctx, matchID)
	return args.Get(0).(riot.Document), args.Error(1)
}

func (m *MockSource) GetSummoner(ctx context.Context, region, puuid string) (riot.Document, error) {
	args := m.Called(ctx, region, puuid)
	return args.Get(0).(riot.Document), args.Error(1)
}

func (m *MockSource) GetLeagueEntries(ctx context.Context, region, summonerID string) ([]riot.Document, error) {
	args := m.Called(ctx, region, summonerID)
	return args.Get(0).([]riot.Document), args.Error(1)
}

// NewMatchDocument builds a match-v5 shaped document with one participant per puuid.
// Participants get ids 1..n and the first five are on team 100.
func NewMatchDocument(matchID string, queueID int, puuids ...string) riot.Document {
	metadataParticipants := make([]any, len(puuids))
	infoParticipants := make([]any, len(puuids))

	for i, puuid := range puuids {
		teamID := 100
		if i >= 5 {
			teamID = 200
		}
		metadataParticipants[i] = puuid
		infoParticipants[i] = map[string]any{
			"puuid":         puuid,
			"participantId": i + 1,
			"teamId":        teamID,
			"championName":  fmt.Sprintf("Champion%d", i),
			"kills":         i,
		}
	}

	return riot.Document{
		"metadata": map[string]any{
			"matchId":      matchID,
			"participants": metadataParticipants,
		},
		"info": map[string]any{
			"queueId":      queueID,
			"participants": infoParticipants,
		},
	}
}

// NewTimelineDocument builds a timeline with one frame per gold row; row[i] is participant i+1.
func NewTimelineDocument(goldRows ...[]int) riot.Document {
	frames := make([]any, len(goldRows))

	for i, row := range goldRows {
		participantFrames := map[string]any{}
		for j, gold := range row {
			id := j + 1
			participantFrames[strconv.Itoa(id)] = map[string]any{
				"participantId": id,
				"totalGold":     gold,
				"currentGold":   gold / 2,
			}
		}
		frames[i] = map[string]any{
			"timestamp":         int64(i) * 60000,
			"participantFrames": participantFrames,
			"events":            []any{},
		}
	}

	return riot.Document{
		"metadata": map[string]any{"matchId": "EUW1_1"},
		"info": map[string]any{
			"frameInterval": 60000,
			"frames":        frames,
		},
	}
}
