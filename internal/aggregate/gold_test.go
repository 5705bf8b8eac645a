package aggregate_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/drewfoos/rift-stats/internal/aggregate"
	"github.com/drewfoos/rift-stats/internal/riot"
	"github.com/drewfoos/rift-stats/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGoldDifferential(t *testing.T) {
	tests := []struct {
		name string
		rows [][]int
		want []int
	}{
		{
			name: "sideAAhead",
			rows: [][]int{{100, 200, 300, 400, 500, 50, 60, 70, 80, 90}},
			want: []int{1150},
		},
		{
			name: "sideBAhead",
			rows: [][]int{{500, 500, 500, 500, 500, 600, 600, 600, 600, 600}},
			want: []int{-500},
		},
		{
			name: "severalFrames",
			rows: [][]int{
				{500, 500, 500, 500, 500, 500, 500, 500, 500, 500},
				{1000, 900, 800, 700, 600, 500, 500, 500, 500, 500},
				{0, 0, 0, 0, 0, 0, 0, 0, 0, 1},
			},
			want: []int{0, 1500, -1},
		},
		{
			name: "noFrames",
			rows: [][]int{},
			want: []int{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frames, err := aggregate.TimelineFrames(testutil.NewTimelineDocument(tt.rows...))
			require.NoError(t, err)

			got, err := aggregate.GoldDifferential(frames)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGoldDifferentialMissingParticipant(t *testing.T) {
	frames, err := aggregate.TimelineFrames(testutil.NewTimelineDocument(
		[]int{1, 1, 1, 1, 1, 1, 1, 1, 1, 1},
		[]int{1, 1, 1, 1, 1, 1, 1, 1, 1},
	))
	require.NoError(t, err)

	_, err = aggregate.GoldDifferential(frames)
	assert.ErrorIs(t, err, aggregate.ErrMissingParticipantFrame)
	assert.ErrorContains(t, err, "frame 1")
	assert.ErrorContains(t, err, "participant 10")
}

// Documents coming from the client carry json.Number values.
func TestTimelineFramesFromJSON(t *testing.T) {
	body := `{"info":{"frames":[{"timestamp":60012,"participantFrames":{
		"1":{"totalGold":100},"2":{"totalGold":200},"3":{"totalGold":300},"4":{"totalGold":400},"5":{"totalGold":500},
		"6":{"totalGold":50},"7":{"totalGold":60},"8":{"totalGold":70},"9":{"totalGold":80},"10":{"totalGold":90}}}]}}`

	var timeline riot.Document
	decoder := json.NewDecoder(bytes.NewReader([]byte(body)))
	decoder.UseNumber()
	require.NoError(t, decoder.Decode(&timeline))

	frames, err := aggregate.TimelineFrames(timeline)
	require.NoError(t, err)
	require.Len(t, frames, 1)
	assert.Equal(t, int64(60012), frames[0].Timestamp)

	diffs, err := aggregate.GoldDifferential(frames)
	require.NoError(t, err)
	assert.Equal(t, []int{1150}, diffs)
}

func TestCheckTeamSplit(t *testing.T) {
	players := []string{"p-1", "p-2", "p-3", "p-4", "p-5", "p-6", "p-7", "p-8", "p-9", "p-10"}

	ok, err := aggregate.CheckTeamSplit(testutil.NewMatchDocument("EUW1_1", 420, players...))
	require.NoError(t, err)
	assert.True(t, ok)

	swapped := testutil.NewMatchDocument("EUW1_2", 420, players...)
	participants := swapped["info"].(map[string]any)["participants"].([]any)
	participants[0].(map[string]any)["teamId"] = 200
	participants[9].(map[string]any)["teamId"] = 100

	ok, err = aggregate.CheckTeamSplit(swapped)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = aggregate.CheckTeamSplit(testutil.NewMatchDocument("EUW1_3", 1700, "p-1", "p-2"))
	require.NoError(t, err)
	assert.False(t, ok)
}
