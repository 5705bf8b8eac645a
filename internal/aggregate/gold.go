package aggregate

import (
	"fmt"
	"strconv"

	"github.com/drewfoos/rift-stats/internal/riot"
	"github.com/mitchellh/mapstructure"
)

// Timeline participant ids 1-5 are one side and 6-10 the other.
// Riot orders them that way; nothing in the timeline itself says so.
const (
	TeamSize   = 5
	SideAFirst = 1
	SideBFirst = SideAFirst + TeamSize
)

type ParticipantFrame struct {
	ParticipantID int `mapstructure:"participantId"`
	TotalGold     int `mapstructure:"totalGold"`
}

// Frame is one timeline snapshot; ParticipantFrames is keyed by participant id ("1".."10").
type Frame struct {
	Timestamp         int64                       `mapstructure:"timestamp"`
	ParticipantFrames map[string]ParticipantFrame `mapstructure:"participantFrames"`
}

// TimelineFrames reads info.frames out of a match-v5 timeline document.
func TimelineFrames(timeline riot.Document) ([]Frame, error) {
	var view struct {
		Info struct {
			Frames []Frame `mapstructure:"frames"`
		} `mapstructure:"info"`
	}
	if err := mapstructure.Decode(timeline, &view); err != nil {
		return nil, fmt.Errorf("failed to decode timeline frames: %w", err)
	}
	return view.Info.Frames, nil
}

// GoldDifferential returns, per frame, side A's total gold minus side B's.
func GoldDifferential(frames []Frame) ([]int, error) {
	diffs := make([]int, len(frames))

	for i, frame := range frames {
		sideA, err := sideGold(frame, SideAFirst)
		if err != nil {
			return nil, fmt.Errorf("frame %d: %w", i, err)
		}
		sideB, err := sideGold(frame, SideBFirst)
		if err != nil {
			return nil, fmt.Errorf("frame %d: %w", i, err)
		}
		diffs[i] = sideA - sideB
	}

	return diffs, nil
}

func sideGold(frame Frame, first int) (int, error) {
	total := 0
	for id := first; id < first+TeamSize; id++ {
		pf, ok := frame.ParticipantFrames[strconv.Itoa(id)]
		if !ok {
			return 0, fmt.Errorf("participant %d: %w", id, ErrMissingParticipantFrame)
		}
		total += pf.TotalGold
	}
	return total, nil
}

// CheckTeamSplit reports whether the match's participant ids line up with the side split
// GoldDifferential assumes: ids 1-5 on one team, 6-10 on the other.
func CheckTeamSplit(match riot.Document) (bool, error) {
	var view struct {
		Info struct {
			Participants []struct {
				ParticipantID int `mapstructure:"participantId"`
				TeamID        int `mapstructure:"teamId"`
			} `mapstructure:"participants"`
		} `mapstructure:"info"`
	}
	if err := mapstructure.Decode(match, &view); err != nil {
		return false, fmt.Errorf("%w: %v", ErrMalformedMatch, err)
	}

	teams := map[int]int{}
	for _, p := range view.Info.Participants {
		teams[p.ParticipantID] = p.TeamID
	}

	sideA, sideB := teams[SideAFirst], teams[SideBFirst]
	if sideA == 0 || sideB == 0 || sideA == sideB {
		return false, nil
	}
	for offset := 0; offset < TeamSize; offset++ {
		if teams[SideAFirst+offset] != sideA || teams[SideBFirst+offset] != sideB {
			return false, nil
		}
	}
	return true, nil
}
