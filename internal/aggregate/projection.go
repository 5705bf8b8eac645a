package aggregate

import (
	"errors"
	"fmt"
	"slices"

	"github.com/drewfoos/rift-stats/internal/riot"
	"github.com/mitchellh/mapstructure"
)

// Fields added on top of the Riot payloads.
const (
	MatchIDField          = "matchID"
	QueueDescriptionField = "queueDescription"
	RankField             = "rank"
)

// matchView is the join-relevant slice of a match-v5 document.
// metadata.participants[i] and info.participants[i] describe the same player.
type matchView struct {
	Metadata struct {
		MatchID      string   `mapstructure:"matchId"`
		Participants []string `mapstructure:"participants"`
	} `mapstructure:"metadata"`
	Info struct {
		QueueID      int              `mapstructure:"queueId"`
		Participants []map[string]any `mapstructure:"participants"`
	} `mapstructure:"info"`
}

// ProjectPlayerStats picks the stat record of puuid out of every match.
// The output has one entry per input match; nil matches and failed matches give nil entries,
// and the failures are joined into the returned error.
func ProjectPlayerStats(matches []riot.Document, puuid string) ([]riot.Document, error) {
	stats := make([]riot.Document, len(matches))

	var errs []error
	for i, match := range matches {
		if match == nil {
			continue
		}

		stat, err := projectPlayerStat(match, puuid)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		stats[i] = stat
	}

	return stats, errors.Join(errs...)
}

func projectPlayerStat(match riot.Document, puuid string) (riot.Document, error) {
	var view matchView
	if err := mapstructure.Decode(match, &view); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedMatch, err)
	}

	index := slices.Index(view.Metadata.Participants, puuid)
	if index < 0 {
		return nil, fmt.Errorf("match %s: %w", view.Metadata.MatchID, ErrParticipantNotFound)
	}
	if index >= len(view.Info.Participants) {
		return nil, fmt.Errorf("match %s: %w: participant %d has no stat record",
			view.Metadata.MatchID, ErrMalformedMatch, index)
	}

	participant := view.Info.Participants[index]
	stat := make(riot.Document, len(participant)+2)
	for k, v := range participant {
		stat[k] = v
	}
	stat[MatchIDField] = view.Metadata.MatchID
	stat[QueueDescriptionField] = riot.QueueDescription(view.Info.QueueID)

	return stat, nil
}
