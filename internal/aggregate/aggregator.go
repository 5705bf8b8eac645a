package aggregate

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/drewfoos/rift-stats/internal/config"
	"github.com/drewfoos/rift-stats/internal/riot"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

var (
	ErrParticipantNotFound     = errors.New("participant not found")
	ErrMalformedMatch          = errors.New("malformed match")
	ErrMissingParticipantFrame = errors.New("missing participant frame")
	ErrMissingSummonerID       = errors.New("account carried no summoner id")
)

// MatchSource is the part of the Riot client the match aggregator needs.
type MatchSource interface {
	GetMatchIDs(ctx context.Context, puuid string) ([]string, error)
	GetMatch(ctx context.Context, matchID string) (riot.Document, error)
}

// RankSource is the part of the Riot client participant enrichment needs.
type RankSource interface {
	GetSummoner(ctx context.Context, region, puuid string) (riot.Document, error)
	GetLeagueEntries(ctx context.Context, region, summonerID string) ([]riot.Document, error)
}

type Source interface {
	MatchSource
	RankSource
}

// MaxInFlight caps the concurrent upstream calls of one fan-out.
const MaxInFlight = 10

type Options struct {
	MatchPolicy config.Policy
	RankPolicy  config.Policy
}

// Aggregator fans out the dependent Riot calls behind both endpoints.
type Aggregator struct {
	src  Source
	log  logrus.FieldLogger
	opts Options
}

func New(src Source, log logrus.FieldLogger, opts Options) *Aggregator {
	return &Aggregator{src: src, log: log, opts: opts}
}

// FetchMatches loads the recent match ids of puuid, then every match detail concurrently.
// The result follows the id order. Under PolicyTolerate a failed match leaves a nil entry.
func (a *Aggregator) FetchMatches(ctx context.Context, puuid string) ([]riot.Document, error) {
	matchIDs, err := a.src.GetMatchIDs(ctx, puuid)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch match ids: %w", err)
	}

	matches := make([]riot.Document, len(matchIDs))

	if a.opts.MatchPolicy == config.PolicyAbort {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(MaxInFlight)
		for i, matchID := range matchIDs {
			i, matchID := i, matchID
			g.Go(func() error {
				match, err := a.src.GetMatch(gctx, matchID)
				if err != nil {
					return fmt.Errorf("failed to fetch match %s: %w", matchID, err)
				}
				matches[i] = match
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
		return matches, nil
	}

	var wg sync.WaitGroup
	sem := make(chan struct{}, MaxInFlight)
	for i, matchID := range matchIDs {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, matchID string) {
			defer wg.Done()
			defer func() { <-sem }()

			match, err := a.src.GetMatch(ctx, matchID)
			if err != nil {
				a.log.WithField("matchId", matchID).WithError(err).Warn("match left out of the list")
				return
			}
			matches[i] = match
		}(i, matchID)
	}
	wg.Wait()

	return matches, nil
}

// PlayerPerformances projects the stats of puuid out of matches.
// Under PolicyAbort a match that can't be projected fails the call; otherwise it is logged and left nil.
func (a *Aggregator) PlayerPerformances(matches []riot.Document, puuid string) ([]riot.Document, error) {
	stats, err := ProjectPlayerStats(matches, puuid)
	if err != nil {
		if a.opts.MatchPolicy == config.PolicyAbort {
			return nil, fmt.Errorf("failed to project player stats: %w", err)
		}
		a.log.WithField("puuid", puuid).WithError(err).Warn("player performances left incomplete")
	}
	return stats, nil
}

// EnrichParticipantRanks stores the league entries of every participant under RankField.
// Participants are resolved concurrently through region, which comes from the request.
func (a *Aggregator) EnrichParticipantRanks(ctx context.Context, region string, match riot.Document) error {
	participants, err := infoParticipants(match)
	if err != nil {
		return err
	}

	if a.opts.RankPolicy == config.PolicyAbort {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(MaxInFlight)
		for _, participant := range participants {
			participant := participant
			g.Go(func() error {
				rank, err := a.participantRank(gctx, region, participant)
				if err != nil {
					return err
				}
				participant[RankField] = rank
				return nil
			})
		}
		return g.Wait()
	}

	var wg sync.WaitGroup
	sem := make(chan struct{}, MaxInFlight)
	for _, participant := range participants {
		wg.Add(1)
		sem <- struct{}{}
		go func(participant map[string]any) {
			defer wg.Done()
			defer func() { <-sem }()

			rank, err := a.participantRank(ctx, region, participant)
			if err != nil {
				a.log.WithField("puuid", participant["puuid"]).WithError(err).Warn("participant rank left empty")
				participant[RankField] = nil
				return
			}
			participant[RankField] = rank
		}(participant)
	}
	wg.Wait()

	return nil
}

// participantRank chains the account lookup into the league entries lookup.
func (a *Aggregator) participantRank(ctx context.Context, region string, participant map[string]any) ([]riot.Document, error) {
	puuid, _ := participant["puuid"].(string)

	summoner, err := a.src.GetSummoner(ctx, region, puuid)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch account of %s: %w", puuid, err)
	}

	account, err := ReadAccountRef(summoner)
	if err != nil {
		return nil, err
	}

	entries, err := a.src.GetLeagueEntries(ctx, region, account.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch league entries of %s: %w", puuid, err)
	}
	return entries, nil
}

// infoParticipants returns the participant records of a match so they can be edited in place.
func infoParticipants(match riot.Document) ([]map[string]any, error) {
	info, ok := asObject(match["info"])
	if !ok {
		return nil, fmt.Errorf("%w: no info object", ErrMalformedMatch)
	}

	raw, ok := info["participants"].([]any)
	if !ok {
		return nil, fmt.Errorf("%w: no participants list", ErrMalformedMatch)
	}

	participants := make([]map[string]any, len(raw))
	for i, p := range raw {
		participant, ok := asObject(p)
		if !ok {
			return nil, fmt.Errorf("%w: participant %d is not an object", ErrMalformedMatch, i)
		}
		participants[i] = participant
	}
	return participants, nil
}

func asObject(v any) (map[string]any, bool) {
	switch obj := v.(type) {
	case map[string]any:
		return obj, true
	case riot.Document:
		return obj, true
	}
	return nil, false
}

// AccountRef is the part of the summoner-v4 account used as a join key.
type AccountRef struct {
	ID    string `mapstructure:"id"`
	PUUID string `mapstructure:"puuid"`
}

func ReadAccountRef(summoner riot.Document) (AccountRef, error) {
	var ref AccountRef
	if err := mapstructure.Decode(summoner, &ref); err != nil {
		return ref, fmt.Errorf("failed to decode account: %w", err)
	}
	if ref.ID == "" {
		return ref, ErrMissingSummonerID
	}
	return ref, nil
}
