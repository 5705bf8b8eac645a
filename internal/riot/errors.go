package riot

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind names the upstream resource an operation reads.
type Kind string

const (
	KindIdentity Kind = "account-by-riot-id"
	KindSummoner Kind = "summoner-by-puuid"
	KindMastery  Kind = "champion-mastery"
	KindLeague   Kind = "league-entries"
	KindMatchIDs Kind = "match-ids"
	KindMatch    Kind = "match"
	KindTimeline Kind = "match-timeline"
)

var (
	ErrNotFound       = errors.New("resource not found")
	ErrBlankParameter = errors.New("blank parameter")
	ErrUnknownRegion  = errors.New("unknown region")
)

// UpstreamError is returned for every failed call to the Riot API.
// Status is zero when the request never produced a response.
type UpstreamError struct {
	Kind   Kind
	Status int
	Cause  error
}

func (e *UpstreamError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("riot %s: API returned status code %d", e.Kind, e.Status)
	}
	return fmt.Sprintf("riot %s: %v", e.Kind, e.Cause)
}

func (e *UpstreamError) Unwrap() error {
	return e.Cause
}

// Is lets callers match a 404 with errors.Is(err, ErrNotFound).
func (e *UpstreamError) Is(target error) bool {
	return target == ErrNotFound && e.Status == http.StatusNotFound
}
