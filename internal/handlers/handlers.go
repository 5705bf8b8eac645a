package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/drewfoos/rift-stats/internal/aggregate"
	"github.com/drewfoos/rift-stats/internal/config"
	"github.com/drewfoos/rift-stats/internal/riot"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Upstream is every Riot call the two endpoints make.
type Upstream interface {
	aggregate.Source
	GetPUUID(ctx context.Context, riotID string) (string, error)
	GetChampionMastery(ctx context.Context, region, puuid string) ([]riot.Document, error)
	GetTimeline(ctx context.Context, matchID string) (riot.Document, error)
}

type Dependencies struct {
	Riot   Upstream
	Log    logrus.FieldLogger
	Config *config.Config
}

type Handler struct {
	riot       Upstream
	aggregator *aggregate.Aggregator
	log        logrus.FieldLogger
}

func New(deps *Dependencies) *Handler {
	return &Handler{
		riot: deps.Riot,
		aggregator: aggregate.New(deps.Riot, deps.Log, aggregate.Options{
			MatchPolicy: deps.Config.MatchFailurePolicy,
			RankPolicy:  deps.Config.RankFailurePolicy,
		}),
		log: deps.Log,
	}
}

// Register mounts the endpoints on router, which carries the base path.
func (h *Handler) Register(router fiber.Router) {
	router.Get("/demo", Demo)
	router.Get("/:region/summoner/:userId", h.Summary)
	router.Get("/:region/match/:id", h.Match)
}

type SummaryResponse struct {
	AccountInfo        riot.Document   `json:"accountInfo"`
	ChampionMastery    []riot.Document `json:"championMastery"`
	GameModesStats     []riot.Document `json:"gameModesStats"`
	MatchList          []riot.Document `json:"matchList"`
	PlayerPerformances []riot.Document `json:"playerPerformances"`
}

type MatchResponse struct {
	MatchInfo      riot.Document `json:"matchInfo"`
	MatchTimeline  riot.Document `json:"matchTimeline"`
	GoldDifference []int         `json:"goldDifference"`
}

// Summary handles GET /:region/summoner/:userId, where userId is "name+tag".
func (h *Handler) Summary(c *fiber.Ctx) error {
	region, err := regionParam(c)
	if err != nil {
		return err
	}

	// The raw segment is unescaped here: a literal '+' separates name and tag.
	userID, err := url.PathUnescape(utils.CopyString(c.Params("userId")))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid user id")
	}
	riotID, err := riot.ParseRiotID(userID)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid user id")
	}

	ctx := c.UserContext()

	puuid, err := h.riot.GetPUUID(ctx, riotID)
	if err != nil {
		return fmt.Errorf("failed to resolve riot id %s: %w", riotID, err)
	}

	accountInfo, err := h.riot.GetSummoner(ctx, region, puuid)
	if err != nil {
		return fmt.Errorf("failed to fetch account: %w", err)
	}
	account, err := aggregate.ReadAccountRef(accountInfo)
	if err != nil {
		return err
	}

	resp := SummaryResponse{AccountInfo: accountInfo}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if resp.ChampionMastery, err = h.riot.GetChampionMastery(gctx, region, puuid); err != nil {
			return fmt.Errorf("failed to fetch champion mastery: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if resp.GameModesStats, err = h.riot.GetLeagueEntries(gctx, region, account.ID); err != nil {
			return fmt.Errorf("failed to fetch league entries: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		resp.MatchList, err = h.aggregator.FetchMatches(gctx, puuid)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	if resp.PlayerPerformances, err = h.aggregator.PlayerPerformances(resp.MatchList, puuid); err != nil {
		return err
	}

	return c.JSON(resp)
}

// Match handles GET /:region/match/:id.
func (h *Handler) Match(c *fiber.Ctx) error {
	region, err := regionParam(c)
	if err != nil {
		return err
	}

	matchID, err := url.PathUnescape(utils.CopyString(c.Params("id")))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid match id")
	}
	ctx := c.UserContext()

	var resp MatchResponse

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if resp.MatchInfo, err = h.riot.GetMatch(gctx, matchID); err != nil {
			return fmt.Errorf("failed to fetch match %s: %w", matchID, err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if resp.MatchTimeline, err = h.riot.GetTimeline(gctx, matchID); err != nil {
			return fmt.Errorf("failed to fetch timeline of %s: %w", matchID, err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}

	if err := h.aggregator.EnrichParticipantRanks(ctx, region, resp.MatchInfo); err != nil {
		return fmt.Errorf("failed to enrich participants of %s: %w", matchID, err)
	}

	frames, err := aggregate.TimelineFrames(resp.MatchTimeline)
	if err != nil {
		return err
	}
	if resp.GoldDifference, err = aggregate.GoldDifferential(frames); err != nil {
		return fmt.Errorf("failed to compute gold difference of %s: %w", matchID, err)
	}

	if ok, err := aggregate.CheckTeamSplit(resp.MatchInfo); err == nil && !ok {
		h.log.WithField("matchId", matchID).Warn("participant ids don't split into teams 1-5 and 6-10")
	}

	return c.JSON(resp)
}

func regionParam(c *fiber.Ctx) (string, error) {
	region, err := riot.NormalizeRegion(c.Params("region"))
	if err != nil {
		return "", fiber.NewError(fiber.StatusBadRequest, "Invalid region")
	}
	return region, nil
}

type demoUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

var demoUsers = []demoUser{
	{ID: "001", Name: "Smith", Email: "smith@gmail.com"},
	{ID: "002", Name: "Sam", Email: "sam@gmail.com"},
	{ID: "003", Name: "lily", Email: "lily@gmail.com"},
}

// Demo returns a fixed list for smoke-testing a deployment without calling Riot.
func Demo(c *fiber.Ctx) error {
	return c.JSON(demoUsers)
}

func Health(c *fiber.Ctx) error {
	return c.SendString("Server is healthy")
}

// ErrorHandler logs the cause and answers with a generic body.
// Only client errors raised with fiber.NewError keep their own message.
func ErrorHandler(log logrus.FieldLogger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) && fiberErr.Code < fiber.StatusInternalServerError {
			return c.Status(fiberErr.Code).JSON(fiber.Map{"error": fiberErr.Message})
		}

		log.WithFields(logrus.Fields{
			"method": c.Method(),
			"path":   c.Path(),
		}).WithError(err).Error("request failed")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal Server Error"})
	}
}
