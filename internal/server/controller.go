package server

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/lgbarn/pgnview-go/internal/errors"
	"github.com/lgbarn/pgnview-go/internal/library"
	"github.com/lgbarn/pgnview-go/internal/output"
	"github.com/lgbarn/pgnview-go/internal/store"
)

// GameSummary is one entry of the game list.
type GameSummary struct {
	ID      string           `json:"id"`
	Tags    []output.TagJSON `json:"tags"`
	AddedAt time.Time        `json:"addedAt"`
}

// GameDetail is a game with its parsed movetext.
type GameDetail struct {
	output.GameJSON
	AddedAt time.Time `json:"addedAt"`
}

// addRequest is the JSON form of a submission.
type addRequest struct {
	PGN string `json:"pgn"`
}

// GameController handles the /api/games routes.
type GameController struct {
	lib *library.Library
}

// NewGameController creates a controller over lib.
func NewGameController(lib *library.Library) *GameController {
	return &GameController{lib: lib}
}

func summary(rec store.Record) GameSummary {
	return GameSummary{ID: rec.ID, Tags: output.TagsToJSON(rec.Tags), AddedAt: rec.AddedAt}
}

// ListGames returns every stored game, oldest first.
func (gc *GameController) ListGames(c *fiber.Ctx) error {
	recs, err := gc.lib.List(c.UserContext())
	if err != nil {
		return err
	}
	out := make([]GameSummary, 0, len(recs))
	for _, rec := range recs {
		out = append(out, summary(rec))
	}
	return c.JSON(out)
}

// AddGame stores a PGN sent as the raw body or as {"pgn": "..."}.
func (gc *GameController) AddGame(c *fiber.Ctx) error {
	text := string(c.Body())
	if strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEApplicationJSON) {
		var req addRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid JSON body")
		}
		text = req.PGN
	}

	rec, err := gc.lib.Add(c.UserContext(), text)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(summary(rec))
}

// GetGame returns the headers and moves of one game.
func (gc *GameController) GetGame(c *fiber.Ctx) error {
	entry, err := gc.lib.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	gj := output.GameToJSON(entry.Game)
	gj.ID = entry.ID
	return c.JSON(GameDetail{GameJSON: gj, AddedAt: entry.AddedAt})
}

// DeleteGame removes one game.
func (gc *GameController) DeleteGame(c *fiber.Ctx) error {
	if err := gc.lib.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetBoard returns the board of a game at ?ply=N, the start position
// when ply is absent.
func (gc *GameController) GetBoard(c *fiber.Ctx) error {
	ply := -1
	if q := c.Query("ply"); q != "" {
		n, err := strconv.Atoi(q)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "ply must be an integer")
		}
		ply = n
	}

	snap, err := gc.lib.Board(c.UserContext(), c.Params("id"), ply)
	if err != nil {
		return err
	}
	return c.JSON(output.SnapshotToJSON(snap))
}

// statusFor maps library errors to HTTP status codes.
func statusFor(err error) int {
	var fe *fiber.Error
	switch {
	case errors.As(err, &fe):
		return fe.Code
	case errors.Is(err, errors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, errors.ErrEmptyGame), errors.Is(err, errors.ErrMissingTag):
		return http.StatusBadRequest
	case errors.Is(err, errors.ErrClosed):
		return http.StatusServiceUnavailable
	}
	var pe *errors.ParseError
	if errors.As(err, &pe) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func errorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := statusFor(err)
		msg := err.Error()
		if code >= http.StatusInternalServerError {
			logger.Error("request failed", zap.String("path", c.Path()), zap.Error(err))
			if code == http.StatusInternalServerError {
				msg = "internal error"
			}
		}
		return c.Status(code).JSON(fiber.Map{"error": msg})
	}
}
