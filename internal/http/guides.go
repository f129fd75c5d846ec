package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/assistantd/internal/guide"
	"github.com/fyrsmithlabs/assistantd/internal/logging"
)

// GuideResponse describes one guide for GET /api/v1/guides.
type GuideResponse struct {
	Name   string `json:"name"`
	ID     int    `json:"id"`
	Guide  string `json:"guide"`
	Active bool   `json:"active"`
}

// AssistantGuide is one element of GET /api/v1/assistant, the payload the
// front end loads to decide which tours it may show. The guide key matches
// the front end's content table.
type AssistantGuide struct {
	Guide string `json:"guide"`
	ID    int    `json:"id"`
}

func newGuideResponse(g guide.Guide) GuideResponse {
	return GuideResponse{
		Name:   g.String(),
		ID:     g.ID(),
		Guide:  g.Key(),
		Active: guide.IsActive(g),
	}
}

func guideResponses(guides []guide.Guide) []GuideResponse {
	out := make([]GuideResponse, 0, len(guides))
	for _, g := range guides {
		out = append(out, newGuideResponse(g))
	}
	return out
}

// handleListGuides returns every defined guide.
func (s *Server) handleListGuides(c echo.Context) error {
	return c.JSON(http.StatusOK, guideResponses(guide.Variants()))
}

// handleActiveGuides returns the active guides in display order.
func (s *Server) handleActiveGuides(c echo.Context) error {
	return c.JSON(http.StatusOK, guideResponses(guide.Active()))
}

// handleGetGuide resolves a single guide by its stable identifier.
func (s *Server) handleGetGuide(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "guide id must be an integer")
	}

	g, err := guide.Resolve(id)
	if errors.Is(err, guide.ErrUnknownGuide) {
		s.metrics.RecordLookup(ctx, false)
		logging.FromContext(ctx).Debug(ctx, "unknown guide requested", zap.Int("guide_id", id))
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	if err != nil {
		return err
	}

	s.metrics.RecordLookup(ctx, true)
	return c.JSON(http.StatusOK, newGuideResponse(g))
}

// handleAssistant returns the active guides in the front end's bootstrap shape.
func (s *Server) handleAssistant(c echo.Context) error {
	active := guide.Active()
	out := make([]AssistantGuide, 0, len(active))
	for _, g := range active {
		out = append(out, AssistantGuide{Guide: g.Key(), ID: g.ID()})
	}
	return c.JSON(http.StatusOK, out)
}
