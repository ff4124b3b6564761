package api

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/kimchoi-jjiggae/coachMe/internal/journal"
	"github.com/kimchoi-jjiggae/coachMe/internal/textproc"
)

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}

// handleGenerateTitle never fails because the remote model is unavailable;
// the heuristic answers instead.
func (s *Server) handleGenerateTitle(c echo.Context) error {
	var req TitleRequest
	if err := c.Bind(&req); err != nil {
		s.logger.Warn("invalid title request", zap.Error(err))
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if strings.TrimSpace(req.Content) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "content is required")
	}
	title, source := s.journal.Title(c.Request().Context(), req.Content)
	return c.JSON(http.StatusOK, TitleResponse{Title: title, Source: string(source)})
}

func (s *Server) handlePunctuate(c echo.Context) error {
	var req PunctuateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Text == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "text is required")
	}
	return c.JSON(http.StatusOK, PunctuateResponse{Text: textproc.Punctuate(req.Text)})
}

func (s *Server) handleListEntries(c echo.Context) error {
	limit, err := pageSize(c)
	if err != nil {
		return err
	}
	offset, err := queryInt(c, "offset", 0)
	if err != nil {
		return err
	}
	since, err := s.queryTime(c, "since")
	if err != nil {
		return err
	}
	until, err := s.queryTime(c, "until")
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	opts := journal.ListOptions{Since: since, Until: until, Limit: limit, Offset: offset}
	entries, err := s.journal.List(ctx, opts)
	if err != nil {
		return s.toHTTPError(err)
	}
	total, err := s.journal.Count(ctx, opts)
	if err != nil {
		return s.toHTTPError(err)
	}
	if entries == nil {
		entries = []journal.Entry{}
	}
	return c.JSON(http.StatusOK, EntryListResponse{Entries: entries, Total: total, Limit: limit, Offset: offset})
}

func (s *Server) handleCreateEntry(c echo.Context) error {
	var req EntryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	e, err := s.journal.Save(c.Request().Context(), journal.SaveRequest{
		ID:      req.ID,
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		return s.toHTTPError(err)
	}
	return c.JSON(http.StatusCreated, e)
}

func (s *Server) handleGetEntry(c echo.Context) error {
	e, err := s.journal.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return s.toHTTPError(err)
	}
	return c.JSON(http.StatusOK, e)
}

// handleUpdateEntry only edits existing entries; creation goes through POST.
func (s *Server) handleUpdateEntry(c echo.Context) error {
	var req EntryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	ctx := c.Request().Context()
	id := c.Param("id")
	if _, err := s.journal.Get(ctx, id); err != nil {
		return s.toHTTPError(err)
	}
	e, err := s.journal.Save(ctx, journal.SaveRequest{ID: id, Title: req.Title, Content: req.Content})
	if err != nil {
		return s.toHTTPError(err)
	}
	return c.JSON(http.StatusOK, e)
}

func (s *Server) handleDeleteEntry(c echo.Context) error {
	if err := s.journal.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return s.toHTTPError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) handleSearch(c echo.Context) error {
	limit, err := pageSize(c)
	if err != nil {
		return err
	}
	q := c.QueryParam("q")
	entries, err := s.journal.Search(c.Request().Context(), q, limit)
	if err != nil {
		return s.toHTTPError(err)
	}
	if entries == nil {
		entries = []journal.Entry{}
	}
	return c.JSON(http.StatusOK, SearchResponse{Query: q, Entries: entries})
}

func (s *Server) handleSync(c echo.Context) error {
	report, err := s.journal.Sync(c.Request().Context())
	if err != nil {
		s.logger.Warn("sync failed", zap.Error(err))
		return echo.NewHTTPError(http.StatusBadGateway, "sync failed")
	}
	return c.JSON(http.StatusOK, report)
}

func (s *Server) handleSummary(c echo.Context) error {
	since, err := s.queryTime(c, "since")
	if err != nil {
		return err
	}
	until, err := s.queryTime(c, "until")
	if err != nil {
		return err
	}
	sum, err := s.journal.Summarize(c.Request().Context(), since, until, s.now().Location())
	if err != nil {
		return s.toHTTPError(err)
	}
	return c.JSON(http.StatusOK, sum)
}

func (s *Server) handleGetDraft(c echo.Context) error {
	d, err := s.journal.Draft(c.Request().Context())
	if err != nil {
		return s.toHTTPError(err)
	}
	return c.JSON(http.StatusOK, d)
}

func (s *Server) handlePutDraft(c echo.Context) error {
	var req DraftRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	d, err := s.journal.SetDraft(c.Request().Context(), journal.Draft{Title: req.Title, Content: req.Content})
	if err != nil {
		return s.toHTTPError(err)
	}
	return c.JSON(http.StatusOK, d)
}

func (s *Server) handleClearDraft(c echo.Context) error {
	if err := s.journal.ClearDraft(c.Request().Context()); err != nil {
		return s.toHTTPError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) handleSaveDraft(c echo.Context) error {
	e, err := s.journal.SaveDraft(c.Request().Context())
	if err != nil {
		return s.toHTTPError(err)
	}
	return c.JSON(http.StatusCreated, e)
}
