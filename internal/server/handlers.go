package server

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
)

type discoverRequest struct {
	CVText     string `json:"cv_text"`
	University string `json:"university"`
	Model      string `json:"model"`
}

func (s *Server) handleDiscover(c echo.Context) error {
	var req discoverRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	result, err := s.pipeline.WithModel(req.Model).Run(c.Request().Context(), req.CVText, req.University)
	if err != nil {
		return err
	}
	s.runs.Put(result)
	return c.JSON(http.StatusOK, result)
}

func (s *Server) handleListRuns(c echo.Context) error {
	return c.JSON(http.StatusOK, s.runs.List())
}

func (s *Server) handleGetRun(c echo.Context) error {
	result, ok := s.runs.Get(c.Param("id"))
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "run not found")
	}
	return c.JSON(http.StatusOK, result)
}

// handleExportRun serves the stored result as a downloadable JSON file.
func (s *Server) handleExportRun(c echo.Context) error {
	result, ok := s.runs.Get(c.Param("id"))
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "run not found")
	}
	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf("attachment; filename=discovery_%s.json", result.ID))
	return c.JSONPretty(http.StatusOK, result, "  ")
}

type emailRequest struct {
	CVText        string `json:"cv_text"`
	ProfessorInfo string `json:"professor_info"`
	StudentName   string `json:"student_name"`
	Signature     string `json:"signature"`
	Model         string `json:"model"`
}

func (s *Server) handleEmail(c echo.Context) error {
	var req emailRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	draft, err := s.drafter.WithModel(req.Model).DraftEmail(c.Request().Context(), req.CVText, req.ProfessorInfo, req.StudentName, req.Signature)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"email": draft})
}

type sopRequest struct {
	CVText        string `json:"cv_text"`
	ProfessorInfo string `json:"professor_info"`
	SOPTemplate   string `json:"sop_template"`
	StudentName   string `json:"student_name"`
	Model         string `json:"model"`
}

func (s *Server) handleSOP(c echo.Context) error {
	var req sopRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	sop, err := s.drafter.WithModel(req.Model).EditSOP(c.Request().Context(), req.CVText, req.ProfessorInfo, req.SOPTemplate, req.StudentName)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"sop": sop})
}

type scheduleRequest struct {
	Location string `json:"location"`
	Timezone string `json:"timezone"`
}

// handleSchedule accepts either an explicit IANA timezone or a free-text
// location hint to infer one from.
func (s *Server) handleSchedule(c echo.Context) error {
	var req scheduleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Timezone != "" {
		rec, err := s.advisor.Recommend(req.Timezone)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return c.JSON(http.StatusOK, rec)
	}
	if req.Location == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "location or timezone is required")
	}
	rec, err := s.advisor.Advise(req.Location)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, rec)
}
