package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/oklog/ulid/v2"

	"github.com/forgeworks/adforge/internal/ads"
	"github.com/forgeworks/adforge/internal/imagegen"
	"github.com/forgeworks/adforge/internal/insights"
	"github.com/forgeworks/adforge/internal/jobs"
	"github.com/forgeworks/adforge/internal/llm"
	"github.com/forgeworks/adforge/internal/patterns"
	"github.com/forgeworks/adforge/storage"
	"github.com/forgeworks/adforge/storage/db"
)

type Service struct {
	storage   *storage.Storage
	config    *Config
	generator *ads.Generator
	campaigns *ads.CampaignGenerator
	patterns  *patterns.Database
	insights  *insights.Searcher
	worker    *jobs.RegenerateWorker
	ingester  *jobs.TrendIngester

	// jobsCtx outlives individual requests; background work enqueued from a
	// handler must not die with the request context.
	jobsCtx context.Context
}

func New(store *storage.Storage, config *Config) (*Service, error) {
	patternsDB, err := patterns.Load(config.DataDir)
	if err != nil {
		return nil, fmt.Errorf("load pattern database: %w", err)
	}

	client := llm.NewClientWith(config.LLM.BaseURL, config.LLM.Model, config.LLM.APIKey)
	images := imagegen.NewGenerator(config.Gemini.APIKey, config.OutputDir)
	searcher := insights.NewSearcher(config.DataDir)

	generator := ads.NewGenerator(client, images, searcher, patternsDB, config.OutputDir)

	return &Service{
		storage:   store,
		config:    config,
		generator: generator,
		campaigns: ads.NewCampaignGenerator(client, generator, config.DataDir),
		patterns:  patternsDB,
		insights:  searcher,
		worker:    jobs.NewRegenerateWorker(store, generator),
		ingester:  jobs.NewTrendIngester(config.DataDir, 0),
		jobsCtx:   context.Background(),
	}, nil
}

func (s *Service) RegisterRoutes(e *echo.Echo) {
	// Generated creatives are plain files
	e.Static("/output", s.config.OutputDir)

	e.GET("/health", s.handleHealth)

	api := e.Group("/api")
	api.POST("/ads", s.handleCreateAd)
	api.GET("/ads", s.handleListAds)
	api.GET("/ads/:id", s.handleGetAd)
	api.POST("/ads/:id/feedback", s.handleAdFeedback)
	api.POST("/campaigns", s.handleCreateCampaign)
	api.GET("/campaigns", s.handleListCampaigns)
	api.GET("/campaigns/:id", s.handleGetCampaign)
	api.GET("/insights/:industry", s.handleInsights)
}

// StartJobs launches the background workers and adopts ctx as the lifetime
// for work enqueued later. Separate from New so tests can construct a
// Service without side effects.
func (s *Service) StartJobs(ctx context.Context) {
	s.jobsCtx = ctx
	s.ingester.Start(ctx)
}

func (s *Service) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

type createAdRequest struct {
	Prompt string `json:"prompt"`
}

func (s *Service) handleCreateAd(c echo.Context) error {
	var req createAdRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Prompt == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "prompt is required")
	}

	creative, err := s.generator.CreateAd(c.Request().Context(), req.Prompt)
	if err != nil {
		slog.Error("ad generation failed", "prompt", req.Prompt, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "ad generation failed")
	}

	if err := s.saveCreative(c, creative); err != nil {
		slog.Error("persisting creative failed", "creative_id", creative.ID, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "persisting creative failed")
	}

	return c.JSON(http.StatusCreated, creative)
}

func (s *Service) saveCreative(c echo.Context, creative *ads.Creative) error {
	analysisJSON, err := json.Marshal(creative.Analysis)
	if err != nil {
		return fmt.Errorf("marshal analysis: %w", err)
	}
	insightsJSON, err := json.Marshal(creative.Insights)
	if err != nil {
		return fmt.Errorf("marshal insights: %w", err)
	}

	_, err = s.storage.Queries.CreateCreative(c.Request().Context(), db.CreateCreativeParams{
		ID:            creative.ID,
		Prompt:        creative.Prompt,
		Product:       creative.Product,
		BrandName:     creative.BrandName,
		Industry:      creative.Analysis.Industry,
		Headline:      creative.Headline,
		Subheadline:   creative.Subheadline,
		BodyText:      creative.BodyText,
		CallToAction:  creative.CallToAction,
		ImagePath:     creative.ImagePath,
		BaseImagePath: creative.BaseImagePath,
		Layout:        creative.Layout,
		Style:         creative.Style,
		AnalysisJson:  sql.NullString{String: string(analysisJSON), Valid: true},
		InsightsJson:  sql.NullString{String: string(insightsJSON), Valid: true},
		Error:         sql.NullString{String: creative.Error, Valid: creative.Error != ""},
	})
	return err
}

func (s *Service) handleListAds(c echo.Context) error {
	limit := int64(50)
	if raw := c.QueryParam("limit"); raw != "" {
		if n, err := strconv.ParseInt(raw, 10, 64); err == nil && n > 0 {
			limit = n
		}
	}

	if industry := c.QueryParam("industry"); industry != "" {
		list, err := s.storage.Queries.ListCreativesByIndustry(c.Request().Context(), db.ListCreativesByIndustryParams{
			Industry: industry,
			Limit:    limit,
		})
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "listing creatives failed")
		}
		return c.JSON(http.StatusOK, list)
	}

	list, err := s.storage.Queries.ListCreatives(c.Request().Context(), limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "listing creatives failed")
	}
	return c.JSON(http.StatusOK, list)
}

func (s *Service) handleGetAd(c echo.Context) error {
	creative, err := s.storage.Queries.GetCreative(c.Request().Context(), c.Param("id"))
	if err != nil {
		if err == sql.ErrNoRows {
			return echo.NewHTTPError(http.StatusNotFound, "creative not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "loading creative failed")
	}
	return c.JSON(http.StatusOK, creative)
}

type feedbackRequest struct {
	PatternID        string  `json:"pattern_id"`
	PatternType      string  `json:"pattern_type"`
	Industry         string  `json:"industry"`
	EngagementRate   float64 `json:"engagement_rate"`
	ClickThroughRate float64 `json:"click_through_rate"`
	ConversionRate   float64 `json:"conversion_rate"`
	Placement        string  `json:"placement"`
	Style            string  `json:"style"`
}

func (s *Service) handleAdFeedback(c echo.Context) error {
	creativeID := c.Param("id")
	var req feedbackRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.PatternID == "" || req.PatternType == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "pattern_id and pattern_type are required")
	}

	creative, err := s.storage.Queries.GetCreative(c.Request().Context(), creativeID)
	if err != nil {
		if err == sql.ErrNoRows {
			return echo.NewHTTPError(http.StatusNotFound, "creative not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "loading creative failed")
	}

	industry := req.Industry
	if industry == "" {
		industry = creative.Industry
	}

	row, err := s.storage.Queries.CreatePatternFeedback(c.Request().Context(), db.CreatePatternFeedbackParams{
		ID:               ulid.Make().String(),
		CreativeID:       creative.ID,
		PatternID:        req.PatternID,
		PatternType:      req.PatternType,
		Industry:         industry,
		EngagementRate:   req.EngagementRate,
		ClickThroughRate: req.ClickThroughRate,
		ConversionRate:   req.ConversionRate,
	})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "saving feedback failed")
	}

	if !s.patterns.RecordFeedback(req.PatternType, industry, req.PatternID, patterns.FeedbackMetrics{
		EngagementRate: req.EngagementRate,
		ClickThrough:   req.ClickThroughRate,
		Conversion:     req.ConversionRate,
	}) {
		slog.Warn("no matching pattern for feedback", "pattern_id", req.PatternID, "pattern_type", req.PatternType)
	}

	// layout or style change means the stored image needs re-rendering; the
	// request context is cancelled as soon as this handler returns
	if req.Placement != "" || req.Style != "" {
		s.worker.Enqueue(s.jobsCtx, creative.ID, req.Placement, req.Style)
	}

	return c.JSON(http.StatusCreated, row)
}

type createCampaignRequest struct {
	Product   string `json:"product"`
	Industry  string `json:"industry"`
	BrandName string `json:"brand_name"`
}

func (s *Service) handleCreateCampaign(c echo.Context) error {
	var req createCampaignRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Product == "" || req.Industry == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "product and industry are required")
	}

	campaign, err := s.campaigns.GenerateCampaign(c.Request().Context(), req.Product, req.Industry, req.BrandName)
	if err != nil {
		slog.Error("campaign generation failed", "product", req.Product, "error", err)
		return echo.NewHTTPError(http.StatusBadGateway, "campaign generation failed")
	}

	if err := s.saveCreative(c, campaign.Creative); err != nil {
		slog.Error("persisting campaign creative failed", "campaign_id", campaign.ID, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "persisting campaign failed")
	}

	analysisJSON, err := json.Marshal(campaign.Analysis)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "persisting campaign failed")
	}
	_, err = s.storage.Queries.CreateCampaign(c.Request().Context(), db.CreateCampaignParams{
		ID:           campaign.ID,
		Product:      campaign.Product,
		Industry:     campaign.Industry,
		BrandName:    campaign.BrandName,
		AnalysisJson: sql.NullString{String: string(analysisJSON), Valid: true},
		CreativeID:   sql.NullString{String: campaign.Creative.ID, Valid: true},
	})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "persisting campaign failed")
	}

	return c.JSON(http.StatusCreated, campaign)
}

func (s *Service) handleListCampaigns(c echo.Context) error {
	list, err := s.storage.Queries.ListCampaigns(c.Request().Context(), 50)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "listing campaigns failed")
	}
	return c.JSON(http.StatusOK, list)
}

func (s *Service) handleGetCampaign(c echo.Context) error {
	campaign, err := s.storage.Queries.GetCampaign(c.Request().Context(), c.Param("id"))
	if err != nil {
		if err == sql.ErrNoRows {
			return echo.NewHTTPError(http.StatusNotFound, "campaign not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "loading campaign failed")
	}
	return c.JSON(http.StatusOK, campaign)
}

type insightsResponse struct {
	Industry     string             `json:"industry"`
	Profile      insights.Insights  `json:"profile"`
	BestHeadline *patterns.Pattern  `json:"best_headline,omitempty"`
	BestCTA      *patterns.Pattern  `json:"best_cta,omitempty"`
	Variants     []patterns.Variant `json:"ab_variants"`
}

func (s *Service) handleInsights(c echo.Context) error {
	industry := c.Param("industry")
	product := c.QueryParam("product")

	resp := insightsResponse{
		Industry: industry,
		Profile:  s.insights.Search(product, "", industry),
		Variants: s.patterns.ABVariants(industry, 3, nil),
	}
	if best, ok := s.patterns.BestPerforming(patterns.TypeHeadline, industry, c.QueryParam("platform"), ""); ok {
		resp.BestHeadline = &best
	}
	if best, ok := s.patterns.BestPerforming(patterns.TypeCTA, industry, c.QueryParam("platform"), ""); ok {
		resp.BestCTA = &best
	}

	return c.JSON(http.StatusOK, resp)
}
