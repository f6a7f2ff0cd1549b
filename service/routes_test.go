package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"image"
	"image/color"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forgeworks/adforge/internal/ads"
	"github.com/forgeworks/adforge/storage/db"
)

func doJSON(t *testing.T, e http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echoContentType, echoJSONType)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

const (
	echoContentType = "Content-Type"
	echoJSONType    = "application/json"
)

func TestHealthRoute(t *testing.T) {
	e, _ := setupTestEcho(t)

	rec := doJSON(t, e, "GET", "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"ok"`)
}

func TestCreateAdRoute(t *testing.T) {
	e, svc := setupTestEcho(t)

	rec := doJSON(t, e, "POST", "/api/ads", `{"prompt": "Nike running shoes"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var creative ads.Creative
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &creative))
	assert.NotEmpty(t, creative.ID)
	assert.Equal(t, "NIKE", creative.BrandName)
	assert.NotEmpty(t, creative.ImagePath)

	// persisted
	row, err := svc.storage.Queries.GetCreative(context.Background(), creative.ID)
	require.NoError(t, err)
	assert.Equal(t, creative.Headline, row.Headline)
}

func TestCreateAdRouteValidation(t *testing.T) {
	e, _ := setupTestEcho(t)

	rec := doJSON(t, e, "POST", "/api/ads", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, e, "POST", "/api/ads", `not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetAdRoute(t *testing.T) {
	e, svc := setupTestEcho(t)

	id := seedCreative(t, svc)

	rec := doJSON(t, e, "GET", "/api/ads/"+id, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), id)

	rec = doJSON(t, e, "GET", "/api/ads/nope", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListAdsRoute(t *testing.T) {
	e, svc := setupTestEcho(t)

	seedCreative(t, svc)
	seedCreative(t, svc)

	rec := doJSON(t, e, "GET", "/api/ads?limit=1", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	var list []db.Creative
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Len(t, list, 1)

	rec = doJSON(t, e, "GET", "/api/ads?industry=luxury", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Len(t, list, 2)

	// limit also applies to the industry-filtered listing
	rec = doJSON(t, e, "GET", "/api/ads?industry=luxury&limit=1", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Len(t, list, 1)
}

func TestAdFeedbackRoute(t *testing.T) {
	e, svc := setupTestEcho(t)

	id := seedCreative(t, svc)

	body := `{
		"pattern_id": "luxury_exclusivity",
		"pattern_type": "headline",
		"industry": "luxury",
		"engagement_rate": 7.5,
		"click_through_rate": 3.1,
		"conversion_rate": 1.2
	}`
	rec := doJSON(t, e, "POST", "/api/ads/"+id+"/feedback", body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rows, err := svc.storage.Queries.ListFeedbackForCreative(context.Background(), id)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "luxury_exclusivity", rows[0].PatternID)
}

func TestAdFeedbackTriggersRecomposition(t *testing.T) {
	e, svc := setupTestEcho(t)

	basePath := filepath.Join(svc.config.OutputDir, "base_seed.png")
	baseImg := image.NewNRGBA(image.Rect(0, 0, 320, 320))
	for y := 0; y < 320; y++ {
		for x := 0; x < 320; x++ {
			baseImg.SetNRGBA(x, y, color.NRGBA{60, 70, 90, 255})
		}
	}
	require.NoError(t, imaging.Save(baseImg, basePath))

	id := ulid.Make().String()
	_, err := svc.storage.Queries.CreateCreative(context.Background(), db.CreateCreativeParams{
		ID:            id,
		Prompt:        "luxury watch",
		Product:       "luxury watch",
		BrandName:     "ROLEX",
		Industry:      "luxury",
		Headline:      "TIMELESS",
		CallToAction:  "DISCOVER",
		BaseImagePath: basePath,
		Layout:        "centered",
		Style:         "modern",
		AnalysisJson:  sql.NullString{String: `{"industry":"luxury"}`, Valid: true},
	})
	require.NoError(t, err)

	// a real server cancels the request context the moment the handler
	// returns; the recomposition must survive that
	srv := httptest.NewServer(e)
	defer srv.Close()

	body := `{
		"pattern_id": "luxury_exclusivity",
		"pattern_type": "headline",
		"placement": "bottom_centered",
		"style": "bold"
	}`
	resp, err := http.Post(srv.URL+"/api/ads/"+id+"/feedback", echoJSONType, strings.NewReader(body))
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	svc.worker.Wait()

	row, err := svc.storage.Queries.GetCreative(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "bottom_centered", row.Layout)
	assert.Equal(t, "bold", row.Style)
	assert.NotEmpty(t, row.ImagePath)
}

func TestAdFeedbackRouteValidation(t *testing.T) {
	e, svc := setupTestEcho(t)
	id := seedCreative(t, svc)

	rec := doJSON(t, e, "POST", "/api/ads/"+id+"/feedback", `{"engagement_rate": 5}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, e, "POST", "/api/ads/missing/feedback", `{"pattern_id": "x", "pattern_type": "headline"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateCampaignRoute(t *testing.T) {
	e, svc := setupTestEcho(t)

	rec := doJSON(t, e, "POST", "/api/campaigns", `{"product": "luxury watch", "industry": "luxury", "brand_name": "ROLEX"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var campaign ads.Campaign
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &campaign))
	assert.Equal(t, "ROLEX", campaign.BrandName)
	require.NotNil(t, campaign.Creative)

	row, err := svc.storage.Queries.GetCampaign(context.Background(), campaign.ID)
	require.NoError(t, err)
	assert.Equal(t, campaign.Creative.ID, row.CreativeID.String)

	rec = doJSON(t, e, "GET", "/api/campaigns/"+campaign.ID, "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, e, "GET", "/api/campaigns", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCreateCampaignRouteValidation(t *testing.T) {
	e, _ := setupTestEcho(t)

	rec := doJSON(t, e, "POST", "/api/campaigns", `{"product": "watch"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestInsightsRoute(t *testing.T) {
	e, _ := setupTestEcho(t)

	rec := doJSON(t, e, "GET", "/api/insights/technology?product=smartphone", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp insightsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "technology", resp.Industry)
	assert.Equal(t, "Product-focused with clean background", resp.Profile.RecommendedFormat)
	require.NotNil(t, resp.BestHeadline)
	assert.NotEmpty(t, resp.BestHeadline.ID)
	assert.Len(t, resp.Variants, 3)
}

// seedCreative inserts a minimal creative row directly.
func seedCreative(t *testing.T, svc *Service) string {
	t.Helper()
	id := ulid.Make().String()
	_, err := svc.storage.Queries.CreateCreative(context.Background(), db.CreateCreativeParams{
		ID:           id,
		Prompt:       "luxury watch",
		Product:      "luxury watch",
		BrandName:    "ROLEX",
		Industry:     "luxury",
		Headline:     "TIMELESS",
		CallToAction: "DISCOVER",
		AnalysisJson: sql.NullString{String: `{"industry":"luxury"}`, Valid: true},
	})
	require.NoError(t, err)
	return id
}
