package api

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/animesense/animesense-server/internal/dataset"
	"github.com/animesense/animesense-server/internal/nlp"
	"github.com/animesense/animesense-server/internal/pipeline"
	"github.com/animesense/animesense-server/internal/ratelimit"
	"github.com/animesense/animesense-server/internal/service"
)

const testEmotionCSV = `anime_id,name,genre,type,episodes,rating,members,sentiment,emotion
1,Fullmetal Quest,"Action, Adventure",TV,64,8.0,800000,Positive,joy
2,Grim Harvest,Horror,Movie,1,3.0,40000,Negative,anger
3,Slow Afternoons,Slice of Life,TV,12,5.5,12000,Neutral,neutral
`

const testGenreCSV = `anime_id,name,genre,type,episodes,rating,members,sentiment
1,Fullmetal Quest,Action,TV,64,8.0,800000,Positive
1,Fullmetal Quest,Adventure,TV,64,8.0,800000,Positive
2,Grim Harvest,Horror,Movie,1,3.0,40000,Negative
3,Slow Afternoons,Slice of Life,TV,12,5.5,12000,Neutral
`

const testRawCSV = `anime_id,name,genre,type,episodes,rating,members,sentiment
1,Fullmetal Quest,"Action, Adventure",TV,64,9.1,800000,
2,Grim Harvest,Horror,Movie,1,3.2,40000,
`

// testServer wraps the API server with direct access to its collaborators.
type testServer struct {
	*Server
	testAPI humatest.TestAPI
	tracker *pipeline.Tracker
	dir     string
}

func setupTestServer(t *testing.T, files map[string]string, limiter *ratelimit.KeyedRateLimiter) *testServer {
	t.Helper()

	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := dataset.New(dir, logger)
	tracker := pipeline.NewTracker()
	p := pipeline.New(store, nlp.NewEmotionDetector(nlp.NewVaderScorer()), logger)

	services := &Services{
		Catalog: service.NewCatalogService(store, logger),
		Insight: service.NewInsightService(store, logger),
		Refresh: service.NewRefreshService(p, tracker, logger),
	}

	s := NewServer(store, services, limiter, logger)
	if limiter != nil {
		t.Cleanup(limiter.Stop)
	}

	return &testServer{
		Server:  s,
		testAPI: humatest.Wrap(t, s.api),
		tracker: tracker,
		dir:     dir,
	}
}

func decodeBody[T any](t *testing.T, body io.Reader) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(body).Decode(&out))
	return out
}

func TestListSentiments_MinRatingFilter(t *testing.T) {
	ts := setupTestServer(t, map[string]string{dataset.EmotionFile: testEmotionCSV}, nil)

	resp := ts.testAPI.Get("/api/sentiments?min_rating=6")
	require.Equal(t, http.StatusOK, resp.Code)

	records := decodeBody[[]map[string]any](t, resp.Body)
	require.Len(t, records, 1)
	assert.Equal(t, "Fullmetal Quest", records[0]["name"])
}

func TestListSentiments_SentimentFilter(t *testing.T) {
	ts := setupTestServer(t, map[string]string{dataset.EmotionFile: testEmotionCSV}, nil)

	resp := ts.testAPI.Get("/api/sentiments?sentiment=Negative")
	require.Equal(t, http.StatusOK, resp.Code)

	records := decodeBody[[]map[string]any](t, resp.Body)
	require.Len(t, records, 1)
	assert.Equal(t, "Grim Harvest", records[0]["name"])
}

func TestListSentiments_GenreFilter(t *testing.T) {
	ts := setupTestServer(t, map[string]string{
		dataset.EmotionFile: testEmotionCSV,
		dataset.GenresFile:  testGenreCSV,
	}, nil)

	resp := ts.testAPI.Get("/api/sentiments?genre=Adventure")
	require.Equal(t, http.StatusOK, resp.Code)

	records := decodeBody[[]map[string]any](t, resp.Body)
	require.Len(t, records, 1)
	assert.Equal(t, "Fullmetal Quest", records[0]["name"])
}

func TestListSentiments_NoDataIs404(t *testing.T) {
	ts := setupTestServer(t, nil, nil)

	resp := ts.testAPI.Get("/api/sentiments")
	assert.Equal(t, http.StatusNotFound, resp.Code)

	body := decodeBody[map[string]any](t, resp.Body)
	assert.Equal(t, "NO_DATA", body["code"])
}

func TestSentimentDistribution_Shape(t *testing.T) {
	ts := setupTestServer(t, map[string]string{dataset.EmotionFile: testEmotionCSV}, nil)

	resp := ts.testAPI.Get("/api/sentiment-distribution")
	require.Equal(t, http.StatusOK, resp.Code)

	rows := decodeBody[[]map[string]any](t, resp.Body)
	require.Len(t, rows, 3)
	assert.Contains(t, rows[0], "sentiment")
	assert.Contains(t, rows[0], "count")
}

func TestEmotionDistribution_EmptyWithoutColumn(t *testing.T) {
	sentimentOnly := `anime_id,name,genre,type,episodes,rating,members,sentiment
1,Fullmetal Quest,Action,TV,64,8.0,800000,Positive
`
	ts := setupTestServer(t, map[string]string{dataset.SentimentFile: sentimentOnly}, nil)

	resp := ts.testAPI.Get("/api/emotion-distribution")
	require.Equal(t, http.StatusOK, resp.Code)

	rows := decodeBody[[]map[string]any](t, resp.Body)
	assert.Empty(t, rows)
}

func TestTopGenres_Limit(t *testing.T) {
	ts := setupTestServer(t, map[string]string{dataset.GenresFile: testGenreCSV}, nil)

	resp := ts.testAPI.Get("/api/genres-top?limit=2")
	require.Equal(t, http.StatusOK, resp.Code)

	rows := decodeBody[[]map[string]any](t, resp.Body)
	require.Len(t, rows, 2)
	assert.Contains(t, rows[0], "genre")
	assert.Contains(t, rows[0], "count")
}

func TestTrends_MissingArtifactIsEmptyList(t *testing.T) {
	ts := setupTestServer(t, nil, nil)

	for _, path := range []string{"/api/opinion-trends", "/api/emotion-trends"} {
		resp := ts.testAPI.Get(path)
		require.Equal(t, http.StatusOK, resp.Code, path)
		rows := decodeBody[[]map[string]any](t, resp.Body)
		assert.Empty(t, rows, path)
	}
}

func TestInsights_MissingReportFallback(t *testing.T) {
	ts := setupTestServer(t, map[string]string{dataset.EmotionFile: testEmotionCSV}, nil)

	resp := ts.testAPI.Get("/api/insights")
	require.Equal(t, http.StatusOK, resp.Code)

	body := decodeBody[map[string]any](t, resp.Body)
	assert.Equal(t, service.MissingReportText, body["markdown"])
	require.Contains(t, body, "stats")
	stats := body["stats"].(map[string]any)
	assert.Equal(t, float64(3), stats["total_anime"])
}

func TestRefresh_TriggerAndStatus(t *testing.T) {
	ts := setupTestServer(t, map[string]string{dataset.RawFile: testRawCSV}, nil)

	status := ts.testAPI.Get("/api/refresh-status")
	require.Equal(t, http.StatusOK, status.Code)
	snapshot := decodeBody[map[string]any](t, status.Body)
	assert.Equal(t, false, snapshot["running"])
	assert.Equal(t, false, snapshot["finished"])

	resp := ts.testAPI.Post("/api/refresh-data")
	require.Equal(t, http.StatusOK, resp.Code)
	ack := decodeBody[map[string]string](t, resp.Body)
	assert.Equal(t, service.RefreshStarted, ack["status"])

	require.Eventually(t, func() bool {
		return ts.tracker.Status().Finished
	}, 5*time.Second, 10*time.Millisecond)

	_, err := os.Stat(filepath.Join(ts.dir, dataset.ReportFile))
	assert.NoError(t, err)
}

func TestRefresh_AlreadyRunning(t *testing.T) {
	ts := setupTestServer(t, map[string]string{dataset.RawFile: testRawCSV}, nil)

	// Hold the running slot so the request observes an in-flight job.
	require.True(t, ts.tracker.Begin("job-held"))

	resp := ts.testAPI.Post("/api/refresh-data")
	require.Equal(t, http.StatusOK, resp.Code)
	ack := decodeBody[map[string]string](t, resp.Body)
	assert.Equal(t, service.RefreshAlreadyRunning, ack["status"])
}

func TestRefresh_RateLimited(t *testing.T) {
	limiter := NewRefreshLimiter(1, 1)
	ts := setupTestServer(t, map[string]string{dataset.RawFile: testRawCSV}, limiter)

	first := ts.testAPI.Post("/api/refresh-data")
	require.Equal(t, http.StatusOK, first.Code)

	second := ts.testAPI.Post("/api/refresh-data")
	require.Equal(t, http.StatusTooManyRequests, second.Code)
	body := decodeBody[map[string]string](t, second.Body)
	assert.Equal(t, "RATE_LIMITED", body["code"])

	// Let the run started by the first request drain before the temp dir
	// is removed.
	require.Eventually(t, func() bool {
		return ts.tracker.Status().Finished
	}, 5*time.Second, 10*time.Millisecond)
}

func TestRefreshLimiter_DoesNotThrottleReads(t *testing.T) {
	limiter := NewRefreshLimiter(1, 1)
	ts := setupTestServer(t, map[string]string{dataset.EmotionFile: testEmotionCSV}, limiter)

	for i := 0; i < 5; i++ {
		resp := ts.testAPI.Get("/api/sentiment-distribution")
		require.Equal(t, http.StatusOK, resp.Code)
	}
}

func TestHealth_DegradedWithoutArtifacts(t *testing.T) {
	ts := setupTestServer(t, nil, nil)

	resp := ts.testAPI.Get("/health")
	require.Equal(t, http.StatusOK, resp.Code)

	body := decodeBody[map[string]any](t, resp.Body)
	assert.Equal(t, "degraded", body["status"])
}

func TestHealth_HealthyWithArtifacts(t *testing.T) {
	ts := setupTestServer(t, map[string]string{
		dataset.EmotionFile: testEmotionCSV,
		dataset.ReportFile:  "- Something insightful.\n",
	}, nil)

	resp := ts.testAPI.Get("/health")
	require.Equal(t, http.StatusOK, resp.Code)

	body := decodeBody[map[string]any](t, resp.Body)
	assert.Equal(t, "healthy", body["status"])
}
