package integration

import (
	"archive/zip"
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rodneymanor/screenshot-api/internal/infra/ffmpeg"
	"github.com/rodneymanor/screenshot-api/internal/infra/httpapi"
	"github.com/rodneymanor/screenshot-api/internal/infra/postgres"
	"github.com/rodneymanor/screenshot-api/internal/infra/workspace"
	"github.com/rodneymanor/screenshot-api/internal/usecase"
	"github.com/rodneymanor/screenshot-api/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"go.uber.org/zap"
)

func requireTools(t *testing.T) {
	t.Helper()
	for _, bin := range []string{"ffmpeg", "ffprobe"} {
		if _, err := exec.LookPath(bin); err != nil {
			t.Skipf("%s not found in PATH", bin)
		}
	}
}

// makeTestVideo renders a short synthetic clip with ffmpeg's testsrc.
func makeTestVideo(t *testing.T, dir string, seconds int) string {
	t.Helper()
	path := filepath.Join(dir, "test.mp4")
	cmd := exec.Command("ffmpeg",
		"-f", "lavfi",
		"-i", "testsrc=duration="+strconv.Itoa(seconds)+":size=320x240:rate=1",
		"-c:v", "libx264", "-pix_fmt", "yuv420p",
		"-y", path,
	)
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, "generate test video: %s", string(out))
	return path
}

func TestCreateScreenshotsEndToEnd(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	requireTools(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	// Start PostgreSQL container for the audit trail
	pgContainer, err := tcpostgres.Run(ctx,
		"postgres:15-alpine",
		tcpostgres.WithDatabase("jobs"),
		tcpostgres.WithUsername("job_user"),
		tcpostgres.WithPassword("job_pass"),
		tcpostgres.BasicWaitStrategies(),
	)
	require.NoError(t, err)
	defer pgContainer.Terminate(ctx)

	pgConnStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	err = postgres.RunMigrations(pgConnStr, "../../migrations")
	require.NoError(t, err)

	pool, err := pgxpool.New(ctx, pgConnStr)
	require.NoError(t, err)
	defer pool.Close()

	log, _ := logger.New("debug")
	root := t.TempDir()
	ws := workspace.New(root)
	require.NoError(t, ws.Init())

	repo := postgres.NewJobRepository(pool)
	prober := ffmpeg.NewProber("ffprobe", 30*time.Second, log)
	extractor := ffmpeg.NewExtractor("ffmpeg", 30*time.Second, log)

	uc := usecase.NewCreateScreenshotsUseCase(
		ws, prober, extractor, ffmpeg.NewZipArchiver(), repo, nil, log,
	)

	e := httpapi.NewServer(uc, ws, httpapi.ServerConfig{
		BodyLimit:          "100M",
		DefaultScreenshots: 10,
		DefaultQuality:     2,
	}, zap.NewNop())

	videoPath := makeTestVideo(t, t.TempDir(), 8)
	videoData, err := os.ReadFile(videoPath)
	require.NoError(t, err)

	// Upload through the real HTTP surface
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	fw, err := mw.CreateFormFile("video", "test.mp4")
	require.NoError(t, err)
	_, err = fw.Write(videoData)
	require.NoError(t, err)
	require.NoError(t, mw.WriteField("num_screenshots", "3"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/screenshots", body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	zr, err := zip.NewReader(bytes.NewReader(rec.Body.Bytes()), int64(rec.Body.Len()))
	require.NoError(t, err)
	assert.Len(t, zr.File, 3, "zip should contain the requested screenshots")

	// Work root is empty again after delivery
	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	assert.Empty(t, entries)

	// Job record landed in the database
	var count int
	err = pool.QueryRow(ctx,
		"SELECT COUNT(*) FROM screenshot_jobs WHERE status='COMPLETED' AND artifact_count=3",
	).Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestProbeAndPlanAgainstRealMedia(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	requireTools(t)

	log, _ := logger.New("debug")
	videoPath := makeTestVideo(t, t.TempDir(), 8)

	prober := ffmpeg.NewProber("ffprobe", 30*time.Second, log)
	duration, err := prober.Probe(context.Background(), videoPath)
	require.NoError(t, err)
	assert.InDelta(t, 8, duration, 1.0)

	extractor := ffmpeg.NewExtractor("ffmpeg", 30*time.Second, log)
	dest := filepath.Join(t.TempDir(), "frame.jpg")
	require.NoError(t, extractor.ExtractFrame(context.Background(), videoPath, 2, 2, dest))

	info, err := os.Stat(dest)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}
