package firms

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/shenikar/fire_monitoring_system/internal/config"
	"github.com/shenikar/fire_monitoring_system/internal/models"
	"github.com/shenikar/fire_monitoring_system/internal/observability"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testMapKey = "test-key"

	modisCSV = `latitude,longitude,brightness,scan,track,acq_date,acq_time,satellite,confidence,version,bright_t31,frp,daynight
30.9012,75.8534,325.4,1.1,1.0,2025-11-02,512,Terra,85,6.1NRT,295.1,22.3,D
31.6341,74.8722,340.1,1.2,1.1,2025-11-02,0515,Terra,92,6.1NRT,298.4,48.0,D
`
	viirsCSV = `latitude,longitude,bright_ti4,scan,track,acq_date,acq_time,satellite,confidence,version,bright_ti5,frp,daynight
29.9511,76.8112,331.8,0.39,0.36,2025-11-02,0812,N,n,2.0NRT,290.2,5.6,D
`
)

func newTestClient(t *testing.T, baseURL string, clock clockwork.Clock) *Client {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})

	cfg := config.FirmsConfig{
		BaseURL:    baseURL,
		MapKey:     testMapKey,
		Timeout:    5 * time.Second,
		MaxRetries: 3,
		BaseDelay:  time.Second,
		MaxDelay:   1500 * time.Millisecond,
		FetchCount: 100,
	}
	return NewClient(cfg, clock, observability.NewMetricsForTesting(), logger)
}

type fetchResult struct {
	rows []models.RawDetection
	err  error
}

// fetchAsync запускает Fetch и прокручивает фейковые часы на заданные задержки
func fetchAsync(t *testing.T, c *Client, fc *clockwork.FakeClock, source models.Source, delays ...time.Duration) fetchResult {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	done := make(chan fetchResult, 1)
	go func() {
		rows, err := c.Fetch(ctx, source, models.WindowRecent24h)
		done <- fetchResult{rows: rows, err: err}
	}()

	for _, d := range delays {
		require.NoError(t, fc.BlockUntilContext(ctx, 1))
		fc.Advance(d)
	}

	select {
	case res := <-done:
		return res
	case <-ctx.Done():
		t.Fatal("fetch did not finish")
		return fetchResult{}
	}
}

func TestClient_Fetch_ModisSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/"+testMapKey+"/", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "WFS", q.Get("SERVICE"))
		assert.Equal(t, "GetFeature", q.Get("REQUEST"))
		assert.Equal(t, "2.0.0", q.Get("VERSION"))
		assert.Equal(t, "ms:fires_modis_24hrs", q.Get("TYPENAME"))
		assert.Equal(t, "100", q.Get("COUNT"))
		assert.Equal(t, "csv", q.Get("outputformat"))
		fmt.Fprint(w, modisCSV)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, clockwork.NewFakeClock())
	rows, err := c.Fetch(context.Background(), models.SourceMODIS, models.WindowRecent24h)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "30.9012", rows[0].Latitude)
	assert.Equal(t, "75.8534", rows[0].Longitude)
	assert.Equal(t, "325.4", rows[0].Brightness)
	assert.Equal(t, "85", rows[0].Confidence)
	assert.Equal(t, "2025-11-02", rows[0].AcqDate)
	assert.Equal(t, "512", rows[0].AcqTime)
	assert.Equal(t, "22.3", rows[0].FRP)
	assert.Equal(t, "1.1", rows[0].Scan)
}

func TestClient_Fetch_ViirsUsesTI4Brightness(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "ms:fires_snpp_24hrs", r.URL.Query().Get("TYPENAME"))
		fmt.Fprint(w, viirsCSV)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, clockwork.NewFakeClock())
	rows, err := c.Fetch(context.Background(), models.SourceVIIRS, models.WindowRecent24h)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "331.8", rows[0].Brightness)
	assert.Equal(t, "n", rows[0].Confidence)
}

func TestClient_Fetch_RetriesServerErrors(t *testing.T) {
	var attempts atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		switch attempts.Add(1) {
		case 1:
			w.WriteHeader(http.StatusServiceUnavailable)
		case 2:
			w.WriteHeader(http.StatusTooManyRequests)
		default:
			fmt.Fprint(w, modisCSV)
		}
	}))
	defer srv.Close()

	fc := clockwork.NewFakeClock()
	c := newTestClient(t, srv.URL, fc)

	res := fetchAsync(t, c, fc, models.SourceMODIS, time.Second, 1500*time.Millisecond)
	require.NoError(t, res.err)
	assert.Len(t, res.rows, 2)
	assert.Equal(t, int32(3), attempts.Load())
}

func TestClient_Fetch_ExhaustedRetries(t *testing.T) {
	var attempts atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		attempts.Add(1)
		http.Error(w, "maintenance", http.StatusBadGateway)
	}))
	defer srv.Close()

	fc := clockwork.NewFakeClock()
	c := newTestClient(t, srv.URL, fc)

	// Вторая задержка упирается в MaxDelay
	res := fetchAsync(t, c, fc, models.SourceMODIS, time.Second, 1500*time.Millisecond)
	require.Error(t, res.err)
	assert.ErrorIs(t, res.err, models.ErrUpstreamUnavailable)
	assert.Contains(t, res.err.Error(), "502")
	assert.Equal(t, int32(3), attempts.Load())
}

func TestClient_Fetch_ClientErrorNotRetried(t *testing.T) {
	var attempts atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		attempts.Add(1)
		http.Error(w, "invalid map key", http.StatusForbidden)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, clockwork.NewFakeClock())
	_, err := c.Fetch(context.Background(), models.SourceMODIS, models.WindowRecent7d)
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrUpstreamUnavailable)
	assert.Equal(t, int32(1), attempts.Load())
}

func TestClient_Fetch_CancelDuringBackoff(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	fc := clockwork.NewFakeClock()
	c := newTestClient(t, srv.URL, fc)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := c.Fetch(ctx, models.SourceMODIS, models.WindowRecent24h)
		done <- err
	}()

	waitCtx, waitCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer waitCancel()
	require.NoError(t, fc.BlockUntilContext(waitCtx, 1))
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, models.ErrUpstreamUnavailable)
		assert.ErrorIs(t, err, context.Canceled)
	case <-waitCtx.Done():
		t.Fatal("fetch did not stop after cancel")
	}
}

func TestClient_Fetch_MissingMapKey(t *testing.T) {
	c := newTestClient(t, "http://unused", clockwork.NewFakeClock())
	c.cfg.MapKey = ""

	_, err := c.Fetch(context.Background(), models.SourceMODIS, models.WindowRecent24h)
	assert.ErrorIs(t, err, models.ErrUpstreamUnavailable)
}

func TestTypeName(t *testing.T) {
	name, err := TypeName(models.SourceVIIRS, models.WindowRecent7d)
	require.NoError(t, err)
	assert.Equal(t, "ms:fires_snpp_7days", name)

	_, err = TypeName(models.SourceUserReported, models.WindowRecent24h)
	assert.ErrorIs(t, err, models.ErrValidation)

	_, err = TypeName(models.SourceMODIS, "recent-30d")
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestParseCSV_SkipsMalformedRows(t *testing.T) {
	data := "latitude,longitude,brightness,confidence,acq_date,acq_time\n" +
		"30.1,75.2,310.0,70,2025-11-01,0600\n" +
		"30.2,7\"5.3,311.0,71,2025-11-01,0601\n" +
		"30.3,75.4,312.0\n"

	rows, err := ParseCSV(strings.NewReader(data), models.SourceMODIS)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "30.1", rows[0].Latitude)
	// Короткая строка сохраняется с пустыми полями, её отбросит нормализация
	assert.Equal(t, "30.3", rows[1].Latitude)
	assert.Empty(t, rows[1].AcqDate)
}

func TestParseCSV_EmptyBody(t *testing.T) {
	rows, err := ParseCSV(strings.NewReader(""), models.SourceMODIS)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestParseCSV_MissingCoordinates(t *testing.T) {
	_, err := ParseCSV(strings.NewReader("brightness,confidence\n300,50\n"), models.SourceMODIS)
	assert.Error(t, err)
}
