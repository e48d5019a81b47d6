package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/shenikar/fire_monitoring_system/internal/config"
	"github.com/shenikar/fire_monitoring_system/internal/models"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWorker(t *testing.T, url string, clock clockwork.Clock) *AlertWorker {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах

	cfg := &config.Config{
		WebhookURL:        url,
		WebhookSecret:     "secret",
		WebhookTimeout:    time.Second,
		WebhookMaxRetries: 3,
		WebhookBaseDelay:  time.Second,
	}
	return NewAlertWorker(nil, logger, cfg, clock)
}

func testEvent(t *testing.T) (AlertEvent, string) {
	t.Helper()
	event := AlertEvent{
		EventID:   "evt-1",
		Window:    models.WindowRecent24h,
		Timestamp: time.Date(2025, 11, 2, 6, 0, 0, 0, time.UTC),
		Fires: []*models.FireRecord{
			{ID: "MODIS_30.9012_75.8534_2025-11-02_0512", Latitude: 30.9012, Longitude: 75.8534, Confidence: 85, Source: models.SourceMODIS},
		},
	}
	payload, err := json.Marshal(event)
	require.NoError(t, err)
	return event, string(payload)
}

func TestProcessAlertEvent_SignedDelivery(t *testing.T) {
	event, payload := testEvent(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		assert.NoError(t, err)
		assert.Equal(t, payload, string(body))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, generateHMACSHA256(payload, "secret"), r.Header.Get(signatureHeader))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	w := newTestWorker(t, srv.URL, clockwork.NewFakeClock())
	assert.True(t, w.processAlertEvent(context.Background(), event, payload))
}

func TestProcessAlertEvent_RetriesWithBackoff(t *testing.T) {
	event, payload := testEvent(t)

	var attempts atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if attempts.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	fc := clockwork.NewFakeClock()
	w := newTestWorker(t, srv.URL, fc)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	done := make(chan bool, 1)
	go func() { done <- w.processAlertEvent(ctx, event, payload) }()

	// Задержка удваивается: 1s, затем 2s
	for _, d := range []time.Duration{time.Second, 2 * time.Second} {
		require.NoError(t, fc.BlockUntilContext(ctx, 1))
		fc.Advance(d)
	}

	select {
	case ok := <-done:
		assert.True(t, ok)
		assert.Equal(t, int32(3), attempts.Load())
	case <-ctx.Done():
		t.Fatal("delivery did not finish")
	}
}

func TestProcessAlertEvent_GivesUp(t *testing.T) {
	event, payload := testEvent(t)

	var attempts atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	fc := clockwork.NewFakeClock()
	w := newTestWorker(t, srv.URL, fc)
	w.cfg.WebhookMaxRetries = 2

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	done := make(chan bool, 1)
	go func() { done <- w.processAlertEvent(ctx, event, payload) }()

	require.NoError(t, fc.BlockUntilContext(ctx, 1))
	fc.Advance(time.Second)

	select {
	case ok := <-done:
		assert.False(t, ok)
		assert.Equal(t, int32(2), attempts.Load())
	case <-ctx.Done():
		t.Fatal("delivery did not finish")
	}
}

func TestProcessAlertEvent_NoURL(t *testing.T) {
	event, payload := testEvent(t)
	w := newTestWorker(t, "", clockwork.NewFakeClock())

	assert.False(t, w.processAlertEvent(context.Background(), event, payload))
}

func TestGenerateHMACSHA256(t *testing.T) {
	// echo -n 'payload' | openssl dgst -sha256 -hmac 'key'
	assert.Equal(t, "5d98b45c90a207fa998ce639fea6f02ecc8cc3f36fef81d694fb856b4d0a28ca", generateHMACSHA256("payload", "key"))
	assert.NotEqual(t, generateHMACSHA256("payload", "key"), generateHMACSHA256("payload", "other"))
}
