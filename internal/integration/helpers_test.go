//go:build integration

package integration_test

import (
	"context"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tckafka "github.com/testcontainers/testcontainers-go/modules/kafka"

	"github.com/couchcryptid/marine-obs-service/internal/domain"
)

// startKafka runs a single-broker Kafka container and returns its bootstrap
// address.
func startKafka(ctx context.Context, t *testing.T) string {
	t.Helper()

	ctr, err := tckafka.Run(ctx, "confluentinc/confluent-local:7.5.0",
		tckafka.WithClusterID("test-cluster"))
	testcontainers.CleanupContainer(t, ctr)
	require.NoError(t, err, "start kafka container")

	brokers, err := ctr.Brokers(ctx)
	require.NoError(t, err, "resolve kafka brokers")
	require.NotEmpty(t, brokers)
	return brokers[0]
}

// createTopic creates a single-partition topic on the broker's controller.
func createTopic(t *testing.T, broker, topic string) {
	t.Helper()

	conn, err := kafkago.Dial("tcp", broker)
	require.NoError(t, err, "dial broker")
	defer conn.Close()

	controller, err := conn.Controller()
	require.NoError(t, err, "resolve controller")

	controllerConn, err := kafkago.Dial("tcp", net.JoinHostPort(controller.Host, strconv.Itoa(controller.Port)))
	require.NoError(t, err, "dial controller")
	defer controllerConn.Close()

	require.NoError(t, controllerConn.CreateTopics(kafkago.TopicConfig{
		Topic:             topic,
		NumPartitions:     1,
		ReplicationFactor: 1,
	}), "create topic %s", topic)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// feedServer serves the two station feeds over HTTP with swappable bodies,
// standing in for the upstream observation host.
type feedServer struct {
	mu        sync.Mutex
	tabular   string
	narrative string
	srv       *httptest.Server
}

func newFeedServer(t *testing.T, station, tabular, narrative string) *feedServer {
	t.Helper()

	fs := &feedServer{tabular: tabular, narrative: narrative}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /data/realtime2/"+station+".txt", func(w http.ResponseWriter, r *http.Request) {
		fs.serve(w, r, fs.currentTabular())
	})
	mux.HandleFunc("GET /data/latest_obs/"+station+".txt", func(w http.ResponseWriter, r *http.Request) {
		fs.serve(w, r, fs.currentNarrative())
	})

	fs.srv = httptest.NewServer(mux)
	t.Cleanup(fs.srv.Close)
	return fs
}

// serve answers 404 for an empty body so tests can simulate a feed outage.
func (f *feedServer) serve(w http.ResponseWriter, r *http.Request, text string) {
	if text == "" {
		http.NotFound(w, r)
		return
	}
	_, _ = io.WriteString(w, text)
}

func (f *feedServer) url() string { return f.srv.URL }

func (f *feedServer) setTabular(text string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tabular = text
}

func (f *feedServer) currentTabular() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.tabular
}

func (f *feedServer) currentNarrative() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.narrative
}

// publishedObservation holds a deserialized message read from the sink topic.
type publishedObservation struct {
	Obs     domain.Observation
	Key     string
	Headers map[string]string
}

// readObservation reads a single message from the sink consumer and decodes it.
func readObservation(ctx context.Context, t *testing.T, consumer *kafkago.Reader) publishedObservation {
	t.Helper()

	readCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	msg, err := consumer.ReadMessage(readCtx)
	require.NoError(t, err, "read from sink topic")

	headers := make(map[string]string, len(msg.Headers))
	for _, h := range msg.Headers {
		headers[h.Key] = string(h.Value)
	}
	obs, err := domain.DecodeObservation(msg.Value)
	require.NoError(t, err, "decode sink message")

	return publishedObservation{
		Obs:     obs,
		Key:     string(msg.Key),
		Headers: headers,
	}
}
