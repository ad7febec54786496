package core_test

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/goliatone/go-quarters/core"
	"github.com/goliatone/go-quarters/devkit"
)

type capturedCounter struct {
	name  string
	value int64
	tags  map[string]string
}

type capturedHistogram struct {
	name  string
	value float64
	tags  map[string]string
}

type captureMetricsRecorder struct {
	mu         sync.Mutex
	counters   []capturedCounter
	histograms []capturedHistogram
}

func (m *captureMetricsRecorder) IncCounter(_ context.Context, name string, value int64, tags map[string]string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counters = append(m.counters, capturedCounter{name: name, value: value, tags: tags})
}

func (m *captureMetricsRecorder) ObserveHistogram(_ context.Context, name string, value float64, tags map[string]string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.histograms = append(m.histograms, capturedHistogram{name: name, value: value, tags: tags})
}

func (m *captureMetricsRecorder) hasCounter(name string, status string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, counter := range m.counters {
		if counter.name == name && counter.tags["status"] == status {
			return true
		}
	}
	return false
}

type capturedLog struct {
	level  string
	msg    string
	fields map[string]any
}

type captureLogger struct {
	mu       *sync.Mutex
	records  *[]capturedLog
	defaults map[string]any
}

func newCaptureLogger() *captureLogger {
	records := []capturedLog{}
	return &captureLogger{mu: &sync.Mutex{}, records: &records, defaults: map[string]any{}}
}

func (l *captureLogger) WithFields(fields map[string]any) core.Logger {
	merged := cloneFieldMap(l.defaults)
	for key, value := range fields {
		merged[key] = value
	}
	return &captureLogger{mu: l.mu, records: l.records, defaults: merged}
}

func (l *captureLogger) Trace(msg string, args ...any) { l.record("trace", msg, args...) }
func (l *captureLogger) Debug(msg string, args ...any) { l.record("debug", msg, args...) }
func (l *captureLogger) Info(msg string, args ...any)  { l.record("info", msg, args...) }
func (l *captureLogger) Warn(msg string, args ...any)  { l.record("warn", msg, args...) }
func (l *captureLogger) Error(msg string, args ...any) { l.record("error", msg, args...) }
func (l *captureLogger) Fatal(msg string, args ...any) { l.record("fatal", msg, args...) }

func (l *captureLogger) WithContext(context.Context) core.Logger {
	return &captureLogger{mu: l.mu, records: l.records, defaults: cloneFieldMap(l.defaults)}
}

func (l *captureLogger) record(level string, msg string, args ...any) {
	fields := cloneFieldMap(l.defaults)
	for index := 0; index+1 < len(args); index += 2 {
		key, ok := args[index].(string)
		if !ok {
			continue
		}
		fields[key] = args[index+1]
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	*l.records = append(*l.records, capturedLog{level: level, msg: msg, fields: fields})
}

func (l *captureLogger) find(level string, msg string) (capturedLog, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, record := range *l.records {
		if record.level == level && record.msg == msg {
			return record, true
		}
	}
	return capturedLog{}, false
}

func cloneFieldMap(input map[string]any) map[string]any {
	output := make(map[string]any, len(input))
	for key, value := range input {
		output[key] = value
	}
	return output
}

type stubLoggerProvider struct {
	logger core.Logger
}

func (s stubLoggerProvider) GetLogger(string) core.Logger {
	return s.logger
}

func TestCallObservability_Success(t *testing.T) {
	metrics := &captureMetricsRecorder{}
	logger := newCaptureLogger()
	fake := devkit.NewFakeTransport(devkit.Raw(http.StatusOK, `{"id":"usr_1"}`))
	client := newTestClient(t, fake,
		core.WithMetricsRecorder(metrics),
		core.WithLogger(logger),
		core.WithCallIDGenerator(func() string { return "call_1" }),
	)

	resp, err := client.GetUser("tok").Execute(context.Background())
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if resp.CallID != "call_1" {
		t.Fatalf("expected generated call id, got %q", resp.CallID)
	}
	if !metrics.hasCounter("quarters.get_user.total", "success") {
		t.Fatalf("expected quarters.get_user.total success counter")
	}
	if len(metrics.histograms) != 1 || metrics.histograms[0].name != "quarters.get_user.duration_ms" {
		t.Fatalf("expected duration histogram, got %#v", metrics.histograms)
	}

	record, ok := logger.find("info", "get_user succeeded")
	if !ok {
		t.Fatalf("expected success log")
	}
	if record.fields["call_id"] != "call_1" || record.fields["status_code"] != http.StatusOK {
		t.Fatalf("unexpected log fields %v", record.fields)
	}
	if fake.Requests()[0].Metadata["call_id"] != "call_1" {
		t.Fatalf("expected call id in transport metadata")
	}
}

func TestCallObservability_Failure(t *testing.T) {
	metrics := &captureMetricsRecorder{}
	logger := newCaptureLogger()
	client := newTestClient(t,
		devkit.NewFakeTransport(devkit.Failure(errors.New("connection reset"))),
		core.WithMetricsRecorder(metrics),
		core.WithLoggerProvider(stubLoggerProvider{logger: logger}),
	)

	if _, err := client.GetAccounts("tok").Execute(context.Background()); err == nil {
		t.Fatalf("expected failure")
	}
	if !metrics.hasCounter("quarters.list_accounts.total", "failure") {
		t.Fatalf("expected failure counter")
	}
	record, ok := logger.find("error", "list_accounts failed")
	if !ok {
		t.Fatalf("expected failure log")
	}
	if record.fields["error"] == nil {
		t.Fatalf("expected error field")
	}
}

func TestCallObservability_DurationUsesClock(t *testing.T) {
	metrics := &captureMetricsRecorder{}
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	ticks := []time.Time{start, start.Add(250 * time.Millisecond)}
	var mu sync.Mutex
	now := func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		next := ticks[0]
		if len(ticks) > 1 {
			ticks = ticks[1:]
		}
		return next
	}
	client := newTestClient(t, devkit.NewFakeTransport(), core.WithMetricsRecorder(metrics), core.WithNow(now))

	if _, err := client.GetUser("tok").Execute(context.Background()); err != nil {
		t.Fatalf("get user: %v", err)
	}
	if len(metrics.histograms) != 1 || metrics.histograms[0].value != 250 {
		t.Fatalf("expected 250ms duration, got %#v", metrics.histograms)
	}
}
