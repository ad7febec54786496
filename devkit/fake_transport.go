// Package devkit holds test doubles for code built on the Quarters client.
package devkit

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/goliatone/go-quarters/core"
)

const KindFake = "fake"

// Script is one canned transport outcome.
type Script struct {
	Response core.TransportResponse
	Err      error
}

// JSON scripts a response with the given status and a JSON-encoded body.
func JSON(status int, value any) Script {
	body, err := json.Marshal(value)
	if err != nil {
		return Script{Err: fmt.Errorf("devkit: encode scripted body: %w", err)}
	}
	return Raw(status, string(body))
}

// Raw scripts a response with a literal body.
func Raw(status int, body string) Script {
	return Script{Response: core.TransportResponse{
		StatusCode: status,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       []byte(body),
	}}
}

func Failure(err error) Script {
	return Script{Err: err}
}

// FakeTransport replays scripts in order and records every request. Once the
// scripts run out the last one repeats; with no scripts it answers 200 {}.
type FakeTransport struct {
	mu       sync.Mutex
	scripts  []Script
	requests []core.TransportRequest
	block    chan struct{}
}

func NewFakeTransport(scripts ...Script) *FakeTransport {
	return &FakeTransport{scripts: append([]Script(nil), scripts...)}
}

// Block makes Do wait until the returned release func is called or the
// request context ends.
func (f *FakeTransport) Block() (release func()) {
	f.mu.Lock()
	defer f.mu.Unlock()
	gate := make(chan struct{})
	f.block = gate
	var once sync.Once
	return func() { once.Do(func() { close(gate) }) }
}

func (*FakeTransport) Kind() string {
	return KindFake
}

func (f *FakeTransport) Do(ctx context.Context, req core.TransportRequest) (core.TransportResponse, error) {
	if f == nil {
		return core.TransportResponse{}, fmt.Errorf("devkit: fake transport is nil")
	}
	f.mu.Lock()
	f.requests = append(f.requests, req)
	index := len(f.requests) - 1
	gate := f.block
	var script *Script
	switch {
	case index < len(f.scripts):
		script = &f.scripts[index]
	case len(f.scripts) > 0:
		script = &f.scripts[len(f.scripts)-1]
	}
	f.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return core.TransportResponse{}, ctx.Err()
		}
	}
	if script == nil {
		return core.TransportResponse{StatusCode: http.StatusOK, Body: []byte("{}")}, nil
	}
	res := script.Response
	res.Body = append([]byte(nil), res.Body...)
	return res, script.Err
}

func (f *FakeTransport) Requests() []core.TransportRequest {
	if f == nil {
		return nil
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]core.TransportRequest(nil), f.requests...)
}

// LastRequest returns the most recent request, or false when none was sent.
func (f *FakeTransport) LastRequest() (core.TransportRequest, bool) {
	requests := f.Requests()
	if len(requests) == 0 {
		return core.TransportRequest{}, false
	}
	return requests[len(requests)-1], true
}

// DecodeBody unmarshals a recorded request body into a generic map.
func DecodeBody(req core.TransportRequest) (map[string]any, error) {
	out := map[string]any{}
	if len(req.Body) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(req.Body, &out); err != nil {
		return nil, err
	}
	return out, nil
}

var _ core.TransportAdapter = (*FakeTransport)(nil)
