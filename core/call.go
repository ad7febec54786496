package core

import (
	"context"
	"net/http"
	"sync"
	"time"

	goerrors "github.com/goliatone/go-errors"
)

// callRuntime is the state shared by every call a client creates. It is never
// mutated after the client is built.
type callRuntime struct {
	transport   TransportAdapter
	logger      Logger
	metrics     MetricsRecorder
	errorMapper ErrorMapper
	executor    CallbackExecutor
	callIDs     func() string
	now         func() time.Time
}

func (r *callRuntime) mapError(err error) error {
	if err == nil {
		return nil
	}
	if r == nil || r.errorMapper == nil {
		return err
	}
	mapped := r.errorMapper(err)
	if mapped == nil {
		return err
	}
	return mapped
}

type Response[T any] struct {
	CallID     string
	StatusCode int
	Headers    map[string]string
	Body       []byte
	Value      T
}

func (r *Response[T]) IsSuccessful() bool {
	return r != nil && r.StatusCode >= http.StatusOK && r.StatusCode < http.StatusMultipleChoices
}

type Callback[T any] func(resp *Response[T], err error)

// Call is a pending, single-use request. Execute runs it on the caller's
// goroutine, Enqueue runs it in the background.
type Call[T any] struct {
	runtime   *callRuntime
	operation Operation
	request   TransportRequest
	decode    Decoder[T]
	buildErr  error

	mu       sync.Mutex
	executed bool
	canceled bool
	cancel   context.CancelFunc
}

func newCall[T any](runtime *callRuntime, operation Operation, request TransportRequest, decode Decoder[T], buildErr error) *Call[T] {
	if decode == nil {
		decode = JSONDecoder[T]()
	}
	return &Call[T]{
		runtime:   runtime,
		operation: operation,
		request:   cloneTransportRequest(request),
		decode:    decode,
		buildErr:  buildErr,
	}
}

func (c *Call[T]) Operation() Operation {
	if c == nil {
		return ""
	}
	return c.operation
}

// Request returns a copy of the transport request the call will send.
func (c *Call[T]) Request() TransportRequest {
	if c == nil {
		return TransportRequest{}
	}
	return cloneTransportRequest(c.request)
}

func (c *Call[T]) Execute(ctx context.Context) (*Response[T], error) {
	if ctx == nil {
		ctx = context.Background()
	}
	runCtx, err := c.begin(ctx)
	if err != nil {
		return nil, err
	}
	return c.run(runCtx)
}

// Enqueue starts the call in the background and hands the outcome to callback
// through the client's CallbackExecutor. It fails immediately when the call
// was already executed.
func (c *Call[T]) Enqueue(ctx context.Context, callback Callback[T]) error {
	if ctx == nil {
		ctx = context.Background()
	}
	runCtx, err := c.begin(ctx)
	if err != nil {
		return err
	}
	executor := c.runtime.executor
	if executor == nil {
		executor = InlineExecutor
	}
	go func() {
		resp, runErr := c.run(runCtx)
		if callback == nil {
			return
		}
		executor(func() {
			callback(resp, runErr)
		})
	}()
	return nil
}

// Cancel aborts the call. A call canceled before it starts never reaches the transport.
func (c *Call[T]) Cancel() {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.canceled = true
	if c.cancel != nil {
		c.cancel()
	}
}

func (c *Call[T]) IsCanceled() bool {
	if c == nil {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.canceled
}

func (c *Call[T]) IsExecuted() bool {
	if c == nil {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.executed
}

// Clone returns an unexecuted copy of the call.
func (c *Call[T]) Clone() *Call[T] {
	if c == nil {
		return nil
	}
	return newCall(c.runtime, c.operation, c.request, c.decode, c.buildErr)
}

func (c *Call[T]) begin(ctx context.Context) (context.Context, error) {
	if c == nil || c.runtime == nil || c.runtime.transport == nil {
		return nil, newError("quarters: call is not configured with a transport", goerrors.CategoryInternal, ErrorInternal)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.executed {
		return nil, newError("quarters: call already executed", goerrors.CategoryConflict, ErrorAlreadyExecuted)
	}
	c.executed = true
	if c.canceled {
		return nil, newError("quarters: call canceled", goerrors.CategoryOperation, ErrorCallCanceled)
	}
	runCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	return runCtx, nil
}

func (c *Call[T]) run(ctx context.Context) (*Response[T], error) {
	defer c.release()

	startedAt := c.runtime.now()
	callID := c.runtime.callIDs()
	fields := map[string]any{
		"call_id": callID,
		"method":  c.request.Method,
		"path":    c.request.Metadata["path"],
	}

	if c.buildErr != nil {
		err := c.runtime.mapError(c.buildErr)
		c.runtime.observeCall(ctx, startedAt, c.operation, err, fields)
		return nil, err
	}

	request := cloneTransportRequest(c.request)
	request.Metadata["call_id"] = callID
	res, err := c.runtime.transport.Do(ctx, request)
	if err != nil {
		if ctx.Err() != nil {
			err = wrapError(err, goerrors.CategoryOperation, "quarters: call canceled", ErrorCallCanceled)
		}
		err = c.runtime.mapError(err)
		c.runtime.observeCall(ctx, startedAt, c.operation, err, fields)
		return nil, err
	}

	out := &Response[T]{
		CallID:     callID,
		StatusCode: res.StatusCode,
		Headers:    res.Headers,
		Body:       res.Body,
	}
	fields["status_code"] = res.StatusCode

	if !out.IsSuccessful() {
		err := c.runtime.mapError(statusError(c.operation, res.StatusCode, res.Body))
		c.runtime.observeCall(ctx, startedAt, c.operation, err, fields)
		return out, err
	}

	value, err := c.decode(res.Body)
	if err != nil {
		err = c.runtime.mapError(wrapError(err, goerrors.CategoryExternal, "quarters: decode "+string(c.operation)+" response", ErrorDecodeFailed))
		c.runtime.observeCall(ctx, startedAt, c.operation, err, fields)
		return out, err
	}
	out.Value = value
	c.runtime.observeCall(ctx, startedAt, c.operation, nil, fields)
	return out, nil
}

func (c *Call[T]) release() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cancel != nil {
		c.cancel()
	}
}

func cloneTransportRequest(in TransportRequest) TransportRequest {
	out := TransportRequest{
		Method:               in.Method,
		URL:                  in.URL,
		Headers:              map[string]string{},
		Query:                map[string]string{},
		Body:                 append([]byte(nil), in.Body...),
		Metadata:             map[string]any{},
		Timeout:              in.Timeout,
		MaxResponseBodyBytes: in.MaxResponseBodyBytes,
	}
	for key, value := range in.Headers {
		out.Headers[key] = value
	}
	for key, value := range in.Query {
		out.Query[key] = value
	}
	for key, value := range in.Metadata {
		out.Metadata[key] = value
	}
	return out
}
