package core

import (
	"context"
	"sort"
	"strings"
	"time"
)

func (r *callRuntime) observeCall(
	ctx context.Context,
	startedAt time.Time,
	operation Operation,
	err error,
	fields map[string]any,
) {
	if r == nil {
		return
	}
	name := strings.TrimSpace(strings.ToLower(string(operation)))
	if name == "" {
		name = "unknown"
	}
	status := "success"
	if err != nil {
		status = "failure"
	}
	elapsed := r.now().Sub(startedAt)

	contextFields := cloneFields(fields)
	contextFields["operation"] = name
	contextFields["status"] = status
	contextFields["duration_ms"] = elapsed.Milliseconds()
	if err != nil {
		contextFields["error"] = err.Error()
	}

	tags := map[string]string{
		"operation": name,
		"status":    status,
	}
	r.recordCounter(ctx, "quarters."+name+".total", 1, tags)
	r.recordHistogram(ctx, "quarters."+name+".duration_ms", float64(elapsed.Milliseconds()), tags)

	if err != nil {
		r.logWithLevel(ctx, "error", name+" failed", contextFields)
		return
	}
	r.logWithLevel(ctx, "info", name+" succeeded", contextFields)
}

func (r *callRuntime) logWithLevel(ctx context.Context, level string, message string, fields map[string]any) {
	if r == nil || r.logger == nil {
		return
	}
	logger := r.logger
	if ctx != nil {
		logger = logger.WithContext(ctx)
	}
	if fieldsLogger, ok := logger.(FieldsLogger); ok {
		logger = fieldsLogger.WithFields(cloneFields(fields))
	}
	args := flattenFields(fields)
	switch level {
	case "error":
		logger.Error(message, args...)
	default:
		logger.Info(message, args...)
	}
}

func (r *callRuntime) recordCounter(ctx context.Context, name string, value int64, tags map[string]string) {
	if r == nil || r.metrics == nil {
		return
	}
	r.metrics.IncCounter(ctx, name, value, cloneTags(tags))
}

func (r *callRuntime) recordHistogram(ctx context.Context, name string, value float64, tags map[string]string) {
	if r == nil || r.metrics == nil {
		return
	}
	r.metrics.ObserveHistogram(ctx, name, value, cloneTags(tags))
}

func cloneFields(fields map[string]any) map[string]any {
	if len(fields) == 0 {
		return map[string]any{}
	}
	copied := make(map[string]any, len(fields))
	for key, value := range fields {
		copied[key] = value
	}
	return copied
}

func flattenFields(fields map[string]any) []any {
	if len(fields) == 0 {
		return nil
	}
	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	args := make([]any, 0, len(keys)*2)
	for _, key := range keys {
		args = append(args, key, fields[key])
	}
	return args
}
