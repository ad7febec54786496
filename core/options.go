package core

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/goliatone/go-config/cfgx"
	goerrors "github.com/goliatone/go-errors"
	glog "github.com/goliatone/go-logger/glog"
	opts "github.com/goliatone/go-options"
	"github.com/google/uuid"
)

type ErrorMapper func(err error) *goerrors.Error

type ConfigProvider interface {
	Load(ctx context.Context, defaults Config) (Config, error)
}

type RawConfigLoader interface {
	LoadRaw(ctx context.Context) (map[string]any, error)
}

type OptionsResolver interface {
	Resolve(defaults Config, loaded Config, runtime Config) (Config, error)
}

type clientBuilder struct {
	runtimeConfig    Config
	logger           Logger
	loggerProvider   LoggerProvider
	metricsRecorder  MetricsRecorder
	errorMapper      ErrorMapper
	configProvider   ConfigProvider
	optionsResolver  OptionsResolver
	transport        TransportAdapter
	callbackExecutor CallbackExecutor
	callIDs          func() string
	now              func() time.Time
	shortURLs        *bool
}

type Option func(*clientBuilder)

// WithLogger also replaces the default provider so every named logger the
// client asks for resolves to logger.
func WithLogger(logger Logger) Option {
	return func(b *clientBuilder) {
		b.logger = logger
		if logger != nil {
			b.loggerProvider = glog.ProviderFromLogger(logger)
		}
	}
}

func WithLoggerProvider(provider LoggerProvider) Option {
	return func(b *clientBuilder) {
		b.loggerProvider = provider
	}
}

func WithMetricsRecorder(recorder MetricsRecorder) Option {
	return func(b *clientBuilder) {
		b.metricsRecorder = recorder
	}
}

func WithErrorMapper(mapper ErrorMapper) Option {
	return func(b *clientBuilder) {
		b.errorMapper = mapper
	}
}

func WithConfigProvider(provider ConfigProvider) Option {
	return func(b *clientBuilder) {
		b.configProvider = provider
	}
}

func WithOptionsResolver(resolver OptionsResolver) Option {
	return func(b *clientBuilder) {
		b.optionsResolver = resolver
	}
}

func WithTransport(adapter TransportAdapter) Option {
	return func(b *clientBuilder) {
		b.transport = adapter
	}
}

// WithCallbackExecutor controls where Enqueue callbacks run.
func WithCallbackExecutor(executor CallbackExecutor) Option {
	return func(b *clientBuilder) {
		b.callbackExecutor = executor
	}
}

// WithShortURLs sets Config.ShortURLs after all config layers are merged, so
// false overrides a loaded true.
func WithShortURLs(enabled bool) Option {
	return func(b *clientBuilder) {
		b.shortURLs = &enabled
	}
}

func WithCallIDGenerator(generator func() string) Option {
	return func(b *clientBuilder) {
		b.callIDs = generator
	}
}

func WithNow(now func() time.Time) Option {
	return func(b *clientBuilder) {
		b.now = now
	}
}

func defaultClientBuilder(runtime Config) clientBuilder {
	loggerProvider, logger := glog.Resolve("quarters", nil, nil)
	return clientBuilder{
		runtimeConfig:    runtime,
		loggerProvider:   loggerProvider,
		logger:           logger,
		metricsRecorder:  NopMetricsRecorder{},
		errorMapper:      MapError,
		configProvider:   NewCfgxConfigProvider(nil),
		optionsResolver:  GoOptionsResolver{},
		callbackExecutor: InlineExecutor,
		callIDs:          uuid.NewString,
		now:              func() time.Time { return time.Now().UTC() },
	}
}

// InlineExecutor runs the callback on the goroutine that completed the call.
func InlineExecutor(task func()) {
	task()
}

type StaticConfigLoader struct {
	Values map[string]any
}

func (l StaticConfigLoader) LoadRaw(context.Context) (map[string]any, error) {
	if len(l.Values) == 0 {
		return map[string]any{}, nil
	}
	out := make(map[string]any, len(l.Values))
	for key, value := range l.Values {
		out[key] = value
	}
	return out, nil
}

type CfgxConfigProvider struct {
	Loader RawConfigLoader
}

func NewCfgxConfigProvider(loader RawConfigLoader) *CfgxConfigProvider {
	return &CfgxConfigProvider{Loader: loader}
}

func (p *CfgxConfigProvider) Load(ctx context.Context, defaults Config) (Config, error) {
	if p == nil {
		return defaults, nil
	}
	loader := p.Loader
	if loader == nil {
		loader = StaticConfigLoader{}
	}
	raw, err := loader.LoadRaw(ctx)
	if err != nil {
		return Config{}, err
	}
	if len(raw) == 0 {
		return defaults, nil
	}
	if err := normalizeRawEnvironment(raw); err != nil {
		return Config{}, err
	}
	cfg, err := cfgx.Build[Config](raw,
		cfgx.WithDefaults(defaults),
	)
	if err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func normalizeRawEnvironment(raw map[string]any) error {
	value, ok := raw["environment"]
	if !ok {
		return nil
	}
	text, ok := value.(string)
	if !ok {
		return fmt.Errorf("core: environment must be a string, got %T", value)
	}
	env, err := ParseEnvironment(text)
	if err != nil {
		return err
	}
	raw["environment"] = string(env)
	return nil
}

type GoOptionsResolver struct{}

func (GoOptionsResolver) Resolve(defaults Config, loaded Config, runtime Config) (Config, error) {
	loaded, err := normalizeConfigEnvironment(loaded)
	if err != nil {
		return Config{}, err
	}
	runtime, err = normalizeConfigEnvironment(runtime)
	if err != nil {
		return Config{}, err
	}

	defaultLayer := configToLayerMap(defaults, true)
	loadedLayer := configToLayerMap(loaded, false)
	runtimeLayer := configToLayerMap(runtime, false)

	stack, err := opts.NewStack(
		opts.NewLayer(
			opts.NewScope("defaults", 0),
			defaultLayer,
			opts.WithSnapshotID[map[string]any]("defaults"),
		),
		opts.NewLayer(
			opts.NewScope("config", 10),
			loadedLayer,
			opts.WithSnapshotID[map[string]any]("config"),
		),
		opts.NewLayer(
			opts.NewScope("runtime", 20),
			runtimeLayer,
			opts.WithSnapshotID[map[string]any]("runtime"),
		),
	)
	if err != nil {
		return Config{}, fmt.Errorf("core: options stack build failed: %w", err)
	}
	merged, err := stack.Merge()
	if err != nil {
		return Config{}, fmt.Errorf("core: options merge failed: %w", err)
	}
	resolved, err := cfgx.Build[Config](merged.Value,
		cfgx.WithDefaults(defaults),
		cfgx.WithValidator[Config]((*Config).Validate),
	)
	if err != nil {
		return Config{}, err
	}
	if err := resolved.Validate(); err != nil {
		return Config{}, err
	}
	return resolved, nil
}

func normalizeConfigEnvironment(cfg Config) (Config, error) {
	if strings.TrimSpace(string(cfg.Environment)) == "" {
		return cfg, nil
	}
	env, err := ParseEnvironment(string(cfg.Environment))
	if err != nil {
		return Config{}, wrapError(err, goerrors.CategoryBadInput, "core: invalid environment", ErrorBadInput)
	}
	cfg.Environment = env
	return cfg, nil
}

// configToLayerMap skips zero values unless includeZero is set, so a false
// ShortURLs in a higher layer does not mask a lower true. Use WithShortURLs
// to force false.
func configToLayerMap(cfg Config, includeZero bool) map[string]any {
	layer := map[string]any{}
	if includeZero || strings.TrimSpace(cfg.ClientID) != "" {
		layer["client_id"] = strings.TrimSpace(cfg.ClientID)
	}
	if includeZero || strings.TrimSpace(cfg.ClientKey) != "" {
		layer["client_key"] = strings.TrimSpace(cfg.ClientKey)
	}
	if includeZero || cfg.Environment != "" {
		layer["environment"] = string(cfg.Environment)
	}
	if includeZero || cfg.ShortURLs {
		layer["short_urls"] = cfg.ShortURLs
	}
	return layer
}
