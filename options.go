package attrcodec

import (
	"log/slog"

	"github.com/hupe1980/attrcodec/resource"
)

type options struct {
	attrExt          string
	rowIDExt         string
	rowIDFile        string
	metricsCollector MetricsCollector
	logger           *Logger
	resources        *resource.Controller
}

// Option configures a Codec.
type Option func(*options)

// WithAttributeExtension sets the file extension of attribute files.
// A missing leading dot is added; an empty extension keeps the default (.ra).
// A file matches when the text from the last dot of its name equals ext, so
// an extension with more than one dot matches nothing.
func WithAttributeExtension(ext string) Option {
	return func(o *options) {
		o.attrExt = normalizeExtension(ext, DefaultAttributeExtension)
	}
}

// WithRowIDExtension sets the file extension of row-id files.
// A missing leading dot is added; an empty extension keeps the default (.uid).
// Any file whose name ends with ext is a row-id file.
func WithRowIDExtension(ext string) Option {
	return func(o *options) {
		o.rowIDExt = normalizeExtension(ext, DefaultRowIDExtension)
	}
}

// WithRowIDPersistence makes WriteAll also write the row identifiers of the
// set's first attribute (by name) to <baseName><row-id extension>.
//
// By default WriteAll persists attribute payloads only and a segment's
// row-id file has to be written by whoever owns the row identifiers.
// Enabling this changes what WriteAll leaves on disk: a later ReadAll then
// returns the written row identifiers instead of an empty list.
func WithRowIDPersistence(baseName string) Option {
	return func(o *options) {
		o.rowIDFile = baseName
	}
}

// WithMetricsCollector configures a metrics collector for codec operations.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &attrcodec.BasicMetricsCollector{}
//	c := attrcodec.New(attrcodec.WithMetricsCollector(metrics))
//	// ... use c ...
//	stats := metrics.GetStats()
//	fmt.Printf("Reads: %d, bytes: %d\n", stats.ReadAllCount, stats.ReadAllBytes)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := attrcodec.NewJSONLogger(slog.LevelInfo)
//	c := attrcodec.New(attrcodec.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithResourceController shares a resource controller that throttles payload
// IO and bounds decode buffers. Pass the same controller to several codecs to
// limit them together.
func WithResourceController(rc *resource.Controller) Option {
	return func(o *options) {
		o.resources = rc
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		attrExt:          DefaultAttributeExtension,
		rowIDExt:         DefaultRowIDExtension,
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
