package config

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/mitchellh/mapstructure"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

// Metric registry category keys.
const (
	CategoryFrequency = "frequency_distribution"
	CategoryOverlap   = "overlap_metrics"
)

// Metric keys used by the analyzer.
const (
	MetricNominal    = "nominal"
	MetricPercentage = "percentage"
	MetricZScore     = "z_score"
	MetricReports    = "reports"
	MetricJaccard    = "jaccard_index"
	MetricBOScore    = "bo_score"
)

const metricsSchemaURL = "metrics.schema.json"

//go:embed schema/metrics.schema.json
var metricsSchema []byte

//go:embed schema/metrics.yaml
var defaultMetrics []byte

// View is a named visualization of a metric.
type View struct {
	Label string `mapstructure:"label" json:"label"`
	Kind  string `mapstructure:"kind" json:"kind,omitempty"`
}

// Metric is one sub-metric of a category.
type Metric struct {
	Label          string          `mapstructure:"label" json:"label"`
	Visualizations []string        `mapstructure:"visualizations" json:"visualizations,omitempty"`
	Views          map[string]View `mapstructure:"views" json:"views,omitempty"`
}

// Category groups related metrics.
type Category struct {
	Label   string            `mapstructure:"label" json:"label"`
	Metrics map[string]Metric `mapstructure:"metrics" json:"metrics"`
}

// MetricRegistry is the read-only catalogue of metric categories and their
// visualization hints.
type MetricRegistry struct {
	categories map[string]Category
}

// DefaultMetricRegistry returns the built-in registry.
func DefaultMetricRegistry() *MetricRegistry {
	reg, err := ParseMetricRegistry(defaultMetrics)
	if err != nil {
		panic(fmt.Sprintf("built-in metric registry is invalid: %v", err))
	}
	return reg
}

// LoadMetricRegistry reads a registry from a YAML file. An empty path
// returns the built-in registry.
func LoadMetricRegistry(path string) (*MetricRegistry, error) {
	if path == "" {
		return DefaultMetricRegistry(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read metric registry: %w", err)
	}
	return ParseMetricRegistry(data)
}

// ParseMetricRegistry validates YAML data against the registry schema and decodes it.
func ParseMetricRegistry(data []byte) (*MetricRegistry, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse metric registry: %w", err)
	}

	// the schema validator expects JSON-decoded values
	js, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to convert metric registry: %w", err)
	}
	var instance any
	if err := json.Unmarshal(js, &instance); err != nil {
		return nil, fmt.Errorf("failed to convert metric registry: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(metricsSchemaURL, bytes.NewReader(metricsSchema)); err != nil {
		return nil, fmt.Errorf("failed to load metric schema: %w", err)
	}
	schema, err := compiler.Compile(metricsSchemaURL)
	if err != nil {
		return nil, fmt.Errorf("failed to compile metric schema: %w", err)
	}
	if err := schema.Validate(instance); err != nil {
		return nil, fmt.Errorf("invalid metric registry: %w", err)
	}

	categories := make(map[string]Category)
	if err := mapstructure.Decode(instance, &categories); err != nil {
		return nil, fmt.Errorf("failed to decode metric registry: %w", err)
	}
	return &MetricRegistry{categories: categories}, nil
}

// Categories returns the category keys sorted.
func (r *MetricRegistry) Categories() []string {
	keys := make([]string, 0, len(r.categories))
	for k := range r.categories {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Category returns a category by key.
func (r *MetricRegistry) Category(key string) (Category, bool) {
	c, ok := r.categories[key]
	return c, ok
}

// SubMetrics returns the metric keys of a category sorted.
func (r *MetricRegistry) SubMetrics(category string) []string {
	c, ok := r.categories[category]
	if !ok {
		return nil
	}
	keys := make([]string, 0, len(c.Metrics))
	for k := range c.Metrics {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Has reports whether category contains metric.
func (r *MetricRegistry) Has(category, metric string) bool {
	c, ok := r.categories[category]
	if !ok {
		return false
	}
	_, ok = c.Metrics[metric]
	return ok
}

// Visualizations lists the visualization hints of a metric: its named views
// (sorted) followed by its plain visualization kinds.
func (r *MetricRegistry) Visualizations(category, metric string) []string {
	c, ok := r.categories[category]
	if !ok {
		return nil
	}
	m, ok := c.Metrics[metric]
	if !ok {
		return nil
	}
	views := make([]string, 0, len(m.Views))
	for k := range m.Views {
		views = append(views, k)
	}
	sort.Strings(views)
	return append(views, m.Visualizations...)
}
