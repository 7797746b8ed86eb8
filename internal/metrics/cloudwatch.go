package metrics

import (
	"context"
	"log"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
)

const (
	namespace                = "PromptArchitect/API"
	httpStatusServerError    = 500
	cloudwatchTimeoutSeconds = 5
)

// Client wraps CloudWatch client for custom metrics
// A nil or disabled Client drops every metric
type Client struct {
	client      *cloudwatch.Client
	enabled     bool
	environment string
}

// NewClient creates a new CloudWatch metrics client
func NewClient(ctx context.Context, environment string, enabled bool) *Client {
	// Only enable in production
	if environment != "production" || !enabled {
		log.Printf("📊 CloudWatch Metrics: DISABLED (environment: %s)", environment)
		return &Client{
			enabled:     false,
			environment: environment,
		}
	}

	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		log.Printf("⚠️  Failed to load AWS config for CloudWatch: %v", err)
		return &Client{enabled: false, environment: environment}
	}

	log.Printf("📊 CloudWatch Metrics: ✅ ENABLED (namespace: %s)", namespace)

	return &Client{
		client:      cloudwatch.NewFromConfig(cfg),
		enabled:     true,
		environment: environment,
	}
}

// Enabled reports whether metrics are sent to CloudWatch
func (m *Client) Enabled() bool {
	return m != nil && m.enabled && m.client != nil
}

// RecordAPIRequest records an API request metric
func (m *Client) RecordAPIRequest(_ context.Context, endpoint string, statusCode int, duration time.Duration) {
	if !m.Enabled() {
		return
	}

	metricName := "APIRequests"
	if statusCode >= httpStatusServerError {
		metricName = "APIErrors"
	}

	dimensions := []types.Dimension{
		{Name: aws.String("Endpoint"), Value: aws.String(endpoint)},
		{Name: aws.String("Environment"), Value: aws.String(m.environment)},
	}

	go m.putMetrics(dimensions,
		datum(metricName, 1, types.StandardUnitCount),
		datum("APILatency", float64(duration.Milliseconds()), types.StandardUnitMilliseconds),
	)
}

// RecordGeneration records generation outcome, latency and token usage
func (m *Client) RecordGeneration(_ context.Context, sample GenerationSample) {
	if !m.Enabled() {
		return
	}

	dimensions := []types.Dimension{
		{Name: aws.String("Provider"), Value: aws.String(sample.Provider)},
		{Name: aws.String("Outcome"), Value: aws.String(sample.Outcome)},
		{Name: aws.String("Environment"), Value: aws.String(m.environment)},
	}

	data := []types.MetricDatum{
		datum("Generations", 1, types.StandardUnitCount),
		datum("GenerationDuration", float64(sample.Duration.Milliseconds()), types.StandardUnitMilliseconds),
	}
	if sample.TotalTokens > 0 {
		data = append(data,
			datum("Tokens/Input", float64(sample.InputTokens), types.StandardUnitCount),
			datum("Tokens/Output", float64(sample.OutputTokens), types.StandardUnitCount),
			datum("Tokens/Total", float64(sample.TotalTokens), types.StandardUnitCount),
		)
	}

	go m.putMetrics(dimensions, data...)
}

func datum(name string, value float64, unit types.StandardUnit) types.MetricDatum {
	return types.MetricDatum{
		MetricName: aws.String(name),
		Value:      aws.Float64(value),
		Unit:       unit,
	}
}

// putMetrics sends the data points to CloudWatch in one call
func (m *Client) putMetrics(dimensions []types.Dimension, data ...types.MetricDatum) {
	timeout := time.Duration(cloudwatchTimeoutSeconds) * time.Second
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	now := time.Now()
	for i := range data {
		data[i].Timestamp = aws.Time(now)
		data[i].Dimensions = dimensions
	}

	if _, err := m.client.PutMetricData(ctx, &cloudwatch.PutMetricDataInput{
		Namespace:  aws.String(namespace),
		MetricData: data,
	}); err != nil {
		log.Printf("Failed to record CloudWatch metrics: %v", err)
	}
}
