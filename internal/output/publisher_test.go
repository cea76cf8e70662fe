package output

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/chrisdamba/foodwaste/internal/models"
)

func sampleResponse() models.AnalysisResponse {
	return models.AnalysisResponse{
		Status: models.StatusSuccess,
		Data: &models.AnalysisResult{
			Correlations: map[string]models.CorrelationResult{
				"on_time_rate_vs_total_waste_lb": {PearsonCorrelation: -0.8, PearsonPValue: 0.01, NSamples: 9},
			},
			Regressions: map[string]models.RegressionResult{},
			Summary: models.CorrelationSummary{
				Correlations:       map[string]models.SummaryEntry{"on_time_rate_vs_total_waste_lb": {Pearson: -0.8, NSamples: 9}},
				StrongCorrelations: []models.StrongCorrelation{},
			},
			RestaurantsAnalyzed: 9,
		},
	}
}

func TestKafkaPublisher(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	producer.ExpectSendMessageWithCheckerFunctionAndSucceed(func(val []byte) error {
		var resp models.AnalysisResponse
		if err := json.Unmarshal(val, &resp); err != nil {
			return err
		}
		if resp.Status != models.StatusSuccess || resp.Data.RestaurantsAnalyzed != 9 {
			return errors.New("unexpected payload")
		}
		return nil
	})

	pub := NewKafkaPublisherWithProducer(producer, "analysis")
	require.NoError(t, pub.Publish(context.Background(), "run-1", sampleResponse()))
	require.NoError(t, pub.Close())
}

func TestKafkaPublisherSendFailure(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	pub := NewKafkaPublisherWithProducer(producer, "analysis")
	err := pub.Publish(context.Background(), "run-1", sampleResponse())
	assert.ErrorIs(t, err, sarama.ErrOutOfBrokers)
	require.NoError(t, pub.Close())
}

func TestKafkaPublisherCancelledContext(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	pub := NewKafkaPublisherWithProducer(producer, "analysis")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, pub.Publish(ctx, "run-1", sampleResponse()), context.Canceled)
	require.NoError(t, pub.Close())
}

func TestConsolePublisherJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewConsolePublisher(&buf, FormatJSON).Publish(context.Background(), "run", sampleResponse()))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "success", decoded["status"])
	assert.Contains(t, buf.String(), `"strong_correlations": []`)
}

func TestConsolePublisherYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewConsolePublisher(&buf, FormatYAML).Publish(context.Background(), "run", sampleResponse()))

	var decoded map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "success", decoded["status"])
	data := decoded["data"].(map[string]any)
	assert.Equal(t, 9, data["restaurants_analyzed"])
}

func TestConsolePublisherUnknownFormat(t *testing.T) {
	err := NewConsolePublisher(&bytes.Buffer{}, "xml").Publish(context.Background(), "run", sampleResponse())
	assert.Error(t, err)
}

func TestMultiPublisher(t *testing.T) {
	var a, b bytes.Buffer
	pub := MultiPublisher{NewConsolePublisher(&a, FormatJSON), NewConsolePublisher(&b, FormatYAML)}

	require.NoError(t, pub.Publish(context.Background(), "run", sampleResponse()))
	assert.NotEmpty(t, a.String())
	assert.NotEmpty(t, b.String())
	assert.NoError(t, pub.Close())
}
