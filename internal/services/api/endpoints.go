package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/jalikoi/analytics-tui/internal/logger"
	"github.com/jalikoi/analytics-tui/internal/models"
)

const (
	insightsPath         = "/api/insights"
	visualizationsPath   = "/api/visualizations"
	modelInfoPath        = "/api/ml/model-info"
	churnPath            = "/api/ml/churn-predictions"
	revenueForecastPath  = "/api/ml/revenue-forecast"
	segmentsPath         = "/api/ml/segments"
	segmentCustomersPath = "/api/ml/segment-customers/"
	anomaliesPath        = "/api/ml/anomalies"
	chatPath             = "/api/chatbot"
)

// ChurnParams are the request caps of the churn predictions endpoint.
type ChurnParams struct {
	MinProbability float64
	Limit          int
}

// Insights fetches the primary insights document. The comparison flag is
// only ever sent on this request.
func (c *Client) Insights(ctx context.Context, q models.Query) (*models.InsightsResponse, error) {
	var resp models.InsightsResponse
	if err := c.get(ctx, insightsPath, q.InsightsParams(), q.Key(), &resp); err != nil {
		return nil, err
	}
	if resp.Data == nil {
		return nil, fmt.Errorf("insights response missing data")
	}
	return &resp, nil
}

// Visualizations fetches the chart series for the window.
func (c *Client) Visualizations(ctx context.Context, q models.Query) (*models.VisualizationDocument, error) {
	var doc models.VisualizationDocument
	if err := c.get(ctx, visualizationsPath, q.RangeParams(), q.Key(), &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// ModelInfo reports which backend models are trained.
func (c *Client) ModelInfo(ctx context.Context) (*models.ModelInfo, error) {
	var info models.ModelInfo
	if err := c.get(ctx, modelInfoPath, nil, "", &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// ChurnPredictions fetches the customers most likely to churn. Ranking and
// truncation happen server-side.
func (c *Client) ChurnPredictions(ctx context.Context, q models.Query, p ChurnParams) (*models.ChurnPredictions, error) {
	params := q.RangeParams()
	params.Set("min_probability", strconv.FormatFloat(p.MinProbability, 'f', -1, 64))
	params.Set("limit", strconv.Itoa(p.Limit))

	var doc models.ChurnPredictions
	if err := c.get(ctx, churnPath, params, q.Key(), &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// RevenueForecast fetches the top-N customer revenue forecast.
func (c *Client) RevenueForecast(ctx context.Context, q models.Query, topN int) (*models.RevenueForecast, error) {
	params := q.RangeParams()
	params.Set("top_n", strconv.Itoa(topN))

	var doc models.RevenueForecast
	if err := c.get(ctx, revenueForecastPath, params, q.Key(), &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Segments fetches the customer clusters for the window.
func (c *Client) Segments(ctx context.Context, q models.Query) (*models.SegmentsDocument, error) {
	var doc models.SegmentsDocument
	if err := c.get(ctx, segmentsPath, q.RangeParams(), q.Key(), &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// SegmentCustomers fetches the roster of one segment.
func (c *Client) SegmentCustomers(ctx context.Context, segment string, q models.Query) (*models.SegmentRoster, error) {
	var resp struct {
		Success   bool                     `json:"success"`
		Customers []models.CustomerSummary `json:"customers"`
	}
	path := segmentCustomersPath + url.PathEscape(segment)
	if err := c.get(ctx, path, q.RangeParams(), q.Key(), &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, fmt.Errorf("segment %q: %w", segment, ErrRosterUnavailable)
	}

	roster := &models.SegmentRoster{SegmentName: segment, Customers: resp.Customers}
	if n := roster.LegacyPhoneCount(); n > 0 {
		logger.Warn("segment roster used legacy motari_phone field",
			"segment", segment, "customers", n)
	}
	return roster, nil
}

// Anomalies fetches flagged transactions, capped server-side at limit.
func (c *Client) Anomalies(ctx context.Context, q models.Query, limit int) (*models.AnomaliesDocument, error) {
	params := q.RangeParams()
	params.Set("limit", strconv.Itoa(limit))

	var doc models.AnomaliesDocument
	if err := c.get(ctx, anomaliesPath, params, q.Key(), &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Chat posts one message to the assistant and returns its reply text.
func (c *Client) Chat(ctx context.Context, message string) (string, error) {
	var reply models.ChatReply
	if err := c.do(ctx, "POST", chatPath, nil, models.ChatRequest{Message: message}, "", &reply); err != nil {
		return "", err
	}
	return reply.Response, nil
}
