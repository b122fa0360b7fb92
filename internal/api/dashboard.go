package api

import (
	"context"
	"fmt"

	"learntrack/internal/model"
)

// Dashboard fetches the pre-aggregated summary: counts, recent goals,
// and upcoming tasks. The client only truncates the lists for display.
func (c *Client) Dashboard(ctx context.Context) (*model.DashboardData, error) {
	var data model.DashboardData
	if err := c.get(ctx, "/api/dashboard/", &data); err != nil {
		return nil, err
	}
	return &data, nil
}

// Progress fetches the daily completion series for the given day window.
// The server accepts 1..365; the UI offers 7/30/90/180/365.
func (c *Client) Progress(ctx context.Context, days int) (*model.ProgressSeries, error) {
	var series model.ProgressSeries
	path := fmt.Sprintf("/api/dashboard/progress?days=%d", days)
	if err := c.get(ctx, path, &series); err != nil {
		return nil, err
	}
	return &series, nil
}
