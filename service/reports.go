package service

import (
	"context"
	"fmt"

	"cinebook-cli/model"
)

// BookingTrends returns booking counts per period for the admin dashboard.
func (c *Client) BookingTrends(ctx context.Context) ([]model.BookingTrend, error) {
	endpoint := fmt.Sprintf("%s/reports/booking-trends", c.baseURL)

	var trends []model.BookingTrend
	if err := c.getJSON(ctx, endpoint, &trends); err != nil {
		return nil, err
	}
	return trends, nil
}

// SalesPerformance returns revenue and ticket totals per period.
func (c *Client) SalesPerformance(ctx context.Context) ([]model.SalesPerformance, error) {
	endpoint := fmt.Sprintf("%s/reports/sales-performance", c.baseURL)

	var sales []model.SalesPerformance
	if err := c.getJSON(ctx, endpoint, &sales); err != nil {
		return nil, err
	}
	return sales, nil
}

// UserActivity returns active/new user counts per period.
func (c *Client) UserActivity(ctx context.Context) ([]model.UserActivity, error) {
	endpoint := fmt.Sprintf("%s/reports/user-activity", c.baseURL)

	var activity []model.UserActivity
	if err := c.getJSON(ctx, endpoint, &activity); err != nil {
		return nil, err
	}
	return activity, nil
}
