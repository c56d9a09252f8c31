package geo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/shari-07/search-api/internal/config"
)

// Location IP 归属地查询结果
type Location struct {
	Status      string `json:"status"`
	Message     string `json:"message"`
	Country     string `json:"country"`
	CountryCode string `json:"countryCode"`
	City        string `json:"city"`
	ISP         string `json:"isp"`
	Query       string `json:"query"`
}

// Client ip-api.com 归属地查询客户端
type Client struct {
	http    *resty.Client
	enabled bool
	logger  *zap.Logger
}

// NewClient 创建归属地查询客户端
func NewClient(cfg config.GeoConfig, logger *zap.Logger) *Client {
	timeout := cfg.TimeoutDuration
	if timeout == 0 {
		timeout = 5 * time.Second
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "http://ip-api.com"
	}

	return &Client{
		http:    resty.New().SetBaseURL(strings.TrimSuffix(baseURL, "/")).SetTimeout(timeout),
		enabled: cfg.Enabled,
		logger:  logger,
	}
}

// Country 返回 IP 的归属国家，查不到时返回 "Unknown"
// 尽力而为：任何失败都不向调用方返回错误
func (c *Client) Country(ctx context.Context, ip string) string {
	loc := c.Lookup(ctx, ip)
	if loc == nil || loc.Country == "" {
		return "Unknown"
	}
	return loc.Country
}

// Lookup 查询 IP 归属地，内网和回环地址直接短路
func (c *Client) Lookup(ctx context.Context, ip string) *Location {
	if c == nil || !c.enabled || ip == "" || ip == "unknown" {
		return nil
	}
	if isPrivate(ip) {
		return &Location{Status: "success", Country: "Local/Private", Query: ip}
	}

	var loc Location
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("fields", "status,message,country,countryCode,city,isp,query").
		SetResult(&loc).
		Get(fmt.Sprintf("/json/%s", ip))
	if err != nil {
		c.logger.Warn("geolocation lookup failed",
			zap.String("ip", ip),
			zap.Error(err))
		return nil
	}
	if resp.IsError() {
		c.logger.Warn("geolocation api returned error status",
			zap.String("ip", ip),
			zap.Int("status", resp.StatusCode()))
		return nil
	}
	if loc.Status == "fail" {
		c.logger.Warn("geolocation api reported failure",
			zap.String("ip", ip),
			zap.String("message", loc.Message))
		return nil
	}

	return &loc
}

func isPrivate(ip string) bool {
	return ip == "127.0.0.1" || ip == "::1" ||
		strings.HasPrefix(ip, "192.168.") ||
		strings.HasPrefix(ip, "10.") ||
		strings.HasPrefix(ip, "172.16.")
}
