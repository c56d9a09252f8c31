package weidian

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/shari-07/search-api/internal/config"
)

const (
	itemSkuInfoPath   = "/detail/getItemSkuInfo/1.0"
	detailDescPath    = "/detail/getDetailDesc/1.0"
	desktopUserAgent  = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/114.0.0.0 Safari/537.36"
)

// Client 微店详情网关客户端
// 网关没有公开签名，按 H5 页面的请求形态访问
type Client struct {
	http   *resty.Client
	logger *zap.Logger
}

// NewClient 创建微店客户端
func NewClient(cfg config.WeidianConfig, logger *zap.Logger) *Client {
	timeout := cfg.TimeoutDuration
	if timeout == 0 {
		timeout = 20 * time.Second
	}

	http := resty.New().
		SetBaseURL(strings.TrimSuffix(cfg.BaseURL, "/")).
		SetTimeout(timeout).
		SetHeader("User-Agent", desktopUserAgent).
		SetHeader("Accept", "application/json, text/plain, */*")

	return &Client{http: http, logger: logger}
}

// GetItemSkuInfo 拉取商品与 SKU 详情
// 同时返回原始响应字节，供归档层落盘
func (c *Client) GetItemSkuInfo(ctx context.Context, itemID string) (*DetailsResult, []byte, error) {
	body, err := c.get(ctx, itemSkuInfoPath, map[string]string{"itemId": itemID})
	if err != nil {
		return nil, body, err
	}

	var resp DetailsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, body, fmt.Errorf("failed to decode weidian sku response: %w", err)
	}
	if resp.Status.Code != 0 || resp.Result == nil {
		c.logger.Warn("weidian sku api returned error",
			zap.String("item_id", itemID),
			zap.Int("code", resp.Status.Code),
			zap.String("message", resp.Status.Message))
		return nil, body, fmt.Errorf("weidian sku api error [%d] %s", resp.Status.Code, resp.Status.Message)
	}

	return resp.Result, body, nil
}

// GetDetailDesc 拉取商品图文详情
// 详情接口失败不致命，调用方可以继续只用 SKU 数据
func (c *Client) GetDetailDesc(ctx context.Context, itemID string) (*DescResult, error) {
	body, err := c.get(ctx, detailDescPath, map[string]string{"vItemId": itemID})
	if err != nil {
		return nil, err
	}

	var resp DescResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode weidian desc response: %w", err)
	}
	if resp.Status.Code != 0 || resp.Result == nil {
		return nil, fmt.Errorf("weidian desc api error [%d] %s", resp.Status.Code, resp.Status.Message)
	}

	return resp.Result, nil
}

// get 按网关约定发送请求：param 是 URL 编码后的 JSON，_ 是毫秒时间戳
func (c *Client) get(ctx context.Context, path string, params map[string]string) ([]byte, error) {
	encoded, err := json.Marshal(params)
	if err != nil {
		return nil, fmt.Errorf("failed to encode weidian params: %w", err)
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("param", string(encoded)).
		SetQueryParam("_", strconv.FormatInt(time.Now().UnixMilli(), 10)).
		Get(path)
	if err != nil {
		c.logger.Error("weidian request failed",
			zap.String("path", path),
			zap.Error(err))
		return nil, fmt.Errorf("weidian request failed: %w", err)
	}
	if resp.IsError() {
		return resp.Body(), fmt.Errorf("weidian request returned status %d", resp.StatusCode())
	}

	return resp.Body(), nil
}
