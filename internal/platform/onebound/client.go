package onebound

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
	"github.com/shari-07/search-api/internal/currency"
	"github.com/shari-07/search-api/internal/model"
)

// 运费试算使用的固定目的地区划
const feeAreaID = "152501"

// Client 万邦聚合接口客户端，作为没有官方凭证时的兜底通道
type Client struct {
	http   *resty.Client
	key    string
	secret string
	logger *zap.Logger
}

// NewClient 创建万邦客户端
func NewClient(cfg config.OneBoundConfig, logger *zap.Logger) *Client {
	timeout := cfg.TimeoutDuration
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	http := resty.New().
		SetBaseURL(strings.TrimSuffix(cfg.BaseURL, "/")).
		SetTimeout(timeout)

	return &Client{
		http:   http,
		key:    cfg.Key,
		secret: cfg.Secret,
		logger: logger,
	}
}

// FetchItem 拉取商品详情
// tmall 合并到 taobao 通道；taobao 走 item_get_pro，其余走 item_get
// 同时返回原始响应字节，供归档层落盘
func (c *Client) FetchItem(ctx context.Context, platform, id, lang string) (*RawProduct, []byte, error) {
	apiPlatform := platform
	if apiPlatform == model.PlatformTmall {
		apiPlatform = model.PlatformTaobao
	}
	endpoint := "item_get"
	if apiPlatform == model.PlatformTaobao {
		endpoint = "item_get_pro"
	}
	if lang == "" {
		lang = "en"
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"cache":    "no",
			"api_name": endpoint,
			"key":      c.key,
			"secret":   c.secret,
			"lang":     lang,
			"num_iid":  id,
		}).
		Get("/" + apiPlatform + "/" + endpoint)
	if err != nil {
		c.logger.Error("onebound item request failed",
			zap.String("platform", platform),
			zap.String("item_id", id),
			zap.Error(err))
		return nil, nil, fmt.Errorf("onebound item request failed: %w", err)
	}

	body := resp.Body()
	if resp.IsError() {
		return nil, body, fmt.Errorf("onebound item request returned status %d", resp.StatusCode())
	}

	var parsed ItemResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, body, fmt.Errorf("failed to decode onebound item response: %w", err)
	}

	item := parsed.Item
	if item == nil && parsed.Data != nil {
		item = parsed.Data.Item
	}
	if item == nil {
		if parsed.Error != "" {
			return nil, body, fmt.Errorf("onebound api error: %s", parsed.Error)
		}
		return nil, body, fmt.Errorf("no item returned from onebound")
	}

	return item, body, nil
}

// ShippingFee 获取目的地运费（人民币与美元）
// 微店商品没有运费接口，返回固定值
func (c *Client) ShippingFee(ctx context.Context, platform, id string) (cny, usd float64, err error) {
	if platform == model.PlatformWeidian || platform == "weidian" {
		return 10, currency.CNYDivUSD(10, currency.DivisorResponseUSD), nil
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"cache":    "no",
			"api_name": "item_fee",
			"key":      c.key,
			"secret":   c.secret,
			"lang":     "en",
			"num_iid":  id,
			"area_id":  feeAreaID,
			"sku":      "0",
		}).
		Get("/" + platform + "/item_fee")
	if err != nil {
		return 0, 0, fmt.Errorf("onebound fee request failed: %w", err)
	}
	if resp.IsError() {
		return 0, 0, fmt.Errorf("onebound fee request returned status %d", resp.StatusCode())
	}

	var parsed FeeResponse
	if err := json.Unmarshal(resp.Body(), &parsed); err != nil {
		return 0, 0, fmt.Errorf("failed to decode onebound fee response: %w", err)
	}

	body := &parsed.FeeBody
	if parsed.Data != nil {
		body = parsed.Data
	} else if parsed.Item != nil {
		body = parsed.Item
	}

	cny = parseFee(body.PostFee)
	if cny == 0 {
		cny = parseFee(body.PostFeeAlt)
	}
	return cny, currency.CNYDivUSD(cny, currency.DivisorResponseUSD), nil
}

// parseFee 运费可能是 JSON 数字也可能是字符串数字
func parseFee(raw json.RawMessage) float64 {
	if len(raw) == 0 {
		return 0
	}
	s := strings.Trim(strings.TrimSpace(string(raw)), `"`)
	if s == "" || s == "null" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return currency.NonNegative(v)
}
