package taobao

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/shari-07/search-api/internal/config"
)

const itemGetPath = "/traffic/item/get"

// Client 淘宝开放平台客户端
type Client struct {
	http        *resty.Client
	appKey      string
	appSecret   string
	accessToken string
	logger      *zap.Logger
}

// NewClient 创建淘宝开放平台客户端
func NewClient(cfg config.TaobaoConfig, logger *zap.Logger) *Client {
	timeout := cfg.TimeoutDuration
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	http := resty.New().
		SetBaseURL(strings.TrimSuffix(cfg.BaseURL, "/")).
		SetTimeout(timeout)

	return &Client{
		http:        http,
		appKey:      cfg.AppKey,
		appSecret:   cfg.AppSecret,
		accessToken: cfg.AccessToken,
		logger:      logger,
	}
}

// GetItem 拉取单个商品的原始详情
// 同时返回原始响应字节，供归档层落盘
func (c *Client) GetItem(ctx context.Context, itemID string) (*RawItem, []byte, error) {
	params := map[string]string{
		"access_token":  c.accessToken,
		"app_key":       c.appKey,
		"item_id":       itemID,
		"item_resource": "taobao",
		"sign_method":   "sha256",
		"timestamp":     strconv.FormatInt(time.Now().UnixMilli(), 10),
	}
	params["sign"] = c.sign(itemGetPath, params)

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(params).
		Get(itemGetPath)
	if err != nil {
		c.logger.Error("taobao item request failed",
			zap.String("item_id", itemID),
			zap.Error(err))
		return nil, nil, fmt.Errorf("taobao item request failed: %w", err)
	}

	body := resp.Body()
	if resp.IsError() {
		return nil, body, fmt.Errorf("taobao item request returned status %d", resp.StatusCode())
	}

	var errWrap ErrorResponse
	if err := json.Unmarshal(body, &errWrap); err == nil && errWrap.ErrorResponse != nil {
		e := errWrap.ErrorResponse
		c.logger.Warn("taobao api returned error response",
			zap.String("item_id", itemID),
			zap.String("code", e.Code),
			zap.String("msg", e.Msg),
			zap.String("request_id", e.RequestID))
		return nil, body, fmt.Errorf("taobao api error [%s] %s (request id: %s)", e.Code, e.Msg, e.RequestID)
	}

	var item RawItem
	if err := json.Unmarshal(body, &item); err != nil {
		return nil, body, fmt.Errorf("failed to decode taobao item response: %w", err)
	}

	return &item, body, nil
}

// sign 按开放平台规则生成签名
// 参数名 ASCII 升序拼接 key+value，前缀接口路径，HMAC-SHA256 后十六进制大写
func (c *Client) sign(apiPath string, params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	sb.WriteString(apiPath)
	for _, k := range keys {
		sb.WriteString(k)
		sb.WriteString(params[k])
	}

	mac := hmac.New(sha256.New, []byte(c.appSecret))
	mac.Write([]byte(sb.String()))
	return strings.ToUpper(hex.EncodeToString(mac.Sum(nil)))
}
