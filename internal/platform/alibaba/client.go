package alibaba

import (
	"context"
	"crypto/hmac"
	"crypto/sha1"
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

const queryProductDetailPath = "param2/1/com.alibaba.fenxiao.crossborder/product.search.queryProductDetail"

// Client 1688 跨境分销接口客户端
type Client struct {
	http        *resty.Client
	appKey      string
	secretKey   string
	accessToken string
	logger      *zap.Logger
}

// NewClient 创建 1688 客户端
func NewClient(cfg config.AlibabaConfig, logger *zap.Logger) *Client {
	timeout := cfg.TimeoutDuration
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	http := resty.New().
		SetBaseURL(strings.TrimSuffix(cfg.BaseURL, "/") + "/").
		SetTimeout(timeout)

	return &Client{
		http:        http,
		appKey:      cfg.AppKey,
		secretKey:   cfg.SecretKey,
		accessToken: cfg.AccessToken,
		logger:      logger,
	}
}

type offerDetailParam struct {
	OfferID     int64  `json:"offerId"`
	Country     string `json:"country"`
	OutMemberID string `json:"outMemberId"`
}

// QueryProductDetail 拉取 1688 商品的多语言详情
// 同时返回原始响应字节，供归档层落盘
func (c *Client) QueryProductDetail(ctx context.Context, offerID string) (*RawResponse, []byte, error) {
	id, err := strconv.ParseInt(offerID, 10, 64)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid 1688 offer id %q: %w", offerID, err)
	}

	detailParam, err := json.Marshal(offerDetailParam{
		OfferID:     id,
		Country:     "en",
		OutMemberID: "1",
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to encode offer detail param: %w", err)
	}

	urlPath := queryProductDetailPath + "/" + c.appKey
	params := map[string]string{
		"access_token":     c.accessToken,
		"_aop_timestamp":   strconv.FormatInt(time.Now().UnixMilli(), 10),
		"offerDetailParam": string(detailParam),
	}
	params["_aop_signature"] = c.sign(urlPath, params)

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(params).
		Get(urlPath)
	if err != nil {
		c.logger.Error("1688 product request failed",
			zap.String("offer_id", offerID),
			zap.Error(err))
		return nil, nil, fmt.Errorf("1688 product request failed: %w", err)
	}

	body := resp.Body()
	if resp.IsError() {
		return nil, body, fmt.Errorf("1688 product request returned status %d", resp.StatusCode())
	}

	var raw RawResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, body, fmt.Errorf("failed to decode 1688 product response: %w", err)
	}

	return &raw, body, nil
}

// sign 按开放平台规则生成签名
// 参数名升序拼接 key+value，前缀 URL 路径，HMAC-SHA1 后十六进制大写
func (c *Client) sign(urlPath string, params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	sb.WriteString(urlPath)
	for _, k := range keys {
		sb.WriteString(k)
		sb.WriteString(params[k])
	}

	mac := hmac.New(sha1.New, []byte(c.secretKey))
	mac.Write([]byte(sb.String()))
	return strings.ToUpper(hex.EncodeToString(mac.Sum(nil)))
}
