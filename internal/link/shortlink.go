package link

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/shari-07/search-api/internal/model"
)

// 短链落地页里内嵌真实地址的两种 JS 变量写法
var (
	jsURLPattern         = regexp.MustCompile(`var url = '([^']+)';`)
	jsWirelessURLPattern = regexp.MustCompile(`var wirelessUrl\s*=\s*"([^"]+)";`)
	targetIDPattern      = regexp.MustCompile(`(?:offerId|id)=(\d+)`)
)

const mobileUserAgent = "Mozilla/5.0 (iPhone; CPU iPhone OS 13_2_3 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/13.0.3 Mobile/15E148 Safari/604.1"

// ShortLinkResolver 解析 e.tb.cn / qr.1688.com 短链
// 禁用自动重定向，直接读 Location 或落地页 HTML 里的真实地址
type ShortLinkResolver struct {
	client *resty.Client
	logger *zap.Logger
}

// NewShortLinkResolver 创建短链解析器，timeout 为单次请求上限
func NewShortLinkResolver(timeout time.Duration, logger *zap.Logger) *ShortLinkResolver {
	if timeout <= 0 {
		timeout = 8 * time.Second
	}
	client := resty.New().
		SetTimeout(timeout).
		SetRedirectPolicy(resty.NoRedirectPolicy()).
		SetHeader("User-Agent", mobileUserAgent)
	return &ShortLinkResolver{client: client, logger: logger}
}

// Resolve 把短链解析成平台商品链接
// 任何一步失败（网络错误、无重定向、无匹配、无 ID）都返回空串，从不报错
func (r *ShortLinkResolver) Resolve(ctx context.Context, shortURL string) string {
	target := r.fetchTarget(ctx, shortURL)
	if target == "" {
		return ""
	}
	return resolveFromTarget(shortURL, target)
}

// fetchTarget 请求短链并取出真实目标地址
func (r *ShortLinkResolver) fetchTarget(ctx context.Context, shortURL string) string {
	resp, err := r.client.R().SetContext(ctx).Get(shortURL)
	if resp == nil {
		if r.logger != nil {
			r.logger.Debug("short link request failed",
				zap.String("url", shortURL),
				zap.Error(err),
			)
		}
		return ""
	}

	status := resp.StatusCode()
	switch {
	case status == 301 || status == 302:
		return resp.Header().Get("Location")
	case status >= 200 && status < 300:
		html := resp.String()
		if m := jsURLPattern.FindStringSubmatch(html); len(m) == 2 {
			return m[1]
		}
		if m := jsWirelessURLPattern.FindStringSubmatch(html); len(m) == 2 {
			return m[1]
		}
	}
	return ""
}

// resolveFromTarget 从目标地址里抓 ID，并按短链域名决定平台
func resolveFromTarget(shortURL, target string) string {
	m := targetIDPattern.FindStringSubmatch(target)
	if len(m) != 2 {
		return ""
	}
	id := m[1]

	switch {
	case strings.Contains(shortURL, "tb.cn"):
		return model.ItemLink(model.PlatformTaobao, id)
	case strings.Contains(shortURL, "1688.com"):
		return model.ItemLink(model.Platform1688, id)
	}
	return ""
}
