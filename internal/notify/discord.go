package notify

import (
	"context"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/shari-07/search-api/internal/config"
)

// 常用的 embed 颜色
const (
	ColorInfo    = 0x3498db
	ColorSuccess = 0x2ecc71
	ColorWarning = 0xf1c40f
	ColorError   = 0xe74c3c
	ColorGray    = 0x95a5a6
)

// Embed Discord embed 消息体
type Embed struct {
	Title       string       `json:"title,omitempty"`
	Description string       `json:"description,omitempty"`
	Color       int          `json:"color,omitempty"`
	Fields      []EmbedField `json:"fields,omitempty"`
	Timestamp   string       `json:"timestamp,omitempty"`
	URL         string       `json:"url,omitempty"`
}

// EmbedField embed 里的单个字段
type EmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline,omitempty"`
}

type webhookPayload struct {
	Content string  `json:"content,omitempty"`
	Embeds  []Embed `json:"embeds,omitempty"`
}

// Discord webhook 请求日志通道
// 未配置 webhook 时所有调用都是空操作
type Discord struct {
	http       *resty.Client
	webhookURL string
	logger     *zap.Logger
}

// NewDiscord 创建 Discord 通知器
func NewDiscord(cfg config.DiscordConfig, logger *zap.Logger) *Discord {
	timeout := cfg.TimeoutDuration
	if timeout == 0 {
		timeout = 10 * time.Second
	}

	return &Discord{
		http:       resty.New().SetTimeout(timeout),
		webhookURL: cfg.WebhookURL,
		logger:     logger,
	}
}

// SendEmbed 发送一条 embed 日志
// 尽力而为：发送失败只记日志，不向调用方返回错误
func (d *Discord) SendEmbed(ctx context.Context, embed Embed) {
	if d == nil || d.webhookURL == "" {
		return
	}

	resp, err := d.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(webhookPayload{Embeds: []Embed{embed}}).
		Post(d.webhookURL)
	if err != nil {
		d.logger.Warn("failed to send discord log", zap.Error(err))
		return
	}
	if resp.IsError() {
		d.logger.Warn("discord webhook rejected payload",
			zap.Int("status", resp.StatusCode()),
			zap.ByteString("body", resp.Body()))
	}
}

// SendMessage 发送一条纯文本消息
func (d *Discord) SendMessage(ctx context.Context, content string) {
	if d == nil || d.webhookURL == "" {
		return
	}

	resp, err := d.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(webhookPayload{Content: content}).
		Post(d.webhookURL)
	if err != nil {
		d.logger.Warn("failed to send discord message", zap.Error(err))
		return
	}
	if resp.IsError() {
		d.logger.Warn("discord webhook rejected message",
			zap.Int("status", resp.StatusCode()))
	}
}
