package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/shari-07/search-api/internal/cache"
	"github.com/shari-07/search-api/internal/config"
	"github.com/shari-07/search-api/internal/geo"
	"github.com/shari-07/search-api/internal/model"
	"github.com/shari-07/search-api/internal/notify"
	"github.com/shari-07/search-api/internal/product"
)

// Dependencies 处理器依赖
type Dependencies struct {
	Products *product.Service
	Geo      *geo.Client
	Notifier *notify.Discord
	Cache    *cache.Cache
	Config   *config.Config
	Logger   *zap.Logger
}

// ErrorResponse 错误响应
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// ProductHandler 商品详情与链接解析处理器
type ProductHandler struct {
	deps Dependencies
}

// NewProductHandler 创建商品处理器
func NewProductHandler(deps Dependencies) *ProductHandler {
	return &ProductHandler{deps: deps}
}

// GetDetails GET /api/v1/product/details?platform=taobao&id=123&lang=en
func (h *ProductHandler) GetDetails(c *gin.Context) {
	platform := c.Query("platform")
	id := c.Query("id")
	lang := c.DefaultQuery("lang", "en")

	if platform == "" || id == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    -1,
			Message: "platform and id are required",
		})
		return
	}

	start := time.Now()
	result, cached, err := h.deps.Products.GetDetails(c.Request.Context(), platform, id, lang)
	elapsed := time.Since(start)

	if err != nil {
		status := http.StatusBadGateway
		switch {
		case errors.Is(err, product.ErrUnsupportedPlatform):
			status = http.StatusBadRequest
		case errors.Is(err, product.ErrNoClient):
			status = http.StatusServiceUnavailable
		}

		h.deps.Logger.Error("product details request failed",
			zap.String("platform", platform),
			zap.String("item_id", id),
			zap.Error(err),
		)
		c.JSON(status, ErrorResponse{Code: -1, Message: err.Error()})
		h.notifyLookup(c.ClientIP(), platform, id, lang, elapsed, status, cached)
		return
	}

	c.JSON(http.StatusOK, result)
	h.notifyLookup(c.ClientIP(), platform, id, lang, elapsed, http.StatusOK, cached)
}

// ResolveLinkRequest POST /api/v1/product/link 的请求体
type ResolveLinkRequest struct {
	Link string `json:"link" binding:"required"`
}

// ResolveLinkResponse 解析成功的响应体
type ResolveLinkResponse struct {
	Code int           `json:"code"`
	Data *ResolvedLink `json:"data"`
}

// ResolvedLink 解析出的平台与商品 ID
type ResolvedLink struct {
	Platform          string `json:"platform"`
	ID                string `json:"id"`
	ShortOriginalLink string `json:"short_original_link"`
	DetailsURL        string `json:"details_url,omitempty"`
}

// ResolveLink 把任意商品或代购链接解析为平台加商品 ID
func (h *ProductHandler) ResolveLink(c *gin.Context) {
	var req ResolveLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    -1,
			Message: "link is required",
		})
		return
	}

	resolved := h.deps.Products.ResolveLink(c.Request.Context(), req.Link)
	if resolved == nil {
		c.JSON(http.StatusNotFound, ErrorResponse{
			Code:    -1,
			Message: "unable to resolve link",
		})
		return
	}

	detailsURL := ""
	if resolved.ID != "" && h.deps.Config != nil {
		detailsURL = fmt.Sprintf("%s/product/%s/%s",
			h.deps.Config.Frontend.URL, resolved.Platform, resolved.ID)
	}

	c.JSON(http.StatusOK, ResolveLinkResponse{
		Code: 0,
		Data: &ResolvedLink{
			Platform:          resolved.Platform,
			ID:                resolved.ID,
			ShortOriginalLink: resolved.ShortOriginalLink,
			DetailsURL:        detailsURL,
		},
	})
}

// notifyLookup 把一次查询异步推到 Discord
// 归属地查询和 webhook 都在响应之后做，不拖慢请求
func (h *ProductHandler) notifyLookup(clientIP, platform, id, lang string, elapsed time.Duration, status int, cached bool) {
	if h.deps.Notifier == nil {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		country := "Unknown"
		if h.deps.Geo != nil {
			country = h.deps.Geo.Country(ctx, clientIP)
		}

		color := notify.ColorInfo
		title := "Product Lookup"
		switch {
		case status != http.StatusOK:
			color = notify.ColorError
			title = "Product Lookup Failed"
		case cached:
			color = notify.ColorSuccess
		}

		h.deps.Notifier.SendEmbed(ctx, notify.Embed{
			Title: title,
			Color: color,
			URL:   model.ItemLink(platform, id),
			Fields: []notify.EmbedField{
				{Name: "Platform", Value: platform, Inline: true},
				{Name: "Item ID", Value: id, Inline: true},
				{Name: "Language", Value: lang, Inline: true},
				{Name: "Country", Value: country, Inline: true},
				{Name: "Processing Time", Value: elapsed.Round(time.Millisecond).String(), Inline: true},
				{Name: "Status Code", Value: fmt.Sprintf("%d", status), Inline: true},
				{Name: "Cached", Value: fmt.Sprintf("%t", cached), Inline: true},
			},
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		})
	}()
}
