package product

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/shari-07/search-api/internal/archive"
	"github.com/shari-07/search-api/internal/cache"
	"github.com/shari-07/search-api/internal/link"
	"github.com/shari-07/search-api/internal/model"
	"github.com/shari-07/search-api/internal/platform/alibaba"
	"github.com/shari-07/search-api/internal/platform/onebound"
	"github.com/shari-07/search-api/internal/platform/taobao"
	"github.com/shari-07/search-api/internal/platform/weidian"
	"github.com/shari-07/search-api/internal/translate"
)

// ErrUnsupportedPlatform 请求了不认识的平台标识
var ErrUnsupportedPlatform = errors.New("unsupported platform")

// ErrNoClient 目标平台没有可用的上游通道
var ErrNoClient = errors.New("no upstream client configured for platform")

// TaobaoClient 淘宝通道
type TaobaoClient interface {
	GetItem(ctx context.Context, itemID string) (*taobao.RawItem, []byte, error)
}

// AlibabaClient 1688 通道
type AlibabaClient interface {
	QueryProductDetail(ctx context.Context, offerID string) (*alibaba.RawResponse, []byte, error)
}

// WeidianClient 微店通道
type WeidianClient interface {
	GetItemSkuInfo(ctx context.Context, itemID string) (*weidian.DetailsResult, []byte, error)
	GetDetailDesc(ctx context.Context, itemID string) (*weidian.DescResult, error)
}

// OneBoundClient 万邦兜底通道
type OneBoundClient interface {
	FetchItem(ctx context.Context, platform, id, lang string) (*onebound.RawProduct, []byte, error)
	ShippingFee(ctx context.Context, platform, id string) (cny, usd float64, err error)
}

// ShortLinkResolver 短链展开器
type ShortLinkResolver interface {
	Resolve(ctx context.Context, shortURL string) string
}

// Service 商品编排服务：解析链接、拉取上游、规范化、缓存、翻译视图
type Service struct {
	cache      *cache.Cache
	taobao     TaobaoClient
	alibaba    AlibabaClient
	weidian    WeidianClient
	onebound   OneBoundClient
	archive    *archive.Store
	translator translate.Translator
	shortLinks ShortLinkResolver
	proxyBase  string
	cacheTTL   time.Duration
	logger     *zap.Logger
}

// Deps Service 的依赖集合，除 Cache 和 Logger 外均可为空
type Deps struct {
	Cache      *cache.Cache
	Taobao     TaobaoClient
	Alibaba    AlibabaClient
	Weidian    WeidianClient
	OneBound   OneBoundClient
	Archive    *archive.Store
	Translator translate.Translator
	ShortLinks ShortLinkResolver
	ProxyBase  string
	CacheTTL   time.Duration
	Logger     *zap.Logger
}

// NewService 创建商品编排服务
func NewService(deps Deps) *Service {
	translator := deps.Translator
	if translator == nil {
		translator = translate.Noop{}
	}
	cacheTTL := deps.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 12 * time.Hour
	}

	return &Service{
		cache:      deps.Cache,
		taobao:     deps.Taobao,
		alibaba:    deps.Alibaba,
		weidian:    deps.Weidian,
		onebound:   deps.OneBound,
		archive:    deps.Archive,
		translator: translator,
		shortLinks: deps.ShortLinks,
		proxyBase:  deps.ProxyBase,
		cacheTTL:   cacheTTL,
		logger:     deps.Logger,
	}
}

// cacheRecord 缓存落盘形态：规范化记录加上来源通道标记
// 万邦通道的记录上游已按 lang 本地化，命中后不能再套翻译视图
type cacheRecord struct {
	ViaOneBound bool          `json:"via_onebound,omitempty"`
	Result      *model.Result `json:"result"`
}

// GetDetails 获取规范化商品详情
// 返回值 cached 表示是否命中缓存；缓存里的记录永远是未翻译的原始版本
func (s *Service) GetDetails(ctx context.Context, platform, id, lang string) (result *model.Result, cached bool, err error) {
	if !supportedPlatform(platform) {
		return nil, false, fmt.Errorf("%w: %q", ErrUnsupportedPlatform, platform)
	}
	if lang == "" {
		lang = "en"
	}

	key := cache.Key(lang, platform, id)
	viaOneBound := false

	if raw := s.cache.Get(ctx, key); raw != nil {
		var stored cacheRecord
		if jsonErr := json.Unmarshal(raw, &stored); jsonErr == nil && stored.Result != nil && stored.Result.Data != nil {
			s.logger.Info("product cache hit", zap.String("key", key))
			hit := stored.Result.Clone()
			hit.Data.Cache = "yes"
			return s.translateView(ctx, hit, platform, lang, stored.ViaOneBound), true, nil
		}
		// 反序列化失败说明缓存记录损坏，删掉重新拉取
		s.logger.Warn("dropping corrupt cache entry", zap.String("key", key))
		s.cache.Delete(ctx, key)
	}

	s.logger.Info("product cache miss, fetching upstream",
		zap.String("platform", platform),
		zap.String("item_id", id),
		zap.String("lang", lang))

	result, viaOneBound, err = s.fetchAndNormalize(ctx, platform, id, lang)
	if err != nil {
		return nil, false, err
	}

	if result.Code == 0 && result.Data != nil {
		if encoded, jsonErr := json.Marshal(cacheRecord{ViaOneBound: viaOneBound, Result: result}); jsonErr == nil {
			s.cache.Set(ctx, key, encoded, s.cacheTTL)
		}
	}

	return s.translateView(ctx, result, platform, lang, viaOneBound), false, nil
}

// fetchAndNormalize 按平台选择通道拉取并规范化
// 官方通道未配置时回落到万邦；原始响应在成功路径上归档
func (s *Service) fetchAndNormalize(ctx context.Context, platform, id, lang string) (*model.Result, bool, error) {
	switch platform {
	case model.PlatformTaobao, model.PlatformTmall:
		if s.taobao != nil {
			item, raw, err := s.taobao.GetItem(ctx, id)
			if err != nil {
				return nil, false, err
			}
			s.archiveRaw(ctx, platform, id, raw)
			return taobao.Normalize(item), false, nil
		}

	case model.Platform1688:
		if s.alibaba != nil {
			resp, raw, err := s.alibaba.QueryProductDetail(ctx, id)
			if err != nil {
				return nil, false, err
			}
			s.archiveRaw(ctx, platform, id, raw)
			return alibaba.Normalize(resp, s.proxyBase), false, nil
		}

	case model.PlatformWeidian:
		if s.weidian != nil {
			details, raw, err := s.weidian.GetItemSkuInfo(ctx, id)
			if err != nil {
				return nil, false, err
			}
			s.archiveRaw(ctx, platform, id, raw)

			// 图文详情拉不到不致命，继续只用 SKU 数据
			desc, descErr := s.weidian.GetDetailDesc(ctx, id)
			if descErr != nil {
				s.logger.Warn("weidian description unavailable",
					zap.String("item_id", id),
					zap.Error(descErr))
			}
			return weidian.Normalize(details, desc, s.logger), false, nil
		}
	}

	if s.onebound == nil {
		return nil, false, fmt.Errorf("%w: %q", ErrNoClient, platform)
	}

	item, raw, err := s.onebound.FetchItem(ctx, platform, id, lang)
	if err != nil {
		return nil, false, err
	}
	s.archiveRaw(ctx, platform, id, raw)

	result := onebound.Normalize(item, platform, s.logger)
	if result.Code == 0 && result.Data != nil {
		// 万邦不随 lang 本地化卖家昵称，带译文的历史格式 "昵称 (译文)" 在这里补
		if item.SellerInfo != nil && item.SellerInfo.Nick != "" {
			if localized, trErr := s.translator.Translate(ctx, item.SellerInfo.Nick, lang); trErr == nil &&
				localized != "" && localized != item.SellerInfo.Nick {
				result.Data.SellerName = item.SellerInfo.Nick + " (" + localized + ")"
			}
		}

		cny, usd, feeErr := s.onebound.ShippingFee(ctx, platform, id)
		if feeErr != nil {
			s.logger.Warn("onebound shipping fee unavailable",
				zap.String("platform", platform),
				zap.String("item_id", id),
				zap.Error(feeErr))
		} else {
			result.Data.FreightAmountCNY = cny
			result.Data.FreightAmountUSD = usd
		}
		// 响应视图在入缓存前套上，命中与未命中看到同样的价格口径
		result = onebound.ResponseView(result, false)
	}
	return result, true, nil
}

// translateView 生成面向请求语言的响应视图
func (s *Service) translateView(ctx context.Context, res *model.Result, platform, lang string, viaOneBound bool) *model.Result {
	// 1688 的上游已带英文翻译字段，万邦按 lang 参数取数，都不需要再翻译
	if platform == model.Platform1688 || viaOneBound {
		return res
	}

	return s.translateResult(ctx, res, lang)
}

// archiveRaw 原始响应归档，失败只记日志
func (s *Service) archiveRaw(ctx context.Context, platform, id string, raw []byte) {
	if s.archive.Enabled() {
		s.archive.SaveRaw(ctx, platform, id, raw)
	}
}

// ResolveLink 把任意商品或代购链接解析为平台加商品 ID
// 直接解析失败时，从自由文本中抽取短链展开后重试；全部失败返回 nil
func (s *Service) ResolveLink(ctx context.Context, raw string) *link.Resolved {
	if resolved := link.Resolve(raw); resolved != nil {
		return resolved
	}

	extracted := link.ExtractRelevantLink(raw)
	if extracted.Link == "" || s.shortLinks == nil {
		return nil
	}

	target := s.shortLinks.Resolve(ctx, extracted.Link)
	if target == "" {
		return nil
	}
	return link.Resolve(target)
}

func supportedPlatform(platform string) bool {
	switch platform {
	case model.PlatformTaobao, model.PlatformTmall, model.Platform1688, model.PlatformWeidian:
		return true
	}
	return false
}
