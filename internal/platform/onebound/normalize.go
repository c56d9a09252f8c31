package onebound

import (
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/shari-07/search-api/internal/currency"
	"github.com/shari-07/search-api/internal/model"
)

// Normalize 把万邦通用商品转换为规范化记录
// platform 由调用方注入，万邦的响应里没有可靠的平台字段
func Normalize(item *RawProduct, platform string, logger *zap.Logger) *model.Result {
	if item == nil || item.PicURL == "" {
		return &model.Result{
			Code: -1,
			Msg:  "Error: Invalid product data received from OneBound API.",
		}
	}

	imageList := make([]model.Image, 0, len(item.ItemImgs))
	for _, img := range item.ItemImgs {
		imageList = append(imageList, model.Image{URL: ensureScheme(img.URL)})
	}

	pairs, err := orderedPairs(item.PropsList)
	if err != nil {
		logger.Warn("failed to parse onebound props_list, continuing without props",
			zap.String("item_id", item.NumIID),
			zap.Error(err))
	}

	groupIndex := make(map[string]int)
	var propGroups []model.PropGroup
	originList := make(map[string]string, len(pairs))

	for _, pair := range pairs {
		originList[pair.Key] = pair.Value

		name, display := splitPropValue(pair.Value)
		propType, _, _ := strings.Cut(pair.Key, ":")

		idx, ok := groupIndex[propType]
		if !ok {
			idx = len(propGroups)
			groupIndex[propType] = idx
			propGroups = append(propGroups, model.PropGroup{
				PropType: propType,
				PropName: capitalize(name),
			})
		}

		propGroups[idx].PropList = append(propGroups[idx].PropList, model.PropValue{
			PValue:  pair.Key,
			PName:   display,
			PSkuImg: item.PropsImg[pair.Key],
		})
	}

	skuList := make(map[string]model.SKU)
	if item.Skus != nil {
		for _, sku := range item.Skus.Sku {
			if sku.Properties == "" {
				logger.Warn("skipping onebound sku without properties",
					zap.String("item_id", item.NumIID))
				continue
			}
			skuList[sku.Properties] = model.SKU{
				Price:          parseFloat(sku.Price),
				TotalPrice:     0,
				OriginalPrice:  parseFloat(sku.OriginalPrice),
				Properties:     sku.Properties,
				PropertiesName: sku.PropertiesName,
				Quantity:       parseInt(sku.Quantity),
				SkuID:          sku.SkuID,
			}
		}
	}

	title := item.Title
	if title == "" {
		title = "No Title"
	}

	sellerName := item.Nick
	if item.SellerInfo != nil && item.SellerInfo.Nick != "" {
		sellerName = item.SellerInfo.Nick
	}

	sales := item.Sales
	if sales == "" {
		sales = item.TotalSold
	}

	price := parseFloat(item.Price)
	freightCNY := parseFloat(item.PostFee)

	return &model.Result{
		Code: 0,
		Msg:  "Success",
		Data: &model.Product{
			ProductImageURL:  ensureScheme(item.PicURL),
			ProductImageList: imageList,
			ProductName:      title,
			ProductLink:      item.DetailURL,
			ProductDetails:   item.Desc,
			FreightAmountCNY: freightCNY,
			FreightAmountUSD: currency.CNYToUSD(freightCNY, currency.RateCNYToUSD),
			ProductPlatform:  platform,
			PropList:         propGroups,
			SkuPropList:      map[string]string{},
			SkuPropListSort:  []string{},
			PropsListOrigin:  originList,
			SkuList:          skuList,
			ProductPrice:     price,
			CurrentPriceUSD:  currency.CNYToUSD(price, currency.RateCNYToUSD),
			MinNum:           1,
			Num:              parseInt(item.Num),
			ItemWeight:       item.ItemWeight,
			ItemSize:         "",
			Sales:            parseInt(sales),
			StoreID:          item.SellerID,
			SellerName:       sellerName,
			PropsImg:         propsImgOrEmpty(item.PropsImg),
			ProductItemID:    item.NumIID,
			APITime:          time.Now().UTC().Format(time.RFC3339),
			Cache:            "no",
		},
	}
}

// ResponseView 生成对外响应视图：图片链接去掉协议、按响应汇率重算美元价
// 在结果的深拷贝上操作，缓存里的记录保持原样
func ResponseView(res *model.Result, cached bool) *model.Result {
	if res == nil || res.Data == nil {
		return res
	}

	out := res.Clone()
	d := out.Data
	d.ProductImageURL = stripScheme(d.ProductImageURL)
	for i := range d.ProductImageList {
		d.ProductImageList[i].URL = stripScheme(d.ProductImageList[i].URL)
	}
	d.CurrentPriceUSD = currency.CNYDivUSD(d.ProductPrice, currency.DivisorResponseUSD)
	if cached {
		d.Cache = "yes"
	} else {
		d.Cache = "no"
	}
	out.Msg = "Success"
	return out
}

// ensureScheme 万邦图床常用协议相对链接
func ensureScheme(u string) string {
	if strings.HasPrefix(u, "//") {
		return "https:" + u
	}
	return u
}

func stripScheme(u string) string {
	if strings.HasPrefix(u, "https:") {
		return strings.TrimPrefix(u, "https:")
	}
	return strings.TrimPrefix(u, "http:")
}

// splitPropValue "颜色:红色" → ("颜色", "红色")
func splitPropValue(v string) (name, display string) {
	name, display, _ = strings.Cut(v, ":")
	return name, display
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}

func parseFloat(s string) float64 {
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return currency.NonNegative(v)
}

func parseInt(s string) int {
	if s == "" {
		return 0
	}
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return v
}

func propsImgOrEmpty(m map[string]string) map[string]string {
	if m == nil {
		return map[string]string{}
	}
	return m
}
