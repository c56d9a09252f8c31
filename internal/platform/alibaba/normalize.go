package alibaba

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/shari-07/search-api/internal/currency"
	"github.com/shari-07/search-api/internal/model"
)

// 1688 的运费接口没有接入，延续历史接口返回的固定值
const (
	flatFreightCNY = 6
	flatFreightUSD = 0.9
)

var (
	imgSrcPattern = regexp.MustCompile(`<img[^>]+src="(https://[^"]+)"[^>]*>`)
	imgTagPattern = regexp.MustCompile(`<img[^>]+>`)
)

// Normalize 把 1688 原始商品转换为规范化记录
// proxyBase 是前端域名，商品图和详情图都经 image-proxy 改写以绕开防盗链
func Normalize(resp *RawResponse, proxyBase string) *model.Result {
	if resp == nil || resp.Result == nil || resp.Result.Result == nil {
		return &model.Result{
			Code: -1,
			Msg:  "Error: Invalid or unsuccessful 1688 API response.",
		}
	}

	src := resp.Result.Result

	var picURLs []string
	if src.ProductImage != nil {
		picURLs = src.ProductImage.Images
	}

	groupIndex := make(map[int64]int)
	var propGroups []model.PropGroup
	skuList := make(map[string]model.SKU, len(src.ProductSkuInfos))

	for _, sku := range src.ProductSkuInfos {
		propValues := make([]string, 0, len(sku.SkuAttributes))
		propNames := make([]string, 0, len(sku.SkuAttributes))

		for _, attr := range sku.SkuAttributes {
			attrName := attr.AttributeNameTrans
			if attrName == "" {
				attrName = attr.AttributeName
			}
			valueName := attr.ValueTrans
			if valueName == "" {
				valueName = attr.Value
			}
			attrID := strconv.FormatInt(attr.AttributeID, 10)
			pValue := attrID + ":" + attr.Value

			idx, ok := groupIndex[attr.AttributeID]
			if !ok {
				idx = len(propGroups)
				groupIndex[attr.AttributeID] = idx
				propGroups = append(propGroups, model.PropGroup{
					PropType: attrID,
					PropName: attrName,
				})
			}

			if !containsPValue(propGroups[idx].PropList, pValue) {
				skuImg := ""
				if attr.SkuImageURL != "" {
					skuImg = proxyImage(proxyBase, attr.SkuImageURL)
				}
				propGroups[idx].PropList = append(propGroups[idx].PropList, model.PropValue{
					PValue:  pValue,
					PName:   valueName,
					PSkuImg: skuImg,
				})
			}

			propValues = append(propValues, pValue)
			propNames = append(propNames, attrID+":"+pValue+":"+attrName+":"+valueName)
		}

		skuKey := strings.Join(propValues, ";")
		price := parsePrice(sku.Price, sku.ConsignPrice)

		// 这个平台的 properties_name 历史上就是排序后拼接的，保持不变
		sort.Strings(propNames)
		skuList[skuKey] = model.SKU{
			Price:          price,
			TotalPrice:     0,
			OriginalPrice:  price,
			Properties:     skuKey,
			PropertiesName: strings.Join(propNames, ";"),
			Quantity:       sku.AmountOnSale,
			SkuID:          strconv.FormatInt(sku.SkuID, 10) + "-" + sku.SpecID,
		}
	}

	originList := make(map[string]string, len(src.ProductAttribute))
	for _, attr := range src.ProductAttribute {
		key := strconv.FormatInt(attr.AttributeID, 10) + ":" + attr.Value
		originList[key] = attr.AttributeNameTrans + ":" + attr.ValueTrans
	}

	imageURL := ""
	if len(picURLs) > 0 {
		imageURL = proxyImage(proxyBase, picURLs[0])
	}
	imageList := make([]model.Image, 0, len(picURLs))
	for _, u := range picURLs {
		imageList = append(imageList, model.Image{URL: proxyImage(proxyBase, u)})
	}

	name := src.SubjectTrans
	if name == "" {
		name = src.Subject
	}

	id := strconv.FormatInt(src.OfferID, 10)
	link := src.PromotionURL
	if link == "" {
		link = model.ItemLink(model.Platform1688, id)
	}

	var firstSkuPrice float64
	if len(src.ProductSkuInfos) > 0 {
		firstSkuPrice = parsePrice(src.ProductSkuInfos[0].Price, "")
	}

	minNum := src.MinOrderQuantity
	if minNum == 0 {
		minNum = 1
	}

	num := 0
	if src.ProductSaleInfo != nil {
		num = src.ProductSaleInfo.AmountOnSale
	}

	itemWeight, itemSize := "", ""
	if src.ProductShippingInfo != nil && len(src.ProductShippingInfo.SkuShippingDetails) > 0 {
		d := src.ProductShippingInfo.SkuShippingDetails[0]
		itemWeight = d.Weight
		itemSize = d.Length + "x" + d.Width + "x" + d.Height
	}

	return &model.Result{
		Code: 0,
		Msg:  "Success",
		Data: &model.Product{
			ProductImageURL:  imageURL,
			ProductImageList: imageList,
			ProductName:      name,
			ProductLink:      link,
			ProductDetails:   rewriteDescription(src.Description, proxyBase),
			FreightAmountCNY: flatFreightCNY,
			FreightAmountUSD: flatFreightUSD,
			ProductPlatform:  model.Platform1688,
			PropList:         propGroups,
			SkuPropList:      map[string]string{},
			SkuPropListSort:  []string{},
			PropsListOrigin:  originList,
			SkuList:          skuList,
			ProductPrice:     firstSkuPrice,
			CurrentPriceUSD:  currency.CNYToUSD(firstSkuPrice, currency.RateCNYToUSD),
			MinNum:           minNum,
			Num:              num,
			ItemWeight:       itemWeight,
			ItemSize:         itemSize,
			Sales:            src.SoldOut,
			StoreID:          src.SellerOpenID,
			SellerName:       "",
			PropsImg:         map[string]string{},
			ProductItemID:    id,
			APITime:          time.Now().UTC().Format(time.RFC3339),
			Cache:            "no",
		},
	}
}

// rewriteDescription 把详情 HTML 里的图片改写到 image-proxy，随后只保留 img 标签
// 详情原文混杂的脚本和样式对前端无用，只有图片需要展示
func rewriteDescription(description, proxyBase string) string {
	if description == "" {
		return ""
	}
	rewritten := imgSrcPattern.ReplaceAllStringFunc(description, func(tag string) string {
		m := imgSrcPattern.FindStringSubmatch(tag)
		if len(m) < 2 {
			return tag
		}
		return `<img src="` + proxyImage(proxyBase, m[1]) + `"/>`
	})
	tags := imgTagPattern.FindAllString(rewritten, -1)
	return strings.Join(tags, "")
}

func proxyImage(proxyBase, rawURL string) string {
	return strings.TrimSuffix(proxyBase, "/") + "/image/image-proxy?url=" + rawURL
}

func parsePrice(price, fallback string) float64 {
	s := price
	if s == "" {
		s = fallback
	}
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return currency.NonNegative(v)
}

func containsPValue(list []model.PropValue, pValue string) bool {
	for _, v := range list {
		if v.PValue == pValue {
			return true
		}
	}
	return false
}
