package weidian

import (
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/shari-07/search-api/internal/currency"
	"github.com/shari-07/search-api/internal/model"
)

// 微店没有运费接口，延续历史接口返回的固定值
const (
	flatFreightCNY = 10
	flatFreightUSD = 1.49
)

// 尺码类属性组不展示取值图片，各语言的历史命名都要识别
var sizeAttrTitles = map[string]bool{
	"尺码":     true,
	"size":   true,
	"taille": true,
	"tamaño": true,
}

// Normalize 把微店原始详情转换为规范化记录
// descResult 可以为 nil，此时商品详情为空字符串
func Normalize(details *DetailsResult, desc *DescResult, logger *zap.Logger) *model.Result {
	if details == nil || details.ItemID == "" {
		return &model.Result{
			Code: -1,
			Msg:  "Error: Invalid or incomplete Weidian product details data.",
		}
	}

	attrNames := make(map[int64]string)
	var propGroups []model.PropGroup
	skuList := make(map[string]model.SKU)
	originList := make(map[string]string)

	if len(details.AttrList) > 0 && len(details.SkuInfos) > 0 {
		for _, group := range details.AttrList {
			clearImg := sizeAttrTitles[strings.ToLower(group.AttrTitle)]
			pg := model.PropGroup{
				PropType: group.AttrTitle,
				PropName: group.AttrTitle,
			}
			for _, val := range group.AttrValues {
				attrNames[val.AttrID] = val.AttrValue
				img := val.Img
				if clearImg {
					img = ""
				}
				pValue := strconv.FormatInt(val.AttrID, 10)
				pg.PropList = append(pg.PropList, model.PropValue{
					PValue:  pValue,
					PName:   val.AttrValue,
					PSkuImg: img,
				})
				originList[pValue] = group.AttrTitle + ":" + val.AttrValue
			}
			propGroups = append(propGroups, pg)
		}

		for _, sku := range details.SkuInfos {
			if sku.SkuInfo == nil || len(sku.AttrIDs) == 0 {
				logger.Warn("skipping invalid weidian sku entry",
					zap.String("item_id", details.ItemID))
				continue
			}

			ids := make([]string, 0, len(sku.AttrIDs))
			names := make([]string, 0, len(sku.AttrIDs))
			for _, id := range sku.AttrIDs {
				ids = append(ids, strconv.FormatInt(id, 10))
				if name := attrNames[id]; name != "" {
					names = append(names, name)
				}
			}

			skuKey := strings.Join(ids, ";")
			price := currency.Round2(sku.SkuInfo.DiscountPrice / 100)
			skuList[skuKey] = model.SKU{
				Price:          price,
				TotalPrice:     0,
				OriginalPrice:  price,
				Properties:     skuKey,
				PropertiesName: strings.Join(names, "; "),
				Quantity:       sku.SkuInfo.Stock,
				SkuID:          strconv.FormatInt(sku.SkuInfo.ID, 10),
			}
		}
	}

	images := collectImages(details)
	imageURL := ""
	if len(images) > 0 {
		imageURL = images[0]
	}
	imageList := make([]model.Image, 0, len(images))
	for _, u := range images {
		imageList = append(imageList, model.Image{URL: u})
	}

	price := currency.Round2(details.ItemDiscountLowPrice / 100)

	return &model.Result{
		Code: 0,
		Msg:  "Success",
		Data: &model.Product{
			ProductImageURL:  imageURL,
			ProductImageList: imageList,
			ProductName:      details.ItemTitle,
			ProductLink:      model.ItemLink(model.PlatformWeidian, details.ItemID),
			ProductDetails:   descriptionHTML(desc),
			FreightAmountCNY: flatFreightCNY,
			FreightAmountUSD: flatFreightUSD,
			ProductPlatform:  model.PlatformWeidian,
			PropList:         propGroups,
			SkuPropList:      map[string]string{},
			SkuPropListSort:  []string{},
			PropsListOrigin:  originList,
			SkuList:          skuList,
			ProductPrice:     price,
			CurrentPriceUSD:  currency.CNYToUSD(price, currency.RateCNYToUSD),
			MinNum:           1,
			Num:              details.ItemStock,
			ItemWeight:       "",
			ItemSize:         "",
			Sales:            0,
			StoreID:          details.ItemID,
			SellerName:       "",
			PropsImg:         map[string]string{},
			ProductItemID:    details.ItemID,
			APITime:          time.Now().UTC().Format(time.RFC3339),
			Cache:            "no",
		},
	}
}

// collectImages 主图在前，其后是各属性取值图，整体去重保序
func collectImages(details *DetailsResult) []string {
	seen := make(map[string]bool)
	var images []string
	add := func(u string) {
		if strings.TrimSpace(u) == "" || seen[u] {
			return
		}
		seen[u] = true
		images = append(images, u)
	}

	add(details.ItemMainPic)
	for _, group := range details.AttrList {
		for _, val := range group.AttrValues {
			add(val.Img)
		}
	}
	return images
}

// descriptionHTML 把图文详情里的图片条目拼成前端可直接渲染的 HTML 片段
func descriptionHTML(desc *DescResult) string {
	if desc == nil || desc.ItemDetail == nil {
		return ""
	}

	var imgs []string
	for _, item := range desc.ItemDetail.DescContent {
		if item.Type == 2 && strings.TrimSpace(item.URL) != "" {
			imgs = append(imgs, `<img src="`+item.URL+`" style="display: block;width: 100.0%;height: auto;"/>`)
		}
	}
	if len(imgs) == 0 {
		return ""
	}

	return `<div id="offer-template-0"></div><div style="width: 790.0px;">` + "\r\n        " +
		strings.Join(imgs, "\r\n        ") +
		"\r\n    </div><p>&nbsp;&nbsp;</p>"
}
