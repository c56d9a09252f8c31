package taobao

import (
	"strconv"
	"strings"

	"github.com/shari-07/search-api/internal/currency"
	"github.com/shari-07/search-api/internal/model"
)

// Normalize 把淘宝原始商品转换为规范化记录
// 纯函数：只做结构转换，不做翻译、缓存或网络调用
func Normalize(item *RawItem) *model.Result {
	if item == nil || item.ItemID == 0 {
		return &model.Result{
			Code: -1,
			Msg:  "Error: Invalid or unsuccessful Taobao API response.",
		}
	}

	// 属性组按 prop_id 首次出现的顺序聚合
	groupIndex := make(map[int64]int)
	var propGroups []model.PropGroup

	skuList := make(map[string]model.SKU, len(item.SkuList))

	for _, sku := range item.SkuList {
		propValues := make([]string, 0, len(sku.Properties))
		propNames := make([]string, 0, len(sku.Properties))

		for _, prop := range sku.Properties {
			idx, ok := groupIndex[prop.PropID]
			if !ok {
				idx = len(propGroups)
				groupIndex[prop.PropID] = idx
				propGroups = append(propGroups, model.PropGroup{
					PropType: strconv.FormatInt(prop.PropID, 10),
					PropName: prop.PropName,
				})
			}

			pValue := strconv.FormatInt(prop.PropID, 10) + ":" + strconv.FormatInt(prop.ValueID, 10)
			if !containsPValue(propGroups[idx].PropList, pValue) {
				propGroups[idx].PropList = append(propGroups[idx].PropList, model.PropValue{
					PValue:  pValue,
					PName:   prop.ValueName,
					PSkuImg: sku.PicURL,
				})
			}

			propValues = append(propValues, pValue)
			propNames = append(propNames, strings.Join([]string{
				strconv.FormatInt(prop.PropID, 10),
				strconv.FormatInt(prop.ValueID, 10),
				prop.PropName,
				prop.ValueName,
			}, ":"))
		}

		// 组合键按属性原始顺序连接，顺序改变会让前端选中的 SKU 失配
		skuKey := strings.Join(propValues, ";")
		skuList[skuKey] = model.SKU{
			Price:          sku.PromotionPrice / 100,
			TotalPrice:     0,
			OriginalPrice:  sku.Price / 100,
			Properties:     skuKey,
			PropertiesName: strings.Join(propNames, ";"),
			Quantity:       sku.Quantity,
			SkuID:          strconv.FormatInt(sku.SkuID, 10),
		}
	}

	originList := make(map[string]string)
	for _, g := range propGroups {
		for _, v := range g.PropList {
			originList[v.PValue] = g.PropName + ":" + v.PName
		}
	}

	imageURL := ""
	if len(item.PicURLs) > 0 {
		imageURL = item.PicURLs[0]
	} else if len(propGroups) > 0 && len(propGroups[0].PropList) > 0 {
		imageURL = propGroups[0].PropList[0].PSkuImg
	}

	imageList := make([]model.Image, 0, len(item.PicURLs))
	for _, u := range item.PicURLs {
		imageList = append(imageList, model.Image{URL: u})
	}

	title := item.Title
	if title == "" {
		title = "No Title"
	}

	var freightCNY float64
	if len(item.SkuList) > 0 {
		freightCNY = item.SkuList[0].PostFee / 100
	}

	minNum := item.BeginAmount
	if minNum == 0 {
		minNum = 1
	}

	id := strconv.FormatInt(item.ItemID, 10)

	return &model.Result{
		Code: 0,
		Msg:  "Success",
		Data: &model.Product{
			ProductImageURL:  imageURL,
			ProductImageList: imageList,
			ProductName:      title,
			ProductLink:      model.ItemLink(model.PlatformTaobao, id),
			ProductDetails:   item.Description,
			FreightAmountCNY: freightCNY,
			FreightAmountUSD: currency.CNYToUSD(freightCNY, currency.RateCNYToUSD),
			ProductPlatform:  model.PlatformTaobao,
			PropList:         propGroups,
			SkuPropList:      map[string]string{},
			SkuPropListSort:  []string{},
			PropsListOrigin:  originList,
			SkuList:          skuList,
			ProductPrice:     item.PromotionPrice / 100,
			CurrentPriceUSD:  currency.CNYDivUSD(item.PromotionPrice/100, currency.DivisorTaobaoUSD),
			MinNum:           minNum,
			Num:              item.Quantity,
			ItemWeight:       "",
			ItemSize:         "",
			Sales:            0,
			StoreID:          strconv.FormatInt(item.ShopID, 10),
			SellerName:       item.ShopName,
			PropsImg:         map[string]string{},
			ProductItemID:    id,
			APITime:          item.TraceID,
			Cache:            "no",
		},
	}
}

func containsPValue(list []model.PropValue, pValue string) bool {
	for _, v := range list {
		if v.PValue == pValue {
			return true
		}
	}
	return false
}
