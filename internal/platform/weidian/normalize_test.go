package weidian

import (
	"strings"
	"testing"

	"go.uber.org/zap"
)

func sampleDetails() *DetailsResult {
	return &DetailsResult{
		ItemID:               "7272754802",
		ItemTitle:            "卫衣",
		ItemMainPic:          "https://si.geilicdn.com/main.jpg",
		ItemStock:            30,
		ItemDiscountLowPrice: 12990,
		AttrList: []AttrList{
			{
				AttrTitle: "颜色",
				AttrValues: []AttrValue{
					{AttrID: 101, AttrValue: "灰色", Img: "https://si.geilicdn.com/grey.jpg"},
					{AttrID: 102, AttrValue: "黑色", Img: "https://si.geilicdn.com/black.jpg"},
				},
			},
			{
				AttrTitle: "尺码",
				AttrValues: []AttrValue{
					{AttrID: 201, AttrValue: "M", Img: "https://si.geilicdn.com/m.jpg"},
					{AttrID: 202, AttrValue: "L", Img: ""},
				},
			},
		},
		SkuInfos: []SkuEntry{
			{
				AttrIDs: []int64{101, 201},
				SkuInfo: &SkuInfo{ID: 9001, DiscountPrice: 12990, Stock: 7},
			},
			{
				AttrIDs: []int64{102, 202},
				SkuInfo: &SkuInfo{ID: 9002, DiscountPrice: 13990, Stock: 3},
			},
			{
				// skuInfo 缺失的坏条目必须被跳过
				AttrIDs: []int64{101, 202},
			},
		},
	}
}

func sampleDesc() *DescResult {
	return &DescResult{
		ItemDetail: &ItemDetail{
			DescContent: []DescContent{
				{Type: 1, Text: "文字说明"},
				{Type: 2, URL: "https://si.geilicdn.com/desc1.jpg"},
				{Type: 2, URL: "   "},
				{Type: 2, URL: "https://si.geilicdn.com/desc2.jpg"},
			},
		},
	}
}

func TestNormalizeInvalid(t *testing.T) {
	logger := zap.NewNop()

	tests := []struct {
		name    string
		details *DetailsResult
	}{
		{"nil details", nil},
		{"missing item id", &DetailsResult{ItemTitle: "x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Normalize(tt.details, nil, logger)
			if result.Code != -1 {
				t.Errorf("expected code -1, got %d", result.Code)
			}
			if result.Data != nil {
				t.Errorf("expected nil data, got %+v", result.Data)
			}
		})
	}
}

func TestNormalizeBasicFields(t *testing.T) {
	result := Normalize(sampleDetails(), sampleDesc(), zap.NewNop())
	if result.Code != 0 {
		t.Fatalf("expected code 0, got %d (%s)", result.Code, result.Msg)
	}
	data := result.Data

	if data.ProductPlatform != "micro" {
		t.Errorf("unexpected platform: %s", data.ProductPlatform)
	}
	if data.ProductLink != "https://weidian.com/item.html?itemID=7272754802" {
		t.Errorf("unexpected product_link: %s", data.ProductLink)
	}
	if data.ProductPrice != 129.9 {
		t.Errorf("expected price 129.9, got %v", data.ProductPrice)
	}
	if data.CurrentPriceUSD != 18.19 {
		t.Errorf("expected usd price 18.19, got %v", data.CurrentPriceUSD)
	}
	if data.FreightAmountCNY != 10 || data.FreightAmountUSD != 1.49 {
		t.Errorf("unexpected flat freight: %v / %v", data.FreightAmountCNY, data.FreightAmountUSD)
	}
	if data.MinNum != 1 || data.Num != 30 {
		t.Errorf("unexpected min_num/num: %d / %d", data.MinNum, data.Num)
	}
	if data.StoreID != "7272754802" || data.ProductItemID != "7272754802" {
		t.Errorf("unexpected ids: %s / %s", data.StoreID, data.ProductItemID)
	}
}

func TestNormalizeImages(t *testing.T) {
	data := Normalize(sampleDetails(), nil, zap.NewNop()).Data

	if data.ProductImageURL != "https://si.geilicdn.com/main.jpg" {
		t.Errorf("unexpected main image: %s", data.ProductImageURL)
	}
	// 主图 + 3 张非空属性图
	if len(data.ProductImageList) != 4 {
		t.Errorf("expected 4 unique images, got %d", len(data.ProductImageList))
	}
}

func TestNormalizeSkuList(t *testing.T) {
	data := Normalize(sampleDetails(), nil, zap.NewNop()).Data

	// 坏条目被跳过，只剩两个 SKU
	if len(data.SkuList) != 2 {
		t.Fatalf("expected 2 skus, got %d", len(data.SkuList))
	}

	sku, ok := data.SkuList["101;201"]
	if !ok {
		t.Fatalf("missing sku key 101;201")
	}
	if sku.Price != 129.9 || sku.OriginalPrice != 129.9 {
		t.Errorf("unexpected prices: %v / %v", sku.Price, sku.OriginalPrice)
	}
	if sku.PropertiesName != "灰色; M" {
		t.Errorf("unexpected properties_name: %q", sku.PropertiesName)
	}
	if sku.SkuID != "9001" {
		t.Errorf("unexpected sku id: %s", sku.SkuID)
	}
	if sku.Quantity != 7 {
		t.Errorf("unexpected quantity: %d", sku.Quantity)
	}
}

func TestNormalizeSizeGroupImagesCleared(t *testing.T) {
	data := Normalize(sampleDetails(), nil, zap.NewNop()).Data

	if len(data.PropList) != 2 {
		t.Fatalf("expected 2 prop groups, got %d", len(data.PropList))
	}
	for _, v := range data.PropList[1].PropList {
		if v.PSkuImg != "" {
			t.Errorf("size group image should be cleared, got %s", v.PSkuImg)
		}
	}
	// 颜色组的图片保留
	if data.PropList[0].PropList[0].PSkuImg == "" {
		t.Errorf("color group image should be kept")
	}

	if data.PropsListOrigin["102"] != "颜色:黑色" {
		t.Errorf("unexpected props_list_origin entry: %s", data.PropsListOrigin["102"])
	}
}

func TestDescriptionHTML(t *testing.T) {
	html := descriptionHTML(sampleDesc())

	if !strings.HasPrefix(html, `<div id="offer-template-0"></div>`) {
		t.Errorf("missing scaffold prefix: %s", html)
	}
	if strings.Count(html, "<img") != 2 {
		t.Errorf("expected 2 images, got %d", strings.Count(html, "<img"))
	}
	if strings.Contains(html, "文字说明") {
		t.Errorf("text content must not leak into html")
	}

	if descriptionHTML(nil) != "" {
		t.Errorf("nil desc should produce empty html")
	}
	empty := &DescResult{ItemDetail: &ItemDetail{DescContent: []DescContent{{Type: 1, Text: "x"}}}}
	if descriptionHTML(empty) != "" {
		t.Errorf("image-free desc should produce empty html")
	}
}
