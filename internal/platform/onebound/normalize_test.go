package onebound

import (
	"encoding/json"
	"testing"

	"go.uber.org/zap"
)

func sampleProduct() *RawProduct {
	return &RawProduct{
		PicURL: "//img.alicdn.com/main.jpg",
		ItemImgs: []ItemImg{
			{URL: "//img.alicdn.com/1.jpg"},
			{URL: "https://img.alicdn.com/2.jpg"},
		},
		Title:     "短袖",
		DetailURL: "https://item.taobao.com/item.htm?id=888",
		Desc:      "<p>desc</p>",
		PostFee:   "8.00",
		Price:     "59.00",
		PropsList: json.RawMessage(`{"1627207:28341":"颜色:黑色","1627207:28342":"颜色:白色","20509:28314":"尺码:M"}`),
		Skus: &SkuContainer{Sku: []RawSKU{
			{Price: "59.00", OriginalPrice: "79.00", Properties: "1627207:28341;20509:28314", PropertiesName: "1627207:28341:颜色:黑色;20509:28314:尺码:M", Quantity: "12", SkuID: "777"},
			{Properties: "", SkuID: "broken"},
		}},
		SellerID:   "44556",
		SellerInfo: &SellerInfo{Nick: "店主"},
		PropsImg:   map[string]string{"1627207:28341": "//img.alicdn.com/black.jpg"},
		NumIID:     "888",
		Num:        "120",
		TotalSold:  "300",
		ItemWeight: "0.3",
	}
}

func TestOrderedPairs(t *testing.T) {
	raw := json.RawMessage(`{"b:1":"B:one","a:2":"A:two","b:3":"B:three","skip:x":{"nested":true}}`)
	pairs, err := orderedPairs(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// 键序必须是原始 JSON 的出现顺序，非字符串值被跳过
	want := []PropPair{{"b:1", "B:one"}, {"a:2", "A:two"}, {"b:3", "B:three"}}
	if len(pairs) != len(want) {
		t.Fatalf("expected %d pairs, got %d", len(want), len(pairs))
	}
	for i, p := range pairs {
		if p != want[i] {
			t.Errorf("pair %d mismatch: got %+v want %+v", i, p, want[i])
		}
	}

	if _, err := orderedPairs(json.RawMessage(`[1,2]`)); err == nil {
		t.Errorf("expected error for non-object props_list")
	}
	if pairs, err := orderedPairs(nil); err != nil || pairs != nil {
		t.Errorf("nil raw should yield nil pairs, got %v / %v", pairs, err)
	}
}

func TestNormalizeInvalid(t *testing.T) {
	logger := zap.NewNop()

	tests := []struct {
		name string
		item *RawProduct
	}{
		{"nil item", nil},
		{"missing pic_url", &RawProduct{Title: "x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Normalize(tt.item, "taobao", logger)
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
	result := Normalize(sampleProduct(), "taobao", zap.NewNop())
	if result.Code != 0 {
		t.Fatalf("expected code 0, got %d (%s)", result.Code, result.Msg)
	}
	data := result.Data

	if data.ProductImageURL != "https://img.alicdn.com/main.jpg" {
		t.Errorf("protocol-relative url not fixed: %s", data.ProductImageURL)
	}
	if data.ProductImageList[0].URL != "https://img.alicdn.com/1.jpg" {
		t.Errorf("image list url not fixed: %s", data.ProductImageList[0].URL)
	}
	if data.ProductPlatform != "taobao" {
		t.Errorf("platform not injected: %s", data.ProductPlatform)
	}
	if data.ProductPrice != 59 {
		t.Errorf("unexpected price: %v", data.ProductPrice)
	}
	if data.CurrentPriceUSD != 8.26 {
		t.Errorf("expected usd 8.26, got %v", data.CurrentPriceUSD)
	}
	if data.FreightAmountCNY != 8 || data.FreightAmountUSD != 1.12 {
		t.Errorf("unexpected freight: %v / %v", data.FreightAmountCNY, data.FreightAmountUSD)
	}
	if data.Sales != 300 {
		t.Errorf("expected total_sold fallback 300, got %d", data.Sales)
	}
	if data.SellerName != "店主" {
		t.Errorf("unexpected seller name: %s", data.SellerName)
	}
	if data.StoreID != "44556" {
		t.Errorf("unexpected store id: %s", data.StoreID)
	}
	if data.Num != 120 {
		t.Errorf("unexpected num: %d", data.Num)
	}
}

func TestNormalizePropsAndSkus(t *testing.T) {
	data := Normalize(sampleProduct(), "taobao", zap.NewNop()).Data

	if len(data.PropList) != 2 {
		t.Fatalf("expected 2 prop groups, got %d", len(data.PropList))
	}
	color := data.PropList[0]
	if color.PropType != "1627207" || color.PropName != "颜色" {
		t.Errorf("unexpected first group: %+v", color)
	}
	if len(color.PropList) != 2 {
		t.Errorf("expected 2 color values, got %d", len(color.PropList))
	}
	if color.PropList[0].PSkuImg != "//img.alicdn.com/black.jpg" {
		t.Errorf("props_img not attached: %s", color.PropList[0].PSkuImg)
	}

	if data.PropsListOrigin["20509:28314"] != "尺码:M" {
		t.Errorf("unexpected props_list_origin entry: %s", data.PropsListOrigin["20509:28314"])
	}

	// 无 properties 的坏条目被跳过
	if len(data.SkuList) != 1 {
		t.Fatalf("expected 1 sku, got %d", len(data.SkuList))
	}
	sku := data.SkuList["1627207:28341;20509:28314"]
	if sku.Price != 59 || sku.OriginalPrice != 79 {
		t.Errorf("unexpected sku prices: %v / %v", sku.Price, sku.OriginalPrice)
	}
	if sku.Quantity != 12 || sku.SkuID != "777" {
		t.Errorf("unexpected sku fields: %d / %s", sku.Quantity, sku.SkuID)
	}
}

func TestResponseView(t *testing.T) {
	original := Normalize(sampleProduct(), "taobao", zap.NewNop())

	view := ResponseView(original, true)
	if view.Data.ProductImageURL != "//img.alicdn.com/main.jpg" {
		t.Errorf("scheme not stripped: %s", view.Data.ProductImageURL)
	}
	// 59 / 6.7 = 8.81
	if view.Data.CurrentPriceUSD != 8.81 {
		t.Errorf("expected recomputed usd 8.81, got %v", view.Data.CurrentPriceUSD)
	}
	if view.Data.Cache != "yes" {
		t.Errorf("expected cache yes, got %s", view.Data.Cache)
	}

	// 原记录不能被视图改动
	if original.Data.ProductImageURL != "https://img.alicdn.com/main.jpg" {
		t.Errorf("original image url mutated: %s", original.Data.ProductImageURL)
	}
	if original.Data.Cache != "no" {
		t.Errorf("original cache flag mutated: %s", original.Data.Cache)
	}
}
