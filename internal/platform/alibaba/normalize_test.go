package alibaba

import (
	"strings"
	"testing"

	"github.com/shari-07/search-api/internal/model"
)

const testProxyBase = "https://shariyy.com"

func sampleResponse() *RawResponse {
	return &RawResponse{
		Result: &RawResult{
			Success: true,
			Result: &RawProduct{
				OfferID:          977208207464,
				Subject:          "纯棉T恤",
				SubjectTrans:     "Cotton T-Shirt",
				Description:      `<p>intro</p><img src="https://cbu01.alicdn.com/detail1.jpg" width="790"><script>x</script><img src="https://cbu01.alicdn.com/detail2.jpg">`,
				MinOrderQuantity: 2,
				SoldOut:          120,
				SellerOpenID:     "seller-open-1",
				ProductImage: &RawImage{
					Images: []string{"https://cbu01.alicdn.com/main.jpg", "https://cbu01.alicdn.com/alt.jpg"},
				},
				ProductSkuInfos: []RawSKUInfo{
					{
						SkuID:        5001,
						SpecID:       "spec-a",
						Price:        "35.50",
						AmountOnSale: 99,
						SkuAttributes: []RawSKUAttribute{
							{AttributeID: 3216, AttributeName: "颜色", AttributeNameTrans: "Color", Value: "白色", ValueTrans: "White", SkuImageURL: "https://cbu01.alicdn.com/sku-white.jpg"},
							{AttributeID: 450, AttributeName: "尺码", AttributeNameTrans: "Size", Value: "XL", ValueTrans: "XL"},
						},
					},
					{
						SkuID:        5002,
						SpecID:       "spec-b",
						ConsignPrice: "36.80",
						AmountOnSale: 50,
						SkuAttributes: []RawSKUAttribute{
							{AttributeID: 3216, AttributeName: "颜色", AttributeNameTrans: "Color", Value: "黑色", ValueTrans: "Black"},
							{AttributeID: 450, AttributeName: "尺码", AttributeNameTrans: "Size", Value: "XL", ValueTrans: "XL"},
						},
					},
				},
				ProductAttribute: []RawAttribute{
					{AttributeID: 100, AttributeNameTrans: "Material", Value: "棉", ValueTrans: "Cotton"},
				},
				ProductSaleInfo: &RawSaleInfo{AmountOnSale: 149},
				ProductShippingInfo: &RawShippingInfo{
					SkuShippingDetails: []RawShippingDetail{
						{Weight: "0.25", Length: "30", Width: "20", Height: "4"},
					},
				},
			},
		},
	}
}

func TestNormalizeInvalid(t *testing.T) {
	tests := []struct {
		name string
		resp *RawResponse
	}{
		{"nil response", nil},
		{"empty outer result", &RawResponse{}},
		{"empty inner result", &RawResponse{Result: &RawResult{Success: false}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Normalize(tt.resp, testProxyBase)
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
	result := Normalize(sampleResponse(), testProxyBase)
	if result.Code != 0 {
		t.Fatalf("expected code 0, got %d (%s)", result.Code, result.Msg)
	}
	data := result.Data

	if data.ProductName != "Cotton T-Shirt" {
		t.Errorf("expected translated subject, got %s", data.ProductName)
	}
	if data.ProductItemID != "977208207464" {
		t.Errorf("unexpected product_item_id: %s", data.ProductItemID)
	}
	if data.ProductLink != "https://detail.1688.com/offer/977208207464.html" {
		t.Errorf("unexpected product_link: %s", data.ProductLink)
	}
	if data.ProductPlatform != "1688" {
		t.Errorf("unexpected platform: %s", data.ProductPlatform)
	}
	if data.ProductImageURL != "https://shariyy.com/image/image-proxy?url=https://cbu01.alicdn.com/main.jpg" {
		t.Errorf("main image not proxied: %s", data.ProductImageURL)
	}
	if data.FreightAmountCNY != 6 || data.FreightAmountUSD != 0.9 {
		t.Errorf("unexpected flat freight: %v / %v", data.FreightAmountCNY, data.FreightAmountUSD)
	}
	if data.ProductPrice != 35.5 {
		t.Errorf("expected product price 35.5, got %v", data.ProductPrice)
	}
	if data.CurrentPriceUSD != 4.97 {
		t.Errorf("expected usd price 4.97, got %v", data.CurrentPriceUSD)
	}
	if data.MinNum != 2 || data.Num != 149 {
		t.Errorf("unexpected min_num/num: %d / %d", data.MinNum, data.Num)
	}
	if data.ItemWeight != "0.25" || data.ItemSize != "30x20x4" {
		t.Errorf("unexpected weight/size: %s / %s", data.ItemWeight, data.ItemSize)
	}
	if data.Sales != 120 {
		t.Errorf("unexpected sales: %d", data.Sales)
	}
	if data.StoreID != "seller-open-1" {
		t.Errorf("unexpected store id: %s", data.StoreID)
	}
}

func TestNormalizeSkuList(t *testing.T) {
	data := Normalize(sampleResponse(), testProxyBase).Data

	sku, ok := data.SkuList["3216:白色;450:XL"]
	if !ok {
		t.Fatalf("missing sku key, have: %v", keysOf(data.SkuList))
	}
	if sku.Price != 35.5 || sku.OriginalPrice != 35.5 {
		t.Errorf("unexpected prices: %v / %v", sku.Price, sku.OriginalPrice)
	}
	if sku.SkuID != "5001-spec-a" {
		t.Errorf("unexpected sku id: %s", sku.SkuID)
	}
	// properties_name 在这个平台是排序后的拼接
	want := "3216:3216:白色:Color:White;450:450:XL:Size:XL"
	if sku.PropertiesName != want {
		t.Errorf("properties_name mismatch:\n got %s\nwant %s", sku.PropertiesName, want)
	}

	// price 为空时回退 consignPrice
	fallback := data.SkuList["3216:黑色;450:XL"]
	if fallback.Price != 36.8 {
		t.Errorf("expected consign price fallback 36.8, got %v", fallback.Price)
	}
}

func TestNormalizePropGroups(t *testing.T) {
	data := Normalize(sampleResponse(), testProxyBase).Data

	if len(data.PropList) != 2 {
		t.Fatalf("expected 2 prop groups, got %d", len(data.PropList))
	}
	color := data.PropList[0]
	if color.PropName != "Color" || len(color.PropList) != 2 {
		t.Errorf("unexpected color group: %+v", color)
	}
	if !strings.HasPrefix(color.PropList[0].PSkuImg, "https://shariyy.com/image/image-proxy?url=") {
		t.Errorf("sku image not proxied: %s", color.PropList[0].PSkuImg)
	}
	// 尺码 XL 被两个 SKU 共用，必须去重
	if len(data.PropList[1].PropList) != 1 {
		t.Errorf("expected deduped size values, got %d", len(data.PropList[1].PropList))
	}

	if data.PropsListOrigin["100:棉"] != "Material:Cotton" {
		t.Errorf("unexpected props_list_origin entry: %s", data.PropsListOrigin["100:棉"])
	}
}

func TestRewriteDescription(t *testing.T) {
	in := `<p>text</p><img src="https://cbu01.alicdn.com/a.jpg" width="790"><div><img src="https://cbu01.alicdn.com/b.jpg"></div>`
	out := rewriteDescription(in, testProxyBase)

	if strings.Contains(out, "<p>") || strings.Contains(out, "<div>") {
		t.Errorf("non-image markup survived: %s", out)
	}
	want := `<img src="https://shariyy.com/image/image-proxy?url=https://cbu01.alicdn.com/a.jpg"/><img src="https://shariyy.com/image/image-proxy?url=https://cbu01.alicdn.com/b.jpg"/>`
	if out != want {
		t.Errorf("description mismatch:\n got %s\nwant %s", out, want)
	}

	if rewriteDescription("", testProxyBase) != "" {
		t.Errorf("empty description should stay empty")
	}
	if rewriteDescription("<p>no images</p>", testProxyBase) != "" {
		t.Errorf("description without images should become empty")
	}
}

func keysOf(m map[string]model.SKU) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}
