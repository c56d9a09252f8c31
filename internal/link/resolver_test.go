package link

import (
	"fmt"
	"strings"
	"testing"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		wantPlatform string
		wantID       string
		wantNil      bool
	}{
		{
			name:         "1688 offer page",
			input:        "https://detail.1688.com/offer/977208207464.html",
			wantPlatform: "1688",
			wantID:       "977208207464",
		},
		{
			name:         "1688 offerId query",
			input:        "https://m.1688.com/offer?offerId=555666",
			wantPlatform: "1688",
			wantID:       "555666",
		},
		{
			name:         "weidian itemID",
			input:        "https://weidian.com/item.html?itemID=7272754802",
			wantPlatform: "micro",
			wantID:       "7272754802",
		},
		{
			name:         "weidian itemId casing",
			input:        "https://weidian.com/item.html?itemId=42",
			wantPlatform: "micro",
			wantID:       "42",
		},
		{
			name:         "taobao item",
			input:        "https://item.taobao.com/item.htm?id=123456789",
			wantPlatform: "taobao",
			wantID:       "123456789",
		},
		{
			name:         "tmall item",
			input:        "https://detail.tmall.com/item.htm?id=987",
			wantPlatform: "tmall",
			wantID:       "987",
		},
		{
			name:         "hoobuy taobao",
			input:        "https://hoobuy.com/product/1/555",
			wantPlatform: "taobao",
			wantID:       "555",
		},
		{
			name:         "hoobuy 1688",
			input:        "https://hoobuy.com/product/0/888",
			wantPlatform: "1688",
			wantID:       "888",
		},
		{
			name:         "hoobuy weidian",
			input:        "https://hoobuy.com/product/2/999",
			wantPlatform: "micro",
			wantID:       "999",
		},
		{
			name:    "hoobuy unknown type fails closed",
			input:   "https://hoobuy.com/product/9/555",
			wantNil: true,
		},
		{
			name:    "hoobuy missing id",
			input:   "https://hoobuy.com/product/1",
			wantNil: true,
		},
		{
			name:         "forwarder cnfans weidian",
			input:        "https://cnfans.com/?id=42&shop_type=weidian",
			wantPlatform: "micro",
			wantID:       "42",
		},
		{
			name:         "forwarder mulebuy ali_1688",
			input:        "https://mulebuy.com/product?id=7&source=ALI_1688",
			wantPlatform: "1688",
			wantID:       "7",
		},
		{
			name:         "forwarder param name case insensitive",
			input:        "https://oopbuy.com/?id=11&Shop_Type=taobao",
			wantPlatform: "taobao",
			wantID:       "11",
		},
		{
			name:    "forwarder unknown type",
			input:   "https://cnfans.com/?id=42&shop_type=ebay",
			wantNil: true,
		},
		{
			name:    "forwarder missing id",
			input:   "https://cnfans.com/?shop_type=weidian",
			wantNil: true,
		},
		{
			name:         "encoded query url",
			input:        "https://kakobuy.com/item?url=" + "https%3A%2F%2Fitem.taobao.com%2Fitem.htm%3Fid%3D777",
			wantPlatform: "taobao",
			wantID:       "777",
		},
		{
			name:         "encoded fragment url",
			input:        "https://superbuy.com/en/page/buy/#/?url=https%3A%2F%2Fweidian.com%2Fitem.html%3FitemID%3D31415",
			wantPlatform: "micro",
			wantID:       "31415",
		},
		{
			// 内嵌链接自带多个参数，%26 只能解一次码，否则会被当成外层分隔符截断
			name:         "encoded fragment url with embedded params",
			input:        "https://superbuy.com/en/page/buy/#/?url=https%3A%2F%2Fcnfans.com%2F%3Fid%3D42%26shop_type%3Dweidian",
			wantPlatform: "micro",
			wantID:       "42",
		},
		{
			name:         "niuniubox search text",
			input:        "https://niuniubox.com/search?search_text=https%3A%2F%2Fitem.taobao.com%2Fitem.htm%3Fid%3D202",
			wantPlatform: "taobao",
			wantID:       "202",
		},
		{
			name:    "not a url",
			input:   "随便一段文字",
			wantNil: true,
		},
		{
			name:    "unknown host",
			input:   "https://example.com/item?id=1",
			wantNil: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(tt.input)
			if tt.wantNil {
				if got != nil {
					t.Fatalf("Resolve(%q) = %+v, want nil", tt.input, got)
				}
				return
			}
			if got == nil {
				t.Fatalf("Resolve(%q) = nil, want platform=%s id=%s", tt.input, tt.wantPlatform, tt.wantID)
			}
			if got.Platform != tt.wantPlatform || got.ID != tt.wantID {
				t.Errorf("Resolve(%q) = {%s %s}, want {%s %s}",
					tt.input, got.Platform, got.ID, tt.wantPlatform, tt.wantID)
			}
		})
	}
}

func TestResolve_WeidianFallbackWithoutID(t *testing.T) {
	got := Resolve("https://weidian.com/some/page?foo=bar")
	if got == nil {
		t.Fatal("expected fallback result for weidian link without item id")
	}
	if got.Platform != "weidian" || got.ID != "" {
		t.Errorf("unexpected fallback %+v", got)
	}
	if strings.Contains(got.ShortOriginalLink, "?") {
		t.Errorf("fallback link should drop the query string, got %q", got.ShortOriginalLink)
	}
}

func TestResolve_DecodeDepthBounded(t *testing.T) {
	// 构造一条超过递归上限的编码链，每层都把下一层整体编码进 url 参数
	inner := "https://item.taobao.com/item.htm?id=1"
	chain := inner
	for i := 0; i < maxDecodeDepth+2; i++ {
		chain = fmt.Sprintf("https://kakobuy.com/item?url=%s", urlEncode(chain))
	}

	if got := Resolve(chain); got != nil {
		t.Fatalf("expected nil past the decode depth bound, got %+v", got)
	}

	// 上限以内的链仍然可以解析
	chain = inner
	for i := 0; i < maxDecodeDepth; i++ {
		chain = fmt.Sprintf("https://kakobuy.com/item?url=%s", urlEncode(chain))
	}
	if got := Resolve(chain); got == nil || got.ID != "1" {
		t.Fatalf("expected resolution within depth bound, got %+v", got)
	}
}

func urlEncode(s string) string {
	replacer := strings.NewReplacer(
		":", "%3A",
		"/", "%2F",
		"?", "%3F",
		"=", "%3D",
		"&", "%26",
	)
	return replacer.Replace(s)
}
