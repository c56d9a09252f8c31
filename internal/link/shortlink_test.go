package link

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestResolveFromTarget(t *testing.T) {
	tests := []struct {
		name     string
		shortURL string
		target   string
		want     string
	}{
		{
			name:     "taobao redirect target",
			shortURL: "https://e.tb.cn/h.abc123",
			target:   "https://item.taobao.com/item.htm?id=123456",
			want:     "https://item.taobao.com/item.htm?id=123456",
		},
		{
			name:     "1688 offerId target",
			shortURL: "https://qr.1688.com/s/xyz",
			target:   "https://m.1688.com/offer?offerId=777888",
			want:     "https://detail.1688.com/offer/777888.html",
		},
		{
			name:     "target without id",
			shortURL: "https://e.tb.cn/h.abc123",
			target:   "https://www.taobao.com/",
			want:     "",
		},
		{
			name:     "unknown short link domain",
			shortURL: "https://t.co/abc",
			target:   "https://item.taobao.com/item.htm?id=1",
			want:     "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := resolveFromTarget(tt.shortURL, tt.target); got != tt.want {
				t.Errorf("resolveFromTarget(%q, %q) = %q, want %q", tt.shortURL, tt.target, got, tt.want)
			}
		})
	}
}

// 平台判定看的是短链字符串本身，测试服务器地址带上 tb.cn/1688.com 路径即可走通全流程

func TestResolveFollowsRedirect(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Location", "https://item.taobao.com/item.htm?id=424242")
		w.WriteHeader(http.StatusFound)
	}))
	defer srv.Close()

	r := NewShortLinkResolver(2*time.Second, zap.NewNop())
	got := r.Resolve(context.Background(), srv.URL+"/tb.cn/h.abc")
	if got != "https://item.taobao.com/item.htm?id=424242" {
		t.Errorf("Resolve = %q, want taobao item link", got)
	}
}

func TestResolveReadsLandingPageJS(t *testing.T) {
	tests := []struct {
		name string
		body string
		path string
		want string
	}{
		{
			name: "var url single quotes",
			body: `<script>var url = 'https://item.taobao.com/item.htm?id=999';</script>`,
			path: "/tb.cn/h.page",
			want: "https://item.taobao.com/item.htm?id=999",
		},
		{
			name: "wirelessUrl double quotes",
			body: `<script>var wirelessUrl = "https://m.1688.com/offer?offerId=555";</script>`,
			path: "/qr.1688.com/s/page",
			want: "https://detail.1688.com/offer/555.html",
		},
		{
			name: "page without embedded target",
			body: `<html><body>nothing here</body></html>`,
			path: "/tb.cn/h.empty",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			r := NewShortLinkResolver(2*time.Second, zap.NewNop())
			if got := r.Resolve(context.Background(), srv.URL+tt.path); got != tt.want {
				t.Errorf("Resolve = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResolveServerUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	r := NewShortLinkResolver(500*time.Millisecond, zap.NewNop())
	if got := r.Resolve(context.Background(), srv.URL+"/tb.cn/h.dead"); got != "" {
		t.Errorf("Resolve = %q, want empty on network failure", got)
	}
}
