package link

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/shari-07/search-api/internal/model"
)

// fragmentURLPattern 从原始 fragment 字节里取 url= 参数
var fragmentURLPattern = regexp.MustCompile(`[?&]url=([^&]+)`)

// Resolved 链接解析结果
type Resolved struct {
	ShortOriginalLink string `json:"short_original_link"`
	ID                string `json:"id"`
	Platform          string `json:"platform"`
}

// maxDecodeDepth 编码跳转链接的最大递归层数
// 恶意或构造成环的链接在超过该层数后直接判定为无法解析
const maxDecodeDepth = 3

// forwardingHosts 已知的代购转发站，统一用 id + 类型参数指回源平台
var forwardingHosts = []string{
	"mulebuy.com",
	"joyabuy.com",
	"cnfans.com",
	"orientdig.com",
	"lovegobuy.com",
	"acbuy.com",
	"oopbuy.com",
}

// encodedHosts 把目标链接整体编码进查询参数或 fragment 的站点
var encodedHosts = []string{
	"loongbuy.com",
	"kakobuy.com",
	"superbuy.com",
	"google.com",
}

// Resolve 把任意输入链接归类并解析为 (platform, id)
// 解析失败一律返回 nil，从不返回错误
func Resolve(raw string) *Resolved {
	return resolve(raw, 0)
}

func resolve(raw string, depth int) *Resolved {
	if depth > maxDecodeDepth {
		return nil
	}

	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return nil
	}

	host := strings.ToLower(u.Hostname())
	path := u.Path
	params := u.Query()

	// 1. 平台直链，优先于更宽松的转发规则
	if strings.Contains(host, "1688.com") {
		id := params.Get("offerId")
		if id == "" {
			id = offerPathID(path)
		}
		if id == "" {
			return nil
		}
		return to1688(id)
	}

	if strings.Contains(host, "weidian.com") {
		id := params.Get("itemID")
		if id == "" {
			id = params.Get("itemId")
		}
		if id != "" {
			return toWeidian(id)
		}
		// 没有 ID 时退回裸链接，历史行为，调用方自行判断
		return &Resolved{
			ShortOriginalLink: strings.SplitN(raw, "?", 2)[0],
			ID:                "",
			Platform:          "weidian",
		}
	}

	if strings.Contains(host, "tmall.com") {
		if id := params.Get("id"); id != "" {
			return toTmall(id)
		}
		return nil
	}

	if strings.Contains(host, "taobao.com") {
		if id := params.Get("id"); id != "" {
			return toTaobao(id)
		}
		return nil
	}

	// 2. hoobuy 的 /product/{type}/{id} 路径式转发
	if strings.Contains(host, "hoobuy.com") {
		parts := splitPath(path)
		if len(parts) < 3 || parts[2] == "" {
			return nil
		}
		id := parts[2]
		switch parts[1] {
		case "0":
			return to1688(id)
		case "1":
			return toTaobao(id)
		case "2":
			return toWeidian(id)
		}
		// 未知类型码不猜测
		return nil
	}

	// 3. 通用转发站：id + 平台类型参数
	if hostMatches(host, forwardingHosts) {
		id := params.Get("id")
		typ := strings.ToLower(queryAny(params, "shop_type", "shoptype", "source", "platform"))
		if id == "" || typ == "" {
			return nil
		}
		switch typ {
		case "weidian":
			return toWeidian(id)
		case "taobao":
			return toTaobao(id)
		case "tmall":
			return toTmall(id)
		case "1688", "ali_1688":
			return to1688(id)
		}
		return nil
	}

	// 4. 编码链接站点：取出内嵌链接后递归解析
	if hostMatches(host, encodedHosts) {
		if decoded := encodedTarget(u, params); decoded != "" {
			return resolve(decoded, depth+1)
		}
		return nil
	}

	// niuniubox 把原始链接放在 search_text 里
	if strings.Contains(host, "niuniubox.com") {
		return resolve(params.Get("search_text"), depth+1)
	}

	return nil
}

func to1688(id string) *Resolved {
	return &Resolved{ShortOriginalLink: model.ItemLink(model.Platform1688, id), ID: id, Platform: model.Platform1688}
}

func toTaobao(id string) *Resolved {
	return &Resolved{ShortOriginalLink: model.ItemLink(model.PlatformTaobao, id), ID: id, Platform: model.PlatformTaobao}
}

func toTmall(id string) *Resolved {
	return &Resolved{ShortOriginalLink: model.ItemLink(model.PlatformTmall, id), ID: id, Platform: model.PlatformTmall}
}

func toWeidian(id string) *Resolved {
	return &Resolved{ShortOriginalLink: model.ItemLink(model.PlatformWeidian, id), ID: id, Platform: model.PlatformWeidian}
}

// offerPathID 从 /offer/{id}.html 或 /offer/{id} 形式的路径里取商品 ID
func offerPathID(path string) string {
	idx := strings.Index(path, "/offer/")
	if idx < 0 {
		return ""
	}
	rest := path[idx+len("/offer/"):]
	if i := strings.IndexByte(rest, '/'); i >= 0 {
		rest = rest[:i]
	}
	rest = strings.TrimSuffix(rest, ".html")
	if rest == "" || !isDigits(rest) {
		return ""
	}
	return rest
}

// encodedTarget 取出内嵌的目标链接：优先 fragment 里的 url=，再看 url/q 查询参数
// fragment 必须拿原始字节匹配：Parse 已经解过一次码，解码后的 fragment 里
// 内嵌链接自带的 & 会被误认为参数分隔符，把链接截断
func encodedTarget(u *url.URL, params url.Values) string {
	if m := fragmentURLPattern.FindStringSubmatch(u.EscapedFragment()); len(m) == 2 {
		if decoded, err := url.QueryUnescape(m[1]); err == nil && decoded != "" {
			return decoded
		}
	}
	for _, name := range []string{"url", "q"} {
		if val := params.Get(name); val != "" {
			if decoded, err := url.QueryUnescape(val); err == nil {
				return decoded
			}
		}
	}
	return ""
}

// queryAny 返回第一个命中的查询参数值，参数名不区分大小写
func queryAny(params url.Values, names ...string) string {
	for _, name := range names {
		for key, vals := range params {
			if strings.EqualFold(key, name) && len(vals) > 0 && vals[0] != "" {
				return vals[0]
			}
		}
	}
	return ""
}

func hostMatches(host string, domains []string) bool {
	for _, d := range domains {
		if strings.Contains(host, d) {
			return true
		}
	}
	return false
}

// splitPath 去掉空段后返回路径分段，/product/1/555 -> [product 1 555]
func splitPath(path string) []string {
	var parts []string
	for _, p := range strings.Split(path, "/") {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}
