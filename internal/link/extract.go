package link

import (
	"regexp"
	"strings"
)

// shortLinkPattern 聊天文本里常见的淘口令/1688 二维码短链
var shortLinkPattern = regexp.MustCompile(`https?://(?:e\.tb\.cn|qr\.1688\.com)/[^\s]*`)

// ExtractedLink 从自由文本里截出来的短链
type ExtractedLink struct {
	Platform string // "taobao" 或 "1688"，未识别为空
	Link     string
}

// ExtractRelevantLink 从一段文本里取出第一个淘宝或 1688 短链
// 截断到第一个空白符或字面 %20 为止，这是口令文本的历史格式
func ExtractRelevantLink(raw string) ExtractedLink {
	match := shortLinkPattern.FindString(raw)
	if match == "" {
		return ExtractedLink{}
	}

	u := match
	if i := strings.Index(u, "%20"); i >= 0 {
		u = u[:i]
	}
	if i := strings.IndexByte(u, ' '); i >= 0 {
		u = u[:i]
	}

	var platform string
	switch {
	case strings.Contains(u, "e.tb.cn"):
		platform = "taobao"
	case strings.Contains(u, "qr.1688.com"):
		platform = "1688"
	}

	return ExtractedLink{Platform: platform, Link: u}
}
