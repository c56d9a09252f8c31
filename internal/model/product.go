package model

// 平台标识，统一各上游来源的命名
const (
	PlatformTaobao  = "taobao"
	PlatformTmall   = "tmall"
	Platform1688    = "1688"
	PlatformWeidian = "micro" // 微店在历史接口里叫 micro
)

// Result 规范化结果的统一外层结构
// Code 为 0 表示成功，负数表示结构化失败，此时 Data 为 nil
type Result struct {
	Code int      `json:"code"`
	Msg  string   `json:"msg"`
	Data *Product `json:"data"`
}

// Product 规范化商品记录
// 所有平台的原始响应最终都转换成这一个结构
type Product struct {
	ProductImageURL  string            `json:"product_image_url"`
	ProductImageList []Image           `json:"product_image_list"`
	ProductName      string            `json:"product_name"`
	ProductLink      string            `json:"product_link"`
	ProductDetails   string            `json:"product_details"`
	FreightAmountCNY float64           `json:"product_freight_amount_cny"`
	FreightAmountUSD float64           `json:"product_freight_amount_usd"`
	ProductPlatform  string            `json:"product_platform"`
	PropList         []PropGroup       `json:"prop_list"`
	SkuPropList      map[string]string `json:"sku_prop_list"`
	SkuPropListSort  []string          `json:"sku_prop_list_sort"`
	PropsListOrigin  map[string]string `json:"props_list_origin"`
	SkuList          map[string]SKU    `json:"sku_list"`
	ProductPrice     float64           `json:"product_price"`
	CurrentPriceUSD  float64           `json:"current_price_usd"`
	MinNum           int               `json:"min_num"`
	Num              int               `json:"num"`
	ItemWeight       string            `json:"item_weight"`
	ItemSize         string            `json:"item_size"`
	Sales            int               `json:"sales"`
	StoreID          string            `json:"store_id"`
	SellerName       string            `json:"seller_name"`
	PropsImg         map[string]string `json:"props_img"`
	ProductItemID    string            `json:"product_item_id"`
	APITime          string            `json:"api_time"`
	Cache            string            `json:"cache"` // "yes" / "no"
}

// Image 单张商品图片
type Image struct {
	URL string `json:"url"`
}

// PropGroup 属性组（例如颜色、尺码），prop_list 保持首次出现顺序
type PropGroup struct {
	PropType string      `json:"prop_type"`
	PropName string      `json:"prop_name"`
	PropList []PropValue `json:"prop_list"`
}

// PropValue 属性组内的单个取值
// PValue 在组内唯一，作为 SKU 组合键的连接键
type PropValue struct {
	PValue  string `json:"p_value"`
	PName   string `json:"p_name"`
	PSkuImg string `json:"p_sku_img"`
}

// SKU 单个可购买变体
// Properties 是按原始属性顺序用分号连接的 p_value 组合键
// OriginalPrice 的 JSON 名沿用历史接口的拼写 orginal_price
type SKU struct {
	Price          float64 `json:"price"`
	TotalPrice     float64 `json:"total_price"`
	OriginalPrice  float64 `json:"orginal_price"`
	Properties     string  `json:"properties"`
	PropertiesName string  `json:"properties_name"`
	Quantity       int     `json:"quantity"`
	SkuID          string  `json:"sku_id"`
}

// ItemLink 根据平台和商品 ID 构造商品详情页链接
func ItemLink(platform, id string) string {
	switch platform {
	case PlatformTaobao:
		return "https://item.taobao.com/item.htm?id=" + id
	case PlatformTmall:
		return "https://detail.tmall.com/item.htm?id=" + id
	case Platform1688:
		return "https://detail.1688.com/offer/" + id + ".html"
	case PlatformWeidian:
		return "https://weidian.com/item.html?itemID=" + id
	default:
		return "N/A"
	}
}

// Clone 深拷贝整个结果
// 翻译阶段只能在副本上改写，缓存中的原始记录不可变
func (r *Result) Clone() *Result {
	if r == nil {
		return nil
	}
	out := &Result{Code: r.Code, Msg: r.Msg}
	if r.Data != nil {
		out.Data = r.Data.Clone()
	}
	return out
}

// Clone 深拷贝商品记录
func (p *Product) Clone() *Product {
	if p == nil {
		return nil
	}
	out := *p

	out.ProductImageList = make([]Image, len(p.ProductImageList))
	copy(out.ProductImageList, p.ProductImageList)

	out.PropList = make([]PropGroup, len(p.PropList))
	for i, g := range p.PropList {
		ng := g
		ng.PropList = make([]PropValue, len(g.PropList))
		copy(ng.PropList, g.PropList)
		out.PropList[i] = ng
	}

	out.SkuPropList = copyStringMap(p.SkuPropList)
	out.PropsListOrigin = copyStringMap(p.PropsListOrigin)
	out.PropsImg = copyStringMap(p.PropsImg)

	out.SkuPropListSort = make([]string, len(p.SkuPropListSort))
	copy(out.SkuPropListSort, p.SkuPropListSort)

	out.SkuList = make(map[string]SKU, len(p.SkuList))
	for k, v := range p.SkuList {
		out.SkuList[k] = v
	}

	return &out
}

func copyStringMap(in map[string]string) map[string]string {
	if in == nil {
		return nil
	}
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
