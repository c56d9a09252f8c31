package onebound

import "encoding/json"

// ItemResponse item_get / item_get_pro 的响应外层
// 商品对象可能直接挂在根上，也可能包在 data 里
type ItemResponse struct {
	Error string      `json:"error"`
	Item  *RawProduct `json:"item"`
	Data  *ItemData   `json:"data"`
}

// ItemData data 包装层
type ItemData struct {
	Item *RawProduct `json:"item"`
}

// RawProduct 万邦通用商品结构，数值大多是字符串
// props_list 保留原始字节，JSON 对象的键序就是属性展示顺序
type RawProduct struct {
	PicURL     string            `json:"pic_url"`
	ItemImgs   []ItemImg         `json:"item_imgs"`
	Title      string            `json:"title"`
	DetailURL  string            `json:"detail_url"`
	Desc       string            `json:"desc"`
	PostFee    string            `json:"post_fee"`
	Price      string            `json:"price"`
	PropsList  json.RawMessage   `json:"props_list"`
	Skus       *SkuContainer     `json:"skus"`
	SellerID   string            `json:"seller_id"`
	SellerInfo *SellerInfo       `json:"seller_info"`
	Nick       string            `json:"nick"`
	PropsImg   map[string]string `json:"props_img"`
	NumIID     string            `json:"num_iid"`
	Num        string            `json:"num"`
	Sales      string            `json:"sales"`
	TotalSold  string            `json:"total_sold"`
	ItemWeight string            `json:"item_weight"`
}

// ItemImg 商品图
type ItemImg struct {
	URL string `json:"url"`
}

// SkuContainer skus 包装层
type SkuContainer struct {
	Sku []RawSKU `json:"sku"`
}

// RawSKU 万邦 SKU 条目
type RawSKU struct {
	Price          string `json:"price"`
	OriginalPrice  string `json:"orginal_price"`
	Properties     string `json:"properties"`
	PropertiesName string `json:"properties_name"`
	Quantity       string `json:"quantity"`
	SkuID          string `json:"sku_id"`
}

// SellerInfo 卖家信息
type SellerInfo struct {
	Nick string `json:"nick"`
}

// FeeResponse item_fee 的响应，运费字段的落点不固定
type FeeResponse struct {
	Data *FeeBody `json:"data"`
	Item *FeeBody `json:"item"`
	FeeBody
}

// FeeBody 运费字段，命名和类型（数字或字符串）都不固定
type FeeBody struct {
	PostFee    json.RawMessage `json:"post_fee"`
	PostFeeAlt json.RawMessage `json:"postFee"`
}
