package taobao

// RawItem 淘宝开放平台 /traffic/item/get 的原始商品响应
// 价格字段单位是分
type RawItem struct {
	ItemID         int64    `json:"item_id"`
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	PicURLs        []string `json:"pic_urls"`
	SkuList        []RawSKU `json:"sku_list"`
	PromotionPrice float64  `json:"promotion_price"`
	Quantity       int      `json:"quantity"`
	BeginAmount    int      `json:"begin_amount"`
	ShopID         int64    `json:"shop_id"`
	ShopName       string   `json:"shop_name"`
	TraceID        string   `json:"_trace_id_"`
}

// RawSKU 原始 SKU 条目
type RawSKU struct {
	Properties     []RawProperty `json:"properties"`
	PromotionPrice float64       `json:"promotion_price"`
	Price          float64       `json:"price"`
	PostFee        float64       `json:"postFee"`
	Quantity       int           `json:"quantity"`
	SkuID          int64         `json:"sku_id"`
	PicURL         string        `json:"pic_url"`
}

// RawProperty SKU 上的单个销售属性
type RawProperty struct {
	PropID    int64  `json:"prop_id"`
	ValueID   int64  `json:"value_id"`
	PropName  string `json:"prop_name"`
	ValueName string `json:"value_name"`
}

// ErrorResponse 开放平台错误包装
type ErrorResponse struct {
	ErrorResponse *APIError `json:"error_response"`
}

// APIError 开放平台错误体
type APIError struct {
	Code      string `json:"code"`
	Msg       string `json:"msg"`
	SubCode   string `json:"sub_code"`
	SubMsg    string `json:"sub_msg"`
	RequestID string `json:"request_id"`
}
