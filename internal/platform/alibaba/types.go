package alibaba

// RawResponse 1688 跨境分销 queryProductDetail 的响应外层
type RawResponse struct {
	Result *RawResult `json:"result"`
}

// RawResult 响应内层，Result 为空表示查询失败
type RawResult struct {
	Success bool        `json:"success"`
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Result  *RawProduct `json:"result"`
}

// RawProduct 原始商品详情
type RawProduct struct {
	OfferID             int64            `json:"offerId"`
	Subject             string           `json:"subject"`
	SubjectTrans        string           `json:"subjectTrans"`
	Description         string           `json:"description"`
	PromotionURL        string           `json:"promotionUrl"`
	MinOrderQuantity    int              `json:"minOrderQuantity"`
	SoldOut             int              `json:"soldOut"`
	SellerOpenID        string           `json:"sellerOpenId"`
	ProductImage        *RawImage        `json:"productImage"`
	ProductSkuInfos     []RawSKUInfo     `json:"productSkuInfos"`
	ProductAttribute    []RawAttribute   `json:"productAttribute"`
	ProductSaleInfo     *RawSaleInfo     `json:"productSaleInfo"`
	ProductShippingInfo *RawShippingInfo `json:"productShippingInfo"`
}

// RawImage 商品主图列表
type RawImage struct {
	Images []string `json:"images"`
}

// RawSKUInfo 原始 SKU 条目，价格是字符串
type RawSKUInfo struct {
	SkuID         int64             `json:"skuId"`
	SpecID        string            `json:"specId"`
	Price         string            `json:"price"`
	ConsignPrice  string            `json:"consignPrice"`
	AmountOnSale  int               `json:"amountOnSale"`
	SkuAttributes []RawSKUAttribute `json:"skuAttributes"`
}

// RawSKUAttribute SKU 上的单个销售属性，带可选的机器翻译字段
type RawSKUAttribute struct {
	AttributeID        int64  `json:"attributeId"`
	AttributeName      string `json:"attributeName"`
	AttributeNameTrans string `json:"attributeNameTrans"`
	Value              string `json:"value"`
	ValueTrans         string `json:"valueTrans"`
	SkuImageURL        string `json:"skuImageUrl"`
}

// RawAttribute 商品级属性
type RawAttribute struct {
	AttributeID        int64  `json:"attributeId"`
	AttributeName      string `json:"attributeName"`
	AttributeNameTrans string `json:"attributeNameTrans"`
	Value              string `json:"value"`
	ValueTrans         string `json:"valueTrans"`
}

// RawSaleInfo 销售信息
type RawSaleInfo struct {
	AmountOnSale int `json:"amountOnSale"`
}

// RawShippingInfo 物流信息
type RawShippingInfo struct {
	SkuShippingDetails []RawShippingDetail `json:"skuShippingDetails"`
}

// RawShippingDetail 单个 SKU 的包裹尺寸
type RawShippingDetail struct {
	Weight string `json:"weight"`
	Length string `json:"length"`
	Width  string `json:"width"`
	Height string `json:"height"`
}
