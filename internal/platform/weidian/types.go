package weidian

// DetailsResponse getItemSkuInfo/1.0 的响应外层
type DetailsResponse struct {
	Status Status         `json:"status"`
	Result *DetailsResult `json:"result"`
}

// DescResponse getDetailDesc/1.0 的响应外层
type DescResponse struct {
	Status Status      `json:"status"`
	Result *DescResult `json:"result"`
}

// Status 微店网关统一状态，code 为 0 表示成功
type Status struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// DetailsResult 商品与 SKU 详情
type DetailsResult struct {
	ItemID               string     `json:"itemId"`
	ItemTitle            string     `json:"itemTitle"`
	ItemMainPic          string     `json:"itemMainPic"`
	ItemStock            int        `json:"itemStock"`
	ItemDiscountLowPrice float64    `json:"itemDiscountLowPrice"`
	AttrList             []AttrList `json:"attrList"`
	SkuInfos             []SkuEntry `json:"skuInfos"`
}

// AttrList 一组销售属性（颜色、尺码）
type AttrList struct {
	AttrTitle  string      `json:"attrTitle"`
	AttrValues []AttrValue `json:"attrValues"`
}

// AttrValue 属性组内的单个取值
type AttrValue struct {
	AttrID    int64  `json:"attrId"`
	AttrValue string `json:"attrValue"`
	Img       string `json:"img"`
}

// SkuEntry SKU 条目，attrIds 指向各属性组里选中的取值
type SkuEntry struct {
	AttrIDs []int64  `json:"attrIds"`
	SkuInfo *SkuInfo `json:"skuInfo"`
}

// SkuInfo SKU 的价格与库存，价格单位是分
type SkuInfo struct {
	ID            int64   `json:"id"`
	DiscountPrice float64 `json:"discountPrice"`
	OriginalPrice float64 `json:"originalPrice"`
	Stock         int     `json:"stock"`
	Title         string  `json:"title"`
	Img           string  `json:"img"`
}

// DescResult 商品图文详情
type DescResult struct {
	ItemDetail *ItemDetail `json:"item_detail"`
}

// ItemDetail 图文详情内容列表
type ItemDetail struct {
	DescContent []DescContent `json:"desc_content"`
}

// DescContent 单条详情内容，type 为 2 表示图片
type DescContent struct {
	Type int    `json:"type"`
	URL  string `json:"url"`
	Text string `json:"text"`
}
