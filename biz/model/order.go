package model

// AbsentMarker 显式的"字段缺失"哨兵值，区别于 key 不存在
const AbsentMarker = "NULL"

// 订单状态 / 类型 / 方向枚举值
const (
	StatusPending = "PENDING"

	OrderTypeLimit  = "limit"
	OrderTypeMarket = "market"
	OrderTypeStop   = "stop"

	SideBuy  = "buy"
	SideSell = "sell"
)

// OrderMsg 入账流水线的上游消息体（与 producer 侧保持一致）
type OrderMsg struct {
	Price         float64 `json:"price"`
	Amount        float64 `json:"amount"`
	Market        string  `json:"market"`
	IsMaker       bool    `json:"isMaker"`
	Side          string  `json:"side"`
	UserID        string  `json:"userId,omitempty"`
	OrderType     string  `json:"orderType,omitempty"`
	StopPrice     float64 `json:"stopPrice,omitempty"`
	Source        string  `json:"source,omitempty"`
	ClientOrderID string  `json:"clientOrderId,omitempty"`
	Comment       string  `json:"comment,omitempty"`
}

// OrderRecord 订单明细的规范化落库形态。
// 所有字段以序列化后的字符串存储，缺失字段一律写 AbsentMarker，
// 保证 hash 结构永远是全量 schema。Score 是订单簿索引的分值，不进 hash。
type OrderRecord struct {
	OrderID         string
	UserID          string
	Price           string
	Amount          string
	Market          string
	IsMaker         string
	Side            string
	MatchedOrders   string
	CreatedAt       string
	UpdatedAt       string
	Status          string
	OrderType       string
	ExecutedAmount  string
	RemainingAmount string
	Fee             string
	FeeCurrency     string
	StopPrice       string
	Triggered       string
	Source          string
	ClientOrderID   string
	Comment         string

	Score float64
}

// Fields 展开为 redis hash 的 field->value 映射，字段名为既定的线上格式，不可改动
func (r *OrderRecord) Fields() map[string]string {
	return map[string]string{
		"ORDERID":          r.OrderID,
		"USERID":           r.UserID,
		"PRICE":            r.Price,
		"AMOUNT":           r.Amount,
		"MARKET":           r.Market,
		"ISMAKER":          r.IsMaker,
		"SIDE":             r.Side,
		"MATCHEDORDERS":    r.MatchedOrders,
		"CREATED_AT":       r.CreatedAt,
		"UPDATED_AT":       r.UpdatedAt,
		"STATUS":           r.Status,
		"ORDER_TYPE":       r.OrderType,
		"EXECUTED_AMOUNT":  r.ExecutedAmount,
		"REMAINING_AMOUNT": r.RemainingAmount,
		"FEE":              r.Fee,
		"FEE_CURRENCY":     r.FeeCurrency,
		"STOP_PRICE":       r.StopPrice,
		"TRIGGERED":        r.Triggered,
		"SOURCE":           r.Source,
		"CLIENT_ORDER_ID":  r.ClientOrderID,
		"COMMENT":          r.Comment,
	}
}

// RecordFromFields 从 hash 快照还原 OrderRecord（Score 不在 hash 内，置零）
func RecordFromFields(fields map[string]string) OrderRecord {
	return OrderRecord{
		OrderID:         fields["ORDERID"],
		UserID:          fields["USERID"],
		Price:           fields["PRICE"],
		Amount:          fields["AMOUNT"],
		Market:          fields["MARKET"],
		IsMaker:         fields["ISMAKER"],
		Side:            fields["SIDE"],
		MatchedOrders:   fields["MATCHEDORDERS"],
		CreatedAt:       fields["CREATED_AT"],
		UpdatedAt:       fields["UPDATED_AT"],
		Status:          fields["STATUS"],
		OrderType:       fields["ORDER_TYPE"],
		ExecutedAmount:  fields["EXECUTED_AMOUNT"],
		RemainingAmount: fields["REMAINING_AMOUNT"],
		Fee:             fields["FEE"],
		FeeCurrency:     fields["FEE_CURRENCY"],
		StopPrice:       fields["STOP_PRICE"],
		Triggered:       fields["TRIGGERED"],
		Source:          fields["SOURCE"],
		ClientOrderID:   fields["CLIENT_ORDER_ID"],
		Comment:         fields["COMMENT"],
	}
}
