package service

import (
	"strconv"
	"testing"

	"cex-intake/biz/model"
)

func TestNormalizeRemainingAmount(t *testing.T) {
	payloads := [][]byte{
		[]byte(`{"price":42000,"amount":2.5,"market":"BTC-USD","side":"buy","isMaker":false,"userId":"u1"}`),
		[]byte(`{"price":1.2,"amount":1000,"market":"ETH-USD","side":"sell"}`),
		[]byte(`not json at all`),
	}
	for _, raw := range payloads {
		rec := Normalize(raw, 42000)
		amount, err := strconv.ParseFloat(rec.Amount, 64)
		if err != nil {
			t.Fatalf("AMOUNT 不是数字: %q", rec.Amount)
		}
		executed, err := strconv.ParseFloat(rec.ExecutedAmount, 64)
		if err != nil {
			t.Fatalf("EXECUTED_AMOUNT 不是数字: %q", rec.ExecutedAmount)
		}
		remaining, err := strconv.ParseFloat(rec.RemainingAmount, 64)
		if err != nil {
			t.Fatalf("REMAINING_AMOUNT 不是数字: %q", rec.RemainingAmount)
		}
		if remaining != amount-executed {
			t.Errorf("remaining=%v, want amount-executed=%v (payload=%s)", remaining, amount-executed, raw)
		}
	}
}

func TestNormalizeEmptyPayload(t *testing.T) {
	rec := Normalize(nil, 42000)
	if rec.OrderID != model.AbsentMarker {
		t.Errorf("空 payload 的 orderID 应为哨兵值, got %q", rec.OrderID)
	}
	if rec.Score != 0 {
		t.Errorf("空 payload 的索引分值应强制为 0, got %v", rec.Score)
	}
	for name, val := range rec.Fields() {
		if val != model.AbsentMarker {
			t.Errorf("字段 %s 应为 %q, got %q", name, model.AbsentMarker, val)
		}
	}
}

func TestNormalizeParsesPayload(t *testing.T) {
	raw := []byte(`{"price":42000,"amount":2.5,"market":"BTC-USD","side":"sell","isMaker":true,"userId":"u42","clientOrderId":"BTC-USD_7"}`)
	rec := Normalize(raw, 42000)
	if rec.UserID != "u42" {
		t.Errorf("UserID=%q, want u42", rec.UserID)
	}
	if rec.Market != "BTC-USD" {
		t.Errorf("Market=%q, want BTC-USD", rec.Market)
	}
	if rec.Side != model.SideSell {
		t.Errorf("Side=%q, want sell", rec.Side)
	}
	if rec.IsMaker != "1" {
		t.Errorf("IsMaker=%q, want 1", rec.IsMaker)
	}
	if rec.Amount != "2.5" {
		t.Errorf("Amount=%q, want 2.5", rec.Amount)
	}
	if rec.ClientOrderID != "BTC-USD_7" {
		t.Errorf("ClientOrderID=%q, want BTC-USD_7", rec.ClientOrderID)
	}
	if rec.Status != model.StatusPending {
		t.Errorf("Status=%q, want PENDING", rec.Status)
	}
	if rec.Score != 42000 {
		t.Errorf("Score=%v, want 42000", rec.Score)
	}
	if rec.OrderID == "" || rec.OrderID == model.AbsentMarker {
		t.Errorf("非空 payload 应生成 orderID, got %q", rec.OrderID)
	}
	if _, err := strconv.ParseInt(rec.OrderID, 10, 64); err != nil {
		t.Errorf("orderID 应为毫秒时间戳 token: %q", rec.OrderID)
	}
}

func TestNormalizeUnparseablePayloadDefaults(t *testing.T) {
	rec := Normalize([]byte("garbage"), 0)
	if rec.UserID != fallbackUserID {
		t.Errorf("UserID=%q, want %q", rec.UserID, fallbackUserID)
	}
	if rec.Market != fallbackMarket {
		t.Errorf("Market=%q, want %q", rec.Market, fallbackMarket)
	}
	if rec.Side != model.SideBuy {
		t.Errorf("Side=%q, want buy", rec.Side)
	}
	if rec.OrderType != model.OrderTypeLimit {
		t.Errorf("OrderType=%q, want limit", rec.OrderType)
	}
	// 解析失败也必须是全量 schema，不允许遗留零值字段
	for _, name := range []string{"STATUS", "FEE", "FEE_CURRENCY", "SOURCE", "TRIGGERED", "MATCHEDORDERS"} {
		if rec.Fields()[name] == "" {
			t.Errorf("字段 %s 不应为空", name)
		}
	}
}

func TestPeekPrice(t *testing.T) {
	if p := PeekPrice([]byte(`{"price":42000}`), 1); p != 42000 {
		t.Errorf("PeekPrice=%v, want 42000", p)
	}
	if p := PeekPrice([]byte(`{}`), 7); p != 7 {
		t.Errorf("缺价格时应用兜底价, got %v", p)
	}
	if p := PeekPrice([]byte(`garbage`), 7); p != 7 {
		t.Errorf("解析失败时应用兜底价, got %v", p)
	}
	if p := PeekPrice(nil, 7); p != 7 {
		t.Errorf("空 payload 应用兜底价, got %v", p)
	}
}
