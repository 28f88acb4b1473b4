package model

import (
	"testing"
)

// 明细 hash 的字段名是线上既有格式，改动会破坏兼容性
var wantFieldNames = []string{
	"ORDERID", "USERID", "PRICE", "AMOUNT", "MARKET", "ISMAKER", "SIDE",
	"MATCHEDORDERS", "CREATED_AT", "UPDATED_AT", "STATUS", "ORDER_TYPE",
	"EXECUTED_AMOUNT", "REMAINING_AMOUNT", "FEE", "FEE_CURRENCY",
	"STOP_PRICE", "TRIGGERED", "SOURCE", "CLIENT_ORDER_ID", "COMMENT",
}

func TestFieldsSchema(t *testing.T) {
	rec := OrderRecord{OrderID: "123", Market: "BTC-USD"}
	fields := rec.Fields()
	if len(fields) != len(wantFieldNames) {
		t.Errorf("Fields returned %d fields, want %d", len(fields), len(wantFieldNames))
	}
	for _, name := range wantFieldNames {
		if _, ok := fields[name]; !ok {
			t.Errorf("Fields missing %q", name)
		}
	}
}

func TestRecordFromFieldsRoundTrip(t *testing.T) {
	rec := OrderRecord{
		OrderID:         "1700000000123",
		UserID:          "user123",
		Price:           "42000",
		Amount:          "100",
		Market:          "BTC-USD",
		IsMaker:         "0",
		Side:            SideBuy,
		MatchedOrders:   AbsentMarker,
		CreatedAt:       "1700000000",
		UpdatedAt:       "1700000000",
		Status:          StatusPending,
		OrderType:       OrderTypeLimit,
		ExecutedAmount:  "0",
		RemainingAmount: "100",
		Fee:             "0",
		FeeCurrency:     "USD",
		StopPrice:       "0",
		Triggered:       "0",
		Source:          "API",
		ClientOrderID:   "BTC-USD_1",
		Comment:         "",
	}
	got := RecordFromFields(rec.Fields())
	if got != rec {
		t.Errorf("round trip mismatch:\ngot  %+v\nwant %+v", got, rec)
	}
}
