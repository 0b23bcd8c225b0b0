package models

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestConditionListValueScan(t *testing.T) {
	conds := ConditionList{
		{
			Type:            "ownToken",
			Platform:        "Ethereum",
			Quantity:        "2",
			ContractAddress: "0xabc",
			TokenIDs:        StringArray{"1", "2"},
		},
		{
			Type:            "addressList",
			Operator:        "Includes",
			WalletAddresses: StringArray{"0x111"},
		},
	}

	raw, err := conds.Value()
	if err != nil {
		t.Fatalf("value failed: %v", err)
	}

	var got ConditionList
	if err := got.Scan(raw); err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	if !reflect.DeepEqual(got, conds) {
		t.Fatalf("round trip mismatch: %+v", got)
	}
}

func TestConditionListScanNil(t *testing.T) {
	var got ConditionList
	if err := got.Scan(nil); err != nil {
		t.Fatalf("scan nil failed: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty list, got %v", got)
	}
}

func TestStringArrayScanString(t *testing.T) {
	// sqlite 驱动偶尔以 string 而非 []byte 返回 text 列
	var got StringArray
	if err := got.Scan(`["a","b"]`); err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	if !reflect.DeepEqual(got, StringArray{"a", "b"}) {
		t.Fatalf("unexpected value: %v", got)
	}
}

func TestMoneyJSON(t *testing.T) {
	m := NewMoneyFromFloat(19.999)
	out, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(out) != `"20.00"` {
		t.Fatalf("expected \"20.00\", got %s", out)
	}

	var fromString Money
	if err := json.Unmarshal([]byte(`"15.5"`), &fromString); err != nil {
		t.Fatalf("unmarshal string failed: %v", err)
	}
	if fromString.StringFixed(2) != "15.50" {
		t.Fatalf("unexpected value: %s", fromString.String())
	}

	var fromNumber Money
	if err := json.Unmarshal([]byte(`20`), &fromNumber); err != nil {
		t.Fatalf("unmarshal number failed: %v", err)
	}
	if fromNumber.StringFixed(2) != "20.00" {
		t.Fatalf("unexpected value: %s", fromNumber.String())
	}
}

func TestTokenOwnedRefRoundTrip(t *testing.T) {
	ref := TokenOwnedRef{Blockchain: "Ethereum", ContractAddress: "0xabc"}

	raw, err := ref.Value()
	if err != nil {
		t.Fatalf("value failed: %v", err)
	}

	var got TokenOwnedRef
	if err := got.Scan(raw); err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	if got != ref {
		t.Fatalf("round trip mismatch: %+v", got)
	}
}
