package dbtypes

import (
	"testing"

	"github.com/google/uuid"
)

func TestUUIDArrayValueAndScan(t *testing.T) {
	a := uuid.New()
	b := uuid.New()
	arr := UUIDArray{a, b}

	val, err := arr.Value()
	if err != nil {
		t.Fatalf("value: %v", err)
	}
	literal, ok := val.(string)
	if !ok {
		t.Fatalf("expected string driver value, got %T", val)
	}
	if literal != "{"+a.String()+","+b.String()+"}" {
		t.Fatalf("unexpected literal %q", literal)
	}

	var decoded UUIDArray
	if err := decoded.Scan(literal); err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(decoded) != 2 || decoded[0] != a || decoded[1] != b {
		t.Fatalf("round trip mismatch: %v", decoded)
	}
}

func TestUUIDArrayScanEmptyAndNil(t *testing.T) {
	var arr UUIDArray
	if err := arr.Scan("{}"); err != nil {
		t.Fatalf("scan empty literal: %v", err)
	}
	if len(arr) != 0 {
		t.Fatalf("expected empty array, got %v", arr)
	}

	if err := arr.Scan(nil); err != nil {
		t.Fatalf("scan nil: %v", err)
	}
	if len(arr) != 0 {
		t.Fatalf("expected empty array after nil scan, got %v", arr)
	}
}

func TestUUIDArrayScanQuotedElements(t *testing.T) {
	a := uuid.New()
	var arr UUIDArray
	if err := arr.Scan([]byte(`{"` + a.String() + `"}`)); err != nil {
		t.Fatalf("scan quoted: %v", err)
	}
	if len(arr) != 1 || arr[0] != a {
		t.Fatalf("quoted element mismatch: %v", arr)
	}
}

func TestUUIDArrayScanRejectsGarbage(t *testing.T) {
	var arr UUIDArray
	if err := arr.Scan("{not-a-uuid}"); err == nil {
		t.Fatal("expected parse error")
	}
	if err := arr.Scan(42); err == nil {
		t.Fatal("expected unsupported type error")
	}
}

func TestUUIDArrayContains(t *testing.T) {
	a := uuid.New()
	b := uuid.New()
	arr := UUIDArray{a}

	if !arr.Contains(a) {
		t.Fatal("expected membership for present id")
	}
	if arr.Contains(b) {
		t.Fatal("unexpected membership for absent id")
	}
}
