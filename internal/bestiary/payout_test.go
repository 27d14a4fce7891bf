package bestiary

import "testing"

func TestPayoutAddAndTotal(t *testing.T) {
	l := NewPayoutLedger()

	l.Add("seller", "mobdex:gold_coin", 30)
	l.Add("seller", "mobdex:gold_coin", 20)
	if got := l.Total("seller"); got != 50 {
		t.Fatalf("Total = %d, want 50", got)
	}
	if got := l.Total("other"); got != 0 {
		t.Fatalf("Total(other) = %d, want 0", got)
	}

	// 非正數累加被忽略
	l.Add("seller", "mobdex:gold_coin", 0)
	l.Add("seller", "mobdex:gold_coin", -5)
	if got := l.Total("seller"); got != 50 {
		t.Fatalf("Total after no-op adds = %d, want 50", got)
	}
}

func TestPayoutTakeAllDrains(t *testing.T) {
	l := NewPayoutLedger()
	l.Add("seller", "mobdex:gold_coin", 50)
	l.Add("seller", "mobdex:silver_coin", 7)

	owed := l.TakeAll("seller")
	if owed["mobdex:gold_coin"] != 50 || owed["mobdex:silver_coin"] != 7 {
		t.Fatalf("TakeAll = %v", owed)
	}
	// 第二次取出必須是空的 — 至多領取一次
	if again := l.TakeAll("seller"); len(again) != 0 {
		t.Fatalf("second TakeAll = %v, want empty", again)
	}
	if got := l.Total("seller"); got != 0 {
		t.Fatalf("Total after drain = %d, want 0", got)
	}
}

func TestPayoutLoadRecordSkipsNonPositive(t *testing.T) {
	l := NewPayoutLedger()
	l.LoadRecord("seller", map[string]int{"a": 5, "b": 0, "c": -3})
	if got := l.Total("seller"); got != 5 {
		t.Fatalf("Total = %d, want 5", got)
	}
	l.DirtyRecords(func(id string, r *PayoutRecord) bool {
		t.Fatal("loaded record must not be dirty")
		return true
	})
}
