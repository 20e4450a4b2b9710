package audit

import "testing"

func openTestLogger(t *testing.T) *Logger {
	t.Helper()
	l, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { l.Close() })
	return l
}

func TestLogAndRecent(t *testing.T) {
	l := openTestLogger(t)
	l.Log("admin", ActionCreate, "product", 1, "created product Widget")
	l.Log("admin", ActionUpdate, "product", 1, "stock +5")
	l.Log("bob", ActionLogin, "staff", 2, "staff login")

	entries, err := l.Recent(10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("Expected 3 entries, got %d", len(entries))
	}
	// Newest first.
	if entries[0].Action != ActionLogin || entries[0].Username != "bob" {
		t.Errorf("Wrong newest entry: %+v", entries[0])
	}
	if entries[2].Action != ActionCreate || entries[2].RecordID != 1 {
		t.Errorf("Wrong oldest entry: %+v", entries[2])
	}
}

func TestRecent_Limit(t *testing.T) {
	l := openTestLogger(t)
	for i := 0; i < 5; i++ {
		l.Log("admin", ActionDelete, "order", i, "")
	}
	entries, err := l.Recent(2)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("Expected 2 entries, got %d", len(entries))
	}
	if entries[0].RecordID != 4 {
		t.Errorf("Expected newest record 4, got %d", entries[0].RecordID)
	}
}
