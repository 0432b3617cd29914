package task

import "testing"

func TestValidate_RejectsOneTimeWithoutScheduledDate(t *testing.T) {
	tk := Task{Title: "Tax return", Frequency: FrequencyOneTime, Priority: PriorityHigh}
	if err := tk.Validate(); err == nil {
		t.Fatalf("expected validation error for OneTime task without scheduledDate")
	}
	tk.ScheduledDate = "2026-03-15"
	if err := tk.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_RejectsUnknownPriority(t *testing.T) {
	tk := Task{Title: "Gym", Frequency: FrequencyDaily, Priority: Priority("CRITICAL")}
	if err := tk.Validate(); err == nil {
		t.Fatalf("expected validation error for unknown priority")
	}
}

func TestPriorityWeight_OrdersUrgentFirst(t *testing.T) {
	order := []Priority{PriorityUrgent, PriorityHigh, PriorityMedium, PriorityLow}
	for i := 0; i < len(order)-1; i++ {
		if order[i].Weight() <= order[i+1].Weight() {
			t.Fatalf("expected %s to outweigh %s", order[i], order[i+1])
		}
	}
}

func TestParsePriority_IsCaseInsensitive(t *testing.T) {
	p, err := ParsePriority("urgent")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p != PriorityUrgent {
		t.Fatalf("expected URGENT, got %s", p)
	}
	if _, err := ParsePriority("whenever"); err == nil {
		t.Fatalf("expected error for unknown priority")
	}
}

func TestAppliesOn_OneTimeOnlyOnScheduledDate(t *testing.T) {
	daily := Task{Frequency: FrequencyDaily}
	oneTime := Task{Frequency: FrequencyOneTime, ScheduledDate: "2026-01-15"}

	if !daily.AppliesOn("2026-01-14") {
		t.Fatalf("daily task should apply on any date")
	}
	if oneTime.AppliesOn("2026-01-14") {
		t.Fatalf("one-time task should not apply before its scheduled date")
	}
	if !oneTime.AppliesOn("2026-01-15") {
		t.Fatalf("one-time task should apply on its scheduled date")
	}
}
