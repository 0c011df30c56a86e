package hazard

import "testing"

func TestStatusRankOrdering(t *testing.T) {
	order := []ProcessingStatus{StatusPending, StatusProcessing, StatusCompleted}
	for i := 1; i < len(order); i++ {
		if StatusRank(order[i]) <= StatusRank(order[i-1]) {
			t.Errorf("expected %s to rank above %s", order[i], order[i-1])
		}
	}

	if StatusRank(StatusFailed) != StatusRank(StatusCompleted) {
		t.Error("expected failed and completed to share the terminal rank")
	}
	if StatusRank(ProcessingStatus("bogus")) != 0 {
		t.Error("expected unknown status to rank lowest")
	}
}

func TestSupersedes(t *testing.T) {
	tests := []struct {
		name     string
		incoming ProcessingStatus
		cached   ProcessingStatus
		want     bool
	}{
		{"progress", StatusCompleted, StatusProcessing, true},
		{"same", StatusProcessing, StatusProcessing, true},
		{"regression", StatusProcessing, StatusCompleted, false},
		{"pending regression", StatusPending, StatusProcessing, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			incoming := &Inspection{ID: "a", ProcessingStatus: tt.incoming}
			cached := &Inspection{ID: "a", ProcessingStatus: tt.cached}
			if got := incoming.Supersedes(cached); got != tt.want {
				t.Errorf("Supersedes(%s over %s) = %v, want %v", tt.incoming, tt.cached, got, tt.want)
			}
		})
	}
}

func TestCompleted(t *testing.T) {
	if (&Inspection{ProcessingStatus: StatusProcessing}).Completed() {
		t.Error("processing inspection should not report completed")
	}
	if !(&Inspection{ProcessingStatus: StatusCompleted}).Completed() {
		t.Error("completed inspection should report completed")
	}
}
