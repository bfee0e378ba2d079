package core

import "testing"

func TestRetrievalResult_ComputeSummary(t *testing.T) {
	result := &RetrievalResult{
		Mode:   ModePhone,
		Status: StatusFound,
		Code:   "482913",
		Attempts: []AttemptResult{
			{Attempt: 1, Status: StatusFailed, Error: "connection refused"},
			{Attempt: 2, Status: StatusScanning},
			{Attempt: 3, Status: StatusFound, Code: "482913"},
		},
	}

	result.ComputeSummary()

	if result.TotalAttempts != 3 {
		t.Errorf("TotalAttempts = %d, want 3", result.TotalAttempts)
	}
	if result.FailedFetches != 1 {
		t.Errorf("FailedFetches = %d, want 1", result.FailedFetches)
	}
	if result.EmptyAttempts != 1 {
		t.Errorf("EmptyAttempts = %d, want 1", result.EmptyAttempts)
	}
}

func TestRetrievalResult_Success(t *testing.T) {
	found := &RetrievalResult{Status: StatusFound, Code: "123456"}
	if !found.Success() {
		t.Error("Success() = false for found result with code")
	}

	exhausted := &RetrievalResult{Status: StatusExhausted}
	if exhausted.Success() {
		t.Error("Success() = true for exhausted result")
	}

	// Found without a code should not count as success
	empty := &RetrievalResult{Status: StatusFound}
	if empty.Success() {
		t.Error("Success() = true for found result without code")
	}
}

func TestRetrievalResult_LastAttempt(t *testing.T) {
	result := &RetrievalResult{}
	if result.LastAttempt() != nil {
		t.Error("LastAttempt() should be nil with no attempts")
	}

	result.Attempts = []AttemptResult{
		{Attempt: 1, Status: StatusScanning},
		{Attempt: 2, Status: StatusExhausted},
	}

	last := result.LastAttempt()
	if last == nil {
		t.Fatal("LastAttempt() = nil, want attempt 2")
	}
	if last.Attempt != 2 {
		t.Errorf("LastAttempt().Attempt = %d, want 2", last.Attempt)
	}
	if last.Status != StatusExhausted {
		t.Errorf("LastAttempt().Status = %s, want exhausted", last.Status)
	}
}
