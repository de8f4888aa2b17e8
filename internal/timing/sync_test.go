package timing

import "testing"

func TestAdjustedPeriodDefault(t *testing.T) {
	s := NewModuleSync(0, 0, 0)
	if got := s.AdjustedPeriod(); got != DefaultPeriodUs {
		t.Errorf("AdjustedPeriod() = %d, want %d before any update", got, DefaultPeriodUs)
	}
	if s.Valid() {
		t.Error("Valid() = true before any update")
	}
}

func TestAdjustedPeriodConfiguredDefault(t *testing.T) {
	s := NewModuleSync(10000, 0, 0)

	// the configured fallback applies until the first timing frame
	if got := s.AdjustedPeriod(); got != 10000 {
		t.Errorf("AdjustedPeriod() = %d, want configured 10000", got)
	}

	s.Update(2000, 0, 0)
	if got := s.AdjustedPeriod(); got != 2000 {
		t.Errorf("AdjustedPeriod() = %d after update, want 2000", got)
	}
}

func TestAdjustedPeriodNoLag(t *testing.T) {
	s := NewModuleSync(0, 0, 0)
	s.Update(2000, 0, 0)

	for i := 0; i < 3; i++ {
		if got := s.AdjustedPeriod(); got != 2000 {
			t.Fatalf("call %d: AdjustedPeriod() = %d, want 2000", i, got)
		}
	}
}

func TestAdjustedPeriodConsumesLag(t *testing.T) {
	s := NewModuleSync(0, 0, 0)
	s.Update(2000, 500, 0)

	// first period absorbs the whole 500us lag, second is back on rate
	if got := s.AdjustedPeriod(); got != 2500 {
		t.Errorf("first AdjustedPeriod() = %d, want 2500", got)
	}
	if got := s.InputLag(); got != 0 {
		t.Errorf("InputLag() = %d after consumption, want 0", got)
	}
	if got := s.AdjustedPeriod(); got != 2000 {
		t.Errorf("second AdjustedPeriod() = %d, want 2000", got)
	}
}

func TestAdjustedPeriodClampPreservesRemainder(t *testing.T) {
	s := NewModuleSync(0, 0, 0)
	s.Update(4000, -10000, 0)

	// each clamped period consumes only 3000us of the negative lag
	wantPeriods := []uint32{1000, 1000, 1000, 3000, 4000}
	wantLag := []int32{-7000, -4000, -1000, 0, 0}

	for i := range wantPeriods {
		if got := s.AdjustedPeriod(); got != wantPeriods[i] {
			t.Errorf("call %d: AdjustedPeriod() = %d, want %d", i, got, wantPeriods[i])
		}
		if got := s.InputLag(); got != wantLag[i] {
			t.Errorf("call %d: InputLag() = %d, want %d", i, got, wantLag[i])
		}
	}
}

func TestAdjustedPeriodClampHigh(t *testing.T) {
	s := NewModuleSync(0, 0, 0)
	s.Update(40000, 20000, 0)

	if got := s.AdjustedPeriod(); got != MaxPeriodUs {
		t.Errorf("AdjustedPeriod() = %d, want clamp %d", got, MaxPeriodUs)
	}
	// only 10000us of lag consumed by the clamped period
	if got := s.InputLag(); got != 10000 {
		t.Errorf("InputLag() = %d, want 10000", got)
	}
}

func TestAge(t *testing.T) {
	s := NewModuleSync(0, 0, 0)
	if got := s.Age(12345); got != 0 {
		t.Errorf("Age() = %d before any update, want 0", got)
	}

	s.Update(4000, 0, 1000)
	if got := s.Age(5000); got != 4000 {
		t.Errorf("Age() = %d, want 4000", got)
	}

	// wraparound-safe
	s.Update(4000, 0, 0xFFFFFF00)
	if got := s.Age(0x00000100); got != 0x200 {
		t.Errorf("Age() across wraparound = %d, want %d", got, 0x200)
	}
}
