package timestamp

import (
	"errors"
	"testing"

	"github.com/utxokernel/kernel/pkg/checker"
	"github.com/utxokernel/kernel/pkg/types"
)

func tsPayload(ms uint64, block uint32) types.AnyPayload {
	return types.ToAnyPayload[Timestamp](Timestamp{TimeMS: ms, Block: block})
}

func TestSetTimestampBootstrap(t *testing.T) {
	outputs := []types.AnyPayload{tsPayload(1000, 1)}
	if _, err := (SetTimestamp{}).Check(1, nil, nil, nil, outputs); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSetTimestampHappyPath(t *testing.T) {
	peeks := []types.AnyPayload{tsPayload(1000, 4)}
	outputs := []types.AnyPayload{tsPayload(3000, 5)}
	if _, err := (SetTimestamp{}).Check(5, nil, nil, peeks, outputs); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSetTimestampRejectsTooSoon(t *testing.T) {
	peeks := []types.AnyPayload{tsPayload(1000, 4)}
	outputs := []types.AnyPayload{tsPayload(1500, 5)}
	_, err := (SetTimestamp{}).Check(5, nil, nil, peeks, outputs)
	if !errors.Is(err, ErrTooSoon) {
		t.Errorf("got %v, want ErrTooSoon", err)
	}
}

func TestSetTimestampRejectsWrongBlockNumber(t *testing.T) {
	outputs := []types.AnyPayload{tsPayload(1000, 2)}
	_, err := (SetTimestamp{}).Check(1, nil, nil, nil, outputs)
	if !errors.Is(err, ErrWrongBlockNumber) {
		t.Errorf("got %v, want ErrWrongBlockNumber", err)
	}
}

func TestSetTimestampCreateInherentBootstrap(t *testing.T) {
	ad := AuthoringData{NowMS: 5000}
	inputs, peeks, outputs, err := (SetTimestamp{}).CreateInherent(ad, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(inputs) != 0 || len(peeks) != 0 || len(outputs) != 1 {
		t.Fatalf("unexpected shape: %d inputs, %d peeks, %d outputs", len(inputs), len(peeks), len(outputs))
	}
	got, err := As(outputs[0])
	if err != nil {
		t.Fatalf("As: %v", err)
	}
	if got.Block != 1 || got.TimeMS != 5000 {
		t.Errorf("got %+v", got)
	}
}

func TestSetTimestampCreateInherentEnforcesFloor(t *testing.T) {
	prev := Timestamp{TimeMS: 1000, Block: 4}
	ref := types.OutputRef{Index: 0}
	ad := AuthoringData{NowMS: 1500, Previous: &prev}
	_, peeks, outputs, err := (SetTimestamp{}).CreateInherent(ad, &ref)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(peeks) != 1 || peeks[0] != ref {
		t.Fatalf("expected peek of previous ref, got %+v", peeks)
	}
	got, err := As(outputs[0])
	if err != nil {
		t.Fatalf("As: %v", err)
	}
	if got.TimeMS != prev.TimeMS+DefaultMinimumIntervalMS {
		t.Errorf("got %d, want floor %d", got.TimeMS, prev.TimeMS+DefaultMinimumIntervalMS)
	}
}

func TestCheckInherentFlagsDrift(t *testing.T) {
	var result checker.CheckInherentsResult
	outputs := []types.AnyPayload{tsPayload(200000, 5)}
	(SetTimestamp{}).CheckInherent(ImportingData{LocalClockMS: 1000}, outputs, &result)
	if result.FatalOK() {
		t.Fatal("expected a fatal drift error")
	}
}

func TestCleanUpTimestampHappyPath(t *testing.T) {
	ref := tsPayload(DefaultMinAgeForCleanupMS+10, 20000)
	old := tsPayload(0, 1)
	if _, err := (CleanUpTimestamp{}).Check(20000, []types.AnyPayload{old}, nil, []types.AnyPayload{ref}, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCleanUpTimestampRejectsTooYoung(t *testing.T) {
	ref := tsPayload(100, 100)
	old := tsPayload(50, 90)
	_, err := (CleanUpTimestamp{}).Check(100, []types.AnyPayload{old}, nil, []types.AnyPayload{ref}, nil)
	if !errors.Is(err, ErrTooYoungToClean) {
		t.Errorf("got %v, want ErrTooYoungToClean", err)
	}
}
