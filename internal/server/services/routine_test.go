package services

import (
	"context"
	"errors"
	"testing"

	"github.com/reminisce-care/reminisce/internal/common"
)

func newChecklistFixture(t *testing.T) (*RoutineService, *MedicationService, *fakeRepoManager) {
	t.Helper()
	db, _ := newSQLMockDB(t)
	rm := newFakeRepoManager()
	rm.accounts.accounts[1] = caretakerAccount(1, "alice")
	rm.accounts.accounts[2] = patientAccount(2, "bob", 1)
	rm.accounts.accounts[4] = patientAccount(4, "erin", 3)
	rm.accounts.nextID = 4

	scope := NewScopeService(db, rm)
	return NewRoutineService(db, rm, scope), NewMedicationService(db, rm, scope), rm
}

func TestRoutineCreateAndList(t *testing.T) {
	routines, _, rm := newChecklistFixture(t)
	ctx := context.Background()

	created, err := routines.Create(ctx, rm.accounts.accounts[1], 2, RoutineParams{
		Task:      "Morning Walk",
		TimeOfDay: "08:00",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.PatientID != 2 || created.IsCompleted {
		t.Errorf("unexpected routine: %+v", created)
	}

	t.Run("empty task", func(t *testing.T) {
		_, err := routines.Create(ctx, rm.accounts.accounts[2], 0, RoutineParams{Task: "  "})
		if !errors.Is(err, common.ErrorValidation) {
			t.Errorf("expected ErrorValidation, got %v", err)
		}
	})

	t.Run("patient lists own routines", func(t *testing.T) {
		list, err := routines.List(ctx, rm.accounts.accounts[2], 0)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(list) != 1 || list[0].Task != "Morning Walk" {
			t.Errorf("unexpected list: %+v", list)
		}
	})

	t.Run("unlinked caretaker gets empty list", func(t *testing.T) {
		stranger := caretakerAccount(9, "mallory")
		list, err := routines.List(ctx, stranger, 2)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(list) != 0 {
			t.Errorf("expected empty list, got %+v", list)
		}
	})
}

func TestRoutineToggle(t *testing.T) {
	routines, _, rm := newChecklistFixture(t)
	ctx := context.Background()

	created, err := routines.Create(ctx, rm.accounts.accounts[2], 0, RoutineParams{Task: "Drink Water"})
	if err != nil {
		t.Fatalf("create error: %v", err)
	}

	t.Run("toggling twice is an involution", func(t *testing.T) {
		once, err := routines.Toggle(ctx, rm.accounts.accounts[2], created.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !once.IsCompleted {
			t.Error("expected completed after first toggle")
		}
		twice, err := routines.Toggle(ctx, rm.accounts.accounts[2], created.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if twice.IsCompleted {
			t.Error("expected original state after second toggle")
		}
	})

	t.Run("caretaker may toggle linked patient's routine", func(t *testing.T) {
		if _, err := routines.Toggle(ctx, rm.accounts.accounts[1], created.ID); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("other patient may not toggle", func(t *testing.T) {
		_, err := routines.Toggle(ctx, rm.accounts.accounts[4], created.ID)
		if !errors.Is(err, common.ErrorForbidden) {
			t.Errorf("expected ErrorForbidden, got %v", err)
		}
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := routines.Toggle(ctx, rm.accounts.accounts[2], 99)
		if !errors.Is(err, common.ErrorNotFound) {
			t.Errorf("expected ErrorNotFound, got %v", err)
		}
	})
}

func TestMedicationCreateToggle(t *testing.T) {
	_, medications, rm := newChecklistFixture(t)
	ctx := context.Background()

	created, err := medications.Create(ctx, rm.accounts.accounts[1], 2, MedicationParams{
		Name:      "Aspirin",
		Dosage:    "100mg",
		TimeOfDay: "08:00 AM",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.PatientID != 2 || created.Taken {
		t.Errorf("unexpected medication: %+v", created)
	}
	if created.Dosage == nil || *created.Dosage != "100mg" {
		t.Errorf("expected dosage stored, got %v", created.Dosage)
	}

	t.Run("empty name", func(t *testing.T) {
		_, err := medications.Create(ctx, rm.accounts.accounts[2], 0, MedicationParams{})
		if !errors.Is(err, common.ErrorValidation) {
			t.Errorf("expected ErrorValidation, got %v", err)
		}
	})

	t.Run("toggle flips taken", func(t *testing.T) {
		toggled, err := medications.Toggle(ctx, rm.accounts.accounts[2], created.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !toggled.Taken {
			t.Error("expected taken after toggle")
		}
	})

	t.Run("other patient may not toggle", func(t *testing.T) {
		_, err := medications.Toggle(ctx, rm.accounts.accounts[4], created.ID)
		if !errors.Is(err, common.ErrorForbidden) {
			t.Errorf("expected ErrorForbidden, got %v", err)
		}
	})

	t.Run("patient lists own medications", func(t *testing.T) {
		list, err := medications.List(ctx, rm.accounts.accounts[2], 0)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(list) != 1 || list[0].Name != "Aspirin" {
			t.Errorf("unexpected list: %+v", list)
		}
	})
}
