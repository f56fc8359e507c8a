package services

import (
	"context"
	"errors"
	"testing"

	"github.com/reminisce-care/reminisce/internal/common"
	"github.com/reminisce-care/reminisce/internal/server/models"
)

func newScopeFixture(t *testing.T) (*ScopeService, *fakeRepoManager) {
	t.Helper()
	db, _ := newSQLMockDB(t)
	rm := newFakeRepoManager()
	rm.accounts.accounts[1] = caretakerAccount(1, "alice")
	rm.accounts.accounts[2] = patientAccount(2, "bob", 1)
	rm.accounts.accounts[3] = caretakerAccount(3, "dave")
	rm.accounts.accounts[4] = patientAccount(4, "erin", 3)
	rm.accounts.nextID = 4
	return NewScopeService(db, rm), rm
}

func TestResolvePatient(t *testing.T) {
	scope, rm := newScopeFixture(t)
	ctx := context.Background()

	t.Run("patient always resolves to itself", func(t *testing.T) {
		id, err := scope.ResolvePatient(ctx, rm.accounts.accounts[2], 0)
		if err != nil || id != 2 {
			t.Fatalf("expected 2, got %d (%v)", id, err)
		}
	})

	t.Run("patient-supplied id is ignored", func(t *testing.T) {
		id, err := scope.ResolvePatient(ctx, rm.accounts.accounts[2], 4)
		if err != nil || id != 2 {
			t.Fatalf("expected 2, got %d (%v)", id, err)
		}
	})

	t.Run("caretaker resolves a linked patient", func(t *testing.T) {
		id, err := scope.ResolvePatient(ctx, rm.accounts.accounts[1], 2)
		if err != nil || id != 2 {
			t.Fatalf("expected 2, got %d (%v)", id, err)
		}
	})

	t.Run("caretaker without explicit id is refused", func(t *testing.T) {
		_, err := scope.ResolvePatient(ctx, rm.accounts.accounts[1], 0)
		if !errors.Is(err, common.ErrorForbidden) {
			t.Errorf("expected ErrorForbidden, got %v", err)
		}
	})

	t.Run("caretaker cannot reach another caretaker's patient", func(t *testing.T) {
		_, err := scope.ResolvePatient(ctx, rm.accounts.accounts[1], 4)
		if !errors.Is(err, common.ErrorForbidden) {
			t.Errorf("expected ErrorForbidden, got %v", err)
		}
	})

	t.Run("caretaker naming a caretaker id is refused", func(t *testing.T) {
		_, err := scope.ResolvePatient(ctx, rm.accounts.accounts[1], 3)
		if !errors.Is(err, common.ErrorForbidden) {
			t.Errorf("expected ErrorForbidden, got %v", err)
		}
	})

	t.Run("nonexistent patient id is refused, not NotFound", func(t *testing.T) {
		_, err := scope.ResolvePatient(ctx, rm.accounts.accounts[1], 99)
		if !errors.Is(err, common.ErrorForbidden) {
			t.Errorf("expected ErrorForbidden, got %v", err)
		}
	})

	t.Run("unknown role is an internal error", func(t *testing.T) {
		_, err := scope.ResolvePatient(ctx, &models.Account{ID: 9, Role: models.Role("admin")}, 2)
		if !errors.Is(err, common.ErrorInternal) {
			t.Errorf("expected ErrorInternal, got %v", err)
		}
	})
}

func TestAuthorizeOwner(t *testing.T) {
	scope, rm := newScopeFixture(t)
	ctx := context.Background()

	t.Run("patient may act on own resources", func(t *testing.T) {
		if err := scope.AuthorizeOwner(ctx, rm.accounts.accounts[2], 2); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("patient may not act on another patient's resources", func(t *testing.T) {
		err := scope.AuthorizeOwner(ctx, rm.accounts.accounts[2], 4)
		if !errors.Is(err, common.ErrorForbidden) {
			t.Errorf("expected ErrorForbidden, got %v", err)
		}
	})

	t.Run("caretaker may act on linked patient's resources", func(t *testing.T) {
		if err := scope.AuthorizeOwner(ctx, rm.accounts.accounts[1], 2); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("caretaker may not act on unlinked patient's resources", func(t *testing.T) {
		err := scope.AuthorizeOwner(ctx, rm.accounts.accounts[1], 4)
		if !errors.Is(err, common.ErrorForbidden) {
			t.Errorf("expected ErrorForbidden, got %v", err)
		}
	})
}
