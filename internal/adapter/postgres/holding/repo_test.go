package holding_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/crowdpool/crowdpool-backend/internal/adapter/postgres/holding"
	"github.com/crowdpool/crowdpool-backend/internal/adapter/postgres/testhelper"
	"github.com/crowdpool/crowdpool-backend/internal/domain"
)

func newRepo(t *testing.T) (*holding.Repo, *pgxpool.Pool) {
	t.Helper()
	pool := testhelper.SetupTestDB(t)
	return holding.New(pool), pool
}

func TestRepo_BalanceOf(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	acc := testhelper.SeedAccount(t, pool)
	testhelper.SeedHolding(t, pool, acc.ID, domain.NativeAsset(), 250)

	got, err := repo.BalanceOf(ctx, domain.NativeAsset(), acc.ID)
	if err != nil {
		t.Fatalf("BalanceOf: unexpected error: %v", err)
	}
	if got.Cmp(domain.NewAmount(250)) != 0 {
		t.Errorf("balance = %s, want 250", got)
	}

	// Missing row reads as zero, not an error.
	zero, err := repo.BalanceOf(ctx, domain.TokenAsset(uuid.New()), acc.ID)
	if err != nil {
		t.Fatalf("BalanceOf: unexpected error: %v", err)
	}
	if !zero.IsZero() {
		t.Errorf("balance = %s, want 0", zero)
	}
}

func TestRepo_Transfer(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	t.Run("moves balance between holders", func(t *testing.T) {
		from := testhelper.SeedAccount(t, pool)
		to := testhelper.SeedAccount(t, pool)
		testhelper.SeedHolding(t, pool, from.ID, domain.NativeAsset(), 100)

		accepted, err := repo.Transfer(ctx, domain.NativeAsset(), from.ID, to.ID, domain.NewAmount(40))
		if err != nil {
			t.Fatalf("Transfer: unexpected error: %v", err)
		}
		if !accepted {
			t.Fatal("expected transfer to be accepted")
		}

		fromBal, _ := repo.BalanceOf(ctx, domain.NativeAsset(), from.ID)
		toBal, _ := repo.BalanceOf(ctx, domain.NativeAsset(), to.ID)
		if fromBal.Cmp(domain.NewAmount(60)) != 0 {
			t.Errorf("sender balance = %s, want 60", fromBal)
		}
		if toBal.Cmp(domain.NewAmount(40)) != 0 {
			t.Errorf("recipient balance = %s, want 40", toBal)
		}
	})

	t.Run("insufficient funds", func(t *testing.T) {
		from := testhelper.SeedAccount(t, pool)
		to := testhelper.SeedAccount(t, pool)
		testhelper.SeedHolding(t, pool, from.ID, domain.NativeAsset(), 10)

		_, err := repo.Transfer(ctx, domain.NativeAsset(), from.ID, to.ID, domain.NewAmount(11))
		if !errors.Is(err, domain.ErrInsufficientFunds) {
			t.Errorf("got %v, want ErrInsufficientFunds", err)
		}
	})

	t.Run("no holding row at all", func(t *testing.T) {
		from := testhelper.SeedAccount(t, pool)
		to := testhelper.SeedAccount(t, pool)

		_, err := repo.Transfer(ctx, domain.NativeAsset(), from.ID, to.ID, domain.NewAmount(1))
		if !errors.Is(err, domain.ErrInsufficientFunds) {
			t.Errorf("got %v, want ErrInsufficientFunds", err)
		}
	})

	t.Run("frozen recipient refuses without moving funds", func(t *testing.T) {
		from := testhelper.SeedAccount(t, pool)
		to := testhelper.SeedAccount(t, pool)
		token := domain.TokenAsset(uuid.New())
		testhelper.SeedHolding(t, pool, from.ID, token, 100)
		if err := repo.SetFrozen(ctx, token, to.ID, true); err != nil {
			t.Fatalf("SetFrozen: %v", err)
		}

		accepted, err := repo.Transfer(ctx, token, from.ID, to.ID, domain.NewAmount(5))
		if err != nil {
			t.Fatalf("Transfer: unexpected error: %v", err)
		}
		if accepted {
			t.Fatal("expected refusal for frozen recipient")
		}

		fromBal, _ := repo.BalanceOf(ctx, token, from.ID)
		if fromBal.Cmp(domain.NewAmount(100)) != 0 {
			t.Errorf("sender balance = %s, want unchanged 100", fromBal)
		}

		// Unfreeze and retry.
		if err := repo.SetFrozen(ctx, token, to.ID, false); err != nil {
			t.Fatalf("SetFrozen: %v", err)
		}
		accepted, err = repo.Transfer(ctx, token, from.ID, to.ID, domain.NewAmount(5))
		if err != nil || !accepted {
			t.Fatalf("retry transfer: accepted=%v err=%v", accepted, err)
		}
	})

	t.Run("zero amount is a no-op", func(t *testing.T) {
		from := testhelper.SeedAccount(t, pool)
		to := testhelper.SeedAccount(t, pool)

		accepted, err := repo.Transfer(ctx, domain.NativeAsset(), from.ID, to.ID, domain.Amount{})
		if err != nil || !accepted {
			t.Errorf("accepted=%v err=%v, want accepted no-op", accepted, err)
		}
	})

	t.Run("wei scale values survive", func(t *testing.T) {
		from := testhelper.SeedAccount(t, pool)
		to := testhelper.SeedAccount(t, pool)
		huge, err := domain.ParseAmount("77000000000000000000000")
		if err != nil {
			t.Fatalf("parse: %v", err)
		}
		if err := repo.Credit(ctx, domain.NativeAsset(), from.ID, huge); err != nil {
			t.Fatalf("Credit: %v", err)
		}

		accepted, err := repo.Transfer(ctx, domain.NativeAsset(), from.ID, to.ID, huge)
		if err != nil || !accepted {
			t.Fatalf("transfer: accepted=%v err=%v", accepted, err)
		}
		toBal, _ := repo.BalanceOf(ctx, domain.NativeAsset(), to.ID)
		if toBal.Cmp(huge) != 0 {
			t.Errorf("balance = %s, want %s", toBal, huge)
		}
	})
}

func TestRepo_ListByHolder(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	acc := testhelper.SeedAccount(t, pool)
	token := domain.TokenAsset(uuid.New())
	testhelper.SeedHolding(t, pool, acc.ID, domain.NativeAsset(), 100)
	testhelper.SeedHolding(t, pool, acc.ID, token, 50)

	all, err := repo.ListByHolder(ctx, acc.ID, nil)
	if err != nil {
		t.Fatalf("ListByHolder: unexpected error: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("len = %d, want 2", len(all))
	}

	native := domain.NativeAsset()
	filtered, err := repo.ListByHolder(ctx, acc.ID, &native)
	if err != nil {
		t.Fatalf("ListByHolder: unexpected error: %v", err)
	}
	if len(filtered) != 1 {
		t.Fatalf("len = %d, want 1", len(filtered))
	}
	if filtered[0].Asset != domain.NativeAsset() {
		t.Errorf("asset = %s, want native", filtered[0].Asset)
	}
	if filtered[0].Balance.Cmp(domain.NewAmount(100)) != 0 {
		t.Errorf("balance = %s, want 100", filtered[0].Balance)
	}
}
