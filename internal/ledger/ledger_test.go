package ledger

import (
	"context"
	"errors"
	"sync"
	"testing"

	"mines-casino/internal/store"
)

func newTestLedger(t *testing.T, opts Options, acc store.Account) (*Ledger, *store.MemoryStore) {
	t.Helper()
	st := store.NewMemory()
	if err := st.CreateAccount(context.Background(), acc); err != nil {
		t.Fatalf("create account: %v", err)
	}
	return New(st, opts), st
}

func TestDebitInsufficientFunds(t *testing.T) {
	l, st := newTestLedger(t, Options{}, store.Account{ID: "a1", Balance: 50})
	ctx := context.Background()

	if _, err := l.Debit(ctx, "a1", "s1", 51); !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}
	acc, _ := st.GetAccount(ctx, "a1")
	if acc.Balance != 50 {
		t.Fatalf("balance changed on failed debit: %d", acc.Balance)
	}
	entries, _ := st.ListLedgerEntries(ctx, store.LedgerFilter{AccountID: "a1"}, 10, 0)
	if len(entries) != 0 {
		t.Fatalf("expected no journal entries, got %d", len(entries))
	}
}

func TestCreditLeavesGamesPlayed(t *testing.T) {
	l, _ := newTestLedger(t, Options{}, store.Account{ID: "a1", Balance: 10, GamesPlayed: 4})
	acc, err := l.Credit(context.Background(), "a1", "s1", 136)
	if err != nil {
		t.Fatalf("credit: %v", err)
	}
	if acc.Balance != 146 || acc.LifetimeWinnings != 136 || acc.GamesPlayed != 4 {
		t.Fatalf("unexpected account after credit: %+v", acc)
	}
	if acc.Wallet != 0 {
		t.Fatalf("wallet credited without mirroring: %d", acc.Wallet)
	}
}

func TestCreditMirrorsWallet(t *testing.T) {
	l, st := newTestLedger(t, Options{MirrorWinningsToWallet: true}, store.Account{ID: "a1", Wallet: 100})
	acc, err := l.Credit(context.Background(), "a1", "s1", 20)
	if err != nil {
		t.Fatalf("credit: %v", err)
	}
	if acc.Wallet != 120 || acc.Balance != 20 {
		t.Fatalf("unexpected account after mirrored credit: %+v", acc)
	}
	entries, _ := st.ListLedgerEntries(context.Background(), store.LedgerFilter{RefID: "s1"}, 10, 0)
	if len(entries) != 2 {
		t.Fatalf("expected points and wallet entries, got %d", len(entries))
	}
}

func TestConsumeFreeCredit(t *testing.T) {
	l, _ := newTestLedger(t, Options{}, store.Account{ID: "a1", FreeCredits: 1})
	ctx := context.Background()
	acc, err := l.ConsumeFreeCredit(ctx, "a1", "s1")
	if err != nil {
		t.Fatalf("consume: %v", err)
	}
	if acc.FreeCredits != 0 {
		t.Fatalf("free credits = %d, want 0", acc.FreeCredits)
	}
	if _, err := l.ConsumeFreeCredit(ctx, "a1", "s2"); !errors.Is(err, ErrNoFreeCredits) {
		t.Fatalf("expected ErrNoFreeCredits, got %v", err)
	}
}

func TestIncrementGamesPlayed(t *testing.T) {
	l, _ := newTestLedger(t, Options{}, store.Account{ID: "a1"})
	acc, err := l.IncrementGamesPlayed(context.Background(), "a1")
	if err != nil || acc.GamesPlayed != 1 {
		t.Fatalf("IncrementGamesPlayed = %+v, %v", acc, err)
	}
}

func TestReserveStake(t *testing.T) {
	cases := []struct {
		name        string
		acc         store.Account
		stake       int64
		wantFree    bool
		wantErr     error
		wantBalance int64
		wantCredits int
		wantGames   int64
	}{
		{name: "free", acc: store.Account{Balance: 1000, FreeCredits: 3}, stake: 0, wantFree: true, wantBalance: 1000, wantCredits: 2, wantGames: 1},
		{name: "paid", acc: store.Account{Balance: 1000, FreeCredits: 3}, stake: 100, wantBalance: 900, wantCredits: 3, wantGames: 1},
		{name: "zero stake without credits", acc: store.Account{Balance: 5}, stake: 0, wantBalance: 5, wantGames: 1},
		{name: "insufficient", acc: store.Account{Balance: 900}, stake: 10000, wantErr: ErrInsufficientFunds, wantBalance: 900},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tc.acc.ID = "a1"
			l, st := newTestLedger(t, Options{}, tc.acc)
			ctx := context.Background()

			free, err := l.ReserveStake(ctx, "a1", "s1", tc.stake)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("ReserveStake error = %v, want %v", err, tc.wantErr)
			}
			if free != tc.wantFree {
				t.Fatalf("free = %v, want %v", free, tc.wantFree)
			}
			acc, _ := st.GetAccount(ctx, "a1")
			if acc.Balance != tc.wantBalance || acc.FreeCredits != tc.wantCredits || acc.GamesPlayed != tc.wantGames {
				t.Fatalf("unexpected account: %+v", acc)
			}
		})
	}
}

func TestWalletTransfers(t *testing.T) {
	l, _ := newTestLedger(t, Options{}, store.Account{ID: "a1", Wallet: 100})
	ctx := context.Background()

	if _, err := l.DepositWallet(ctx, "a1", 5, 10); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount for small deposit, got %v", err)
	}
	acc, err := l.DepositWallet(ctx, "a1", 10, 10)
	if err != nil || acc.Wallet != 110 {
		t.Fatalf("deposit = %+v, %v", acc, err)
	}
	if _, err := l.WithdrawWallet(ctx, "a1", 500, 10); !errors.Is(err, ErrInsufficientWallet) {
		t.Fatalf("expected ErrInsufficientWallet, got %v", err)
	}
	acc, err = l.WithdrawWallet(ctx, "a1", 60, 10)
	if err != nil || acc.Wallet != 50 {
		t.Fatalf("withdraw = %+v, %v", acc, err)
	}
}

func TestAddPointsMinimum(t *testing.T) {
	l, _ := newTestLedger(t, Options{}, store.Account{ID: "a1"})
	ctx := context.Background()
	if _, err := l.AddPoints(ctx, "a1", 99, 100); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
	acc, err := l.AddPoints(ctx, "a1", 100, 100)
	if err != nil || acc.Balance != 100 {
		t.Fatalf("AddPoints = %+v, %v", acc, err)
	}
}

func TestConcurrentDebitsNeverOverdraw(t *testing.T) {
	l, st := newTestLedger(t, Options{}, store.Account{ID: "a1", Balance: 1000})
	ctx := context.Background()

	var (
		wg sync.WaitGroup
		mu sync.Mutex
		ok int
	)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := l.Debit(ctx, "a1", store.NewID(), 30); err == nil {
				mu.Lock()
				ok++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	acc, _ := st.GetAccount(ctx, "a1")
	if ok != 33 {
		t.Fatalf("successful debits = %d, want 33", ok)
	}
	if acc.Balance != 1000-int64(ok)*30 {
		t.Fatalf("balance = %d, want %d", acc.Balance, 1000-int64(ok)*30)
	}
}
