package memory

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/delivery-accounts/internal/domain"
	"github.com/jhoicas/delivery-accounts/internal/domain/entity"
	"github.com/jhoicas/delivery-accounts/internal/domain/repository"
)

func newAccount(id, email string) *entity.Account {
	return &entity.Account{ID: id, Email: email, PasswordHash: "hash", Role: entity.RoleClient}
}

func TestAccountRepo_EmailUnico(t *testing.T) {
	ctx := context.Background()
	repo := NewAccountRepository(NewStore())

	require.NoError(t, repo.Create(ctx, newAccount("1", "a@b.com")))
	err := repo.Create(ctx, newAccount("2", "a@b.com"))
	assert.ErrorIs(t, err, domain.ErrAccountExists)

	got, err := repo.GetByEmail(ctx, "a@b.com")
	require.NoError(t, err)
	assert.Equal(t, "1", got.ID)
}

func TestAccountRepo_CreateConcurrente(t *testing.T) {
	ctx := context.Background()
	repo := NewAccountRepository(NewStore())

	var wg sync.WaitGroup
	var mu sync.Mutex
	ok := 0
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if err := repo.Create(ctx, newAccount(string(rune('a'+i)), "same@b.com")); err == nil {
				mu.Lock()
				ok++
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 1, ok, "solo un registro con el mismo email puede ganar")
}

func TestAccountRepo_DevuelveCopias(t *testing.T) {
	ctx := context.Background()
	repo := NewAccountRepository(NewStore())
	require.NoError(t, repo.Create(ctx, newAccount("1", "a@b.com")))

	got, err := repo.GetByID(ctx, "1")
	require.NoError(t, err)
	got.Verified = true

	again, err := repo.GetByID(ctx, "1")
	require.NoError(t, err)
	assert.False(t, again.Verified, "mutar la copia no debe tocar el store")
}

func TestAccountRepo_UpdateMueveIndiceEmail(t *testing.T) {
	ctx := context.Background()
	repo := NewAccountRepository(NewStore())
	require.NoError(t, repo.Create(ctx, newAccount("1", "a@b.com")))
	require.NoError(t, repo.Create(ctx, newAccount("2", "c@d.com")))

	acc, _ := repo.GetByID(ctx, "1")
	acc.Email = "c@d.com"
	assert.ErrorIs(t, repo.Update(ctx, acc), domain.ErrAccountExists)

	acc.Email = "new@b.com"
	require.NoError(t, repo.Update(ctx, acc))

	old, err := repo.GetByEmail(ctx, "a@b.com")
	require.NoError(t, err)
	assert.Nil(t, old)
	moved, err := repo.GetByEmail(ctx, "new@b.com")
	require.NoError(t, err)
	assert.Equal(t, "1", moved.ID)
}

func TestAccountRepo_NoEncontrado(t *testing.T) {
	ctx := context.Background()
	repo := NewAccountRepository(NewStore())

	got, err := repo.GetByID(ctx, "x")
	assert.NoError(t, err)
	assert.Nil(t, got)
	assert.Error(t, repo.Update(ctx, newAccount("x", "x@y.com")))
}

func TestVerificationRepo_Ciclo(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	accounts := NewAccountRepository(s)
	verifications := NewVerificationRepository(s)
	require.NoError(t, accounts.Create(ctx, newAccount("acc", "a@b.com")))

	require.NoError(t, verifications.Create(ctx, &entity.Verification{ID: "v1", Code: "XYZ", AccountID: "acc"}))
	assert.Error(t, verifications.Create(ctx, &entity.Verification{ID: "v2", Code: "XYZ", AccountID: "acc"}), "código duplicado")
	assert.Error(t, verifications.Create(ctx, &entity.Verification{ID: "v3", Code: "ABC", AccountID: "nadie"}))

	got, err := verifications.GetByCode(ctx, "XYZ")
	require.NoError(t, err)
	require.NotNil(t, got.Account)
	assert.Equal(t, "a@b.com", got.Account.Email)

	deleted, err := verifications.Delete(ctx, "v1")
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = verifications.Delete(ctx, "v1")
	require.NoError(t, err)
	assert.False(t, deleted)

	got, err = verifications.GetByCode(ctx, "XYZ")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestVerificationRepo_DeleteByAccount(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	accounts := NewAccountRepository(s)
	verifications := NewVerificationRepository(s)
	require.NoError(t, accounts.Create(ctx, newAccount("a", "a@b.com")))
	require.NoError(t, accounts.Create(ctx, newAccount("b", "b@b.com")))
	require.NoError(t, verifications.Create(ctx, &entity.Verification{ID: "1", Code: "c1", AccountID: "a"}))
	require.NoError(t, verifications.Create(ctx, &entity.Verification{ID: "2", Code: "c2", AccountID: "a"}))
	require.NoError(t, verifications.Create(ctx, &entity.Verification{ID: "3", Code: "c3", AccountID: "b"}))

	n, err := verifications.DeleteByAccount(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	assert.Equal(t, 0, verifications.CountByAccount("a"))
	assert.Equal(t, 1, verifications.CountByAccount("b"))
}

func TestTxRunner_RevierteEnError(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	tx := NewTxRunner(s)
	boom := errors.New("boom")

	err := tx.Run(ctx, func(accounts repository.AccountRepository, _ repository.VerificationRepository) error {
		if err := accounts.Create(ctx, newAccount("1", "a@b.com")); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	got, err := NewAccountRepository(s).GetByEmail(ctx, "a@b.com")
	require.NoError(t, err)
	assert.Nil(t, got, "la cuenta no debe sobrevivir a la unidad fallida")
}
