package account

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/delivery-accounts/internal/application/dto"
	"github.com/jhoicas/delivery-accounts/internal/domain"
	"github.com/jhoicas/delivery-accounts/internal/domain/entity"
	"github.com/jhoicas/delivery-accounts/internal/domain/repository"
	"github.com/jhoicas/delivery-accounts/pkg/logger"
)

// AccountUseCase casos de uso de cuentas: registro, login, perfil y verificación de email.
// No guarda estado mutable propio; todo vive detrás de los repositorios.
type AccountUseCase struct {
	accounts      repository.AccountRepository
	verifications repository.VerificationRepository
	tx            TxRunner
	hasher        PasswordHasher
	signer        TokenSigner
	codes         CodeGenerator
	notifier      Notifier
	log           *logger.Logger
	now           func() time.Time
}

// NewAccountUseCase construye el caso de uso con sus puertos.
func NewAccountUseCase(
	accounts repository.AccountRepository,
	verifications repository.VerificationRepository,
	tx TxRunner,
	hasher PasswordHasher,
	signer TokenSigner,
	codes CodeGenerator,
	notifier Notifier,
	log *logger.Logger,
) *AccountUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &AccountUseCase{
		accounts:      accounts,
		verifications: verifications,
		tx:            tx,
		hasher:        hasher,
		signer:        signer,
		codes:         codes,
		notifier:      notifier,
		log:           log.Named("account"),
		now:           func() time.Time { return time.Now().UTC() },
	}
}

// CreateAccount registra una cuenta sin verificar, crea su código de verificación y
// dispara el correo. Devuelve ErrAccountExists si el email ya está registrado.
func (uc *AccountUseCase) CreateAccount(ctx context.Context, in dto.CreateAccountRequest) (*dto.AccountResponse, error) {
	existing, err := uc.accounts.GetByEmail(ctx, in.Email)
	if err != nil {
		uc.log.Error().Err(err).Str("op", "create_account").Msg("buscar cuenta por email")
		return nil, domain.ErrCreateAccountFailed
	}
	if existing != nil {
		return nil, domain.ErrAccountExists
	}
	role, err := entity.ParseRole(in.Role)
	if err != nil {
		return nil, domain.ErrInvalidRole
	}

	hash, err := uc.hasher.Hash(in.Password)
	if err != nil {
		uc.log.Error().Err(err).Str("op", "create_account").Msg("hashear password")
		return nil, domain.ErrCreateAccountFailed
	}
	code, err := uc.codes.NewCode()
	if err != nil {
		uc.log.Error().Err(err).Str("op", "create_account").Msg("generar código")
		return nil, domain.ErrCreateAccountFailed
	}

	now := uc.now()
	acc := &entity.Account{
		ID:           uuid.New().String(),
		Email:        in.Email,
		PasswordHash: hash,
		Role:         role,
		Verified:     false,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	ver := uc.newVerification(acc.ID, code)

	err = uc.tx.Run(ctx, func(accounts repository.AccountRepository, verifications repository.VerificationRepository) error {
		if err := accounts.Create(ctx, acc); err != nil {
			return err
		}
		return verifications.Create(ctx, ver)
	})
	if err != nil {
		// Carrera entre dos registros con el mismo email: la restricción única decide.
		if errors.Is(err, domain.ErrAccountExists) {
			return nil, domain.ErrAccountExists
		}
		uc.log.Error().Err(err).Str("op", "create_account").Msg("persistir cuenta")
		return nil, domain.ErrCreateAccountFailed
	}

	uc.sendVerification(ctx, acc, code)
	return toAccountResponse(acc), nil
}

// Login verifica email/password y emite un bearer token para la cuenta.
func (uc *AccountUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	acc, err := uc.accounts.GetByEmail(ctx, in.Email)
	if err != nil {
		uc.log.Error().Err(err).Str("op", "login").Msg("buscar cuenta por email")
		return nil, domain.ErrLoginFailed
	}
	if acc == nil {
		return nil, domain.ErrAccountNotFound
	}
	if !uc.hasher.Matches(in.Password, acc.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}
	token, err := uc.signer.Sign(acc.ID, string(acc.Role))
	if err != nil {
		uc.log.Error().Err(err).Str("op", "login").Str("account_id", acc.ID).Msg("firmar token")
		return nil, domain.ErrLoginFailed
	}
	return &dto.LoginResponse{Token: token}, nil
}

// FindByID obtiene una cuenta por ID.
func (uc *AccountUseCase) FindByID(ctx context.Context, id string) (*dto.AccountResponse, error) {
	acc, err := uc.accounts.GetByID(ctx, id)
	if err != nil {
		uc.log.Error().Err(err).Str("op", "find_by_id").Str("account_id", id).Msg("buscar cuenta")
		return nil, domain.ErrFindAccountFailed
	}
	if acc == nil {
		return nil, domain.ErrAccountNotFound
	}
	return toAccountResponse(acc), nil
}

// Authenticate recupera la cuenta dueña de un bearer token.
func (uc *AccountUseCase) Authenticate(ctx context.Context, token string) (*dto.AccountResponse, error) {
	id, err := uc.signer.Verify(token)
	if err != nil {
		return nil, domain.ErrInvalidToken
	}
	return uc.FindByID(ctx, id)
}

// EditProfile aplica los cambios de email y/o password y persiste la entidad completa.
// Un cambio de email deja la cuenta sin verificar, invalida los códigos anteriores y
// emite uno nuevo. Devuelve la cuenta actualizada.
//
// Los cambios se aplican sobre la cuenta releída dentro de la unidad de trabajo, así un
// canje o una edición concurrente no se pierde al guardar.
func (uc *AccountUseCase) EditProfile(ctx context.Context, accountID string, in dto.EditProfileRequest) (*dto.AccountResponse, error) {
	acc, err := uc.accounts.GetByID(ctx, accountID)
	if err != nil {
		uc.log.Error().Err(err).Str("op", "edit_profile").Str("account_id", accountID).Msg("buscar cuenta")
		return nil, domain.ErrUpdateProfileFailed
	}
	if acc == nil {
		return nil, domain.ErrAccountNotFound
	}

	var newEmail, code, hash string
	if in.Email != nil && *in.Email != "" && *in.Email != acc.Email {
		other, err := uc.accounts.GetByEmail(ctx, *in.Email)
		if err != nil {
			uc.log.Error().Err(err).Str("op", "edit_profile").Msg("buscar cuenta por email")
			return nil, domain.ErrUpdateProfileFailed
		}
		if other != nil && other.ID != acc.ID {
			return nil, domain.ErrAccountExists
		}
		if code, err = uc.codes.NewCode(); err != nil {
			uc.log.Error().Err(err).Str("op", "edit_profile").Msg("generar código")
			return nil, domain.ErrUpdateProfileFailed
		}
		newEmail = *in.Email
	}
	if in.Password != nil {
		// bcrypt es lento: se calcula antes de abrir la unidad de trabajo.
		if hash, err = uc.hasher.Hash(*in.Password); err != nil {
			uc.log.Error().Err(err).Str("op", "edit_profile").Msg("hashear password")
			return nil, domain.ErrUpdateProfileFailed
		}
	}

	var updated *entity.Account
	emailChanged := false
	err = uc.tx.Run(ctx, func(accounts repository.AccountRepository, verifications repository.VerificationRepository) error {
		cur, err := accounts.GetByID(ctx, accountID)
		if err != nil {
			return err
		}
		if cur == nil {
			return domain.ErrAccountNotFound
		}
		emailChanged = newEmail != "" && cur.ChangeEmail(newEmail)
		if hash != "" {
			cur.ChangePassword(hash)
		}
		cur.UpdatedAt = uc.now()
		if err := accounts.Update(ctx, cur); err != nil {
			return err
		}
		updated = cur
		if !emailChanged {
			return nil
		}
		if _, err := verifications.DeleteByAccount(ctx, cur.ID); err != nil {
			return err
		}
		return verifications.Create(ctx, uc.newVerification(cur.ID, code))
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrAccountExists):
			return nil, domain.ErrAccountExists
		case errors.Is(err, domain.ErrAccountNotFound):
			return nil, domain.ErrAccountNotFound
		}
		uc.log.Error().Err(err).Str("op", "edit_profile").Str("account_id", accountID).Msg("persistir perfil")
		return nil, domain.ErrUpdateProfileFailed
	}

	if emailChanged {
		uc.sendVerification(ctx, updated, code)
	}
	return toAccountResponse(updated), nil
}

// VerifyEmail canjea un código de verificación: marca la cuenta como verificada y
// elimina el código. Un código solo puede canjearse una vez.
func (uc *AccountUseCase) VerifyEmail(ctx context.Context, code string) error {
	ver, err := uc.verifications.GetByCode(ctx, code)
	if err != nil {
		uc.log.Error().Err(err).Str("op", "verify_email").Msg("buscar código")
		return domain.ErrVerifyEmailFailed
	}
	if ver == nil {
		return domain.ErrVerificationNotFound
	}

	var acc *entity.Account
	err = uc.tx.Run(ctx, func(accounts repository.AccountRepository, verifications repository.VerificationRepository) error {
		// Primero la cuenta (bloqueada donde el backend lo permite), después el código.
		cur, err := accounts.GetByID(ctx, ver.AccountID)
		if err != nil {
			return err
		}
		if cur == nil {
			return domain.ErrVerificationNotFound
		}
		deleted, err := verifications.Delete(ctx, ver.ID)
		if err != nil {
			return err
		}
		if !deleted {
			// Otro canje concurrente o un cambio de email consumió el código primero.
			return domain.ErrVerificationNotFound
		}
		cur.MarkVerified()
		cur.UpdatedAt = uc.now()
		if err := accounts.Update(ctx, cur); err != nil {
			return err
		}
		acc = cur
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrVerificationNotFound) {
			return domain.ErrVerificationNotFound
		}
		uc.log.Error().Err(err).Str("op", "verify_email").Str("account_id", ver.AccountID).Msg("persistir verificación")
		return domain.ErrVerifyEmailFailed
	}

	if err := uc.notifier.SendVerified(ctx, acc.Email); err != nil {
		uc.log.Warn().Err(err).Str("account_id", acc.ID).Msg("correo de confirmación no enviado")
	}
	return nil
}

func (uc *AccountUseCase) newVerification(accountID, code string) *entity.Verification {
	return &entity.Verification{
		ID:        uuid.New().String(),
		Code:      code,
		AccountID: accountID,
		CreatedAt: uc.now(),
	}
}

// sendVerification es fire-and-forget: un fallo de entrega no revierte nada.
func (uc *AccountUseCase) sendVerification(ctx context.Context, acc *entity.Account, code string) {
	if err := uc.notifier.SendVerification(ctx, acc.Email, code); err != nil {
		uc.log.Warn().Err(err).Str("account_id", acc.ID).Msg("correo de verificación no enviado")
	}
}

func toAccountResponse(a *entity.Account) *dto.AccountResponse {
	if a == nil {
		return nil
	}
	return &dto.AccountResponse{
		ID:        a.ID,
		Email:     a.Email,
		Role:      string(a.Role),
		Verified:  a.Verified,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}
