package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/jhoicas/delivery-accounts/internal/domain"
	"github.com/jhoicas/delivery-accounts/internal/domain/entity"
	"github.com/jhoicas/delivery-accounts/internal/domain/repository"
)

var _ repository.AccountRepository = (*AccountRepo)(nil)

type accountDoc struct {
	ID           string    `bson:"_id"`
	Email        string    `bson:"email"`
	PasswordHash string    `bson:"password_hash"`
	Role         string    `bson:"role"`
	Verified     bool      `bson:"verified"`
	CreatedAt    time.Time `bson:"created_at"`
	UpdatedAt    time.Time `bson:"updated_at"`
}

func accountDocFrom(a *entity.Account) accountDoc {
	return accountDoc{
		ID:           a.ID,
		Email:        a.Email,
		PasswordHash: a.PasswordHash,
		Role:         string(a.Role),
		Verified:     a.Verified,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}

func (d accountDoc) toEntity() *entity.Account {
	return &entity.Account{
		ID:           d.ID,
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		Role:         entity.Role(d.Role),
		Verified:     d.Verified,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

// AccountRepo implementación de AccountRepository sobre una colección Mongo.
type AccountRepo struct {
	collection *mongo.Collection
	unit
}

// NewAccountRepository construye el repositorio sobre la base indicada.
func NewAccountRepository(db *mongo.Database) *AccountRepo {
	return newAccountRepo(db, unit{})
}

func newAccountRepo(db *mongo.Database, u unit) *AccountRepo {
	return &AccountRepo{collection: db.Collection(accountsCollection), unit: u}
}

// Create inserta la cuenta; el índice único de email se traduce a ErrAccountExists.
func (r *AccountRepo) Create(ctx context.Context, a *entity.Account) error {
	if _, err := r.collection.InsertOne(r.scope(ctx), accountDocFrom(a)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrAccountExists
		}
		return fmt.Errorf("insert account: %w", err)
	}
	id := a.ID
	r.onRollback(func(ctx context.Context) error {
		if _, err := r.collection.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
			return fmt.Errorf("deshacer insert account %s: %w", id, err)
		}
		return nil
	})
	return nil
}

// GetByID obtiene una cuenta por ID.
func (r *AccountRepo) GetByID(ctx context.Context, id string) (*entity.Account, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

// GetByEmail obtiene una cuenta por email exacto.
func (r *AccountRepo) GetByEmail(ctx context.Context, email string) (*entity.Account, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

// Update persiste todo el estado mutable de la cuenta; role y created_at no cambian.
func (r *AccountRepo) Update(ctx context.Context, a *entity.Account) error {
	var prev accountDoc
	if r.compensating() {
		if err := r.collection.FindOne(ctx, bson.M{"_id": a.ID}).Decode(&prev); err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
			return fmt.Errorf("leer account previa: %w", err)
		}
	}
	filter := bson.M{"_id": a.ID}
	update := bson.M{"$set": bson.M{
		"email":         a.Email,
		"password_hash": a.PasswordHash,
		"verified":      a.Verified,
		"updated_at":    a.UpdatedAt,
	}}
	res, err := r.collection.UpdateOne(r.scope(ctx), filter, update)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrAccountExists
		}
		return fmt.Errorf("update account: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("update account: %s no existe", a.ID)
	}
	r.onRollback(func(ctx context.Context) error {
		if _, err := r.collection.ReplaceOne(ctx, bson.M{"_id": prev.ID}, prev); err != nil {
			return fmt.Errorf("deshacer update account %s: %w", prev.ID, err)
		}
		return nil
	})
	return nil
}

func (r *AccountRepo) findOne(ctx context.Context, filter bson.M) (*entity.Account, error) {
	var d accountDoc
	err := r.collection.FindOne(r.scope(ctx), filter).Decode(&d)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("find account: %w", err)
	}
	return d.toEntity(), nil
}
