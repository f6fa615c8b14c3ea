package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jhoicas/delivery-accounts/internal/domain/entity"
	"github.com/jhoicas/delivery-accounts/internal/domain/repository"
)

var _ repository.VerificationRepository = (*VerificationRepo)(nil)

type verificationDoc struct {
	ID        string    `bson:"_id"`
	Code      string    `bson:"code"`
	AccountID string    `bson:"account_id"`
	CreatedAt time.Time `bson:"created_at"`
}

// VerificationRepo implementación de VerificationRepository sobre Mongo.
type VerificationRepo struct {
	collection *mongo.Collection
	accounts   *AccountRepo
	unit
}

// NewVerificationRepository construye el repositorio; usa AccountRepo para el "join".
func NewVerificationRepository(db *mongo.Database) *VerificationRepo {
	return newVerificationRepo(db, unit{})
}

func newVerificationRepo(db *mongo.Database, u unit) *VerificationRepo {
	return &VerificationRepo{
		collection: db.Collection(verificationsCollection),
		accounts:   newAccountRepo(db, u),
		unit:       u,
	}
}

// Create inserta el código.
func (r *VerificationRepo) Create(ctx context.Context, v *entity.Verification) error {
	doc := verificationDoc{ID: v.ID, Code: v.Code, AccountID: v.AccountID, CreatedAt: v.CreatedAt}
	if _, err := r.collection.InsertOne(r.scope(ctx), doc); err != nil {
		return fmt.Errorf("insert verification: %w", err)
	}
	r.onRollback(func(ctx context.Context) error {
		if _, err := r.collection.DeleteOne(ctx, bson.M{"_id": doc.ID}); err != nil {
			return fmt.Errorf("deshacer insert verification %s: %w", doc.ID, err)
		}
		return nil
	})
	return nil
}

// GetByCode busca el código y carga su cuenta.
func (r *VerificationRepo) GetByCode(ctx context.Context, code string) (*entity.Verification, error) {
	var d verificationDoc
	err := r.collection.FindOne(r.scope(ctx), bson.M{"code": code}).Decode(&d)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("find verification: %w", err)
	}
	acc, err := r.accounts.GetByID(ctx, d.AccountID)
	if err != nil {
		return nil, err
	}
	return &entity.Verification{
		ID:        d.ID,
		Code:      d.Code,
		AccountID: d.AccountID,
		Account:   acc,
		CreatedAt: d.CreatedAt,
	}, nil
}

// Delete elimina por ID; DeletedCount decide quién canjeó primero.
func (r *VerificationRepo) Delete(ctx context.Context, id string) (bool, error) {
	if r.compensating() {
		var d verificationDoc
		err := r.collection.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&d)
		if errors.Is(err, mongo.ErrNoDocuments) {
			return false, nil
		}
		if err != nil {
			return false, fmt.Errorf("delete verification: %w", err)
		}
		r.restoreOnRollback([]verificationDoc{d})
		return true, nil
	}
	res, err := r.collection.DeleteOne(r.scope(ctx), bson.M{"_id": id})
	if err != nil {
		return false, fmt.Errorf("delete verification: %w", err)
	}
	return res.DeletedCount > 0, nil
}

// DeleteByAccount elimina los códigos pendientes de la cuenta.
func (r *VerificationRepo) DeleteByAccount(ctx context.Context, accountID string) (int64, error) {
	filter := bson.M{"account_id": accountID}
	var docs []verificationDoc
	if r.compensating() {
		cur, err := r.collection.Find(ctx, filter)
		if err != nil {
			return 0, fmt.Errorf("leer verifications previas: %w", err)
		}
		if err := cur.All(ctx, &docs); err != nil {
			return 0, fmt.Errorf("leer verifications previas: %w", err)
		}
		ids := make([]string, 0, len(docs))
		for _, d := range docs {
			ids = append(ids, d.ID)
		}
		// Solo se borra lo que se leyó: es lo único que se sabe restaurar.
		filter = bson.M{"_id": bson.M{"$in": ids}}
	}
	res, err := r.collection.DeleteMany(r.scope(ctx), filter)
	if err != nil {
		return 0, fmt.Errorf("delete verifications by account: %w", err)
	}
	r.restoreOnRollback(docs)
	return res.DeletedCount, nil
}

// restoreOnRollback vuelve a insertar los códigos borrados si la unidad se deshace.
func (r *VerificationRepo) restoreOnRollback(docs []verificationDoc) {
	if len(docs) == 0 {
		return
	}
	r.onRollback(func(ctx context.Context) error {
		batch := make([]interface{}, len(docs))
		for i, d := range docs {
			batch[i] = d
		}
		_, err := r.collection.InsertMany(ctx, batch, options.InsertMany().SetOrdered(false))
		if err != nil && !mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("deshacer delete verifications: %w", err)
		}
		return nil
	})
}
