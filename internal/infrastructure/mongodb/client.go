// Package mongodb implementa los repositorios sobre MongoDB.
package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jhoicas/delivery-accounts/pkg/config"
)

// Nombres de colecciones.
const (
	accountsCollection      = "accounts"
	verificationsCollection = "verifications"
)

// Connect abre el cliente, verifica la conexión y devuelve la base configurada.
func Connect(ctx context.Context, cfg config.MongoConfig) (*mongo.Client, *mongo.Database, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, nil, fmt.Errorf("conectar mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("ping mongo: %w", err)
	}
	return client, client.Database(cfg.Database), nil
}

// EnsureIndexes crea los índices únicos de los que depende la unicidad de email y código.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(accountsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("accounts_email_key"),
	})
	if err != nil {
		return fmt.Errorf("índice accounts.email: %w", err)
	}
	_, err = db.Collection(verificationsCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "code", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("verifications_code_key"),
		},
		{
			Keys:    bson.D{{Key: "account_id", Value: 1}},
			Options: options.Index().SetName("verifications_account_id_idx"),
		},
	})
	if err != nil {
		return fmt.Errorf("índices verifications: %w", err)
	}
	return nil
}

// helloReply campos de la respuesta a "hello" que describen la topología.
type helloReply struct {
	SetName string `bson:"setName"`
	Msg     string `bson:"msg"`
}

// transactional: replica set (setName) o mongos ("isdbgrid").
func (h helloReply) transactional() bool {
	return h.SetName != "" || h.Msg == "isdbgrid"
}

// SupportsTransactions consulta al servidor si admite transacciones multi-documento.
func SupportsTransactions(ctx context.Context, db *mongo.Database) (bool, error) {
	var reply helloReply
	if err := db.RunCommand(ctx, bson.D{{Key: "hello", Value: 1}}).Decode(&reply); err != nil {
		return false, fmt.Errorf("hello mongo: %w", err)
	}
	return reply.transactional(), nil
}
