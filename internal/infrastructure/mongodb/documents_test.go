package mongodb

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/jhoicas/delivery-accounts/internal/domain/entity"
)

func TestAccountDoc_BSON(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Millisecond)
	acc := &entity.Account{
		ID: "id-1", Email: "a@b.com", PasswordHash: "h", Role: entity.RoleDelivery,
		Verified: true, CreatedAt: now, UpdatedAt: now,
	}

	raw, err := bson.Marshal(accountDocFrom(acc))
	require.NoError(t, err)

	var m bson.M
	require.NoError(t, bson.Unmarshal(raw, &m))
	assert.Equal(t, "id-1", m["_id"])
	assert.Equal(t, "a@b.com", m["email"])
	assert.Equal(t, "delivery", m["role"])
	assert.NotContains(t, m, "password", "el hash se guarda solo como password_hash")

	var back accountDoc
	require.NoError(t, bson.Unmarshal(raw, &back))
	assert.Equal(t, acc, back.toEntity())
}

func TestHelloReply_Transactional(t *testing.T) {
	tests := []struct {
		name  string
		reply bson.M
		want  bool
	}{
		{"standalone", bson.M{"isWritablePrimary": true}, false},
		{"replica set", bson.M{"isWritablePrimary": true, "setName": "rs0"}, true},
		{"mongos", bson.M{"msg": "isdbgrid"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, err := bson.Marshal(tt.reply)
			require.NoError(t, err)
			var h helloReply
			require.NoError(t, bson.Unmarshal(raw, &h))
			assert.Equal(t, tt.want, h.transactional())
		})
	}
}

func TestUndoLog_DeshaceEnOrdenInverso(t *testing.T) {
	var order []string
	log := &undoLog{}
	log.push(func(context.Context) error { order = append(order, "insert account"); return nil })
	log.push(func(context.Context) error {
		order = append(order, "delete verifications")
		return errors.New("red caída")
	})
	log.push(func(context.Context) error { order = append(order, "insert verification"); return nil })

	err := log.rollback(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "red caída")
	assert.Equal(t, []string{"insert verification", "delete verifications", "insert account"}, order,
		"un paso fallido no impide los siguientes")

	assert.NoError(t, log.rollback(context.Background()), "una pila ya deshecha queda vacía")
	assert.Len(t, order, 3)
}

func TestUnit_SinUnidadNoRegistraCompensaciones(t *testing.T) {
	var zero unit
	assert.False(t, zero.compensating())
	zero.onRollback(func(context.Context) error { t.Fatal("no debe registrarse"); return nil })

	ctx := context.Background()
	assert.Equal(t, ctx, zero.scope(ctx))

	u := unit{undo: &undoLog{}}
	assert.True(t, u.compensating())
	u.onRollback(func(context.Context) error { return nil })
	assert.Len(t, u.undo.steps, 1)
}
