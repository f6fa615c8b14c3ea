package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/jhoicas/delivery-accounts/internal/application/account"
	"github.com/jhoicas/delivery-accounts/internal/domain/repository"
)

var _ account.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta unidades de trabajo sobre Mongo.
//
// Con replica set o mongos usa una transacción multi-documento (session.WithTransaction).
// En un servidor standalone no hay transacciones: cada escritura registra su compensación
// y, si fn falla, se deshacen en orden inverso.
type TxRunner struct {
	client        *mongo.Client
	db            *mongo.Database
	transactional bool
}

// NewTxRunner construye el runner. transactional se obtiene con SupportsTransactions.
func NewTxRunner(client *mongo.Client, db *mongo.Database, transactional bool) *TxRunner {
	return &TxRunner{client: client, db: db, transactional: transactional}
}

// Run ejecuta fn dentro de la unidad de trabajo. Con transacciones, fn puede
// reintentarse ante errores transitorios del servidor.
func (r *TxRunner) Run(ctx context.Context, fn func(
	accounts repository.AccountRepository,
	verifications repository.VerificationRepository,
) error) error {
	if r.transactional {
		return r.runInTransaction(ctx, fn)
	}

	u := unit{undo: &undoLog{}}
	if err := fn(newAccountRepo(r.db, u), newVerificationRepo(r.db, u)); err != nil {
		if uerr := u.undo.rollback(context.WithoutCancel(ctx)); uerr != nil {
			return errors.Join(err, fmt.Errorf("compensar escrituras: %w", uerr))
		}
		return err
	}
	return nil
}

func (r *TxRunner) runInTransaction(ctx context.Context, fn func(
	accounts repository.AccountRepository,
	verifications repository.VerificationRepository,
) error) error {
	sess, err := r.client.StartSession()
	if err != nil {
		return fmt.Errorf("iniciar sesión mongo: %w", err)
	}
	defer sess.EndSession(context.WithoutCancel(ctx))

	u := unit{session: sess}
	_, err = sess.WithTransaction(ctx, func(mongo.SessionContext) (interface{}, error) {
		return nil, fn(newAccountRepo(r.db, u), newVerificationRepo(r.db, u))
	})
	return err
}

// unit ata un repositorio a la unidad de trabajo en curso. El valor cero es "sin unidad".
type unit struct {
	session mongo.Session
	undo    *undoLog
}

// scope devuelve el contexto con el que debe ejecutarse cada operación.
func (u unit) scope(ctx context.Context) context.Context {
	if u.session == nil {
		return ctx
	}
	return mongo.NewSessionContext(ctx, u.session)
}

// compensating indica si las escrituras deben registrar cómo deshacerse.
func (u unit) compensating() bool { return u.undo != nil }

func (u unit) onRollback(step func(context.Context) error) {
	if u.undo != nil {
		u.undo.push(step)
	}
}

// undoLog pila de compensaciones de una unidad de trabajo sin transacción.
type undoLog struct {
	steps []func(context.Context) error
}

func (l *undoLog) push(step func(context.Context) error) {
	l.steps = append(l.steps, step)
}

// rollback ejecuta todas las compensaciones, de la última a la primera, aunque alguna falle.
func (l *undoLog) rollback(ctx context.Context) error {
	var errs []error
	for i := len(l.steps) - 1; i >= 0; i-- {
		if err := l.steps[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	l.steps = nil
	return errors.Join(errs...)
}
