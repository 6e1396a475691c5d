package usecase

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
)

// Transaction runs a sequence of calls against independent collaborators.
// When step i fails, the compensations registered for steps 0..i-1 run in
// reverse order. Compensation i pairs with operation i.
type Transaction struct {
	operations    []Operation
	compensations []Compensation
}

type Operation struct {
	Name string
	Fn   func(context.Context) error
}

type Compensation struct {
	Name string
	Fn   func(context.Context) error
}

func NewTransaction() *Transaction {
	return &Transaction{
		operations:    []Operation{},
		compensations: []Compensation{},
	}
}

func (t *Transaction) AddOperation(name string, fn func(context.Context) error) {
	t.operations = append(t.operations, Operation{name, fn})
}

func (t *Transaction) AddCompensation(name string, fn func(context.Context) error) {
	t.compensations = append(t.compensations, Compensation{name, fn})
}

func (t *Transaction) Execute(ctx context.Context) error {
	for i, op := range t.operations {
		if err := op.Fn(ctx); err != nil {
			t.rollback(ctx, i)
			return fmt.Errorf("operation '%s' failed: %w (rolled back %d operations)", op.Name, err, i)
		}
	}
	return nil
}

func (t *Transaction) rollback(ctx context.Context, failedAtIndex int) {
	for i := failedAtIndex - 1; i >= 0; i-- {
		if i >= len(t.compensations) {
			continue
		}
		comp := t.compensations[i]
		if err := comp.Fn(ctx); err != nil {
			log.Error().Err(err).Str("compensation", comp.Name).Msg("compensation failed, manual cleanup required")
		}
	}
}
