package entity

import (
	"context"
	"fmt"

	"github.com/simaogato/finance-dashboard/internal/domain"
	"github.com/simaogato/finance-dashboard/internal/usecase/state"
)

// EntityService handles CRUD on cards, funds and recurring payments
type EntityService struct {
	Store *state.Store
}

// NewEntityService creates a new EntityService instance
func NewEntityService(store *state.Store) *EntityService {
	return &EntityService{
		Store: store,
	}
}

// Add creates a record of the given kind with its creation defaults and a fresh id.
// New records are appended to the end of their collection.
func (s *EntityService) Add(ctx context.Context, kind domain.EntityKind) (domain.Entity, error) {
	var created domain.Entity

	err := s.Store.Update(func(st *domain.State) error {
		switch kind {
		case domain.KindCard:
			card := domain.NewCard()
			st.Cards = append(st.Cards, card)
			created = &card
		case domain.KindFund:
			fund := domain.NewFund()
			st.Funds = append(st.Funds, fund)
			created = &fund
		case domain.KindOther:
			payment := domain.NewRecurringPayment()
			st.Others = append(st.Others, payment)
			created = &payment
		default:
			return fmt.Errorf("%w: %q", domain.ErrUnknownKind, kind)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}

// Update replaces exactly one field on one record
// Logic:
//  1. Reject fields the kind does not have, even when the id is unknown
//  2. Locate the record by id; an unknown id is a no-op
//  3. Monetary fields are coerced to numbers, name is stored verbatim
func (s *EntityService) Update(ctx context.Context, kind domain.EntityKind, id domain.ID, field, value string) error {
	return s.Store.Update(func(st *domain.State) error {
		switch kind {
		case domain.KindCard:
			return updateIn(st.Cards, id, field, value)
		case domain.KindFund:
			return updateIn(st.Funds, id, field, value)
		case domain.KindOther:
			return updateIn(st.Others, id, field, value)
		default:
			return fmt.Errorf("%w: %q", domain.ErrUnknownKind, kind)
		}
	})
}

// Remove deletes the record with the given id. Removing an absent id is not an error.
func (s *EntityService) Remove(ctx context.Context, kind domain.EntityKind, id domain.ID) error {
	return s.Store.Update(func(st *domain.State) error {
		switch kind {
		case domain.KindCard:
			st.Cards = removeFrom(st.Cards, id)
		case domain.KindFund:
			st.Funds = removeFrom(st.Funds, id)
		case domain.KindOther:
			st.Others = removeFrom(st.Others, id)
		default:
			return fmt.Errorf("%w: %q", domain.ErrUnknownKind, kind)
		}
		return nil
	})
}

// List returns a copy of every record of a kind in storage order
func (s *EntityService) List(ctx context.Context, kind domain.EntityKind) ([]domain.Entity, error) {
	st := s.Store.Snapshot()

	switch kind {
	case domain.KindCard:
		return asEntities(st.Cards), nil
	case domain.KindFund:
		return asEntities(st.Funds), nil
	case domain.KindOther:
		return asEntities(st.Others), nil
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownKind, kind)
	}
}

// record constrains T so that *T is a domain.Entity
type record[T any] interface {
	*T
	domain.Entity
}

func updateIn[T any, P record[T]](items []T, id domain.ID, field, value string) error {
	var probe T
	if err := P(&probe).SetField(field, value); err != nil {
		return err
	}

	for i := range items {
		item := P(&items[i])
		if item.EntityID() == id {
			return item.SetField(field, value)
		}
	}
	return nil
}

func removeFrom[T any, P record[T]](items []T, id domain.ID) []T {
	kept := items[:0]
	for i := range items {
		if P(&items[i]).EntityID() != id {
			kept = append(kept, items[i])
		}
	}
	return kept
}

func asEntities[T any, P record[T]](items []T) []domain.Entity {
	out := make([]domain.Entity, 0, len(items))
	for i := range items {
		out = append(out, P(&items[i]))
	}
	return out
}
