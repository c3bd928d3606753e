package domain

import (
	"fmt"
)

// EntityKind names one of the entity collections
type EntityKind string

const (
	KindCard  EntityKind = "cards"
	KindFund  EntityKind = "funds"
	KindOther EntityKind = "others"
)

// Entity field names accepted by SetField
const (
	FieldName   = "name"
	FieldLimit  = "limit"
	FieldMoney  = "money"
	FieldDebt   = "debt"
	FieldAmount = "amount"
)

// ParseEntityKind validates a collection name
func ParseEntityKind(s string) (EntityKind, error) {
	switch EntityKind(s) {
	case KindCard, KindFund, KindOther:
		return EntityKind(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
}

// Card represents a credit card tracked on the dashboard
type Card struct {
	ID    ID     `json:"id"`
	Name  string `json:"name"`
	Limit Amount `json:"limit"`
	Money Amount `json:"money"` // cash held on or behind the card
	Debt  Amount `json:"debt"`
}

// NewCard returns a card with creation defaults and a fresh ID
func NewCard() Card {
	return Card{ID: NewID(), Name: "New Card"}
}

// SetField replaces a single field. Monetary fields are coerced, never rejected.
func (c *Card) SetField(field, value string) error {
	switch field {
	case FieldName:
		c.Name = value
	case FieldLimit:
		c.Limit = NewAmount(ParseAmount(value))
	case FieldMoney:
		c.Money = NewAmount(ParseAmount(value))
	case FieldDebt:
		c.Debt = NewAmount(ParseAmount(value))
	default:
		return fmt.Errorf("%w: card has no field %q", ErrUnknownField, field)
	}
	return nil
}

// Fund represents a liquid cash or asset account
type Fund struct {
	ID     ID     `json:"id"`
	Name   string `json:"name"`
	Amount Amount `json:"amount"`
}

// NewFund returns a fund with creation defaults and a fresh ID
func NewFund() Fund {
	return Fund{ID: NewID(), Name: "New Account"}
}

// SetField replaces a single field
func (f *Fund) SetField(field, value string) error {
	switch field {
	case FieldName:
		f.Name = value
	case FieldAmount:
		f.Amount = NewAmount(ParseAmount(value))
	default:
		return fmt.Errorf("%w: fund has no field %q", ErrUnknownField, field)
	}
	return nil
}

// RecurringPayment represents a recurring liability that is not a card (rent, tuition...)
type RecurringPayment struct {
	ID     ID     `json:"id"`
	Name   string `json:"name"`
	Amount Amount `json:"amount"`
}

// NewRecurringPayment returns a payment with creation defaults and a fresh ID
func NewRecurringPayment() RecurringPayment {
	return RecurringPayment{ID: NewID(), Name: "New Payment"}
}

// SetField replaces a single field
func (p *RecurringPayment) SetField(field, value string) error {
	switch field {
	case FieldName:
		p.Name = value
	case FieldAmount:
		p.Amount = NewAmount(ParseAmount(value))
	default:
		return fmt.Errorf("%w: payment has no field %q", ErrUnknownField, field)
	}
	return nil
}

// Entity is implemented by pointers to every record kind
type Entity interface {
	EntityID() ID
	SetField(field, value string) error
}

// EntityID returns the record id
func (c *Card) EntityID() ID { return c.ID }

// EntityID returns the record id
func (f *Fund) EntityID() ID { return f.ID }

// EntityID returns the record id
func (p *RecurringPayment) EntityID() ID { return p.ID }
