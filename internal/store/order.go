package store

import (
	"time"

	"github.com/Alp4ka/keysetpager"
)

// Order is the entity served by the reference list endpoint.
type Order struct {
	ID          int64     `json:"id" gorm:"primaryKey;autoIncrement:false" bson:"_id"`
	Reference   string    `json:"reference" gorm:"size:36" bson:"reference"`
	Customer    string    `json:"customer" gorm:"size:128;index" bson:"customer"`
	Status      string    `json:"status" gorm:"size:32;index" bson:"status"`
	AmountCents int64     `json:"amountCents" bson:"amount_cents"`
	CreatedAt   time.Time `json:"createdAt" gorm:"autoCreateTime:false" bson:"created_at"`
}

func (Order) TableName() string {
	return "orders"
}

// Column names of the orders table. MongoDB stores the id as "_id".
const (
	ColumnID          = "id"
	ColumnMongoID     = "_id"
	ColumnCustomer    = "customer"
	ColumnStatus      = "status"
	ColumnAmountCents = "amount_cents"
	ColumnCreatedAt   = "created_at"
)

// schema binds API sort aliases and pager fields to the column names of one
// backend.
type schema struct {
	mapping keysetpager.ColumnMapping
	fields  keysetpager.Fields[Order]
	idCol   string
}

func newSchema(idColumn string) schema {
	return schema{
		idCol: idColumn,
		mapping: keysetpager.ColumnMapping{
			"id":        idColumn,
			"customer":  ColumnCustomer,
			"status":    ColumnStatus,
			"amount":    ColumnAmountCents,
			"createdAt": ColumnCreatedAt,
		},
		fields: keysetpager.Fields[Order]{
			idColumn:          keysetpager.OrderedField(func(o Order) int64 { return o.ID }),
			ColumnCustomer:    keysetpager.OrderedField(func(o Order) string { return o.Customer }),
			ColumnStatus:      keysetpager.OrderedField(func(o Order) string { return o.Status }),
			ColumnAmountCents: keysetpager.OrderedField(func(o Order) int64 { return o.AmountCents }),
			ColumnCreatedAt:   keysetpager.TimeField(func(o Order) time.Time { return o.CreatedAt }),
		},
	}
}

// defaultSort lists the newest orders first; id breaks ties.
func (s schema) defaultSort() keysetpager.Orderings {
	return keysetpager.Orderings{
		keysetpager.Desc(ColumnCreatedAt),
		keysetpager.Asc(s.idCol),
	}
}
