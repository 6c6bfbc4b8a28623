package models

import (
	"bytes"
	"encoding/json"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Item struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Description  []string           `bson:"description" json:"description"`
	PhotoURL     string             `bson:"photoUrl" json:"photoUrl"`
	QtyTotal     int                `bson:"qtyTotal" json:"qtyTotal"`
	QtyAvailable int                `bson:"qtyAvailable" json:"qtyAvailable"`
	IsActive     bool               `bson:"isActive" json:"isActive"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Lines is a description body. It decodes from either a JSON string or an
// array of strings; null leaves it nil.
type Lines []string

func (l *Lines) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*l = nil
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*l = Lines{s}
		return nil
	}
	var lines []string
	if err := json.Unmarshal(data, &lines); err != nil {
		return err
	}
	if lines == nil {
		lines = []string{}
	}
	*l = lines
	return nil
}

// CreateItemInput is the body of an item create request. Quantities accept
// JSON numbers or numeric strings.
type CreateItemInput struct {
	Name         string       `json:"name"`
	Description  Lines        `json:"description"`
	PhotoURL     *string      `json:"photoUrl"`
	QtyTotal     *json.Number `json:"qtyTotal"`
	QtyAvailable *json.Number `json:"qtyAvailable"`
	IsActive     *bool        `json:"isActive"`
}

// ItemPatch is a partial item update. A nil field was not supplied.
type ItemPatch struct {
	Name         *string      `json:"name"`
	Description  Lines        `json:"description"`
	PhotoURL     *string      `json:"photoUrl"`
	QtyTotal     *json.Number `json:"qtyTotal"`
	QtyAvailable *json.Number `json:"qtyAvailable"`
	IsActive     *bool        `json:"isActive"`
}

// TouchesQuantity reports whether the patch supplies either quantity.
func (p ItemPatch) TouchesQuantity() bool {
	return p.QtyTotal != nil || p.QtyAvailable != nil
}

// ItemUpdate is a validated, normalized item change set. Nil fields are
// left as stored.
type ItemUpdate struct {
	Name         *string
	Description  []string
	PhotoURL     *string
	QtyTotal     *int
	QtyAvailable *int
	IsActive     *bool
}
