package domain

import (
	"errors"
	"time"
)

// BloodGroup is one of the eight ABO/Rh combinations.
type BloodGroup string

const (
	BloodAPos  BloodGroup = "A+"
	BloodANeg  BloodGroup = "A-"
	BloodBPos  BloodGroup = "B+"
	BloodBNeg  BloodGroup = "B-"
	BloodABPos BloodGroup = "AB+"
	BloodABNeg BloodGroup = "AB-"
	BloodOPos  BloodGroup = "O+"
	BloodONeg  BloodGroup = "O-"
)

var bloodGroups = map[BloodGroup]struct{}{
	BloodAPos: {}, BloodANeg: {},
	BloodBPos: {}, BloodBNeg: {},
	BloodABPos: {}, BloodABNeg: {},
	BloodOPos: {}, BloodONeg: {},
}

// ValidBloodGroup reports whether g is a recognized blood group.
func ValidBloodGroup(g BloodGroup) bool {
	_, ok := bloodGroups[g]
	return ok
}

var ErrBloodBankNotFound = errors.New("blood bank not found")
var ErrBloodBankExists = errors.New("blood bank already exists")
var ErrInvalidBloodGroup = errors.New("invalid blood group")

// BloodStock is the available unit count for one blood group.
type BloodStock struct {
	Group     BloodGroup `json:"group" bson:"group"`
	Available int        `json:"available" bson:"available"`
}

// BloodBank is a directory entry owned by an identity with the bloodbank role.
type BloodBank struct {
	ID        string       `json:"id" bson:"_id,omitempty"`
	OwnerID   string       `json:"owner_id" bson:"owner_id"`
	Name      string       `json:"name" bson:"name"`
	Phone     string       `json:"phone" bson:"phone"`
	Hotline   string       `json:"hotline" bson:"hotline"`
	Address   Address      `json:"address" bson:"address"`
	Position  Position     `json:"position" bson:"position"`
	Available bool         `json:"available" bson:"available"`
	Inventory []BloodStock `json:"inventory" bson:"inventory"`
	CreatedAt time.Time    `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time    `json:"updated_at" bson:"updated_at"`
}

// SetStock upserts the unit count for one blood group.
func (b *BloodBank) SetStock(group BloodGroup, available int) {
	for i := range b.Inventory {
		if b.Inventory[i].Group == group {
			b.Inventory[i].Available = available
			return
		}
	}
	b.Inventory = append(b.Inventory, BloodStock{Group: group, Available: available})
}
