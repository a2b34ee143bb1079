package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// AddressKind discriminates the delivery target of a message.
type AddressKind string

const (
	AddressCohort AddressKind = "cohort"
	AddressTeam   AddressKind = "team"
	AddressDirect AddressKind = "user"
)

var ErrInvalidAddress = errors.New("exactly one of cohort_id, team_id or to_user_id must be set")

// Address is the tagged-union form of message addressing. Constructing one
// through ParseAddress guarantees the exactly-one-target invariant; the three
// nullable columns on Message are a storage detail derived from it.
type Address struct {
	Kind AddressKind
	ID   string
}

func CohortAddress(id string) Address { return Address{Kind: AddressCohort, ID: id} }
func TeamAddress(id string) Address   { return Address{Kind: AddressTeam, ID: id} }
func DirectAddress(id string) Address { return Address{Kind: AddressDirect, ID: id} }

// ParseAddress builds an Address from the three optional request fields.
// Zero or more than one non-empty field is rejected.
func ParseAddress(cohortID, teamID, toUserID string) (Address, error) {
	var addr Address
	set := 0
	if cohortID != "" {
		addr = CohortAddress(cohortID)
		set++
	}
	if teamID != "" {
		addr = TeamAddress(teamID)
		set++
	}
	if toUserID != "" {
		addr = DirectAddress(toUserID)
		set++
	}
	if set != 1 {
		return Address{}, ErrInvalidAddress
	}
	return addr, nil
}

// RoomKey is the realtime room this address fans out to.
func (a Address) RoomKey() string {
	return string(a.Kind) + ":" + a.ID
}

func (a Address) Valid() bool {
	switch a.Kind {
	case AddressCohort, AddressTeam, AddressDirect:
		return a.ID != ""
	}
	return false
}

type Message struct {
	ID       string `json:"id" gorm:"primaryKey;size:36"`
	SenderID string `json:"sender_id" gorm:"not null;size:255;index"`

	// Exactly one of the three is non-nil; enforced by Address, not schema.
	CohortID    *string `json:"cohort_id,omitempty" gorm:"size:255;index"`
	TeamID      *string `json:"team_id,omitempty" gorm:"size:255;index"`
	RecipientID *string `json:"to_user_id,omitempty" gorm:"size:255;index"`

	Body string `json:"body" gorm:"type:text;not null"`

	CreatedAt time.Time `json:"created_at" gorm:"index"`
}

func (Message) TableName() string {
	return "messages"
}

// NewMessage builds a persisted record from tagged-union addressing.
func NewMessage(senderID string, addr Address, body string) *Message {
	m := &Message{
		ID:       uuid.New().String(),
		SenderID: senderID,
		Body:     body,
	}
	id := addr.ID
	switch addr.Kind {
	case AddressCohort:
		m.CohortID = &id
	case AddressTeam:
		m.TeamID = &id
	case AddressDirect:
		m.RecipientID = &id
	}
	return m
}

// Address re-derives the tagged union from the stored columns.
func (m *Message) Address() (Address, error) {
	var cohort, team, user string
	if m.CohortID != nil {
		cohort = *m.CohortID
	}
	if m.TeamID != nil {
		team = *m.TeamID
	}
	if m.RecipientID != nil {
		user = *m.RecipientID
	}
	return ParseAddress(cohort, team, user)
}
