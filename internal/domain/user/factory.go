package user

import (
	"strconv"
	"sync/atomic"
)

// Factory creates new users and owns ID generation
type Factory interface {
	Create(name UserName, mailAddress MailAddress) (*User, error)
}

// UUIDFactory assigns random UUIDs
type UUIDFactory struct{}

func NewUUIDFactory() *UUIDFactory {
	return &UUIDFactory{}
}

func (f *UUIDFactory) Create(name UserName, mailAddress MailAddress) (*User, error) {
	return NewUser(GenerateUserID(), name, mailAddress)
}

// SequenceFactory assigns increasing numeric IDs starting at 1
type SequenceFactory struct {
	current atomic.Int64
}

func NewSequenceFactory() *SequenceFactory {
	return &SequenceFactory{}
}

func (f *SequenceFactory) Create(name UserName, mailAddress MailAddress) (*User, error) {
	id, err := NewUserID(strconv.FormatInt(f.current.Add(1), 10))
	if err != nil {
		return nil, err
	}
	return NewUser(id, name, mailAddress)
}
