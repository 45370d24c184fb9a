package user_test

import (
	"testing"
	"time"

	"circles-core/internal/domain/user"
)

func newTestUser(t *testing.T, name string) *user.User {
	t.Helper()

	userName, err := user.NewUserName(name)
	if err != nil {
		t.Fatalf("NewUserName() error = %v", err)
	}
	mail, err := user.NewMailAddress(name + "@example.com")
	if err != nil {
		t.Fatalf("NewMailAddress() error = %v", err)
	}
	usr, err := user.NewUUIDFactory().Create(userName, mail)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	return usr
}

func TestNewUser(t *testing.T) {
	usr := newTestUser(t, "naruse")

	if usr.ID().IsZero() {
		t.Error("factory should assign an id")
	}
	if usr.Name().String() != "naruse" {
		t.Errorf("Name = %v, want naruse", usr.Name().String())
	}
	if usr.IsPremium() {
		t.Error("new users are not premium")
	}

	evts := usr.PullEvents()
	if len(evts) != 1 || evts[0].EventType() != user.EventTypeUserRegistered {
		t.Errorf("expected a single %s event, got %v", user.EventTypeUserRegistered, evts)
	}
}

func TestNewUserRequiresFields(t *testing.T) {
	name, _ := user.NewUserName("naruse")
	mail, _ := user.NewMailAddress("naruse@example.com")

	if _, err := user.NewUser(user.UserID{}, name, mail); err == nil {
		t.Error("NewUser() should require an id")
	}
	if _, err := user.NewUser(user.GenerateUserID(), user.UserName{}, mail); err == nil {
		t.Error("NewUser() should require a name")
	}
	if _, err := user.NewUser(user.GenerateUserID(), name, user.MailAddress{}); err == nil {
		t.Error("NewUser() should require a mail address")
	}
}

func TestReconstitute(t *testing.T) {
	createdAt := time.Now().Add(-24 * time.Hour)
	updatedAt := time.Now()

	usr, err := user.Reconstitute("u-1", "naruse", "naruse@example.com", true, createdAt, updatedAt)
	if err != nil {
		t.Fatalf("Reconstitute() error = %v", err)
	}

	if usr.ID().String() != "u-1" {
		t.Errorf("ID = %v, want u-1", usr.ID().String())
	}
	if !usr.IsPremium() {
		t.Error("premium flag should be restored")
	}
	if !usr.CreatedAt().Equal(createdAt) {
		t.Errorf("CreatedAt = %v, want %v", usr.CreatedAt(), createdAt)
	}
	if len(usr.PullEvents()) != 0 {
		t.Error("reconstituted users must not raise events")
	}
}

func TestReconstituteInvalid(t *testing.T) {
	if _, err := user.Reconstitute("", "naruse", "naruse@example.com", false, time.Now(), time.Now()); err == nil {
		t.Error("Reconstitute() should reject an empty id")
	}
	if _, err := user.Reconstitute("u-1", "ab", "naruse@example.com", false, time.Now(), time.Now()); err == nil {
		t.Error("Reconstitute() should reject an invalid name")
	}
}

func TestChangeName(t *testing.T) {
	usr := newTestUser(t, "oldname")
	oldUpdatedAt := usr.UpdatedAt()

	time.Sleep(10 * time.Millisecond)

	if err := usr.ChangeName("newname"); err != nil {
		t.Fatalf("ChangeName() error = %v", err)
	}
	if usr.Name().String() != "newname" {
		t.Errorf("Name = %v, want newname", usr.Name().String())
	}
	if !usr.UpdatedAt().After(oldUpdatedAt) {
		t.Error("UpdatedAt should be updated after changing name")
	}
}

func TestChangeNameInvalid(t *testing.T) {
	usr := newTestUser(t, "naruse")

	if err := usr.ChangeName("ab"); err == nil {
		t.Error("ChangeName() should return error for invalid name")
	}
	if usr.Name().String() != "naruse" {
		t.Error("name must be unchanged after a failed rename")
	}
}

func TestChangeMailAddress(t *testing.T) {
	usr := newTestUser(t, "naruse")

	if err := usr.ChangeMailAddress("other@example.com"); err != nil {
		t.Fatalf("ChangeMailAddress() error = %v", err)
	}
	if usr.MailAddress().String() != "other@example.com" {
		t.Errorf("MailAddress = %v", usr.MailAddress().String())
	}
	if err := usr.ChangeMailAddress("invalid"); err == nil {
		t.Error("ChangeMailAddress() should return error for invalid address")
	}
}

func TestSetPremium(t *testing.T) {
	usr := newTestUser(t, "naruse")
	usr.PullEvents()

	usr.SetPremium(true)
	if !usr.IsPremium() {
		t.Error("user should be premium")
	}
	usr.SetPremium(true)

	evts := usr.PullEvents()
	if len(evts) != 1 {
		t.Fatalf("expected one premium event, got %d", len(evts))
	}
	if evts[0].EventType() != user.EventTypeUserPremiumChanged {
		t.Errorf("event type = %s", evts[0].EventType())
	}
}

func TestUserEquals(t *testing.T) {
	a, _ := user.Reconstitute("u-1", "naruse", "a@example.com", false, time.Now(), time.Now())
	b, _ := user.Reconstitute("u-1", "renamed", "b@example.com", true, time.Now(), time.Now())
	c, _ := user.Reconstitute("u-2", "naruse", "a@example.com", false, time.Now(), time.Now())

	if !a.Equals(b) {
		t.Error("users with the same id should be equal")
	}
	if a.Equals(c) {
		t.Error("users with different ids should not be equal")
	}
	if a.Equals(nil) {
		t.Error("a user never equals nil")
	}
}

func TestSequenceFactory(t *testing.T) {
	f := user.NewSequenceFactory()
	name, _ := user.NewUserName("naruse")
	mail, _ := user.NewMailAddress("naruse@example.com")

	first, err := f.Create(name, mail)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	second, _ := f.Create(name, mail)

	if first.ID().String() != "1" || second.ID().String() != "2" {
		t.Errorf("ids = %s, %s; want 1, 2", first.ID(), second.ID())
	}
}

type capturedUser struct {
	id, name, mail       string
	premium              bool
	createdAt, updatedAt time.Time
}

func (c *capturedUser) SetID(id user.UserID)                 { c.id = id.String() }
func (c *capturedUser) SetName(name user.UserName)           { c.name = name.String() }
func (c *capturedUser) SetMailAddress(addr user.MailAddress) { c.mail = addr.String() }
func (c *capturedUser) SetPremium(premium bool)              { c.premium = premium }
func (c *capturedUser) SetTimestamps(created, updated time.Time) {
	c.createdAt, c.updatedAt = created, updated
}

func TestNotify(t *testing.T) {
	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	updated := created.Add(time.Hour)
	usr, err := user.Reconstitute("42", "naruse", "naruse@example.com", true, created, updated)
	if err != nil {
		t.Fatalf("Reconstitute() error = %v", err)
	}

	var got capturedUser
	usr.Notify(&got)

	want := capturedUser{
		id:        "42",
		name:      "naruse",
		mail:      "naruse@example.com",
		premium:   true,
		createdAt: created,
		updatedAt: updated,
	}
	if got != want {
		t.Errorf("Notify() = %+v, want %+v", got, want)
	}
}
