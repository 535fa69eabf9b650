package flow

import (
	"errors"
	"intranet/internal/types"
)

func (s *UnitTestSuite) TestCreateClientStoresValidInput() {
	rec, outcome, err := CreateClient(s.ctx, s.clientStore, validInput("c1", "Alice"))
	s.NoError(err)
	s.Equal(Created, outcome)
	s.Equal("c1", rec.ClientID)
	s.Equal("Alice", rec.FirstName)

	got, outcome, err := GetClient(s.ctx, s.clientStore, "c1")
	s.NoError(err)
	s.Equal(Found, outcome)
	s.Equal(rec, got)
}

func (s *UnitTestSuite) TestCreateClientInvalidEmailStoresNothing() {
	in := validInput("c5", "Eve")
	in["email"] = "not-an-email"

	_, outcome, err := CreateClient(s.ctx, s.clientStore, in)
	s.Error(err)
	s.Equal(Invalid, outcome)
	s.ErrorIs(err, types.ErrInvalidClientRecord)

	var ve *types.ValidationError
	s.True(errors.As(err, &ve))
	s.Equal("email", ve.Field)
	s.Equal(0, s.clientStore.Len())
}

func (s *UnitTestSuite) TestCreateClientDuplicate() {
	_, _, err := CreateClient(s.ctx, s.clientStore, validInput("c2", "Bob"))
	s.NoError(err)

	_, outcome, err := CreateClient(s.ctx, s.clientStore, validInput("c2", "Robert"))
	s.ErrorIs(err, types.ErrAlreadyExists)
	s.Equal(Duplicate, outcome)

	got, _, err := GetClient(s.ctx, s.clientStore, "c2")
	s.NoError(err)
	s.Equal("Bob", got.FirstName)
}

func (s *UnitTestSuite) TestGetClientNotFound() {
	_, outcome, err := GetClient(s.ctx, s.clientStore, "unknown")
	s.ErrorIs(err, types.ErrNotFound)
	s.Equal(NotFound, outcome)

	_, outcome, err = GetClient(s.ctx, s.clientStore, "")
	s.ErrorIs(err, types.ErrNotFound)
	s.Equal(NotFound, outcome)
}

func (s *UnitTestSuite) TestOutcomeText() {
	s.Equal("duplicate", Duplicate.String())
	s.Equal("not_found", NotFound.String())
}
