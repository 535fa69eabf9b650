package apiclient

import (
	"context"
	"errors"
	"intranet/internal/api"
	"intranet/internal/backends/memory"
	"intranet/internal/ports"
	"intranet/internal/types"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/suite"
)

var _ ports.ClientAPI = (*Client)(nil)

type ClientTestSuite struct {
	suite.Suite

	ctx    context.Context
	server *httptest.Server
	client *Client
}

func (s *ClientTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.server = httptest.NewServer(api.NewHandler(memory.NewClientStore(), nil).Router())
	var err error
	s.client, err = New(s.server.URL+"/clients/", s.server.Client())
	s.Require().NoError(err)
}

func (s *ClientTestSuite) TearDownTest() {
	s.server.Close()
}

func TestClientTestSuite(t *testing.T) {
	suite.Run(t, new(ClientTestSuite))
}

func fields(id string) map[string]any {
	return map[string]any{
		"client_id":  id,
		"first_name": "Carol",
		"last_name":  "White",
		"phone":      "+34111222333",
		"email":      "carol@example.com",
	}
}

func (s *ClientTestSuite) TestCreateAndGet() {
	rec, err := s.client.Create(s.ctx, fields("c3"))
	s.NoError(err)
	s.Equal("c3", rec.ClientID)

	got, err := s.client.Get(s.ctx, "c3")
	s.NoError(err)
	s.Equal(rec, got)
}

func (s *ClientTestSuite) TestDuplicate() {
	_, err := s.client.Create(s.ctx, fields("c2"))
	s.NoError(err)

	_, err = s.client.Create(s.ctx, fields("c2"))
	s.ErrorIs(err, types.ErrAlreadyExists)

	var se *StatusError
	s.Require().True(errors.As(err, &se))
	s.Equal(http.StatusBadRequest, se.StatusCode)
	s.Equal("Client ID already exists.", se.Detail)
}

func (s *ClientTestSuite) TestNotFound() {
	_, err := s.client.Get(s.ctx, "unknown")
	s.ErrorIs(err, types.ErrNotFound)

	var se *StatusError
	s.Require().True(errors.As(err, &se))
	s.Equal("Client not found.", se.Detail)
}

func (s *ClientTestSuite) TestValidationFailure() {
	in := fields("c5")
	in["email"] = "not-an-email"
	_, err := s.client.Create(s.ctx, in)
	s.ErrorIs(err, types.ErrInvalidClientRecord)

	var se *StatusError
	s.Require().True(errors.As(err, &se))
	s.Equal(http.StatusUnprocessableEntity, se.StatusCode)
	s.Contains(se.Detail, "body.email: value is not a valid email address")
}

func (s *ClientTestSuite) TestIDIsPathEscaped() {
	_, err := s.client.Create(s.ctx, fields("a b/c"))
	s.NoError(err)

	got, err := s.client.Get(s.ctx, "a b/c")
	s.NoError(err)
	s.Equal("a b/c", got.ClientID)
}

func (s *ClientTestSuite) TestUpstreamError() {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	}))
	defer srv.Close()

	c, err := New(srv.URL+"/clients", nil)
	s.Require().NoError(err)
	s.Equal(srv.URL+"/clients/", c.BaseURL())

	_, err = c.Get(s.ctx, "x")
	s.ErrorIs(err, types.ErrUpstream)
	s.Contains(err.Error(), "bad gateway")
}

func (s *ClientTestSuite) TestInvalidBaseURL() {
	for _, u := range []string{"", "localhost:6500/clients/", "ftp://host/clients/", "http:///clients/"} {
		_, err := New(u, nil)
		s.Error(err, u)
	}
}
