package memory

import (
	"context"
	"fmt"
	"intranet/internal/types"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/suite"
)

type ClientStoreTestSuite struct {
	suite.Suite

	ctx   context.Context
	store *ClientStore
}

func (s *ClientStoreTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = NewClientStore()
}

func TestClientStoreTestSuite(t *testing.T) {
	suite.Run(t, new(ClientStoreTestSuite))
}

func record(id, first string) types.ClientRecord {
	return types.ClientRecord{
		ClientID:  id,
		FirstName: first,
		LastName:  "White",
		Phone:     "+34111222333",
		Email:     "carol@example.com",
	}
}

func (s *ClientStoreTestSuite) TestCreateThenGet() {
	in := record("c3", "Carol")
	out, err := s.store.Create(s.ctx, in)
	s.NoError(err)
	s.Equal(in, out)

	got, err := s.store.Get(s.ctx, "c3")
	s.NoError(err)
	s.Equal("Carol", got.FirstName)

	// reads do not mutate
	again, err := s.store.Get(s.ctx, "c3")
	s.NoError(err)
	s.Equal(got, again)
	s.Equal(1, s.store.Len())
}

func (s *ClientStoreTestSuite) TestCreateDuplicateLeavesRecordUnchanged() {
	_, err := s.store.Create(s.ctx, record("c2", "Bob"))
	s.NoError(err)

	_, err = s.store.Create(s.ctx, record("c2", "Mallory"))
	s.ErrorIs(err, types.ErrAlreadyExists)

	got, err := s.store.Get(s.ctx, "c2")
	s.NoError(err)
	s.Equal("Bob", got.FirstName)
	s.Equal(1, s.store.Len())
}

func (s *ClientStoreTestSuite) TestGetNotFound() {
	_, err := s.store.Get(s.ctx, "unknown")
	s.ErrorIs(err, types.ErrNotFound)
}

func (s *ClientStoreTestSuite) TestCreateRejectsInvalidRecord() {
	bad := record("c4", "")
	_, err := s.store.Create(s.ctx, bad)
	s.ErrorIs(err, types.ErrInvalidClientRecord)
	s.Equal(0, s.store.Len())
}

func (s *ClientStoreTestSuite) TestConcurrentCreateSameID() {
	const workers = 64
	var (
		wg        sync.WaitGroup
		succeeded atomic.Int32
		dupes     atomic.Int32
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := s.store.Create(s.ctx, record("same", fmt.Sprintf("Name%d", i)))
			if err == nil {
				succeeded.Add(1)
				return
			}
			if s.ErrorIs(err, types.ErrAlreadyExists) {
				dupes.Add(1)
			}
		}(i)
	}
	wg.Wait()
	s.Equal(int32(1), succeeded.Load())
	s.Equal(int32(workers-1), dupes.Load())
	s.Equal(1, s.store.Len())
}

func (s *ClientStoreTestSuite) TestIndependentInstances() {
	_, err := s.store.Create(s.ctx, record("c1", "Alice"))
	s.NoError(err)

	other := NewClientStore()
	_, err = other.Get(s.ctx, "c1")
	s.ErrorIs(err, types.ErrNotFound)
}
