package services

import (
	"github.com/bid2ship/bid2ship/internal/auth"
	"github.com/bid2ship/bid2ship/internal/repository"
)

type testRepos struct {
	users     *repository.MemoryUserRepository
	shipments *repository.MemoryShipmentRepository
	bids      *repository.MemoryBidRepository
}

func newTestEnv() (*testRepos, *ShipmentService, *BidService) {
	store := repository.NewMemoryStore()
	repos := &testRepos{
		users:     repository.NewMemoryUserRepository(store),
		shipments: repository.NewMemoryShipmentRepository(store),
		bids:      repository.NewMemoryBidRepository(store),
	}
	return repos, NewShipmentService(repos.shipments, repos.bids), NewBidService(repos.bids)
}

func newUserService() *UserService {
	repos, _, _ := newTestEnv()
	return NewUserService(repos.users, auth.NewAuthenticator(repos.users))
}
