package app

import (
	"aroundyou/internal/config"
	"aroundyou/internal/repositories"

	"gorm.io/gorm"
)

// Store is the backend the dashboards read from and write to.
type Store struct {
	Users    repositories.UserRepository
	Shops    repositories.ShopRepository
	Products repositories.ProductRepository
	Orders   repositories.OrderRepository

	db *gorm.DB
}

// OpenStore opens the store named by cfg.StoreDriver. Relational stores are
// migrated before use.
func OpenStore(cfg *config.Config) (*Store, error) {
	if cfg.StoreDriver == "memory" {
		shops := repositories.NewMockShopRepository()
		products := repositories.NewMockProductRepository(shops)
		return &Store{
			Users:    repositories.NewMockUserRepository(),
			Shops:    shops,
			Products: products,
			Orders:   repositories.NewMockOrderRepository(shops, products),
		}, nil
	}

	db, err := repositories.OpenDB(cfg.StoreDriver, cfg.DatabaseDSN)
	if err != nil {
		return nil, err
	}
	if err := repositories.Migrate(db); err != nil {
		return nil, err
	}
	return &Store{
		Users:    repositories.NewGORMUserRepository(db),
		Shops:    repositories.NewGORMShopRepository(db),
		Products: repositories.NewGORMProductRepository(db),
		Orders:   repositories.NewGORMOrderRepository(db),
		db:       db,
	}, nil
}

// Close releases the database connection, if any.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
