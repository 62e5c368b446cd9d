package inmemdb

import (
	"context"
	"strings"

	"github.com/trezcool/edudash/core/user"
)

type userRepository struct {
	db  *DB
	tbl *table[user.User]
}

var _ user.Repository = (*userRepository)(nil) // interface compliance check

func NewUserRepository(db *DB) user.Repository {
	return &userRepository{db: db, tbl: db.user}
}

func (repo *userRepository) CreateUser(ctx context.Context, usr user.User) (user.User, error) {
	if err := repo.db.wait(ctx); err != nil {
		return user.User{}, err
	}
	repo.tbl.mu.Lock()
	defer repo.tbl.mu.Unlock()

	usr.ID = newID()
	repo.tbl.insert(usr.ID, usr)
	return usr, nil
}

func (repo *userRepository) FilterUsers(ctx context.Context, filter user.Filter) ([]user.User, error) {
	if err := repo.db.wait(ctx); err != nil {
		return nil, err
	}
	repo.tbl.mu.RLock()
	defer repo.tbl.mu.RUnlock()
	return repo.tbl.all(filter.Match), nil
}

func (repo *userRepository) GetUserByID(ctx context.Context, id string) (user.User, error) {
	if err := repo.db.wait(ctx); err != nil {
		return user.User{}, err
	}
	repo.tbl.mu.RLock()
	defer repo.tbl.mu.RUnlock()

	if usr, ok := repo.tbl.get(id); ok {
		return usr, nil
	}
	return user.User{}, user.ErrNotFound
}

func (repo *userRepository) GetUserByEmail(ctx context.Context, email string) (user.User, error) {
	if err := repo.db.wait(ctx); err != nil {
		return user.User{}, err
	}
	repo.tbl.mu.RLock()
	defer repo.tbl.mu.RUnlock()

	for _, usr := range repo.tbl.all(nil) {
		if strings.EqualFold(usr.Email, email) {
			return usr, nil
		}
	}
	return user.User{}, user.ErrNotFound
}

func (repo *userRepository) UpdateUser(ctx context.Context, usr user.User) (user.User, error) {
	if err := repo.db.wait(ctx); err != nil {
		return user.User{}, err
	}
	repo.tbl.mu.Lock()
	defer repo.tbl.mu.Unlock()

	if _, ok := repo.tbl.get(usr.ID); !ok {
		return user.User{}, user.ErrNotFound
	}
	repo.tbl.insert(usr.ID, usr)
	return usr, nil
}

func (repo *userRepository) DeleteUser(ctx context.Context, id string) error {
	if err := repo.db.wait(ctx); err != nil {
		return err
	}
	repo.tbl.mu.Lock()
	defer repo.tbl.mu.Unlock()

	if !repo.tbl.remove(id) {
		return user.ErrNotFound
	}
	return nil
}
