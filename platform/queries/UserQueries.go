package queries

import (
	"errors"

	"github.com/DedS3t/richman-engine/app/models"
	"github.com/go-pg/pg/v10"
)

var ErrUserNotFound = errors.New("user not found")

// Users stores accounts in postgres.
type Users struct {
	db *pg.DB
}

func NewUsers(db *pg.DB) *Users { return &Users{db: db} }

func (u *Users) CreateUser(user *models.User) error {
	_, err := u.db.Model(user).Insert()
	return err
}

func (u *Users) FindUserByEmail(email string) (*models.User, error) {
	user := new(models.User)
	err := u.db.Model(user).Where("email = ?", email).Select()
	if errors.Is(err, pg.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}
