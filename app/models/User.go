package models

type User struct {
	Id       string `pg:",pk"`
	Email    string `pg:",unique"`
	Password string
}

type UserDto struct {
	Email string `json:"email"`
	Pass  string `json:"pass"`
}

type GuestDto struct {
	Name string `json:"name"`
}
