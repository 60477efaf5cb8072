package backend

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	apperrors "peoplectl/internal/errors"
)

const schema = `
CREATE TABLE IF NOT EXISTS auth_users (
	id              INTEGER PRIMARY KEY AUTOINCREMENT,
	username        TEXT NOT NULL UNIQUE,
	hashed_password TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS persons (
	id     INTEGER PRIMARY KEY AUTOINCREMENT,
	name   TEXT NOT NULL,
	roll   TEXT NOT NULL,
	age    INTEGER NOT NULL,
	gender TEXT NOT NULL
);
`

// AuthUser is a row of auth_users.
type AuthUser struct {
	ID             int64  `db:"id"`
	Username       string `db:"username"`
	HashedPassword string `db:"hashed_password"`
}

// PersonRecord is a row of persons.
type PersonRecord struct {
	ID     int64  `db:"id" json:"id"`
	Name   string `db:"name" json:"name"`
	Roll   string `db:"roll" json:"roll"`
	Age    int    `db:"age" json:"age"`
	Gender string `db:"gender" json:"gender"`
}

// Store is the sqlite persistence layer of the embedded backend.
type Store struct {
	db *sqlx.DB
}

// OpenStore opens (and if needed initialises) the sqlite database at path.
// Use ":memory:" for an ephemeral database in tests.
func OpenStore(path string) (*Store, error) {
	db, err := sqlx.Connect("sqlite", path)
	if err != nil {
		return nil, apperrors.Wrapf(err, "[OpenStore] opening sqlite database %q", path)
	}
	// modernc sqlite serializes access itself; a single connection avoids
	// table-lock errors under concurrent handlers.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, apperrors.Wrapf(err, "[OpenStore] creating tables")
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) GetUser(username string) (AuthUser, error) {
	var user AuthUser
	err := s.db.Get(&user, "SELECT id, username, hashed_password FROM auth_users WHERE username = ?", username)
	if errors.Is(err, sql.ErrNoRows) {
		return AuthUser{}, apperrors.ErrNotFound
	}
	if err != nil {
		return AuthUser{}, apperrors.Wrapf(err, "[Store GetUser] querying user %q", username)
	}
	return user, nil
}

func (s *Store) CreateUser(username, hashedPassword string) (AuthUser, error) {
	result, err := s.db.Exec("INSERT INTO auth_users (username, hashed_password) VALUES (?, ?)", username, hashedPassword)
	if err != nil {
		return AuthUser{}, apperrors.Wrapf(err, "[Store CreateUser] inserting user %q", username)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return AuthUser{}, apperrors.Wrapf(err, "[Store CreateUser] reading new user id")
	}
	return AuthUser{ID: id, Username: username, HashedPassword: hashedPassword}, nil
}

func (s *Store) CreatePerson(rec PersonRecord) (PersonRecord, error) {
	result, err := s.db.Exec(
		"INSERT INTO persons (name, roll, age, gender) VALUES (?, ?, ?, ?)",
		rec.Name, rec.Roll, rec.Age, rec.Gender,
	)
	if err != nil {
		return PersonRecord{}, apperrors.Wrapf(err, "[Store CreatePerson] inserting person")
	}
	id, err := result.LastInsertId()
	if err != nil {
		return PersonRecord{}, apperrors.Wrapf(err, "[Store CreatePerson] reading new person id")
	}
	rec.ID = id
	return rec, nil
}

// ListPersons returns persons ordered by id, optionally filtered by a
// case-insensitive name substring match, windowed by skip/limit.
func (s *Store) ListPersons(search string, skip, limit int) ([]PersonRecord, error) {
	items := []PersonRecord{}
	var err error
	if search != "" {
		err = s.db.Select(&items,
			"SELECT id, name, roll, age, gender FROM persons WHERE name LIKE '%' || ? || '%' COLLATE NOCASE ORDER BY id LIMIT ? OFFSET ?",
			search, limit, skip,
		)
	} else {
		err = s.db.Select(&items,
			"SELECT id, name, roll, age, gender FROM persons ORDER BY id LIMIT ? OFFSET ?",
			limit, skip,
		)
	}
	if err != nil {
		return nil, apperrors.Wrapf(err, "[Store ListPersons] querying persons")
	}
	return items, nil
}

func (s *Store) GetPerson(id int64) (PersonRecord, error) {
	var rec PersonRecord
	err := s.db.Get(&rec, "SELECT id, name, roll, age, gender FROM persons WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return PersonRecord{}, apperrors.ErrNotFound
	}
	if err != nil {
		return PersonRecord{}, apperrors.Wrapf(err, "[Store GetPerson] querying person %d", id)
	}
	return rec, nil
}

func (s *Store) UpdatePerson(rec PersonRecord) error {
	result, err := s.db.Exec(
		"UPDATE persons SET name = ?, roll = ?, age = ?, gender = ? WHERE id = ?",
		rec.Name, rec.Roll, rec.Age, rec.Gender, rec.ID,
	)
	if err != nil {
		return apperrors.Wrapf(err, "[Store UpdatePerson] updating person %d", rec.ID)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrapf(err, "[Store UpdatePerson] reading affected rows")
	}
	if affected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (s *Store) DeletePerson(id int64) error {
	result, err := s.db.Exec("DELETE FROM persons WHERE id = ?", id)
	if err != nil {
		return apperrors.Wrapf(err, "[Store DeletePerson] deleting person %d", id)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrapf(err, "[Store DeletePerson] reading affected rows")
	}
	if affected == 0 {
		return fmt.Errorf("person %d: %w", id, apperrors.ErrNotFound)
	}
	return nil
}
