package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/SamriddhiRoy/user-dashboard/internal/common"
	"github.com/SamriddhiRoy/user-dashboard/internal/domain/model"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
)

var userCols = []string{"id", "email", "name", "avatar_url", "role", "google_id", "hashed_password", "email_verified", "created_at", "updated_at"}

func newProvisionedUser() *model.User {
	name := "ada"
	return &model.User{
		ID:        ownerID,
		Email:     "ada@example.com",
		Name:      &name,
		Role:      model.RoleNormal,
		CreatedAt: testNow,
		UpdatedAt: testNow,
	}
}

func TestCreateIfAbsentInserts(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPgUserRepository(db)
	user := newProvisionedUser()

	mock.ExpectQuery(sqlText("INSERT INTO users") + ".*" + sqlText("ON CONFLICT (email) DO NOTHING RETURNING")).
		WithArgs(user.ID, user.Email, "ada", nil, model.RoleNormal, nil, false, testNow, testNow).
		WillReturnRows(sqlmock.NewRows(userCols).
			AddRow(user.ID, user.Email, "ada", nil, model.RoleNormal, nil, nil, false, testNow, testNow))

	got, created, err := repo.CreateIfAbsent(context.Background(), user)
	if err != nil {
		t.Fatalf("CreateIfAbsent: %v", err)
	}
	if !created || got.ID != user.ID {
		t.Errorf("got %+v created=%v, want the inserted row", got, created)
	}
}

func TestCreateIfAbsentRereadsAfterLostRace(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPgUserRepository(db)
	user := newProvisionedUser()

	// The conflicting insert returns no row; the winner's row is read back by email.
	mock.ExpectQuery(sqlText("ON CONFLICT (email) DO NOTHING")).
		WillReturnRows(sqlmock.NewRows(userCols))
	mock.ExpectQuery(sqlText("FROM users WHERE email = $1")).
		WithArgs(user.Email).
		WillReturnRows(sqlmock.NewRows(userCols).
			AddRow(strangerID, user.Email, "winner", nil, model.RoleSuperuser, nil, nil, true, testNow.Add(-1), testNow.Add(-1)))

	got, created, err := repo.CreateIfAbsent(context.Background(), user)
	if err != nil {
		t.Fatalf("CreateIfAbsent: %v", err)
	}
	if created {
		t.Error("created = true for a row another request inserted")
	}
	if got.ID != strangerID || got.Role != model.RoleSuperuser {
		t.Errorf("got %+v, want the existing row", got)
	}
}

func TestFindByEmailMissing(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPgUserRepository(db)

	mock.ExpectQuery(sqlText("FROM users WHERE email = $1")).
		WithArgs("nobody@example.com").
		WillReturnRows(sqlmock.NewRows(userCols))

	if _, err := repo.FindByEmail(context.Background(), "nobody@example.com"); !errors.Is(err, common.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestUpdateRoleMissingUser(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPgUserRepository(db)

	mock.ExpectQuery(sqlText("UPDATE users SET role = $1, updated_at = $2 WHERE id = $3")).
		WithArgs(model.RoleSuperuser, testNow, strangerID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "name", "role"}))

	if _, err := repo.UpdateRole(context.Background(), strangerID, model.RoleSuperuser, testNow); !errors.Is(err, common.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestUpdateProfileUniqueViolationIsConflict(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPgUserRepository(db)

	mock.ExpectQuery(sqlText("UPDATE users SET name = $1, email = $2, updated_at = $3 WHERE id = $4")).
		WithArgs("Ada", "taken@example.com", testNow, ownerID).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})

	_, err := repo.UpdateProfile(context.Background(), ownerID, "Ada", "taken@example.com", testNow)
	if !errors.Is(err, common.ErrConflict) {
		t.Errorf("err = %v, want ErrConflict", err)
	}
}

func TestEmailTakenByOther(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPgUserRepository(db)

	mock.ExpectQuery(sqlText("SELECT EXISTS (SELECT 1 FROM users WHERE email = $1 AND id <> $2)")).
		WithArgs("ada@example.com", ownerID).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	taken, err := repo.EmailTakenByOther(context.Background(), "ada@example.com", ownerID)
	if err != nil {
		t.Fatalf("EmailTakenByOther: %v", err)
	}
	if !taken {
		t.Error("taken = false, want true")
	}
}
