package service

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daybook/daybook-go/internal/crypto"
	"github.com/daybook/daybook-go/internal/model"
	"github.com/daybook/daybook-go/internal/repository"
)

func newTestAuthService(t *testing.T) (*AuthService, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewAuthService(repository.NewUserRepository(db), "test-secret", time.Hour), mock
}

// argonHashArg matches any Argon2id PHC hash that is not the given plaintext.
type argonHashArg struct {
	plaintext string
}

func (a argonHashArg) Match(v driver.Value) bool {
	s, ok := v.(string)
	return ok && strings.HasPrefix(s, "$argon2id$") && s != a.plaintext
}

func TestRegister_CollectsAllFieldErrors(t *testing.T) {
	svc, _ := newTestAuthService(t)

	_, err := svc.Register(context.Background(), model.RegisterRequest{})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Fields, 3)
	assert.Equal(t, "this field is required", verr.Fields["email"])
	assert.Equal(t, "this field is required", verr.Fields["password"])
	assert.Equal(t, "this field is required", verr.Fields["password2"])
}

func TestRegister_PasswordMismatch(t *testing.T) {
	svc, mock := newTestAuthService(t)

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("a@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	_, err := svc.Register(context.Background(), model.RegisterRequest{
		Email:     "a@example.com",
		Password:  "password",
		Password2: "different",
	})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "passwords must match", verr.Fields["password"])
}

func TestRegister_DuplicateEmailLiveCheck(t *testing.T) {
	svc, mock := newTestAuthService(t)

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("a@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	_, err := svc.Register(context.Background(), model.RegisterRequest{
		Email:     "a@example.com",
		Password:  "pw",
		Password2: "pw",
	})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "user with that email already exists", verr.Fields["email"])
	// No INSERT was expected or run: the user count is unchanged.
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRegister_DuplicateEmailAtInsert(t *testing.T) {
	svc, mock := newTestAuthService(t)

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("a@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectExec("INSERT INTO users").
		WillReturnError(errors.New("Error 1062 (23000): Duplicate entry 'a@example.com' for key 'users.email'"))

	_, err := svc.Register(context.Background(), model.RegisterRequest{
		Email:     "a@example.com",
		Password:  "pw",
		Password2: "pw",
	})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "user with that email already exists", verr.Fields["email"])
}

func TestRegister_StoresHashNotPlaintext(t *testing.T) {
	svc, mock := newTestAuthService(t)

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("a@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectExec("INSERT INTO users").
		WithArgs("a@example.com", argonHashArg{plaintext: "pw"}).
		WillReturnResult(sqlmock.NewResult(1, 1))

	resp, err := svc.Register(context.Background(), model.RegisterRequest{
		Email:     "a@example.com",
		Password:  "pw",
		Password2: "pw",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, int64(1), resp.User.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLogin_UnknownEmailAndWrongPasswordLookAlike(t *testing.T) {
	svc, mock := newTestAuthService(t)

	mock.ExpectQuery("SELECT id, email, auth_hash, created_at FROM users WHERE email").
		WithArgs("unknown@example.com").
		WillReturnError(sql.ErrNoRows)

	_, errUnknown := svc.Login(context.Background(), model.LoginRequest{
		Email:    "unknown@example.com",
		Password: "pw",
	})

	hash, err := crypto.HashPassword("pw")
	require.NoError(t, err)
	mock.ExpectQuery("SELECT id, email, auth_hash, created_at FROM users WHERE email").
		WithArgs("a@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "auth_hash", "created_at"}).
			AddRow(1, "a@example.com", hash, time.Now()))

	_, errWrong := svc.Login(context.Background(), model.LoginRequest{
		Email:    "a@example.com",
		Password: "wrong",
	})

	assert.ErrorIs(t, errUnknown, ErrInvalidCredentials)
	assert.ErrorIs(t, errWrong, ErrInvalidCredentials)
	assert.Equal(t, errUnknown.Error(), errWrong.Error())
}

func TestLogin_Success(t *testing.T) {
	svc, mock := newTestAuthService(t)

	hash, err := crypto.HashPassword("pw")
	require.NoError(t, err)
	mock.ExpectQuery("SELECT id, email, auth_hash, created_at FROM users WHERE email").
		WithArgs("a@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "auth_hash", "created_at"}).
			AddRow(1, "a@example.com", hash, time.Now()))

	resp, err := svc.Login(context.Background(), model.LoginRequest{
		Email:    "a@example.com",
		Password: "pw",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)

	claims, err := crypto.ValidateToken(resp.Token, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, int64(1), claims.UserID)
}

func TestLogin_ValidationErrors(t *testing.T) {
	svc, _ := newTestAuthService(t)

	_, err := svc.Login(context.Background(), model.LoginRequest{})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Fields, 2)
}

func TestGetUser_NotFound(t *testing.T) {
	svc, mock := newTestAuthService(t)

	mock.ExpectQuery("SELECT id, email, auth_hash, created_at FROM users WHERE id").
		WithArgs(int64(42)).
		WillReturnError(sql.ErrNoRows)

	_, err := svc.GetUser(context.Background(), 42)
	assert.ErrorIs(t, err, repository.ErrUserNotFound)
}
