package services

import (
	"errors"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/gadget-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/gadget-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/gadget-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/gadget-backend/internal/session"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type memUserStore struct {
	users   map[uuid.UUID]*models.User
	deletes int
	failErr error
}

func newMemUserStore() *memUserStore {
	return &memUserStore{users: make(map[uuid.UUID]*models.User)}
}

func (m *memUserStore) find(match func(u *models.User) bool) (*models.User, error) {
	if m.failErr != nil {
		return nil, m.failErr
	}
	for _, u := range m.users {
		if match(u) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memUserStore) FindByEmail(appID, email string) (*models.User, error) {
	return m.find(func(u *models.User) bool { return u.AppID == appID && u.Email == email })
}

func (m *memUserStore) FindByPhone(appID, phone string) (*models.User, error) {
	return m.find(func(u *models.User) bool { return u.AppID == appID && u.PhoneNumber == phone })
}

func (m *memUserStore) Create(user *models.User) error {
	cp := *user
	m.users[user.ID] = &cp
	return nil
}

func (m *memUserStore) Delete(appID string, id uuid.UUID) (bool, error) {
	m.deletes++
	u, ok := m.users[id]
	if !ok || u.AppID != appID {
		return false, nil
	}
	delete(m.users, id)
	return true, nil
}

func newTestAuthService(t *testing.T) (*AuthService, *memUserStore, *session.Issuer) {
	t.Helper()
	store := newMemUserStore()
	issuer := session.NewIssuer(&config.Config{
		JWTSecret:     "test-secret",
		JWTExpiry:     time.Hour,
		CookieMaxAge:  24 * time.Hour,
		SessionCookie: "token",
	})
	return NewAuthService(store, issuer), store, issuer
}

func registerReq() *dto.RegisterRequest {
	return &dto.RegisterRequest{
		Name:        "James Bond",
		Email:       "bond@mi6.gov.uk",
		PhoneNumber: "9123456789",
		Password:    "Sp3ctreSucks",
	}
}

func TestRegister_HashesPassword(t *testing.T) {
	svc, store, _ := newTestAuthService(t)

	user, err := svc.Register("mi6", registerReq())
	require.NoError(t, err)

	stored := store.users[user.ID]
	require.NotNil(t, stored)
	assert.Equal(t, "mi6", stored.AppID)
	assert.NotEqual(t, "Sp3ctreSucks", stored.Password)

	cost, err := bcrypt.Cost([]byte(stored.Password))
	require.NoError(t, err)
	assert.Equal(t, BcryptCost, cost)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("Sp3ctreSucks")))
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, store, _ := newTestAuthService(t)
	_, err := svc.Register("mi6", registerReq())
	require.NoError(t, err)

	req := registerReq()
	req.PhoneNumber = "9000000000"
	_, err = svc.Register("mi6", req)
	assert.ErrorIs(t, err, ErrEmailTaken)
	assert.Len(t, store.users, 1)
}

func TestRegister_EmailMatchIsCaseSensitive(t *testing.T) {
	svc, store, _ := newTestAuthService(t)
	_, err := svc.Register("mi6", registerReq())
	require.NoError(t, err)

	req := registerReq()
	req.Email = "BOND@mi6.gov.uk"
	req.PhoneNumber = "9000000000"
	_, err = svc.Register("mi6", req)
	assert.NoError(t, err)
	assert.Len(t, store.users, 2)
}

func TestRegister_DuplicatePhone(t *testing.T) {
	svc, store, _ := newTestAuthService(t)
	_, err := svc.Register("mi6", registerReq())
	require.NoError(t, err)

	req := registerReq()
	req.Email = "m@mi6.gov.uk"
	_, err = svc.Register("mi6", req)
	assert.ErrorIs(t, err, ErrPhoneTaken)
	assert.Len(t, store.users, 1)
}

func TestRegister_SameEmailOtherTenant(t *testing.T) {
	svc, store, _ := newTestAuthService(t)
	_, err := svc.Register("mi6", registerReq())
	require.NoError(t, err)

	_, err = svc.Register("cia", registerReq())
	assert.NoError(t, err)
	assert.Len(t, store.users, 2)
}

func TestRegister_StoreFault(t *testing.T) {
	svc, store, _ := newTestAuthService(t)
	store.failErr = errors.New("connection refused")

	_, err := svc.Register("mi6", registerReq())
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrEmailTaken)
	assert.Empty(t, store.users)
}

func TestLogin_IssuesToken(t *testing.T) {
	svc, _, issuer := newTestAuthService(t)
	user, err := svc.Register("mi6", registerReq())
	require.NoError(t, err)

	token, err := svc.Login("mi6", &dto.LoginRequest{Email: "bond@mi6.gov.uk", Password: "Sp3ctreSucks"})
	require.NoError(t, err)

	id, err := identityOf(issuer, token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, id.UserID)
	assert.Equal(t, "bond@mi6.gov.uk", id.Email)
	assert.Equal(t, "mi6", id.AppID)
}

func TestLogin_FailuresAreIndistinguishable(t *testing.T) {
	svc, _, _ := newTestAuthService(t)
	_, err := svc.Register("mi6", registerReq())
	require.NoError(t, err)

	_, wrongPassword := svc.Login("mi6", &dto.LoginRequest{Email: "bond@mi6.gov.uk", Password: "Wr0ngPassword"})
	_, unknownEmail := svc.Login("mi6", &dto.LoginRequest{Email: "nobody@mi6.gov.uk", Password: "Sp3ctreSucks"})

	assert.ErrorIs(t, wrongPassword, ErrInvalidCredentials)
	assert.ErrorIs(t, unknownEmail, ErrInvalidCredentials)
	assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())
}

func TestDeleteAccount(t *testing.T) {
	svc, store, _ := newTestAuthService(t)
	user, err := svc.Register("mi6", registerReq())
	require.NoError(t, err)

	require.NoError(t, svc.DeleteAccount("mi6", user.ID, "Delete My Account"))
	assert.Empty(t, store.users)

	err = svc.DeleteAccount("mi6", user.ID, "delete my account")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestDeleteAccount_WrongPhraseSkipsStore(t *testing.T) {
	svc, store, _ := newTestAuthService(t)
	user, err := svc.Register("mi6", registerReq())
	require.NoError(t, err)

	for _, phrase := range []string{"", "delete", "delete my account please", " delete my account"} {
		err := svc.DeleteAccount("mi6", user.ID, phrase)
		assert.ErrorIs(t, err, ErrConfirmationMismatch, "phrase %q", phrase)
	}
	assert.Equal(t, 0, store.deletes)
	assert.Len(t, store.users, 1)
}

func identityOf(issuer *session.Issuer, raw string) (session.Identity, error) {
	token, err := jwt.Parse(raw, issuer.KeyFunc)
	if err != nil {
		return session.Identity{}, err
	}
	mc, _ := token.Claims.(jwt.MapClaims)
	return session.IdentityFromClaims(mc)
}
