// internal/services/auth_service_test.go
package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/lotchain/supplytrace-backend/internal/config"
	"github.com/lotchain/supplytrace-backend/internal/models"
)

type AuthServiceTestSuite struct {
	suite.Suite
	db   *gorm.DB
	auth *AuthService
}

func (suite *AuthServiceTestSuite) SetupTest() {
	suite.db = newTestDB(suite.T())
	suite.auth = NewAuthService(suite.db, &config.Config{
		JWT: config.JWTConfig{
			SecretKey:       "test-secret",
			AccessTokenTTL:  1,
			RefreshTokenTTL: 24,
		},
	})
}

func (suite *AuthServiceTestSuite) register(username, email string) *AuthResponse {
	resp, err := suite.auth.Register(&RegisterRequest{
		Username: username,
		Email:    email,
		Password: "Sup3rSecret!",
	})
	suite.Require().NoError(err)
	return resp
}

func (suite *AuthServiceTestSuite) TestRegisterAssignsLedgerAddress() {
	resp := suite.register("alice", "alice@example.com")

	suite.NotEmpty(resp.AccessToken)
	suite.NotEmpty(resp.RefreshToken)
	suite.Equal("Bearer", resp.TokenType)
	suite.True(strings.HasPrefix(resp.User.Address, "0x"))
	suite.Len(resp.User.Address, 42)
	suite.Equal(models.UserTypeParticipant, resp.User.UserType)
}

func (suite *AuthServiceTestSuite) TestRegisterAddressesAreUnique() {
	a := suite.register("alice", "alice@example.com")
	b := suite.register("bob", "bob@example.com")
	suite.NotEqual(a.User.Address, b.User.Address)
}

func (suite *AuthServiceTestSuite) TestRegisterDuplicateEmail() {
	suite.register("alice", "alice@example.com")

	_, err := suite.auth.Register(&RegisterRequest{
		Username: "alice2",
		Email:    "alice@example.com",
		Password: "Sup3rSecret!",
	})
	suite.Error(err)
	suite.Contains(err.Error(), "email")
}

func (suite *AuthServiceTestSuite) TestRegisterWeakPassword() {
	_, err := suite.auth.Register(&RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "short",
	})
	suite.Error(err)
}

func (suite *AuthServiceTestSuite) TestLogin() {
	suite.register("alice", "alice@example.com")

	resp, err := suite.auth.Login(&LoginRequest{
		Email:    "alice@example.com",
		Password: "Sup3rSecret!",
	})
	suite.NoError(err)
	suite.NotEmpty(resp.AccessToken)
	suite.NotNil(resp.User.LastLoginAt)

	_, err = suite.auth.Login(&LoginRequest{
		Email:    "alice@example.com",
		Password: "wrong-password",
	})
	suite.Error(err)
}

func (suite *AuthServiceTestSuite) TestRefreshToken() {
	registered := suite.register("alice", "alice@example.com")

	resp, err := suite.auth.RefreshToken(registered.RefreshToken)
	suite.NoError(err)
	suite.Equal(registered.User.ID, resp.User.ID)

	_, err = suite.auth.RefreshToken("not-a-token")
	suite.Error(err)
}

func (suite *AuthServiceTestSuite) TestGetUserByAddress() {
	registered := suite.register("alice", "alice@example.com")

	user, err := suite.auth.GetUserByAddress(registered.User.Address)
	suite.NoError(err)
	suite.Equal("alice", user.Username)

	_, err = suite.auth.GetUserByAddress("0xmissing")
	suite.ErrorIs(err, ErrNotFound)
}

func TestAuthServiceSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}
