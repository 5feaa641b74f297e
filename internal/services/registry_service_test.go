// internal/services/registry_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/lotchain/supplytrace-backend/internal/models"
)

type RegistryServiceTestSuite struct {
	suite.Suite
	db       *gorm.DB
	registry *RegistryService
}

func (suite *RegistryServiceTestSuite) SetupTest() {
	suite.db = newTestDB(suite.T())
	suite.registry = NewRegistryService(suite.db, NewNotificationService(suite.db))
}

func (suite *RegistryServiceTestSuite) TestRequestRoleCreatesPendingRecord() {
	participant, err := suite.registry.RequestRole("0xaa", models.RoleProducer)
	suite.NoError(err)
	suite.Equal(models.RoleProducer, participant.Role)
	suite.Equal(models.ApprovalStatusPending, participant.Status)
	suite.NotZero(participant.ID)

	var events []models.LedgerEvent
	suite.db.Where("type = ?", models.EventRoleRequested).Find(&events)
	suite.Len(events, 1)
}

func (suite *RegistryServiceTestSuite) TestRequestRoleOverwritesAndResetsStatus() {
	_, err := suite.registry.RequestRole("0xaa", models.RoleProducer)
	suite.NoError(err)
	_, err = suite.registry.SetStatus(adminActor(), "0xaa", models.ApprovalStatusApproved)
	suite.NoError(err)

	// Role change requires re-approval
	participant, err := suite.registry.RequestRole("0xaa", models.RoleFactory)
	suite.NoError(err)
	suite.Equal(models.RoleFactory, participant.Role)
	suite.Equal(models.ApprovalStatusPending, participant.Status)

	// Still a single record per identity
	var count int64
	suite.db.Model(&models.Participant{}).Where("address = ?", "0xaa").Count(&count)
	suite.Equal(int64(1), count)
}

func (suite *RegistryServiceTestSuite) TestRequestRoleRejectsInvalidRole() {
	_, err := suite.registry.RequestRole("0xaa", "")
	suite.ErrorIs(err, ErrInvalidInput)

	_, err = suite.registry.RequestRole("0xaa", "wholesaler")
	suite.ErrorIs(err, ErrInvalidInput)

	var count int64
	suite.db.Model(&models.Participant{}).Count(&count)
	suite.Zero(count)
}

func (suite *RegistryServiceTestSuite) TestSetStatusRequiresAdministrator() {
	_, err := suite.registry.RequestRole("0xaa", models.RoleProducer)
	suite.NoError(err)

	_, err = suite.registry.SetStatus(&models.User{UserType: models.UserTypeParticipant}, "0xaa", models.ApprovalStatusApproved)
	suite.ErrorIs(err, ErrNotAdministrator)

	_, err = suite.registry.SetStatus(nil, "0xaa", models.ApprovalStatusApproved)
	suite.ErrorIs(err, ErrNotAdministrator)
}

func (suite *RegistryServiceTestSuite) TestSetStatusUnknownAddress() {
	_, err := suite.registry.SetStatus(adminActor(), "0xmissing", models.ApprovalStatusApproved)
	suite.ErrorIs(err, ErrNotFound)
}

func (suite *RegistryServiceTestSuite) TestSetStatusIsUnconditional() {
	_, err := suite.registry.RequestRole("0xaa", models.RoleProducer)
	suite.NoError(err)

	participant, err := suite.registry.SetStatus(adminActor(), "0xaa", models.ApprovalStatusApproved)
	suite.NoError(err)
	suite.True(participant.Approved())

	// An approved participant can be demoted to any status
	participant, err = suite.registry.SetStatus(adminActor(), "0xaa", models.ApprovalStatusCanceled)
	suite.NoError(err)
	suite.Equal(models.ApprovalStatusCanceled, participant.Status)
	suite.False(participant.Approved())
}

func (suite *RegistryServiceTestSuite) TestGetInfoReturnsSentinelForUnknownAddress() {
	participant, err := suite.registry.GetInfo("0xnobody")
	suite.NoError(err)
	suite.Zero(participant.ID)
	suite.Empty(string(participant.Role))
	suite.Equal(models.ApprovalStatusRejected, participant.Status)
}

func TestRegistryServiceSuite(t *testing.T) {
	suite.Run(t, new(RegistryServiceTestSuite))
}
