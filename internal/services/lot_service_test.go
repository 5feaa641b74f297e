// internal/services/lot_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/lotchain/supplytrace-backend/internal/models"
)

type LotServiceTestSuite struct {
	suite.Suite
	db       *gorm.DB
	registry *RegistryService
	lots     *LotService
}

func (suite *LotServiceTestSuite) SetupTest() {
	suite.db = newTestDB(suite.T())
	notifications := NewNotificationService(suite.db)
	suite.registry = NewRegistryService(suite.db, notifications)
	suite.lots = NewLotService(suite.db, notifications)
}

func (suite *LotServiceTestSuite) approve(address string, role models.Role) {
	_, err := suite.registry.RequestRole(address, role)
	suite.Require().NoError(err)
	_, err = suite.registry.SetStatus(adminActor(), address, models.ApprovalStatusApproved)
	suite.Require().NoError(err)
}

func (suite *LotServiceTestSuite) TestCreateLotCreditsCreator() {
	suite.approve("0xprod", models.RoleProducer)

	lot, err := suite.lots.CreateLot("0xprod", &CreateLotRequest{
		Name:        "Arabica harvest 2026",
		TotalSupply: 100,
		Features:    "single origin",
	})
	suite.NoError(err)
	suite.Equal(uint(1), lot.ID)
	suite.Equal("0xprod", lot.CreatorAddress)

	balance, err := suite.lots.GetBalance(lot.ID, "0xprod")
	suite.NoError(err)
	suite.Equal(uint64(100), balance)

	var events []models.LedgerEvent
	suite.db.Where("type = ?", models.EventLotCreated).Find(&events)
	suite.Len(events, 1)
}

func (suite *LotServiceTestSuite) TestCreateLotRequiresApproval() {
	// No record at all
	_, err := suite.lots.CreateLot("0xnobody", &CreateLotRequest{Name: "x", TotalSupply: 1})
	suite.ErrorIs(err, ErrNotApproved)

	// Pending record is not enough
	_, err = suite.registry.RequestRole("0xpend", models.RoleProducer)
	suite.Require().NoError(err)
	_, err = suite.lots.CreateLot("0xpend", &CreateLotRequest{Name: "x", TotalSupply: 1})
	suite.ErrorIs(err, ErrNotApproved)

	// A failed create leaves no row behind
	var count int64
	suite.db.Model(&models.Lot{}).Count(&count)
	suite.Zero(count)
}

func (suite *LotServiceTestSuite) TestCreateLotRejectsEmptyName() {
	suite.approve("0xprod", models.RoleProducer)

	_, err := suite.lots.CreateLot("0xprod", &CreateLotRequest{Name: "", TotalSupply: 5})
	suite.ErrorIs(err, ErrInvalidInput)
}

func (suite *LotServiceTestSuite) TestCreateLotZeroSupplyAllowed() {
	suite.approve("0xprod", models.RoleProducer)

	lot, err := suite.lots.CreateLot("0xprod", &CreateLotRequest{Name: "placeholder"})
	suite.NoError(err)

	balance, err := suite.lots.GetBalance(lot.ID, "0xprod")
	suite.NoError(err)
	suite.Zero(balance)
}

func (suite *LotServiceTestSuite) TestCreateLotParentNotValidated() {
	suite.approve("0xprod", models.RoleProducer)

	parent := uint(9999)
	lot, err := suite.lots.CreateLot("0xprod", &CreateLotRequest{
		Name:        "derived batch",
		TotalSupply: 10,
		ParentID:    &parent,
	})
	suite.NoError(err)
	suite.Equal(parent, *lot.ParentID)
}

func (suite *LotServiceTestSuite) TestDemotionRevokesGate() {
	suite.approve("0xprod", models.RoleProducer)
	_, err := suite.lots.CreateLot("0xprod", &CreateLotRequest{Name: "first", TotalSupply: 1})
	suite.NoError(err)

	_, err = suite.registry.SetStatus(adminActor(), "0xprod", models.ApprovalStatusRejected)
	suite.Require().NoError(err)

	_, err = suite.lots.CreateLot("0xprod", &CreateLotRequest{Name: "second", TotalSupply: 1})
	suite.ErrorIs(err, ErrNotApproved)
}

func (suite *LotServiceTestSuite) TestGetLotUnknown() {
	_, err := suite.lots.GetLot(42)
	suite.ErrorIs(err, ErrNotFound)
}

func (suite *LotServiceTestSuite) TestGetBalanceUnknownLot() {
	_, err := suite.lots.GetBalance(42, "0xprod")
	suite.ErrorIs(err, ErrNotFound)
}

func (suite *LotServiceTestSuite) TestGetBalanceUnknownHolderIsZero() {
	suite.approve("0xprod", models.RoleProducer)
	lot, err := suite.lots.CreateLot("0xprod", &CreateLotRequest{Name: "x", TotalSupply: 50})
	suite.Require().NoError(err)

	balance, err := suite.lots.GetBalance(lot.ID, "0xstranger")
	suite.NoError(err)
	suite.Zero(balance)
}

func (suite *LotServiceTestSuite) TestAttachDocumentsCreatorOnly() {
	suite.approve("0xprod", models.RoleProducer)
	lot, err := suite.lots.CreateLot("0xprod", &CreateLotRequest{Name: "x", TotalSupply: 1})
	suite.Require().NoError(err)

	_, err = suite.lots.AttachDocuments("0xother", lot.ID, []string{"https://cdn/doc.pdf"})
	suite.ErrorIs(err, ErrNotAuthorized)

	updated, err := suite.lots.AttachDocuments("0xprod", lot.ID, []string{"https://cdn/doc.pdf"})
	suite.NoError(err)
	suite.Len(updated.Documents, 1)
}

func TestLotServiceSuite(t *testing.T) {
	suite.Run(t, new(LotServiceTestSuite))
}
