// internal/services/query_service_test.go
package services

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/lotchain/supplytrace-backend/internal/models"
)

type QueryServiceTestSuite struct {
	suite.Suite
	db        *gorm.DB
	registry  *RegistryService
	lots      *LotService
	transfers *TransferService
	queries   *QueryService
}

func (suite *QueryServiceTestSuite) SetupTest() {
	suite.db = newTestDB(suite.T())
	notifications := NewNotificationService(suite.db)
	suite.registry = NewRegistryService(suite.db, notifications)
	suite.lots = NewLotService(suite.db, notifications)
	suite.transfers = NewTransferService(suite.db, notifications)
	suite.queries = NewQueryService(suite.db)
}

func (suite *QueryServiceTestSuite) approve(address string, role models.Role) {
	_, err := suite.registry.RequestRole(address, role)
	suite.Require().NoError(err)
	_, err = suite.registry.SetStatus(adminActor(), address, models.ApprovalStatusApproved)
	suite.Require().NoError(err)
}

func (suite *QueryServiceTestSuite) TestLotsForEmptyAddress() {
	ids, err := suite.queries.LotsFor("0xnobody")
	suite.NoError(err)
	suite.NotNil(ids)
	suite.Empty(ids)
}

func (suite *QueryServiceTestSuite) TestLotsForCreatorAndHolder() {
	suite.approve("0xprod", models.RoleProducer)
	suite.approve("0xfact", models.RoleFactory)

	lot1, err := suite.lots.CreateLot("0xprod", &CreateLotRequest{Name: "a", TotalSupply: 10})
	suite.Require().NoError(err)
	lot2, err := suite.lots.CreateLot("0xprod", &CreateLotRequest{Name: "b", TotalSupply: 10})
	suite.Require().NoError(err)

	// Creator appears even for a lot it fully transferred away; the
	// union stays duplicate-free when it both created and holds
	_, err = suite.transfers.Initiate("0xprod", &InitiateTransferRequest{
		Recipient: "0xfact", LotID: lot1.ID, Amount: 10,
	})
	suite.Require().NoError(err)

	producerIDs, err := suite.queries.LotsFor("0xprod")
	suite.NoError(err)
	suite.Equal([]uint{lot1.ID, lot2.ID}, producerIDs)
	suite.True(sort.SliceIsSorted(producerIDs, func(i, j int) bool {
		return producerIDs[i] < producerIDs[j]
	}))

	factoryIDs, err := suite.queries.LotsFor("0xfact")
	suite.NoError(err)
	suite.Equal([]uint{lot1.ID}, factoryIDs)
}

func (suite *QueryServiceTestSuite) TestLotsForExcludesZeroBalances() {
	suite.approve("0xprod", models.RoleProducer)
	suite.approve("0xfact", models.RoleFactory)

	lot, err := suite.lots.CreateLot("0xprod", &CreateLotRequest{Name: "a", TotalSupply: 10})
	suite.Require().NoError(err)

	transfer, err := suite.transfers.Initiate("0xprod", &InitiateTransferRequest{
		Recipient: "0xfact", LotID: lot.ID, Amount: 10,
	})
	suite.Require().NoError(err)
	_, err = suite.transfers.Reject("0xfact", false, transfer.ID)
	suite.Require().NoError(err)

	// The factory's balance went 0 -> 10 -> 0; it no longer holds the lot
	ids, err := suite.queries.LotsFor("0xfact")
	suite.NoError(err)
	suite.Empty(ids)
}

func (suite *QueryServiceTestSuite) TestTransfersForBothDirections() {
	suite.approve("0xprod", models.RoleProducer)
	suite.approve("0xfact", models.RoleFactory)
	suite.approve("0xret", models.RoleRetailer)

	lot, err := suite.lots.CreateLot("0xprod", &CreateLotRequest{Name: "a", TotalSupply: 100})
	suite.Require().NoError(err)

	t1, err := suite.transfers.Initiate("0xprod", &InitiateTransferRequest{
		Recipient: "0xfact", LotID: lot.ID, Amount: 30,
	})
	suite.Require().NoError(err)
	_, err = suite.transfers.Accept("0xfact", t1.ID)
	suite.Require().NoError(err)

	t2, err := suite.transfers.Initiate("0xfact", &InitiateTransferRequest{
		Recipient: "0xret", LotID: lot.ID, Amount: 10,
	})
	suite.Require().NoError(err)

	factoryIDs, err := suite.queries.TransfersFor("0xfact")
	suite.NoError(err)
	suite.Equal([]uint{t1.ID, t2.ID}, factoryIDs)

	producerIDs, err := suite.queries.TransfersFor("0xprod")
	suite.NoError(err)
	suite.Equal([]uint{t1.ID}, producerIDs)

	ids, err := suite.queries.TransfersFor("0xnobody")
	suite.NoError(err)
	suite.NotNil(ids)
	suite.Empty(ids)
}

func TestQueryServiceSuite(t *testing.T) {
	suite.Run(t, new(QueryServiceTestSuite))
}
