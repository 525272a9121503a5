package packagerepo_test

import (
	"context"
	"testing"
	"time"

	"forwarding/internal/adapters/out/postgres/packagerepo"
	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/core/domain/model/pack"
	"forwarding/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate interface{}) {
	m.Called(id, aggregate)
}

// PackageRepositoryIntegrationTestSuite provides integration tests for
// PackageRepository using PostgreSQL containers.
type PackageRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *packagerepo.GormPackageRepository
	tracker    *MockAggregateTracker
}

func (suite *PackageRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&packagerepo.PackageDTO{}))
}

func (suite *PackageRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE packages").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Maybe()
	suite.repository = packagerepo.NewGormPackageRepository(suite.db, suite.tracker)
}

func (suite *PackageRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *PackageRepositoryIntegrationTestSuite) TestAdd_ValidPackage_Success() {
	ctx := context.Background()
	testPackage := suite.createTestPackage("1Z999AA10123456784")

	err := suite.repository.Add(ctx, testPackage)
	suite.Require().NoError(err)

	suite.assertPackageCount(1)
}

func (suite *PackageRepositoryIntegrationTestSuite) TestAdd_DuplicateTrackingNumber_Fails() {
	ctx := context.Background()

	first := suite.createTestPackage("1Z999AA10123456784")
	suite.Require().NoError(suite.repository.Add(ctx, first))

	second := suite.createTestPackage("1Z999AA10123456784")
	err := suite.repository.Add(ctx, second)
	suite.Require().Error(err)
	suite.assertPackageCount(1)
}

func (suite *PackageRepositoryIntegrationTestSuite) TestGet_RoundTrip() {
	ctx := context.Background()
	testPackage := suite.createTestPackage("1Z999AA10123456784")
	photo, err := kernel.NewPhotoRef("https://cdn.example.com/p1.jpg", kernel.PhotoTypeIntake,
		time.Now().UTC().Truncate(time.Second))
	suite.Require().NoError(err)
	testPackage.AttachPhoto(photo)
	testPackage.AppendNotes("fragile")

	suite.Require().NoError(suite.repository.Add(ctx, testPackage))

	restored, err := suite.repository.Get(ctx, testPackage.ID())
	suite.Require().NoError(err)

	suite.True(restored.IsEqual(testPackage))
	suite.Equal(testPackage.TrackingNumber(), restored.TrackingNumber())
	suite.Equal(testPackage.Retailer(), restored.Retailer())
	suite.Equal(pack.Received, restored.Status())
	suite.InDelta(testPackage.Weight().Kilograms(), restored.Weight().Kilograms(), 0.001)
	suite.Len(restored.Photos(), 1)
	suite.Equal("https://cdn.example.com/p1.jpg", restored.Photos()[0].URL())
	suite.Equal("fragile", restored.Notes())
}

func (suite *PackageRepositoryIntegrationTestSuite) TestGet_NotFound() {
	ctx := context.Background()

	_, err := suite.repository.Get(ctx, kernel.NewUUID())

	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *PackageRepositoryIntegrationTestSuite) TestGetMany_MissingPackage_Fails() {
	ctx := context.Background()
	testPackage := suite.createTestPackage("1Z999AA10123456784")
	suite.Require().NoError(suite.repository.Add(ctx, testPackage))

	_, err := suite.repository.GetMany(ctx, []kernel.UUID{testPackage.ID(), kernel.NewUUID()})

	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *PackageRepositoryIntegrationTestSuite) TestGetMany_PreservesRequestOrder() {
	ctx := context.Background()
	first := suite.createTestPackage("TRACK-A")
	second := suite.createTestPackage("TRACK-B")
	suite.Require().NoError(suite.repository.Add(ctx, first))
	suite.Require().NoError(suite.repository.Add(ctx, second))

	packages, err := suite.repository.GetMany(ctx, []kernel.UUID{second.ID(), first.ID()})

	suite.Require().NoError(err)
	suite.Require().Len(packages, 2)
	suite.True(packages[0].IsEqual(second))
	suite.True(packages[1].IsEqual(first))
}

func (suite *PackageRepositoryIntegrationTestSuite) TestUpdate_ClearsConsolidationLink() {
	ctx := context.Background()
	testPackage := suite.createTestPackage("1Z999AA10123456784")
	suite.Require().NoError(suite.repository.Add(ctx, testPackage))

	consolidationID := kernel.NewUUID()
	suite.Require().NoError(testPackage.JoinConsolidation(consolidationID))
	suite.Require().NoError(suite.repository.Update(ctx, testPackage))

	joined, err := suite.repository.Get(ctx, testPackage.ID())
	suite.Require().NoError(err)
	suite.Require().NotNil(joined.ConsolidationID())
	suite.Equal(pack.Consolidated, joined.Status())

	suite.Require().NoError(testPackage.ReleaseFromConsolidation())
	suite.Require().NoError(suite.repository.Update(ctx, testPackage))

	released, err := suite.repository.Get(ctx, testPackage.ID())
	suite.Require().NoError(err)
	suite.Nil(released.ConsolidationID())
	suite.Equal(pack.Received, released.Status())
}

func (suite *PackageRepositoryIntegrationTestSuite) TestGetByTrackingNumber_Miss_ReturnsNil() {
	ctx := context.Background()

	found, err := suite.repository.GetByTrackingNumber(ctx, "UNKNOWN")

	suite.Require().NoError(err)
	suite.Nil(found)
}

func (suite *PackageRepositoryIntegrationTestSuite) TestGetByTrackingNumber_Hit() {
	ctx := context.Background()
	testPackage := suite.createTestPackage("1Z999AA10123456784")
	suite.Require().NoError(suite.repository.Add(ctx, testPackage))

	found, err := suite.repository.GetByTrackingNumber(ctx, "1Z999AA10123456784")

	suite.Require().NoError(err)
	suite.Require().NotNil(found)
	suite.True(found.IsEqual(testPackage))
}

func (suite *PackageRepositoryIntegrationTestSuite) TestGetStoredLongerThan() {
	ctx := context.Background()

	old := suite.createTestPackageReceivedAt("OLD-1", time.Now().AddDate(0, 0, -45))
	fresh := suite.createTestPackageReceivedAt("FRESH-1", time.Now().AddDate(0, 0, -2))
	shippedOld := suite.createTestPackageReceivedAt("SHIPPED-1", time.Now().AddDate(0, 0, -60))
	suite.Require().NoError(shippedOld.ForceStatus(pack.Shipped))

	suite.Require().NoError(suite.repository.Add(ctx, old))
	suite.Require().NoError(suite.repository.Add(ctx, fresh))
	suite.Require().NoError(suite.repository.Add(ctx, shippedOld))

	packages, err := suite.repository.GetStoredLongerThan(ctx, 30)

	suite.Require().NoError(err)
	suite.Require().Len(packages, 1)
	suite.True(packages[0].IsEqual(old))
}

func (suite *PackageRepositoryIntegrationTestSuite) TestGetUnlinkedConsolidated() {
	ctx := context.Background()

	unlinked := suite.createTestPackage("UNLINKED-1")
	suite.Require().NoError(unlinked.ForceStatus(pack.Consolidated))

	linked := suite.createTestPackage("LINKED-1")
	suite.Require().NoError(linked.JoinConsolidation(kernel.NewUUID()))

	plain := suite.createTestPackage("PLAIN-1")

	suite.Require().NoError(suite.repository.Add(ctx, unlinked))
	suite.Require().NoError(suite.repository.Add(ctx, linked))
	suite.Require().NoError(suite.repository.Add(ctx, plain))

	packages, err := suite.repository.GetUnlinkedConsolidated(ctx)

	suite.Require().NoError(err)
	suite.Require().Len(packages, 1)
	suite.True(packages[0].IsEqual(unlinked))
}

// createTestPackage creates a received package with typical measurements.
func (suite *PackageRepositoryIntegrationTestSuite) createTestPackage(trackingNumber string) *pack.Package {
	return suite.createTestPackageReceivedAt(trackingNumber, time.Now())
}

func (suite *PackageRepositoryIntegrationTestSuite) createTestPackageReceivedAt(
	trackingNumber string, receivedAt time.Time,
) *pack.Package {
	owner, err := kernel.OwnerRefFromID(kernel.NewUUID())
	suite.Require().NoError(err)
	weight, err := kernel.NewWeight(2.5, kernel.Kilograms)
	suite.Require().NoError(err)
	dimensions, err := kernel.NewDimensions(30, 20, 10, kernel.Centimeters)
	suite.Require().NoError(err)
	value, err := kernel.NewMoney(80, kernel.DefaultCurrency)
	suite.Require().NoError(err)

	testPackage, err := pack.NewPackage(kernel.NewUUID(), owner, trackingNumber,
		"amazon", "usb hub", weight, dimensions, value, receivedAt)
	suite.Require().NoError(err)
	return testPackage
}

func (suite *PackageRepositoryIntegrationTestSuite) assertPackageCount(expected int) {
	var count int64
	err := suite.db.Model(&packagerepo.PackageDTO{}).Count(&count).Error
	suite.Require().NoError(err)
	suite.Equal(int64(expected), count)
}

func TestPackageRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(PackageRepositoryIntegrationTestSuite))
}
