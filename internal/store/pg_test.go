package store

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/datatypes"
	pgdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/openmint/marketplace/internal/domain"
	"github.com/openmint/marketplace/internal/store/schema"
)

var (
	testDB      *gorm.DB
	pgContainer *postgres.PostgresContainer
)

// TestMain sets up the test database before running tests
func TestMain(m *testing.M) {
	ctx := context.Background()

	// Check if we should use an external database (for CI or local development)
	dbHost := os.Getenv("TEST_DB_HOST")
	dbPort := os.Getenv("TEST_DB_PORT")
	dbUser := os.Getenv("TEST_DB_USER")
	dbPassword := os.Getenv("TEST_DB_PASSWORD")
	dbName := os.Getenv("TEST_DB_NAME")

	var dsn string
	var err error

	if dbHost != "" {
		// Use external database
		if dbPort == "" {
			dbPort = "5432"
		}
		if dbUser == "" {
			dbUser = "postgres"
		}
		if dbPassword == "" {
			dbPassword = "postgres"
		}
		if dbName == "" {
			dbName = "test_db"
		}

		dsn = fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			dbHost, dbPort, dbUser, dbPassword, dbName)
	} else {
		// Start a PostgreSQL container for testing
		pgContainer, err = postgres.Run(ctx,
			"postgres:18-alpine",
			postgres.WithDatabase("test_db"),
			postgres.WithUsername("postgres"),
			postgres.WithPassword("postgres"),
			testcontainers.WithWaitStrategy(
				wait.ForLog("database system is ready to accept connections").
					WithOccurrence(2).
					WithStartupTimeout(30*time.Second)),
		)
		if err != nil {
			fmt.Printf("Failed to start PostgreSQL container: %v\n", err)
			os.Exit(1)
		}

		dsn, err = pgContainer.ConnectionString(ctx, "sslmode=disable")
		if err != nil {
			fmt.Printf("Failed to get connection string: %v\n", err)
			terminateContainer(ctx)
			os.Exit(1)
		}
	}

	testDB, err = gorm.Open(pgdriver.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		fmt.Printf("Failed to connect to database: %v\n", err)
		terminateContainer(ctx)
		os.Exit(1)
	}

	if err := Migrate(testDB); err != nil {
		fmt.Printf("Failed to migrate database: %v\n", err)
		terminateContainer(ctx)
		os.Exit(1)
	}

	code := m.Run()

	terminateContainer(ctx)
	os.Exit(code)
}

func terminateContainer(ctx context.Context) {
	if pgContainer != nil {
		if err := pgContainer.Terminate(ctx); err != nil {
			fmt.Printf("Failed to terminate PostgreSQL container: %v\n", err)
		}
	}
}

// initTestStore creates a store on a transaction rolled back after the test
func initTestStore(t *testing.T) Store {
	tx := testDB.Begin()
	require.NotNil(t, tx)
	require.NoError(t, tx.Error)

	t.Cleanup(func() {
		tx.Rollback()
	})

	return NewPGStore(tx)
}

func buildTestNFT(tokenNumber, owner string) *schema.NFT {
	return &schema.NFT{
		ContractAddress: "0x4e2bc3c9850263ba5eee209c4ede54b190e3cd41",
		TokenNumber:     tokenNumber,
		OwnerAddress:    owner,
		Name:            "Test Artwork " + tokenNumber,
		ImageURL:        "https://images.example.com/" + tokenNumber,
		MetadataURL:     "https://api.example.com/api/v1/metadata/" + tokenNumber,
		Price:           0.5,
		Listed:          true,
	}
}

func TestCreateAndGetNFT(t *testing.T) {
	if testDB == nil {
		t.Fatal("Test database not initialized")
	}
	s := initTestStore(t)
	ctx := context.Background()

	nft := buildTestNFT("1", "0xAAAA567890123456789012345678901234567890")
	require.NoError(t, s.CreateNFT(ctx, nft))

	got, err := s.GetNFT(ctx, "0x4E2BC3C9850263BA5EEE209C4EDE54B190E3CD41", "1")
	require.NoError(t, err)
	// Addresses come back lowercased
	assert.Equal(t, "0xaaaa567890123456789012345678901234567890", got.OwnerAddress)
	assert.Equal(t, "Test Artwork 1", got.Name)
	assert.True(t, got.Listed)
}

func TestCreateNFT_Duplicate(t *testing.T) {
	if testDB == nil {
		t.Fatal("Test database not initialized")
	}
	s := initTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.CreateNFT(ctx, buildTestNFT("2", "0xaaaa567890123456789012345678901234567890")))
	err := s.CreateNFT(ctx, buildTestNFT("2", "0xbbbb567890123456789012345678901234567890"))
	assert.ErrorIs(t, err, domain.ErrDuplicateRecord)
}

func TestGetNFT_NotFound(t *testing.T) {
	if testDB == nil {
		t.Fatal("Test database not initialized")
	}
	s := initTestStore(t)

	_, err := s.GetNFT(context.Background(), "0x4e2bc3c9850263ba5eee209c4ede54b190e3cd41", "999999")
	assert.ErrorIs(t, err, domain.ErrTokenNotFound)
}

func TestListNFTsByOwner(t *testing.T) {
	if testDB == nil {
		t.Fatal("Test database not initialized")
	}
	s := initTestStore(t)
	ctx := context.Background()

	owner := "0xcccc567890123456789012345678901234567890"
	require.NoError(t, s.CreateNFT(ctx, buildTestNFT("10", owner)))
	require.NoError(t, s.CreateNFT(ctx, buildTestNFT("11", owner)))
	require.NoError(t, s.CreateNFT(ctx, buildTestNFT("12", "0xdddd567890123456789012345678901234567890")))

	nfts, err := s.ListNFTsByOwner(ctx, owner)
	require.NoError(t, err)
	assert.Len(t, nfts, 2)
}

func TestListListedNFTs(t *testing.T) {
	if testDB == nil {
		t.Fatal("Test database not initialized")
	}
	s := initTestStore(t)
	ctx := context.Background()

	listed := buildTestNFT("20", "0xaaaa567890123456789012345678901234567890")
	unlisted := buildTestNFT("21", "0xaaaa567890123456789012345678901234567890")
	unlisted.Listed = false
	require.NoError(t, s.CreateNFT(ctx, listed))
	require.NoError(t, s.CreateNFT(ctx, unlisted))

	nfts, err := s.ListListedNFTs(ctx)
	require.NoError(t, err)
	require.Len(t, nfts, 1)
	assert.Equal(t, "20", nfts[0].TokenNumber)
}

func TestUpdateListing(t *testing.T) {
	if testDB == nil {
		t.Fatal("Test database not initialized")
	}
	s := initTestStore(t)
	ctx := context.Background()

	nft := buildTestNFT("30", "0xaaaa567890123456789012345678901234567890")
	require.NoError(t, s.CreateNFT(ctx, nft))

	require.NoError(t, s.UpdateListing(ctx, nft.ContractAddress, "30", 2.5, false))

	got, err := s.GetNFT(ctx, nft.ContractAddress, "30")
	require.NoError(t, err)
	assert.Equal(t, 2.5, got.Price)
	assert.False(t, got.Listed)

	err = s.UpdateListing(ctx, nft.ContractAddress, "999999", 1, true)
	assert.ErrorIs(t, err, domain.ErrTokenNotFound)
}

func TestRecordTransfer(t *testing.T) {
	if testDB == nil {
		t.Fatal("Test database not initialized")
	}
	s := initTestStore(t)
	ctx := context.Background()

	from := "0xaaaa567890123456789012345678901234567890"
	to := "0xbbbb567890123456789012345678901234567890"
	nft := buildTestNFT("40", from)
	require.NoError(t, s.CreateNFT(ctx, nft))

	transfer := &schema.Transfer{
		FromAddress: from,
		ToAddress:   "0xBBBB567890123456789012345678901234567890",
		TxHash:      "0xtransfer40",
	}
	require.NoError(t, s.RecordTransfer(ctx, nft.ContractAddress, "40", transfer))

	// Ownership moved and the token was delisted
	got, err := s.GetNFT(ctx, nft.ContractAddress, "40")
	require.NoError(t, err)
	assert.Equal(t, to, got.OwnerAddress)
	assert.False(t, got.Listed)

	transfers, err := s.ListTransfersByToken(ctx, nft.ContractAddress, "40")
	require.NoError(t, err)
	require.Len(t, transfers, 1)
	assert.Equal(t, from, transfers[0].FromAddress)
	assert.Equal(t, to, transfers[0].ToAddress)
}

func TestRecordTransfer_DuplicateTxHash(t *testing.T) {
	if testDB == nil {
		t.Fatal("Test database not initialized")
	}
	s := initTestStore(t)
	ctx := context.Background()

	nft := buildTestNFT("41", "0xaaaa567890123456789012345678901234567890")
	require.NoError(t, s.CreateNFT(ctx, nft))

	transfer := func() *schema.Transfer {
		return &schema.Transfer{
			FromAddress: "0xaaaa567890123456789012345678901234567890",
			ToAddress:   "0xbbbb567890123456789012345678901234567890",
			TxHash:      "0xtransfer41",
		}
	}
	require.NoError(t, s.RecordTransfer(ctx, nft.ContractAddress, "41", transfer()))

	// Replaying the same confirmed transaction must not create a second row
	err := s.RecordTransfer(ctx, nft.ContractAddress, "41", transfer())
	assert.ErrorIs(t, err, domain.ErrDuplicateRecord)
}

func TestRecordTransfer_UnknownToken(t *testing.T) {
	if testDB == nil {
		t.Fatal("Test database not initialized")
	}
	s := initTestStore(t)

	err := s.RecordTransfer(context.Background(), "0x4e2bc3c9850263ba5eee209c4ede54b190e3cd41", "999999", &schema.Transfer{
		FromAddress: "0xaaaa567890123456789012345678901234567890",
		ToAddress:   "0xbbbb567890123456789012345678901234567890",
		TxHash:      "0xtransfer999999",
	})
	assert.ErrorIs(t, err, domain.ErrTokenNotFound)
}

func TestUpsertUser(t *testing.T) {
	if testDB == nil {
		t.Fatal("Test database not initialized")
	}
	s := initTestStore(t)
	ctx := context.Background()

	user := &schema.User{
		Address:  "0xAAAA567890123456789012345678901234567890",
		Username: "alice",
	}
	require.NoError(t, s.UpsertUser(ctx, user))

	got, err := s.GetUser(ctx, "0xaaaa567890123456789012345678901234567890")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "alice", got.Username)

	// Second upsert updates the profile in place
	require.NoError(t, s.UpsertUser(ctx, &schema.User{
		Address:  "0xaaaa567890123456789012345678901234567890",
		Username: "alice2",
		Email:    "alice@example.com",
	}))

	got, err = s.GetUser(ctx, "0xaaaa567890123456789012345678901234567890")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "alice2", got.Username)
	assert.Equal(t, "alice@example.com", got.Email)
}

func TestMetadataDocuments(t *testing.T) {
	if testDB == nil {
		t.Fatal("Test database not initialized")
	}
	s := initTestStore(t)
	ctx := context.Background()

	doc := &schema.MetadataDocument{
		ID:       "01J9Z0000000000000000000AA",
		Document: datatypes.JSON([]byte(`{"name":"Test","image":"https://images.example.com/1"}`)),
	}
	require.NoError(t, s.CreateMetadataDocument(ctx, doc))

	got, err := s.GetMetadataDocument(ctx, doc.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.JSONEq(t, `{"name":"Test","image":"https://images.example.com/1"}`, string(got.Document))

	missing, err := s.GetMetadataDocument(ctx, "does-not-exist")
	require.NoError(t, err)
	assert.Nil(t, missing)
}
