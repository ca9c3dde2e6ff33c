package integration_test

import (
	"context"
	"database/sql"
	"fmt"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/customchess/chessdb/internal/config"
	"github.com/customchess/chessdb/internal/database"
	"github.com/customchess/chessdb/internal/handlers"
	"github.com/customchess/chessdb/internal/models"
	"github.com/customchess/chessdb/internal/services"
	"github.com/customchess/chessdb/internal/types"
	"github.com/customchess/chessdb/internal/variant"
	"github.com/customchess/chessdb/tests/helpers"
	"github.com/docker/go-connections/nat"
	_ "github.com/go-sql-driver/mysql"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"
)

// imageFromEnv picks the container image from the environment with a
// fallback so the suite runs without extra setup.
func imageFromEnv(key, fallback string) string {
	if img := os.Getenv(key); img != "" {
		return img
	}
	return fallback
}

// TestWithPostgreSQL tests the service with a real PostgreSQL container
func TestWithPostgreSQL(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()

	// Start PostgreSQL container
	postgresContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        imageFromEnv("POSTGRES_IMAGE", "postgres:16-alpine"),
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_PASSWORD": "testpass",
				"POSTGRES_USER":     "testuser",
				"POSTGRES_DB":       "testdb",
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		t.Fatalf("Failed to start PostgreSQL container: %v", err)
	}
	defer func() {
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("Failed to terminate container: %v", err)
		}
	}()

	// Get container host and port
	host, err := postgresContainer.Host(ctx)
	if err != nil {
		t.Fatalf("Failed to get container host: %v", err)
	}

	port, err := postgresContainer.MappedPort(ctx, "5432")
	if err != nil {
		t.Fatalf("Failed to get container port: %v", err)
	}

	// Create config
	cfg := &config.Config{
		DBType:            "postgres",
		DBHost:            host,
		DBPort:            port.Port(),
		DBDatabase:        "testdb",
		DBUser:            "testuser",
		DBPassword:        "testpass",
		DBConnectionLimit: 5,
	}

	// Wait for database to be ready
	time.Sleep(2 * time.Second)

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		t.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	// Run migrations
	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	// Run tests
	t.Run("CustomItemLifecycle", func(t *testing.T) {
		testCustomItemLifecycle(t, db)
	})

	t.Run("CaseInsensitiveVariantLookup", func(t *testing.T) {
		testCaseInsensitiveVariantLookup(t, db)
	})

	t.Run("DeletePieceNullsReferences", func(t *testing.T) {
		testDeletePieceNullsReferences(t, db)
	})

	t.Run("HandlerDelete204Behavior", func(t *testing.T) {
		testHandlerDelete204Behavior(t, db)
	})

	t.Run("HealthCheck", func(t *testing.T) {
		testHealthCheck(t, cfg, db)
	})
}

// TestWithMariaDB tests the service with a real MariaDB container
func TestWithMariaDB(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()

	// Start MariaDB container
	mariadbContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        imageFromEnv("DB_IMAGE", "mariadb:11"),
			ExposedPorts: []string{"3306/tcp"},
			Env: map[string]string{
				"MYSQL_ROOT_PASSWORD": "rootpass",
				"MYSQL_DATABASE":      "testdb",
				"MYSQL_USER":          "testuser",
				"MYSQL_PASSWORD":      "testpass",
			},
			WaitingFor: wait.ForAll(
				wait.ForLog("ready for connections").WithStartupTimeout(60*time.Second),
				wait.ForListeningPort(nat.Port("3306/tcp")).WithStartupTimeout(60*time.Second),
			),
		},
		Started: true,
	})
	if err != nil {
		t.Fatalf("Failed to start MariaDB container: %v", err)
	}
	defer func() {
		if err := mariadbContainer.Terminate(ctx); err != nil {
			t.Logf("Failed to terminate MariaDB container: %v", err)
		}
	}()

	// Get container host and port
	host, err := mariadbContainer.Host(ctx)
	if err != nil {
		t.Fatalf("Failed to get container host: %v", err)
	}

	port, err := mariadbContainer.MappedPort(ctx, "3306")
	if err != nil {
		t.Fatalf("Failed to get container port: %v", err)
	}

	// Create config
	cfg := &config.Config{
		DBType:            "mysql",
		DBHost:            host,
		DBPort:            port.Port(),
		DBDatabase:        "testdb",
		DBUser:            "testuser",
		DBPassword:        "testpass",
		DBConnectionLimit: 5,
	}

	// Wait for database to be ready
	time.Sleep(5 * time.Second)

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		t.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	// Run migrations
	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	// Run tests
	t.Run("CustomItemLifecycle", func(t *testing.T) {
		testCustomItemLifecycle(t, db)
	})

	t.Run("CaseInsensitiveVariantLookup", func(t *testing.T) {
		testCaseInsensitiveVariantLookup(t, db)
	})

	t.Run("DeletePieceNullsReferences", func(t *testing.T) {
		testDeletePieceNullsReferences(t, db)
	})

	t.Run("HandlerDelete204Behavior", func(t *testing.T) {
		testHandlerDelete204Behavior(t, db)
	})

	t.Run("NullReferenceVisibleOverSQL", func(t *testing.T) {
		testNullReferenceVisibleOverSQL(t, db, cfg)
	})
}

// testCustomItemLifecycle runs a full create/list/get/update/delete
// round trip through the service layer.
func testCustomItemLifecycle(t *testing.T, db *gorm.DB) {
	piece := helpers.CreateTestPiece(t, db, helpers.TestPieceSpec{Price: "25.00"})
	resolver := variant.NewResolver(variant.DefaultConfig())

	name := helpers.UniqueName("lifecycle")
	created, err := services.CreateCustomItem(db, resolver, services.CustomItemInput{
		BasePieceID:      types.FlexUint64(piece.ID),
		CustomName:       name,
		SelectedColor:    piece.PieceColor,
		SelectedBoard:    piece.Chessboard,
		SelectedMaterial: piece.Material,
	})
	if err != nil {
		t.Fatalf("Failed to create custom item: %v", err)
	}
	if !created.Price.Equal(decimal.RequireFromString("25.00")) {
		t.Errorf("Expected resolved price 25.00, got %s", created.Price)
	}

	items, err := services.ListCustomItems(db)
	if err != nil {
		t.Fatalf("Failed to list custom items: %v", err)
	}
	found := false
	for _, item := range items {
		if item.ID == created.ID {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected item %d in listing", created.ID)
	}

	fetched, err := services.GetCustomItem(db, created.ID)
	if err != nil {
		t.Fatalf("Failed to get custom item: %v", err)
	}
	if fetched.CustomName != name {
		t.Errorf("Expected name %q, got %q", name, fetched.CustomName)
	}

	renamed := helpers.UniqueName("renamed")
	updated, err := services.UpdateCustomItem(db, resolver, created.ID, services.CustomItemInput{
		BasePieceID:      types.FlexUint64(piece.ID),
		CustomName:       renamed,
		SelectedColor:    piece.PieceColor,
		SelectedBoard:    piece.Chessboard,
		SelectedMaterial: piece.Material,
	})
	if err != nil {
		t.Fatalf("Failed to update custom item: %v", err)
	}
	if updated.CustomName != renamed {
		t.Errorf("Expected updated name %q, got %q", renamed, updated.CustomName)
	}

	if err := services.DeleteCustomItem(db, created.ID); err != nil {
		t.Fatalf("Failed to delete custom item: %v", err)
	}
	if _, err := services.GetCustomItem(db, created.ID); err == nil {
		t.Error("Expected not-found after delete")
	}
}

// testCaseInsensitiveVariantLookup verifies LOWER() matching holds on
// a real server rather than just sqlite.
func testCaseInsensitiveVariantLookup(t *testing.T, db *gorm.DB) {
	piece := helpers.CreateTestPiece(t, db, helpers.TestPieceSpec{
		Color:    "White",
		Material: "Stone",
		Board:    "black-white",
		Price:    "30.00",
	})

	lookup := services.NewCatalogLookup(db)
	match, err := lookup.FindVariant(piece.ID, "wHiTe", "sToNe")
	if err != nil {
		t.Fatalf("Variant lookup failed: %v", err)
	}
	if match == nil {
		t.Fatal("Expected a case-insensitive match")
	}
	if match.ID != piece.ID {
		t.Errorf("Expected match id %d, got %d", piece.ID, match.ID)
	}
}

// testDeletePieceNullsReferences checks that deleting a catalog piece
// detaches, not destroys, custom items built from it.
func testDeletePieceNullsReferences(t *testing.T, db *gorm.DB) {
	piece := helpers.CreateTestPiece(t, db, helpers.TestPieceSpec{})
	item := helpers.CreateTestCustomItem(t, db, piece)

	if _, err := services.DeleteChessPiece(db, piece.ID); err != nil {
		t.Fatalf("Failed to delete piece: %v", err)
	}

	var survivor models.CustomItem
	if err := db.First(&survivor, item.ID).Error; err != nil {
		t.Fatalf("Expected custom item to survive: %v", err)
	}
	if survivor.BasePieceID != nil {
		t.Errorf("Expected base_piece_id to be nulled, got %v", *survivor.BasePieceID)
	}
}

// testNullReferenceVisibleOverSQL repeats the detach check through a
// plain database/sql connection, outside gorm.
func testNullReferenceVisibleOverSQL(t *testing.T, db *gorm.DB, cfg *config.Config) {
	piece := helpers.CreateTestPiece(t, db, helpers.TestPieceSpec{})
	item := helpers.CreateTestCustomItem(t, db, piece)

	if _, err := services.DeleteChessPiece(db, piece.ID); err != nil {
		t.Fatalf("Failed to delete piece: %v", err)
	}

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=True",
		cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBDatabase)
	raw, err := sql.Open("mysql", dsn)
	if err != nil {
		t.Fatalf("Failed to open raw connection: %v", err)
	}
	defer raw.Close()

	var basePieceID sql.NullInt64
	row := raw.QueryRow("SELECT base_piece_id FROM custom_items WHERE id = ?", item.ID)
	if err := row.Scan(&basePieceID); err != nil {
		t.Fatalf("Failed to scan custom item: %v", err)
	}
	if basePieceID.Valid {
		t.Errorf("Expected NULL base_piece_id, got %d", basePieceID.Int64)
	}

	var count int
	row = raw.QueryRow("SELECT COUNT(*) FROM chess WHERE id = ?", piece.ID)
	if err := row.Scan(&count); err != nil {
		t.Fatalf("Failed to count chess rows: %v", err)
	}
	if count != 0 {
		t.Errorf("Expected piece %d to be gone, found %d rows", piece.ID, count)
	}
}

// testHandlerDelete204Behavior runs the delete route over HTTP against a
// real database: 204 with an empty body, then 404 on the repeat.
func testHandlerDelete204Behavior(t *testing.T, db *gorm.DB) {
	piece := helpers.CreateTestPiece(t, db, helpers.TestPieceSpec{})
	item := helpers.CreateTestCustomItem(t, db, piece)

	app := fiber.New()
	handler := &handlers.CustomItemsHandler{DB: db, Resolver: variant.NewResolver(variant.DefaultConfig())}
	app.Delete("/api/custom-items/:id", handler.DeleteCustomItem)

	path := fmt.Sprintf("/api/custom-items/%d", item.ID)

	req := httptest.NewRequest("DELETE", path, nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	helpers.AssertStatus(t, resp, 204)
	helpers.AssertNoContent(t, resp)

	req = httptest.NewRequest("DELETE", path, nil)
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	helpers.AssertStatus(t, resp, 404)
	if msg := helpers.ErrorMessage(t, resp); msg != "Custom piece not found." {
		t.Errorf("Unexpected error message: %q", msg)
	}
}

// testHealthCheck exercises the health service against a live database.
func testHealthCheck(t *testing.T, cfg *config.Config, db *gorm.DB) {
	result := services.HealthCheck(cfg, db)

	if result.Database != "ok" {
		t.Errorf("Expected database to be ok, got: %s", result.Database)
	}
	if result.Status != "healthy" {
		t.Errorf("Expected status to be healthy, got: %s", result.Status)
	}
}
