package persistence

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	appissuance "github.com/inventory/backend/internal/application/issuance"
	"github.com/inventory/backend/internal/domain/catalog"
	"github.com/inventory/backend/internal/domain/identity"
	"github.com/inventory/backend/internal/domain/inventory"
	"github.com/inventory/backend/internal/domain/issuance"
	"github.com/inventory/backend/internal/domain/shared"
	"github.com/inventory/backend/internal/domain/system"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newSQLiteDB opens a throwaway sqlite database with the full schema
func newSQLiteDB(t *testing.T) *gorm.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "inventory.db")
	db, err := gorm.Open(sqlite.Open(SQLiteDSN(path)), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, (&Database{DB: db}).AutoMigrate())
	return db
}

type fixture struct {
	category *catalog.Category
	unit     *catalog.Unit
	item     *catalog.Item
	location *inventory.Location
}

func seedCatalog(t *testing.T, db *gorm.DB) fixture {
	t.Helper()
	ctx := context.Background()

	category, err := catalog.NewCategory("Electronics")
	require.NoError(t, err)
	require.NoError(t, NewGormCategoryRepository(db).Save(ctx, category))

	unit, err := catalog.NewUnit("Piece", "pcs", 1)
	require.NoError(t, err)
	require.NoError(t, NewGormUnitRepository(db).Save(ctx, unit))

	item, err := catalog.NewItem("cab-001", "USB Cable", category.ID, unit.ID)
	require.NoError(t, err)
	require.NoError(t, item.SetMinStock(decimal.NewFromInt(5)))
	require.NoError(t, NewGormItemRepository(db).Save(ctx, item))

	location, err := inventory.NewLocation("Main Warehouse", "wh-1")
	require.NoError(t, err)
	require.NoError(t, NewGormLocationRepository(db).Save(ctx, location))

	return fixture{category: category, unit: unit, item: item, location: location}
}

func listFilter(search string) shared.Filter {
	f := shared.DefaultFilter()
	f.Search = search
	return f
}

func TestGormCategoryRepository_SQLite(t *testing.T) {
	db := newSQLiteDB(t)
	repo := NewGormCategoryRepository(db)
	ctx := context.Background()

	for _, name := range []string{"Cables", "Tools", "100% Cotton", "Snake_Case"} {
		c, err := catalog.NewCategory(name)
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, c))
		assert.NotZero(t, c.ID)
	}

	t.Run("search is case-insensitive", func(t *testing.T) {
		rows, total, err := repo.FindAll(ctx, listFilter("CAB"))
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, rows, 1)
		assert.Equal(t, "Cables", rows[0].Name)
	})

	t.Run("wildcards are matched literally", func(t *testing.T) {
		_, total, err := repo.FindAll(ctx, listFilter("%"))
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)

		_, total, err = repo.FindAll(ctx, listFilter("_"))
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
	})

	t.Run("sorts and paginates", func(t *testing.T) {
		f := shared.DefaultFilter()
		f.OrderBy = "name"
		f.OrderDir = "desc"
		f.PageSize = 2
		rows, total, err := repo.FindAll(ctx, f)
		require.NoError(t, err)
		assert.Equal(t, int64(4), total)
		require.Len(t, rows, 2)
		assert.Equal(t, "Tools", rows[0].Name)
		assert.Equal(t, "Snake_Case", rows[1].Name)
	})

	t.Run("exists by name ignores case and excluded id", func(t *testing.T) {
		rows, _, err := repo.FindAll(ctx, listFilter("tools"))
		require.NoError(t, err)
		require.Len(t, rows, 1)

		exists, err := repo.ExistsByName(ctx, "TOOLS", 0)
		require.NoError(t, err)
		assert.True(t, exists)

		exists, err = repo.ExistsByName(ctx, "tools", rows[0].ID)
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("duplicate name maps to already exists", func(t *testing.T) {
		c, err := catalog.NewCategory("Cables")
		require.NoError(t, err)
		assert.ErrorIs(t, repo.Save(ctx, c), shared.ErrAlreadyExists)
	})

	t.Run("delete missing category", func(t *testing.T) {
		assert.ErrorIs(t, repo.Delete(ctx, 9999), shared.ErrNotFound)
	})
}

func TestGormItemRepository_SQLite(t *testing.T) {
	db := newSQLiteDB(t)
	fx := seedCatalog(t, db)
	repo := NewGormItemRepository(db)
	ctx := context.Background()

	other, err := catalog.NewItem("hdmi-2", "HDMI Cable", fx.category.ID, fx.unit.ID)
	require.NoError(t, err)
	require.NoError(t, other.SetBarcode("4006381333931"))
	other.Deactivate()
	require.NoError(t, repo.Save(ctx, other))

	t.Run("find by id", func(t *testing.T) {
		found, err := repo.FindByID(ctx, fx.item.ID)
		require.NoError(t, err)
		assert.Equal(t, "CAB-001", found.SKU)
		assert.True(t, found.MinStock.Equal(decimal.NewFromInt(5)))
	})

	t.Run("active only filter", func(t *testing.T) {
		f := listFilter("").WithFilter("active_only", true)
		_, total, err := repo.FindAll(ctx, f)
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)

		_, total, err = repo.FindAll(ctx, listFilter("cable"))
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
	})

	t.Run("search matches barcode", func(t *testing.T) {
		rows, _, err := repo.FindAll(ctx, listFilter("40063813"))
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "HDMI-2", rows[0].SKU)
	})

	t.Run("uniqueness checks", func(t *testing.T) {
		exists, err := repo.ExistsBySKU(ctx, "cab-001", 0)
		require.NoError(t, err)
		assert.True(t, exists)

		exists, err = repo.ExistsBySKU(ctx, "cab-001", fx.item.ID)
		require.NoError(t, err)
		assert.False(t, exists)

		exists, err = repo.ExistsByBarcode(ctx, "4006381333931", 0)
		require.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("reference counts", func(t *testing.T) {
		n, err := repo.CountByCategory(ctx, fx.category.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(2), n)

		n, err = repo.CountByUnit(ctx, fx.unit.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(2), n)

		n, err = repo.Count(ctx, true)
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)
	})

	t.Run("find by ids and active", func(t *testing.T) {
		items, err := repo.FindByIDs(ctx, []int64{fx.item.ID, other.ID, 404})
		require.NoError(t, err)
		assert.Len(t, items, 2)

		active, err := repo.FindActive(ctx)
		require.NoError(t, err)
		require.Len(t, active, 1)
		assert.Equal(t, fx.item.ID, active[0].ID)
	})
}

func TestGormStockLevelRepository_SQLite(t *testing.T) {
	db := newSQLiteDB(t)
	fx := seedCatalog(t, db)
	repo := NewGormStockLevelRepository(db)
	ctx := context.Background()

	t.Run("get for update creates the row at zero", func(t *testing.T) {
		level, err := repo.GetForUpdate(ctx, fx.item.ID, fx.location.ID)
		require.NoError(t, err)
		assert.NotZero(t, level.ID)
		assert.True(t, level.QtyOnHand.IsZero())

		again, err := repo.GetForUpdate(ctx, fx.item.ID, fx.location.ID)
		require.NoError(t, err)
		assert.Equal(t, level.ID, again.ID)
	})

	t.Run("save and list with labels", func(t *testing.T) {
		level, err := repo.GetForUpdate(ctx, fx.item.ID, fx.location.ID)
		require.NoError(t, err)
		require.NoError(t, level.Apply(decimal.NewFromInt(3), false))
		require.NoError(t, repo.Save(ctx, level))

		rows, total, err := repo.FindAll(ctx, listFilter("wh-1"))
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, rows, 1)
		assert.Equal(t, "CAB-001", rows[0].ItemSKU)
		assert.Equal(t, "WH-1", rows[0].LocationCode)
		assert.True(t, rows[0].QtyOnHand.Equal(decimal.NewFromInt(3)))
		assert.True(t, rows[0].BelowMinimum())
	})

	t.Run("below minimum filter and count", func(t *testing.T) {
		f := listFilter("").WithFilter("below_min", true)
		_, total, err := repo.FindAll(ctx, f)
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)

		n, err := repo.CountBelowMinimum(ctx, 0)
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)
	})

	t.Run("existence checks", func(t *testing.T) {
		exists, err := repo.ExistsForItem(ctx, fx.item.ID)
		require.NoError(t, err)
		assert.True(t, exists)

		exists, err = repo.ExistsForLocation(ctx, 777)
		require.NoError(t, err)
		assert.False(t, exists)
	})
}

func TestGormStockTransactionRepository_SQLite(t *testing.T) {
	db := newSQLiteDB(t)
	fx := seedCatalog(t, db)
	repo := NewGormStockTransactionRepository(db)
	ctx := context.Background()

	dock, err := inventory.NewLocation("Loading Dock", "dock")
	require.NoError(t, err)
	require.NoError(t, NewGormLocationRepository(db).Save(ctx, dock))

	old := time.Now().Add(-30 * 24 * time.Hour)
	inputs := []inventory.TransactionInput{
		{ItemID: fx.item.ID, LocationID: fx.location.ID, TxType: inventory.TransactionTypeIn, Qty: decimal.NewFromInt(10), Ref: "PO-1", TxAt: &old},
		{ItemID: fx.item.ID, LocationID: fx.location.ID, TxType: inventory.TransactionTypeOut, Qty: decimal.NewFromInt(2), Note: "damaged"},
		{ItemID: fx.item.ID, LocationID: fx.location.ID, ToLocationID: &dock.ID, TxType: inventory.TransactionTypeTransfer, Qty: decimal.NewFromInt(1)},
	}
	for _, in := range inputs {
		tx, err := inventory.NewStockTransaction(in)
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, tx))
	}

	t.Run("defaults to newest first", func(t *testing.T) {
		rows, total, err := repo.FindAll(ctx, listFilter(""))
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		require.Len(t, rows, 3)
		assert.Equal(t, "PO-1", rows[2].Ref)
	})

	t.Run("filters by type and destination", func(t *testing.T) {
		_, total, err := repo.FindAll(ctx, listFilter("").WithFilter("tx_type", "OUT"))
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)

		_, total, err = repo.FindAll(ctx, listFilter("").WithFilter("location_id", dock.ID))
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
	})

	t.Run("search spans notes and location names", func(t *testing.T) {
		_, total, err := repo.FindAll(ctx, listFilter("DAMAGED"))
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)

		_, total, err = repo.FindAll(ctx, listFilter("main ware"))
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
	})

	t.Run("date range and count since", func(t *testing.T) {
		f := listFilter("").WithFilter("from", time.Now().Add(-24*time.Hour))
		_, total, err := repo.FindAll(ctx, f)
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)

		n, err := repo.CountSince(ctx, time.Now().Add(-7*24*time.Hour))
		require.NoError(t, err)
		assert.Equal(t, int64(2), n)
	})

	t.Run("history checks include transfer destinations", func(t *testing.T) {
		exists, err := repo.ExistsForLocation(ctx, dock.ID)
		require.NoError(t, err)
		assert.True(t, exists)

		exists, err = repo.ExistsForItem(ctx, fx.item.ID)
		require.NoError(t, err)
		assert.True(t, exists)
	})
}

func TestGormIssueRepositories_SQLite(t *testing.T) {
	db := newSQLiteDB(t)
	fx := seedCatalog(t, db)
	issues := NewGormIssueRepository(db)
	lines := NewGormIssueItemRepository(db)
	ctx := context.Background()

	draft, err := issuance.NewIssue("ISS-001", nil, "first")
	require.NoError(t, err)
	require.NoError(t, issues.Save(ctx, draft))

	approved, err := issuance.NewIssue("ISS-002", nil, "")
	require.NoError(t, err)
	require.NoError(t, approved.Approve(1))
	require.NoError(t, issues.Save(ctx, approved))

	line, err := issuance.NewIssueItem(draft.ID, fx.item.ID, decimal.NewFromInt(4))
	require.NoError(t, err)
	require.NoError(t, lines.Save(ctx, line))

	t.Run("find by code", func(t *testing.T) {
		found, err := issues.FindByCode(ctx, "ISS-002")
		require.NoError(t, err)
		assert.Equal(t, issuance.IssueStatusApproved, found.Status)

		_, err = issues.FindByCode(ctx, "nope")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("count by status", func(t *testing.T) {
		counts, err := issues.CountByStatus(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), counts[issuance.IssueStatusDraft])
		assert.Equal(t, int64(1), counts[issuance.IssueStatusApproved])
		assert.Zero(t, counts[issuance.IssueStatusIssued])
	})

	t.Run("status filter", func(t *testing.T) {
		rows, total, err := issues.FindAll(ctx, listFilter("").WithFilter("status", "draft"))
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		assert.Equal(t, "ISS-001", rows[0].Code)
	})

	t.Run("enriched lines", func(t *testing.T) {
		views, err := lines.FindViewsByIssue(ctx, draft.ID)
		require.NoError(t, err)
		require.Len(t, views, 1)
		assert.Equal(t, "CAB-001", views[0].ItemSKU)
		assert.Equal(t, "Electronics", views[0].CategoryName)
		assert.Equal(t, "pcs", views[0].UnitSymbol)

		_, total, err := lines.FindAll(ctx, listFilter("").WithFilter("issue_id", draft.ID))
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
	})

	t.Run("duplicate line is rejected", func(t *testing.T) {
		exists, err := lines.ExistsByIssueAndItem(ctx, draft.ID, fx.item.ID)
		require.NoError(t, err)
		assert.True(t, exists)

		dup, err := issuance.NewIssueItem(draft.ID, fx.item.ID, decimal.NewFromInt(1))
		require.NoError(t, err)
		assert.ErrorIs(t, lines.SaveBatch(ctx, []*issuance.IssueItem{dup}), shared.ErrAlreadyExists)
	})

	t.Run("delete lines then issue", func(t *testing.T) {
		require.NoError(t, lines.DeleteByIssue(ctx, draft.ID))
		require.NoError(t, issues.Delete(ctx, draft.ID))
		n, err := lines.Count(ctx)
		require.NoError(t, err)
		assert.Zero(t, n)
	})
}

func TestGormUserRepository_SQLite(t *testing.T) {
	db := newSQLiteDB(t)
	repo := NewGormUserRepository(db)
	ctx := context.Background()

	admin, err := identity.NewUser("Ada", "Ada@Example.com", identity.RoleAdmin)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, admin))

	staff, err := identity.NewDirectoryUser("oid-123", "Bob", "bob@example.com")
	require.NoError(t, err)
	auditor, err := identity.NewUser("Cy", "cy@example.com", identity.RoleAuditor)
	require.NoError(t, err)
	require.NoError(t, repo.SaveBatch(ctx, []*identity.User{staff, auditor}))

	t.Run("find by email and directory id", func(t *testing.T) {
		found, err := repo.FindByEmail(ctx, "ADA@example.com")
		require.NoError(t, err)
		assert.Equal(t, admin.ID, found.ID)

		found, err = repo.FindByDirectoryID(ctx, "oid-123")
		require.NoError(t, err)
		assert.Equal(t, "bob@example.com", found.Email)
	})

	t.Run("existing emails", func(t *testing.T) {
		emails, err := repo.ExistingEmails(ctx, []string{"new@example.com", "CY@example.com", "ada@example.com"})
		require.NoError(t, err)
		assert.Equal(t, []string{"ada@example.com", "cy@example.com"}, emails)
	})

	t.Run("role and active filters", func(t *testing.T) {
		_, total, err := repo.FindAll(ctx, listFilter("").WithFilter("role", "staff"))
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)

		require.NoError(t, auditor.Deactivate())
		require.NoError(t, repo.Save(ctx, auditor))
		_, total, err = repo.FindAll(ctx, listFilter("").WithFilter("active", false))
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
	})

	t.Run("duplicate email in batch", func(t *testing.T) {
		dup, err := identity.NewUser("Ada Two", "ada@example.com", identity.RoleStaff)
		require.NoError(t, err)
		assert.ErrorIs(t, repo.SaveBatch(ctx, []*identity.User{dup}), shared.ErrAlreadyExists)
	})
}

func TestGormSettingsRepository_SQLite(t *testing.T) {
	db := newSQLiteDB(t)
	repo := NewGormSettingsRepository(db)
	ctx := context.Background()

	settings, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, system.DefaultAppName, settings.AppName)
	assert.True(t, settings.EnableNotifications)

	name := "Stores"
	allow := true
	require.NoError(t, settings.Apply(system.SettingsPatch{AppName: &name, AllowNegativeStock: &allow}, "admin@example.com"))
	require.NoError(t, repo.Save(ctx, settings))

	reloaded, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Stores", reloaded.AppName)
	assert.True(t, reloaded.AllowNegativeStock)
	require.NotNil(t, reloaded.UpdatedBy)
	assert.Equal(t, "admin@example.com", *reloaded.UpdatedBy)
}

func TestGormBackupSource_SQLite(t *testing.T) {
	db := newSQLiteDB(t)
	seedCatalog(t, db)
	_, err := NewGormSettingsRepository(db).Get(context.Background())
	require.NoError(t, err)

	exports, err := NewGormBackupSource(db).ExportTables(context.Background())
	require.NoError(t, err)
	require.Len(t, exports, len(BackupTables))

	byName := make(map[string]int)
	for _, e := range exports {
		byName[e.Name] = len(e.Rows)
	}
	assert.Equal(t, 1, byName["settings"])
	assert.Equal(t, 1, byName["items"])
	assert.Equal(t, 0, byName["issues"])
}

func TestGormTransactionScope_SQLite(t *testing.T) {
	db := newSQLiteDB(t)
	fx := seedCatalog(t, db)
	ctx := context.Background()

	t.Run("rolls back every write on error", func(t *testing.T) {
		err := NewGormIssueTransactionScope(db).Execute(ctx, func(repos appissuance.TransactionalRepositories) error {
			level, err := repos.StockLevelRepo().GetForUpdate(ctx, fx.item.ID, fx.location.ID)
			if err != nil {
				return err
			}
			if err := level.Apply(decimal.NewFromInt(9), false); err != nil {
				return err
			}
			if err := repos.StockLevelRepo().Save(ctx, level); err != nil {
				return err
			}
			return shared.ErrInsufficientStock
		})
		assert.ErrorIs(t, err, shared.ErrInsufficientStock)

		exists, err := NewGormStockLevelRepository(db).ExistsForItem(ctx, fx.item.ID)
		require.NoError(t, err)
		assert.False(t, exists)
	})
}
