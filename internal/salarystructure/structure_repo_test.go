package salarystructure_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"go-hrm/internal/salarystructure"
)

// openGormOverMock membuka gorm di atas pool sqlmock TANPA expectation.
// Statement yang bocor keluar dari transaksi akan mendarat di pool ini
// dan langsung menggagalkan test.
func openGormOverMock(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	poolDB, poolMock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { poolDB.Close() })

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: poolDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		DisableAutomaticPing:   true,
	})
	assert.NoError(t, err)
	return gormDB, poolMock
}

func beginMockTx(t *testing.T) (*sql.Tx, sqlmock.Sqlmock) {
	t.Helper()

	txDB, txMock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { txDB.Close() })

	txMock.ExpectBegin()
	tx, err := txDB.Begin()
	assert.NoError(t, err)
	return tx, txMock
}

func TestStructureRepository_WithTx(t *testing.T) {
	t.Run("replace components runs on the bound transaction", func(t *testing.T) {
		gormDB, poolMock := openGormOverMock(t)
		tx, txMock := beginMockTx(t)

		txMock.ExpectExec(`DELETE FROM "salary_components"`).
			WillReturnResult(sqlmock.NewResult(0, 2))
		txMock.ExpectCommit()

		repo := salarystructure.NewRepository(gormDB).WithTx(tx)
		err := repo.ReplaceComponents(context.Background(), uuid.New(), nil)
		assert.NoError(t, err)
		assert.NoError(t, tx.Commit())

		assert.NoError(t, txMock.ExpectationsWereMet())
		assert.NoError(t, poolMock.ExpectationsWereMet())
	})

	t.Run("rollback discards the delete", func(t *testing.T) {
		gormDB, poolMock := openGormOverMock(t)
		tx, txMock := beginMockTx(t)

		txMock.ExpectExec(`DELETE FROM "salary_components"`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		txMock.ExpectRollback()

		repo := salarystructure.NewRepository(gormDB).WithTx(tx)
		err := repo.ReplaceComponents(context.Background(), uuid.New(), nil)
		assert.NoError(t, err)
		assert.NoError(t, tx.Rollback())

		assert.NoError(t, txMock.ExpectationsWereMet())
		assert.NoError(t, poolMock.ExpectationsWereMet())
	})

	t.Run("without tx statements run on the pool", func(t *testing.T) {
		gormDB, poolMock := openGormOverMock(t)

		poolMock.ExpectExec(`DELETE FROM "salary_components"`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		repo := salarystructure.NewRepository(gormDB)
		err := repo.ReplaceComponents(context.Background(), uuid.New(), nil)
		assert.NoError(t, err)

		assert.NoError(t, poolMock.ExpectationsWereMet())
	})
}
