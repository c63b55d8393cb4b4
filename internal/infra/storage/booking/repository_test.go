package booking

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// Репозиторий и миграция описывают одну и ту же таблицу независимо
// друг от друга. Тест ловит расхождение списков колонок до выката.
func TestBookingsMigrationContainsQueriedColumns(t *testing.T) {
	raw, err := os.ReadFile(filepath.Join("..", "..", "..", "..", "migrations", "000003_create_bookings.up.sql"))
	require.NoError(t, err)

	schema := string(raw)
	body := schema[strings.Index(schema, "("):]

	queried := append([]string{}, bookingColumns...)
	// deleted_at не сканируется, но фильтрует каждый SELECT и UPDATE
	queried = append(queried, "deleted_at")

	for _, column := range queried {
		require.Contains(t, body, "\n    "+column, "column %q is queried by the repository but missing from the migration", column)
	}
}
