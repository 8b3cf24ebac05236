package database

import (
	"fmt"

	"github.com/Lumos-Labs-HQ/rowseed/internal/database/common"
	"github.com/Lumos-Labs-HQ/rowseed/internal/database/mysql"
	"github.com/Lumos-Labs-HQ/rowseed/internal/database/postgres"
	"github.com/Lumos-Labs-HQ/rowseed/internal/database/sqlite"
)

func NewAdapter(provider string) (DatabaseAdapter, error) {
	switch provider {
	case "sqlite", "sqlite3":
		return sqlite.New(), nil
	case "sqlite-pure":
		return sqlite.NewPure(), nil
	case "postgresql", "postgres":
		return postgres.New(), nil
	case "mysql":
		return mysql.New(), nil
	default:
		return nil, fmt.Errorf("unsupported database provider: %s. Supported providers: %v", provider, SupportedProviders)
	}
}

var _ DatabaseAdapter = (*common.SQLAdapter)(nil)
