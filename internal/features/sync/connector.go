package sync

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
)

// DirectoryConnector reads the corporate HR database (the directory source of
// truth) over database/sql. Supports PostgreSQL and MySQL deployments.
type DirectoryConnector struct {
	dbType string // "postgresql" or "mysql"
	db     *sql.DB
}

func NewDirectoryConnector(dbType string) *DirectoryConnector {
	return &DirectoryConnector{dbType: dbType}
}

// Connect establishes connection to the external database
func (c *DirectoryConnector) Connect(ctx context.Context, config map[string]string) error {
	connStr, err := c.buildConnectionString(config)
	if err != nil {
		return fmt.Errorf("failed to build connection string: %w", err)
	}

	driver := c.dbType
	if c.dbType == "postgresql" {
		driver = "postgres"
	}

	db, err := sql.Open(driver, connStr)
	if err != nil {
		return fmt.Errorf("failed to open database connection: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(2)

	c.db = db
	return nil
}

func (c *DirectoryConnector) Disconnect(ctx context.Context) error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}

func (c *DirectoryConnector) buildConnectionString(config map[string]string) (string, error) {
	host := config["host"]
	port := config["port"]
	user := config["user"]
	password := config["password"]
	database := config["database"]

	if host == "" || database == "" {
		return "", fmt.Errorf("host and database are required")
	}

	switch c.dbType {
	case "postgresql":
		sslmode := config["sslmode"]
		if sslmode == "" {
			sslmode = "disable"
		}
		return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			host, port, user, password, database, sslmode), nil
	case "mysql":
		return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true",
			user, password, host, port, database), nil
	default:
		return "", fmt.Errorf("unsupported database type: %s", c.dbType)
	}
}

// FetchEmployees pulls the current directory snapshot.
func (c *DirectoryConnector) FetchEmployees(ctx context.Context) ([]directoryRow, error) {
	if c.db == nil {
		return nil, fmt.Errorf("database connection not established")
	}

	rows, err := c.db.QueryContext(ctx,
		`SELECT employee_id, full_name, email, is_active FROM hr_employees`)
	if err != nil {
		return nil, fmt.Errorf("failed to query employees: %w", err)
	}
	defer rows.Close()

	var out []directoryRow
	for rows.Next() {
		var r directoryRow
		var email sql.NullString
		if err := rows.Scan(&r.EmployeeID, &r.FullName, &email, &r.Active); err != nil {
			return nil, err
		}
		r.Email = email.String
		out = append(out, r)
	}
	return out, rows.Err()
}

// FetchAssignments pulls the active manager assignments, ordered so chains
// come out grouped per employee.
func (c *DirectoryConnector) FetchAssignments(ctx context.Context) ([]assignmentRow, error) {
	if c.db == nil {
		return nil, fmt.Errorf("database connection not established")
	}

	rows, err := c.db.QueryContext(ctx,
		`SELECT employee_id, manager_id, rank FROM hr_manager_assignments WHERE is_active ORDER BY employee_id, rank`)
	if err != nil {
		return nil, fmt.Errorf("failed to query assignments: %w", err)
	}
	defer rows.Close()

	var out []assignmentRow
	for rows.Next() {
		var r assignmentRow
		if err := rows.Scan(&r.EmployeeID, &r.ManagerID, &r.Rank); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
