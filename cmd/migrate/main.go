package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/jackc/pgx/v5"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	// Get database URL
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is not set")
	}

	// Get command
	if len(os.Args) < 2 {
		fmt.Println("Usage: go run main.go [drop|up|seed]")
		os.Exit(1)
	}

	command := os.Args[1]

	// Connect to database
	ctx := context.Background()
	conn, err := pgx.Connect(ctx, dbURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer conn.Close(ctx)

	switch command {
	case "drop":
		if err := dropTables(ctx, conn); err != nil {
			log.Fatalf("Failed to drop tables: %v", err)
		}
		fmt.Println("✅ All tables dropped successfully")

	case "up":
		if err := createTables(ctx, conn); err != nil {
			log.Fatalf("Failed to create tables: %v", err)
		}
		fmt.Println("✅ All tables created successfully")

	case "seed":
		if err := seedData(ctx, conn); err != nil {
			log.Fatalf("Failed to seed data: %v", err)
		}
		fmt.Println("✅ Data seeded successfully")

	default:
		fmt.Printf("Unknown command: %s\n", command)
		fmt.Println("Usage: go run main.go [drop|up|seed]")
		os.Exit(1)
	}
}

func dropTables(ctx context.Context, conn *pgx.Conn) error {
	queries := []string{
		`DROP TABLE IF EXISTS ready_check_responses CASCADE`,
		`DROP TABLE IF EXISTS ready_checks CASCADE`,
		`DROP TABLE IF EXISTS group_members CASCADE`,
		`DROP TABLE IF EXISTS groups CASCADE`,
	}

	for _, query := range queries {
		if _, err := conn.Exec(ctx, query); err != nil {
			return fmt.Errorf("failed to execute query: %w", err)
		}
		fmt.Printf("  Dropped: %s\n", query)
	}

	return nil
}

func createTables(ctx context.Context, conn *pgx.Conn) error {
	queries := []string{
		// Create groups table. Status values are enforced by the application's
		// transition table; the CHECK keeps out garbage from manual writes.
		`CREATE TABLE IF NOT EXISTS groups (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			name VARCHAR(255) NOT NULL,
			status VARCHAR(30) NOT NULL DEFAULT 'draft'
				CHECK (status IN ('draft', 'confirmed', 'warming_up', 'ready_for_review',
					'approved', 'active', 'completed', 'cancelled', 'archived')),
			created_at TIMESTAMPTZ DEFAULT NOW(),
			updated_at TIMESTAMPTZ DEFAULT NOW()
		)`,

		// Create group_members table
		`CREATE TABLE IF NOT EXISTS group_members (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			group_id UUID NOT NULL REFERENCES groups(id) ON DELETE CASCADE,
			user_id VARCHAR(255) NOT NULL,
			display_name VARCHAR(255) NOT NULL,
			status VARCHAR(20) NOT NULL DEFAULT 'invited'
				CHECK (status IN ('active', 'invited', 'dropped')),
			prompt_response TEXT,
			readiness_confirmed_at TIMESTAMPTZ,
			created_at TIMESTAMPTZ DEFAULT NOW(),
			UNIQUE(group_id, user_id)
		)`,

		// Create ready_checks table. No open/closed column: active vs expired
		// is derived from expires_at at read time.
		`CREATE TABLE IF NOT EXISTS ready_checks (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			group_id UUID NOT NULL REFERENCES groups(id) ON DELETE CASCADE,
			title VARCHAR(200) NOT NULL,
			triggered_by UUID NOT NULL REFERENCES group_members(id),
			context_id VARCHAR(255),
			created_at TIMESTAMPTZ DEFAULT NOW(),
			expires_at TIMESTAMPTZ NOT NULL
		)`,

		// Create ready_check_responses table. The composite key makes a
		// re-submission an update, never a second row.
		`CREATE TABLE IF NOT EXISTS ready_check_responses (
			ready_check_id UUID NOT NULL REFERENCES ready_checks(id) ON DELETE CASCADE,
			member_id UUID NOT NULL REFERENCES group_members(id) ON DELETE CASCADE,
			response VARCHAR(10) NOT NULL CHECK (response IN ('go', 'maybe', 'no')),
			responded_at TIMESTAMPTZ DEFAULT NOW(),
			PRIMARY KEY (ready_check_id, member_id)
		)`,

		// Create indexes
		`CREATE INDEX IF NOT EXISTS idx_group_members_group_id ON group_members(group_id)`,
		`CREATE INDEX IF NOT EXISTS idx_group_members_user_id ON group_members(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_ready_checks_group_id ON ready_checks(group_id)`,
		`CREATE INDEX IF NOT EXISTS idx_ready_checks_expires_at ON ready_checks(expires_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_responses_check_id ON ready_check_responses(ready_check_id)`,
	}

	for _, query := range queries {
		if _, err := conn.Exec(ctx, query); err != nil {
			return fmt.Errorf("failed to execute query: %w\nQuery: %s", err, query)
		}
		fmt.Printf("  Created: %s\n", getTableName(query))
	}

	return nil
}

func seedData(ctx context.Context, conn *pgx.Conn) error {
	query := `
		WITH seeded_group AS (
			INSERT INTO groups (name, status) VALUES
			('Saturday Trail Squad', 'warming_up')
			RETURNING id
		)
		INSERT INTO group_members (group_id, user_id, display_name, status, prompt_response, readiness_confirmed_at)
		SELECT id, m.user_id, m.display_name, m.status, m.prompt_response, m.readiness_confirmed_at
		FROM seeded_group,
		(VALUES
			('seed-user-1', 'Ana', 'active', 'Bringing the trail map', NOW()),
			('seed-user-2', 'Ben', 'active', 'Driving the van', NULL),
			('seed-user-3', 'Cho', 'invited', NULL, NULL)
		) AS m(user_id, display_name, status, prompt_response, readiness_confirmed_at)
	`

	if _, err := conn.Exec(ctx, query); err != nil {
		return fmt.Errorf("failed to seed squad: %w", err)
	}

	fmt.Println("  Seeded 1 squad with 3 members")

	return nil
}

func getTableName(query string) string {
	if len(query) > 50 {
		return query[:50] + "..."
	}
	return query
}
