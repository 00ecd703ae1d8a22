// database/bootstrap.go
package database

import (
	"fmt"
	"strings"

	sqlite "github.com/glebarez/sqlite" // CGO-free driver
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"nippo/entities"
)

// Open opens (creating if needed) the single SQLite file that backs the
// application and brings the schema up to date.
func Open(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dsn(path)), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// run the rebuild BEFORE AutoMigrate so the CHECK constraint lands on old files too
	if err := migrateReactionsAddCheck(db); err != nil {
		return nil, fmt.Errorf("migrate reactions: %w", err)
	}

	if err := db.AutoMigrate(
		&entities.User{},
		&entities.Post{},
		&entities.ReportImage{},
		&entities.WeeklyPlan{},
		&entities.Reaction{},
		&entities.Comment{},
		&entities.Notification{},
		&entities.Store{},
	); err != nil {
		return nil, fmt.Errorf("automigrate: %w", err)
	}
	return db, nil
}

func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func dsn(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	// writers from several sessions wait on the file lock instead of failing fast
	return path + sep + "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
}

// migrateReactionsAddCheck rebuilds reactions if it was created without the
// reaction type CHECK (files written by the first version of the app).
// Rows with a type outside the enumerated set are not carried over.
func migrateReactionsAddCheck(db *gorm.DB) error {
	var ddl string
	if err := db.Raw(`SELECT sql FROM sqlite_master WHERE type='table' AND name='reactions'`).Scan(&ddl).Error; err != nil {
		return fmt.Errorf("check table exist: %w", err)
	}
	if ddl == "" || strings.Contains(strings.ToUpper(ddl), "CHECK") {
		return nil
	}

	type colInfo struct {
		Cid  int
		Name string
		Type string
		Pk   int
	}
	var cols []colInfo
	if err := db.Raw(`PRAGMA table_info(reactions)`).Scan(&cols).Error; err != nil {
		return fmt.Errorf("table_info: %w", err)
	}
	oldCols := map[string]bool{}
	for _, c := range cols {
		oldCols[strings.ToLower(c.Name)] = true
	}
	sel := func(name, fallback string) string {
		if oldCols[name] {
			return name
		}
		return fallback + " AS " + name
	}

	createSQL := `
CREATE TABLE reactions_new (
    id integer PRIMARY KEY AUTOINCREMENT,
    user_id integer NOT NULL,
    target_type text NOT NULL,
    target_id integer NOT NULL,
    type text NOT NULL,
    created_at datetime,
    CONSTRAINT chk_reactions_type CHECK (type IN ('like','nice_fight'))
);
`
	// the first schema only knew reactions on posts, keyed by post_id
	target := sel("target_id", "post_id")
	if !oldCols["target_id"] && !oldCols["post_id"] {
		target = "0 AS target_id"
	}
	copySQL := fmt.Sprintf(`
INSERT INTO reactions_new (id, user_id, target_type, target_id, type, created_at)
SELECT id, %s, %s, %s, type, %s FROM reactions WHERE type IN ('like','nice_fight');
`,
		sel("user_id", "0"),
		sel("target_type", "'post'"),
		target,
		sel("created_at", "CURRENT_TIMESTAMP"),
	)

	return db.Transaction(func(tx *gorm.DB) error {
		for _, stmt := range []string{
			`PRAGMA foreign_keys=OFF`,
			createSQL,
			copySQL,
			`DROP TABLE reactions`,
			`ALTER TABLE reactions_new RENAME TO reactions`,
			`PRAGMA foreign_keys=ON`,
		} {
			if err := tx.Exec(stmt).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
