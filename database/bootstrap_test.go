package database

import (
	"path/filepath"
	"testing"

	sqlite "github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"nippo/entities"
)

func TestOpenCreatesSchema(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "nippo.db"))
	require.NoError(t, err)
	defer Close(db)

	for _, table := range []string{"users", "posts", "report_images", "weekly_plans", "reactions", "comments", "notifications", "stores"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}

	var fk int
	require.NoError(t, db.Raw("PRAGMA foreign_keys").Scan(&fk).Error)
	assert.Equal(t, 1, fk)
}

func TestReactionTypeIsConstrained(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "nippo.db"))
	require.NoError(t, err)
	defer Close(db)

	ok := entities.Reaction{UserID: 1, TargetType: entities.TargetPost, TargetID: 1, Type: entities.ReactionLike}
	require.NoError(t, db.Create(&ok).Error)

	bad := entities.Reaction{UserID: 1, TargetType: entities.TargetPost, TargetID: 1, Type: "love"}
	assert.Error(t, db.Create(&bad).Error)
}

func TestOpenRebuildsLegacyReactions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "legacy.db")

	legacy, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	require.NoError(t, err)
	for _, stmt := range []string{
		`CREATE TABLE reactions (id INTEGER PRIMARY KEY AUTOINCREMENT, user_id INTEGER, post_id INTEGER, type TEXT, created_at DATETIME)`,
		`INSERT INTO reactions (user_id, post_id, type, created_at) VALUES (1, 7, 'like', CURRENT_TIMESTAMP)`,
		`INSERT INTO reactions (user_id, post_id, type, created_at) VALUES (2, 7, 'nice_fight', CURRENT_TIMESTAMP)`,
		`INSERT INTO reactions (user_id, post_id, type, created_at) VALUES (3, 7, 'heart', CURRENT_TIMESTAMP)`,
	} {
		require.NoError(t, legacy.Exec(stmt).Error)
	}
	require.NoError(t, Close(legacy))

	db, err := Open(path)
	require.NoError(t, err)
	defer Close(db)

	var rows []entities.Reaction
	require.NoError(t, db.Order("id").Find(&rows).Error)
	require.Len(t, rows, 2)
	for _, r := range rows {
		assert.Equal(t, entities.TargetPost, r.TargetType)
		assert.Equal(t, uint(7), r.TargetID)
		assert.True(t, r.Type.Valid())
	}

	var ddl string
	require.NoError(t, db.Raw(`SELECT sql FROM sqlite_master WHERE type='table' AND name='reactions'`).Scan(&ddl).Error)
	assert.Contains(t, ddl, "chk_reactions_type")
}
