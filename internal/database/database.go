package database

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/iabetor/mathspeak/internal/logger"
	_ "modernc.org/sqlite"
)

// DB 是 SQLite 数据库连接，保存跨会话的符号记忆和少量系统配置。
type DB struct {
	*sql.DB
	path string
}

// Open 打开或创建数据库。
// dbPath: 数据库文件路径，如果为空则使用默认路径 ~/.mathspeak/mathspeak.db
func Open(dbPath string) (*DB, error) {
	if dbPath == "" {
		home, _ := os.UserHomeDir()
		if home != "" {
			dbPath = filepath.Join(home, ".mathspeak", "mathspeak.db")
		} else {
			dbPath = "./mathspeak.db"
		}
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("创建数据库目录失败: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("打开数据库失败: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("设置 WAL 模式失败: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("启用外键约束失败: %w", err)
	}

	logger.Infof("[database] 数据库已打开: %s", dbPath)

	return &DB{DB: db, path: dbPath}, nil
}

// Path 返回数据库文件路径。
func (db *DB) Path() string {
	return db.path
}

// Migrate 运行数据库迁移。
func (db *DB) Migrate() error {
	migrations := []string{
		// 符号表，position 保存插入顺序
		`CREATE TABLE IF NOT EXISTS symbols (
			key TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			definition TEXT DEFAULT '',
			context TEXT DEFAULT '',
			usage_count INTEGER DEFAULT 0,
			position INTEGER NOT NULL,
			created_at TEXT NOT NULL
		)`,
		// 符号别名表
		`CREATE TABLE IF NOT EXISTS symbol_aliases (
			alias TEXT PRIMARY KEY,
			key TEXT NOT NULL REFERENCES symbols(key) ON DELETE CASCADE
		)`,
		// 系统配置表
		`CREATE TABLE IF NOT EXISTS system_config (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
	}

	for _, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return fmt.Errorf("数据库迁移失败: %w", err)
		}
	}

	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_symbols_position ON symbols(position)`,
		`CREATE INDEX IF NOT EXISTS idx_symbol_aliases_key ON symbol_aliases(key)`,
	}
	for _, idx := range indexes {
		if _, err := db.Exec(idx); err != nil {
			logger.Warnf("[database] 创建索引失败: %v", err)
		}
	}

	logger.Info("[database] 数据库迁移完成")
	return nil
}

// SymbolRow 是 symbols 表中的一行及其别名。
type SymbolRow struct {
	Key        string
	Name       string
	Definition string
	Context    string
	UsageCount int
	CreatedAt  time.Time
	Aliases    []string
}

const symbolsSavedAtKey = "symbols_saved_at"

// SaveSymbols 在一个事务中用 rows 替换全部符号，并记录保存时间。
func (db *DB) SaveSymbols(rows []SymbolRow, savedAt time.Time) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("开启事务失败: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM symbol_aliases`); err != nil {
		return fmt.Errorf("清空别名失败: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM symbols`); err != nil {
		return fmt.Errorf("清空符号失败: %w", err)
	}

	for i, r := range rows {
		_, err := tx.Exec(
			`INSERT INTO symbols (key, name, definition, context, usage_count, position, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			r.Key, r.Name, r.Definition, r.Context, r.UsageCount, i, r.CreatedAt.UTC().Format(time.RFC3339Nano),
		)
		if err != nil {
			return fmt.Errorf("写入符号 %q 失败: %w", r.Key, err)
		}
		for _, a := range r.Aliases {
			if _, err := tx.Exec(`INSERT OR REPLACE INTO symbol_aliases (alias, key) VALUES (?, ?)`, a, r.Key); err != nil {
				return fmt.Errorf("写入别名 %q 失败: %w", a, err)
			}
		}
	}

	if _, err := tx.Exec(
		`INSERT INTO system_config (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		symbolsSavedAtKey, savedAt.UTC().Format(time.RFC3339Nano),
	); err != nil {
		return fmt.Errorf("记录保存时间失败: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("提交事务失败: %w", err)
	}
	logger.Debugf("[database] 已保存 %d 个符号", len(rows))
	return nil
}

// LoadSymbols 按插入顺序读取全部符号，同时返回上次保存时间（从未保存时为零值）。
func (db *DB) LoadSymbols() ([]SymbolRow, time.Time, error) {
	rows, err := db.Query(`SELECT key, name, definition, context, usage_count, created_at FROM symbols ORDER BY position`)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("查询符号失败: %w", err)
	}
	defer rows.Close()

	var out []SymbolRow
	index := make(map[string]int)
	for rows.Next() {
		var r SymbolRow
		var created string
		if err := rows.Scan(&r.Key, &r.Name, &r.Definition, &r.Context, &r.UsageCount, &created); err != nil {
			return nil, time.Time{}, fmt.Errorf("读取符号失败: %w", err)
		}
		r.CreatedAt, _ = time.Parse(time.RFC3339Nano, created)
		index[r.Key] = len(out)
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, time.Time{}, fmt.Errorf("遍历符号失败: %w", err)
	}

	aliasRows, err := db.Query(`SELECT alias, key FROM symbol_aliases ORDER BY alias`)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("查询别名失败: %w", err)
	}
	defer aliasRows.Close()
	for aliasRows.Next() {
		var alias, key string
		if err := aliasRows.Scan(&alias, &key); err != nil {
			return nil, time.Time{}, fmt.Errorf("读取别名失败: %w", err)
		}
		if i, ok := index[key]; ok {
			out[i].Aliases = append(out[i].Aliases, alias)
		}
	}

	var savedAt time.Time
	value, ok, err := db.GetConfig(symbolsSavedAtKey)
	if err != nil {
		return nil, time.Time{}, err
	}
	if ok {
		savedAt, _ = time.Parse(time.RFC3339Nano, value)
	}
	return out, savedAt, nil
}

// SetConfig 写入一项系统配置。
func (db *DB) SetConfig(key, value string) error {
	_, err := db.Exec(
		`INSERT INTO system_config (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("写入配置 %q 失败: %w", key, err)
	}
	return nil
}

// GetConfig 读取一项系统配置，不存在时 ok 为 false。
func (db *DB) GetConfig(key string) (string, bool, error) {
	var value string
	err := db.QueryRow(`SELECT value FROM system_config WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("读取配置 %q 失败: %w", key, err)
	}
	return value, true, nil
}

// Close 关闭数据库连接。
func (db *DB) Close() error {
	if db.DB != nil {
		return db.DB.Close()
	}
	return nil
}
