package memory

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bytedance/sonic"

	"github.com/iabetor/mathspeak/internal/database"
)

// Record 是持久化的符号记忆。
type Record struct {
	Symbols []SymbolRecord `json:"symbols"`
	SavedAt time.Time      `json:"saved_at"`
}

// SymbolRecord 是 Record 中的一个符号。
type SymbolRecord struct {
	Key        string    `json:"key"`
	Name       string    `json:"name"`
	Definition string    `json:"definition"`
	Context    string    `json:"context"`
	UsageCount int       `json:"usage_count"`
	Aliases    []string  `json:"aliases,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// Store 在会话开始时载入、结束时保存符号记忆。
type Store interface {
	Load() (*Record, error)
	Save(rec *Record) error
}

func recordFromSymbols(symbols []Symbol) *Record {
	rec := &Record{SavedAt: time.Now(), Symbols: make([]SymbolRecord, 0, len(symbols))}
	for _, s := range symbols {
		rec.Symbols = append(rec.Symbols, SymbolRecord{
			Key:        s.Key,
			Name:       s.DisplayName,
			Definition: s.Definition,
			Context:    s.Context,
			UsageCount: s.UsageCount,
			Aliases:    s.Aliases,
			CreatedAt:  s.CreatedAt,
		})
	}
	return rec
}

func (r *Record) symbols() []Symbol {
	out := make([]Symbol, 0, len(r.Symbols))
	for _, s := range r.Symbols {
		out = append(out, Symbol{
			Key:         s.Key,
			DisplayName: s.Name,
			Definition:  s.Definition,
			Context:     s.Context,
			UsageCount:  s.UsageCount,
			Aliases:     s.Aliases,
			CreatedAt:   s.CreatedAt,
		})
	}
	return out
}

// FileStore 把记录保存为 JSON 文件。
type FileStore struct {
	path string
}

// NewFileStore 创建 JSON 文件存储。
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path 返回文件路径。
func (s *FileStore) Path() string { return s.path }

// Load 读取记录。文件不存在时返回空记录。
func (s *FileStore) Load() (*Record, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Record{}, nil
		}
		return nil, fmt.Errorf("读取符号文件失败: %w", err)
	}
	var rec Record
	if err := sonic.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("解析符号文件失败: %w", err)
	}
	return &rec, nil
}

// Save 写入记录，按需创建父目录。先写临时文件再改名，避免留下半截文件。
func (s *FileStore) Save(rec *Record) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("创建数据目录失败: %w", err)
	}
	data, err := sonic.Marshal(rec)
	if err != nil {
		return fmt.Errorf("序列化符号失败: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("写入符号文件失败: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("写入符号文件失败: %w", err)
	}
	return nil
}

// SQLiteStore 把记录保存在 SQLite 的 symbols 表中。
type SQLiteStore struct {
	db *database.DB
}

// NewSQLiteStore 创建 SQLite 存储，db 需已完成迁移。
func NewSQLiteStore(db *database.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Load 读取记录。
func (s *SQLiteStore) Load() (*Record, error) {
	rows, savedAt, err := s.db.LoadSymbols()
	if err != nil {
		return nil, err
	}
	rec := &Record{SavedAt: savedAt, Symbols: make([]SymbolRecord, 0, len(rows))}
	for _, r := range rows {
		rec.Symbols = append(rec.Symbols, SymbolRecord{
			Key:        r.Key,
			Name:       r.Name,
			Definition: r.Definition,
			Context:    r.Context,
			UsageCount: r.UsageCount,
			Aliases:    r.Aliases,
			CreatedAt:  r.CreatedAt,
		})
	}
	return rec, nil
}

// Save 写入记录。
func (s *SQLiteStore) Save(rec *Record) error {
	rows := make([]database.SymbolRow, 0, len(rec.Symbols))
	for _, r := range rec.Symbols {
		rows = append(rows, database.SymbolRow{
			Key:        r.Key,
			Name:       r.Name,
			Definition: r.Definition,
			Context:    r.Context,
			UsageCount: r.UsageCount,
			Aliases:    r.Aliases,
			CreatedAt:  r.CreatedAt,
		})
	}
	return s.db.SaveSymbols(rows, rec.SavedAt)
}
