// Package engine 把改写器和上下文记忆串成逐条朗读数学表达式的引擎。
package engine

import (
	"fmt"

	"github.com/iabetor/mathspeak/internal/config"
	"github.com/iabetor/mathspeak/internal/database"
	"github.com/iabetor/mathspeak/internal/logger"
	"github.com/iabetor/mathspeak/internal/memory"
	"github.com/iabetor/mathspeak/internal/rewrite"
	"github.com/iabetor/mathspeak/internal/subcontext"
	"github.com/iabetor/mathspeak/internal/vocab"
)

// Result 是一条表达式的朗读结果。
type Result struct {
	// Text 是最终朗读文本：已展开引用并附加了上下文提醒。
	Text string
	// Draft 是仅经过规则改写的文本。
	Draft      string
	Subcontext subcontext.Tag
	Info       memory.Info
	// NewDefinitions 是本条表达式新定义的符号。
	NewDefinitions []*memory.Symbol
	// Degraded 为 true 表示改写失败，Text 只是去掉定界符的原文，记忆未更新。
	Degraded bool
}

// Engine 按文档顺序处理表达式。Applicator 可以共享，记忆不加锁，
// 一个 Engine 只服务一个文档会话。
type Engine struct {
	cfg        *config.Config
	applicator *rewrite.Applicator
	memory     *memory.Context
	db         *database.DB
}

// New 根据配置创建引擎。cfg 为 nil 时使用 config.Default()。
func New(cfg *config.Config) (*Engine, error) {
	if cfg == nil {
		cfg = config.Default()
	}

	e := &Engine{cfg: cfg}
	e.applicator = rewrite.New(vocab.NewSet(), rewrite.OptionsFromConfig(cfg.Vocabulary))

	store, err := e.openStore()
	if err != nil {
		return nil, err
	}

	e.memory = memory.NewContext(memory.Options{
		MaxSymbols:   cfg.Memory.MaxSymbols,
		SnippetChars: cfg.Memory.SnippetChars,
		Store:        store,
		Namer:        e.applicator,
	})

	logger.Infof("[engine] 引擎已就绪 (persistence=%v, backend=%s)", cfg.Memory.Persistence, cfg.Memory.Backend)
	return e, nil
}

// openStore 按配置选择持久化后端，未启用时返回 nil。
func (e *Engine) openStore() (memory.Store, error) {
	mc := e.cfg.Memory
	if !mc.Persistence {
		return nil, nil
	}
	switch mc.Backend {
	case "sqlite":
		db, err := database.Open(mc.Path)
		if err != nil {
			return nil, fmt.Errorf("打开符号数据库失败: %w", err)
		}
		if err := db.Migrate(); err != nil {
			db.Close()
			return nil, fmt.Errorf("迁移符号数据库失败: %w", err)
		}
		e.db = db
		return memory.NewSQLiteStore(db), nil
	default:
		return memory.NewFileStore(mc.Path), nil
	}
}

// Speak 朗读一条表达式：先检测子语境并改写，改写成功后再更新记忆、
// 展开交叉引用并附加上下文提醒。改写失败时不触碰记忆。
func (e *Engine) Speak(raw string) Result {
	tag := subcontext.Detect(raw)
	draft, err := e.applicator.RewriteIn(raw, tag)
	if err != nil {
		logger.Warnf("[engine] %v", err)
		return Result{
			Text:       draft,
			Draft:      draft,
			Subcontext: tag,
			Info:       e.info(),
			Degraded:   true,
		}
	}

	r := e.memory.ProcessExpression(raw, draft)
	text := e.memory.EnhanceWithContext(r.EnhancedText)
	logger.Debugf("[engine] [%s] %q -> %q", tag, raw, text)
	return Result{
		Text:           text,
		Draft:          draft,
		Subcontext:     tag,
		Info:           r.Info,
		NewDefinitions: r.NewDefinitions,
	}
}

func (e *Engine) info() memory.Info {
	s := e.memory.Session()
	return memory.Info{
		SessionID:            s.ID,
		SymbolCount:          e.memory.Symbols().Len(),
		ActiveStructures:     e.memory.Structures().Depth(),
		ReadingPosition:      s.ReadingPosition,
		Context:              e.memory.Structures().CurrentContext(),
		ExpressionsProcessed: s.ExpressionsProcessed,
	}
}

// Chunks 把朗读文本切成不超过 tts.max_chunk_chars 个字符、按句对齐的片段。
func (e *Engine) Chunks(text string) []string {
	return mergeSentences(text, e.cfg.TTS.MaxChunkChars)
}

// Detect 返回表达式的子语境。
func (e *Engine) Detect(raw string) subcontext.Tag {
	return subcontext.Detect(raw)
}

// Symbols 按定义顺序返回当前记住的符号。
func (e *Engine) Symbols() []*memory.Symbol {
	return e.memory.Symbols().All()
}

// Memory 返回底层的上下文记忆。
func (e *Engine) Memory() *memory.Context {
	return e.memory
}

// ResetSession 开始新的文档会话。
func (e *Engine) ResetSession() {
	e.memory.ResetSession()
}

// Close 保存符号记忆并释放数据库连接。
func (e *Engine) Close() error {
	err := e.memory.Close()
	if e.db != nil {
		if cerr := e.db.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("关闭符号数据库失败: %w", cerr)
		}
	}
	return err
}
