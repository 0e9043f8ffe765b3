package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

var validate = validator.New()

// Config 是 mathspeak 的顶层配置结构。
type Config struct {
	Vocabulary VocabularyConfig `yaml:"vocabulary"`
	Memory     MemoryConfig     `yaml:"memory"`
	TTS        TTSConfig        `yaml:"tts"`
	Log        LogConfig        `yaml:"log"`
}

// VocabularyConfig 词表与改写规则配置。
type VocabularyConfig struct {
	// EmphasizeStability 在数值分析/常微分方程语境中强调稳定性相关术语。
	EmphasizeStability bool `yaml:"emphasize_stability"`
	// ClarifyAlgorithms 为算法缩写（RK4、GMRES 等）追加括号说明。
	ClarifyAlgorithms bool `yaml:"clarify_algorithms"`
	// ClarifyTheorems 为拓扑性质等术语追加简短解释。
	ClarifyTheorems bool `yaml:"clarify_theorems"`
	// RomanizeCJK 将 \text{} 中的汉字转写为拼音。
	RomanizeCJK bool `yaml:"romanize_cjk"`
	// MaxNestingDepth 嵌套花括号递归渲染的最大深度。
	MaxNestingDepth int `yaml:"max_nesting_depth" validate:"min=1,max=32"`
}

// MemoryConfig 上下文记忆配置。
type MemoryConfig struct {
	MaxSymbols   int    `yaml:"max_symbols" validate:"min=1"`
	Persistence  bool   `yaml:"persistence"`
	Backend      string `yaml:"backend" validate:"oneof=json sqlite"`
	Path         string `yaml:"path"`
	SnippetChars int    `yaml:"snippet_chars" validate:"min=10"`
}

// TTSConfig 下游语音合成相关的文本切分配置。
type TTSConfig struct {
	MaxChunkChars int `yaml:"max_chunk_chars" validate:"min=20"`
}

// LogConfig 日志配置。
type LogConfig struct {
	Level      string `yaml:"level" validate:"oneof=debug info warn error"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

// Default 返回填充了全部默认值的配置，供库调用方直接使用。
func Default() *Config {
	cfg := &Config{
		Vocabulary: VocabularyConfig{
			EmphasizeStability: true,
			ClarifyAlgorithms:  true,
			ClarifyTheorems:    true,
			RomanizeCJK:        true,
		},
	}
	setDefaults(cfg)
	return cfg
}

// Load 读取 YAML 配置文件并返回 Config。
// 支持 ${VAR_NAME} 形式的环境变量展开。
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取配置文件 %s 失败: %w", path, err)
	}

	expanded := os.Expand(string(data), func(key string) string {
		return os.Getenv(key)
	})

	// 未出现在文件中的开关保持 Default() 的取值
	cfg := Default()
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("解析配置文件 %s 失败: %w", path, err)
	}

	setDefaults(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("配置文件 %s 校验失败: %w", path, err)
	}
	return cfg, nil
}

// setDefaults 为未设置的配置项填充默认值。
func setDefaults(cfg *Config) {
	if cfg.Vocabulary.MaxNestingDepth == 0 {
		cfg.Vocabulary.MaxNestingDepth = 8
	}
	if cfg.Memory.MaxSymbols == 0 {
		cfg.Memory.MaxSymbols = 500
	}
	if cfg.Memory.Backend == "" {
		cfg.Memory.Backend = "json"
	}
	if cfg.Memory.SnippetChars == 0 {
		cfg.Memory.SnippetChars = 80
	}
	if cfg.TTS.MaxChunkChars == 0 {
		cfg.TTS.MaxChunkChars = 200
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}

	if cfg.Memory.Path == "" {
		home, _ := os.UserHomeDir()
		base := "./.mathspeak"
		if home != "" {
			base = home + "/.mathspeak"
		}
		if cfg.Memory.Backend == "sqlite" {
			cfg.Memory.Path = base + "/mathspeak.db"
		} else {
			cfg.Memory.Path = base + "/symbols.json"
		}
	} else if strings.HasPrefix(cfg.Memory.Path, "~/") {
		// Go 不会自动展开 ~，需要手动替换为用户主目录
		home, _ := os.UserHomeDir()
		if home != "" {
			cfg.Memory.Path = home + cfg.Memory.Path[1:]
		}
	}

	cfg.Log.Level = strings.ToLower(strings.TrimSpace(cfg.Log.Level))
}

// Validate 按结构体 tag 校验配置。
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return formatValidationError(err)
	}
	return nil
}

func formatValidationError(err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}
	msgs := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		msgs = append(msgs, formatFieldError(e))
	}
	return errors.New(strings.Join(msgs, "; "))
}

func formatFieldError(e validator.FieldError) string {
	field := e.Namespace()
	switch e.Tag() {
	case "min":
		return fmt.Sprintf("%s 不能小于 %s", field, e.Param())
	case "max":
		return fmt.Sprintf("%s 不能大于 %s", field, e.Param())
	case "oneof":
		return fmt.Sprintf("%s 必须是以下之一: %s", field, e.Param())
	default:
		return fmt.Sprintf("%s 无效", field)
	}
}
