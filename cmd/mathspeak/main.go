package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/iabetor/mathspeak/internal/config"
	"github.com/iabetor/mathspeak/internal/engine"
	"github.com/iabetor/mathspeak/internal/logger"
	"github.com/iabetor/mathspeak/internal/memory"
	"github.com/iabetor/mathspeak/internal/rewrite"
	"github.com/iabetor/mathspeak/internal/subcontext"
)

const defaultConfigPath = "configs/mathspeak.yaml"

func main() {
	defer logger.Sync()
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

type options struct {
	configPath string
	chunks     bool
	info       bool
	render     bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:          "mathspeak",
		Short:        "把数学记号读成口语文本",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", defaultConfigPath, "配置文件路径")

	speakCmd := &cobra.Command{
		Use:   "speak [expr...]",
		Short: "按文档顺序朗读表达式（无参数时逐行读取标准输入）",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSpeak(cmd, opts, args)
		},
	}
	speakCmd.Flags().BoolVar(&opts.chunks, "chunks", false, "输出切分后的 TTS 片段")
	speakCmd.Flags().BoolVar(&opts.info, "info", false, "输出上下文信息")

	detectCmd := &cobra.Command{
		Use:   "detect <expr>",
		Short: "显示表达式的子语境及各领域的关键词命中数",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDetect(cmd, opts, args)
		},
	}
	detectCmd.Flags().BoolVar(&opts.render, "render", false, "用每个分区的词表分别改写表达式")

	symbolsCmd := &cobra.Command{
		Use:   "symbols",
		Short: "列出已保存的符号",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSymbols(cmd, opts)
		},
	}

	root.AddCommand(speakCmd, detectCmd, symbolsCmd)
	return root
}

// loadConfig 读取配置并初始化日志。使用默认路径且文件不存在时退回内置默认配置。
func loadConfig(cmd *cobra.Command, opts *options) (*config.Config, error) {
	var cfg *config.Config
	if _, err := os.Stat(opts.configPath); errors.Is(err, os.ErrNotExist) && !cmd.Flags().Changed("config") {
		cfg = config.Default()
	} else {
		loaded, err := config.Load(opts.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if err := logger.Init(logger.Config{
		Level:      cfg.Log.Level,
		File:       cfg.Log.File,
		MaxSize:    cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAge:     cfg.Log.MaxAgeDays,
	}); err != nil {
		return nil, fmt.Errorf("初始化日志失败: %w", err)
	}
	return cfg, nil
}

func openEngine(cmd *cobra.Command, opts *options) (*engine.Engine, error) {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return nil, err
	}
	e, err := engine.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("创建引擎失败: %w", err)
	}
	return e, nil
}

func runSpeak(cmd *cobra.Command, opts *options, args []string) (err error) {
	e, err := openEngine(cmd, opts)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := e.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	out := cmd.OutOrStdout()
	log := logger.Named("cli")
	speak := func(expr string) {
		expr = strings.TrimSpace(expr)
		if expr == "" {
			return
		}
		r := e.Speak(expr)
		log.Debug("spoke expression",
			zap.String("subcontext", string(r.Subcontext)),
			zap.Int("new_definitions", len(r.NewDefinitions)),
			zap.Bool("degraded", r.Degraded))
		writeResult(out, e, r, opts)
	}

	if len(args) > 0 {
		for _, a := range args {
			speak(a)
		}
	} else {
		scanner := bufio.NewScanner(cmd.InOrStdin())
		scanner.Buffer(make([]byte, 64*1024), 1024*1024)
		for scanner.Scan() {
			speak(scanner.Text())
		}
		if err := scanner.Err(); err != nil {
			return fmt.Errorf("读取标准输入失败: %w", err)
		}
	}

	if opts.info {
		writeOutline(out, e.Memory().Structures())
	}
	return nil
}

// writeOutline 按嵌套关系输出本次会话记录的全部结构。
func writeOutline(w io.Writer, sm *memory.StructureMemory) {
	roots := sm.Roots()
	if len(roots) == 0 {
		return
	}
	fmt.Fprintln(w, "outline:")
	var walk func(h memory.Handle, depth int)
	walk = func(h memory.Handle, depth int) {
		node := sm.Node(h)
		fmt.Fprintf(w, "%s- %s\n", strings.Repeat("  ", depth+1), node.Name())
		for _, c := range node.Children {
			walk(c, depth+1)
		}
	}
	for _, h := range roots {
		walk(h, 0)
	}
}

func writeResult(w io.Writer, e *engine.Engine, r engine.Result, opts *options) {
	if opts.chunks {
		for _, c := range e.Chunks(r.Text) {
			fmt.Fprintf(w, "- %s\n", c)
		}
	} else {
		fmt.Fprintln(w, r.Text)
	}
	if opts.info {
		info := r.Info
		fmt.Fprintf(w, "  [%s] symbols=%d structures=%d references=%d position=%s context=%q\n",
			r.Subcontext, info.SymbolCount, info.ActiveStructures, info.ReferenceCount,
			info.ReadingPosition, info.Context)
		for _, s := range r.NewDefinitions {
			fmt.Fprintf(w, "  + %s: %s\n", s.DisplayName, s.Definition)
		}
		if r.Degraded {
			fmt.Fprintln(w, "  ! 改写失败，已输出原文")
		}
	}
}

func runDetect(cmd *cobra.Command, opts *options, args []string) error {
	expr := strings.Join(args, " ")
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, subcontext.Detect(expr))

	scores := subcontext.Scores(expr)
	tags := make([]subcontext.Tag, 0, len(scores))
	for tag := range scores {
		tags = append(tags, tag)
	}
	sort.Slice(tags, func(i, j int) bool {
		if scores[tags[i]] != scores[tags[j]] {
			return scores[tags[i]] > scores[tags[j]]
		}
		return tags[i] < tags[j]
	})
	for _, tag := range tags {
		fmt.Fprintf(out, "  %-16s %d\n", tag, scores[tag])
	}

	if opts.render {
		a := rewrite.New(nil, rewrite.Options{})
		for _, p := range a.Processors() {
			fmt.Fprintf(out, "  %-16s => %s\n", p.Tag(), p.Process(expr))
		}
	}
	return nil
}

func runSymbols(cmd *cobra.Command, opts *options) (err error) {
	e, err := openEngine(cmd, opts)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := e.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	out := cmd.OutOrStdout()
	syms := e.Symbols()
	if len(syms) == 0 {
		fmt.Fprintln(out, "没有已保存的符号")
		return nil
	}
	for _, s := range syms {
		fmt.Fprintf(out, "%-12s %-24s used %s, defined %s\n    %s\n",
			s.Key, s.DisplayName, humanize.Comma(int64(s.UsageCount))+"x",
			humanize.Time(s.CreatedAt), s.Definition)
	}
	return nil
}
