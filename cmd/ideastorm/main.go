// =============================================================================
// IdeaStorm 主入口
// =============================================================================
// 多角色头脑风暴 CLI：轮转调度、缺口监控、终稿合成
//
// 使用方法:
//
//	ideastorm run --idea "..."                  # 自动选角并开始会话
//	ideastorm run --personas Rebecca,Leo        # 指定角色名单
//	ideastorm run --config config.yaml          # 指定配置文件
//	ideastorm personas                          # 列出角色库
//	ideastorm search --query "..."              # 搜索历史会话归档
//	ideastorm version                           # 显示版本信息
// =============================================================================
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/BaSui01/ideastorm/config"
	"github.com/BaSui01/ideastorm/engine"
	"github.com/BaSui01/ideastorm/internal/cache"
	"github.com/BaSui01/ideastorm/internal/database"
	"github.com/BaSui01/ideastorm/internal/metrics"
	"github.com/BaSui01/ideastorm/internal/telemetry"
	"github.com/BaSui01/ideastorm/llm"
	"github.com/BaSui01/ideastorm/llm/embedding"
	"github.com/BaSui01/ideastorm/persona"
	"github.com/BaSui01/ideastorm/providers/openai"
	"github.com/BaSui01/ideastorm/session"
	"github.com/BaSui01/ideastorm/vectorstore"
)

// =============================================================================
// 📦 版本信息（构建时注入）
// =============================================================================

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// =============================================================================
// 🎯 主函数
// =============================================================================

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "run":
		runSession(os.Args[2:])
	case "personas":
		runPersonas(os.Args[2:])
	case "search":
		runSearch(os.Args[2:])
	case "version":
		printVersion()
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

// =============================================================================
// 🧩 共享装配
// =============================================================================

// runtime 一次命令执行所需的全部句柄
type runtime struct {
	cfg       *config.Config
	logger    *zap.Logger
	collector *metrics.Collector
	embedder  embedding.Provider
	provider  llm.Provider
	identity  *persona.IdentityStore
	personas  *persona.Cache
	archive   *session.Archive
	repo      *session.Repository
	tracing   *telemetry.Tracing

	redis *cache.Manager
	pool  *database.PoolManager
}

func loadConfig(configPath string) *config.Config {
	loader := config.NewLoader()
	if configPath != "" {
		loader = loader.WithConfigPath(configPath)
	}
	cfg, err := loader.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid config: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

// newRuntime 按配置装配全部组件并播种角色库
func newRuntime(ctx context.Context, cfg *config.Config) *runtime {
	logger := initLogger(cfg.Log)

	logger.Info("Starting IdeaStorm",
		zap.String("version", Version),
		zap.String("build_time", BuildTime),
		zap.String("git_commit", GitCommit),
	)

	rt := &runtime{cfg: cfg, logger: logger}

	tracing, err := telemetry.Setup(cfg.Telemetry, logger)
	if err != nil {
		logger.Warn("failed to initialize tracing", zap.Error(err))
	}
	rt.tracing = tracing

	rt.collector = metrics.NewCollector("ideastorm", logger)

	rt.embedder = embedding.NewMetered(embedding.NewOpenAIProvider(embedding.OpenAIConfig{
		APIKey:     cfg.Embedding.APIKey,
		BaseURL:    cfg.Embedding.BaseURL,
		Model:      cfg.Embedding.Model,
		Dimensions: cfg.Embedding.Dimensions,
		Timeout:    cfg.Embedding.Timeout,
	}), rt.collector)

	var provider llm.Provider = openai.NewProvider(openai.Config{
		APIKey:  cfg.LLM.APIKey,
		BaseURL: cfg.LLM.BaseURL,
		Model:   cfg.LLM.Model,
		Timeout: cfg.LLM.Timeout,
	}, logger)
	if cfg.Session.RateLimitRPS > 0 {
		provider = llm.NewRateLimitedProvider(provider, cfg.Session.RateLimitRPS, cfg.Session.RateLimitBurst)
	}
	rt.provider = provider

	// 身份存储 + 角色库播种
	rt.identity = persona.NewIdentityStore(rt.newStore(cfg.Qdrant.PersonaCollection), rt.embedder, logger)
	if seeded, err := rt.identity.Init(ctx); err != nil {
		logger.Fatal("failed to seed persona library", zap.Error(err))
	} else if seeded > 0 {
		logger.Info("persona library seeded", zap.Int("personas", seeded))
	}

	// 角色缓存（可选 Redis L2）
	cacheOpts := []persona.CacheOption{persona.WithMetrics(rt.collector)}
	if cfg.Redis.Enabled {
		redisCfg := cache.DefaultConfig()
		redisCfg.Addr = cfg.Redis.Addr
		redisCfg.Password = cfg.Redis.Password
		redisCfg.DB = cfg.Redis.DB
		redisCfg.PoolSize = cfg.Redis.PoolSize
		manager, err := cache.NewManager(redisCfg, logger)
		if err != nil {
			logger.Warn("Redis not available, persona cache runs L1-only", zap.Error(err))
		} else {
			rt.redis = manager
			cacheOpts = append(cacheOpts, persona.WithL2(manager, cfg.Redis.TTL))
		}
	}
	rt.personas = persona.NewCache(rt.identity, logger, cacheOpts...)

	rt.archive = session.NewArchive(rt.newStore(cfg.Qdrant.ArchiveCollection), rt.embedder, logger)

	// 关系型轮次仓储（可选）
	if cfg.Database.Enabled {
		pool, err := database.Open(cfg.Database.DSN(), database.DefaultPoolConfig(), logger)
		if err != nil {
			logger.Warn("Database not available, transcript persistence disabled", zap.Error(err))
		} else {
			rt.pool = pool
			repo, err := session.NewRepository(pool, logger, session.WithCollector(rt.collector))
			if err != nil {
				logger.Warn("Repository migration failed", zap.Error(err))
			} else {
				rt.repo = repo
			}
		}
	}

	return rt
}

// newStore 为给定集合创建相似度存储后端
func (rt *runtime) newStore(collection string) vectorstore.VectorStore {
	if rt.cfg.Qdrant.Enabled {
		return vectorstore.NewQdrantStore(vectorstore.QdrantConfig{
			Host:                 rt.cfg.Qdrant.Host,
			Port:                 rt.cfg.Qdrant.Port,
			APIKey:               rt.cfg.Qdrant.APIKey,
			Collection:           collection,
			AutoCreateCollection: true,
		}, rt.logger)
	}
	return vectorstore.NewInMemoryStore(rt.logger)
}

func (rt *runtime) close() {
	if rt.redis != nil {
		_ = rt.redis.Close()
	}
	if rt.pool != nil {
		_ = rt.pool.Close()
	}
	if rt.tracing != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = rt.tracing.Shutdown(ctx)
	}
	_ = rt.logger.Sync()
}

// =============================================================================
// 🚀 run 命令
// =============================================================================

func runSession(args []string) {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to config file")
	idea := fs.String("idea", "", "The idea to brainstorm (required)")
	personaList := fs.String("personas", "", "Comma-separated persona names")
	mode := fs.String("select", "", "Persona selection mode: list | semantic | auto")
	topic := fs.String("topic", "", "Free-text description for semantic persona selection")
	turns := fs.Int("turns", 0, "Turns per persona (overrides config)")
	output := fs.String("output", "proposal.md", "File to write the final proposal to")
	fs.Parse(args)

	if strings.TrimSpace(*idea) == "" {
		fmt.Fprintln(os.Stderr, "Missing required flag: --idea")
		fs.Usage()
		os.Exit(1)
	}

	cfg := loadConfig(*configPath)
	if *turns > 0 {
		cfg.Session.TurnsEach = *turns
	}

	ctx := context.Background()
	rt := newRuntime(ctx, cfg)
	defer rt.close()

	// 选角
	var names []string
	for _, name := range strings.Split(*personaList, ",") {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			names = append(names, trimmed)
		}
	}
	selectionMode := persona.SelectionMode(cfg.Session.SelectionMode)
	if *mode != "" {
		selectionMode = persona.SelectionMode(*mode)
	} else if len(names) == 0 {
		// 没给名单时退回自动选角
		selectionMode = persona.ModeAuto
	}
	query := *topic
	if query == "" {
		query = *idea
	}

	selector := persona.NewSelector(rt.identity, rt.logger)
	roster, err := selector.Select(ctx, selectionMode, query, names, cfg.Session.RetrievalK)
	if err != nil {
		rt.logger.Fatal("persona selection failed", zap.Error(err))
	}

	fmt.Println("\nSelected personas:")
	for _, p := range roster {
		fmt.Printf("  - %s — %s\n", p.Name, p.ShortBio)
	}

	// 会话
	sess := session.NewSession(*idea)
	log := session.NewLog(rt.newStore(sess.ID), rt.embedder, rt.logger)

	eng := engine.New(
		cfg.Session,
		cfg.LLM.Model,
		rt.provider,
		rt.identity,
		rt.personas,
		log,
		rt.logger,
		engine.WithArchive(rt.archive),
		engine.WithRepository(rt.repo),
		engine.WithMetrics(rt.collector),
		engine.WithCallTimeout(cfg.LLM.Timeout),
	)

	fmt.Printf("\nSession %s started: %d personas × %d turns\n",
		sess.ID, len(roster), cfg.Session.TurnsEach)

	result, err := eng.Run(ctx, sess, roster)
	if err != nil {
		rt.logger.Fatal("session failed", zap.Error(err))
	}

	// 转写
	fmt.Println("\n===== Transcript =====")
	for _, rec := range result.Transcript {
		fmt.Printf("\n--- Turn %d: %s (round %d) ---\n%s\n", rec.Seq+1, rec.Persona, rec.Round+1, rec.Content)
	}

	// 会后学习
	if learned := eng.LearnSummaries(ctx, sess.Idea, result.History); learned > 0 {
		fmt.Printf("\nLearned summaries stored for %d personas.\n", learned)
	}

	// 终稿落盘
	if err := os.WriteFile(*output, []byte(result.Proposal), 0o644); err != nil {
		rt.logger.Error("failed to write proposal", zap.Error(err))
		fmt.Println("\n===== Proposal =====")
		fmt.Println(result.Proposal)
	} else {
		fmt.Printf("\nProposal written to %s\n", *output)
	}
}

// =============================================================================
// 👥 personas 命令
// =============================================================================

func runPersonas(args []string) {
	fs := flag.NewFlagSet("personas", flag.ExitOnError)
	fs.Parse(args)

	fmt.Println("Available personas:")
	for i, p := range persona.Library() {
		fmt.Printf("%2d. %-10s — %s\n", i+1, p.Name, p.ShortBio)
		fmt.Printf("    expertise: %s\n", strings.Join(p.DomainExpertise, ", "))
	}
}

// =============================================================================
// 🔎 search 命令
// =============================================================================

func runSearch(args []string) {
	fs := flag.NewFlagSet("search", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to config file")
	query := fs.String("query", "", "Free-text search over past session archives (required)")
	k := fs.Int("k", 5, "Number of snippets to return")
	fs.Parse(args)

	if strings.TrimSpace(*query) == "" {
		fmt.Fprintln(os.Stderr, "Missing required flag: --query")
		fs.Usage()
		os.Exit(1)
	}

	cfg := loadConfig(*configPath)
	ctx := context.Background()
	rt := newRuntime(ctx, cfg)
	defer rt.close()

	snippets, err := rt.archive.SearchPastSessions(ctx, *query, *k)
	if err != nil {
		rt.logger.Fatal("archive search failed", zap.Error(err))
	}
	if len(snippets) == 0 {
		fmt.Println("No matches in past sessions.")
		return
	}

	fmt.Println("\n--- Relevant Past Ideas/Sessions ---")
	for i, s := range snippets {
		content := s.Content
		if len(content) > 200 {
			content = content[:200] + "..."
		}
		fmt.Printf("\nMatch %d: from session %s, persona %s\n", i+1, s.SessionID, s.Persona)
		fmt.Printf("Snippet: %s\n", content)
	}
}

// =============================================================================
// 📋 版本和帮助
// =============================================================================

func printVersion() {
	fmt.Printf("IdeaStorm %s\n", Version)
	fmt.Printf("  Build Time: %s\n", BuildTime)
	fmt.Printf("  Git Commit: %s\n", GitCommit)
}

func printUsage() {
	fmt.Println(`IdeaStorm - Persona-aware brainstorming engine

Usage:
  ideastorm <command> [options]

Commands:
  run       Run a brainstorming session
  personas  List the built-in persona library
  search    Search past session archives
  version   Show version information
  help      Show this help message

Options for 'run':
  --idea <text>       The idea to brainstorm (required)
  --config <path>     Path to configuration file (YAML)
  --personas <names>  Comma-separated persona names (list mode)
  --select <mode>     Selection mode: list | semantic | auto
  --topic <text>      Free-text description for semantic selection
  --turns <n>         Turns per persona
  --output <path>     Proposal output file (default proposal.md)

Examples:
  ideastorm run --idea "an AI-powered bicycle helmet"
  ideastorm run --idea "..." --personas Rebecca,Leo,Hiro
  ideastorm run --idea "..." --select semantic --topic "hardware and safety experts"
  ideastorm search --query "urban mobility"
  ideastorm personas`)
}

// =============================================================================
// 🔧 日志初始化
// =============================================================================

func initLogger(cfg config.LogConfig) *zap.Logger {
	var level zapcore.Level
	switch cfg.Level {
	case "debug":
		level = zapcore.DebugLevel
	case "info":
		level = zapcore.InfoLevel
	case "warn":
		level = zapcore.WarnLevel
	case "error":
		level = zapcore.ErrorLevel
	default:
		level = zapcore.InfoLevel
	}

	var encoderConfig zapcore.EncoderConfig
	if cfg.Format == "console" {
		encoderConfig = zap.NewDevelopmentEncoderConfig()
		encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		encoderConfig = zap.NewProductionEncoderConfig()
		encoderConfig.TimeKey = "timestamp"
		encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}

	encoding := "json"
	if cfg.Format == "console" {
		encoding = "console"
	}
	outputPaths := cfg.OutputPaths
	if len(outputPaths) == 0 {
		outputPaths = []string{"stderr"}
	}

	zapConfig := zap.Config{
		Level:            zap.NewAtomicLevelAt(level),
		Development:      cfg.Format == "console",
		Encoding:         encoding,
		EncoderConfig:    encoderConfig,
		OutputPaths:      outputPaths,
		ErrorOutputPaths: []string{"stderr"},
	}

	var opts []zap.Option
	if cfg.EnableCaller {
		opts = append(opts, zap.AddCaller())
	}
	if cfg.EnableStacktrace {
		opts = append(opts, zap.AddStacktrace(zapcore.ErrorLevel))
	}

	logger, err := zapConfig.Build(opts...)
	if err != nil {
		logger, _ = zap.NewProduction()
	}
	return logger
}
