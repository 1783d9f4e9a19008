package persona

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BaSui01/ideastorm/types"
	"github.com/BaSui01/ideastorm/vectorstore"
)

// 元数据字段
const (
	metaPersonaName    = "persona_name"
	metaNameKey        = "name_key"
	metaField          = "field"
	metaShortBio       = "short_bio"
	metaDomains        = "domain_expertise"
	metaTraits         = "personality_traits"
	metaRole           = "role_function"
	metaExperience     = "experience_level"
	metaStyle          = "style_keywords"
	metaSeq            = "seq"
	fieldDesc          = "desc"
	fieldLearnedSummry = "learned_summary"
)

// Embedder 是身份存储需要的最小嵌入接口.
type Embedder interface {
	EmbedQuery(ctx context.Context, query string) ([]float64, error)
	EmbedDocuments(ctx context.Context, documents []string) ([][]float64, error)
}

// IdentityStore 角色身份存储。
// 角色以分条记录存放：一条或多条 desc 记录（注册冲突时追加）
// 加零条或多条 learned_summary 记录。解析时按写入顺序拼接。
type IdentityStore struct {
	store    vectorstore.VectorStore
	embedder Embedder
	logger   *zap.Logger

	// 写入序号，保证跨实现的稳定排序
	seq atomic.Int64
}

// NewIdentityStore 创建身份存储
func NewIdentityStore(store vectorstore.VectorStore, embedder Embedder, logger *zap.Logger) *IdentityStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	is := &IdentityStore{
		store:    store,
		embedder: embedder,
		logger:   logger.With(zap.String("component", "identity_store")),
	}
	is.seq.Store(time.Now().UnixNano())
	return is
}

// Init 检查存储是否已过期并按需补种角色库。
// 已存在的角色不会被覆盖，仅补充缺失者。返回本次补种的数量。
func (s *IdentityStore) Init(ctx context.Context) (int, error) {
	docs, err := s.store.GetAll(ctx)
	if err != nil {
		return 0, types.NewError(types.ErrStoreUnavailable, "failed to inspect persona library").WithCause(err)
	}

	existing := make(map[string]bool)
	for _, doc := range docs {
		if metaString(doc.Metadata, metaField) != fieldDesc {
			continue
		}
		existing[metaString(doc.Metadata, metaNameKey)] = true
	}

	seeded := 0
	for _, p := range Library() {
		if existing[types.NormalizeName(p.Name)] {
			continue
		}
		if err := s.Register(ctx, p); err != nil {
			return seeded, err
		}
		seeded++
	}

	if seeded > 0 {
		s.logger.Info("persona library seeded",
			zap.Int("seeded", seeded),
			zap.Int("existing", len(existing)))
	}
	return seeded, nil
}

// Register 注册角色。八个必填字段缺一不可；
// 名称冲突时追加新的 desc 记录（按追加实现更新语义）。
func (s *IdentityStore) Register(ctx context.Context, p types.Persona) error {
	if err := p.Validate(); err != nil {
		return err
	}

	vec, err := s.embedder.EmbedQuery(ctx, p.Desc)
	if err != nil {
		return types.NewError(types.ErrEmbeddingFailed, "failed to embed persona descriptor").
			WithPersona(p.Name).WithCause(err)
	}

	key := types.NormalizeName(p.Name)
	doc := vectorstore.Document{
		ID:      fmt.Sprintf("persona-%s-%s", key, shortID()),
		Content: p.Desc,
		Metadata: map[string]interface{}{
			metaPersonaName: p.Name,
			metaNameKey:     key,
			metaField:       fieldDesc,
			metaShortBio:    p.ShortBio,
			metaDomains:     strings.Join(p.DomainExpertise, ", "),
			metaTraits:      strings.Join(p.PersonalityTraits, ", "),
			metaRole:        p.RoleFunction,
			metaExperience:  p.ExperienceLevel,
			metaStyle:       strings.Join(p.StyleKeywords, ", "),
			metaSeq:         s.seq.Add(1),
		},
		Embedding: vec,
	}

	if err := s.store.AddDocuments(ctx, []vectorstore.Document{doc}); err != nil {
		return types.NewError(types.ErrStoreUnavailable, "failed to store persona").
			WithPersona(p.Name).WithCause(err)
	}

	s.logger.Debug("persona registered", zap.String("persona", p.Name))
	return nil
}

// AppendLearnedSummary 为角色追加一条习得摘要记录。
func (s *IdentityStore) AppendLearnedSummary(ctx context.Context, name, summary string) error {
	if strings.TrimSpace(summary) == "" {
		return nil
	}

	vec, err := s.embedder.EmbedQuery(ctx, summary)
	if err != nil {
		return types.NewError(types.ErrEmbeddingFailed, "failed to embed learned summary").
			WithPersona(name).WithCause(err)
	}

	key := types.NormalizeName(name)
	doc := vectorstore.Document{
		ID:      fmt.Sprintf("persona-%s-summary-%s", key, shortID()),
		Content: summary,
		Metadata: map[string]interface{}{
			metaPersonaName: name,
			metaNameKey:     key,
			metaField:       fieldLearnedSummry,
			metaSeq:         s.seq.Add(1),
		},
		Embedding: vec,
	}

	if err := s.store.AddDocuments(ctx, []vectorstore.Document{doc}); err != nil {
		return types.NewError(types.ErrStoreUnavailable, "failed to store learned summary").
			WithPersona(name).WithCause(err)
	}
	return nil
}

// Resolve 解析角色描述符：按写入顺序拼接该角色的全部记录。
// 未找到时返回空字符串且不报错，会话不会因此中断。
func (s *IdentityStore) Resolve(ctx context.Context, name string) (string, error) {
	docs, err := s.recordsFor(ctx, name)
	if err != nil {
		return "", err
	}
	if len(docs) == 0 {
		s.logger.Warn("persona not found, using empty descriptor", zap.String("persona", name))
		return "", nil
	}

	parts := make([]string, 0, len(docs))
	for _, doc := range docs {
		if doc.Content != "" {
			parts = append(parts, doc.Content)
		}
	}
	return strings.Join(parts, "\n\n"), nil
}

// Get 按名称取回结构化角色。第二个返回值指示是否存在。
func (s *IdentityStore) Get(ctx context.Context, name string) (types.Persona, bool, error) {
	docs, err := s.recordsFor(ctx, name)
	if err != nil {
		return types.Persona{}, false, err
	}

	var (
		found     bool
		p         types.Persona
		summaries []string
	)
	for _, doc := range docs {
		switch metaString(doc.Metadata, metaField) {
		case fieldDesc:
			// 后写的 desc 记录覆盖结构化字段
			p = personaFromDoc(doc)
			found = true
		case fieldLearnedSummry:
			summaries = append(summaries, doc.Content)
		}
	}
	if !found {
		return types.Persona{}, false, nil
	}
	p.LearnedSummary = strings.Join(summaries, "\n\n")
	return p, true, nil
}

// GetAll 返回全部已注册角色（不含向量）。
func (s *IdentityStore) GetAll(ctx context.Context) ([]types.Persona, error) {
	docs, err := s.store.GetAll(ctx)
	if err != nil {
		return nil, types.NewError(types.ErrStoreUnavailable, "failed to list personas").WithCause(err)
	}
	sortBySeq(docs)

	byKey := make(map[string]*types.Persona)
	order := make([]string, 0)
	for _, doc := range docs {
		key := metaString(doc.Metadata, metaNameKey)
		switch metaString(doc.Metadata, metaField) {
		case fieldDesc:
			p := personaFromDoc(doc)
			if existing, ok := byKey[key]; ok {
				summary := existing.LearnedSummary
				p.LearnedSummary = summary
				*existing = p
			} else {
				byKey[key] = &p
				order = append(order, key)
			}
		case fieldLearnedSummry:
			if existing, ok := byKey[key]; ok {
				if existing.LearnedSummary != "" {
					existing.LearnedSummary += "\n\n"
				}
				existing.LearnedSummary += doc.Content
			}
		}
	}

	out := make([]types.Persona, 0, len(order))
	for _, key := range order {
		out = append(out, *byKey[key])
	}
	return out, nil
}

// FindByDomains 返回专长与给定领域有交集的角色（大小写折叠匹配）。
func (s *IdentityStore) FindByDomains(ctx context.Context, domains []string) ([]types.Persona, error) {
	if len(domains) == 0 {
		return nil, nil
	}

	wanted := make(map[string]bool, len(domains))
	for _, d := range domains {
		wanted[types.NormalizeDomain(d)] = true
	}

	all, err := s.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	var out []types.Persona
	for _, p := range all {
		for _, d := range p.DomainExpertise {
			if wanted[types.NormalizeDomain(d)] {
				out = append(out, p)
				break
			}
		}
	}
	return out, nil
}

// SearchSimilar 按语义检索与查询最相关的角色。
func (s *IdentityStore) SearchSimilar(ctx context.Context, query string, topK int) ([]types.Persona, error) {
	vec, err := s.embedder.EmbedQuery(ctx, query)
	if err != nil {
		return nil, types.NewError(types.ErrEmbeddingFailed, "failed to embed persona query").WithCause(err)
	}

	results, err := s.store.Search(ctx, vec, topK, vectorstore.Filter{metaField: fieldDesc})
	if err != nil {
		return nil, types.NewError(types.ErrStoreUnavailable, "persona search failed").WithCause(err)
	}

	seen := make(map[string]bool)
	out := make([]types.Persona, 0, len(results))
	for _, r := range results {
		key := metaString(r.Document.Metadata, metaNameKey)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, personaFromDoc(r.Document))
	}
	return out, nil
}

// Count 返回存储中的记录总数。
func (s *IdentityStore) Count(ctx context.Context) (int, error) {
	return s.store.Count(ctx)
}

// recordsFor 取回某角色的全部记录并按写入顺序排序。
func (s *IdentityStore) recordsFor(ctx context.Context, name string) ([]vectorstore.Document, error) {
	all, err := s.store.GetAll(ctx)
	if err != nil {
		return nil, types.NewError(types.ErrStoreUnavailable, "failed to read persona records").
			WithPersona(name).WithCause(err)
	}

	key := types.NormalizeName(name)
	var docs []vectorstore.Document
	for _, doc := range all {
		if metaString(doc.Metadata, metaNameKey) == key {
			docs = append(docs, doc)
		}
	}
	sortBySeq(docs)
	return docs, nil
}

// 辅助函数

func metaString(meta map[string]interface{}, key string) string {
	if meta == nil {
		return ""
	}
	if v, ok := meta[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func metaSeqValue(meta map[string]interface{}) int64 {
	if meta == nil {
		return 0
	}
	switch v := meta[metaSeq].(type) {
	case int64:
		return v
	case int:
		return int64(v)
	case float64:
		// JSON 往返后的数值类型
		return int64(v)
	default:
		return 0
	}
}

func sortBySeq(docs []vectorstore.Document) {
	sort.SliceStable(docs, func(i, j int) bool {
		return metaSeqValue(docs[i].Metadata) < metaSeqValue(docs[j].Metadata)
	})
}

func personaFromDoc(doc vectorstore.Document) types.Persona {
	return types.Persona{
		Name:              metaString(doc.Metadata, metaPersonaName),
		Desc:              doc.Content,
		ShortBio:          metaString(doc.Metadata, metaShortBio),
		DomainExpertise:   splitList(metaString(doc.Metadata, metaDomains)),
		PersonalityTraits: splitList(metaString(doc.Metadata, metaTraits)),
		RoleFunction:      metaString(doc.Metadata, metaRole),
		ExperienceLevel:   metaString(doc.Metadata, metaExperience),
		StyleKeywords:     splitList(metaString(doc.Metadata, metaStyle)),
	}
}

func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func shortID() string {
	return uuid.NewString()[:8]
}
