package persona

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/BaSui01/ideastorm/types"
)

// SelectionMode 阵容选择模式
type SelectionMode string

const (
	// ModeList 按给定名单选择
	ModeList SelectionMode = "list"
	// ModeSemantic 按主题语义检索选择
	ModeSemantic SelectionMode = "semantic"
	// ModeAuto 有名单用名单，否则语义检索
	ModeAuto SelectionMode = "auto"
)

// Selector 从角色库挑选会话阵容
type Selector struct {
	store  *IdentityStore
	logger *zap.Logger
}

// NewSelector 创建阵容选择器
func NewSelector(store *IdentityStore, logger *zap.Logger) *Selector {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Selector{
		store:  store,
		logger: logger.With(zap.String("component", "persona_selector")),
	}
}

// Select 按模式挑选阵容。
// list 模式下名单中找不到的角色会被跳过并告警；
// 全部落空时返回错误，避免空阵容开场。
func (s *Selector) Select(ctx context.Context, mode SelectionMode, topic string, names []string, k int) ([]types.Persona, error) {
	if mode == ModeAuto {
		if len(names) > 0 {
			mode = ModeList
		} else {
			mode = ModeSemantic
		}
	}

	var (
		roster []types.Persona
		err    error
	)
	switch mode {
	case ModeList:
		roster, err = s.byNames(ctx, names)
	case ModeSemantic:
		if k <= 0 {
			k = 3
		}
		roster, err = s.store.SearchSimilar(ctx, topic, k)
	default:
		return nil, fmt.Errorf("unknown selection mode: %s", mode)
	}
	if err != nil {
		return nil, err
	}

	if len(roster) == 0 {
		return nil, types.NewError(types.ErrPersonaInvalid, "no personas selected for session")
	}

	s.logger.Info("roster selected",
		zap.String("mode", string(mode)),
		zap.Int("size", len(roster)))
	return roster, nil
}

func (s *Selector) byNames(ctx context.Context, names []string) ([]types.Persona, error) {
	out := make([]types.Persona, 0, len(names))
	for _, name := range names {
		p, ok, err := s.store.Get(ctx, name)
		if err != nil {
			return nil, err
		}
		if !ok {
			s.logger.Warn("persona not in library, skipping", zap.String("persona", name))
			continue
		}
		out = append(out, p)
	}
	return out, nil
}
