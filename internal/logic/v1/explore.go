package v1

import (
	"context"
	"net/http"
	"strings"

	"github.com/breeew/folio-api/internal/core"
	"github.com/breeew/folio-api/pkg/ai"
	"github.com/breeew/folio-api/pkg/errors"
	"github.com/breeew/folio-api/pkg/i18n"
	"github.com/breeew/folio-api/pkg/types"
)

const NO_ANSWER_TEXT = "暂无回答。"

type ExploreLogic struct {
	ctx  context.Context
	core *core.Core
}

func NewExploreLogic(ctx context.Context, core *core.Core) *ExploreLogic {
	return &ExploreLogic{
		ctx:  ctx,
		core: core,
	}
}

type ExploreArgs struct {
	Query     string            `json:"query"`
	Mode      types.ExploreMode `json:"mode"`
	Latitude  *float64          `json:"latitude"`
	Longitude *float64          `json:"longitude"`
}

func (l *ExploreLogic) Explore(args ExploreArgs) (*types.ExploreResult, error) {
	query := strings.TrimSpace(args.Query)
	if query == "" {
		return nil, errors.New("ExploreLogic.Explore.query", i18n.ERROR_INVALIDARGUMENT, nil).Code(http.StatusBadRequest)
	}

	model := ai.MODEL_EXPLORE_SEARCH
	switch args.Mode {
	case "", types.EXPLORE_MODE_SEARCH:
		args.Mode = types.EXPLORE_MODE_SEARCH
	case types.EXPLORE_MODE_MAPS:
		if args.Latitude == nil || args.Longitude == nil {
			return nil, errors.New("ExploreLogic.Explore.location", i18n.ERROR_EXPLORE_LOCATION, nil).Code(http.StatusBadRequest)
		}
		model = ai.MODEL_EXPLORE_MAPS
	default:
		return nil, errors.New("ExploreLogic.Explore.mode", i18n.ERROR_INVALIDARGUMENT, nil).Code(http.StatusBadRequest)
	}

	res, err := l.core.Srv().AI().Explore(l.ctx, ai.ExploreRequest{
		Query:     query,
		Mode:      args.Mode,
		Latitude:  args.Latitude,
		Longitude: args.Longitude,
	})
	l.core.Metrics().ObserveAI(model, err)
	if err != nil {
		return nil, AIError("ExploreLogic.Explore.AI.Explore", err)
	}

	if strings.TrimSpace(res.Text) == "" {
		res.Text = NO_ANSWER_TEXT
	}
	if res.Sources == nil {
		res.Sources = []types.GroundingSource{}
	}
	return &res, nil
}
