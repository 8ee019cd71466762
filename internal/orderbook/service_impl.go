package orderbook

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/smallbiznis/lingora/internal/orderbook/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB   *gorm.DB
	Log  *zap.Logger
	Node *snowflake.Node
	Repo domain.Repository
}

type service struct {
	db   *gorm.DB
	log  *zap.Logger
	node *snowflake.Node
	repo domain.Repository
}

func NewService(p Params) domain.Service {
	return &service{
		db:   p.DB,
		log:  p.Log.Named("orderbook.service"),
		node: p.Node,
		repo: p.Repo,
	}
}

func (s *service) Create(ctx context.Context, req domain.CreateRequest) (*domain.OrderBook, error) {
	viewType := strings.TrimSpace(req.ViewType)
	if viewType == "" {
		viewType = domain.ViewPlain
	}
	if viewType != domain.ViewPlain && viewType != domain.ViewRepertorium {
		return nil, domain.ErrInvalidViewType
	}

	book := domain.OrderBook{
		ID:                    s.node.Generate(),
		Name:                  strings.TrimSpace(req.Name),
		Code:                  slug.Make(req.Name),
		ViewType:              viewType,
		OrderNumberFormat:     req.OrderNumberFormat,
		RepertoriumOralUnitID: req.RepertoriumOralUnitID,
		RepertoriumPageUnitID: req.RepertoriumPageUnitID,
		ShareToken:            uuid.NewString(),
	}
	if err := s.repo.Insert(ctx, s.db, &book); err != nil {
		return nil, err
	}
	s.log.Info("order book created",
		zap.Stringer("book_id", book.ID),
		zap.String("code", book.Code),
		zap.String("view_type", book.ViewType),
	)
	return &book, nil
}

func (s *service) Get(ctx context.Context, id snowflake.ID) (*domain.OrderBook, error) {
	return s.repo.FindByID(ctx, s.db, id)
}

func (s *service) GetByShareToken(ctx context.Context, token string) (*domain.OrderBook, error) {
	if strings.TrimSpace(token) == "" {
		return nil, domain.ErrNotFound
	}
	return s.repo.FindByShareToken(ctx, s.db, token)
}

func (s *service) List(ctx context.Context) ([]domain.OrderBook, error) {
	return s.repo.List(ctx, s.db)
}

func (s *service) Update(ctx context.Context, id snowflake.ID, req domain.UpdateRequest) (*domain.OrderBook, error) {
	book, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil && strings.TrimSpace(*req.Name) != "" {
		book.Name = strings.TrimSpace(*req.Name)
		book.Code = slug.Make(book.Name)
	}
	if req.ViewType != nil {
		if *req.ViewType != domain.ViewPlain && *req.ViewType != domain.ViewRepertorium {
			return nil, domain.ErrInvalidViewType
		}
		book.ViewType = *req.ViewType
	}
	if req.OrderNumberFormat != nil {
		book.OrderNumberFormat = req.OrderNumberFormat
	}
	if req.RepertoriumOralUnitID != nil {
		book.RepertoriumOralUnitID = req.RepertoriumOralUnitID
	}
	if req.RepertoriumPageUnitID != nil {
		book.RepertoriumPageUnitID = req.RepertoriumPageUnitID
	}
	if err := s.repo.Update(ctx, s.db, book); err != nil {
		return nil, err
	}
	return book, nil
}

func (s *service) Delete(ctx context.Context, id snowflake.ID) error {
	return s.repo.Delete(ctx, s.db, id)
}

func (s *service) RotateShareToken(ctx context.Context, id snowflake.ID) (*domain.OrderBook, error) {
	book, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	book.ShareToken = uuid.NewString()
	if err := s.repo.Update(ctx, s.db, book); err != nil {
		return nil, err
	}
	return book, nil
}
