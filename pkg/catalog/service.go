package catalog

import (
	"context"

	"github.com/evebuzz/evebuzz/pkg/event"
	"github.com/evebuzz/evebuzz/pkg/session"
	"github.com/evebuzz/evebuzz/pkg/snapshot"
	log "github.com/sirupsen/logrus"
	"golang.org/x/text/language"
)

const relatedLimit = 3

type Options struct {
	PageSize         int
	FoldCategoryCase bool
	Language         language.Tag
}

func DefaultOptions() Options {
	return Options{
		PageSize: 6,
		Language: language.English,
	}
}

type Service interface {
	List(ctx context.Context, query Query) (Page, error)
	Get(ctx context.Context, id int) (event.Event, error)
	Related(ctx context.Context, id int) ([]event.Event, error)
	Refresh(ctx context.Context, s session.Session) (snapshot.Snapshot, error)
}

type ServiceImpl struct {
	source    snapshot.Source
	refresher snapshot.Refresher
	parser    *event.Parser
	opts      Options
}

func NewServiceImpl(source snapshot.Source, refresher snapshot.Refresher, parser *event.Parser, opts Options) *ServiceImpl {
	if opts.PageSize < 1 {
		opts.PageSize = DefaultOptions().PageSize
	}
	opts.PageSize = min(opts.PageSize, MaxPageSize)
	return &ServiceImpl{
		source:    source,
		refresher: refresher,
		parser:    parser,
		opts:      opts,
	}
}

func (s *ServiceImpl) List(ctx context.Context, query Query) (Page, error) {
	_, events, err := snapshot.ParseCurrent(s.source, s.parser)
	if err != nil {
		return Page{}, err
	}
	if query.PageSize < 1 {
		query.PageSize = s.opts.PageSize
	}

	filtered := Filter(events, query.Type, query.Search)
	Sort(filtered, query.Sort, s.opts.Language)
	log.Tracef("Catalogue query %+v matched %d of %d events", query, len(filtered), len(events))
	return Paginate(filtered, query.Page, query.PageSize), nil
}

func (s *ServiceImpl) Get(ctx context.Context, id int) (event.Event, error) {
	_, events, err := snapshot.ParseCurrent(s.source, s.parser)
	if err != nil {
		return event.Event{}, err
	}
	return event.FindByID(events, id)
}

func (s *ServiceImpl) Related(ctx context.Context, id int) ([]event.Event, error) {
	_, events, err := snapshot.ParseCurrent(s.source, s.parser)
	if err != nil {
		return nil, err
	}
	return Related(events, id, relatedLimit, s.opts.FoldCategoryCase)
}

func (s *ServiceImpl) Refresh(ctx context.Context, sess session.Session) (snapshot.Snapshot, error) {
	snap, err := s.refresher.Refresh(ctx, sess)
	if err != nil {
		return snapshot.Snapshot{}, err
	}
	log.Infof("Events snapshot %d loaded with %d records", snap.Sequence, len(snap.Records))
	return snap, nil
}
