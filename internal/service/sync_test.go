package service

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"seconddraft/internal/config"
	"seconddraft/internal/domain"
	"seconddraft/internal/service/mocks"
)

type SyncServiceTestSuite struct {
	suite.Suite
	ctrl *gomock.Controller

	apps       *mocks.MockAppConfigLoader
	source     *mocks.MockSource
	translator *mocks.MockTranslator
	html       *mocks.MockHTMLConverter
	files      *mocks.MockFileStore
	index      *mocks.MockContentIndex
	syncState  *mocks.MockSyncStateStore
	locker     *mocks.MockLocker
	publisher  *mocks.MockPublisher
	archiver   *mocks.MockArchiver

	service *SyncService
	logger  *slog.Logger
	now     time.Time
	unlocks int
}

func (s *SyncServiceTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())

	s.apps = mocks.NewMockAppConfigLoader(s.ctrl)
	s.source = mocks.NewMockSource(s.ctrl)
	s.translator = mocks.NewMockTranslator(s.ctrl)
	s.html = mocks.NewMockHTMLConverter(s.ctrl)
	s.files = mocks.NewMockFileStore(s.ctrl)
	s.index = mocks.NewMockContentIndex(s.ctrl)
	s.syncState = mocks.NewMockSyncStateStore(s.ctrl)
	s.locker = mocks.NewMockLocker(s.ctrl)
	s.publisher = mocks.NewMockPublisher(s.ctrl)
	s.archiver = mocks.NewMockArchiver(s.ctrl)

	s.logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	s.now = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	s.unlocks = 0

	s.source.EXPECT().Name().Return("Test Source").AnyTimes()

	s.service = NewSyncService(
		s.apps,
		func(string) Source { return s.source },
		s.translator,
		s.html,
		s.files,
		s.index,
		s.syncState,
		s.locker,
		s.publisher,
		s.archiver,
		s.logger,
	)
	s.service.now = func() time.Time { return s.now }
}

func (s *SyncServiceTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestSyncServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SyncServiceTestSuite))
}

func (s *SyncServiceTestSuite) appConfig(collections ...domain.Collection) *config.AppConfig {
	return &config.AppConfig{Patreon: config.PatreonConfig{
		SessionCookie: "session_id=abc",
		Collections:   collections,
	}}
}

func (s *SyncServiceTestSuite) expectLock(collectionID string) {
	s.locker.EXPECT().Lock(gomock.Any(), "collection:"+collectionID).Return(func() error {
		s.unlocks++
		return nil
	}, nil)
}

func jsonContent(v string) *string {
	return &v
}

var stories = domain.Collection{ID: "c1", Name: "Stories", CampaignID: "42"}

func (s *SyncServiceTestSuite) TestSync_ConfigErrorAbortsRun() {
	s.apps.EXPECT().LoadApp().Return(nil, &domain.ConfigError{Reason: "patreon session cookie not configured"})

	summary, err := s.service.Sync(context.Background())

	s.Nil(summary)
	var cfgErr *domain.ConfigError
	s.True(errors.As(err, &cfgErr))
}

func (s *SyncServiceTestSuite) TestSync_NoCollections() {
	s.apps.EXPECT().LoadApp().Return(s.appConfig(), nil)

	summary, err := s.service.Sync(context.Background())

	s.Require().NoError(err)
	s.Equal(ResultNoCollections, summary.Result)
	s.Zero(summary.Collections)
	s.NotEmpty(summary.RunID)
}

func (s *SyncServiceTestSuite) TestSyncCollection_DownloadsOnlyMissingPosts() {
	ctx := context.Background()
	s.expectLock("c1")

	s.source.EXPECT().CreatorName(ctx, "42").Return("", nil)
	s.source.EXPECT().CollectionPosts(ctx, "c1", "42").Return([]domain.Post{
		{ID: "1", Title: "On disk", CanView: true},
		{ID: "2", Title: "From json", ContentJSON: jsonContent(`{"type":"doc"}`), CanView: true},
		{ID: "3", Title: "Locked", CanView: false},
		{ID: "4", Title: "", HTML: "<p>four</p>", CanView: true},
		{ID: "5", Title: "Stored", CanView: true},
	}, nil)

	s.files.EXPECT().DownloadedPostIDs("c1").Return(map[string]struct{}{"1": {}}, nil)
	s.index.EXPECT().ExistingPostIDs(ctx, "c1", []string{"1", "2", "4", "5"}).
		Return(map[string]struct{}{"5": {}}, nil)

	s.translator.EXPECT().ToMarkdown(`{"type":"doc"}`).Return("two\n", true)
	s.html.EXPECT().Convert("<p>four</p>").Return("four", nil)

	written := map[string]string{}
	s.files.EXPECT().WritePost("c1", gomock.Any(), gomock.Any()).Times(2).
		DoAndReturn(func(collectionID, postID string, data []byte) (string, error) {
			written[postID] = string(data)
			return "content/" + collectionID + "/posts/" + postID + ".md", nil
		})

	s.archiver.EXPECT().Upload(ctx, "content/c1/posts/2.md", gomock.Any()).Return(nil)
	s.archiver.EXPECT().Upload(ctx, "content/c1/posts/4.md", gomock.Any()).Return(nil)

	var events []*domain.PostEvent
	s.publisher.EXPECT().Publish(ctx, gomock.Any()).Times(2).
		DoAndReturn(func(_ context.Context, event *domain.PostEvent) error {
			events = append(events, event)
			return nil
		})

	var meta *domain.CollectionMetadata
	s.files.EXPECT().WriteCollectionMetadata(gomock.Any()).
		DoAndReturn(func(m *domain.CollectionMetadata) error {
			meta = m
			return nil
		})

	s.syncState.EXPECT().Get(ctx, "c1").Return(&domain.SyncState{CollectionID: "c1", TotalSynced: 3}, nil)
	var state *domain.SyncState
	s.syncState.EXPECT().Update(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, st *domain.SyncState) error {
			state = st
			return nil
		})

	stats, err := s.service.SyncCollection(ctx, s.source, stories, "run-1")
	s.Require().NoError(err)

	s.Equal(5, stats.Fetched)
	s.Equal(4, stats.Viewable)
	s.Equal(2, stats.Existing)
	s.Equal(2, stats.New)
	s.Equal(0, stats.Errors)
	s.Equal(2, stats.Published)
	s.Equal(2, stats.Archived)
	s.Equal(4, stats.PostCount)
	s.Equal(1, s.unlocks)

	s.Require().Len(written, 2)
	s.Contains(written["2"], `author: "Unknown Creator"`)
	s.Contains(written["2"], "---\n\ntwo\n")
	s.Contains(written["4"], `title: "Untitled Post"`)
	s.Contains(written["4"], "---\n\nfour")

	s.Require().Len(events, 2)
	s.Equal(domain.ContentSourceJSON, events[0].Source)
	s.Equal(domain.ContentSourceHTML, events[1].Source)
	s.Equal("run-1", events[1].RunID)
	s.Equal("4", events[1].Post.PostID)

	s.Require().NotNil(meta)
	s.Equal(4, meta.PostCount)
	s.Equal("2024-06-01T12:00:00.000Z", meta.LastSync)
	s.Len(meta.Posts, 4)
	s.Equal("Stories", meta.Posts[0].CollectionName)

	s.Require().NotNil(state)
	s.Equal(int64(5), state.TotalSynced)
	s.Equal(int64(4), state.PostCount)
	s.Equal("run-1", state.LastRunID)
	s.Equal(s.now, state.LastSyncedAt)
}

func (s *SyncServiceTestSuite) TestSyncCollection_EmptyTranslationFallsBackToHTML() {
	ctx := context.Background()
	s.expectLock("c1")

	s.source.EXPECT().CreatorName(ctx, "42").Return("Ada", nil)
	s.source.EXPECT().CollectionPosts(ctx, "c1", "42").Return([]domain.Post{
		{ID: "1", ContentJSON: jsonContent(`{"type":"doc","content":[]}`), HTML: "<p>html</p>", CanView: true},
	}, nil)
	s.files.EXPECT().DownloadedPostIDs("c1").Return(map[string]struct{}{}, nil)
	s.index.EXPECT().ExistingPostIDs(ctx, "c1", []string{"1"}).Return(map[string]struct{}{}, nil)

	s.translator.EXPECT().ToMarkdown(gomock.Any()).Return("", false)
	s.html.EXPECT().Convert("<p>html</p>").Return("html", nil)
	s.files.EXPECT().WritePost("c1", "1", gomock.Any()).Return("content/c1/posts/1.md", nil)
	s.archiver.EXPECT().Upload(ctx, gomock.Any(), gomock.Any()).Return(nil)
	s.publisher.EXPECT().Publish(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, event *domain.PostEvent) error {
			s.Equal(domain.ContentSourceHTML, event.Source)
			s.Equal("Ada", event.Post.Author)
			return nil
		})
	s.files.EXPECT().WriteCollectionMetadata(gomock.Any()).Return(nil)
	s.syncState.EXPECT().Get(ctx, "c1").Return(&domain.SyncState{}, nil)
	s.syncState.EXPECT().Update(ctx, gomock.Any()).Return(nil)

	stats, err := s.service.SyncCollection(ctx, s.source, stories, "run-1")
	s.Require().NoError(err)
	s.Equal(1, stats.New)
}

func (s *SyncServiceTestSuite) TestSyncCollection_CampaignErrorAbortsCollection() {
	ctx := context.Background()
	s.expectLock("c1")

	s.source.EXPECT().CreatorName(ctx, "42").Return("", errors.New("patreon api error: 500"))

	stats, err := s.service.SyncCollection(ctx, s.source, stories, "run-1")

	s.Nil(stats)
	s.ErrorContains(err, "fetch campaign")
	s.Equal(1, s.unlocks)
}

func (s *SyncServiceTestSuite) TestSyncCollection_SideEffectFailuresAreCounted() {
	ctx := context.Background()
	s.expectLock("c1")

	s.source.EXPECT().CreatorName(ctx, "42").Return("Ada", nil)
	s.source.EXPECT().CollectionPosts(ctx, "c1", "42").Return([]domain.Post{
		{ID: "1", HTML: "<p>x</p>", CanView: true},
	}, nil)
	s.files.EXPECT().DownloadedPostIDs("c1").Return(map[string]struct{}{}, nil)
	s.index.EXPECT().ExistingPostIDs(ctx, "c1", []string{"1"}).Return(nil, errors.New("database is locked"))
	s.html.EXPECT().Convert("<p>x</p>").Return("x", nil)
	s.files.EXPECT().WritePost("c1", "1", gomock.Any()).Return("content/c1/posts/1.md", nil)
	s.archiver.EXPECT().Upload(ctx, gomock.Any(), gomock.Any()).Return(errors.New("access denied"))
	s.publisher.EXPECT().Publish(ctx, gomock.Any()).Return(errors.New("channel closed"))
	s.files.EXPECT().WriteCollectionMetadata(gomock.Any()).Return(nil)
	s.syncState.EXPECT().Get(ctx, "c1").Return(&domain.SyncState{}, nil)
	s.syncState.EXPECT().Update(ctx, gomock.Any()).Return(nil)

	stats, err := s.service.SyncCollection(ctx, s.source, stories, "run-1")
	s.Require().NoError(err)
	s.Equal(1, stats.New)
	s.Equal(2, stats.Errors)
	s.Equal(1, stats.PostCount)
}

func (s *SyncServiceTestSuite) TestSync_SkipsCompleteAndBusyCollections() {
	ctx := context.Background()
	done := domain.Collection{ID: "c2", Name: "Done", CampaignID: "42", Complete: true}
	busy := domain.Collection{ID: "c3", Name: "Busy", CampaignID: "42"}

	s.apps.EXPECT().LoadApp().Return(s.appConfig(stories, done, busy), nil)

	s.expectLock("c1")
	s.source.EXPECT().CreatorName(ctx, "42").Return("Ada", nil)
	s.source.EXPECT().CollectionPosts(ctx, "c1", "42").Return(nil, nil)
	s.files.EXPECT().DownloadedPostIDs("c1").Return(map[string]struct{}{}, nil)
	s.files.EXPECT().WriteCollectionMetadata(gomock.Any()).Return(nil)
	s.syncState.EXPECT().Get(ctx, "c1").Return(&domain.SyncState{}, nil)
	s.syncState.EXPECT().Update(ctx, gomock.Any()).Return(nil)

	s.locker.EXPECT().Lock(gomock.Any(), "collection:c3").Return(nil, domain.ErrCollectionBusy)

	summary, err := s.service.Sync(ctx)
	s.Require().NoError(err)
	s.Equal(ResultCompleted, summary.Result)
	s.Equal(3, summary.Collections)
	s.Require().Len(summary.Stats, 1)
	s.Equal("c1", summary.Stats[0].CollectionID)
}

func (s *SyncServiceTestSuite) TestSync_CollectionErrorAbortsRun() {
	ctx := context.Background()
	second := domain.Collection{ID: "c2", Name: "Second", CampaignID: "43"}

	s.apps.EXPECT().LoadApp().Return(s.appConfig(stories, second), nil)
	s.expectLock("c1")
	s.source.EXPECT().CreatorName(ctx, "42").Return("Ada", nil)
	s.source.EXPECT().CollectionPosts(ctx, "c1", "42").Return(nil, errors.New("fetch page 0: timeout"))

	summary, err := s.service.Sync(ctx)

	s.Nil(summary)
	s.ErrorContains(err, "sync collection c1")
}

func (s *SyncServiceTestSuite) TestSyncOnly_FiltersCollections() {
	ctx := context.Background()
	second := domain.Collection{ID: "c2", Name: "Second", CampaignID: "43"}

	s.apps.EXPECT().LoadApp().Return(s.appConfig(stories, second), nil)
	s.expectLock("c2")
	s.source.EXPECT().CreatorName(ctx, "43").Return("Ada", nil)
	s.source.EXPECT().CollectionPosts(ctx, "c2", "43").Return(nil, nil)
	s.files.EXPECT().DownloadedPostIDs("c2").Return(nil, nil)
	s.files.EXPECT().WriteCollectionMetadata(gomock.Any()).Return(nil)
	s.syncState.EXPECT().Get(ctx, "c2").Return(&domain.SyncState{}, nil)
	s.syncState.EXPECT().Update(ctx, gomock.Any()).Return(nil)

	summary, err := s.service.SyncOnly(ctx, []string{"c2"})
	s.Require().NoError(err)
	s.Require().Len(summary.Stats, 1)
	s.Equal("c2", summary.Stats[0].CollectionID)
	s.Equal(1, summary.Collections)
}
