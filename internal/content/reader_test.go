package content

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"

	"seconddraft/internal/domain"
	"seconddraft/internal/markup"
	"seconddraft/internal/render"
	"seconddraft/internal/storage/files"
	"seconddraft/internal/storage/sqlstore"
)

type brokenStore struct {
	upserts int
}

func (b *brokenStore) Get(context.Context, string, string) (*domain.RenderedDocument, error) {
	return nil, errors.New("database is locked")
}

func (b *brokenStore) Upsert(context.Context, *domain.RenderedDocument) error {
	b.upserts++
	return errors.New("database is locked")
}

type ReaderSuite struct {
	suite.Suite
	ctx    context.Context
	files  *files.Store
	docs   *sqlstore.DocumentStore
	tx     *sqlstore.TransactionManager
	reader *Reader
	logger *slog.Logger
}

func (s *ReaderSuite) SetupTest() {
	s.ctx = context.Background()
	s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	dir := s.T().TempDir()

	db, err := sqlstore.Open(s.ctx, "sqlite", filepath.Join(dir, "content.db")+"?_pragma=busy_timeout(5000)")
	s.Require().NoError(err)
	s.T().Cleanup(func() { db.Close() })

	s.files = files.NewStore(filepath.Join(dir, "content"))
	s.docs = sqlstore.NewDocumentStore(db, sqlstore.NewSchema(db))
	s.tx = sqlstore.NewTransactionManager(db)
	s.reader = NewReader(s.docs, s.files, render.New(nil), s.tx, s.logger)
}

func (s *ReaderSuite) writePost(collectionID, postID, body string) {
	meta := domain.PostMetadata{
		Title:          "Post " + postID,
		PostID:         postID,
		PublishedAt:    "2024-01-01T00:00:00.000+00:00",
		Author:         "Ada",
		CollectionName: "Stories",
		CollectionID:   collectionID,
	}
	_, err := s.files.WritePost(collectionID, postID, []byte(markup.Write(meta, body)))
	s.Require().NoError(err)
}

func (s *ReaderSuite) TestGet_RendersAndCachesOnMiss() {
	s.writePost("c1", "1", "Hello there\n")

	doc, err := s.reader.Get(s.ctx, "c1", "1")
	s.Require().NoError(err)
	s.Equal("Post 1", doc.Title)
	s.Equal("Hello there", doc.Description)
	s.Equal("content/c1/posts/1.md", doc.ID)

	stored, err := s.docs.Get(s.ctx, "c1", "1")
	s.Require().NoError(err)
	s.Require().NotNil(stored)
	s.Equal(doc.ContentHash, stored.ContentHash)
}

func (s *ReaderSuite) TestGet_ServesFromStore() {
	s.Require().NoError(s.docs.Upsert(s.ctx, &domain.RenderedDocument{
		PostMetadata: domain.PostMetadata{Title: "Cached", PostID: "1", CollectionID: "c1"},
		Body:         []byte(`{"type":"minimark","value":[]}`),
	}))

	doc, err := s.reader.Get(s.ctx, "c1", "1")
	s.Require().NoError(err)
	s.Equal("Cached", doc.Title)
}

func (s *ReaderSuite) TestGet_StoreFailureFallsBackToFile() {
	s.writePost("c1", "1", "From disk\n")
	store := &brokenStore{}
	reader := NewReader(store, s.files, render.New(nil), s.tx, s.logger)

	doc, err := reader.Get(s.ctx, "c1", "1")
	s.Require().NoError(err)
	s.Equal("From disk", doc.Description)
	s.Equal(1, store.upserts)
}

func (s *ReaderSuite) TestGet_MissingFile() {
	_, err := s.reader.Get(s.ctx, "c1", "404")
	s.ErrorIs(err, domain.ErrPostNotFound)
}

func (s *ReaderSuite) TestGet_TwiceKeepsOneRow() {
	s.writePost("c1", "1", "Once\n")

	_, err := s.reader.Get(s.ctx, "c1", "1")
	s.Require().NoError(err)
	_, err = NewReader(s.docs, s.files, render.New(nil), s.tx, s.logger).Get(s.ctx, "c1", "1")
	s.Require().NoError(err)

	docs, err := s.docs.ListByCollection(s.ctx, "c1")
	s.Require().NoError(err)
	s.Len(docs, 1)
}

func (s *ReaderSuite) TestWarm() {
	s.writePost("c1", "1", "one\n")
	s.writePost("c1", "2", "two\n")
	_, err := s.files.WritePost("c1", "3", []byte("---\ntitle: [broken\n---\n"))
	s.Require().NoError(err)

	n, err := s.reader.Warm(s.ctx, "c1")
	s.Require().NoError(err)
	s.Equal(2, n)

	docs, err := s.docs.ListByCollection(s.ctx, "c1")
	s.Require().NoError(err)
	s.Len(docs, 2)
}

func (s *ReaderSuite) TestWarm_EmptyCollection() {
	n, err := s.reader.Warm(s.ctx, "nothing")
	s.Require().NoError(err)
	s.Zero(n)
}

func TestReaderSuite(t *testing.T) {
	suite.Run(t, new(ReaderSuite))
}
