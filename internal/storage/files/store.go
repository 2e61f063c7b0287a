// Package files owns the on-disk layout of mirrored content:
//
//	{root}/{collectionId}/index.json
//	{root}/{collectionId}/posts/{postId}.md
package files

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"seconddraft/internal/domain"
)

const (
	indexFile = "index.json"
	postsDir  = "posts"
	postExt   = ".md"
)

type Store struct {
	root string
}

func NewStore(root string) *Store {
	return &Store{root: root}
}

func (s *Store) Root() string {
	return s.root
}

func (s *Store) collectionDir(collectionID string) string {
	return filepath.Join(s.root, collectionID)
}

// PostPath returns the path of a post's markup file.
func (s *Store) PostPath(collectionID, postID string) string {
	return filepath.Join(s.collectionDir(collectionID), postsDir, postID+postExt)
}

// DownloadedPostIDs scans the posts directory. A directory that does not exist
// yet means nothing has been downloaded.
func (s *Store) DownloadedPostIDs(collectionID string) (map[string]struct{}, error) {
	ids := make(map[string]struct{})

	entries, err := os.ReadDir(filepath.Join(s.collectionDir(collectionID), postsDir))
	if errors.Is(err, fs.ErrNotExist) {
		return ids, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read posts dir: %w", err)
	}

	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, postExt) {
			continue
		}
		ids[strings.TrimSuffix(name, postExt)] = struct{}{}
	}
	return ids, nil
}

// WritePost writes a markup file, creating directories as needed.
func (s *Store) WritePost(collectionID, postID string, data []byte) (string, error) {
	path := s.PostPath(collectionID, postID)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("create posts dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write post %s: %w", postID, err)
	}
	return path, nil
}

func (s *Store) ReadPost(collectionID, postID string) ([]byte, error) {
	return os.ReadFile(s.PostPath(collectionID, postID))
}

// WriteCollectionMetadata overwrites index.json.
func (s *Store) WriteCollectionMetadata(meta *domain.CollectionMetadata) error {
	dir := s.collectionDir(meta.ID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create collection dir: %w", err)
	}

	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal collection metadata: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, indexFile), data, 0o644); err != nil {
		return fmt.Errorf("write collection metadata: %w", err)
	}
	return nil
}

// ReadCollectionMetadata returns nil, nil when the collection was never synced.
func (s *Store) ReadCollectionMetadata(collectionID string) (*domain.CollectionMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.collectionDir(collectionID), indexFile))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read collection metadata: %w", err)
	}

	var meta domain.CollectionMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("decode collection metadata: %w", err)
	}
	return &meta, nil
}

// ListCollections returns every readable collection index sorted by name.
// Hidden directories and broken index files are skipped.
func (s *Store) ListCollections() ([]domain.CollectionMetadata, error) {
	entries, err := os.ReadDir(s.root)
	if errors.Is(err, fs.ErrNotExist) {
		return []domain.CollectionMetadata{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read content dir: %w", err)
	}

	collections := make([]domain.CollectionMetadata, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		meta, err := s.ReadCollectionMetadata(e.Name())
		if err != nil || meta == nil {
			continue
		}
		collections = append(collections, *meta)
	}

	sort.Slice(collections, func(i, j int) bool {
		return collections[i].Name < collections[j].Name
	})
	return collections, nil
}

// ListPostIDs returns the ids of every markup file in a collection, sorted.
func (s *Store) ListPostIDs(collectionID string) ([]string, error) {
	set, err := s.DownloadedPostIDs(collectionID)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}
