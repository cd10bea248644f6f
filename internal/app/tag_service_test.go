package app

import (
	"context"
	"errors"
	"testing"

	"github.com/segmentio/encoding/json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quotable-api/internal/domain"
	"github.com/jsamuelsen/quotable-api/internal/domain/query"
	"github.com/jsamuelsen/quotable-api/internal/mocks"
)

var byName = query.SortSpec{Field: query.FieldName, Order: query.Ascending}

func TestTagService_List_CacheMiss(t *testing.T) {
	repo := mocks.NewMockTagRepository(t)
	cache := mocks.NewMockCache(t)
	svc := NewTagService(TagServiceConfig{Tags: repo, Cache: cache, TTLSeconds: 60, Logger: discardLogger()})

	tags := []domain.Tag{{ID: "t1", Name: "Love", QuoteCount: 3}}
	encoded, err := json.Marshal(tags)
	require.NoError(t, err)

	cache.EXPECT().Get(mock.Anything, "quotable:tags:name:asc").Return(nil, domain.NewNotFoundError("cache", "quotable:tags:name:asc"))
	repo.EXPECT().List(mock.Anything, byName).Return(tags, nil)
	cache.EXPECT().Set(mock.Anything, "quotable:tags:name:asc", encoded, 60).Return(nil)

	got, err := svc.List(context.Background(), query.Params{})

	require.NoError(t, err)
	assert.Equal(t, tags, got)
}

func TestTagService_List_CacheHit(t *testing.T) {
	repo := mocks.NewMockTagRepository(t)
	cache := mocks.NewMockCache(t)
	svc := NewTagService(TagServiceConfig{Tags: repo, Cache: cache, Logger: discardLogger()})

	tags := []domain.Tag{{ID: "t2", Name: "Wisdom", QuoteCount: 9}}
	encoded, err := json.Marshal(tags)
	require.NoError(t, err)

	cache.EXPECT().Get(mock.Anything, "quotable:tags:quoteCount:desc").Return(encoded, nil)

	got, err := svc.List(context.Background(), query.Params{"sortBy": "quoteCount"})

	require.NoError(t, err)
	assert.Equal(t, tags, got)
}

func TestTagService_List_CacheFailureFallsBack(t *testing.T) {
	repo := mocks.NewMockTagRepository(t)
	cache := mocks.NewMockCache(t)
	svc := NewTagService(TagServiceConfig{Tags: repo, Cache: cache, Logger: discardLogger()})

	cache.EXPECT().Get(mock.Anything, mock.Anything).Return(nil, errors.New("connection refused"))
	repo.EXPECT().List(mock.Anything, byName).Return(nil, nil)
	cache.EXPECT().Set(mock.Anything, mock.Anything, mock.Anything, 0).Return(errors.New("connection refused"))

	got, err := svc.List(context.Background(), query.Params{})

	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestTagService_List_WithoutCache(t *testing.T) {
	repo := mocks.NewMockTagRepository(t)
	svc := NewTagService(TagServiceConfig{Tags: repo})

	repo.EXPECT().List(mock.Anything, byName).Return(nil, errors.New("no such table: tags"))

	_, err := svc.List(context.Background(), query.Params{"sortBy": "unknown"})
	require.Error(t, err)
}

func TestTagService_Refresh(t *testing.T) {
	repo := mocks.NewMockTagRepository(t)
	cache := mocks.NewMockCache(t)
	svc := NewTagService(TagServiceConfig{Tags: repo, Cache: cache, Logger: discardLogger()})

	repo.EXPECT().List(mock.Anything, mock.Anything).Return([]domain.Tag{}, nil).Times(4)
	cache.EXPECT().Set(mock.Anything, mock.Anything, mock.Anything, 0).Return(nil).Times(4)

	require.NoError(t, svc.Refresh(context.Background()))
}
