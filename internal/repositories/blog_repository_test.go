package repositories

import (
	"fmt"
	"testing"

	"github.com/circlio/backend/internal/models"
	"github.com/circlio/backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListPublishedFiltersAndPaginates(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewPostgresBlogRepository(db)
	author := testutil.CreateUser(t, db, "author")

	for i := 0; i < 12; i++ {
		require.NoError(t, repo.CreateBlog(&models.Blog{
			Title:     fmt.Sprintf("go tips %d", i),
			Slug:      fmt.Sprintf("go-tips-%d", i),
			Body:      "body",
			AuthorID:  author.ID,
			Published: true,
		}))
	}
	require.NoError(t, repo.CreateBlog(&models.Blog{
		Title: "unpublished draft", Slug: "draft", Body: "body", AuthorID: author.ID,
	}))

	blogs, total, err := repo.ListPublished("", 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(12), total)
	assert.Len(t, blogs, 10)

	blogs, total, err = repo.ListPublished("", 2, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(12), total)
	assert.Len(t, blogs, 2)

	blogs, total, err = repo.ListPublished("tips 3", 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, blogs, 1)
	assert.Equal(t, "go tips 3", blogs[0].Title)
}

func TestGetBySlugAndIncrementViews(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewPostgresBlogRepository(db)
	author := testutil.CreateUser(t, db, "author")

	require.NoError(t, repo.CreateBlog(&models.Blog{
		Title: "hello", Slug: "hello", Body: "body", AuthorID: author.ID, Published: true,
	}))

	blog, err := repo.GetBySlug("hello")
	require.NoError(t, err)
	assert.Equal(t, int64(0), blog.Views)

	require.NoError(t, repo.IncrementViews(blog.ID))
	require.NoError(t, repo.IncrementViews(blog.ID))

	blog, err = repo.GetBySlug("hello")
	require.NoError(t, err)
	assert.Equal(t, int64(2), blog.Views)

	_, err = repo.GetBySlug("missing")
	assert.Error(t, err)
}

func TestLatestReturnsNewestPublished(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewPostgresBlogRepository(db)
	author := testutil.CreateUser(t, db, "author")

	for i := 0; i < 8; i++ {
		require.NoError(t, repo.CreateBlog(&models.Blog{
			Title:     fmt.Sprintf("post %d", i),
			Slug:      fmt.Sprintf("post-%d", i),
			Body:      "body",
			AuthorID:  author.ID,
			Published: true,
		}))
	}

	blogs, err := repo.Latest(5)
	require.NoError(t, err)
	assert.Len(t, blogs, 5)
}
