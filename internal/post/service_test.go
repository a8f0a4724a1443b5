package post

import (
	"errors"
	"testing"
)

func seedPosts() []Post {
	return []Post{
		{ID: 1, Title: "Hello", Slug: "hello-world", Body: "first", Published: true},
		{ID: 2, Title: "Draft", Slug: "work-in-progress", Body: "soon", Published: false},
	}
}

func TestListHidesDrafts(t *testing.T) {
	svc := NewService(NewInMemoryRepository(seedPosts()))

	published, err := svc.List(false)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(published) != 1 || published[0].Slug != "hello-world" {
		t.Fatalf("public list = %+v, want the published post only", published)
	}

	all, err := svc.List(true)
	if err != nil {
		t.Fatalf("List drafts: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("admin list returned %d posts, want 2", len(all))
	}
}

func TestGetBySlugDraftVisibility(t *testing.T) {
	svc := NewService(NewInMemoryRepository(seedPosts()))

	if _, err := svc.GetBySlug("work-in-progress", false); !errors.Is(err, ErrNotFound) {
		t.Fatalf("public draft read err = %v, want ErrNotFound", err)
	}

	p, err := svc.GetBySlug("work-in-progress", true)
	if err != nil {
		t.Fatalf("admin draft read: %v", err)
	}
	if p.Title != "Draft" {
		t.Errorf("got %q", p.Title)
	}

	if _, err := svc.GetBySlug("no-such-post", true); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing slug err = %v, want ErrNotFound", err)
	}
}

func TestCreateValidatesSlug(t *testing.T) {
	svc := NewService(NewInMemoryRepository(nil))

	bad := []Post{
		{Title: "t", Slug: "", Body: "b"},
		{Title: "t", Slug: "has spaces", Body: "b"},
		{Title: "t", Slug: "trailing-", Body: "b"},
		{Title: "t", Slug: "under_score", Body: "b"},
		{Title: "", Slug: "ok-slug", Body: "b"},
	}
	for _, p := range bad {
		if _, err := svc.Create(p); !errors.Is(err, ErrInvalidPost) {
			t.Errorf("Create(%q) err = %v, want ErrInvalidPost", p.Slug, err)
		}
	}

	created, err := svc.Create(Post{Title: "t", Slug: "valid-slug-2", Body: "b"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == 0 {
		t.Error("created post has no id")
	}
}

func TestCreateRejectsDuplicateSlug(t *testing.T) {
	svc := NewService(NewInMemoryRepository(seedPosts()))

	if _, err := svc.Create(Post{Title: "dup", Slug: "Hello-World", Body: "b"}); !errors.Is(err, ErrSlugExists) {
		t.Fatalf("duplicate slug err = %v, want ErrSlugExists", err)
	}
}
