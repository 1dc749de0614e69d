package helper

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func parseThrough(t *testing.T, target string, opt PageOptions) PageParams {
	t.Helper()
	var got PageParams
	app := fiber.New()
	app.Get("/x", func(c *fiber.Ctx) error {
		got = ParsePage(c, "created_at", "desc", opt)
		return c.SendString("ok")
	})
	if _, err := app.Test(httptest.NewRequest("GET", target, nil)); err != nil {
		t.Fatalf("request: %v", err)
	}
	return got
}

func TestParsePageDefaults(t *testing.T) {
	p := parseThrough(t, "/x", DefaultOpts)
	if p.Page != 1 || p.PerPage != 25 {
		t.Errorf("defaults = page %d per %d, want 1/25", p.Page, p.PerPage)
	}
	if p.SortBy != "created_at" || p.SortOrder != "desc" {
		t.Errorf("sort defaults = %s %s", p.SortBy, p.SortOrder)
	}
}

func TestParsePageClampsAndAliases(t *testing.T) {
	p := parseThrough(t, "/x?page=3&limit=9999&sort_by=title&order=asc&search=volt", DefaultOpts)
	if p.Page != 3 {
		t.Errorf("page = %d", p.Page)
	}
	if p.PerPage != DefaultOpts.MaxPerPage {
		t.Errorf("per page = %d, want clamp to %d", p.PerPage, DefaultOpts.MaxPerPage)
	}
	if p.SortBy != "title" || p.SortOrder != "asc" {
		t.Errorf("sort = %s %s", p.SortBy, p.SortOrder)
	}
	if p.Search != "volt" {
		t.Errorf("search = %q", p.Search)
	}
}

func TestParsePageRejectsBadValues(t *testing.T) {
	p := parseThrough(t, "/x?page=-2&per_page=abc&order=sideways", DefaultOpts)
	if p.Page != 1 {
		t.Errorf("negative page = %d, want 1", p.Page)
	}
	if p.PerPage != 25 {
		t.Errorf("bad per_page = %d, want default", p.PerPage)
	}
	if p.SortOrder != "desc" {
		t.Errorf("bad order = %q, want desc", p.SortOrder)
	}
}

func TestLimitOffset(t *testing.T) {
	p := PageParams{Page: 4, PerPage: 25}
	if p.Limit() != 25 || p.Offset() != 75 {
		t.Errorf("limit/offset = %d/%d, want 25/75", p.Limit(), p.Offset())
	}
}

func TestSafeOrderClauseWhitelist(t *testing.T) {
	allowed := map[string]string{"created_at": "created_at", "title": "course_title"}

	p := PageParams{SortBy: "title", SortOrder: "asc"}
	clause, err := p.SafeOrderClause(allowed, "created_at")
	if err != nil || clause != "course_title ASC" {
		t.Errorf("clause = %q, err = %v", clause, err)
	}

	// injection attempt falls back to the default column
	p = PageParams{SortBy: "title; DROP TABLE courses", SortOrder: "desc"}
	clause, err = p.SafeOrderClause(allowed, "created_at")
	if err != nil || clause != "created_at DESC" {
		t.Errorf("clause = %q, err = %v", clause, err)
	}
}

func TestBuildPageMeta(t *testing.T) {
	meta := BuildPageMeta(101, PageParams{Page: 2, PerPage: 25})
	if meta.TotalPages != 5 {
		t.Errorf("total pages = %d, want 5", meta.TotalPages)
	}
	if !meta.HasNext || !meta.HasPrev {
		t.Errorf("has next/prev = %v/%v", meta.HasNext, meta.HasPrev)
	}
	if meta.NextPage == nil || *meta.NextPage != 3 || meta.PrevPage == nil || *meta.PrevPage != 1 {
		t.Errorf("next/prev page pointers wrong")
	}

	empty := BuildPageMeta(0, PageParams{Page: 1, PerPage: 25})
	if empty.TotalPages != 0 || empty.HasNext || empty.HasPrev {
		t.Errorf("empty meta = %+v", empty)
	}
}
