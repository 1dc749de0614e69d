package queryx

import "testing"

func TestEmptyBuilder(t *testing.T) {
	b := New()
	if !b.Empty() {
		t.Error("fresh builder should be empty")
	}
	cond, args := b.SQL()
	if cond != "" || len(args) != 0 {
		t.Errorf("SQL() = (%q, %v), want empty", cond, args)
	}
}

func TestWhereAndWhereIf(t *testing.T) {
	b := New().
		Where("course_subject = ?", "physics").
		WhereIf(false, "skipped = ?", true).
		WhereIf(true, "course_is_published = ?", true)

	cond, args := b.SQL()
	want := "course_subject = ? AND course_is_published = ?"
	if cond != want {
		t.Errorf("cond = %q, want %q", cond, want)
	}
	if len(args) != 2 || args[0] != "physics" || args[1] != true {
		t.Errorf("args = %v", args)
	}
}

func TestSearchJoinsColumnsWithOr(t *testing.T) {
	b := New().Search("volt", "course_title", "course_description")

	cond, args := b.SQL()
	want := "(course_title ILIKE ? OR course_description ILIKE ?)"
	if cond != want {
		t.Errorf("cond = %q, want %q", cond, want)
	}
	if len(args) != 2 || args[0] != "%volt%" || args[1] != "%volt%" {
		t.Errorf("args = %v", args)
	}
}

func TestSearchSkipsBlankTerm(t *testing.T) {
	b := New().Search("   ", "course_title")
	if !b.Empty() {
		t.Error("blank search term should add nothing")
	}
	b = New().Search("volt")
	if !b.Empty() {
		t.Error("search with no columns should add nothing")
	}
}

func TestSearchTermIsParameterizedNotInlined(t *testing.T) {
	term := "'; DROP TABLE courses; --"
	cond, args := New().Search(term, "course_title").SQL()

	if cond != "(course_title ILIKE ?)" {
		t.Errorf("cond = %q, term must stay out of the SQL text", cond)
	}
	if len(args) != 1 || args[0] != "%"+term+"%" {
		t.Errorf("args = %v", args)
	}
}
