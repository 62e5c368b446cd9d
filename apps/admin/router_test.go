package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	testutil "github.com/trezcool/edudash/tests"
)

func Test_resolve(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		signedIn bool
		want     string
	}{
		{name: "signed out", path: "/schools", want: loginPath},
		{name: "signed out on login", path: loginPath, want: loginPath},
		{name: "home", path: "/", signedIn: true, want: homePath},
		{name: "page", path: "/grading-schemes", signedIn: true, want: "/grading-schemes"},
		{name: "nested page", path: "/academic-records/exam-results", signedIn: true, want: "/academic-records/exam-results"},
		{name: "missing slashes", path: "senatorial-districts/", signedIn: true, want: "/senatorial-districts"},
		{name: "login once signed in", path: loginPath, signedIn: true, want: homePath},
		{name: "unknown", path: "/reports", signedIn: true, want: homePath},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, resolve(tt.path, tt.signedIn).Path)
		})
	}
}

func Test_sidebar(t *testing.T) {
	sections, bySection := sidebar()

	assert.Equal(t, []string{sectionAnalytics, sectionManagement, sectionReference}, sections)
	assert.Len(t, bySection[sectionAnalytics], 6)
	assert.Len(t, bySection[sectionManagement], 6)
	assert.Len(t, bySection[sectionReference], 6)
	assert.Equal(t, "Dashboard", bySection[sectionAnalytics][0].Title)
}

func Test_newPages(t *testing.T) {
	pages := newPages(testutil.NewServices(testutil.OpenDB(t)))

	// every route has a page, titled after it
	assert.Len(t, pages, len(routes))
	for _, r := range routes {
		p, ok := pages[r.Path]
		if assert.True(t, ok, r.Path) {
			assert.Equal(t, r, p.route)
		}
	}

	assert.True(t, pages["/users"].canView("admin"))
	assert.False(t, pages["/users"].canView("analyst"))
	assert.True(t, pages["/schools"].canDelete("analyst"))
	assert.False(t, pages["/schools"].canDelete("viewer"))
	assert.False(t, pages["/states"].canDelete("analyst"))
	assert.False(t, pages["/"].canDelete("admin"))
	assert.True(t, pages["/facilities"].debounce)
}

func Test_page_build(t *testing.T) {
	pages := newPages(testutil.NewServices(testutil.OpenDB(t)))

	tests := []struct {
		name    string
		path    string
		q       query
		wantErr string
	}{
		{name: "no filters", path: "/states"},
		{name: "filter on a page without filters", path: "/states", q: query{}.with("code", "LA"), wantErr: "code: unknown filter"},
		{name: "valid filter", path: "/staff", q: query{}.with("role", "teacher")},
		{name: "invalid choice", path: "/staff", q: query{}.with("qualification", "phd"), wantErr: "qualification: invalid choice"},
		{name: "valid ordering", path: "/staff", q: query{Ordering: "-name"}},
		{name: "unknown ordering", path: "/lgas", q: query{Ordering: "name,-population"}, wantErr: "ordering: unknown ordering field: population"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := pages[tt.path].build(tt.q)
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.EqualError(t, err, tt.wantErr)
			}
		})
	}
}

func Test_query_with(t *testing.T) {
	q := query{}.with("state", "Lagos")
	q2 := q.with("lga", "Ikeja").with("state", "")

	assert.Equal(t, map[string]string{"state": "Lagos"}, q.Params, "with copies the params")
	assert.Equal(t, map[string]string{"lga": "Ikeja"}, q2.Params)
}
