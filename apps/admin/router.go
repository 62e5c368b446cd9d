package main

import (
	"strings"
)

const (
	loginPath = "/login"
	homePath  = "/"
)

// Sidebar sections
const (
	sectionAnalytics  = "Analytics"
	sectionManagement = "Management"
	sectionReference  = "Reference Data"
)

type route struct {
	Path    string
	Title   string
	Section string
}

var routes = []route{
	{Path: homePath, Title: "Dashboard", Section: sectionAnalytics},
	{Path: "/facilities", Title: "Facilities", Section: sectionAnalytics},
	{Path: "/performance", Title: "Performance", Section: sectionAnalytics},
	{Path: "/demographics", Title: "Demographics", Section: sectionAnalytics},
	{Path: "/compare", Title: "Compare", Section: sectionAnalytics},
	{Path: "/predictive", Title: "Predictive Analytics", Section: sectionAnalytics},
	{Path: "/schools", Title: "Schools", Section: sectionManagement},
	{Path: "/staff", Title: "Staff", Section: sectionManagement},
	{Path: "/academic-records/enrollment", Title: "Enrollment", Section: sectionManagement},
	{Path: "/academic-records/exam-results", Title: "Exam Results", Section: sectionManagement},
	{Path: "/grading-schemes", Title: "Grading Schemes", Section: sectionManagement},
	{Path: "/users", Title: "Users", Section: sectionManagement},
	{Path: "/states", Title: "States", Section: sectionReference},
	{Path: "/lgas", Title: "LGAs", Section: sectionReference},
	{Path: "/senatorial-districts", Title: "Senatorial Districts", Section: sectionReference},
	{Path: "/school-types", Title: "School Types", Section: sectionReference},
	{Path: "/status-types", Title: "Status Types", Section: sectionReference},
	{Path: "/board-exams", Title: "Board Exams", Section: sectionReference},
}

var loginRoute = route{Path: loginPath, Title: "Sign In"}

// resolve maps path to its route. Signed-out users always land on the sign-in page;
// unknown paths fall back to the dashboard.
func resolve(path string, signedIn bool) route {
	if !signedIn {
		return loginRoute
	}
	path = strings.TrimSpace(path)
	if path != homePath {
		path = "/" + strings.Trim(path, "/")
	}
	for _, r := range routes {
		if r.Path == path {
			return r
		}
	}
	return routes[0]
}

// sidebar groups the routes by section, in declaration order.
func sidebar() (sections []string, bySection map[string][]route) {
	bySection = make(map[string][]route)
	for _, r := range routes {
		if _, ok := bySection[r.Section]; !ok {
			sections = append(sections, r.Section)
		}
		bySection[r.Section] = append(bySection[r.Section], r)
	}
	return sections, bySection
}
