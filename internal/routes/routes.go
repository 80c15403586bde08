// Package routes holds the role-to-dashboard route table. The table is
// configuration: adding a role or a page is an edit here, not new
// control flow anywhere else.
package routes

import (
	"github.com/labstack/echo/v4"

	"herald-hub/internal/domain"
)

// SubView names one dashboard page and the backend resource behind it.
type SubView struct {
	Name        string
	BackendPath string
}

// Dashboard maps a URL prefix to the single role allowed into it and the
// pages it contains.
type Dashboard struct {
	Prefix   string
	Role     domain.Role
	SubViews []SubView
}

// Dashboards is the complete protected route tree.
var Dashboards = []Dashboard{
	{
		Prefix: "/customer",
		Role:   domain.RoleCustomer,
		SubViews: []SubView{
			{Name: "subscriptions", BackendPath: "/subscriptions"},
			{Name: "bills", BackendPath: "/bills"},
			{Name: "payments", BackendPath: "/payments"},
			{Name: "profile", BackendPath: "/customers/me"},
		},
	},
	{
		Prefix: "/deliverer",
		Role:   domain.RoleDeliverer,
		SubViews: []SubView{
			{Name: "route", BackendPath: "/delivery/route"},
			{Name: "schedule", BackendPath: "/delivery/schedule"},
		},
	},
	{
		Prefix: "/manager",
		Role:   domain.RoleManager,
		SubViews: []SubView{
			{Name: "customers", BackendPath: "/manager/customers"},
			{Name: "deliverers", BackendPath: "/manager/deliverers"},
			{Name: "subscriptions", BackendPath: "/manager/subscriptions"},
			{Name: "reports", BackendPath: "/manager/reports"},
		},
	},
}

// Landing returns the dashboard root for a role.
func Landing(role domain.Role) (string, bool) {
	for _, d := range Dashboards {
		if d.Role == role {
			return d.Prefix, true
		}
	}
	return "", false
}

// Register walks the table and mounts one guarded group per dashboard.
// guardFor builds the route-guard middleware for a required role set;
// proxy builds the handler serving one backend-backed sub-view.
func Register(e *echo.Echo, guardFor func(required ...domain.Role) echo.MiddlewareFunc, proxy func(backendPath string) echo.HandlerFunc) {
	for _, d := range Dashboards {
		group := e.Group(d.Prefix, guardFor(d.Role))
		for _, sv := range d.SubViews {
			group.GET("/"+sv.Name, proxy(sv.BackendPath))
		}
	}
}
