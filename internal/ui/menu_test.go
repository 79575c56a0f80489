package ui

import (
	"strings"
	"testing"

	"github.com/five82/ledgerdeck/internal/resources"
)

func TestBuildMenu_GroupsInFirstSeenOrder(t *testing.T) {
	menu := BuildMenu(resources.All())

	var groups []string
	for _, n := range menu {
		if n.IsLeaf() {
			t.Fatalf("unexpected top-level leaf %q", n.Label)
		}
		groups = append(groups, n.Label)
	}
	if got := strings.Join(groups, ","); got != "Parties,People,Books" {
		t.Fatalf("groups = %s", got)
	}

	var order []string
	for _, leaf := range menuLeaves(menu) {
		order = append(order, leaf.Resource)
	}
	if got := strings.Join(order, ","); got != "customers,vendors,staff,chart-of-accounts,expenses" {
		t.Fatalf("tab order = %s", got)
	}
}

func TestBuildMenu_UngroupedAndUntitled(t *testing.T) {
	menu := BuildMenu([]resources.Resource{
		{Name: "gst-settings"},
		{Name: "invoices", Title: "Invoices", Group: "Sales"},
	})
	if len(menu) != 2 {
		t.Fatalf("menu = %+v", menu)
	}
	if !menu[0].IsLeaf() || menu[0].Label != "Gst Settings" {
		t.Fatalf("ungrouped leaf = %+v", menu[0])
	}
	if menu[1].Label != "Sales" || len(menu[1].Children) != 1 {
		t.Fatalf("group = %+v", menu[1])
	}
}

func TestMenuLines(t *testing.T) {
	menu := []MenuNode{
		{Label: "Parties", Children: []MenuNode{
			{Label: "Customers", Resource: "customers"},
			{Label: "Vendors", Resource: "vendors"},
		}},
	}
	lines := menuLines(menu, "vendors", 0)
	if len(lines) != 3 {
		t.Fatalf("lines = %+v", lines)
	}
	if !lines[0].heading || lines[0].text != "PARTIES" {
		t.Fatalf("heading = %+v", lines[0])
	}
	if lines[1].active || lines[1].text != "    Customers" {
		t.Fatalf("inactive leaf = %+v", lines[1])
	}
	if !lines[2].active || lines[2].text != "  › Vendors" {
		t.Fatalf("active leaf = %+v", lines[2])
	}
}
