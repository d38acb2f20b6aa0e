package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/stockroom/stockroom-backend/internal/view"
)

// stockctl is a terminal view onto a running stockroom API. It fetches the
// catalog and the inventory through the same loader the frontend uses and
// renders per-item totals with warehouse breakdowns.

const defaultAPIURL = "http://localhost:8080"

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	client := view.NewClient(apiURL())
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var err error
	switch os.Args[1] {
	case "items":
		query := strings.Join(os.Args[2:], " ")
		err = runItems(ctx, client, query)
	case "shipments":
		err = runShipments(ctx, client)
	case "health":
		err = runHealth(ctx, client)
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "stockctl:", err)
		os.Exit(1)
	}
}

func apiURL() string {
	if url := os.Getenv("STOCKROOM_API_URL"); url != "" {
		return url
	}
	return defaultAPIURL
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: stockctl <command>

commands:
  items [query]   list items with quantities, optionally filtered by name or SKU
  shipments       list shipments
  health          check the API server

STOCKROOM_API_URL overrides the API address (default `+defaultAPIURL+`).`)
}

func runItems(ctx context.Context, client *view.Client, query string) error {
	loader := view.NewLoader(client)
	state := <-loader.Reload(ctx)
	if state == view.LoadError {
		_, _, _, err := loader.Snapshot()
		return err
	}
	items, summaries, _, _ := loader.Snapshot()

	rows := view.Project(view.FilterItems(query, items), summaries, false)
	if len(rows) == 0 {
		fmt.Println("no items")
		return nil
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tSKU\tQUANTITY\tWAREHOUSES")
	for _, row := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			row.Item.Name, row.Item.SKU, row.FormatQuantity(), formatBreakdown(row.PerWarehouse))
	}
	return tw.Flush()
}

func formatBreakdown(perWarehouse map[string]int) string {
	if len(perWarehouse) == 0 {
		return "-"
	}
	names := make([]string, 0, len(perWarehouse))
	for name := range perWarehouse {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s=%d", name, perWarehouse[name]))
	}
	return strings.Join(parts, ", ")
}

func runShipments(ctx context.Context, client *view.Client) error {
	shipments, err := client.FetchShipments(ctx)
	if err != nil {
		return err
	}
	if len(shipments) == 0 {
		fmt.Println("no shipments")
		return nil
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tWAREHOUSE\tEXPECTED\tSTATUS")
	for _, sh := range shipments {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			sh.ID, sh.Warehouse.Name, sh.ExpectedArrivalDate, sh.Status)
	}
	return tw.Flush()
}

func runHealth(ctx context.Context, client *view.Client) error {
	if err := client.Health(ctx); err != nil {
		return err
	}
	fmt.Println("ok")
	return nil
}
