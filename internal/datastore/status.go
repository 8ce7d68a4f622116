package datastore

import (
	"fmt"
	"sort"

	"github.com/huangsam/clio/schema"
)

// PrintStoreStatus prints store status information.
func PrintStoreStatus(status schema.StoreStatus) {
	fmt.Printf("Store Backend: %s\n", status.Backend)
	fmt.Printf("Connected: %t\n", status.Connected)
	if !status.Connected {
		return
	}
	fmt.Printf("Total Users: %d\n", status.TotalUsers)
	fmt.Printf("Total Chat Messages: %d\n", status.TotalMessages)
	fmt.Printf("Total Analyses: %d\n", status.TotalAnalyses)
	if status.TotalAnalyses > 0 {
		fmt.Printf("Last Analysis ID: %d\n", status.LastAnalysisID)
		fmt.Printf("Last Analysis: %s\n", status.LastAnalysisTime.Format("2006-01-02 15:04:05"))
	}

	tables := make([]string, 0, len(status.TableSizes))
	for table := range status.TableSizes {
		tables = append(tables, table)
	}
	sort.Strings(tables)

	fmt.Println("Table Sizes:")
	for _, table := range tables {
		fmt.Printf("  %s: %d rows\n", table, status.TableSizes[table])
	}
}
