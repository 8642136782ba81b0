package recordstore

import (
	"fmt"

	"github.com/qualens/qualens/schema"
)

// PrintStoreStatus prints record store status information.
func PrintStoreStatus(status schema.StoreStatus) {
	fmt.Printf("Store Backend: %s\n", status.Backend)
	if status.Location != "" {
		fmt.Printf("Location: %s\n", status.Location)
	}
	fmt.Printf("Total Records: %d\n", status.RecordCount)
	if status.RecordCount > 0 {
		fmt.Printf("Oldest Record: %s\n", status.OldestRecord.Format("2006-01-02 15:04:05"))
		fmt.Printf("Newest Record: %s\n", status.NewestRecord.Format("2006-01-02 15:04:05"))
	}
}
