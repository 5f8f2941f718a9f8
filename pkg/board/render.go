package board

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/fremantleline/fremantleline/pkg/util"
)

const descriptionWidth = 30

func WriteStations(w io.Writer, records []StationRecord, withURLs bool) error {
	tw := tabwriter.NewWriter(w, 5, 3, 3, ' ', 0)

	for _, record := range records {
		if withURLs {
			fmt.Fprintf(tw, "%s \t %s\n", record.Name, record.URL)
		} else {
			fmt.Fprintln(tw, record.Name)
		}
	}

	return tw.Flush()
}

func WriteDepartures(w io.Writer, records []DepartureRecord) error {
	tw := tabwriter.NewWriter(w, 5, 3, 3, ' ', 0)

	fmt.Fprintln(tw, "Time \t Destination \t Line \t Status \t Description")
	for _, record := range records {
		fmt.Fprintf(tw, "%s \t %s \t %s \t %s \t %s\n",
			record.Time, record.Destination, record.Line, record.Status, util.TrimString(record.Description, descriptionWidth))
	}

	return tw.Flush()
}
