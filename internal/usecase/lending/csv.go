package lending

import (
	"encoding/csv"
	"io"
)

var csvHeader = []string{"Name", "Amount", "Rate (%)", "Start Date", "Renewal Date", "Interest", "Total", "Status", "Notes"}

// WriteCSV renders records in the download layout, one row per record.
func WriteCSV(w io.Writer, recs []RecordDTO) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, r := range recs {
		row := []string{
			r.Name,
			r.Amount.String(),
			r.RateOfInterest.String(),
			r.StartDate,
			r.RenewalDate,
			r.Interest.String(),
			r.Total.String(),
			r.Status,
			r.Notes,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
