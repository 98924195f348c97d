package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"PickRank/internal/domain/models"
)

func render(w io.Writer, resp *models.PicksResponse, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "RANK\tSYMBOL\tSCORE\tPRICE\tEXPLANATION")
	for i, p := range resp.Picks {
		price := "n/a"
		if p.LatestPrice != nil {
			price = fmt.Sprintf("%.2f", *p.LatestPrice)
		}
		fmt.Fprintf(tw, "%d\t%s\t%+.3f\t%s\t%s\n", i+1, p.Symbol, p.Score, price, p.Explanation)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if resp.Degraded > 0 {
		fmt.Fprintf(w, "\n%d of %d symbols unavailable\n", resp.Degraded, len(resp.Picks))
	}
	return nil
}
