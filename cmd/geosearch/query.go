package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/andreiashu/geosearch"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func newSearchCmd(a *app) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "search [query...]",
		Short: "Search all cities; every word must match",
		RunE: func(cmd *cobra.Command, args []string) error {
			e := a.loadEngine(cmd.Context())
			if err := e.Err(); err != nil {
				return err
			}
			return printCities(cmd.OutOrStdout(), e.SearchGlobal(strings.Join(args, " ")), limit)
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum rows to print")
	return cmd
}

func newCountryCmd(a *app) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "country CODE [query...]",
		Short: "Search the cities of one country",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e := a.loadEngine(cmd.Context())
			if err := e.Err(); err != nil {
				return err
			}
			results := e.SearchInCountry(args[0], strings.Join(args[1:], " "))
			return printCities(cmd.OutOrStdout(), results, limit)
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum rows to print")
	return cmd
}

func newLookupCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "lookup ID",
		Short: "Show one city by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e := a.loadEngine(cmd.Context())
			if err := e.Err(); err != nil {
				return err
			}
			c, ok := e.LookupCity(args[0])
			if !ok {
				return fmt.Errorf("city %q not found", args[0])
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "ID\t%s\n", c.ID)
			fmt.Fprintf(w, "Name\t%s\n", c.DisplayName())
			fmt.Fprintf(w, "Country\t%s\t%s\n", c.CountryCode, a.countryNamer().CountryName(c.CountryCode))
			fmt.Fprintf(w, "Coordinates\t%.4f, %.4f\n", c.Coordinate.Latitude, c.Coordinate.Longitude)
			fmt.Fprintf(w, "Geohash\t%s\n", c.Coordinate.Geohash(9))
			if pop, ok := c.Population(); ok {
				fmt.Fprintf(w, "Population\t%s\n", humanize.Comma(pop))
			}
			return w.Flush()
		},
	}
}

func newCountriesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "countries",
		Short: "List countries and their city counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e := a.loadEngine(cmd.Context())
			if err := e.Err(); err != nil {
				return err
			}
			namer := a.countryNamer()

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "CODE\tCOUNTRY\tCITIES")
			for _, code := range e.Countries() {
				n := e.Catalog().CountryLen(code)
				fmt.Fprintf(w, "%s\t%s\t%s\n", code, namer.CountryName(code), humanize.Comma(int64(n)))
			}
			return w.Flush()
		},
	}
}

// printCities writes a result table, at most limit rows.
func printCities(out io.Writer, cities []geosearch.City, limit int) error {
	if len(cities) == 0 {
		_, err := fmt.Fprintln(out, "no cities found")
		return err
	}
	total := len(cities)
	if limit > 0 && total > limit {
		cities = cities[:limit]
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tCITY\tCOUNTRY\tPOPULATION")
	for _, c := range cities {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", c.ID, c.DisplayName(), c.CountryCode, c.FormattedPopulation())
	}
	if err := w.Flush(); err != nil {
		return err
	}
	if total > len(cities) {
		_, err := fmt.Fprintf(out, "... %d of %d shown\n", len(cities), total)
		return err
	}
	return nil
}
