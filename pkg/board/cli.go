package board

import (
	"errors"
	"strings"

	"github.com/fremantleline/fremantleline/pkg/config"
	"github.com/fremantleline/fremantleline/pkg/transperth"
	"github.com/kr/pretty"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "board",
		Usage: "Print live stations and departures",
		Subcommands: []*cli.Command{
			{
				Name:  "stations",
				Usage: "list every station of the operator",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "urls",
						Usage: "include the live departures page of each station",
					},
				},
				Action: func(c *cli.Context) error {
					conf, err := config.Load(c.String("config"))
					if err != nil {
						return err
					}
					operator := conf.NewOperator()

					records, err := StationRecords(c.Context, operator)
					if err != nil {
						return err
					}

					return WriteStations(c.App.Writer, records, c.Bool("urls"))
				},
			},
			{
				Name:      "departures",
				Usage:     "show the departure board of a station",
				ArgsUsage: "<station name>",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "filter",
						Usage: "only show departures matching this expression, e.g. 'Line == \"Fremantle Line\"'",
					},
					&cli.BoolFlag{
						Name:  "dump",
						Usage: "pretty print the full departure records",
					},
				},
				Action: func(c *cli.Context) error {
					stationName := strings.Join(c.Args().Slice(), " ")
					if stationName == "" {
						return errors.New("a station name is required")
					}

					conf, err := config.Load(c.String("config"))
					if err != nil {
						return err
					}
					operator := conf.NewOperator()

					station, err := operator.Station(c.Context, stationName)
					if err != nil {
						return err
					}

					records, err := DepartureRecords(c.Context, station, transperth.Now())
					if err != nil {
						return err
					}

					records, err = Filter(records, c.String("filter"))
					if err != nil {
						return err
					}

					if c.Bool("dump") {
						_, err = pretty.Fprintf(c.App.Writer, "%# v\n", records)
						return err
					}

					if len(records) == 0 {
						_, err = c.App.Writer.Write([]byte("No departures from " + station.Name + "\n"))
						return err
					}

					return WriteDepartures(c.App.Writer, records)
				},
			},
		},
	}
}

