package api

import (
	"github.com/fremantleline/fremantleline/pkg/config"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "web-api",
		Usage: "Provides the live departures web API",
		Subcommands: []*cli.Command{
			{
				Name:  "run",
				Usage: "run web api server",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "listen",
						Value: ":8080",
						Usage: "listen target for the web server",
					},
				},
				Action: func(c *cli.Context) error {
					conf, err := config.Load(c.String("config"))
					if err != nil {
						return err
					}

					log.Info().Str("listen", c.String("listen")).Str("operator", conf.Operator.Name).Msg("Starting web API")

					return SetupServer(c.String("listen"), conf.NewOperator)
				},
			},
		},
	}
}
