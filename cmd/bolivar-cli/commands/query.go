package commands

import (
	"os"
	"strings"

	"github.com/Crhistian-LAMBDA/Scrap-poc-backend/lib/configutil"
	"github.com/Crhistian-LAMBDA/Scrap-poc-backend/lib/scrapers/bolivar"
	"github.com/Crhistian-LAMBDA/Scrap-poc-backend/lib/serviceutil"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

type Config struct {
	Credentials struct {
		UserId   string `json:"user_id"`
		Password string `json:"password"`
		Poliza   string `json:"poliza"`
	} `json:"credentials"`
}

var (
	queryCookie     *string
	queryCookieFile *string
	queryServerAuth *bool
)

func init() {
	queryCookie = queryCmd.Flags().String("cookie", "", "Session cookie header pasted from the browser.")
	queryCookieFile = queryCmd.Flags().String("cookie-file", "", "File containing the pasted session cookie header.")
	queryServerAuth = queryCmd.Flags().Bool("server-auth", false, "Login with the credentials from config.json5 instead of a pasted cookie.")
	rootCmd.AddCommand(queryCmd)
}

var queryCmd = &cobra.Command{
	Use:   "query [--cookie <header> | --cookie-file <path> | --server-auth] <radicado> [radicado...]",
	Short: "Queries the claim status of one or more radicados.",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cookie := *queryCookie
		if *queryCookieFile != "" {
			data, err := os.ReadFile(*queryCookieFile)
			if err != nil {
				serviceutil.Fatal("read cookie file", err)
			}
			cookie = strings.TrimSpace(string(data))
		}

		var creds bolivar.Credentials
		if *queryServerAuth {
			cfg, err := configutil.ReadConfig[Config]("config.json5")
			if err != nil {
				serviceutil.Fatal("read config", err)
			}
			creds = bolivar.Credentials{
				UserId:   cfg.Credentials.UserId,
				Password: cfg.Credentials.Password,
				Poliza:   cfg.Credentials.Poliza,
			}
		}

		client, err := bolivar.NewClient(bolivar.ClientOptions{
			CookieHeader:  cookie,
			UseServerAuth: *queryServerAuth,
			Credentials:   creds,
		})
		if err != nil {
			serviceutil.Fatal("create portal session", err)
		}

		batch, err := client.QueryBatch(cmd.Context(), args)
		if err != nil {
			serviceutil.Fatal("query radicados", err)
		}

		writer := table.NewWriter()
		writer.SetOutputMirror(os.Stdout)
		writer.AppendHeader(table.Row{"Radicado", "Estado", "Normalizado", "Asegurado", "Error"})
		for _, res := range batch.Results {
			writer.AppendRow(table.Row{
				res.Radicado,
				res.EstadoRaw,
				res.EstadoNormalizado,
				res.Asegurado,
				res.Error,
			})
		}
		writer.Render()
	},
}
