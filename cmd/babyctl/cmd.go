package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"baby-care-log/internal/client"
	"baby-care-log/internal/domain/records"
	"baby-care-log/internal/platform/logger"

	"github.com/nexidian/gocliselect"
	"github.com/spf13/cobra"
)

const defaultServer = "http://localhost:3001"

// newAPI arma el APIClient con las credenciales guardadas (si hay).
func newAPI(server string) (*client.APIClient, *client.CredStore, error) {
	api, err := client.NewAPIClient(server, 10*time.Second)
	if err != nil {
		return nil, nil, err
	}

	creds, err := client.NewCredStore()
	if err != nil {
		return nil, nil, err
	}

	if saved, ok := creds.Load(); ok {
		api.SetCode(saved.Code)
	}
	return api, creds, nil
}

func SetupCommands() *cobra.Command {
	var server string

	rootCmd := &cobra.Command{
		Use:   "babyctl",
		Short: "Registro de cuidados del bebé desde la terminal",
	}
	rootCmd.PersistentFlags().StringVar(&server, "server", envOr("BABYCTL_SERVER", defaultServer), "URL del backend")

	// login valida el código y lo guarda para los próximos comandos
	loginCmd := &cobra.Command{
		Use:   "login [código]",
		Short: "Validar y guardar el código de invitación",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			api, creds, err := newAPI(server)
			if err != nil {
				return err
			}

			role, err := api.Login(context.Background(), args[0])
			if err != nil {
				return err
			}

			if err := creds.Save(client.Credentials{Code: args[0], Role: role}); err != nil {
				return err
			}

			fmt.Printf("ok, rol: %s\n", role)
			return nil
		},
	}

	logoutCmd := &cobra.Command{
		Use:   "logout",
		Short: "Borrar el código guardado",
		RunE: func(cmd *cobra.Command, args []string) error {
			creds, err := client.NewCredStore()
			if err != nil {
				return err
			}
			return creds.Clear()
		},
	}

	// log abre el menú de quick-log (o toma el tipo por flag)
	var logNote string
	var logType string
	logCmd := &cobra.Command{
		Use:   "log",
		Short: "Registrar una actividad (menú interactivo)",
		RunE: func(cmd *cobra.Command, args []string) error {
			api, _, err := newAPI(server)
			if err != nil {
				return err
			}

			t := records.EventType(logType)
			if logType == "" {
				t = pickEventType()
			}
			if !t.IsValid() {
				return errors.New("tipo inválido")
			}

			store := client.NewRecordStore(api, cliLogger())
			quick := client.NewQuickLogger(store)

			if !quick.Log(context.Background(), t, logNote) {
				return errors.New("no se pudo registrar")
			}

			fmt.Printf("%s %s registrado\n", client.EventIcon(t), client.EventLabel(t))
			return nil
		},
	}
	logCmd.Flags().StringVar(&logNote, "note", "", "anotación opcional")
	logCmd.Flags().StringVar(&logType, "type", "", "tipo (FEEDING, DIAPER_CHANGE, BOWEL_MOVEMENT, BATH); vacío abre el menú")

	// history lista los últimos registros formateados
	var historyLimit int
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Ver el historial (más nuevo primero)",
		RunE: func(cmd *cobra.Command, args []string) error {
			api, _, err := newAPI(server)
			if err != nil {
				return err
			}

			recs, err := api.ListRecords(context.Background(), historyLimit)
			if err != nil {
				return err
			}

			now := time.Now()
			lastDate := ""
			for _, rec := range recs {
				date := client.FormatDate(rec.Time, now)
				if date != lastDate {
					fmt.Println(date)
					lastDate = date
				}

				line := fmt.Sprintf("  %s %s %s  %s (%s)",
					client.EventIcon(rec.Type),
					client.FormatTime(rec.Time),
					client.EventLabel(rec.Type),
					rec.Note,
					client.RelativeTime(rec.Time, now))
				fmt.Println(line)
			}
			return nil
		},
	}
	historyCmd.Flags().IntVar(&historyLimit, "limit", 50, "máximo de registros (1-100)")

	// status muestra cuánto pasó desde la última toma
	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Última toma y cuánto falta para la próxima",
		RunE: func(cmd *cobra.Command, args []string) error {
			api, _, err := newAPI(server)
			if err != nil {
				return err
			}

			lf, err := api.LatestFeed(context.Background())
			if err != nil {
				return err
			}

			if lf.Record == nil {
				fmt.Println("sin tomas registradas")
				return nil
			}

			fmt.Printf("última toma: %s (%s)\n",
				client.FormatTime(lf.Record.Time),
				client.RelativeTime(lf.Record.Time, time.Now()))
			if lf.NextFeedIn >= 0 {
				fmt.Printf("próxima en: %d min\n", lf.NextFeedIn)
			} else {
				fmt.Printf("atrasada: %d min\n", -lf.NextFeedIn)
			}
			return nil
		},
	}

	deleteCmd := &cobra.Command{
		Use:   "delete [id]",
		Short: "Borrar un registro por id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			api, _, err := newAPI(server)
			if err != nil {
				return err
			}
			return api.DeleteRecord(context.Background(), args[0])
		},
	}

	// setup provisiona la app/tabla de Bitable con las credenciales de env
	var setupName string
	setupCmd := &cobra.Command{
		Use:   "setup",
		Short: "Provisionar la tabla de Bitable (usa FEISHU_APP_ID/FEISHU_APP_SECRET)",
		RunE:  func(cmd *cobra.Command, args []string) error { return runSetup(setupName) },
	}
	setupCmd.Flags().StringVar(&setupName, "name", "宝宝记录", "nombre de la app de Bitable")

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(logCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(setupCmd)

	return rootCmd
}

// pickEventType abre el menú interactivo con los cuatro tipos.
func pickEventType() records.EventType {
	menu := gocliselect.NewMenu("¿Qué pasó?")
	for _, t := range records.AllEventTypes() {
		menu.AddItem(client.EventIcon(t)+" "+client.EventLabel(t), string(t))
	}
	choice, _ := menu.Display()
	s, _ := choice.(string)
	return records.EventType(s)
}

func cliLogger() logger.Logger {
	return logger.NewFromConfig(envOr("LOG_LEVEL", "warn"), "text")
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
