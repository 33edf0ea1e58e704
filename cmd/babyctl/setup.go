package main

import (
	"context"
	"errors"
	"fmt"

	"baby-care-log/internal/adapters/store/feishu"
	"baby-care-log/internal/config"
)

// runSetup crea la app de Bitable y deja la tabla lista para el backend.
// Imprime los identificadores para pegar en el .env.
func runSetup(name string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cfg.Feishu.AppID == "" || cfg.Feishu.AppSecret == "" {
		return errors.New("faltan FEISHU_APP_ID / FEISHU_APP_SECRET")
	}

	client, err := feishu.NewClient(feishu.Config{
		AppID:     cfg.Feishu.AppID,
		AppSecret: cfg.Feishu.AppSecret,
	})
	if err != nil {
		return err
	}

	admin := feishu.NewAdmin(client)
	res, err := admin.Setup(context.Background(), name, func(msg string) {
		fmt.Println(msg)
	})
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println("listo; agregar al .env:")
	fmt.Printf("BITABLE_APP_TOKEN=%s\n", res.AppToken)
	fmt.Printf("BITABLE_TABLE_ID=%s\n", res.TableID)
	if res.URL != "" {
		fmt.Printf("URL: %s\n", res.URL)
	}
	return nil
}
