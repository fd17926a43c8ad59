package main

import (
	"fmt"
	"os"
	"path/filepath"

	"alvant-portal/config"
	"alvant-portal/internal/client/admin"
	"alvant-portal/internal/client/api"
	"alvant-portal/pkg/logger"
	"alvant-portal/pkg/validation"
)

func initLogger() {
	logger.Init(logLevel)
}

func newClient() (*api.Client, error) {
	cfg, err := config.LoadClientConfig()
	if err != nil {
		return nil, fmt.Errorf("load client config: %w", err)
	}
	return api.New(cfg.APIURL, cfg.Timeout), nil
}

// newDashboard wires the admin flow to the API and the two credential files:
// the durable one lives in the user config dir, the session one in the temp dir
// so it is gone after a reboot.
func newDashboard() (*admin.Dashboard, error) {
	cfg, err := config.LoadClientConfig()
	if err != nil {
		return nil, fmt.Errorf("load client config: %w", err)
	}
	client := api.New(cfg.APIURL, cfg.Timeout)

	durable := admin.NewFileKV(filepath.Join(cfg.ConfigDir, "credentials.json"))
	session := admin.NewFileKV(filepath.Join(os.TempDir(), fmt.Sprintf("alvant-portal-%d", os.Getuid()), "session.json"))

	auth := admin.NewAuth(client, admin.NewDualStore(durable, session))
	return admin.NewDashboard(auth, admin.NewBrowser(client)), nil
}

// printFieldErrors writes one "field: message" line per error, in order.
func printFieldErrors(order []string, errs validation.FieldErrors) {
	for _, name := range order {
		if msg, ok := errs[name]; ok {
			fmt.Printf("  %s: %s\n", name, msg)
		}
	}
}

func logError(msg string, err error) {
	logger.Log.Warn(msg, "error", err)
}
