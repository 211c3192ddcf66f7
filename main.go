package main

import (
	"embed"
	"flag"
	"fmt"
	"os"

	"github.com/wailsapp/wails/v2"
	"github.com/wailsapp/wails/v2/pkg/menu"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"
	"github.com/wailsapp/wails/v2/pkg/options/mac"

	pageforge "pageforge/internal/app"
	"pageforge/internal/config"
	"pageforge/internal/logging"
)

//go:embed all:frontend/dist
var assets embed.FS

//go:embed build/appicon.png
var icon []byte

func main() {
	mcpMode := flag.Bool("mcp", false, "serve the builder over MCP on stdin/stdout instead of opening a window")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}

	build := logging.New().WithLevel(cfg.Log.Level).FromPath(cfg.Log.File)
	if *mcpMode {
		// stdout carries the MCP protocol
		build = build.FromBuffer(os.Stderr)
	}
	logs, err := build.Make()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
	defer logs.Close()
	log := logs.Logger

	if *mcpMode {
		if err := pageforge.ServeMCP(cfg, log); err != nil {
			log.Error().Err(err).Msg("mcp server stopped")
			os.Exit(1)
		}
		return
	}

	app := pageforge.New(cfg, log)

	// macOS needs an Edit menu for Cmd+C/V/X/A to reach the WebView
	appMenu := menu.NewMenu()
	appMenu.Append(menu.EditMenu())

	err = wails.Run(&options.App{
		Title:     "PageForge",
		Width:     1440,
		Height:    900,
		MinWidth:  1024,
		MinHeight: 640,
		AssetServer: &assetserver.Options{
			Assets: assets,
		},
		BackgroundColour:   &options.RGBA{R: 250, G: 250, B: 252, A: 1},
		Menu:               appMenu,
		Logger:             logging.NewWailsLogger(log),
		LogLevel:           logging.WailsLevel(log.GetLevel()),
		LogLevelProduction: logging.WailsLevel(log.GetLevel()),
		OnStartup:          app.Startup,
		OnShutdown:         app.Shutdown,
		Bind: []interface{}{
			app,
		},
		Mac: &mac.Options{
			TitleBar: &mac.TitleBar{
				TitlebarAppearsTransparent: true,
				HideTitle:                  true,
				HideTitleBar:               false,
				FullSizeContent:            true,
				UseToolbar:                 true,
				HideToolbarSeparator:       true,
			},
			WebviewIsTransparent: false,
			WindowIsTranslucent:  false,
			About: &mac.AboutInfo{
				Title:   "PageForge",
				Message: "Block-based page builder",
				Icon:    icon,
			},
		},
	})

	if err != nil {
		log.Error().Err(err).Msg("wails run")
	}
}
