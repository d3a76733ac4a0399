package commands

import (
	"context"
	"errors"
	"log"

	"cubetimer/internal/core/stopwatch"
	"cubetimer/internal/dispatch"
	"cubetimer/internal/influx"
	"cubetimer/internal/platform"
	"cubetimer/internal/refresh"
	"cubetimer/internal/ui/connection"
	"cubetimer/internal/ui/palette"
	"cubetimer/internal/ui/tray"
	"cubetimer/internal/ui/window"
	"cubetimer/resources"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
	"github.com/spf13/viper"
)

func runGUI(ctx context.Context, settings *viper.Viper) error {
	config, err := loadConfig(settings)
	if err != nil {
		return err
	}

	guard, err := platform.AcquireSingleInstance(appName)
	if err != nil {
		if !errors.Is(err, platform.ErrAlreadyRunning) {
			return err
		}
		log.Printf("single instance: %v", err)
		if notifyErr := platform.NotifyRunning(appName); notifyErr != nil {
			log.Printf("single instance: %v", notifyErr)
		}
		return nil
	}
	defer func() {
		_ = guard.Release()
	}()

	client := influx.NewClient(config)
	checkConnection(ctx, settings, client)

	fyneApp := app.NewWithID(appID)
	fyneApp.SetIcon(resources.Cube())
	fyneApp.Settings().SetTheme(palette.Theme{})

	watch := stopwatch.New(nil)
	events := watch.Subscribe(8)
	controller := dispatch.New(dispatch.Options{
		Watch:     watch,
		Sender:    client,
		Scheduler: refresh.NewTicker(window.Loop, settings.GetDuration(keyRefresh)),
		Loop:      window.Loop,
	})
	defer controller.Close()

	mainWindow := window.New(fyneApp, controller)
	connectionWindow := connection.New(fyneApp, config, client, window.Loop)
	go guard.Serve(func() {
		fyne.Do(mainWindow.Show)
	})

	desktopApp, ok := fyneApp.(desktop.App)
	if !ok {
		log.Printf("system tray unsupported on this platform")
		mainWindow.ShowAndRun()
		return nil
	}

	trayManager := tray.New(desktopApp, tray.Callbacks{
		OnToggle: func() {
			controller.Dispatch(dispatch.InputToggle)
		},
		OnReset: func() {
			controller.Dispatch(dispatch.InputReset)
		},
		OnSend: func() {
			controller.Dispatch(dispatch.InputSend)
		},
		OnShow:       mainWindow.Show,
		OnCycleKind:  controller.CycleCubeKind,
		OnConnection: connectionWindow.Show,
		OnQuit:       fyneApp.Quit,
	})
	desktopApp.SetSystemTrayIcon(resources.Cube())

	go func() {
		for event := range events {
			fyne.Do(func() {
				trayManager.Update(event)
			})
		}
	}()

	mainWindow.ShowAndRun()
	return nil
}
