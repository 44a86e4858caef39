package main

import (
	"log"
	"os"

	"github.com/mahlburgc/lorabridge/events"
	"github.com/mahlburgc/lorabridge/internal"
	"github.com/mahlburgc/lorabridge/internal/bridge"
	"github.com/mahlburgc/lorabridge/internal/port"
	"github.com/mahlburgc/lorabridge/internal/radio"
)

// RYLR896 factory uart baudrate.
const modemBaudrate = 115200

func main() {
	config := internal.GetConfig()
	flags := internal.GetFlags()

	if flags.List {
		port.List()
		return
	}

	var sessionLog *log.Logger
	if flags.LogFile != "" {
		f, err := os.OpenFile(flags.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		sessionLog = log.New(f, "", 0)
	}

	logger := internal.StartLogger()
	if logger != nil {
		defer logger.Close()
	}

	var hostPort port.Port
	hostName := flags.Port
	if flags.Mock {
		hostPort = port.NewMockPort()
		hostName = "mock"
	} else {
		hostPort = port.Open(flags.Port, flags.Baudrate)
	}
	defer hostPort.Close()

	var drv radio.Driver
	radioName := flags.RadioPort
	if flags.Echo {
		drv = radio.NewEcho()
		radioName = "echo"
	} else {
		radioPort := port.Open(flags.RadioPort, modemBaudrate)
		defer radioPort.Close()
		drv = radio.NewModem(radioPort)
	}

	br := bridge.New(drv, port.NewLineReader(hostPort), hostPort, bridge.Config{
		Params: config.Params,
	})

	// Events are fire-and-forget; if the console falls behind, drop rather
	// than stall the bridge loop.
	evCh := make(chan events.Event, 64)
	br.OnEvent(func(ev events.Event) {
		select {
		case evCh <- ev:
		default:
		}
	})

	internal.RunTui(br, evCh, flags, hostName, radioName, sessionLog)
}
