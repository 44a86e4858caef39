package internal

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mahlburgc/lorabridge/events"
)

// Open (or create if no exist) a log file for debug logging.
func StartLogger() *os.File {
	if len(os.Getenv("LOG_LORABRIDGE")) > 0 {
		logfile, err := tea.LogToFile("debug.log", "debug")
		if err != nil {
			fmt.Println("fatal:", err)
			os.Exit(1)
		}
		return logfile
	} else {
		log.SetOutput(io.Discard)
	}

	return nil
}

// Log messsage type to debug file
func LogMsgType(msg any) {
	switch msg.(type) {
	case spinner.TickMsg, events.Event:
		// avoid logging on spamming messages
	default:
		log.Printf("Update Msg: Type: %T Value: %v\n", msg, msg)
	}
}
