package port

import (
	"fmt"
	"io"
	"log"
	"os"

	"go.bug.st/serial"
	"go.bug.st/serial/enumerator"
)

// Port is an interface that matches io.ReadWriteCloser.
// This interface is used to utilize either a real serial port
// or a mocked serial port for development.
// Both serial.Port and our mockPort implement this interface.
type Port io.ReadWriteCloser

// Print out a list of all available ports.
func List() {
	ports, err := enumerator.GetDetailedPortsList()
	if err != nil {
		log.Fatal(err)
	}

	if len(ports) == 0 {
		fmt.Println("No serial ports found!")
		return
	}

	for _, port := range ports {
		fmt.Printf("Found port: %s\n", port.Name)
		if port.IsUSB {
			fmt.Printf("   USB ID     %s:%s\n", port.VID, port.PID)
			fmt.Printf("   USB serial %s\n", port.SerialNumber)
		}
	}
}

// Open a port with the given baudrate, 8N1 framing.
func Open(portname string, baudrate int) Port {
	mode := serial.Mode{
		BaudRate: baudrate,
	}
	port, err := serial.Open(portname, &mode)
	if err != nil {
		fmt.Printf("%s: %s\n", portname, err.Error())
		os.Exit(1)
	}
	return port
}
