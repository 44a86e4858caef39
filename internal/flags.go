package internal

import "flag"

type Flags struct {
	List      bool
	Port      string
	RadioPort string
	Baudrate  int
	Echo      bool
	Mock      bool
	Timestamp bool
	LogFile   string
}

// Get all command line arguments.
func GetFlags() Flags {
	listArg := flag.Bool("l", false, "list available ports")
	portArg := flag.String("p", "/dev/ttyUSB0", "host serial port")
	radioArg := flag.String("r", "/dev/ttyUSB1", "radio modem serial port")
	baudArg := flag.Int("b", 115200, "host serial baudrate")
	echoArg := flag.Bool("echo", false, "echo locally instead of using a radio")
	mockArg := flag.Bool("mock", false, "use a mocked host port")
	timestampArg := flag.Bool("t", false, "show timestamp")
	logArg := flag.String("log", "", "write traffic to a session log file")

	flag.Parse()

	return Flags{
		List:      *listArg,
		Port:      *portArg,
		RadioPort: *radioArg,
		Baudrate:  *baudArg,
		Echo:      *echoArg,
		Mock:      *mockArg,
		Timestamp: *timestampArg,
		LogFile:   *logArg,
	}
}
