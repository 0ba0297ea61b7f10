// Command rawtime is the command line front end of the calendar engine.
//
// Usage:
//
//	rawtime encode 2025 10 2
//	rawtime decode 63926582400 --kind date
//	rawtime stamp "02/10/2025" --template "d m y"
//	rawtime calc 63925502400 add 86400
//	rawtime extract 63926582400 --mode elapsed
//	rawtime feasts 2025
package main

import (
	"fmt"
	"os"

	"github.com/zapponejosh/rawtime/internal/clock"
)

func main() {
	if err := newRootCmd(clock.System).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
