package main

import (
	"os"

	"github.com/harrison/toolbox/internal/cmd"
	"github.com/harrison/toolbox/internal/tools"
)

func main() {
	os.Exit(cmd.Main(os.Args, tools.Table()))
}
